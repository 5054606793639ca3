package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gateWith(follows map[[2]uint]bool, blocks map[[2]uint]bool) *RelationshipGate {
	return &RelationshipGate{
		LookupFollow: func(followerID, followingID uint) (bool, error) {
			return follows[[2]uint{followerID, followingID}], nil
		},
		LookupBlock: func(userA, userB uint) (bool, error) {
			return blocks[[2]uint{userA, userB}] || blocks[[2]uint{userB, userA}], nil
		},
	}
}

func TestResolveSelf(t *testing.T) {
	gate := &RelationshipGate{
		LookupFollow: func(followerID, followingID uint) (bool, error) {
			t.Fatal("self resolution must not hit the follow lookup")
			return false, nil
		},
		LookupBlock: func(userA, userB uint) (bool, error) {
			t.Fatal("self resolution must not hit the block lookup")
			return false, nil
		},
	}

	rel := gate.Resolve(7, 7)
	assert.Equal(t, Relationship{}, rel)
}

func TestResolveMutualFollow(t *testing.T) {
	gate := gateWith(map[[2]uint]bool{
		{1, 2}: true,
		{2, 1}: true,
	}, nil)

	rel := gate.Resolve(1, 2)
	assert.True(t, rel.IsFollower)
	assert.True(t, rel.IsFollowing)
	assert.False(t, rel.IsBlockedEitherWay)
}

func TestResolveBlockIsSymmetric(t *testing.T) {
	gate := gateWith(map[[2]uint]bool{{1, 2}: true}, map[[2]uint]bool{{2, 1}: true})

	rel := gate.Resolve(1, 2)
	assert.True(t, rel.IsBlockedEitherWay)
}

func TestResolveFailsClosed(t *testing.T) {
	lookupErr := errors.New("connection refused")

	tests := []struct {
		name      string
		blockErr  error
		followErr error
	}{
		{name: "block lookup fails", blockErr: lookupErr},
		{name: "follow lookup fails", followErr: lookupErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := &RelationshipGate{
				LookupFollow: func(followerID, followingID uint) (bool, error) {
					return true, tt.followErr
				},
				LookupBlock: func(userA, userB uint) (bool, error) {
					return false, tt.blockErr
				},
			}

			rel := gate.Resolve(1, 2)
			assert.True(t, rel.IsBlockedEitherWay, "lookup failure must report the pair as blocked")
			assert.False(t, rel.IsFollower)
			assert.False(t, rel.IsFollowing)
		})
	}
}
