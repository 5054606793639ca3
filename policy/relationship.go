// Package policy implements the content visibility and moderation
// authorization engine: pure decision functions over relationship facts,
// declared visibility, tag settings and folded moderation state. Nothing in
// this package touches the database; callers supply the facts.
package policy

// Relationship holds the follow/block facts between a viewer and an owner,
// computed fresh per decision. It is never cached across requests.
type Relationship struct {
	IsFollower         bool // viewer follows owner (accepted)
	IsFollowing        bool // owner follows viewer (accepted)
	IsBlockedEitherWay bool
}

// RelationshipGate resolves the viewer/owner relationship through two
// read-only edge lookups. If either lookup fails the gate fails closed and
// reports the pair as blocked, so authorization never defaults to permissive.
type RelationshipGate struct {
	LookupFollow func(followerID, followingID uint) (bool, error)
	LookupBlock  func(userA, userB uint) (bool, error) // symmetric
}

func (g *RelationshipGate) Resolve(viewerID, ownerID uint) Relationship {
	if viewerID == ownerID {
		return Relationship{}
	}

	blocked, err := g.LookupBlock(viewerID, ownerID)
	if err != nil {
		return Relationship{IsBlockedEitherWay: true}
	}

	isFollower, err := g.LookupFollow(viewerID, ownerID)
	if err != nil {
		return Relationship{IsBlockedEitherWay: true}
	}

	isFollowing, err := g.LookupFollow(ownerID, viewerID)
	if err != nil {
		return Relationship{IsBlockedEitherWay: true}
	}

	return Relationship{
		IsFollower:         isFollower,
		IsFollowing:        isFollowing,
		IsBlockedEitherWay: blocked,
	}
}
