package policy

import (
	"testing"

	"github.com/lib/pq"
	"github.com/pulseroom/api-go/models"
	"github.com/stretchr/testify/assert"
)

func TestIsVisible(t *testing.T) {
	owner := uint(1)

	tests := []struct {
		name     string
		viewerID uint
		post     models.Post
		rel      Relationship
		want     bool
	}{
		{
			name:     "owner always sees own post",
			viewerID: owner,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityPrivate},
			want:     true,
		},
		{
			name:     "block vetoes public post",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityPublic},
			rel:      Relationship{IsBlockedEitherWay: true},
			want:     false,
		},
		{
			name:     "public visible to stranger",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityPublic},
			want:     true,
		},
		{
			name:     "followers visible to follower",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityFollowers},
			rel:      Relationship{IsFollower: true},
			want:     true,
		},
		{
			name:     "followers hidden from non-follower",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityFollowers},
			want:     false,
		},
		{
			name:     "followed-back alone does not grant followers visibility",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityFollowers},
			rel:      Relationship{IsFollowing: true},
			want:     false,
		},
		{
			name:     "private hidden even from follower",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: models.VisibilityPrivate},
			rel:      Relationship{IsFollower: true},
			want:     false,
		},
		{
			name:     "custom include grants access",
			viewerID: 2,
			post: models.Post{
				UserID:         owner,
				Visibility:     models.VisibilityCustom,
				IncludeUserIDs: pq.Int64Array{2, 3},
			},
			want: true,
		},
		{
			name:     "custom exclude wins over include",
			viewerID: 2,
			post: models.Post{
				UserID:         owner,
				Visibility:     models.VisibilityCustom,
				IncludeUserIDs: pq.Int64Array{2},
				ExcludeUserIDs: pq.Int64Array{2},
			},
			want: false,
		},
		{
			name:     "custom empty include means owner only",
			viewerID: 2,
			post: models.Post{
				UserID:     owner,
				Visibility: models.VisibilityCustom,
			},
			rel:  Relationship{IsFollower: true, IsFollowing: true},
			want: false,
		},
		{
			name:     "unknown visibility fails closed",
			viewerID: 2,
			post:     models.Post{UserID: owner, Visibility: "everyone"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsVisible(tt.viewerID, &tt.post, tt.rel)
			assert.Equal(t, tt.want, got)
		})
	}
}
