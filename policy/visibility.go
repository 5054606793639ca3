package policy

import (
	"github.com/pulseroom/api-go/models"
)

// IsVisible evaluates the post's declared visibility for the viewer. Block is
// an absolute veto checked before any visibility mode; the owner always sees
// their own post.
func IsVisible(viewerID uint, post *models.Post, rel Relationship) bool {
	if viewerID == post.UserID {
		return true
	}
	if rel.IsBlockedEitherWay {
		return false
	}

	switch post.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityFollowers:
		return rel.IsFollower
	case models.VisibilityPrivate:
		return false
	case models.VisibilityCustom:
		// Exclude wins if a viewer appears in both lists. An empty include
		// list means nobody but the owner sees the post.
		if containsUserID(post.ExcludeUserIDs, viewerID) {
			return false
		}
		return containsUserID(post.IncludeUserIDs, viewerID)
	}

	// Unknown mode: fail closed.
	return false
}

func containsUserID(ids []int64, userID uint) bool {
	for _, id := range ids {
		if id == int64(userID) {
			return true
		}
	}
	return false
}
