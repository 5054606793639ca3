package policy

import (
	"github.com/pulseroom/api-go/models"
)

// ModerationState is the folded current state of a moderation target. It is
// derived, never stored; FoldActions recomputes it from the append-only
// action history on every evaluation.
type ModerationState struct {
	Hidden           bool
	Deleted          bool
	Banned           bool   // only meaningful when folding a user target
	ForcedVisibility string // replaces the declared visibility when non-empty

	// Most recent hide/delete/ban_user action that has not been reversed.
	// Zero value means the target has no active negative action.
	LastNegativeAction string
	LastNegativeID     uint

	LastActionID uint
}

// FoldActions reduces the ordered action history of one target into its
// current state. Actions must be supplied in creation order (ascending id).
//
// delete is sticky: only an explicit later unhide restores visibility.
// ban_user needs its own unban_user reversal; unhide does not clear a ban.
func FoldActions(actions []models.ModerationAction) ModerationState {
	var state ModerationState
	for _, a := range actions {
		switch a.ActionType {
		case models.ActionHide:
			state.Hidden = true
			state.LastNegativeAction = models.ActionHide
			state.LastNegativeID = a.ID
		case models.ActionDelete:
			state.Deleted = true
			state.LastNegativeAction = models.ActionDelete
			state.LastNegativeID = a.ID
		case models.ActionUnhide:
			state.Hidden = false
			state.Deleted = false
			if state.LastNegativeAction == models.ActionHide || state.LastNegativeAction == models.ActionDelete {
				state.LastNegativeAction = ""
				state.LastNegativeID = 0
			}
		case models.ActionBanUser:
			state.Banned = true
			state.LastNegativeAction = models.ActionBanUser
			state.LastNegativeID = a.ID
		case models.ActionUnbanUser:
			state.Banned = false
			if state.LastNegativeAction == models.ActionBanUser {
				state.LastNegativeAction = ""
				state.LastNegativeID = 0
			}
		case models.ActionForceVisibility:
			state.ForcedVisibility = a.ForcedVisibility
		case models.ActionWarn:
			// audit-only, no effect on visibility
		}
		state.LastActionID = a.ID
	}
	return state
}

// EffectiveState is the final decision for one (viewer, target) pair after
// folding the declared visibility with the moderation history.
type EffectiveState struct {
	EffectiveVisible   bool `json:"effectiveVisible"`
	EffectivelyDeleted bool `json:"effectivelyDeleted"`
	OwnerCanEdit       bool `json:"ownerCanEdit"`
	Appealable         bool `json:"appealable"` // negative action present; per-submitter checks still apply
}

// ResolveEffectiveState combines the base visibility evaluation with the
// folded moderation state of the post and of its author.
//
// Admins see through hide/delete/ban. The owner keeps view rights on hidden
// content (they need to see it to appeal) but loses them on deleted content;
// any active negative override suspends the owner's edit rights.
func ResolveEffectiveState(viewerID uint, post *models.Post, rel Relationship, target, author ModerationState, isAdmin bool) EffectiveState {
	evaluated := *post
	if target.ForcedVisibility != "" {
		evaluated.Visibility = target.ForcedVisibility
	}
	baseVisible := IsVisible(viewerID, &evaluated, rel)

	isOwner := viewerID == post.UserID

	state := EffectiveState{
		EffectiveVisible:   baseVisible,
		EffectivelyDeleted: target.Deleted,
		OwnerCanEdit:       !target.Hidden && !target.Deleted && !author.Banned,
		Appealable:         target.LastNegativeAction != "" || author.LastNegativeAction != "",
	}

	if target.Deleted {
		state.EffectiveVisible = isAdmin
		return state
	}
	if target.Hidden {
		state.EffectiveVisible = baseVisible && (isAdmin || isOwner)
		return state
	}
	if author.Banned {
		state.EffectiveVisible = baseVisible && (isAdmin || isOwner)
	}
	return state
}

// CanAppeal reports whether the submitter may open a new appeal against the
// target: an unreversed hide/delete/ban must be active, the submitter must be
// the target's owner, and no pending appeal may already exist for the pair.
func CanAppeal(state ModerationState, isOwner, hasPendingAppeal bool) bool {
	if state.LastNegativeAction == "" {
		return false
	}
	return isOwner && !hasPendingAppeal
}
