package policy

import (
	"errors"

	"github.com/pulseroom/api-go/models"
)

// Typed state-conflict failures. Callers translate these to 4xx responses;
// they are safe to retry only after re-reading current state.
var (
	ErrNotAppealable    = errors.New("not_appealable")
	ErrDuplicateAppeal  = errors.New("duplicate_appeal")
	ErrAppealNotPending = errors.New("appeal_not_pending")
	ErrNotSubmitter     = errors.New("not_submitter")
)

// ValidateSubmit checks the submit transition: the folded moderation state
// must carry an unreversed negative action against the submitter's own
// target, and no pending appeal may exist for the (target, submitter) pair.
func ValidateSubmit(state ModerationState, isOwner bool, existing *models.Appeal) error {
	if existing != nil && existing.Status == models.AppealStatusPending {
		return ErrDuplicateAppeal
	}
	if !CanAppeal(state, isOwner, false) {
		return ErrNotAppealable
	}
	return nil
}

// ValidateResolve checks the approve/reject transition. Appeals resolve
// exactly once; a second resolution fails with appeal_not_pending and must
// produce no side effects.
func ValidateResolve(appeal *models.Appeal) error {
	if appeal.Status != models.AppealStatusPending {
		return ErrAppealNotPending
	}
	return nil
}

// ValidateWithdraw checks the withdraw transition, which only the submitter
// may perform and only while the appeal is pending.
func ValidateWithdraw(appeal *models.Appeal, userID uint) error {
	if appeal.SubmittedByUserID != userID {
		return ErrNotSubmitter
	}
	if appeal.Status != models.AppealStatusPending {
		return ErrAppealNotPending
	}
	return nil
}

// ReversalActionType maps the negative action being appealed to the explicit
// action that reverses it when the appeal is approved. Bans have their own
// reversal type; unhide covers both hide and delete.
func ReversalActionType(negativeAction string) string {
	if negativeAction == models.ActionBanUser {
		return models.ActionUnbanUser
	}
	return models.ActionUnhide
}
