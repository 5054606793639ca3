package policy

import (
	"testing"

	"github.com/pulseroom/api-go/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubmit(t *testing.T) {
	active := ModerationState{Hidden: true, LastNegativeAction: models.ActionHide, LastNegativeID: 1}

	t.Run("valid submission", func(t *testing.T) {
		assert.NoError(t, ValidateSubmit(active, true, nil))
	})

	t.Run("duplicate pending appeal", func(t *testing.T) {
		existing := &models.Appeal{Status: models.AppealStatusPending}
		assert.ErrorIs(t, ValidateSubmit(active, true, existing), ErrDuplicateAppeal)
	})

	t.Run("resolved appeal does not block a new one", func(t *testing.T) {
		existing := &models.Appeal{Status: models.AppealStatusRejected}
		assert.NoError(t, ValidateSubmit(active, true, existing))
	})

	t.Run("no negative action", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSubmit(ModerationState{}, true, nil), ErrNotAppealable)
	})

	t.Run("reversed action is not appealable", func(t *testing.T) {
		reversed := FoldActions([]models.ModerationAction{
			{ID: 1, ActionType: models.ActionHide},
			{ID: 2, ActionType: models.ActionUnhide},
		})
		assert.ErrorIs(t, ValidateSubmit(reversed, true, nil), ErrNotAppealable)
	})

	t.Run("non-owner cannot submit", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSubmit(active, false, nil), ErrNotAppealable)
	})
}

func TestValidateResolve(t *testing.T) {
	assert.NoError(t, ValidateResolve(&models.Appeal{Status: models.AppealStatusPending}))

	// Resolution happens exactly once; every later attempt fails the same way
	for _, status := range []string{
		models.AppealStatusApproved,
		models.AppealStatusRejected,
		models.AppealStatusWithdrawn,
	} {
		assert.ErrorIs(t, ValidateResolve(&models.Appeal{Status: status}), ErrAppealNotPending, status)
	}
}

func TestValidateWithdraw(t *testing.T) {
	appeal := &models.Appeal{SubmittedByUserID: 5, Status: models.AppealStatusPending}

	assert.NoError(t, ValidateWithdraw(appeal, 5))
	assert.ErrorIs(t, ValidateWithdraw(appeal, 6), ErrNotSubmitter)

	withdrawn := &models.Appeal{SubmittedByUserID: 5, Status: models.AppealStatusWithdrawn}
	assert.ErrorIs(t, ValidateWithdraw(withdrawn, 5), ErrAppealNotPending)
}

func TestReversalActionType(t *testing.T) {
	assert.Equal(t, models.ActionUnbanUser, ReversalActionType(models.ActionBanUser))
	assert.Equal(t, models.ActionUnhide, ReversalActionType(models.ActionHide))
	assert.Equal(t, models.ActionUnhide, ReversalActionType(models.ActionDelete))
}
