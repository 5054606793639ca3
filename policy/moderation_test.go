package policy

import (
	"testing"

	"github.com/pulseroom/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func action(id uint, actionType string) models.ModerationAction {
	return models.ModerationAction{ID: id, ActionType: actionType}
}

func TestFoldActions(t *testing.T) {
	tests := []struct {
		name    string
		actions []models.ModerationAction
		want    ModerationState
	}{
		{
			name: "empty history",
			want: ModerationState{},
		},
		{
			name:    "hide sets hidden and negative action",
			actions: []models.ModerationAction{action(1, models.ActionHide)},
			want: ModerationState{
				Hidden:             true,
				LastNegativeAction: models.ActionHide,
				LastNegativeID:     1,
				LastActionID:       1,
			},
		},
		{
			name: "unhide restores a hidden target",
			actions: []models.ModerationAction{
				action(1, models.ActionHide),
				action(2, models.ActionUnhide),
			},
			want: ModerationState{LastActionID: 2},
		},
		{
			name: "delete is sticky until explicit unhide",
			actions: []models.ModerationAction{
				action(1, models.ActionDelete),
				action(2, models.ActionHide),
				action(3, models.ActionUnhide),
			},
			want: ModerationState{LastActionID: 3},
		},
		{
			name: "unhide does not clear a ban",
			actions: []models.ModerationAction{
				action(1, models.ActionBanUser),
				action(2, models.ActionUnhide),
			},
			want: ModerationState{
				Banned:             true,
				LastNegativeAction: models.ActionBanUser,
				LastNegativeID:     1,
				LastActionID:       2,
			},
		},
		{
			name: "unban clears a ban",
			actions: []models.ModerationAction{
				action(1, models.ActionBanUser),
				action(2, models.ActionUnbanUser),
			},
			want: ModerationState{LastActionID: 2},
		},
		{
			name: "warn has no visibility effect",
			actions: []models.ModerationAction{
				action(1, models.ActionWarn),
			},
			want: ModerationState{LastActionID: 1},
		},
		{
			name: "latest force_visibility wins",
			actions: []models.ModerationAction{
				{ID: 1, ActionType: models.ActionForceVisibility, ForcedVisibility: models.VisibilityFollowers},
				{ID: 2, ActionType: models.ActionForceVisibility, ForcedVisibility: models.VisibilityPublic},
			},
			want: ModerationState{ForcedVisibility: models.VisibilityPublic, LastActionID: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldActions(tt.actions))
		})
	}
}

func TestResolveEffectiveStateHidden(t *testing.T) {
	owner := uint(1)
	post := models.Post{UserID: owner, Visibility: models.VisibilityPublic}
	hidden := ModerationState{Hidden: true, LastNegativeAction: models.ActionHide, LastNegativeID: 1}

	t.Run("stranger does not see hidden post", func(t *testing.T) {
		state := ResolveEffectiveState(2, &post, Relationship{}, hidden, ModerationState{}, false)
		assert.False(t, state.EffectiveVisible)
		assert.False(t, state.OwnerCanEdit)
	})

	t.Run("owner still sees hidden post", func(t *testing.T) {
		state := ResolveEffectiveState(owner, &post, Relationship{}, hidden, ModerationState{}, false)
		assert.True(t, state.EffectiveVisible)
		assert.False(t, state.OwnerCanEdit)
		assert.True(t, state.Appealable)
	})

	t.Run("admin sees hidden post", func(t *testing.T) {
		state := ResolveEffectiveState(2, &post, Relationship{}, hidden, ModerationState{}, true)
		assert.True(t, state.EffectiveVisible)
	})
}

func TestResolveEffectiveStateDeleted(t *testing.T) {
	owner := uint(1)
	post := models.Post{UserID: owner, Visibility: models.VisibilityPublic}
	deleted := ModerationState{Deleted: true, LastNegativeAction: models.ActionDelete, LastNegativeID: 1}

	t.Run("owner does not see deleted post", func(t *testing.T) {
		state := ResolveEffectiveState(owner, &post, Relationship{}, deleted, ModerationState{}, false)
		assert.False(t, state.EffectiveVisible)
		assert.True(t, state.EffectivelyDeleted)
		assert.True(t, state.Appealable)
	})

	t.Run("only admin sees deleted post", func(t *testing.T) {
		state := ResolveEffectiveState(2, &post, Relationship{}, deleted, ModerationState{}, true)
		assert.True(t, state.EffectiveVisible)
	})
}

func TestResolveEffectiveStateBannedAuthor(t *testing.T) {
	owner := uint(1)
	post := models.Post{UserID: owner, Visibility: models.VisibilityPublic}
	banned := ModerationState{Banned: true, LastNegativeAction: models.ActionBanUser, LastNegativeID: 1}

	state := ResolveEffectiveState(2, &post, Relationship{}, ModerationState{}, banned, false)
	assert.False(t, state.EffectiveVisible)
	assert.False(t, state.OwnerCanEdit)

	state = ResolveEffectiveState(2, &post, Relationship{}, ModerationState{}, banned, true)
	assert.True(t, state.EffectiveVisible)
}

func TestResolveEffectiveStateForcedVisibility(t *testing.T) {
	owner := uint(1)
	post := models.Post{UserID: owner, Visibility: models.VisibilityFollowers}
	forced := ModerationState{ForcedVisibility: models.VisibilityPublic}

	// A follower-only post forced public becomes visible to strangers, but the
	// declared value on the post itself is untouched
	state := ResolveEffectiveState(2, &post, Relationship{}, forced, ModerationState{}, false)
	assert.True(t, state.EffectiveVisible)
	assert.True(t, state.OwnerCanEdit)
	require.Equal(t, models.VisibilityFollowers, post.Visibility)

	// Block still vetoes a forced-public post
	state = ResolveEffectiveState(2, &post, Relationship{IsBlockedEitherWay: true}, forced, ModerationState{}, false)
	assert.False(t, state.EffectiveVisible)
}

func TestCanAppeal(t *testing.T) {
	active := ModerationState{Hidden: true, LastNegativeAction: models.ActionHide, LastNegativeID: 1}

	assert.False(t, CanAppeal(ModerationState{}, true, false), "no negative action")
	assert.False(t, CanAppeal(active, false, false), "not the owner")
	assert.False(t, CanAppeal(active, true, true), "pending appeal exists")
	assert.True(t, CanAppeal(active, true, false))
}
