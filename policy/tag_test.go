package policy

import (
	"testing"

	"github.com/pulseroom/api-go/models"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveTagSettingDefaults(t *testing.T) {
	s := EffectiveTagSetting(nil)

	assert.Equal(t, models.TagApprovalManual, s.ApprovalMode)
	assert.True(t, s.AllowFromFollowers)
	assert.True(t, s.AllowFromFollowing)
	assert.False(t, s.AllowFromAnyone)
	assert.False(t, s.HideUntilApproved)
}

func TestEffectiveTagSettingPassthrough(t *testing.T) {
	stored := models.TagSetting{ApprovalMode: models.TagApprovalAuto, AllowFromAnyone: true}
	assert.Equal(t, stored, EffectiveTagSetting(&stored))
}

func TestDecideCreateTag(t *testing.T) {
	auto := models.TagSetting{
		ApprovalMode:       models.TagApprovalAuto,
		AllowFromFollowers: true,
	}
	disabled := models.TagSetting{
		ApprovalMode:       models.TagApprovalDisabled,
		AllowFromFollowers: true,
		AllowFromAnyone:    true,
	}
	anyoneManual := models.TagSetting{
		ApprovalMode:    models.TagApprovalManual,
		AllowFromAnyone: true,
	}

	tests := []struct {
		name      string
		rel       Relationship
		isPrivate bool
		setting   *models.TagSetting
		want      TagDecision
	}{
		{
			name: "blocked denies before anything else",
			rel:  Relationship{IsBlockedEitherWay: true, IsFollower: true},
			setting: &models.TagSetting{
				ApprovalMode:    models.TagApprovalAuto,
				AllowFromAnyone: true,
			},
			want: TagDecision{Allowed: false, Reason: ReasonBlocked},
		},
		{
			name:    "disabled denies even an allowed relation",
			rel:     Relationship{IsFollower: true},
			setting: &disabled,
			want:    TagDecision{Allowed: false, Reason: ReasonTagDisabled},
		},
		{
			name:    "stranger denied under default policy",
			setting: nil,
			want:    TagDecision{Allowed: false, Reason: ReasonRelationNotAllowed},
		},
		{
			name:    "follower auto-accepted on public account",
			rel:     Relationship{IsFollower: true},
			setting: &auto,
			want:    TagDecision{Allowed: true, AutoAccept: true},
		},
		{
			name:      "private account forces manual review under auto mode",
			rel:       Relationship{IsFollower: true},
			isPrivate: true,
			setting:   &auto,
			want:      TagDecision{Allowed: true, AutoAccept: false},
		},
		{
			name:    "follower left pending under default manual policy",
			rel:     Relationship{IsFollower: true},
			setting: nil,
			want:    TagDecision{Allowed: true, AutoAccept: false},
		},
		{
			name:    "followed-back tagger allowed under default policy",
			rel:     Relationship{IsFollowing: true},
			setting: nil,
			want:    TagDecision{Allowed: true, AutoAccept: false},
		},
		{
			name:    "anyone flag admits a stranger",
			setting: &anyoneManual,
			want:    TagDecision{Allowed: true, AutoAccept: false},
		},
		{
			name: "follower denied when followers not allowed",
			rel:  Relationship{IsFollower: true},
			setting: &models.TagSetting{
				ApprovalMode:       models.TagApprovalManual,
				AllowFromFollowing: true,
			},
			want: TagDecision{Allowed: false, Reason: ReasonRelationNotAllowed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideCreateTag(tt.rel, tt.isPrivate, tt.setting)
			assert.Equal(t, tt.want, got)
		})
	}
}
