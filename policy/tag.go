package policy

import (
	"github.com/pulseroom/api-go/models"
)

// Denial reason codes returned to callers as structured results, never errors.
const (
	ReasonBlocked            = "blocked"
	ReasonTagDisabled        = "tag_disabled"
	ReasonRelationNotAllowed = "relation_not_allowed"
)

type TagDecision struct {
	Allowed    bool   `json:"allowed"`
	AutoAccept bool   `json:"autoAccept"`
	Reason     string `json:"reason,omitempty"`
}

// EffectiveTagSetting applies the default tag policy when the user never
// customized theirs. Defaults live here, in one place, instead of nullable
// fields threaded through call sites.
func EffectiveTagSetting(setting *models.TagSetting) models.TagSetting {
	if setting == nil {
		return models.TagSetting{
			ApprovalMode:       models.TagApprovalManual,
			AllowFromFollowers: true,
			AllowFromFollowing: true,
			AllowFromAnyone:    false,
			HideUntilApproved:  false,
		}
	}
	return *setting
}

// DecideCreateTag decides whether the tagger may tag the settings owner and
// whether the tag is auto-accepted or left pending for manual review. Checks
// apply in strict order; the first match wins.
//
// rel is the relationship between tagger and tagged user, from the tagged
// user's point of view: IsFollower means the tagger follows the tagged user.
func DecideCreateTag(rel Relationship, isPrivateAccount bool, setting *models.TagSetting) TagDecision {
	if rel.IsBlockedEitherWay {
		return TagDecision{Allowed: false, Reason: ReasonBlocked}
	}

	s := EffectiveTagSetting(setting)

	if s.ApprovalMode == models.TagApprovalDisabled {
		return TagDecision{Allowed: false, Reason: ReasonTagDisabled}
	}

	relationAllowed := (rel.IsFollower && s.AllowFromFollowers) ||
		(rel.IsFollowing && s.AllowFromFollowing) ||
		s.AllowFromAnyone
	if !relationAllowed {
		return TagDecision{Allowed: false, Reason: ReasonRelationNotAllowed}
	}

	// A private account always forces manual review, even under auto mode.
	if s.ApprovalMode == models.TagApprovalAuto && !isPrivateAccount {
		return TagDecision{Allowed: true, AutoAccept: true}
	}

	return TagDecision{Allowed: true, AutoAccept: false}
}
