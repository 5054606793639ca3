package controllers

import (
	"github.com/lib/pq"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/policy"
	"gorm.io/gorm"
)

func pqInt64Array(ids []int64) pq.Int64Array {
	return pq.Int64Array(ids)
}

// newRelationshipGate wires the policy gate to the follow/block tables. The
// gate itself fails closed when a lookup errors.
func newRelationshipGate(db *gorm.DB) *policy.RelationshipGate {
	return &policy.RelationshipGate{
		LookupFollow: func(followerID, followingID uint) (bool, error) {
			var count int64
			err := db.Model(&models.Follow{}).
				Where("follower_user_id = ? AND following_user_id = ? AND status = ?",
					followerID, followingID, models.FollowStatusAccepted).
				Count(&count).Error
			return count > 0, err
		},
		LookupBlock: func(userA, userB uint) (bool, error) {
			var count int64
			err := db.Model(&models.Block{}).
				Where("(blocker_user_id = ? AND blocked_user_id = ?) OR (blocker_user_id = ? AND blocked_user_id = ?)",
					userA, userB, userB, userA).
				Count(&count).Error
			return count > 0, err
		},
	}
}

// loadModerationState folds the full action history of one target. Use the
// transaction handle when the caller is about to append a new action, so the
// fold and the write see the same history.
func loadModerationState(db *gorm.DB, targetType string, targetID uint) (policy.ModerationState, error) {
	var actions []models.ModerationAction
	if err := db.Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("id ASC").Find(&actions).Error; err != nil {
		return policy.ModerationState{}, err
	}
	return policy.FoldActions(actions), nil
}

// lockModerationTarget serializes concurrent moderation and appeal writes for
// one target. The lock is released when the transaction ends.
func lockModerationTarget(tx *gorm.DB, targetType string, targetID uint) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?), ?)", targetType, int64(targetID)).Error
}

// appendAuditLog writes one audit trail row. Must be called inside the same
// transaction as the action it records, so both persist or neither does.
func appendAuditLog(tx *gorm.DB, actorID uint, targetType string, targetID uint, activity, reason, detail string) error {
	entry := models.AuditLog{
		ActorUserID: actorID,
		TargetType:  targetType,
		TargetID:    targetID,
		Activity:    activity,
		Reason:      reason,
		Detail:      detail,
	}
	return tx.Create(&entry).Error
}

// resolvePostState runs the whole pipeline for one post and viewer:
// relationship, declared visibility, and the moderation folds of both the
// post and its author.
func resolvePostState(db *gorm.DB, viewerID uint, post *models.Post, isAdmin bool) (policy.EffectiveState, policy.Relationship, error) {
	gate := newRelationshipGate(db)
	rel := gate.Resolve(viewerID, post.UserID)

	targetState, err := loadModerationState(db, models.TargetTypePost, post.ID)
	if err != nil {
		return policy.EffectiveState{}, rel, err
	}
	authorState, err := loadModerationState(db, models.TargetTypeUser, post.UserID)
	if err != nil {
		return policy.EffectiveState{}, rel, err
	}

	return policy.ResolveEffectiveState(viewerID, post, rel, targetState, authorState, isAdmin), rel, nil
}

// filterVisiblePosts runs every post through the full pipeline and keeps the
// ones the viewer may see. Relationship and author folds are reused across
// posts by the same author within one call, never across requests.
func filterVisiblePosts(db *gorm.DB, viewerID uint, posts []models.Post, isAdmin bool) ([]models.Post, error) {
	gate := newRelationshipGate(db)
	rels := make(map[uint]policy.Relationship)
	authorStates := make(map[uint]policy.ModerationState)

	visible := make([]models.Post, 0, len(posts))
	for i := range posts {
		post := &posts[i]

		rel, ok := rels[post.UserID]
		if !ok {
			rel = gate.Resolve(viewerID, post.UserID)
			rels[post.UserID] = rel
		}

		authorState, ok := authorStates[post.UserID]
		if !ok {
			var err error
			authorState, err = loadModerationState(db, models.TargetTypeUser, post.UserID)
			if err != nil {
				return nil, err
			}
			authorStates[post.UserID] = authorState
		}

		targetState, err := loadModerationState(db, models.TargetTypePost, post.ID)
		if err != nil {
			return nil, err
		}

		state := policy.ResolveEffectiveState(viewerID, post, rel, targetState, authorState, isAdmin)
		if state.EffectiveVisible {
			visible = append(visible, *post)
		}
	}
	return visible, nil
}

// hasPendingAppeal reports whether the pair already has an open appeal.
func hasPendingAppeal(db *gorm.DB, targetType string, targetID, submitterID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Appeal{}).
		Where("target_type = ? AND target_id = ? AND submitted_by_user_id = ? AND status = ?",
			targetType, targetID, submitterID, models.AppealStatusPending).
		Count(&count).Error
	return count > 0, err
}
