package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/policy"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type AppealController struct {
	DB *gorm.DB
}

type SubmitAppealRequest struct {
	TargetType     string   `json:"targetType" binding:"required,oneof=post comment user chat_message"`
	TargetID       uint     `json:"targetId" binding:"required"`
	Reason         string   `json:"reason" binding:"required"`
	Detail         string   `json:"detail"`
	AttachmentURLs []string `json:"attachmentUrls"`
}

type ResolveAppealRequest struct {
	Action         string `json:"action" binding:"required,oneof=approve reject"`
	ResolutionNote string `json:"resolutionNote"`
}

func NewAppealController(db *gorm.DB) *AppealController {
	return &AppealController{DB: db}
}

// SubmitAppeal godoc
// @Summary Appeal an active moderation action
// @Description Allowed only while an unreversed hide/delete/ban applies to the submitter's own target and no pending appeal exists for the pair
// @Tags appeals
// @Accept json
// @Produce json
// @Param appeal body SubmitAppealRequest true "Appeal submission request"
// @Success 201 {object} map[string]interface{}
// @Router /appeals [post]
func (apc *AppealController) SubmitAppeal(c *gin.Context) {
	user := utils.GetUser(c)
	var req SubmitAppealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, err := targetOwnerID(apc.DB, req.TargetType, req.TargetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found"})
		return
	}

	if ownerID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only appeal actions against your own content"})
		return
	}

	tx := apc.DB.Begin()

	// Fold and duplicate check run inside the same locked transaction as the
	// write, so two concurrent submissions cannot both pass
	if err := lockModerationTarget(tx, req.TargetType, req.TargetID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock target"})
		return
	}

	state, err := loadModerationState(tx, req.TargetType, req.TargetID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error folding moderation state"})
		return
	}

	var existing *models.Appeal
	var found models.Appeal
	err = tx.Where("target_type = ? AND target_id = ? AND submitted_by_user_id = ? AND status = ?",
		req.TargetType, req.TargetID, user.UserID, models.AppealStatusPending).
		First(&found).Error
	if err == nil {
		existing = &found
	} else if err != gorm.ErrRecordNotFound {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing appeals"})
		return
	}

	if err := policy.ValidateSubmit(state, true, existing); err != nil {
		tx.Rollback()
		switch {
		case errors.Is(err, policy.ErrDuplicateAppeal):
			c.JSON(http.StatusConflict, gin.H{"error": "A pending appeal already exists", "reason": err.Error()})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "Target has no appealable moderation action", "reason": err.Error()})
		}
		return
	}

	appeal := models.Appeal{
		TargetType:        req.TargetType,
		TargetID:          req.TargetID,
		SubmittedByUserID: user.UserID,
		Reason:            req.Reason,
		Detail:            req.Detail,
		AttachmentURLs:    pq.StringArray(req.AttachmentURLs),
		Status:            models.AppealStatusPending,
	}

	if err := tx.Create(&appeal).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appeal"})
		return
	}

	if err := appendAuditLog(tx, user.UserID, req.TargetType, req.TargetID,
		"appeal_submitted", req.Reason, req.Detail); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "appeal": appeal})
}

// ResolveAppeal godoc
// @Summary Approve or reject a pending appeal
// @Description Admin-only. Approval appends the explicit reversal action in the same transaction; resolving twice fails with appeal_not_pending
// @Tags appeals
// @Accept json
// @Produce json
// @Param id path string true "Appeal ID"
// @Param resolution body ResolveAppealRequest true "Resolution request"
// @Success 200 {object} map[string]interface{}
// @Router /admin/appeals/{id} [put]
func (apc *AppealController) ResolveAppeal(c *gin.Context) {
	admin := utils.GetUser(c)
	appealID := c.Param("id")

	var req ResolveAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := apc.DB.Begin()

	var appeal models.Appeal
	if err := tx.First(&appeal, appealID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Appeal not found"})
		return
	}

	if err := lockModerationTarget(tx, appeal.TargetType, appeal.TargetID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock target"})
		return
	}

	// Re-read under the lock: a concurrent resolution may have won the race
	if err := tx.First(&appeal, appealID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Appeal not found"})
		return
	}

	if err := policy.ValidateResolve(&appeal); err != nil {
		tx.Rollback()
		c.JSON(http.StatusConflict, gin.H{"error": "Appeal is no longer pending", "reason": err.Error()})
		return
	}

	status := models.AppealStatusRejected
	if req.Action == "approve" {
		status = models.AppealStatusApproved
	}

	if status == models.AppealStatusApproved {
		state, err := loadModerationState(tx, appeal.TargetType, appeal.TargetID)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error folding moderation state"})
			return
		}

		// Approval reverses the action being appealed with its own explicit
		// counter-action, so the fold reflects restored visibility
		if state.LastNegativeAction != "" {
			reversal := models.ModerationAction{
				TargetType:   appeal.TargetType,
				TargetID:     appeal.TargetID,
				ActionType:   policy.ReversalActionType(state.LastNegativeAction),
				Reason:       fmt.Sprintf("appeal %d approved", appeal.ID),
				ActorAdminID: admin.UserID,
			}
			if err := tx.Create(&reversal).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reversal action"})
				return
			}

			if reversal.ActionType == models.ActionUnbanUser {
				if err := tx.Model(&models.User{}).Where("id = ?", appeal.TargetID).
					Update("account_status", models.AccountStatusActive).Error; err != nil {
					tx.Rollback()
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account status"})
					return
				}
			}
		}
	}

	now := time.Now()
	appeal.Status = status
	appeal.ResolutionNote = req.ResolutionNote
	appeal.ResolvedByAdminID = &admin.UserID
	appeal.ResolvedAt = &now

	if err := tx.Save(&appeal).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appeal"})
		return
	}

	if err := appendAuditLog(tx, admin.UserID, appeal.TargetType, appeal.TargetID,
		"appeal_"+status, req.ResolutionNote, ""); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appeal": appeal})
}

// WithdrawAppeal godoc
// @Summary Withdraw a pending appeal
// @Description Submitter-only; withdrawn is terminal and moderation state is untouched
// @Tags appeals
// @Accept json
// @Produce json
// @Param id path string true "Appeal ID"
// @Success 200 {object} map[string]interface{}
// @Router /appeals/{id}/withdraw [post]
func (apc *AppealController) WithdrawAppeal(c *gin.Context) {
	user := utils.GetUser(c)
	appealID := c.Param("id")

	tx := apc.DB.Begin()

	var appeal models.Appeal
	if err := tx.First(&appeal, appealID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Appeal not found"})
		return
	}

	if err := lockModerationTarget(tx, appeal.TargetType, appeal.TargetID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock target"})
		return
	}

	if err := tx.First(&appeal, appealID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Appeal not found"})
		return
	}

	if err := policy.ValidateWithdraw(&appeal, user.UserID); err != nil {
		tx.Rollback()
		if errors.Is(err, policy.ErrNotSubmitter) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only withdraw your own appeals"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Appeal is no longer pending", "reason": err.Error()})
		return
	}

	now := time.Now()
	appeal.Status = models.AppealStatusWithdrawn
	appeal.ResolvedAt = &now

	if err := tx.Save(&appeal).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw appeal"})
		return
	}

	if err := appendAuditLog(tx, user.UserID, appeal.TargetType, appeal.TargetID,
		"appeal_withdrawn", appeal.Reason, ""); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appeal": appeal})
}

// GetMyAppeals godoc
// @Summary List the caller's appeals
// @Tags appeals
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /appeals [get]
func (apc *AppealController) GetMyAppeals(c *gin.Context) {
	user := utils.GetUser(c)

	var appeals []models.Appeal
	result := apc.DB.
		Where("submitted_by_user_id = ?", user.UserID).
		Order("created_at DESC").
		Find(&appeals)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching appeals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appeals": appeals})
}

// GetPendingAppeals godoc
// @Summary List pending appeals for review
// @Description Admin-only, oldest first
// @Tags appeals
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/appeals [get]
func (apc *AppealController) GetPendingAppeals(c *gin.Context) {
	var appeals []models.Appeal
	result := apc.DB.Preload("SubmittedByUser").
		Where("status = ?", models.AppealStatusPending).
		Order("created_at ASC").
		Find(&appeals)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching pending appeals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appeals": appeals})
}

// targetOwnerID resolves who owns a moderation target; appeals may only come
// from the owner.
func targetOwnerID(db *gorm.DB, targetType string, targetID uint) (uint, error) {
	switch targetType {
	case models.TargetTypePost:
		var post models.Post
		if err := db.First(&post, targetID).Error; err != nil {
			return 0, err
		}
		return post.UserID, nil
	case models.TargetTypeComment:
		var comment models.Comment
		if err := db.First(&comment, targetID).Error; err != nil {
			return 0, err
		}
		return comment.UserID, nil
	case models.TargetTypeUser:
		var user models.User
		if err := db.First(&user, targetID).Error; err != nil {
			return 0, err
		}
		return user.ID, nil
	case models.TargetTypeChatMessage:
		var message models.ChatMessage
		if err := db.First(&message, targetID).Error; err != nil {
			return 0, err
		}
		return message.SenderID, nil
	}
	return 0, fmt.Errorf("unknown target type %q", targetType)
}
