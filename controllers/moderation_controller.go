package controllers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type ModerationController struct {
	DB *gorm.DB
}

type CreateActionRequest struct {
	TargetType       string `json:"targetType" binding:"required,oneof=post comment user chat_message"`
	TargetID         uint   `json:"targetId" binding:"required"`
	ActionType       string `json:"actionType" binding:"required,oneof=hide unhide delete ban_user unban_user warn force_visibility"`
	Reason           string `json:"reason" binding:"required"`
	ForcedVisibility string `json:"forcedVisibility" binding:"omitempty,oneof=public followers private custom"`
}

func NewModerationController(db *gorm.DB) *ModerationController {
	return &ModerationController{DB: db}
}

// CreateAction godoc
// @Summary Append a moderation action
// @Description Admin-only. Appends one action to the target's append-only history, together with its audit entry
// @Tags moderation
// @Accept json
// @Produce json
// @Param action body CreateActionRequest true "Moderation action request"
// @Success 201 {object} map[string]interface{}
// @Router /admin/moderation/actions [post]
func (mc *ModerationController) CreateAction(c *gin.Context) {
	admin := utils.GetUser(c)
	var req CreateActionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason must not be empty"})
		return
	}

	// Ban and unban only apply to user targets
	if (req.ActionType == models.ActionBanUser || req.ActionType == models.ActionUnbanUser) && req.TargetType != models.TargetTypeUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ban actions require a user target"})
		return
	}

	if req.ActionType == models.ActionForceVisibility && req.ForcedVisibility == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "force_visibility requires a forcedVisibility value"})
		return
	}

	if err := mc.verifyTargetExists(req.TargetType, req.TargetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found"})
		return
	}

	tx := mc.DB.Begin()

	// Serialize with concurrent appeal resolutions for this target
	if err := lockModerationTarget(tx, req.TargetType, req.TargetID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock target"})
		return
	}

	action := models.ModerationAction{
		TargetType:       req.TargetType,
		TargetID:         req.TargetID,
		ActionType:       req.ActionType,
		Reason:           req.Reason,
		ForcedVisibility: req.ForcedVisibility,
		ActorAdminID:     admin.UserID,
	}

	if err := tx.Create(&action).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create moderation action"})
		return
	}

	if err := appendAuditLog(tx, admin.UserID, req.TargetType, req.TargetID,
		"moderation_"+req.ActionType, req.Reason, ""); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit log"})
		return
	}

	// Bans also flip the account status so login checks see it
	if req.ActionType == models.ActionBanUser || req.ActionType == models.ActionUnbanUser {
		status := models.AccountStatusBanned
		if req.ActionType == models.ActionUnbanUser {
			status = models.AccountStatusActive
		}
		if err := tx.Model(&models.User{}).Where("id = ?", req.TargetID).
			Update("account_status", status).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account status"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "action": action})
}

// GetTargetActions godoc
// @Summary List the action history of a target
// @Description Admin-only. Returns the append-only history in fold order, plus the folded state
// @Tags moderation
// @Accept json
// @Produce json
// @Param targetType path string true "Target type"
// @Param targetId path string true "Target ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/moderation/{targetType}/{targetId}/actions [get]
func (mc *ModerationController) GetTargetActions(c *gin.Context) {
	targetType := c.Param("targetType")
	targetID, err := strconv.Atoi(c.Param("targetId"))
	if err != nil || !models.ValidTargetType(targetType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target"})
		return
	}

	var actions []models.ModerationAction
	result := mc.DB.Preload("ActorAdmin").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("id ASC").
		Find(&actions)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching moderation actions"})
		return
	}

	state, err := loadModerationState(mc.DB, targetType, uint(targetID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error folding moderation state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"actions": actions,
		"state": gin.H{
			"hidden":           state.Hidden,
			"deleted":          state.Deleted,
			"banned":           state.Banned,
			"forcedVisibility": state.ForcedVisibility,
			"appealable":       state.LastNegativeAction != "",
		},
	})
}

// GetAuditTrail godoc
// @Summary List the moderation audit trail
// @Description Admin-only. Paginated, newest first, optionally filtered by target
// @Tags moderation
// @Accept json
// @Produce json
// @Param targetType query string false "Filter by target type"
// @Param targetId query integer false "Filter by target ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/moderation/audit [get]
func (mc *ModerationController) GetAuditTrail(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	db := mc.DB.Model(&models.AuditLog{})
	if targetType := c.Query("targetType"); targetType != "" {
		db = db.Where("target_type = ?", targetType)
		if targetID := c.Query("targetId"); targetID != "" {
			db = db.Where("target_id = ?", targetID)
		}
	}

	var total int64
	db.Count(&total)

	var entries []models.AuditLog
	result := db.Preload("ActorUser").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching audit trail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(pageSize)),
		},
	})
}

// verifyTargetExists guards against moderating targets that were never created.
func (mc *ModerationController) verifyTargetExists(targetType string, targetID uint) error {
	var count int64
	var err error

	switch targetType {
	case models.TargetTypePost:
		err = mc.DB.Model(&models.Post{}).Where("id = ?", targetID).Count(&count).Error
	case models.TargetTypeComment:
		err = mc.DB.Model(&models.Comment{}).Where("id = ?", targetID).Count(&count).Error
	case models.TargetTypeUser:
		err = mc.DB.Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error
	case models.TargetTypeChatMessage:
		err = mc.DB.Model(&models.ChatMessage{}).Where("message_id = ?", targetID).Count(&count).Error
	default:
		return fmt.Errorf("unknown target type %q", targetType)
	}

	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d not found", targetType, targetID)
	}
	return nil
}
