package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/policy"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	IsPrivate *bool  `json:"isPrivate"`
}

type UpdateTagSettingsRequest struct {
	ApprovalMode       string `json:"approvalMode" binding:"required,oneof=auto manual disabled"`
	AllowFromFollowers *bool  `json:"allowFromFollowers"`
	AllowFromFollowing *bool  `json:"allowFromFollowing"`
	AllowFromAnyone    *bool  `json:"allowFromAnyone"`
	HideUntilApproved  *bool  `json:"hideUntilApproved"`
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUserProfile godoc
// @Summary Get a user's public profile
// @Description Returns profile data, hiding private accounts from non-followers. Blocked viewers get the same response as a nonexistent user.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id} [get]
func (uc *UserController) GetUserProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	targetUserID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var targetUser models.User
	if err := uc.DB.First(&targetUser, targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	gate := newRelationshipGate(uc.DB)
	rel := gate.Resolve(currentUser.UserID, targetUser.ID)

	// A blocked viewer must not be able to tell the account exists
	if rel.IsBlockedEitherWay && currentUser.UserID != targetUser.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	profile := gin.H{
		"id":        targetUser.ID,
		"username":  targetUser.Username,
		"avatar":    targetUser.Avatar,
		"isPrivate": targetUser.IsPrivate,
	}

	// Private accounts only expose full details to accepted followers
	if !targetUser.IsPrivate || rel.IsFollower || currentUser.UserID == targetUser.ID {
		profile["firstName"] = targetUser.FirstName
		profile["lastName"] = targetUser.LastName
		profile["bio"] = targetUser.Bio
		profile["createdAt"] = targetUser.CreatedAt
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Updates profile fields including the private-account flag
// @Tags users
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile update request"
// @Success 200 {object} map[string]interface{}
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	var req UpdateProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}

	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

// BlockUser godoc
// @Summary Block or unblock a user
// @Description Toggles block status for a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID to block"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/block [post]
func (uc *UserController) BlockUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	targetUserID := c.Param("userId")

	var targetUser models.User
	if err := uc.DB.First(&targetUser, targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if currentUser.UserID == targetUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot block yourself"})
		return
	}

	var existingBlock models.Block
	result := uc.DB.Where("blocker_user_id = ? AND blocked_user_id = ?", currentUser.UserID, targetUser.ID).First(&existingBlock)

	if result.Error == gorm.ErrRecordNotFound {
		block := models.Block{
			BlockerUserID: currentUser.UserID,
			BlockedUserID: targetUser.ID,
		}

		tx := uc.DB.Begin()

		if err := tx.Create(&block).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
			return
		}

		// Blocking tears down any follow edges in both directions
		if err := tx.Where("(follower_user_id = ? AND following_user_id = ?) OR (follower_user_id = ? AND following_user_id = ?)",
			currentUser.UserID, targetUser.ID, targetUser.ID, currentUser.UserID).
			Delete(&models.Follow{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
			return
		}

		tx.Commit()
		c.JSON(http.StatusOK, gin.H{
			"message": "User blocked successfully",
			"blocked": true,
		})
	} else {
		if err := uc.DB.Delete(&existingBlock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblock user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "User unblocked successfully",
			"blocked": false,
		})
	}
}

// GetTagSettings godoc
// @Summary Get own tag settings
// @Description Returns the caller's tag settings, with defaults applied when never customized
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /profile/tag-settings [get]
func (uc *UserController) GetTagSettings(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var setting models.TagSetting
	var stored *models.TagSetting
	if err := uc.DB.Where("user_id = ?", currentUser.UserID).First(&setting).Error; err == nil {
		stored = &setting
	}

	effective := policy.EffectiveTagSetting(stored)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tagSettings": gin.H{
			"approvalMode":       effective.ApprovalMode,
			"allowFromFollowers": effective.AllowFromFollowers,
			"allowFromFollowing": effective.AllowFromFollowing,
			"allowFromAnyone":    effective.AllowFromAnyone,
			"hideUntilApproved":  effective.HideUntilApproved,
			"customized":         stored != nil,
		},
	})
}

// UpdateTagSettings godoc
// @Summary Update own tag settings
// @Description Creates the settings row lazily on first customization
// @Tags users
// @Accept json
// @Produce json
// @Param settings body UpdateTagSettingsRequest true "Tag settings update request"
// @Success 200 {object} map[string]interface{}
// @Router /profile/tag-settings [put]
func (uc *UserController) UpdateTagSettings(c *gin.Context) {
	currentUser := utils.GetUser(c)
	var req UpdateTagSettingsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var setting models.TagSetting
	err := uc.DB.Where("user_id = ?", currentUser.UserID).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		// Lazy creation: start from the defaults, then apply the request
		setting = policy.EffectiveTagSetting(nil)
		setting.UserID = currentUser.UserID
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tag settings"})
		return
	}

	setting.ApprovalMode = req.ApprovalMode
	if req.AllowFromFollowers != nil {
		setting.AllowFromFollowers = *req.AllowFromFollowers
	}
	if req.AllowFromFollowing != nil {
		setting.AllowFromFollowing = *req.AllowFromFollowing
	}
	if req.AllowFromAnyone != nil {
		setting.AllowFromAnyone = *req.AllowFromAnyone
	}
	if req.HideUntilApproved != nil {
		setting.HideUntilApproved = *req.HideUntilApproved
	}

	if err := uc.DB.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Tag settings updated successfully"})
}
