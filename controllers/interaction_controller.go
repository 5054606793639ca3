package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB *gorm.DB
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{DB: db}
}

// FollowUser godoc
// @Summary Follow or unfollow a user
// @Description Toggles follow status; follows to private accounts start pending
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "User ID to follow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/follow [post]
func (ic *InteractionController) FollowUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	targetUserID := c.Param("userId")

	var targetUser models.User
	if err := ic.DB.First(&targetUser, targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Prevent self-following
	if currentUser.UserID == targetUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	gate := newRelationshipGate(ic.DB)
	rel := gate.Resolve(currentUser.UserID, targetUser.ID)
	if rel.IsBlockedEitherWay {
		// Same response as a nonexistent user so blocks stay invisible
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existingFollow models.Follow
	result := ic.DB.Where("follower_user_id = ? AND following_user_id = ?", currentUser.UserID, targetUser.ID).First(&existingFollow)

	if result.Error == gorm.ErrRecordNotFound {
		status := models.FollowStatusAccepted
		if targetUser.IsPrivate {
			status = models.FollowStatusPending
		}

		follow := models.Follow{
			FollowerUserID:  currentUser.UserID,
			FollowingUserID: targetUser.ID,
			Status:          status,
		}

		if err := ic.DB.Create(&follow).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"following": true,
			"status":    status,
			"message":   "Successfully followed user",
		})
	} else {
		if err := ic.DB.Delete(&existingFollow).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"following": false,
			"message":   "Successfully unfollowed user",
		})
	}
}

// RespondFollowRequest godoc
// @Summary Accept or decline a pending follow request
// @Description Only the followed (private) user may respond
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Follow request ID"
// @Success 200 {object} map[string]interface{}
// @Router /follow-requests/{id} [put]
func (ic *InteractionController) RespondFollowRequest(c *gin.Context) {
	currentUser := utils.GetUser(c)
	followID := c.Param("id")

	var input struct {
		Action string `json:"action" binding:"required,oneof=accept decline"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var follow models.Follow
	if err := ic.DB.First(&follow, followID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow request not found"})
		return
	}

	if follow.FollowingUserID != currentUser.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only respond to your own follow requests"})
		return
	}

	if follow.Status != models.FollowStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Follow request already handled"})
		return
	}

	if input.Action == "accept" {
		follow.Status = models.FollowStatusAccepted
		if err := ic.DB.Save(&follow).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept follow request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Follow request accepted"})
		return
	}

	if err := ic.DB.Delete(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline follow request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Follow request declined"})
}

// GetFollowRequests godoc
// @Summary List pending follow requests for the caller
// @Tags interactions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /follow-requests [get]
func (ic *InteractionController) GetFollowRequests(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var requests []struct {
		ID        uint      `json:"id"`
		UserID    uint      `json:"userId"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"requestedAt"`
	}

	result := ic.DB.Model(&models.Follow{}).
		Select("follows.id, users.id as user_id, users.username, follows.created_at").
		Joins("JOIN users ON users.id = follows.follower_user_id").
		Where("follows.following_user_id = ? AND follows.status = ?", currentUser.UserID, models.FollowStatusPending).
		Order("follows.created_at DESC").
		Find(&requests)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}

// GetUserFollowers godoc
// @Summary Get user's followers
// @Description Returns paginated list of user's accepted followers
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/followers [get]
func (ic *InteractionController) GetUserFollowers(c *gin.Context) {
	userID := c.Param("userId")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	var followers []struct {
		UserID    uint      `json:"userId"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"followedAt"`
	}

	var total int64
	ic.DB.Model(&models.Follow{}).
		Where("following_user_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Count(&total)

	result := ic.DB.Model(&models.Follow{}).
		Select("users.id as user_id, users.username, follows.created_at").
		Joins("JOIN users ON users.id = follows.follower_user_id").
		Where("follows.following_user_id = ? AND follows.status = ?", userID, models.FollowStatusAccepted).
		Offset(offset).
		Limit(pageSize).
		Find(&followers)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetUserFollowing godoc
// @Summary Get users that a user is following
// @Description Returns paginated list of accepted follows
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/following [get]
func (ic *InteractionController) GetUserFollowing(c *gin.Context) {
	userID := c.Param("userId")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	var following []struct {
		UserID    uint      `json:"userId"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"followedAt"`
	}

	var total int64
	ic.DB.Model(&models.Follow{}).
		Where("follower_user_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Count(&total)

	result := ic.DB.Model(&models.Follow{}).
		Select("users.id as user_id, users.username, follows.created_at").
		Joins("JOIN users ON users.id = follows.following_user_id").
		Where("follows.follower_user_id = ? AND follows.status = ?", userID, models.FollowStatusAccepted).
		Offset(offset).
		Limit(pageSize).
		Find(&following)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following": following,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}
