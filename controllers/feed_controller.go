package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type FeedController struct {
	DB *gorm.DB
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

// GetFeed godoc
// @Summary Get the caller's chronological feed
// @Description Returns recent posts from accepted followings, newest first. Every post passes the full visibility pipeline before it is returned
// @Tags feed
// @Accept json
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /feed [get]
func (fc *FeedController) GetFeed(c *gin.Context) {
	user := utils.GetUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	// Fetch a page of candidates; moderation and visibility filtering can only
	// shrink the page, so the result may be shorter than pageSize
	var posts []models.Post
	result := fc.DB.Preload("User").
		Where("user_id IN (?) OR user_id = ?",
			fc.DB.Model(&models.Follow{}).
				Select("following_user_id").
				Where("follower_user_id = ? AND status = ?", user.UserID, models.FollowStatusAccepted),
			user.UserID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	visible, err := filterVisiblePosts(fc.DB, user.UserID, posts, user.IsAdmin())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post visibility"})
		return
	}

	var total int64
	fc.DB.Model(&models.Post{}).
		Where("user_id IN (?) OR user_id = ?",
			fc.DB.Model(&models.Follow{}).
				Select("following_user_id").
				Where("follower_user_id = ? AND status = ?", user.UserID, models.FollowStatusAccepted),
			user.UserID).
		Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"posts": visible,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(pageSize)),
		},
	})
}
