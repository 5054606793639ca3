package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type PostController struct {
	DB *gorm.DB
}

type CreatePostRequest struct {
	Content        string   `json:"content" binding:"required"`
	MediaURLs      []string `json:"mediaUrls"`
	Hashtags       []string `json:"hashtags"`
	Visibility     string   `json:"visibility" binding:"omitempty,oneof=public followers private custom"`
	IncludeUserIDs []int64  `json:"includeUserIds"`
	ExcludeUserIDs []int64  `json:"excludeUserIds"`
}

type UpdatePostRequest struct {
	Content        string   `json:"content"`
	MediaURLs      []string `json:"mediaUrls"`
	Hashtags       []string `json:"hashtags"`
	Visibility     string   `json:"visibility" binding:"omitempty,oneof=public followers private custom"`
	IncludeUserIDs []int64  `json:"includeUserIds"`
	ExcludeUserIDs []int64  `json:"excludeUserIds"`
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a post with its visibility declaration
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} models.Post
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	// Extract hashtags from content if not provided
	hashtags := req.Hashtags
	if len(hashtags) == 0 {
		hashtags = extractHashtags(req.Content)
	}

	post := models.Post{
		Content:        req.Content,
		MediaURL:       pq.StringArray(req.MediaURLs),
		Hashtags:       pq.StringArray(hashtags),
		UserID:         user.UserID,
		Visibility:     visibility,
		IncludeUserIDs: pqInt64Array(req.IncludeUserIDs),
		ExcludeUserIDs: pqInt64Array(req.ExcludeUserIDs),
		CreatedAt:      time.Now(),
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary Get a single post
// @Description Returns the post if the caller may see it; hidden and blocked outcomes look identical to a nonexistent post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	state, _, err := resolvePostState(pc.DB, user.UserID, &post, user.IsAdmin())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post visibility"})
		return
	}

	if !state.EffectiveVisible {
		// Denial must be indistinguishable from a nonexistent post
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var postResponse struct {
		models.Post
		Username string `json:"username"`
	}

	pc.DB.Model(&post).
		Select("posts.*, users.username").
		Joins("JOIN users ON posts.user_id = users.id").
		First(&postResponse)

	c.JSON(http.StatusOK, gin.H{
		"post":               postResponse,
		"effectivelyDeleted": state.EffectivelyDeleted,
		"ownerCanEdit":       state.OwnerCanEdit,
	})
}

// GetEffectiveState godoc
// @Summary Get the effective moderation state of a post
// @Description Returns the folded visibility/actionability decision for the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/state [get]
func (pc *PostController) GetEffectiveState(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	state, _, err := resolvePostState(pc.DB, user.UserID, &post, user.IsAdmin())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post state"})
		return
	}

	if !state.EffectiveVisible && user.UserID != post.UserID && !user.IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	pending, err := hasPendingAppeal(pc.DB, models.TargetTypePost, post.ID, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state": gin.H{
			"effectiveVisible":   state.EffectiveVisible,
			"effectivelyDeleted": state.EffectivelyDeleted,
			"ownerCanEdit":       state.OwnerCanEdit && user.UserID == post.UserID,
			"canAppeal":          state.Appealable && user.UserID == post.UserID && !pending,
		},
	})
}

// UpdatePost godoc
// @Summary Update an existing post
// @Description Updates content and the visibility declaration; refused while a moderation override is active
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} models.Post
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")
	var req UpdatePostRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Verify ownership
	if post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own posts"})
		return
	}

	state, _, err := resolvePostState(pc.DB, user.UserID, &post, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post state"})
		return
	}

	// An active moderation override suspends the owner's edit rights
	if !state.OwnerCanEdit {
		c.JSON(http.StatusForbidden, gin.H{"error": "Post is under moderation and cannot be edited"})
		return
	}

	updates := make(map[string]interface{})

	if req.Content != "" {
		updates["content"] = req.Content
		// Re-extract hashtags if content is updated and no explicit hashtags provided
		if len(req.Hashtags) == 0 {
			updates["hashtags"] = pq.StringArray(extractHashtags(req.Content))
		}
	}
	if len(req.MediaURLs) > 0 {
		updates["media_url"] = pq.StringArray(req.MediaURLs)
	}
	if len(req.Hashtags) > 0 {
		updates["hashtags"] = pq.StringArray(req.Hashtags)
	}
	if req.Visibility != "" {
		updates["visibility"] = req.Visibility
	}
	if req.IncludeUserIDs != nil {
		updates["include_user_ids"] = pqInt64Array(req.IncludeUserIDs)
	}
	if req.ExcludeUserIDs != nil {
		updates["exclude_user_ids"] = pqInt64Array(req.ExcludeUserIDs)
	}
	updates["updated_at"] = time.Now()

	if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes a post and related data
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Verify ownership
	if post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	state, _, err := resolvePostState(pc.DB, user.UserID, &post, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post state"})
		return
	}

	if !state.OwnerCanEdit {
		c.JSON(http.StatusForbidden, gin.H{"error": "Post is under moderation and cannot be deleted"})
		return
	}

	tx := pc.DB.Begin()

	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comments"})
		return
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.UserTag{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tags"})
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post successfully deleted"})
}

// GetUserPosts godoc
// @Summary Get posts by user
// @Description Returns paginated posts by a user, filtered through the visibility engine
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	user := utils.GetUser(c)
	ownerID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	var posts []models.Post
	result := pc.DB.
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	visible, err := filterVisiblePosts(pc.DB, user.UserID, posts, user.IsAdmin())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	var total int64
	pc.DB.Model(&models.Post{}).Where("user_id = ?", ownerID).Count(&total)

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

// Helper function to extract hashtags from content
func extractHashtags(content string) []string {
	words := strings.Fields(content)
	var hashtags []string
	for _, word := range words {
		if strings.HasPrefix(word, "#") {
			hashtag := strings.TrimPrefix(word, "#")
			if hashtag != "" {
				hashtags = append(hashtags, hashtag)
			}
		}
	}
	return hashtags
}
