package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/policy"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type TagController struct {
	DB *gorm.DB
}

type CreateTagRequest struct {
	TaggedUserID uint `json:"taggedUserId" binding:"required"`
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{DB: db}
}

// CreateTag godoc
// @Summary Tag a user on a post
// @Description Creates a user tag subject to the tagged user's tag policy; auto-accepted or left pending
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param tag body CreateTagRequest true "Tag creation request"
// @Success 201 {object} map[string]interface{}
// @Router /posts/{id}/tags [post]
func (tc *TagController) CreateTag(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := tc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// The tagger must be able to see the post at all
	state, _, err := resolvePostState(tc.DB, user.UserID, &post, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post visibility"})
		return
	}
	if !state.EffectiveVisible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var taggedUser models.User
	if err := tc.DB.First(&taggedUser, req.TaggedUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.UserTag
	if err := tc.DB.Where("post_id = ? AND tagged_user_id = ? AND status IN ?",
		post.ID, taggedUser.ID, []string{models.TagStatusPending, models.TagStatusAccepted}).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already tagged on this post"})
		return
	}

	// Relationship from the tagged user's point of view: IsFollower means the
	// tagger follows the tagged user
	gate := newRelationshipGate(tc.DB)
	rel := gate.Resolve(user.UserID, taggedUser.ID)

	var stored *models.TagSetting
	var setting models.TagSetting
	if err := tc.DB.Where("user_id = ?", taggedUser.ID).First(&setting).Error; err == nil {
		stored = &setting
	}

	decision := policy.DecideCreateTag(rel, taggedUser.IsPrivate, stored)
	if !decision.Allowed {
		if decision.Reason == policy.ReasonBlocked {
			// Blocked taggers must not learn the account exists
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Tagging not allowed", "reason": decision.Reason})
		return
	}

	status := models.TagStatusPending
	if decision.AutoAccept {
		status = models.TagStatusAccepted
	}

	tag := models.UserTag{
		PostID:       post.ID,
		TaggedUserID: taggedUser.ID,
		TaggerUserID: user.UserID,
		Status:       status,
	}

	if err := tc.DB.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"tag":        tag,
		"autoAccept": decision.AutoAccept,
	})
}

// RespondTag godoc
// @Summary Accept or reject a pending tag
// @Description Only the tagged user may respond; rejected is terminal
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} map[string]interface{}
// @Router /tags/{id} [put]
func (tc *TagController) RespondTag(c *gin.Context) {
	user := utils.GetUser(c)
	tagID := c.Param("id")

	var input struct {
		Action string `json:"action" binding:"required,oneof=accept reject"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tag models.UserTag
	if err := tc.DB.First(&tag, tagID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	if tag.TaggedUserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only respond to your own tags"})
		return
	}

	if tag.Status != models.TagStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag has already been handled"})
		return
	}

	if input.Action == "accept" {
		tag.Status = models.TagStatusAccepted
	} else {
		tag.Status = models.TagStatusRejected
	}

	if err := tc.DB.Save(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tag": tag})
}

// RemoveTag godoc
// @Summary Remove an accepted tag
// @Description The tagged user or the post owner may remove an accepted tag; removed is terminal
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} map[string]interface{}
// @Router /tags/{id} [delete]
func (tc *TagController) RemoveTag(c *gin.Context) {
	user := utils.GetUser(c)
	tagID := c.Param("id")

	var tag models.UserTag
	if err := tc.DB.Preload("Post").First(&tag, tagID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	if tag.TaggedUserID != user.UserID && tag.Post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the tagged user or the post owner can remove a tag"})
		return
	}

	if tag.Status != models.TagStatusAccepted && tag.Status != models.TagStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag has already been handled"})
		return
	}

	tag.Status = models.TagStatusRemoved
	if err := tc.DB.Save(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Tag removed successfully"})
}

// GetMyPendingTags godoc
// @Summary List the caller's pending tags
// @Tags tags
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tags/pending [get]
func (tc *TagController) GetMyPendingTags(c *gin.Context) {
	user := utils.GetUser(c)

	var tags []models.UserTag
	result := tc.DB.Preload("Post").Preload("TaggerUser").
		Where("tagged_user_id = ? AND status = ?", user.UserID, models.TagStatusPending).
		Order("created_at DESC").
		Find(&tags)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching pending tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tags": tags})
}

// GetPostTags godoc
// @Summary List tags on a post
// @Description Pending tags are hidden from third parties when the tagged user opted into hide-until-approved
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/tags [get]
func (tc *TagController) GetPostTags(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := tc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	state, _, err := resolvePostState(tc.DB, user.UserID, &post, user.IsAdmin())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating post visibility"})
		return
	}
	if !state.EffectiveVisible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var tags []models.UserTag
	result := tc.DB.Preload("TaggedUser").
		Where("post_id = ? AND status IN ?", post.ID, []string{models.TagStatusPending, models.TagStatusAccepted}).
		Find(&tags)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tags"})
		return
	}

	visible := make([]models.UserTag, 0, len(tags))
	for _, tag := range tags {
		if tag.Status == models.TagStatusAccepted {
			visible = append(visible, tag)
			continue
		}

		// Pending tags stay visible to the participants regardless of setting
		if user.UserID == tag.TaggedUserID || user.UserID == tag.TaggerUserID || user.UserID == post.UserID {
			visible = append(visible, tag)
			continue
		}

		var stored *models.TagSetting
		var setting models.TagSetting
		if err := tc.DB.Where("user_id = ?", tag.TaggedUserID).First(&setting).Error; err == nil {
			stored = &setting
		}
		if !policy.EffectiveTagSetting(stored).HideUntilApproved {
			visible = append(visible, tag)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tags": visible})
}
