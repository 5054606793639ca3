package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pulseroom/api-go/config"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type EvidenceUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type UploadCompleteRequest struct {
	Key string `json:"key" binding:"required"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	// Create R2 client
	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetEvidenceUploadURL godoc
// @Summary Get a presigned URL for appeal evidence
// @Description Returns a short-lived URL for uploading a supporting document or screenshot to attach to an appeal
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body EvidenceUploadRequest true "Evidence upload request"
// @Success 200 {object} StandardResponse
// @Router /uploads/evidence [post]
func (uc *UploadController) GetEvidenceUploadURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req EvidenceUploadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !uc.isValidEvidenceFile(req.ContentType, req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence file type or size"})
		return
	}

	key := uc.generateEvidenceKey(user.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	response := PresignedURLResponse{
		UploadURL: presignedURL,
		FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		Key:       key,
		ExpiresIn: 1800,
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    response,
		Message: "Presigned URL generated successfully",
	})
}

// ConfirmEvidenceUpload godoc
// @Summary Confirm an evidence upload
// @Description Verifies the file actually landed in storage before it may be referenced from an appeal
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body UploadCompleteRequest true "Upload confirmation request"
// @Success 200 {object} StandardResponse
// @Router /uploads/evidence/confirm [post]
func (uc *UploadController) ConfirmEvidenceUpload(c *gin.Context) {
	user := utils.GetUser(c)
	var req UploadCompleteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !uc.verifyFileOwnership(req.Key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	exists, err := uc.verifyFileExists(req.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify file upload"})
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"key":        req.Key,
			"fileUrl":    fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, req.Key),
			"uploadedBy": user.UserID,
			"uploadedAt": time.Now(),
		},
		Message: "Upload confirmed successfully",
	})
}

// DeleteEvidence godoc
// @Summary Delete an uploaded evidence file
// @Description Only the uploader may delete; ownership is derived from the key prefix
// @Tags uploads
// @Accept json
// @Produce json
// @Param key path string true "File key"
// @Success 200 {object} StandardResponse
// @Router /uploads/evidence/{key} [delete]
func (uc *UploadController) DeleteEvidence(c *gin.Context) {
	user := utils.GetUser(c)
	key := c.Param("key")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !uc.verifyFileOwnership(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := uc.deleteFile(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

// Helper functions
func (uc *UploadController) isValidEvidenceFile(contentType string, fileSize int64) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "application/pdf",
	}

	validType := false
	for _, validContentType := range validTypes {
		if contentType == validContentType {
			validType = true
			break
		}
	}

	if !validType {
		return false
	}

	// Evidence size limit: 10MB
	return fileSize <= 10*1024*1024
}

func (uc *UploadController) generateEvidenceKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	uuid := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("appeals/%d/%d_%s%s", userID, timestamp, uuid, ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = 30 * time.Minute
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) verifyFileExists(key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.R2Client.HeadObject(context.TODO(), input)
	if err != nil {
		return false, nil
	}

	return true, nil
}

func (uc *UploadController) deleteFile(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.R2Client.DeleteObject(context.TODO(), input)
	return err
}

func (uc *UploadController) verifyFileOwnership(key string, userID uint) bool {
	// Key format: appeals/{userID}/{timestamp}_{uuid}.{ext}
	parts := strings.Split(key, "/")
	if len(parts) < 3 || parts[0] != "appeals" {
		return false
	}

	return fmt.Sprintf("%d", userID) == parts[1]
}
