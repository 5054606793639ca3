package controllers

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/config"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB           *gorm.DB
	GoogleConfig *config.GoogleConfig
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:           db,
		GoogleConfig: config.NewGoogleConfig(),
	}
}

// validateUsernamePattern validates username format and constraints
func validateUsernamePattern(username string) error {
	trimmedUsername := strings.TrimSpace(username)

	if len(trimmedUsername) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(trimmedUsername) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}

	startsWithLetter, _ := regexp.MatchString(`^[a-zA-Z]`, trimmedUsername)
	if !startsWithLetter {
		return fmt.Errorf("username must start with a letter")
	}

	validPattern, _ := regexp.MatchString(`^[a-zA-Z][a-zA-Z0-9_]*$`, trimmedUsername)
	if !validPattern {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}

	reserved := []string{"admin", "root", "api", "www", "mail", "ftp", "test", "demo", "user", "guest", "null", "undefined"}
	for _, reservedWord := range reserved {
		if strings.ToLower(trimmedUsername) == reservedWord {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}

	return nil
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		IsPrivate bool   `json:"isPrivate"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := validateUsernamePattern(input.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	hashedPasswordStr := string(hashedPassword)

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  &hashedPasswordStr,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		GoogleID:  nil, // Explicitly set to nil for email registration
		Provider:  "email",
		Role:      models.RoleUser,
		IsPrivate: input.IsPrivate,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"username":  user.Username,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"isPrivate": user.IsPrivate,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.AccountStatus == models.AccountStatusBanned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "profilePicture": user.Avatar},
		"success":       true,
	})
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var input struct {
		IDToken string `json:"id_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	userInfo, err := ac.GoogleConfig.VerifyIDToken(input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token", "success": false})
		return
	}

	var user models.User
	err = ac.DB.Where("google_id = ?", userInfo.ID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		// First Google sign-in: create the account
		username := strings.Split(userInfo.Email, "@")[0]
		user = models.User{
			Username:      username,
			Email:         userInfo.Email,
			FirstName:     userInfo.GivenName,
			LastName:      userInfo.FamilyName,
			Avatar:        userInfo.Picture,
			GoogleID:      &userInfo.ID,
			Provider:      "google",
			Role:          models.RoleUser,
			EmailVerified: userInfo.VerifiedEmail,
		}
		if err := ac.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create account", "success": false})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not look up account", "success": false})
		return
	}

	if user.AccountStatus == models.AccountStatusBanned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended", "success": false})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "profilePicture": user.Avatar},
		"success":       true,
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	accessTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // Access token expires in 7 days
	})

	accessToken, err := accessTokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate access token", "success": false})
		return
	}

	refreshTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(), // Refresh token expires in 30 days
	})

	newRefreshToken, err := refreshTokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate refresh token", "success": false})
		return
	}

	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = time.Now().Add(time.Hour * 24 * 30)
	ac.DB.Save(&refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "profilePicture": user.Avatar},
		"success":       true,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	ac.DB.Where("user_id = ?", user.UserID).Delete(&models.RefreshToken{})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        dbUser.ID,
			"username":  dbUser.Username,
			"email":     dbUser.Email,
			"firstName": dbUser.FirstName,
			"lastName":  dbUser.LastName,
			"bio":       dbUser.Bio,
			"avatar":    dbUser.Avatar,
			"isPrivate": dbUser.IsPrivate,
			"role":      dbUser.Role,
			"createdAt": dbUser.CreatedAt,
		},
	})
}

func (ac *AuthController) issueTokens(user *models.User) (string, string, error) {
	accessTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // Token expires in 7 days
	})

	refreshTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(), // Refresh token expires in 30 days
	})

	accessToken, err := accessTokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", "", err
	}

	refreshToken, err := refreshTokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", "", err
	}

	ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(time.Hour * 24 * 30),
	})

	return accessToken, refreshToken, nil
}
