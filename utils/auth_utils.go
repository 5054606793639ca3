package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/pulseroom/api-go/models"
)

type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func (u *UserClaims) IsAdmin() bool {
	return u.Role == models.RoleAdmin
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
