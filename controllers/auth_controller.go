package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lodge-backend/services"
	"lodge-backend/utils"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	UserSvc *services.UserService
	Secret  string
}

func NewAuthController(userSvc *services.UserService, secret string) *AuthController {
	return &AuthController{UserSvc: userSvc, Secret: secret}
}

func tokenTTL() time.Duration {
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return 12 * time.Hour
}

// Login verifies credentials against the bcrypt hash and issues an access
// token carrying the caller's role and lodge scope.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	email := strings.TrimSpace(payload.Email)
	if email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := ctrl.UserSvc.FindByEmail(email)
	if err != nil || !utils.VerifyPassword(user.Password, payload.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, exp, err := utils.NewAccessToken(ctrl.Secret, utils.AuthClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		LodgeID: user.LodgeID,
	}, tokenTTL())
	if err != nil {
		log.Printf("Login token error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"expires": exp,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"lodge_id": user.LodgeID,
		},
	})
}
