package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/service"
	"quizhive-backend/utilities"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid registration payload"))
		return
	}
	user, err := ac.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "user registered successfully", user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid login payload"))
		return
	}
	user, access, refresh, err := ac.authService.Login(creds.Email, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "login successful", gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (ac *AuthController) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid refresh payload"))
		return
	}
	access, refresh, err := ac.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "tokens refreshed", gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (ac *AuthController) Profile(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	respond(c, http.StatusOK, "profile fetched", user)
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := utilities.CurrentUser(c)
	if !ok {
		respondError(c, apperr.Auth("MISSING_TOKEN", "authentication required"))
		return
	}
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("MISSING_FIELDS", "invalid profile payload"))
		return
	}
	updated, err := ac.authService.UpdateProfile(user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "profile updated", updated)
}
