package handlers

import (
	"errors"
	"net/http"

	"sitecms/services/user"
	"sitecms/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the admin login.
type AuthHandler struct {
	UserService user.UserService
	Logger      *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler handles POST /api/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Warn("Invalid login request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	res, err := h.UserService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, user.ErrInvalidEmail):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email address")
	case errors.Is(err, user.ErrInvalidPassword):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid password")
	case err != nil:
		h.Logger.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed, please try again")
	default:
		utils.Respond(c, http.StatusOK, res)
	}
}
