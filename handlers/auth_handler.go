package handlers

import (
	"net/http"

	"news-portal/helper"
	"news-portal/middleware"
	"news-portal/models"
	"news-portal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		h.Helper.SendError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
