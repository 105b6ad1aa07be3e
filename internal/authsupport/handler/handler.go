package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/authsupport"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type emailRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type AuthHandler struct {
	uc       authsupport.UseCase
	upstream http.Handler
	logger   logger.ZapLogger
}

// NewAuthHandler serves the email endpoints locally and hands every other
// /auth request to upstream. A nil upstream answers those with 502.
func NewAuthHandler(uc authsupport.UseCase, upstream http.Handler, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		upstream: upstream,
		logger:   log,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Any("/auth/*path", h.Dispatch)
}

// Dispatch routes the local endpoints before anything reaches the proxy.
func (h *AuthHandler) Dispatch(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		switch strings.TrimSuffix(c.Param("path"), "/") {
		case "/send-verification-email":
			h.SendVerificationEmail(c)
			return
		case "/send-password-reset":
			h.SendPasswordReset(c)
			return
		case "/verify-email":
			h.VerifyEmail(c)
			return
		}
	}
	h.Proxy(c)
}

func (h *AuthHandler) Proxy(c *gin.Context) {
	if h.upstream == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Authentication service unavailable"})
		return
	}
	h.upstream.ServeHTTP(c.Writer, c.Request)
}

func (h *AuthHandler) SendVerificationEmail(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.uc.SendVerificationEmail(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification email sent"})
}

func (h *AuthHandler) SendPasswordReset(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.uc.SendPasswordReset(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset email sent"})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
		return
	}

	if err := h.uc.VerifyEmail(c.Request.Context(), strings.TrimSpace(req.Email), req.Code); err != nil {
		if errors.Is(err, authsupport.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification code"})
			return
		}
		h.logger.Error("failed to verify email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
}
