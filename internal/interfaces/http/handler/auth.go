package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/retailbooks/backend/internal/infrastructure/auth"
	"github.com/retailbooks/backend/internal/infrastructure/config"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// AuthHandler handles operator authentication. The deployment runs with
// a single operator credential from configuration; there is no user store.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	cfg        config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{jwtService: jwtService, cfg: cfg}
}

// LoginRequest represents an operator login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	Username    string `json:"username"`
}

// Login checks the operator credential and issues a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	if h.cfg.OperatorPasswordHash == "" {
		h.Unauthorized(c, "Login is not configured")
		return
	}

	if req.Username != h.cfg.OperatorUsername {
		h.Unauthorized(c, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.OperatorPasswordHash), []byte(req.Password)); err != nil {
		h.Unauthorized(c, "Invalid credentials")
		return
	}

	operatorID, err := uuid.Parse(h.cfg.OperatorID)
	if err != nil {
		h.InternalError(c, "Operator ID is misconfigured")
		return
	}

	token, err := h.jwtService.GenerateToken(operatorID, req.Username)
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}

	h.Success(c, LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt.Unix(),
		Username:    req.Username,
	})
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}
