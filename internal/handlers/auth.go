package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"towers-verifier-backend/internal/models"
	"towers-verifier-backend/internal/services"
)

type AuthHandler struct {
	jwtService  *services.JWTService
	operatorKey string
}

func NewAuthHandler(jwtService *services.JWTService, operatorKey string) *AuthHandler {
	return &AuthHandler{
		jwtService:  jwtService,
		operatorKey: operatorKey,
	}
}

// Authenticate exchanges the operator API key for a JWT used on the
// publish/reveal endpoints.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req models.OperatorAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if h.operatorKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.Key), []byte(h.operatorKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid operator key"})
		return
	}

	token, err := h.jwtService.GenerateOperatorToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}
