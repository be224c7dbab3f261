package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"towers-verifier-backend/internal/services"
)

type HealthHandler struct {
	redisService *services.RedisService
}

func NewHealthHandler(redisService *services.RedisService) *HealthHandler {
	return &HealthHandler{
		redisService: redisService,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	redisHealth := "ok"
	if err := h.redisService.HealthCheck(c.Request.Context()); err != nil {
		redisHealth = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"redis":   redisHealth,
	})
}
