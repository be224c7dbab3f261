package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"towers-verifier-backend/internal/services"
)

func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				c.Abort()
				return
			}
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims.Role != "operator" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Operator access required"})
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}

// RateLimitMiddleware throttles the public verify endpoints per client IP.
// No redis means no limiting, which keeps the handler usable in tests and
// embedded setups.
func RateLimitMiddleware(redisService *services.RedisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisService == nil {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if !strings.Contains(path, "/verify") {
			c.Next()
			return
		}

		allowed, err := redisService.CheckRateLimit(c.ClientIP(), "verify",
			services.DefaultRateLimitVerify, time.Minute)
		if err != nil || !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": time.Minute.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
