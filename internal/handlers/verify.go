package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"towers-verifier-backend/internal/fairness"
	"towers-verifier-backend/internal/models"
	"towers-verifier-backend/internal/services"
)

type VerifyHandler struct {
	verifier *services.VerifierService
}

func NewVerifyHandler(verifier *services.VerifierService) *VerifyHandler {
	return &VerifyHandler{
		verifier: verifier,
	}
}

// PostVerify handles POST /api/verify with a JSON body.
func (h *VerifyHandler) PostVerify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	h.runVerification(c, &req)
}

// GetVerify handles GET /verify, the query-string entry point. A player can
// paste a full verification link and get the reconstructed board back.
func (h *VerifyHandler) GetVerify(c *gin.Context) {
	req := models.VerifyRequest{
		Version:       c.Query("version"),
		Rows:          c.Query("rows"),
		Seed:          c.Query("seed"),
		Hash:          c.Query("hash"),
		SelectedTiles: c.Query("selected"),
		GameID:        c.Query("game_id"),
	}

	h.runVerification(c, &req)
}

func (h *VerifyHandler) runVerification(c *gin.Context, req *models.VerifyRequest) {
	result, err := h.verifier.Verify(req)
	if err != nil {
		if errors.Is(err, fairness.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid input",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Verification failed",
			"details": err.Error(),
		})
		return
	}

	h.verifier.RecordVerification(req, result)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"match":         result.Match,
		"expected_hash": result.ExpectedHash,
		"computed_hash": result.ComputedHash,
		"state":         result.State,
	})
}
