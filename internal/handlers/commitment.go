package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"towers-verifier-backend/internal/fairness"
	"towers-verifier-backend/internal/models"
	"towers-verifier-backend/internal/services"
)

type CommitmentHandler struct {
	verifier     *services.VerifierService
	redisService *services.RedisService
}

func NewCommitmentHandler(verifier *services.VerifierService, redisService *services.RedisService) *CommitmentHandler {
	return &CommitmentHandler{
		verifier:     verifier,
		redisService: redisService,
	}
}

// Publish registers a commitment before a round starts. Operator only.
// The seed stays secret; only the hash of the (future) board is stored.
func (h *CommitmentHandler) Publish(c *gin.Context) {
	var req models.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	tileCounts, _ := models.ParseTileCounts(req.Rows)

	version := req.Version
	if version == "" {
		version = models.GameVersion
	}

	game := &models.PublishedGame{
		GameID:     req.GameID,
		Version:    version,
		TileCounts: tileCounts,
		Commitment: fairness.NormalizeCommitment(req.Commitment),
		CreatedAt:  time.Now(),
	}

	if err := h.redisService.StorePublishedGame(game); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Failed to publish commitment",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    game,
	})
}

// Reveal attaches the seed to a published game once the round is over.
// Operator only, write-once.
func (h *CommitmentHandler) Reveal(c *gin.Context) {
	gameID := c.Param("id")

	var req models.RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	game, err := h.redisService.RevealSeed(gameID, req.Seed)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Failed to reveal seed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    game,
	})
}

func (h *CommitmentHandler) Get(c *gin.Context) {
	gameID := c.Param("id")

	game, err := h.redisService.GetPublishedGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Game not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    game,
	})
}

// Verify recomputes the board for a revealed game straight from the registry
// and checks it against the stored commitment.
func (h *CommitmentHandler) Verify(c *gin.Context) {
	gameID := c.Param("id")

	game, err := h.redisService.GetPublishedGame(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Game not found",
			"details": err.Error(),
		})
		return
	}

	result, err := h.verifier.VerifyPublished(game)
	if err != nil {
		if errors.Is(err, fairness.ErrInvalidInput) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Cannot verify yet",
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

	h.verifier.RecordVerification(&models.VerifyRequest{GameID: gameID}, result)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"match":         result.Match,
		"expected_hash": result.ExpectedHash,
		"computed_hash": result.ComputedHash,
		"state":         result.State,
	})
}
