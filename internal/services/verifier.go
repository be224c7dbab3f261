package services

import (
	"fmt"
	"log/slog"
	"time"

	"towers-verifier-backend/internal/fairness"
	"towers-verifier-backend/internal/models"
)

// VerifierService turns raw string inputs into a verification result. It is
// stateless: every call re-derives the full board from scratch, so concurrent
// callers need no coordination. Redis and the broadcaster are optional side
// channels for the feed; the CLI runs with both nil.
type VerifierService struct {
	redisService *RedisService
	broadcaster  Broadcaster
}

func NewVerifierService() *VerifierService {
	return &VerifierService{}
}

func (vs *VerifierService) WithRedis(redisService *RedisService) *VerifierService {
	vs.redisService = redisService
	return vs
}

func (vs *VerifierService) WithBroadcaster(broadcaster Broadcaster) *VerifierService {
	vs.broadcaster = broadcaster
	return vs
}

// Verify runs the full pipeline: parse → reconstruct → hash → compare.
// All parse failures surface as fairness.ErrInvalidInput; a hash mismatch is
// a normal false result.
func (vs *VerifierService) Verify(req *models.VerifyRequest) (*models.VerifyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", fairness.ErrInvalidInput, err)
	}

	tileCounts, err := models.ParseTileCounts(req.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fairness.ErrInvalidInput, err)
	}

	version := req.Version
	if version == "" {
		version = models.GameVersion
	}

	selected := models.ParseSelections(req.SelectedTiles, len(tileCounts))
	state := fairness.BuildGameState(version, tileCounts, req.Seed, selected)

	computed, err := fairness.CommitmentHash(state)
	if err != nil {
		return nil, err
	}

	return &models.VerifyResult{
		Match:        fairness.NormalizeCommitment(computed) == fairness.NormalizeCommitment(req.Hash),
		ExpectedHash: req.Hash,
		ComputedHash: computed,
		State:        state,
	}, nil
}

// VerifyPublished checks a registry entry against its own stored commitment.
// Only possible once the operator has revealed the seed.
func (vs *VerifierService) VerifyPublished(game *models.PublishedGame) (*models.VerifyResult, error) {
	if game.Seed == "" {
		return nil, fmt.Errorf("%w: seed for game %s not yet revealed", fairness.ErrInvalidInput, game.GameID)
	}

	version := game.Version
	if version == "" {
		version = models.GameVersion
	}

	state := fairness.BuildGameState(version, game.TileCounts, game.Seed, nil)

	computed, err := fairness.CommitmentHash(state)
	if err != nil {
		return nil, err
	}

	return &models.VerifyResult{
		Match:        fairness.NormalizeCommitment(computed) == fairness.NormalizeCommitment(game.Commitment),
		ExpectedHash: game.Commitment,
		ComputedHash: computed,
		State:        state,
	}, nil
}

// CommitmentFor computes the commitment the operator should publish for a
// given configuration and seed.
func (vs *VerifierService) CommitmentFor(version string, tileCounts []int, seed string) (string, error) {
	if version == "" {
		version = models.GameVersion
	}
	return fairness.CommitmentHash(fairness.BuildGameState(version, tileCounts, seed, nil))
}

// RecordVerification pushes a verification event to the registry backlog and
// the live feed. Failures here are logged and swallowed; the verification
// result already belongs to the caller.
func (vs *VerifierService) RecordVerification(req *models.VerifyRequest, result *models.VerifyResult) {
	event := &models.VerificationEvent{
		ID:       models.GenerateEventID(),
		GameID:   req.GameID,
		Match:    result.Match,
		RowCount: len(result.State.Rows),
		At:       time.Now(),
	}

	if vs.redisService != nil {
		if err := vs.redisService.RecordVerificationEvent(event); err != nil {
			slog.Warn("failed to record verification event", "err", err)
		}
	}

	if vs.broadcaster != nil {
		vs.broadcaster.BroadcastVerification(event)
	}
}
