// Package fairness implements the deterministic board reconstruction and
// commitment check for the towers game. Given the revealed seed and the row
// configuration it rebuilds every bomb position and payout multiplier, then
// checks that hashing the rebuilt state reproduces the commitment the
// operator published before the round.
package fairness

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"towers-verifier-backend/internal/models"
)

// HouseEdge is the fraction shaved off the fair odds on every row. It
// compounds through the running product; published commitments depend on
// that exact behavior, so it must never be "fixed" retroactively.
const HouseEdge = 0.05

// ErrInvalidInput is the single failure category for malformed or degenerate
// verification input. Use errors.Is to detect it.
var ErrInvalidInput = errors.New("invalid input")

// Digest hashes a string with SHA-256 and returns the hex encoding.
func Digest(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

// DeriveBombIndex places the bomb for one row. The digest of
// "{seed}-row{rowIndex}" is truncated to its first 8 hex chars (32 bits) and
// reduced mod tileCount. Callers must guarantee tileCount >= 1; zero is a
// programming error and panics.
func DeriveBombIndex(seed string, rowIndex, tileCount int) int {
	digest := Digest(fmt.Sprintf("%s-row%d", seed, rowIndex))
	n, _ := strconv.ParseUint(digest[:8], 16, 64)
	return int(n % uint64(tileCount))
}

// CalculateMultipliers derives the cumulative payout multiplier for each row.
// Each row multiplies the running product by the fair odds of dodging its
// single bomb, 1/(1-1/tiles), then by (1 - HouseEdge). A 1-tile row divides
// by zero and yields +Inf, which is deliberately left to propagate; the
// serialization step is where that gets rejected.
func CalculateMultipliers(tileCounts []int) []float64 {
	multipliers := make([]float64, 0, len(tileCounts))
	running := 1.0
	for _, tiles := range tileCounts {
		running *= 1 / (1 - 1/float64(tiles))
		running *= 1 - HouseEdge
		multipliers = append(multipliers, running)
	}
	return multipliers
}

// ReconstructRows rebuilds the full ordered row sequence from the row
// configuration and the seed. Output order matches input order; an empty
// configuration yields an empty (non-nil) slice so it serializes as [].
func ReconstructRows(tileCounts []int, seed string) []models.Row {
	multipliers := CalculateMultipliers(tileCounts)
	rows := make([]models.Row, 0, len(tileCounts))
	for i, tiles := range tileCounts {
		rows = append(rows, models.Row{
			TileCount:     tiles,
			BombTileIndex: DeriveBombIndex(seed, i, tiles),
			Multiplier:    multipliers[i],
		})
	}
	return rows
}

// BuildGameState assembles the canonical game state. The selected overlay is
// carried through untouched for display and has no effect on the commitment.
func BuildGameState(version string, tileCounts []int, seed string, selected []int) models.GameState {
	return models.GameState{
		Version:       version,
		Rows:          ReconstructRows(tileCounts, seed),
		Seed:          seed,
		SelectedTiles: selected,
	}
}

// commitmentPayload is the exact field set and order that gets hashed:
// version, rows (tileCount, bombTileIndex, multiplier each), seed. Player
// selections are excluded by construction. Changing anything here breaks
// every published commitment.
type commitmentPayload struct {
	Version string       `json:"version"`
	Rows    []models.Row `json:"rows"`
	Seed    string       `json:"seed"`
}

// CommitmentHash serializes the canonical subset of the game state and
// digests it, returning "0x" plus the hex digest. A non-finite multiplier
// cannot be encoded and reports as invalid input.
func CommitmentHash(state models.GameState) (string, error) {
	for i, row := range state.Rows {
		if math.IsInf(row.Multiplier, 0) || math.IsNaN(row.Multiplier) {
			return "", fmt.Errorf("%w: non-finite multiplier at row %d (tileCount %d)",
				ErrInvalidInput, i, row.TileCount)
		}
	}

	rows := state.Rows
	if rows == nil {
		rows = []models.Row{}
	}

	payload, err := json.Marshal(commitmentPayload{
		Version: state.Version,
		Rows:    rows,
		Seed:    state.Seed,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return "0x" + Digest(string(payload)), nil
}

// NormalizeCommitment prepares a commitment string for comparison: trims
// whitespace, lowercases, and strips an optional 0x prefix.
func NormalizeCommitment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimPrefix(s, "0x")
}

// Verify recomputes the commitment of the given state and compares it against
// the published hash. A mismatch is a normal false result, never an error;
// errors are reserved for state that cannot be serialized at all.
func Verify(state models.GameState, expectedHash string) (bool, error) {
	computed, err := CommitmentHash(state)
	if err != nil {
		return false, err
	}
	return NormalizeCommitment(computed) == NormalizeCommitment(expectedHash), nil
}
