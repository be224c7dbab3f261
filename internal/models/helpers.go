package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateEventID() string {
	return fmt.Sprintf("verify_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// ParseTileCounts parses a comma-separated row configuration like "4,4,5,6".
// An empty string is a valid zero-row board. Each count must be a positive
// integer; anything else fails the whole parse.
func ParseTileCounts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid tile count %q", part)
		}
		if n < 1 {
			return nil, fmt.Errorf("tile count must be positive, got %d", n)
		}
		counts = append(counts, n)
	}

	return counts, nil
}

// ParseSelections parses the player's comma-separated tile picks. Selections
// are display-only, so malformed input degrades to "no selections" instead of
// failing the verification. The result always has one entry per row, with -1
// for rows that have no pick.
func ParseSelections(s string, rowCount int) []int {
	selections := make([]int, rowCount)
	for i := range selections {
		selections[i] = -1
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return selections
	}

	for i, part := range strings.Split(s, ",") {
		if i >= rowCount {
			break
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			// Bad pick data loses the whole overlay, never the verification.
			for j := range selections {
				selections[j] = -1
			}
			return selections
		}
		selections[i] = n
	}

	return selections
}

func (r *VerifyRequest) Validate() error {
	if strings.TrimSpace(r.Seed) == "" {
		return fmt.Errorf("seed is required")
	}
	if strings.TrimSpace(r.Hash) == "" {
		return fmt.Errorf("hash is required")
	}
	return nil
}

func (r *PublishRequest) Validate() error {
	if strings.TrimSpace(r.GameID) == "" {
		return fmt.Errorf("game_id is required")
	}
	if strings.TrimSpace(r.Commitment) == "" {
		return fmt.Errorf("commitment is required")
	}
	if _, err := ParseTileCounts(r.Rows); err != nil {
		return err
	}
	return nil
}
