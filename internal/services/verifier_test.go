package services_test

import (
	"errors"
	"testing"
	"time"

	"towers-verifier-backend/internal/fairness"
	"towers-verifier-backend/internal/models"
	"towers-verifier-backend/internal/services"
)

func TestVerifierService(t *testing.T) {
	verifier := services.NewVerifierService()

	commitment, err := verifier.CommitmentFor("v1", []int{4, 4, 5, 6}, "deadbeef")
	if err != nil {
		t.Fatalf("CommitmentFor failed: %v", err)
	}

	result, err := verifier.Verify(&models.VerifyRequest{
		Rows: "4,4,5,6",
		Seed: "deadbeef",
		Hash: commitment,
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !result.Match {
		t.Error("recomputed commitment should match")
	}
	if len(result.State.Rows) != 4 {
		t.Errorf("expected 4 reconstructed rows, got %d", len(result.State.Rows))
	}
	if result.ComputedHash != commitment {
		t.Errorf("computed hash mismatch: %s vs %s", result.ComputedHash, commitment)
	}
}

func TestVerifierServiceSelectionsIgnored(t *testing.T) {
	verifier := services.NewVerifierService()

	commitment, err := verifier.CommitmentFor("v1", []int{3, 3}, "abc")
	if err != nil {
		t.Fatalf("CommitmentFor failed: %v", err)
	}

	for _, picks := range []string{"", "0,1", "2,2", "not,numbers"} {
		result, err := verifier.Verify(&models.VerifyRequest{
			Rows:          "3,3",
			Seed:          "abc",
			Hash:          commitment,
			SelectedTiles: picks,
		})
		if err != nil {
			t.Fatalf("Verify with picks %q failed: %v", picks, err)
		}
		if !result.Match {
			t.Errorf("picks %q must not affect the match", picks)
		}
	}
}

func TestVerifierServiceMismatch(t *testing.T) {
	verifier := services.NewVerifierService()

	result, err := verifier.Verify(&models.VerifyRequest{
		Rows: "3,3",
		Seed: "abc",
		Hash: "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	})
	if err != nil {
		t.Fatalf("a wrong hash is a normal false result, not an error: %v", err)
	}
	if result.Match {
		t.Error("wrong hash should not match")
	}
}

func TestVerifierServiceInvalidInput(t *testing.T) {
	verifier := services.NewVerifierService()

	cases := []*models.VerifyRequest{
		{Rows: "3,x", Seed: "abc", Hash: "0xff"}, // non-numeric row
		{Rows: "3,3", Seed: "", Hash: "0xff"},    // missing seed
		{Rows: "3,3", Seed: "abc", Hash: ""},     // missing hash
		{Rows: "1", Seed: "abc", Hash: "0xff"},   // degenerate 1-tile row
	}

	for i, req := range cases {
		_, err := verifier.Verify(req)
		if err == nil {
			t.Errorf("case %d should fail", i)
			continue
		}
		if !errors.Is(err, fairness.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestVerifierServiceEmptyBoard(t *testing.T) {
	verifier := services.NewVerifierService()

	commitment, err := verifier.CommitmentFor("v1", []int{}, "abc")
	if err != nil {
		t.Fatalf("empty board must still have a defined commitment: %v", err)
	}

	result, err := verifier.Verify(&models.VerifyRequest{
		Rows: "",
		Seed: "abc",
		Hash: commitment,
	})
	if err != nil {
		t.Fatalf("Verify on empty board failed: %v", err)
	}
	if !result.Match {
		t.Error("empty board round trip should match")
	}
	if len(result.State.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(result.State.Rows))
	}
}

func TestVerifyPublished(t *testing.T) {
	verifier := services.NewVerifierService()

	commitment, err := verifier.CommitmentFor("v1", []int{4, 4, 4, 4}, "deadbeef")
	if err != nil {
		t.Fatalf("CommitmentFor failed: %v", err)
	}

	game := &models.PublishedGame{
		GameID:     "game_test_1",
		Version:    "v1",
		TileCounts: []int{4, 4, 4, 4},
		Commitment: commitment,
		CreatedAt:  time.Now(),
	}

	// Unrevealed games cannot be verified yet.
	if _, err := verifier.VerifyPublished(game); !errors.Is(err, fairness.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput before reveal, got %v", err)
	}

	game.Seed = "deadbeef"
	result, err := verifier.VerifyPublished(game)
	if err != nil {
		t.Fatalf("VerifyPublished failed: %v", err)
	}
	if !result.Match {
		t.Error("revealed game should verify against its own commitment")
	}

	game.Seed = "tampered"
	result, err = verifier.VerifyPublished(game)
	if err != nil {
		t.Fatalf("VerifyPublished with wrong seed failed: %v", err)
	}
	if result.Match {
		t.Error("wrong seed should not verify")
	}
}
