package models_test

import (
	"testing"

	"towers-verifier-backend/internal/models"
)

func TestParseTileCounts(t *testing.T) {
	counts, err := models.ParseTileCounts("4, 4,5,6")
	if err != nil {
		t.Fatalf("valid input failed: %v", err)
	}
	if len(counts) != 4 || counts[0] != 4 || counts[3] != 6 {
		t.Errorf("unexpected counts: %v", counts)
	}

	counts, err = models.ParseTileCounts("  ")
	if err != nil {
		t.Fatalf("empty input should parse as a zero-row board: %v", err)
	}
	if counts == nil || len(counts) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", counts)
	}

	for _, bad := range []string{"3,x,5", "3,,5", "0", "-2", "3;4"} {
		if _, err := models.ParseTileCounts(bad); err == nil {
			t.Errorf("ParseTileCounts(%q) should fail", bad)
		}
	}
}

func TestParseSelections(t *testing.T) {
	selections := models.ParseSelections("0,2,1", 3)
	if len(selections) != 3 || selections[0] != 0 || selections[1] != 2 || selections[2] != 1 {
		t.Errorf("unexpected selections: %v", selections)
	}

	// Malformed picks degrade to no selections, never to an error.
	selections = models.ParseSelections("0,x,1", 3)
	for i, sel := range selections {
		if sel != -1 {
			t.Errorf("malformed input should clear all picks, row %d = %d", i, sel)
		}
	}

	// Short input leaves the remaining rows unpicked; long input is cut off.
	selections = models.ParseSelections("1", 3)
	if selections[0] != 1 || selections[1] != -1 || selections[2] != -1 {
		t.Errorf("unexpected padding: %v", selections)
	}
	selections = models.ParseSelections("1,2,3,4,5", 2)
	if len(selections) != 2 {
		t.Errorf("expected 2 entries, got %v", selections)
	}

	selections = models.ParseSelections("", 2)
	if len(selections) != 2 || selections[0] != -1 || selections[1] != -1 {
		t.Errorf("empty input should mean no picks, got %v", selections)
	}
}

func TestVerifyRequestValidate(t *testing.T) {
	req := &models.VerifyRequest{
		Rows: "3,3",
		Seed: "abc",
		Hash: "0xdeadbeef",
	}
	if err := req.Validate(); err != nil {
		t.Errorf("valid request failed validation: %v", err)
	}

	if err := (&models.VerifyRequest{Rows: "3,3", Hash: "0xff"}).Validate(); err == nil {
		t.Error("missing seed should fail validation")
	}
	if err := (&models.VerifyRequest{Rows: "3,3", Seed: "abc"}).Validate(); err == nil {
		t.Error("missing hash should fail validation")
	}
}

func TestPublishRequestValidate(t *testing.T) {
	req := &models.PublishRequest{
		GameID:     "game_1",
		Rows:       "4,4,5",
		Commitment: "0xabc",
	}
	if err := req.Validate(); err != nil {
		t.Errorf("valid publish request failed: %v", err)
	}

	req.Rows = "4,zero"
	if err := req.Validate(); err == nil {
		t.Error("bad row configuration should fail validation")
	}
}

func TestGenerateEventID(t *testing.T) {
	first := models.GenerateEventID()
	second := models.GenerateEventID()

	if first == "" {
		t.Error("event ID should not be empty")
	}
	if first == second {
		t.Error("event IDs should be unique")
	}
}
