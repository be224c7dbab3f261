package models

import "time"

// GameVersion is the only board format shipped so far. It is part of the
// commitment payload, so bumping it invalidates every published hash.
const GameVersion = "v1"

// Row is one reconstructed row of the tower. The json tags define the
// canonical field order used for commitment hashing; do not reorder them.
type Row struct {
	TileCount     int     `json:"tileCount"`
	BombTileIndex int     `json:"bombTileIndex"`
	Multiplier    float64 `json:"multiplier"`
}

// GameState is the full reconstructed board. SelectedTiles is a display
// overlay only and never enters the commitment payload; -1 marks a row the
// player made no pick on.
type GameState struct {
	Version       string `json:"version"`
	Rows          []Row  `json:"rows"`
	Seed          string `json:"seed"`
	SelectedTiles []int  `json:"selected_tiles,omitempty"`
}

// PublishedGame is an operator-published commitment record. Seed stays empty
// until the operator reveals it after the round ends.
type PublishedGame struct {
	GameID     string    `json:"game_id" redis:"game_id"`
	Version    string    `json:"version" redis:"version"`
	TileCounts []int     `json:"tile_counts" redis:"tile_counts"`
	Commitment string    `json:"commitment" redis:"commitment"`
	Seed       string    `json:"seed,omitempty" redis:"seed"`
	CreatedAt  time.Time `json:"created_at" redis:"created_at"`
	RevealedAt time.Time `json:"revealed_at,omitempty" redis:"revealed_at"`
}

// VerificationEvent is what gets pushed to the live feed whenever someone
// runs a verification through the API.
type VerificationEvent struct {
	ID       string    `json:"id"`
	GameID   string    `json:"game_id,omitempty"`
	Match    bool      `json:"match"`
	RowCount int       `json:"row_count"`
	At       time.Time `json:"at"`
}
