package models

// VerifyRequest carries the raw, still-unparsed inputs of a verification:
// everything arrives as strings exactly as typed into a form or query string.
type VerifyRequest struct {
	Version       string `json:"version"`
	Rows          string `json:"rows"`
	Seed          string `json:"seed"`
	Hash          string `json:"hash"`
	SelectedTiles string `json:"selected_tiles"`
	GameID        string `json:"game_id"`
}

// VerifyResult is the outcome of one verification. Match false is a normal
// result, not an error.
type VerifyResult struct {
	Match        bool      `json:"match"`
	ExpectedHash string    `json:"expected_hash"`
	ComputedHash string    `json:"computed_hash"`
	State        GameState `json:"state"`
}

type PublishRequest struct {
	GameID     string `json:"game_id" binding:"required"`
	Version    string `json:"version"`
	Rows       string `json:"rows" binding:"required"`
	Commitment string `json:"commitment" binding:"required"`
}

type RevealRequest struct {
	Seed string `json:"seed" binding:"required"`
}

type OperatorAuthRequest struct {
	Key string `json:"key" binding:"required"`
}
