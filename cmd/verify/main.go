package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"towers-verifier-backend/internal/models"
	"towers-verifier-backend/internal/services"
)

// --- CLI definitions --- //

type CLI struct {
	Verify     VerifyCmd     `cmd:"" help:"Reconstruct a board from a revealed seed and check it against a published commitment."`
	Commitment CommitmentCmd `cmd:"" help:"Compute the commitment hash for a seed and row configuration."`
}

type VerifyCmd struct {
	Seed     string `help:"Revealed seed." required:""`
	Rows     string `help:"Comma-separated tile counts per row, e.g. 4,4,5,6." required:""`
	Hash     string `help:"Published commitment hash (0x prefix optional)." required:""`
	Selected string `help:"Comma-separated picked tile per row (display only)."`
	Version  string `help:"Board format version." default:"v1"`
}

type CommitmentCmd struct {
	Seed    string `help:"Seed to commit to." required:""`
	Rows    string `help:"Comma-separated tile counts per row." required:""`
	Version string `help:"Board format version." default:"v1"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("towers-verify"),
		kong.Description("Provably-fair outcome verifier for the towers tile game."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (c *VerifyCmd) Run() error {
	verifier := services.NewVerifierService()

	result, err := verifier.Verify(&models.VerifyRequest{
		Version:       c.Version,
		Rows:          c.Rows,
		Seed:          c.Seed,
		Hash:          c.Hash,
		SelectedTiles: c.Selected,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
		os.Exit(2)
	}

	printBoard(result)

	if !result.Match {
		os.Exit(1)
	}
	return nil
}

func (c *CommitmentCmd) Run() error {
	tileCounts, err := models.ParseTileCounts(c.Rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
		os.Exit(2)
	}

	verifier := services.NewVerifierService()
	commitment, err := verifier.CommitmentFor(c.Version, tileCounts, c.Seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
		os.Exit(2)
	}

	fmt.Println(commitment)
	return nil
}

// printBoard renders the reconstructed tower top row first, the way it is
// climbed bottom-up in play.
func printBoard(result *models.VerifyResult) {
	state := result.State

	for i := len(state.Rows) - 1; i >= 0; i-- {
		row := state.Rows[i]

		selected := -1
		if i < len(state.SelectedTiles) {
			selected = state.SelectedTiles[i]
		}

		tiles := make([]string, 0, row.TileCount)
		for t := 0; t < row.TileCount; t++ {
			tile := "."
			if t == row.BombTileIndex {
				tile = "*"
			}
			if t == selected {
				tile = "[" + tile + "]"
			}
			tiles = append(tiles, tile)
		}

		fmt.Printf("row %2d  %-24s x%g\n", i, strings.Join(tiles, " "), row.Multiplier)
	}

	fmt.Printf("\nseed:     %s\n", state.Seed)
	fmt.Printf("computed: %s\n", result.ComputedHash)
	fmt.Printf("expected: %s\n", result.ExpectedHash)
	if result.Match {
		fmt.Println("result:   MATCH")
	} else {
		fmt.Println("result:   MISMATCH")
	}
}
