package engine

import (
	"fmt"
	"testing"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

var testCfg = board.Load()

// newGame builds a session with Stalin plus one player per piece given,
// using a fixed seed.
func newGame(t *testing.T, pieces ...models.Piece) *Game {
	t.Helper()
	setup := []PlayerSetup{{Name: "The Vozhd", IsStalin: true}}
	for i, piece := range pieces {
		setup = append(setup, PlayerSetup{Name: fmt.Sprintf("Comrade %d", i+1), Piece: piece})
	}
	g, err := New(testCfg, setup, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// startFixed opens play in setup order so tests control whose turn it is.
func startFixed(g *Game) {
	g.Order = nil
	for _, p := range g.Players {
		if !p.IsStalin {
			g.Order = append(g.Order, p.Id)
		}
	}
	g.Current = 0
	g.Round = 1
	g.Started = true
	g.HasRolled = false
}

// give hands custodianship of spaces to a player directly.
func give(g *Game, p *models.Player, spaceIds ...int) {
	for _, id := range spaceIds {
		g.Properties[id].CustodianId = p.Id
		p.AddProperty(id)
	}
}

func mustAllow(t *testing.T, d Decision) {
	t.Helper()
	if !d.Allowed {
		t.Fatalf("expected allowed, got denied: %s", d.Reason)
	}
}

func mustDeny(t *testing.T, d Decision) {
	t.Helper()
	if d.Allowed {
		t.Fatal("expected denied, got allowed")
	}
}
