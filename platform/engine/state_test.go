package engine

import (
	"testing"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

func TestNewSetupValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup []PlayerSetup
	}{
		{"no stalin", []PlayerSetup{
			{Name: "a", Piece: models.PieceWorker},
			{Name: "b", Piece: models.PiecePeasant},
			{Name: "c", Piece: models.PieceOfficer},
		}},
		{"two stalins", []PlayerSetup{
			{Name: "a", IsStalin: true},
			{Name: "b", IsStalin: true},
			{Name: "c", Piece: models.PieceWorker},
		}},
		{"too few players", []PlayerSetup{
			{Name: "a", IsStalin: true},
			{Name: "b", Piece: models.PieceWorker},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(testCfg, tt.setup, 1); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestNewStartingState(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PieceApparatchik)

	stalin := g.Stalin()
	if stalin == nil {
		t.Fatal("no Stalin")
	}
	if stalin.Rank != models.InnerCircle || stalin.Balance != 0 || stalin.Piece != models.PieceNone {
		t.Fatalf("Stalin misconfigured: %+v", stalin)
	}

	worker := g.Players[1]
	if worker.Balance != StartingBalance {
		t.Fatalf("worker balance = %d, want %d", worker.Balance, StartingBalance)
	}
	if worker.Rank != models.Proletariat {
		t.Fatalf("worker rank = %s", worker.Rank)
	}

	apparatchik := g.Players[2]
	if apparatchik.Rank != models.PartyMember {
		t.Fatalf("apparatchik rank = %s, want partyMember", apparatchik.Rank)
	}

	if g.Treasury != StartingTreasury {
		t.Fatalf("treasury = %d", g.Treasury)
	}
	if len(g.Properties) != 28 {
		t.Fatalf("ownable space records = %d, want 28", len(g.Properties))
	}
	for id, prop := range g.Properties {
		if prop.CustodianId != "" {
			t.Fatalf("space %d not State-held at start", id)
		}
	}
}

func TestNewRankOverride(t *testing.T) {
	setup := []PlayerSetup{
		{Name: "boss", IsStalin: true},
		{Name: "a", Piece: models.PieceWorker, Rank: models.Commissar},
		{Name: "b", Piece: models.PiecePeasant},
	}
	g, err := New(testCfg, setup, 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.Players[1].Rank != models.Commissar {
		t.Fatalf("rank override ignored: %s", g.Players[1].Rank)
	}
}

func TestPromoteDemoteSaturation(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	p := g.Players[1]

	g.demote(p, "test")
	if p.Rank != models.Proletariat {
		t.Fatalf("demotion below proletariat: %s", p.Rank)
	}

	p.Rank = models.InnerCircle
	g.promote(p, "test")
	if p.Rank != models.InnerCircle {
		t.Fatalf("promotion above innerCircle: %s", p.Rank)
	}
}

func TestApparatchikDiesAtTheBottom(t *testing.T) {
	g := newGame(t, models.PieceApparatchik, models.PieceWorker)
	p := g.Players[1]

	g.demote(p, "test")
	if p.Rank != models.Proletariat {
		t.Fatalf("rank = %s", p.Rank)
	}
	if !p.Eliminated {
		t.Fatal("apparatchik survived demotion to proletariat")
	}
}

func TestProfiteerBalanceClamps(t *testing.T) {
	g := newGame(t, models.PieceProfiteer, models.PieceWorker)
	p := g.Players[1]

	treasury := g.Treasury
	g.credit(p, 5000)
	if p.Balance != board.ProfiteerCeiling {
		t.Fatalf("balance = %d, want ceiling %d", p.Balance, board.ProfiteerCeiling)
	}
	if g.Treasury != treasury+(StartingBalance+5000-board.ProfiteerCeiling) {
		t.Fatalf("overflow not confiscated: treasury %d", g.Treasury)
	}

	p.Balance = 150
	treasury = g.Treasury
	if !g.debit(p, 100) {
		t.Fatal("debit refused")
	}
	if p.Balance != board.ProfiteerFloor {
		t.Fatalf("balance = %d, want floor %d", p.Balance, board.ProfiteerFloor)
	}
	if g.Treasury != treasury-50 {
		t.Fatalf("floor top-up not drawn from treasury: %d", g.Treasury)
	}
}

func TestEliminateRevertsHoldings(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant, models.PieceOfficer)
	p := g.Players[1]
	give(g, p, 1, 3)
	g.Properties[1].CollectivizationLevel = 2
	g.Properties[3].Mortgaged = true
	p.Balance = 300

	treasury := g.Treasury
	g.eliminate(p, "test")

	if !p.Eliminated || p.Balance != 0 {
		t.Fatalf("player not liquidated: %+v", p)
	}
	if g.Treasury != treasury+300 {
		t.Fatalf("cash not confiscated: %d", g.Treasury)
	}
	for _, id := range []int{1, 3} {
		prop := g.Properties[id]
		if prop.CustodianId != "" || prop.CollectivizationLevel != 0 || prop.Mortgaged {
			t.Fatalf("space %d did not revert cleanly: %+v", id, prop)
		}
	}
	if len(p.Properties) != 0 {
		t.Fatalf("holdings list not cleared: %v", p.Properties)
	}
}
