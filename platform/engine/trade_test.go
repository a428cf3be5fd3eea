package engine

import (
	"testing"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

func TestProposeTradeGuards(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	a, b := g.Players[1], g.Players[2]

	_, d := g.ProposeTrade(a.Id, a.Id, models.TradeBundle{}, models.TradeBundle{})
	mustDeny(t, d)
	_, d = g.ProposeTrade(a.Id, g.Stalin().Id, models.TradeBundle{}, models.TradeBundle{})
	mustDeny(t, d)

	b.Eliminated = true
	_, d = g.ProposeTrade(a.Id, b.Id, models.TradeBundle{}, models.TradeBundle{})
	mustDeny(t, d)
}

func TestAcceptTradeAppliesBothSides(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	a, b := g.Players[1], g.Players[2]
	give(g, a, 1)
	b.ReleaseToken = true

	offerId, d := g.ProposeTrade(a.Id, b.Id,
		models.TradeBundle{Rubles: 100, Properties: []int{1}, Favours: 1},
		models.TradeBundle{Rubles: 200, ReleaseTokens: 1})
	mustAllow(t, d)

	mustDeny(t, g.AcceptTrade(a.Id, offerId)) // only the addressee accepts
	mustAllow(t, g.AcceptTrade(b.Id, offerId))

	if a.Balance != StartingBalance+100 {
		t.Fatalf("a balance = %d", a.Balance)
	}
	if b.Balance != StartingBalance-100 {
		t.Fatalf("b balance = %d", b.Balance)
	}
	if g.Properties[1].CustodianId != b.Id || a.Owns(1) {
		t.Fatal("custodianship did not move")
	}
	if b.ReleaseToken || !a.ReleaseToken {
		t.Fatal("release order did not move")
	}
	if len(a.FavoursOwed) != 1 || a.FavoursOwed[0] != b.Id {
		t.Fatalf("favours = %v", a.FavoursOwed)
	}
	if _, ok := g.Trades[offerId]; ok {
		t.Fatal("offer not retired")
	}
}

func TestAcceptTradeIsAtomicOnFailure(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	a, b := g.Players[1], g.Players[2]
	give(g, a, 1)

	// b cannot cover the requested rubles; nothing may move.
	offerId, d := g.ProposeTrade(a.Id, b.Id,
		models.TradeBundle{Properties: []int{1}},
		models.TradeBundle{Rubles: 5000})
	mustAllow(t, d)
	mustDeny(t, g.AcceptTrade(b.Id, offerId))

	if g.Properties[1].CustodianId != a.Id {
		t.Fatal("custodianship moved on a failed trade")
	}
	if a.Balance != StartingBalance || b.Balance != StartingBalance {
		t.Fatal("balances moved on a failed trade")
	}
	if _, ok := g.Trades[offerId]; !ok {
		t.Fatal("a failed acceptance should leave the offer standing")
	}
}

func TestAcceptTradeChecksRecipientEligibility(t *testing.T) {
	g := newGame(t, models.PieceOfficer, models.PiecePeasant)
	officer, peasant := g.Players[1], g.Players[2]
	officer.Rank = models.PartyMember
	peasant.Rank = models.PartyMember
	give(g, officer, 16) // media; the peasant is barred

	offerId, _ := g.ProposeTrade(officer.Id, peasant.Id,
		models.TradeBundle{Properties: []int{16}},
		models.TradeBundle{Rubles: 50})
	mustDeny(t, g.AcceptTrade(peasant.Id, offerId))
	if g.Properties[16].CustodianId != officer.Id {
		t.Fatal("barred recipient received the property")
	}
}

func TestRejectTradeChangesNothing(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	a, b := g.Players[1], g.Players[2]
	give(g, a, 1)

	offerId, _ := g.ProposeTrade(a.Id, b.Id,
		models.TradeBundle{Properties: []int{1}},
		models.TradeBundle{Rubles: 100})

	mustDeny(t, g.RejectTrade(g.Stalin().Id, offerId))
	mustAllow(t, g.RejectTrade(b.Id, offerId))

	if g.Properties[1].CustodianId != a.Id || a.Balance != StartingBalance || b.Balance != StartingBalance {
		t.Fatal("a rejected trade should change nothing")
	}
	if _, ok := g.Trades[offerId]; ok {
		t.Fatal("offer not removed")
	}
	mustDeny(t, g.AcceptTrade(b.Id, offerId))
}

func TestTradeBundleValidation(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	a, b := g.Players[1], g.Players[2]

	// Offering a property a does not hold.
	offerId, _ := g.ProposeTrade(a.Id, b.Id,
		models.TradeBundle{Properties: []int{1}},
		models.TradeBundle{})
	mustDeny(t, g.AcceptTrade(b.Id, offerId))

	// Offering a release order a does not hold.
	offerId, _ = g.ProposeTrade(a.Id, b.Id,
		models.TradeBundle{ReleaseTokens: 1},
		models.TradeBundle{})
	mustDeny(t, g.AcceptTrade(b.Id, offerId))

	// Negative quantities are nonsense.
	offerId, _ = g.ProposeTrade(a.Id, b.Id,
		models.TradeBundle{Rubles: -5},
		models.TradeBundle{})
	mustDeny(t, g.AcceptTrade(b.Id, offerId))
}

func TestAcceptTradeHoldsProfiteerFloor(t *testing.T) {
	g := newGame(t, models.PieceProfiteer, models.PieceWorker)
	p, w := g.Players[1], g.Players[2]
	p.Balance = 150
	treasury := g.Treasury

	offerId, d := g.ProposeTrade(p.Id, w.Id,
		models.TradeBundle{Rubles: 150},
		models.TradeBundle{})
	mustAllow(t, d)
	mustAllow(t, g.AcceptTrade(w.Id, offerId))

	if p.Balance != board.ProfiteerFloor {
		t.Fatalf("profiteer balance = %d, want floor %d", p.Balance, board.ProfiteerFloor)
	}
	if g.Treasury != treasury-board.ProfiteerFloor {
		t.Fatalf("treasury = %d, want %d", g.Treasury, treasury-board.ProfiteerFloor)
	}
	if w.Balance != StartingBalance+150 {
		t.Fatalf("worker balance = %d", w.Balance)
	}
}
