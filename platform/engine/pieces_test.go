package engine

import (
	"testing"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

func TestPeasantSeizure(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceWorker)
	peasant, victim := g.Players[1], g.Players[2]
	give(g, victim, 1, 11)

	// Magnitogorsk (140) is beyond the seizure limit.
	mustDeny(t, g.UsePeasantSeizure(peasant.Id, 11))

	mustAllow(t, g.UsePeasantSeizure(peasant.Id, 1))
	if g.Properties[1].CustodianId != peasant.Id || victim.Owns(1) {
		t.Fatal("seizure did not transfer custodianship")
	}
	if !peasant.Caps.SeizureUsed {
		t.Fatal("one-shot not consumed")
	}
	give(g, victim, 3)
	mustDeny(t, g.UsePeasantSeizure(peasant.Id, 3))
}

func TestSeizureOnlyForPeasant(t *testing.T) {
	g := newGame(t, models.PieceWorker, models.PiecePeasant)
	give(g, g.Players[2], 1)
	mustDeny(t, g.UsePeasantSeizure(g.Players[1].Id, 1))
}

func TestOfficerRequisition(t *testing.T) {
	g := newGame(t, models.PieceOfficer, models.PieceWorker)
	officer, target := g.Players[1], g.Players[2]

	mustAllow(t, g.UseOfficerRequisition(officer.Id, target.Id))
	if officer.Balance != StartingBalance+100 || target.Balance != StartingBalance-100 {
		t.Fatalf("balances: officer %d, target %d", officer.Balance, target.Balance)
	}

	// Once per lap.
	mustDeny(t, g.UseOfficerRequisition(officer.Id, target.Id))
	g.handleStartPass(officer) // crossing Red Square resets it
	g.clearPending()
	mustAllow(t, g.UseOfficerRequisition(officer.Id, target.Id))

	// A poor target yields what they have.
	target.Balance = 30
	g.handleStartPass(officer)
	g.clearPending()
	mustAllow(t, g.UseOfficerRequisition(officer.Id, target.Id))
	if target.Balance != 0 {
		t.Fatalf("target balance = %d", target.Balance)
	}
}

func TestCampPowerApproval(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	owner, target := g.Players[1], g.Players[2]
	target.Caps.GulagImmunityUsed = true

	mustDeny(t, g.UseCampPower(owner.Id, target.Id)) // group not complete
	give(g, owner, 1, 3)
	mustAllow(t, g.UseCampPower(owner.Id, target.Id))

	// A rejection keeps the one-shot alive.
	mustAllow(t, g.ResolveApproval(g.Stalin().Id, false))
	if owner.Caps.CampPowerUsed || target.InGulag {
		t.Fatal("rejection should change nothing")
	}

	mustAllow(t, g.UseCampPower(owner.Id, target.Id))
	mustAllow(t, g.ResolveApproval(g.Stalin().Id, true))
	if !target.InGulag {
		t.Fatal("approved recommendation did not imprison")
	}
	if !owner.Caps.CampPowerUsed {
		t.Fatal("one-shot not consumed on approval")
	}
	mustDeny(t, g.UseCampPower(owner.Id, target.Id))
}

func TestMinistryPowerApproval(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	owner := g.Players[1]
	give(g, owner, 21, 23, 24)

	// Only State-held spaces are in the gift.
	give(g, g.Players[2], 11)
	mustDeny(t, g.UseMinistryPower(owner.Id, 11))

	mustAllow(t, g.UseMinistryPower(owner.Id, 13))
	mustAllow(t, g.ResolveApproval(g.Stalin().Id, true))
	if g.Properties[13].CustodianId != owner.Id {
		t.Fatal("requisitioned space not assigned")
	}
	if !owner.Caps.MinistryPowerUsed {
		t.Fatal("one-shot not consumed")
	}
}

func TestMediaRevoteReopensTribunal(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer, models.PieceWorker)
	owner, accuser, accused := g.Players[1], g.Players[2], g.Players[3]
	give(g, owner, 16, 18, 19)

	mustDeny(t, g.UseMediaRevote(owner.Id)) // nothing to reopen

	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "defeatism"))
	mustDeny(t, g.UseMediaRevote(owner.Id)) // session still open
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictInnocent))

	mustAllow(t, g.UseMediaRevote(owner.Id))
	mustAllow(t, g.ResolveApproval(g.Stalin().Id, true))
	if g.Tribunal == nil || g.Tribunal.Phase != models.PhaseAccusation {
		t.Fatalf("tribunal not reopened: %+v", g.Tribunal)
	}
	if g.LastTribunal != nil {
		t.Fatal("stale verdict record kept")
	}
	if !owner.Caps.MediaPowerUsedThisRound {
		t.Fatal("per-round flag not set")
	}
}

func TestInformantDisappear(t *testing.T) {
	g := newGame(t, models.PieceInformant, models.PieceWorker)
	informant, victim := g.Players[1], g.Players[2]
	give(g, victim, 1)
	g.Properties[1].CollectivizationLevel = 2

	mustAllow(t, g.UseInformantDisappear(informant.Id, 1))
	mustAllow(t, g.ResolveApproval(g.Stalin().Id, true))
	prop := g.Properties[1]
	if prop.CustodianId != "" || prop.CollectivizationLevel != 0 {
		t.Fatalf("space did not vanish cleanly: %+v", prop)
	}
	if !informant.Caps.DisappearUsed {
		t.Fatal("one-shot not consumed")
	}
	mustDeny(t, g.UseInformantDisappear(informant.Id, 1))
}

func TestBolshevikSpeech(t *testing.T) {
	g := newGame(t, models.PieceBolshevik, models.PieceWorker, models.PiecePeasant)
	orator, l1, l2 := g.Players[1], g.Players[2], g.Players[3]
	l2.Balance = 20

	mustAllow(t, g.UseBolshevikSpeech(orator.Id))

	// Approving blind makes no sense: the applauders must be named.
	mustDeny(t, g.ResolveApproval(g.Stalin().Id, true))
	mustAllow(t, g.ResolveSpeech(g.Stalin().Id, []string{l1.Id, l2.Id, orator.Id}))

	if l1.Balance != StartingBalance-board.SpeechTribute {
		t.Fatalf("l1 balance = %d", l1.Balance)
	}
	if l2.Balance != 0 {
		t.Fatalf("l2 balance = %d, want everything they had", l2.Balance)
	}
	if orator.Balance != StartingBalance+board.SpeechTribute+20 {
		t.Fatalf("orator balance = %d", orator.Balance)
	}
	if !orator.Caps.SpeechUsed {
		t.Fatal("one-shot not consumed")
	}
	mustDeny(t, g.UseBolshevikSpeech(orator.Id))
}

func TestSpeechPostponed(t *testing.T) {
	g := newGame(t, models.PieceBolshevik, models.PieceWorker)
	orator := g.Players[1]
	mustAllow(t, g.UseBolshevikSpeech(orator.Id))
	mustAllow(t, g.ResolveApproval(g.Stalin().Id, false))
	if orator.Caps.SpeechUsed {
		t.Fatal("a postponed speech should stay in the pocket")
	}
	mustAllow(t, g.UseBolshevikSpeech(orator.Id))
}

func TestApprovalOnlyFromStalin(t *testing.T) {
	g := newGame(t, models.PieceInformant, models.PieceWorker)
	give(g, g.Players[2], 1)
	mustAllow(t, g.UseInformantDisappear(g.Players[1].Id, 1))
	mustDeny(t, g.ResolveApproval(g.Players[2].Id, true))
	if g.Pending == nil {
		t.Fatal("pending cleared by an unauthorized caller")
	}
}

func TestRequisitionHoldsProfiteerFloor(t *testing.T) {
	g := newGame(t, models.PieceOfficer, models.PieceProfiteer)
	officer, target := g.Players[1], g.Players[2]
	target.Balance = 120
	treasury := g.Treasury

	mustAllow(t, g.UseOfficerRequisition(officer.Id, target.Id))
	if target.Balance != board.ProfiteerFloor {
		t.Fatalf("profiteer balance = %d, want floor %d", target.Balance, board.ProfiteerFloor)
	}
	if officer.Balance != StartingBalance+100 {
		t.Fatalf("officer balance = %d", officer.Balance)
	}
	// The shortfall against the floor is covered by the treasury.
	if g.Treasury != treasury-(board.ProfiteerFloor-20) {
		t.Fatalf("treasury = %d", g.Treasury)
	}
}
