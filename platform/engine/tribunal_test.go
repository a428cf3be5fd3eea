package engine

import (
	"testing"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

func TestDenounceOpensTribunal(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	accuser, accused := g.Players[1], g.Players[2]

	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "hoarding grain"))
	if g.Tribunal == nil || g.Tribunal.Phase != models.PhaseAccusation {
		t.Fatalf("tribunal = %+v", g.Tribunal)
	}
	if g.Tribunal.AccusedId != accused.Id {
		t.Fatal("wrong accused")
	}
}

func TestDenounceGuards(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer, models.PieceWorker)
	accuser, accused := g.Players[1], g.Players[2]

	mustDeny(t, g.DenouncePlayer(accuser.Id, accuser.Id, "self-criticism"))
	mustDeny(t, g.DenouncePlayer(g.Stalin().Id, accused.Id, "displeasure"))

	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "sabotage"))
	// One session at a time.
	mustDeny(t, g.DenouncePlayer(g.Players[3].Id, accused.Id, "queue jumping"))

	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictInnocent))
	// One denunciation per accuser per round.
	mustDeny(t, g.DenouncePlayer(accuser.Id, accused.Id, "sabotage, again"))
}

func TestDenounceStalinBackfires(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	accuser := g.Players[1]

	mustDeny(t, g.DenouncePlayer(accuser.Id, g.Stalin().Id, "the moustache"))
	if g.Tribunal != nil {
		t.Fatal("a tribunal opened against the Vozhd")
	}
	if !accuser.InGulag {
		t.Fatal("the accuser should be inside")
	}
}

func TestRankImmunities(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer, models.PieceBolshevik)
	accuser, grandee, bolshevik := g.Players[1], g.Players[2], g.Players[3]

	grandee.Rank = models.InnerCircle
	mustDeny(t, g.DenouncePlayer(accuser.Id, grandee.Id, "excess"))
	accuser.Rank = models.Commissar
	mustAllow(t, g.DenouncePlayer(accuser.Id, grandee.Id, "excess"))
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictInsufficientEvidence))

	// The Old Bolshevik outranks junior accusers by biography alone.
	bolshevik.Rank = models.InnerCircle
	accuser.Rank = models.Commissar
	g.Round++ // fresh denunciation quota
	accuser.DenouncementsThisRound = 0
	mustDeny(t, g.DenouncePlayer(accuser.Id, bolshevik.Id, "nostalgia"))
	accuser.Rank = models.InnerCircle
	mustAllow(t, g.DenouncePlayer(accuser.Id, bolshevik.Id, "nostalgia"))
}

func TestWitnesses(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer, models.PieceWorker, models.PieceInformant)
	accuser, accused, w1, w2 := g.Players[1], g.Players[2], g.Players[3], g.Players[4]
	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "wrecking"))

	mustDeny(t, g.AddWitness(accuser.Id, "against"))
	mustDeny(t, g.AddWitness(accused.Id, "for"))
	mustDeny(t, g.AddWitness(g.Stalin().Id, "against"))

	mustAllow(t, g.AddWitness(w1.Id, "for"))
	if g.Tribunal.Phase != models.PhaseEvidence {
		t.Fatalf("phase = %s", g.Tribunal.Phase)
	}
	mustDeny(t, g.AddWitness(w1.Id, "against"))
	mustAllow(t, g.AddWitness(w2.Id, "against"))
	if len(g.Tribunal.WitnessesFor) != 1 || len(g.Tribunal.WitnessesAgainst) != 1 {
		t.Fatalf("witness lists: %+v", g.Tribunal)
	}
}

func TestVerdictGuilty(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	accuser, accused := g.Players[1], g.Players[2]
	accused.Caps.GulagImmunityUsed = true
	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "wrecking"))

	mustDeny(t, g.RenderVerdict(accuser.Id, models.VerdictGuilty))

	treasury := g.Treasury
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictGuilty))
	if !accused.InGulag {
		t.Fatal("guilty verdict did not imprison")
	}
	if accuser.Balance != StartingBalance+board.InformantBonus {
		t.Fatalf("accuser balance = %d", accuser.Balance)
	}
	if g.Treasury != treasury-board.InformantBonus {
		t.Fatalf("treasury = %d", g.Treasury)
	}
	if g.Tribunal != nil || g.LastTribunal == nil {
		t.Fatal("tribunal bookkeeping wrong")
	}
}

func TestVerdictInnocentDemotesAccuser(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	accuser, accused := g.Players[1], g.Players[2]
	accuser.Rank = models.Commissar
	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "wrecking"))
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictInnocent))
	if accuser.Rank != models.PartyMember {
		t.Fatalf("accuser rank = %s", accuser.Rank)
	}
	if accused.InGulag {
		t.Fatal("the innocent should walk")
	}
}

func TestVerdictBothGuilty(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	accuser, accused := g.Players[1], g.Players[2]
	accused.Caps.GulagImmunityUsed = true
	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "wrecking"))
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictBothGuilty))
	if !accuser.InGulag || !accused.InGulag {
		t.Fatal("both parties belong inside")
	}
}

func TestVerdictInsufficientEvidence(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer, models.PieceWorker)
	accuser, accused, second := g.Players[1], g.Players[2], g.Players[3]
	mustAllow(t, g.DenouncePlayer(accuser.Id, accused.Id, "wrecking"))
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictInsufficientEvidence))
	if !accused.UnderSuspicion {
		t.Fatal("suspicion not recorded")
	}

	// The next denunciation of a suspect skips straight to the verdict.
	mustAllow(t, g.DenouncePlayer(second.Id, accused.Id, "the same wrecking"))
	if g.Tribunal.Phase != models.PhaseVerdict {
		t.Fatalf("phase = %s, want verdict", g.Tribunal.Phase)
	}
}

func TestInformingFromTheGulag(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	informer, accused := g.Players[1], g.Players[2]
	accused.Caps.GulagImmunityUsed = true
	g.SendToGulag(informer.Id, CausePatrol, "")

	mustAllow(t, g.DenouncePlayer(informer.Id, accused.Id, "everything"))
	if !g.Tribunal.FromGulag {
		t.Fatal("FromGulag not flagged")
	}
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictGuilty))
	if informer.InGulag {
		t.Fatal("a useful informant should be released")
	}
	if !accused.InGulag {
		t.Fatal("the named party should take their place")
	}
}

func TestFalseInformingExtendsSentence(t *testing.T) {
	g := newGame(t, models.PiecePeasant, models.PieceOfficer)
	informer, accused := g.Players[1], g.Players[2]
	g.SendToGulag(informer.Id, CausePatrol, "")
	informer.GulagTurns = 3

	mustAllow(t, g.DenouncePlayer(informer.Id, accused.Id, "invented crimes"))
	mustAllow(t, g.RenderVerdict(g.Stalin().Id, models.VerdictInnocent))
	if !informer.InGulag || informer.GulagTurns != 5 {
		t.Fatalf("sentence = %d turns, want 5", informer.GulagTurns)
	}
}
