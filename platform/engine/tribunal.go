package engine

import (
	"fmt"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// DenouncePlayer opens a tribunal against the accused. Denouncing
// Stalin does not open anything; it sends the accuser straight down.
func (g *Game) DenouncePlayer(accuserId, accusedId, crime string) Decision {
	accuser := g.player(accuserId)
	accused := g.player(accusedId)
	if accuser == nil || accused == nil {
		return deny("unknown accuser or accused")
	}
	if accuser.Eliminated {
		return g.rejected(accuserId, "the liquidated have no standing to accuse")
	}
	if accuser.IsStalin {
		return g.rejected(accuserId, "the Vozhd does not accuse; he decides")
	}
	if accused.IsStalin {
		g.appendLog(models.LogTribunal, fmt.Sprintf("%s dares to denounce the Vozhd himself.", accuser.Name), accuser.Id)
		g.SendToGulag(accuserId, CauseStalinWrath, crime)
		return deny("one does not accuse the Vozhd")
	}
	if g.Tribunal != nil {
		return g.rejected(accuserId, "a tribunal is already in session")
	}
	if accused.Eliminated {
		return g.rejected(accuserId, accused.Name+" has already been dealt with")
	}
	if accuserId == accusedId {
		return g.rejected(accuserId, "self-criticism is admirable but not actionable")
	}
	if accuser.DenouncementsThisRound >= 1 {
		return g.rejected(accuserId, accuser.Name+" has exhausted this round's quota of vigilance")
	}
	if accused.Rank == models.InnerCircle && models.RankIndex(accuser.Rank) < models.RankIndex(models.Commissar) {
		return g.rejected(accuserId, "the inner circle is not answerable to the likes of "+accuser.Name)
	}
	if accused.Piece == models.PieceBolshevik && models.RankIndex(accuser.Rank) < models.RankIndex(accused.Rank) {
		return g.rejected(accuserId, accused.Name+" was making revolution while "+accuser.Name+" was learning to read")
	}

	accuser.DenouncementsThisRound++
	t := &models.Tribunal{
		AccuserId:        accuser.Id,
		AccusedId:        accused.Id,
		Crime:            crime,
		Phase:            models.PhaseAccusation,
		WitnessesFor:     []string{},
		WitnessesAgainst: []string{},
		FromGulag:        accuser.InGulag,
	}
	if accused.UnderSuspicion {
		// A suspect needs no witnesses the second time around.
		t.Phase = models.PhaseVerdict
	}
	g.Tribunal = t

	msg := fmt.Sprintf("%s denounces %s: %q.", accuser.Name, accused.Name, crime)
	if t.FromGulag {
		msg = fmt.Sprintf("%s informs on %s from inside the Gulag: %q.", accuser.Name, accused.Name, crime)
	}
	g.appendLog(models.LogTribunal, msg, accuser.Id)
	return allow()
}

// AddWitness records a witness statement for or against the accused.
func (g *Game) AddWitness(playerId, side string) Decision {
	t := g.Tribunal
	p := g.player(playerId)
	if t == nil || p == nil {
		return deny("no tribunal or unknown witness")
	}
	if t.Phase == models.PhaseVerdict {
		return g.rejected(playerId, "the evidence phase is over")
	}
	if p.Eliminated || p.IsStalin || p.Id == t.AccuserId || p.Id == t.AccusedId {
		return g.rejected(playerId, p.Name+" cannot testify in this matter")
	}
	for _, id := range append(append([]string{}, t.WitnessesFor...), t.WitnessesAgainst...) {
		if id == p.Id {
			return g.rejected(playerId, p.Name+" has already testified")
		}
	}
	switch side {
	case "for":
		t.WitnessesFor = append(t.WitnessesFor, p.Id)
	case "against":
		t.WitnessesAgainst = append(t.WitnessesAgainst, p.Id)
	default:
		return deny("side must be \"for\" or \"against\"")
	}
	t.Phase = models.PhaseEvidence
	g.appendLog(models.LogTribunal, fmt.Sprintf("%s testifies %s the accused.", p.Name, side), p.Id)
	return allow()
}

// RenderVerdict closes the tribunal. Only Stalin renders verdicts.
func (g *Game) RenderVerdict(callerId string, verdict models.Verdict) Decision {
	t := g.Tribunal
	caller := g.player(callerId)
	if t == nil || caller == nil {
		return deny("no tribunal in session")
	}
	if !caller.IsStalin {
		return g.rejected(callerId, "verdicts come from the top")
	}

	accuser := g.player(t.AccuserId)
	accused := g.player(t.AccusedId)

	switch verdict {
	case models.VerdictGuilty:
		g.appendLog(models.LogTribunal, fmt.Sprintf("Verdict: %s is guilty of %q.", accused.Name, t.Crime), accused.Id)
		g.SendToGulag(t.AccusedId, CauseTribunal, t.Crime)
		if accuser != nil && !accuser.Eliminated {
			g.Treasury -= board.InformantBonus
			g.credit(accuser, board.InformantBonus)
			g.appendLog(models.LogTribunal, fmt.Sprintf("%s collects the informant's bonus of %d rubles.", accuser.Name, board.InformantBonus), accuser.Id)
			if t.FromGulag && accuser.InGulag {
				g.release(accuser, "a useful informant is wasted behind bars")
			}
		}

	case models.VerdictInnocent:
		g.appendLog(models.LogTribunal, fmt.Sprintf("Verdict: %s is innocent. Someone must answer for the wasted session.", accused.Name), accused.Id)
		if accuser != nil && !accuser.Eliminated {
			g.demote(accuser, "false denunciation")
			if t.FromGulag && accuser.InGulag {
				accuser.GulagTurns += 2
				g.appendLog(models.LogGulag, fmt.Sprintf("%s's sentence is extended for wasting the tribunal's time (%d turns served).", accuser.Name, accuser.GulagTurns), accuser.Id)
				if accuser.GulagTurns >= board.MaxGulagTurns {
					g.eliminate(accuser, "a sentence extended past all endurance")
				}
			}
		}

	case models.VerdictBothGuilty:
		g.appendLog(models.LogTribunal, "Verdict: both parties are guilty. The tribunal is efficient today.", "")
		g.SendToGulag(t.AccusedId, CauseTribunal, t.Crime)
		g.SendToGulag(t.AccuserId, CauseTribunal, "guilt by association")

	case models.VerdictInsufficientEvidence:
		g.appendLog(models.LogTribunal, fmt.Sprintf("Verdict: insufficient evidence. %s remains under suspicion.", accused.Name), accused.Id)
		if accused != nil {
			accused.UnderSuspicion = true
		}

	default:
		return g.rejected(callerId, "unknown verdict")
	}

	t.Phase = models.PhaseVerdict
	g.LastTribunal = t
	g.Tribunal = nil
	return allow()
}
