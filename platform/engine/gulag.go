package engine

import (
	"fmt"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// GulagCause identifies what sent a player down. Player-initiated
// causes can be blocked by the worker's immunity; the State's causes
// cannot.
type GulagCause string

const (
	CauseThreeDoubles GulagCause = "three doubles"
	CauseTribunal     GulagCause = "tribunal verdict"
	CauseCampPower    GulagCause = "camp custodian's denunciation"
	CausePatrol       GulagCause = "patrol"
	CauseCard         GulagCause = "NKVD file"
	CausePilfer       GulagCause = "caught pilfering the treasury"
	CauseStalinWrath  GulagCause = "accusing the Vozhd"
)

// playerInitiated reports whether the cause originates from another
// player's scheme rather than the State's own machinery.
func playerInitiated(cause GulagCause) bool {
	switch cause {
	case CauseThreeDoubles, CauseTribunal, CauseCampPower:
		return true
	}
	return false
}

// SendToGulag runs the imprisonment transition. It is a no-op for
// unknown, eliminated, already-imprisoned players and for Stalin.
// Piece immunities are consulted first. Returns true if the player
// ended up imprisoned.
func (g *Game) SendToGulag(playerId string, cause GulagCause, justification string) bool {
	p := g.player(playerId)
	if p == nil || p.IsStalin || p.Eliminated || p.InGulag {
		return false
	}

	if p.Piece == models.PieceWorker && playerInitiated(cause) {
		g.appendLog(models.LogGulag, fmt.Sprintf("%s cannot be imprisoned by the schemes of mere players (%s). A hero of labour walks free.", p.Name, cause), p.Id)
		return false
	}

	if p.Piece == models.PieceOfficer && !p.Caps.GulagImmunityUsed {
		p.Caps.GulagImmunityUsed = true
		g.demote(p, string(cause))
		if p.Eliminated {
			return false
		}
		station := g.cfg.NearestRailway(p.Position)
		p.Position = station
		space, _ := g.cfg.GetById(station)
		g.appendLog(models.LogGulag, fmt.Sprintf("%s is marched to %s instead of the Gulag. The army looks after its own, once.", p.Name, space.Name), p.Id)
		return false
	}

	p.InGulag = true
	p.GulagTurns = 0
	p.Position = board.GulagSpace

	msg := fmt.Sprintf("%s is sent to the Gulag: %s.", p.Name, cause)
	if justification != "" {
		msg = fmt.Sprintf("%s is sent to the Gulag: %s (%s).", p.Name, cause, justification)
	}
	g.appendLog(models.LogGulag, msg, p.Id)

	g.demote(p, string(cause))

	// A voucher answers for the conduct of whoever they freed.
	if p.Liability != nil && g.Round <= p.Liability.UntilRound {
		if voucher := g.player(p.Liability.VoucherId); voucher != nil && !voucher.Eliminated {
			g.appendLog(models.LogGulag, fmt.Sprintf("%s vouched for %s and must answer for it.", voucher.Name, p.Name), voucher.Id)
			g.demote(voucher, "vouching for a recidivist")
		}
	}
	p.Liability = nil

	return p.InGulag
}

// release frees a prisoner and resets the sentence counter.
func (g *Game) release(p *models.Player, how string) {
	p.InGulag = false
	p.GulagTurns = 0
	g.appendLog(models.LogGulag, fmt.Sprintf("%s leaves the Gulag: %s.", p.Name, how), p.Id)
}

// HandleGulagTurn advances a prisoner's sentence by one turn. Ten
// turns inside is a sentence nobody returns from.
func (g *Game) HandleGulagTurn(playerId string) {
	p := g.player(playerId)
	if p == nil || !p.InGulag || p.Eliminated {
		return
	}
	p.GulagTurns++
	g.appendLog(models.LogGulag, fmt.Sprintf("%s has now served %d turns in the Gulag.", p.Name, p.GulagTurns), p.Id)
	if p.GulagTurns >= board.MaxGulagTurns {
		g.eliminate(p, "ten turns in the Gulag")
	}
}

// EscapeResult describes one escape attempt.
type EscapeResult struct {
	Method string `json:"method"`
	Freed  bool   `json:"freed"`
	Dice   []int  `json:"dice,omitempty"`
	Reason string `json:"reason"`
}

// escapeFaceNeeded returns the minimum doubles face that frees a
// prisoner on the given sentence turn. The bar drops as the sentence
// drags on; from turn five any doubles will do.
func escapeFaceNeeded(sentenceTurn int) int {
	if sentenceTurn >= 5 {
		return 1
	}
	face := 7 - sentenceTurn
	if face > 6 {
		face = 6
	}
	return face
}

// AttemptGulagEscape tries one of the escape mechanisms on the
// prisoner's own turn. Methods: "roll", "pay", "token", "vouch"
// (helperId names the voucher), "bribe". Informing is handled by the
// Tribunal: file a denunciation while imprisoned.
func (g *Game) AttemptGulagEscape(playerId, method, helperId string) (EscapeResult, Decision) {
	p := g.player(playerId)
	if p == nil {
		return EscapeResult{}, deny("unknown player")
	}
	if !p.InGulag || p.Eliminated {
		return EscapeResult{}, g.rejected(playerId, p.Name+" is not in the Gulag")
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.Id != p.Id {
		return EscapeResult{}, g.rejected(playerId, "escape attempts happen on your own turn")
	}

	switch method {
	case "roll":
		if g.HasRolled {
			return EscapeResult{}, g.rejected(playerId, "the dice have already spoken this turn")
		}
		g.HasRolled = true
		d1, d2 := g.rollDie(), g.rollDie()
		turn := p.GulagTurns + 1
		need := escapeFaceNeeded(turn)
		res := EscapeResult{Method: method, Dice: []int{d1, d2}}
		if d1 == d2 && d1 >= need {
			res.Freed = true
			res.Reason = fmt.Sprintf("double %ds thrown", d1)
			g.release(p, res.Reason)
			g.moveAndLand(p, d1+d2)
		} else {
			res.Reason = fmt.Sprintf("rolled %d and %d; turn %d demands doubles of %d or better", d1, d2, turn, need)
			g.appendLog(models.LogGulag, fmt.Sprintf("%s fails to escape: %s.", p.Name, res.Reason), p.Id)
		}
		return res, allow()

	case "pay":
		if !g.debit(p, board.GulagEscapeFee) {
			return EscapeResult{}, g.rejected(playerId, fmt.Sprintf("%s cannot afford the %d ruble processing fee", p.Name, board.GulagEscapeFee))
		}
		g.Treasury += board.GulagEscapeFee
		g.release(p, fmt.Sprintf("paid the %d ruble processing fee", board.GulagEscapeFee))
		g.demote(p, "buying one's way out is noted in the file")
		return EscapeResult{Method: method, Freed: true, Reason: "fee paid"}, allow()

	case "token":
		if !p.ReleaseToken {
			return EscapeResult{}, g.rejected(playerId, p.Name+" holds no release order")
		}
		p.ReleaseToken = false
		g.release(p, "produced a signed release order")
		return EscapeResult{Method: method, Freed: true, Reason: "release order honoured"}, allow()

	case "vouch":
		voucher := g.player(helperId)
		if voucher == nil {
			return EscapeResult{}, deny("unknown voucher")
		}
		if voucher.Id == p.Id || voucher.IsStalin || voucher.Eliminated || voucher.InGulag {
			return EscapeResult{}, g.rejected(playerId, voucher.Name+" is in no position to vouch for anyone")
		}
		if models.RankIndex(voucher.Rank) < models.RankIndex(models.Commissar) {
			return EscapeResult{}, g.rejected(playerId, "only a commissar or above may vouch for a prisoner")
		}
		g.release(p, fmt.Sprintf("%s vouches for their character", voucher.Name))
		p.Liability = &models.VoucherLiability{VoucherId: voucher.Id, UntilRound: g.Round + 3}
		p.FavoursOwed = append(p.FavoursOwed, voucher.Id)
		return EscapeResult{Method: method, Freed: true, Reason: "vouched for by " + voucher.Name}, allow()

	case "bribe":
		if g.Pending != nil {
			return EscapeResult{}, g.rejected(playerId, "another matter already awaits a decision from above")
		}
		if !g.debit(p, board.BribeAmount) {
			return EscapeResult{}, g.rejected(playerId, fmt.Sprintf("a bribe this far up costs %d rubles", board.BribeAmount))
		}
		g.Treasury += board.BribeAmount
		g.setPending(PendingBribe{Kind: "bribe", PlayerId: p.Id})
		g.appendLog(models.LogGulag, fmt.Sprintf("%s slips %d rubles upward and waits.", p.Name, board.BribeAmount), p.Id)
		return EscapeResult{Method: method, Reason: "bribe submitted for consideration"}, allow()

	case "inform":
		return EscapeResult{}, g.rejected(playerId, "informing is done by filing a denunciation from inside the Gulag")
	}
	return EscapeResult{}, g.rejected(playerId, "unknown escape method")
}
