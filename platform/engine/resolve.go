package engine

import (
	"fmt"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// ResolvePurchase answers an outstanding purchase offer.
func (g *Game) ResolvePurchase(playerId string, accept bool) Decision {
	pa, ok := g.Pending.(PendingPurchase)
	if !ok {
		return deny("no purchase is on offer")
	}
	if pa.PlayerId != playerId {
		return g.rejected(playerId, "the offer is not addressed to this player")
	}
	g.clearPending()
	if !accept {
		space, _ := g.cfg.GetById(pa.SpaceId)
		g.appendLog(models.LogProperty, fmt.Sprintf("%s declines custodianship of %s.", g.player(playerId).Name, space.Name), playerId)
		return allow()
	}
	// The pending price already carries the rank discount, so the
	// purchase runs on the undiscounted base cost.
	space, err := g.cfg.GetById(pa.SpaceId)
	if err != nil {
		return deny("unknown space")
	}
	return g.PurchaseProperty(playerId, pa.SpaceId, space.BaseCost)
}

// ResolvePilfer settles the Red Square mini-game: decline, or roll a
// die. Four to six pilfers from the treasury; one to three is a short
// walk to the Gulag.
func (g *Game) ResolvePilfer(playerId string, attempt bool) (int, Decision) {
	pa, ok := g.Pending.(PendingPilfer)
	if !ok {
		return 0, deny("no pilfering opportunity is open")
	}
	if pa.PlayerId != playerId {
		return 0, g.rejected(playerId, "the opportunity belongs to someone else")
	}
	g.clearPending()
	p := g.player(playerId)
	if !attempt {
		g.appendLog(models.LogTurn, p.Name+" walks past the treasury with exemplary discipline.", p.Id)
		return 0, allow()
	}
	die := g.rollDie()
	if die >= 4 {
		g.Treasury -= board.PilferAmount
		g.credit(p, board.PilferAmount)
		g.appendLog(models.LogTurn, fmt.Sprintf("%s rolls a %d and liberates %d rubles from the people's treasury.", p.Name, die, board.PilferAmount), p.Id)
	} else {
		g.appendLog(models.LogTurn, fmt.Sprintf("%s rolls a %d and is caught with a hand in the people's pocket.", p.Name, die), p.Id)
		g.SendToGulag(p.Id, CausePilfer, "")
	}
	return die, allow()
}

// ResolveDebt settles an outstanding debt. action is "pay" (works only
// if funds have appeared, e.g. after mortgaging), or "bankrupt".
// A profiteer uses CoverDebt instead.
func (g *Game) ResolveDebt(playerId, action string) Decision {
	pa, ok := g.Pending.(PendingDebt)
	if !ok {
		return deny("no debt awaits resolution")
	}
	if pa.DebtorId != playerId {
		return g.rejected(playerId, "the debt belongs to someone else")
	}
	debtor := g.player(playerId)

	switch action {
	case "pay":
		if !g.debit(debtor, pa.Amount) {
			return g.rejected(playerId, fmt.Sprintf("%s still cannot cover %d rubles", debtor.Name, pa.Amount))
		}
		g.clearPending()
		if pa.CreditorId == "" {
			g.Treasury += pa.Amount
		} else if c := g.player(pa.CreditorId); c != nil {
			g.credit(c, pa.Amount)
		}
		g.appendLog(models.LogProperty, fmt.Sprintf("%s settles the debt of %d rubles (%s).", debtor.Name, pa.Amount, pa.Context), debtor.Id)
		return allow()

	case "bankrupt":
		g.clearPending()
		g.settleBankruptcy(debtor, pa.CreditorId)
		return allow()
	}
	return g.rejected(playerId, "unknown debt resolution")
}

// CoverDebt lets a profiteer pay another player's outstanding debt.
// The debtor then owes the profiteer a favour and the covered sum plus
// fifty percent, recorded as a standing claim.
func (g *Game) CoverDebt(profiteerId string) Decision {
	pa, ok := g.Pending.(PendingDebt)
	if !ok {
		return deny("no debt awaits resolution")
	}
	coverer := g.player(profiteerId)
	if coverer == nil {
		return deny("unknown player")
	}
	if coverer.Piece != models.PieceProfiteer {
		return g.rejected(profiteerId, "only the profiteer trades in other people's misfortunes")
	}
	if coverer.Id == pa.DebtorId {
		return g.rejected(profiteerId, "one cannot profiteer off one's own debt")
	}
	if !g.debit(coverer, pa.Amount) {
		return g.rejected(profiteerId, fmt.Sprintf("%s cannot front %d rubles", coverer.Name, pa.Amount))
	}
	g.clearPending()
	if pa.CreditorId == "" {
		g.Treasury += pa.Amount
	} else if c := g.player(pa.CreditorId); c != nil {
		g.credit(c, pa.Amount)
	}
	debtor := g.player(pa.DebtorId)
	debtor.FavoursOwed = append(debtor.FavoursOwed, coverer.Id)
	coverer.Claims = append(coverer.Claims, models.DebtClaim{DebtorId: debtor.Id, Amount: pa.Amount * 3 / 2})
	g.appendLog(models.LogAbility, fmt.Sprintf("%s covers %s's debt of %d rubles. The ledger remembers %d.", coverer.Name, debtor.Name, pa.Amount, pa.Amount*3/2), coverer.Id)
	return allow()
}

// CollectClaim calls in a profiteer's standing claim, taking whatever
// the debtor can pay and writing off the rest.
func (g *Game) CollectClaim(profiteerId, debtorId string) (int, Decision) {
	coverer := g.player(profiteerId)
	debtor := g.player(debtorId)
	if coverer == nil || debtor == nil {
		return 0, deny("unknown player")
	}
	for i, claim := range coverer.Claims {
		if claim.DebtorId != debtorId {
			continue
		}
		collected := claim.Amount
		if debtor.Balance < collected {
			collected = debtor.Balance
		}
		g.debit(debtor, collected)
		g.credit(coverer, collected)
		coverer.Claims = append(coverer.Claims[:i], coverer.Claims[i+1:]...)
		g.appendLog(models.LogAbility, fmt.Sprintf("%s calls in the claim on %s and collects %d rubles.", coverer.Name, debtor.Name, collected), coverer.Id)
		return collected, allow()
	}
	return 0, g.rejected(profiteerId, "no claim stands against that player")
}
