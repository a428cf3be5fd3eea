package engine

import (
	"fmt"

	uuid "github.com/satori/go.uuid"

	"github.com/redstar-games/politburo-backend/app/models"
)

// ProposeTrade records a bilateral offer. Affordability is not checked
// at proposal time; acceptance validates everything.
func (g *Game) ProposeTrade(fromId, toId string, offering, requesting models.TradeBundle) (string, Decision) {
	from := g.player(fromId)
	to := g.player(toId)
	if from == nil || to == nil {
		return "", deny("unknown party")
	}
	if fromId == toId {
		return "", g.rejected(fromId, "trading with oneself fools no auditor")
	}
	if from.IsStalin || to.IsStalin {
		return "", g.rejected(fromId, "the State does not haggle")
	}
	if from.Eliminated || to.Eliminated {
		return "", g.rejected(fromId, "the liquidated hold nothing to trade")
	}

	offer := &models.TradeOffer{
		Id:         uuid.NewV4().String(),
		FromId:     fromId,
		ToId:       toId,
		Offering:   offering,
		Requesting: requesting,
	}
	g.Trades[offer.Id] = offer
	g.appendLog(models.LogTrade, fmt.Sprintf("%s proposes a deal to %s.", from.Name, to.Name), fromId)
	return offer.Id, allow()
}

// validateBundle checks one side of an offer against its owner.
func (g *Game) validateBundle(p *models.Player, b models.TradeBundle, counterparty string) Decision {
	if b.Rubles < 0 || b.ReleaseTokens < 0 || b.Favours < 0 {
		return deny("bundles cannot contain negative quantities")
	}
	if p.Balance < b.Rubles {
		return deny(p.Name + " cannot cover the rubles promised")
	}
	if b.ReleaseTokens > 1 || (b.ReleaseTokens == 1 && !p.ReleaseToken) {
		return deny(p.Name + " does not hold the promised release order")
	}
	for _, spaceId := range b.Properties {
		prop := g.Properties[spaceId]
		if prop == nil || prop.CustodianId != p.Id {
			return deny(fmt.Sprintf("%s is not custodian of space %d", p.Name, spaceId))
		}
		if d := g.canReceiveProperty(counterparty, spaceId); !d.Allowed {
			return d
		}
	}
	return allow()
}

// AcceptTrade executes both bundles atomically: everything is
// validated before anything moves, so a failed check leaves all
// balances and custodianships untouched.
func (g *Game) AcceptTrade(playerId, offerId string) Decision {
	offer, ok := g.Trades[offerId]
	if !ok {
		return deny("unknown offer")
	}
	if offer.ToId != playerId {
		return g.rejected(playerId, "only the addressee may accept an offer")
	}
	from := g.player(offer.FromId)
	to := g.player(offer.ToId)
	if from == nil || to == nil || from.Eliminated || to.Eliminated {
		delete(g.Trades, offerId)
		return deny("a party to the offer is no longer with us")
	}

	if d := g.validateBundle(from, offer.Offering, to.Id); !d.Allowed {
		return g.rejected(playerId, d.Reason)
	}
	if d := g.validateBundle(to, offer.Requesting, from.Id); !d.Allowed {
		return g.rejected(playerId, d.Reason)
	}

	// All checks passed; apply both sides. The debits were validated
	// above and cannot fail.
	g.debit(from, offer.Offering.Rubles)
	g.credit(to, offer.Offering.Rubles)
	g.debit(to, offer.Requesting.Rubles)
	g.credit(from, offer.Requesting.Rubles)

	for _, spaceId := range offer.Offering.Properties {
		g.TransferProperty(spaceId, to.Id)
	}
	for _, spaceId := range offer.Requesting.Properties {
		g.TransferProperty(spaceId, from.Id)
	}

	if offer.Offering.ReleaseTokens == 1 {
		from.ReleaseToken = false
		to.ReleaseToken = true
	}
	if offer.Requesting.ReleaseTokens == 1 {
		to.ReleaseToken = false
		from.ReleaseToken = true
	}

	for i := 0; i < offer.Offering.Favours; i++ {
		from.FavoursOwed = append(from.FavoursOwed, to.Id)
	}
	for i := 0; i < offer.Requesting.Favours; i++ {
		to.FavoursOwed = append(to.FavoursOwed, from.Id)
	}

	delete(g.Trades, offerId)
	g.appendLog(models.LogTrade, fmt.Sprintf("%s and %s conclude their deal. All paperwork is in order, officially.", from.Name, to.Name), playerId)
	return allow()
}

// RejectTrade removes an offer with no state change. Either party may
// withdraw.
func (g *Game) RejectTrade(playerId, offerId string) Decision {
	offer, ok := g.Trades[offerId]
	if !ok {
		return deny("unknown offer")
	}
	if playerId != offer.ToId && playerId != offer.FromId {
		return g.rejected(playerId, "the offer is none of this player's business")
	}
	delete(g.Trades, offerId)
	g.appendLog(models.LogTrade, "A proposed deal is declined. Nothing happened, and everyone saw it not happen.", playerId)
	return allow()
}
