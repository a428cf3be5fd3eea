package engine

import (
	"fmt"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// CanPurchase checks whether a player may take custodianship of a
// space. The decision carries a reason the UI can show verbatim.
func (g *Game) CanPurchase(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	space, err := g.cfg.GetById(spaceId)
	if p == nil || err != nil {
		return deny("unknown player or space")
	}
	if p.IsStalin {
		return deny("the State already holds everything worth holding")
	}
	if p.Eliminated {
		return deny("the liquidated own nothing")
	}
	if !space.Ownable() {
		return deny(space.Name + " is not for sale")
	}
	prop := g.Properties[spaceId]
	if prop.CustodianId != "" {
		return deny(space.Name + " already has a custodian")
	}
	if minRank, ok := board.GroupMinRank[space.Group]; ok {
		if space.Group == "elite" {
			if p.Rank != models.InnerCircle {
				return deny("only the inner circle may hold " + space.Name)
			}
		} else if models.RankIndex(p.Rank) < models.RankIndex(minRank) {
			return deny(fmt.Sprintf("%s requires the rank of %s or above", space.Name, minRank))
		}
	}
	if info, ok := board.Pieces[p.Piece]; ok {
		for _, barred := range info.BarredGroups {
			if barred == space.Group {
				return deny(info.Name + " may not hold property in the " + space.Group + " group")
			}
		}
	}
	return allow()
}

// discountedPrice applies the rank-based purchase discount.
func discountedPrice(rank models.Rank, price int) int {
	return price - price*board.PurchaseDiscount[rank]/100
}

// PurchaseProperty debits the player, credits the State treasury and
// assigns custodianship. The quoted price is discounted by rank.
func (g *Game) PurchaseProperty(playerId string, spaceId int, price int) Decision {
	if d := g.CanPurchase(playerId, spaceId); !d.Allowed {
		if g.player(playerId) != nil {
			return g.rejected(playerId, d.Reason)
		}
		return d
	}
	p := g.player(playerId)
	space, _ := g.cfg.GetById(spaceId)

	cost := discountedPrice(p.Rank, price)
	if !g.debit(p, cost) {
		return g.rejected(playerId, fmt.Sprintf("%s cannot afford %s (%d rubles needed)", p.Name, space.Name, cost))
	}
	g.Treasury += cost
	g.Properties[spaceId].CustodianId = p.Id
	p.AddProperty(spaceId)
	g.appendLog(models.LogProperty, fmt.Sprintf("%s becomes custodian of %s for %d rubles.", p.Name, space.Name, cost), p.Id)
	return allow()
}

// ownsFullGroup reports whether the player is custodian of every space
// in a color group.
func (g *Game) ownsFullGroup(playerId, group string) bool {
	members := g.cfg.GroupMembers(group)
	if len(members) == 0 {
		return false
	}
	for _, id := range members {
		if g.Properties[id] == nil || g.Properties[id].CustodianId != playerId {
			return false
		}
	}
	return true
}

// countOwnedInGroup counts group members held by the player.
func (g *Game) countOwnedInGroup(playerId, group string) int {
	n := 0
	for _, id := range g.cfg.GroupMembers(group) {
		if g.Properties[id] != nil && g.Properties[id].CustodianId == playerId {
			n++
		}
	}
	return n
}

// CalculateQuota computes the fee owed by a player landing on a space.
// diceTotal is only consulted for utilities.
func (g *Game) CalculateQuota(spaceId int, landingPlayerId string, diceTotal int) int {
	prop := g.Properties[spaceId]
	lander := g.player(landingPlayerId)
	space, err := g.cfg.GetById(spaceId)
	if prop == nil || lander == nil || err != nil {
		return 0
	}
	if prop.CustodianId == "" || prop.Mortgaged || prop.CustodianId == lander.Id {
		return 0
	}

	switch space.Type {
	case models.SpaceRailway:
		n := g.countOwnedInGroup(prop.CustodianId, space.Group)
		if n >= len(board.RailwayFees) {
			n = len(board.RailwayFees) - 1
		}
		return board.RailwayFees[n]
	case models.SpaceUtility:
		if g.countOwnedInGroup(prop.CustodianId, space.Group) >= 2 {
			return diceTotal * 10
		}
		return diceTotal * 4
	}

	quota := space.BaseQuota * board.CollectivizationTable[prop.CollectivizationLevel].Multiplier
	if g.ownsFullGroup(prop.CustodianId, space.Group) {
		quota *= 2
	}
	if lander.Piece == models.PiecePeasant && board.FarmDiscountGroups[space.Group] {
		quota = quota / 2
	}
	if board.SurchargeGroups[space.Group] && lander.Rank == models.Proletariat {
		quota *= 2
	}
	return quota
}

// AddCollectivization raises a property's improvement level by one,
// enforcing the even-building rule and the full-group requirement for
// level 5.
func (g *Game) AddCollectivization(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	prop := g.Properties[spaceId]
	space, err := g.cfg.GetById(spaceId)
	if p == nil || prop == nil || err != nil {
		return deny("unknown player or space")
	}
	if space.Type != models.SpaceProperty {
		return g.rejected(playerId, space.Name+" cannot be collectivized")
	}
	if prop.CustodianId != p.Id {
		return g.rejected(playerId, p.Name+" is not the custodian of "+space.Name)
	}
	if prop.Mortgaged {
		return g.rejected(playerId, space.Name+" is mortgaged to the State")
	}
	if prop.CollectivizationLevel >= 5 {
		return g.rejected(playerId, space.Name+" is already fully collectivized")
	}
	for _, id := range g.cfg.GroupMembers(space.Group) {
		other := g.Properties[id]
		if other.CustodianId == p.Id && other.CollectivizationLevel < prop.CollectivizationLevel {
			return g.rejected(playerId, "collectivization must proceed evenly across the "+space.Group+" group")
		}
	}
	next := prop.CollectivizationLevel + 1
	if next == 5 && !g.ownsFullGroup(p.Id, space.Group) {
		return g.rejected(playerId, "full collectivization of "+space.Name+" requires custodianship of the entire "+space.Group+" group")
	}
	cost := board.CollectivizationTable[next].Cost
	if !g.debit(p, cost) {
		return g.rejected(playerId, fmt.Sprintf("%s cannot afford collectivization level %d (%d rubles)", p.Name, next, cost))
	}
	g.Treasury += cost
	prop.CollectivizationLevel = next
	g.appendLog(models.LogProperty, fmt.Sprintf("%s collectivizes %s to level %d.", p.Name, space.Name, next), p.Id)
	return allow()
}

// SellCollectivization lowers the level by one, refunding half the
// step cost. The even-building rule applies in reverse: no property in
// the group may be left more than one level above its siblings.
func (g *Game) SellCollectivization(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	prop := g.Properties[spaceId]
	space, err := g.cfg.GetById(spaceId)
	if p == nil || prop == nil || err != nil {
		return deny("unknown player or space")
	}
	if prop.CustodianId != p.Id {
		return g.rejected(playerId, p.Name+" is not the custodian of "+space.Name)
	}
	if prop.CollectivizationLevel == 0 {
		return g.rejected(playerId, space.Name+" has no collectivization to undo")
	}
	for _, id := range g.cfg.GroupMembers(space.Group) {
		other := g.Properties[id]
		if other.CustodianId == p.Id && other.CollectivizationLevel > prop.CollectivizationLevel {
			return g.rejected(playerId, "collectivization must be dismantled evenly across the "+space.Group+" group")
		}
	}
	refund := board.CollectivizationTable[prop.CollectivizationLevel].Cost / 2
	prop.CollectivizationLevel--
	g.Treasury -= refund
	g.credit(p, refund)
	g.appendLog(models.LogProperty, fmt.Sprintf("%s dismantles collectivization on %s (refund %d rubles).", p.Name, space.Name, refund), p.Id)
	return allow()
}

// MortgageProperty pays the custodian half the base cost. Blocked while
// the property carries any collectivization.
func (g *Game) MortgageProperty(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	prop := g.Properties[spaceId]
	space, err := g.cfg.GetById(spaceId)
	if p == nil || prop == nil || err != nil {
		return deny("unknown player or space")
	}
	if prop.CustodianId != p.Id {
		return g.rejected(playerId, p.Name+" is not the custodian of "+space.Name)
	}
	if prop.Mortgaged {
		return g.rejected(playerId, space.Name+" is already mortgaged")
	}
	if prop.CollectivizationLevel > 0 {
		return g.rejected(playerId, space.Name+" must be fully de-collectivized before mortgaging")
	}
	payout := space.BaseCost / 2
	prop.Mortgaged = true
	g.Treasury -= payout
	g.credit(p, payout)
	g.appendLog(models.LogProperty, fmt.Sprintf("%s mortgages %s to the State for %d rubles.", p.Name, space.Name, payout), p.Id)
	return allow()
}

// UnmortgageProperty charges 60% of base cost and lifts the mortgage.
func (g *Game) UnmortgageProperty(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	prop := g.Properties[spaceId]
	space, err := g.cfg.GetById(spaceId)
	if p == nil || prop == nil || err != nil {
		return deny("unknown player or space")
	}
	if prop.CustodianId != p.Id {
		return g.rejected(playerId, p.Name+" is not the custodian of "+space.Name)
	}
	if !prop.Mortgaged {
		return g.rejected(playerId, space.Name+" is not mortgaged")
	}
	cost := space.BaseCost * 60 / 100
	if !g.debit(p, cost) {
		return g.rejected(playerId, fmt.Sprintf("%s cannot afford to redeem %s (%d rubles)", p.Name, space.Name, cost))
	}
	g.Treasury += cost
	prop.Mortgaged = false
	g.appendLog(models.LogProperty, fmt.Sprintf("%s redeems %s from the State for %d rubles.", p.Name, space.Name, cost), p.Id)
	return allow()
}

// canReceiveProperty checks recipient eligibility for a transfer: the
// purchase rules minus the vacant-custodianship requirement, since a
// transfer replaces the current custodian.
func (g *Game) canReceiveProperty(toPlayerId string, spaceId int) Decision {
	prop := g.Properties[spaceId]
	if prop == nil {
		return deny("unknown space")
	}
	if g.player(toPlayerId) == nil {
		return deny("unknown recipient")
	}
	held := prop.CustodianId
	prop.CustodianId = ""
	d := g.CanPurchase(toPlayerId, spaceId)
	prop.CustodianId = held
	return d
}

// TransferProperty moves custodianship. toPlayerId may be empty, which
// returns the space to the State. Recipient eligibility is revalidated;
// purchase, trade and abilities all pass through here.
func (g *Game) TransferProperty(spaceId int, toPlayerId string) Decision {
	prop := g.Properties[spaceId]
	space, err := g.cfg.GetById(spaceId)
	if prop == nil || err != nil {
		return deny("unknown space")
	}

	if toPlayerId != "" {
		if d := g.canReceiveProperty(toPlayerId, spaceId); !d.Allowed {
			return g.rejected(toPlayerId, d.Reason)
		}
	}

	if prop.CustodianId != "" {
		if from := g.player(prop.CustodianId); from != nil {
			from.RemoveProperty(spaceId)
		}
	}
	prop.CustodianId = toPlayerId
	if toPlayerId != "" {
		g.player(toPlayerId).AddProperty(spaceId)
		g.appendLog(models.LogProperty, fmt.Sprintf("Custodianship of %s passes to %s.", space.Name, g.player(toPlayerId).Name), toPlayerId)
	} else {
		prop.CollectivizationLevel = 0
		prop.Mortgaged = false
		g.appendLog(models.LogProperty, fmt.Sprintf("%s reverts to the State.", space.Name), "")
	}
	return allow()
}
