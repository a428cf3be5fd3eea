package engine

import (
	"fmt"
	"sort"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// RollResult is one dice throw, after any piece modifiers.
type RollResult struct {
	Dice    []int `json:"dice"` // as thrown
	Kept    []int `json:"kept"` // the two that count
	Total   int   `json:"total"`
	Doubles bool  `json:"doubles"`
}

func (g *Game) rollDie() int { return g.rng.Intn(6) + 1 }

// StartGame shuffles the turn order among competing players and opens
// round one. Stalin is not in the order; he presides.
func (g *Game) StartGame() Decision {
	if g.Started {
		return g.rejected("", "the game is already underway")
	}
	var order []string
	for _, p := range g.Players {
		if !p.IsStalin && !p.Eliminated {
			order = append(order, p.Id)
		}
	}
	g.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	g.Order = order
	g.Current = 0
	g.Round = 1
	g.DoublesCount = 0
	g.HasRolled = false
	g.Started = true

	first := g.player(order[0])
	g.appendLog(models.LogTurn, fmt.Sprintf("Round 1 begins. %s moves first; the order was decided fairly, by forces nobody may question.", first.Name), first.Id)
	return allow()
}

// RollDice throws for the current player and resolves movement and the
// landing effect. The grandmaster may throw three dice and keep the
// best two. Three consecutive doubles end the walk in the Gulag.
func (g *Game) RollDice(playerId string, useThirdDie bool) (RollResult, Decision) {
	p := g.player(playerId)
	if p == nil {
		return RollResult{}, deny("unknown player")
	}
	if !g.Started || g.Over {
		return RollResult{}, g.rejected(playerId, "no game in progress")
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.Id != p.Id {
		return RollResult{}, g.rejected(playerId, "it is not "+p.Name+"'s turn")
	}
	if g.Pending != nil {
		return RollResult{}, g.rejected(playerId, "a pending matter must be resolved first")
	}
	if p.InGulag {
		return RollResult{}, g.rejected(playerId, p.Name+" rolls from inside the Gulag only to escape it")
	}
	if g.HasRolled {
		return RollResult{}, g.rejected(playerId, p.Name+" has already rolled this turn")
	}
	if useThirdDie && p.Piece != models.PieceGrandmaster {
		return RollResult{}, g.rejected(playerId, "only the grandmaster plays with three dice")
	}

	res := RollResult{Dice: []int{g.rollDie(), g.rollDie()}}
	if useThirdDie {
		res.Dice = append(res.Dice, g.rollDie())
	}
	kept := append([]int(nil), res.Dice...)
	sort.Sort(sort.Reverse(sort.IntSlice(kept)))
	res.Kept = kept[:2]
	res.Total = res.Kept[0] + res.Kept[1]
	res.Doubles = res.Kept[0] == res.Kept[1]

	g.HasRolled = true
	g.LastRoll = &res

	if res.Doubles {
		g.DoublesCount++
		if g.DoublesCount >= 3 {
			g.appendLog(models.LogTurn, fmt.Sprintf("%s throws a third consecutive double. Such luck is suspicious.", p.Name), p.Id)
			g.DoublesCount = 0
			g.SendToGulag(p.Id, CauseThreeDoubles, "")
			return res, allow()
		}
	} else {
		g.DoublesCount = 0
	}

	g.appendLog(models.LogTurn, fmt.Sprintf("%s rolls %d.", p.Name, res.Total), p.Id)
	g.moveAndLand(p, res.Total)
	return res, allow()
}

// moveAndLand advances a token and applies pass-start and landing
// effects. steps doubles as the dice total for utility quotas.
func (g *Game) moveAndLand(p *models.Player, steps int) {
	old := p.Position
	p.Position = (old + steps) % board.BoardSize
	if old+steps >= board.BoardSize {
		g.handleStartPass(p)
	}
	if p.Eliminated || p.InGulag {
		return
	}
	g.handleLanding(p, steps)
}

// handleStartPass settles the Red Square crossing: the hero's bonus,
// the travel tax, the per-lap ability reset, and the chance to pilfer.
func (g *Game) handleStartPass(p *models.Player) {
	if p.Piece == models.PieceWorker {
		g.Treasury -= 100
		g.credit(p, 100)
		g.appendLog(models.LogAbility, p.Name+" crosses Red Square to applause and a 100 ruble hero's bonus.", p.Id)
	}
	p.Caps.RequisitionUsedThisLap = false

	g.chargeOrDebt(p, "", board.TravelTax, "travel tax at Red Square")

	if p.Eliminated {
		return
	}
	if !g.setPending(PendingPilfer{Kind: "pilfer", PlayerId: p.Id}) {
		g.appendLog(models.LogTurn, p.Name+" passes the treasury but the moment is wrong for pilfering.", p.Id)
	}
}

// handleLanding applies the effect of the space under the token.
func (g *Game) handleLanding(p *models.Player, diceTotal int) {
	space, err := g.cfg.GetById(p.Position)
	if err != nil {
		return
	}

	switch space.Type {
	case models.SpaceCorner:
		switch space.Id {
		case board.ToGulagSpace:
			g.SendToGulag(p.Id, CausePatrol, "")
		case board.GulagSpace:
			g.appendLog(models.LogTurn, p.Name+" visits the Gulag, strictly as a tourist.", p.Id)
		case board.DachaSpace:
			g.appendLog(models.LogTurn, p.Name+" rests at the dacha. Nothing is free, but this comes close.", p.Id)
		}

	case models.SpaceProperty, models.SpaceRailway, models.SpaceUtility:
		prop := g.Properties[space.Id]
		if prop.CustodianId == "" {
			if d := g.CanPurchase(p.Id, space.Id); d.Allowed {
				price := discountedPrice(p.Rank, space.BaseCost)
				if !g.setPending(PendingPurchase{Kind: "purchase", PlayerId: p.Id, SpaceId: space.Id, Price: price}) {
					g.appendLog(models.LogProperty, fmt.Sprintf("%s is available but %s has other business pending.", space.Name, p.Name), p.Id)
				}
			} else {
				g.appendLog(models.LogProperty, fmt.Sprintf("%s eyes %s in vain: %s.", p.Name, space.Name, d.Reason), p.Id)
			}
			return
		}
		quota := g.CalculateQuota(space.Id, p.Id, diceTotal)
		if quota > 0 {
			g.chargeOrDebt(p, prop.CustodianId, quota, "quota owed at "+space.Name)
		}

	case models.SpaceCard:
		deck := "file"
		if space.Name == "Party Directive" {
			deck = "directive"
		}
		cards := g.cfg.Cards[deck]
		if len(cards) == 0 {
			return
		}
		g.applySpecial(p, cards[g.rng.Intn(len(cards))])

	case models.SpaceTax:
		amount := space.BaseCost
		if p.Piece == models.PieceApparatchik {
			amount *= 2
		}
		g.chargeOrDebt(p, "", amount, space.Name)
	}
}

// applySpecial executes one drawn card.
func (g *Game) applySpecial(p *models.Player, sp models.Special) {
	g.appendLog(models.LogTurn, fmt.Sprintf("%s draws a card: %s", p.Name, sp.Info), p.Id)
	switch sp.Action {
	case "change":
		if sp.Payload >= 0 {
			g.Treasury -= sp.Payload
			g.credit(p, sp.Payload)
		} else {
			g.chargeOrDebt(p, "", -sp.Payload, "card penalty")
		}
	case "move":
		steps := (sp.Payload - p.Position + board.BoardSize) % board.BoardSize
		if steps == 0 {
			steps = board.BoardSize
		}
		g.moveAndLand(p, steps)
	case "gulag":
		g.SendToGulag(p.Id, CauseCard, sp.Info)
	case "promote":
		g.promote(p, "card drawn")
	case "demote":
		g.demote(p, "card drawn")
	case "token":
		p.ReleaseToken = true
	case "test":
		g.askTrivia(p, "")
	}
}

// chargeOrDebt debits the player in favour of a creditor ("" meaning
// the State). A shortfall becomes a pending debt for the table to
// resolve.
func (g *Game) chargeOrDebt(p *models.Player, creditorId string, amount int, context string) {
	if g.debit(p, amount) {
		if creditorId == "" {
			g.Treasury += amount
		} else if c := g.player(creditorId); c != nil {
			g.credit(c, amount)
		}
		g.appendLog(models.LogProperty, fmt.Sprintf("%s pays %d rubles (%s).", p.Name, amount, context), p.Id)
		return
	}
	if !g.setPending(PendingDebt{Kind: "debt", DebtorId: p.Id, CreditorId: creditorId, Amount: amount, Context: context}) {
		// Two debts cannot be outstanding; the older matter wins and
		// this one bankrupts immediately.
		g.appendLog(models.LogSystem, fmt.Sprintf("%s cannot pay %d rubles (%s) and no relief is available.", p.Name, amount, context), p.Id)
		g.settleBankruptcy(p, creditorId)
		return
	}
	g.appendLog(models.LogSystem, fmt.Sprintf("%s cannot pay %d rubles (%s). The matter hangs in the air.", p.Name, amount, context), p.Id)
}

// settleBankruptcy liquidates a debtor. A player creditor inherits the
// cash; holdings always revert to the State.
func (g *Game) settleBankruptcy(p *models.Player, creditorId string) {
	if creditorId != "" {
		if c := g.player(creditorId); c != nil {
			g.credit(c, p.Balance)
			p.Balance = 0
		}
	}
	g.eliminate(p, "insolvency before the State")
}

// EndTurn closes the current player's turn. Doubles grant another
// throw; otherwise play passes to the next comrade still standing.
func (g *Game) EndTurn(playerId string) Decision {
	p := g.player(playerId)
	if p == nil {
		return deny("unknown player")
	}
	if !g.Started || g.Over {
		return g.rejected(playerId, "no game in progress")
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.Id != p.Id {
		return g.rejected(playerId, "it is not "+p.Name+"'s turn")
	}
	if g.Pending != nil {
		return g.rejected(playerId, "a pending matter must be resolved first")
	}
	if !g.HasRolled && !p.InGulag && !p.Eliminated {
		return g.rejected(playerId, p.Name+" must roll before ending the turn")
	}

	if p.InGulag {
		g.HandleGulagTurn(p.Id)
	}

	if g.LastRoll != nil && g.LastRoll.Doubles && !p.InGulag && !p.Eliminated && g.DoublesCount > 0 && g.DoublesCount < 3 {
		g.HasRolled = false
		g.LastRoll = nil
		g.appendLog(models.LogTurn, fmt.Sprintf("Doubles! %s goes again.", p.Name), p.Id)
		return allow()
	}

	g.advanceTurn()
	return allow()
}

// advanceTurn moves to the next non-eliminated player in order,
// bumping the round counter when the index wraps.
func (g *Game) advanceTurn() {
	g.DoublesCount = 0
	g.HasRolled = false
	g.LastRoll = nil

	if g.CheckGameEnd() {
		return
	}
	for i := 0; i < len(g.Order); i++ {
		g.Current = (g.Current + 1) % len(g.Order)
		if g.Current == 0 {
			g.Round++
			g.resetRoundCounters()
			g.appendLog(models.LogTurn, fmt.Sprintf("Round %d begins.", g.Round), "")
		}
		next := g.player(g.Order[g.Current])
		if next != nil && !next.Eliminated {
			g.appendLog(models.LogTurn, fmt.Sprintf("It is %s's turn.", next.Name), next.Id)
			return
		}
	}
}

// resetRoundCounters clears every per-round limit at the boundary.
func (g *Game) resetRoundCounters() {
	for _, p := range g.Players {
		p.DenouncementsThisRound = 0
		p.Caps.MediaPowerUsedThisRound = false
		p.Caps.PreviewUsedThisRound = false
		if p.Liability != nil && g.Round > p.Liability.UntilRound {
			p.Liability = nil
		}
	}
}

// CheckGameEnd declares a winner when at most one competitor remains.
// With none left, the State is pleased to win by default.
func (g *Game) CheckGameEnd() bool {
	if !g.Started || g.Over {
		return g.Over
	}
	var standing []*models.Player
	for _, p := range g.Players {
		if !p.IsStalin && !p.Eliminated {
			standing = append(standing, p)
		}
	}
	switch len(standing) {
	case 0:
		g.Over = true
		g.Winner = ""
		g.appendLog(models.LogSystem, "No players remain. The State wins, as it always intended.", "")
	case 1:
		g.Over = true
		g.Winner = standing[0].Id
		g.appendLog(models.LogSystem, standing[0].Name+" is the sole survivor. History will be kind; it is being written by the winner.", standing[0].Id)
	default:
		return false
	}
	return true
}
