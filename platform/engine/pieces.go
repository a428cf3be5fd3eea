package engine

import (
	"fmt"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// The officer's per-lap requisition amount.
const requisitionAmount = 100

// UsePeasantSeizure is the peasant's one-shot: walk off with any cheap
// property held by another custodian. The transfer path still
// revalidates eligibility.
func (g *Game) UsePeasantSeizure(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	space, err := g.cfg.GetById(spaceId)
	if p == nil || err != nil {
		return deny("unknown player or space")
	}
	if p.Piece != models.PiecePeasant {
		return g.rejected(playerId, "only the peasant seizes property with a straight face")
	}
	if p.Caps.SeizureUsed {
		return g.rejected(playerId, p.Name+" has already had their moment of redistribution")
	}
	if space.BaseCost > board.SeizureCostLimit {
		return g.rejected(playerId, space.Name+" is too grand to simply walk off with")
	}
	prop := g.Properties[spaceId]
	if prop == nil || prop.CustodianId == "" || prop.CustodianId == p.Id {
		return g.rejected(playerId, space.Name+" has no custodian worth robbing")
	}
	if d := g.TransferProperty(spaceId, p.Id); !d.Allowed {
		return d
	}
	p.Caps.SeizureUsed = true
	g.appendLog(models.LogAbility, fmt.Sprintf("%s declares %s the property of the people, meaning themselves.", p.Name, space.Name), p.Id)
	return allow()
}

// UseOfficerRequisition is the officer's once-per-lap cash grab.
func (g *Game) UseOfficerRequisition(playerId, targetId string) Decision {
	p := g.player(playerId)
	target := g.player(targetId)
	if p == nil || target == nil {
		return deny("unknown player")
	}
	if p.Piece != models.PieceOfficer {
		return g.rejected(playerId, "requisitions are an army privilege")
	}
	if p.Caps.RequisitionUsedThisLap {
		return g.rejected(playerId, "one requisition per lap; even the army has rules")
	}
	if target.IsStalin || target.Eliminated || target.Id == p.Id {
		return g.rejected(playerId, target.Name+" cannot be requisitioned from")
	}
	p.Caps.RequisitionUsedThisLap = true
	taken := requisitionAmount
	if target.Balance < taken {
		taken = target.Balance
	}
	g.debit(target, taken)
	g.credit(p, taken)
	g.appendLog(models.LogAbility, fmt.Sprintf("%s requisitions %d rubles from %s for urgent military needs.", p.Name, taken, target.Name), p.Id)
	return allow()
}

// UseInformantDisappear asks Stalin's leave to return a property to
// the State. The one-shot is only consumed if he approves.
func (g *Game) UseInformantDisappear(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	space, err := g.cfg.GetById(spaceId)
	if p == nil || err != nil {
		return deny("unknown player or space")
	}
	if p.Piece != models.PieceInformant {
		return g.rejected(playerId, "disappearances are a specialist's trade")
	}
	if p.Caps.DisappearUsed {
		return g.rejected(playerId, "one disappearance per informant; more would attract attention")
	}
	prop := g.Properties[spaceId]
	if prop == nil || prop.CustodianId == "" {
		return g.rejected(playerId, space.Name+" is already the State's")
	}
	if !g.setPending(PendingDisappear{Kind: "disappear", OwnerId: p.Id, SpaceId: spaceId}) {
		return g.rejected(playerId, "another matter already awaits a decision from above")
	}
	g.appendLog(models.LogAbility, fmt.Sprintf("%s files a quiet report concerning %s.", p.Name, space.Name), p.Id)
	return allow()
}

// UseBolshevikSpeech requests the inspiring speech. Stalin decides who
// applauded sincerely enough to pay for the privilege.
func (g *Game) UseBolshevikSpeech(playerId string) Decision {
	p := g.player(playerId)
	if p == nil {
		return deny("unknown player")
	}
	if p.Piece != models.PieceBolshevik {
		return g.rejected(playerId, "only the Old Bolshevik remembers speeches worth applauding")
	}
	if p.Caps.SpeechUsed {
		return g.rejected(playerId, "the great speech has already been given")
	}
	if !g.setPending(PendingSpeech{Kind: "speech", OwnerId: p.Id}) {
		return g.rejected(playerId, "another matter already awaits a decision from above")
	}
	g.appendLog(models.LogAbility, p.Name+" clears their throat. The room braces for history.", p.Id)
	return allow()
}

// UseCampPower is the Siberian camps one-shot: nominate a target for
// re-imprisonment, subject to approval.
func (g *Game) UseCampPower(playerId, targetId string) Decision {
	p := g.player(playerId)
	target := g.player(targetId)
	if p == nil || target == nil {
		return deny("unknown player")
	}
	if !g.ownsFullGroup(p.Id, "siberia") {
		return g.rejected(playerId, "both camps must answer to one custodian first")
	}
	if p.Caps.CampPowerUsed {
		return g.rejected(playerId, "the camps have already taken their pick")
	}
	if target.IsStalin || target.Eliminated || target.Id == p.Id {
		return g.rejected(playerId, target.Name+" is not available for transport")
	}
	if !g.setPending(PendingCampPower{Kind: "campPower", OwnerId: p.Id, TargetId: targetId}) {
		return g.rejected(playerId, "another matter already awaits a decision from above")
	}
	g.appendLog(models.LogAbility, fmt.Sprintf("%s recommends %s for a tour of the camps.", p.Name, target.Name), p.Id)
	return allow()
}

// UseMinistryPower is the ministries one-shot: requisition a
// State-held space at no cost, subject to approval.
func (g *Game) UseMinistryPower(playerId string, spaceId int) Decision {
	p := g.player(playerId)
	space, err := g.cfg.GetById(spaceId)
	if p == nil || err != nil {
		return deny("unknown player or space")
	}
	if !g.ownsFullGroup(p.Id, "ministries") {
		return g.rejected(playerId, "all three ministries must be aligned first")
	}
	if p.Caps.MinistryPowerUsed {
		return g.rejected(playerId, "the ministries have already rewritten what could be rewritten")
	}
	prop := g.Properties[spaceId]
	if prop == nil || prop.CustodianId != "" {
		return g.rejected(playerId, space.Name+" is not in the State's gift")
	}
	if !g.setPending(PendingMinistryPower{Kind: "ministryPower", OwnerId: p.Id, SpaceId: spaceId}) {
		return g.rejected(playerId, "another matter already awaits a decision from above")
	}
	g.appendLog(models.LogAbility, fmt.Sprintf("%s drafts a regulation assigning %s to its rightful custodian.", p.Name, space.Name), p.Id)
	return allow()
}

// UseMediaRevote asks to reopen the last resolved tribunal. Once per
// round, subject to approval.
func (g *Game) UseMediaRevote(playerId string) Decision {
	p := g.player(playerId)
	if p == nil {
		return deny("unknown player")
	}
	if !g.ownsFullGroup(p.Id, "media") {
		return g.rejected(playerId, "the full press must speak with one voice first")
	}
	if p.Caps.MediaPowerUsedThisRound {
		return g.rejected(playerId, "the editorial line has already shifted once this round")
	}
	if g.Tribunal != nil {
		return g.rejected(playerId, "a tribunal is already in session")
	}
	if g.LastTribunal == nil {
		return g.rejected(playerId, "there is no verdict worth re-examining")
	}
	if !g.setPending(PendingMediaRevote{Kind: "mediaRevote", OwnerId: p.Id}) {
		return g.rejected(playerId, "another matter already awaits a decision from above")
	}
	g.appendLog(models.LogAbility, p.Name+"'s newspapers begin asking pointed questions about the last verdict.", p.Id)
	return allow()
}

// ResolveApproval is Stalin's yes or no on whatever currently awaits
// him. The speech is resolved through ResolveSpeech, which needs his
// list of sincere applauders.
func (g *Game) ResolveApproval(callerId string, approved bool) Decision {
	caller := g.player(callerId)
	if caller == nil {
		return deny("unknown player")
	}
	if !caller.IsStalin {
		return g.rejected(callerId, "approvals come from the top")
	}

	switch pa := g.Pending.(type) {
	case PendingBribe:
		g.clearPending()
		p := g.player(pa.PlayerId)
		if p == nil {
			return deny("unknown player")
		}
		if approved {
			g.release(p, "the bribe finds its mark; no questions are asked")
		} else {
			p.GulagTurns++
			g.appendLog(models.LogGulag, fmt.Sprintf("%s's bribe is kept and the insolence noted. Sentence extended (%d turns served).", p.Name, p.GulagTurns), p.Id)
			if p.GulagTurns >= board.MaxGulagTurns {
				g.eliminate(p, "a bribe refused one turn too late")
			}
		}
		return allow()

	case PendingCampPower:
		g.clearPending()
		owner := g.player(pa.OwnerId)
		if !approved {
			g.appendLog(models.LogAbility, "The camps' recommendation is declined. The custodian keeps the one-shot and the grudge.", pa.OwnerId)
			return allow()
		}
		if owner != nil {
			owner.Caps.CampPowerUsed = true
		}
		g.SendToGulag(pa.TargetId, CauseCampPower, "recommended by the camps' custodian")
		return allow()

	case PendingMinistryPower:
		g.clearPending()
		owner := g.player(pa.OwnerId)
		if !approved {
			g.appendLog(models.LogAbility, "The draft regulation dies in committee.", pa.OwnerId)
			return allow()
		}
		if owner != nil {
			owner.Caps.MinistryPowerUsed = true
		}
		return g.TransferProperty(pa.SpaceId, pa.OwnerId)

	case PendingMediaRevote:
		g.clearPending()
		owner := g.player(pa.OwnerId)
		if !approved || g.LastTribunal == nil {
			g.appendLog(models.LogAbility, "The press is reminded what the press is for.", pa.OwnerId)
			return allow()
		}
		if owner != nil {
			owner.Caps.MediaPowerUsedThisRound = true
		}
		reopened := *g.LastTribunal
		reopened.Phase = models.PhaseAccusation
		reopened.WitnessesFor = []string{}
		reopened.WitnessesAgainst = []string{}
		g.Tribunal = &reopened
		g.LastTribunal = nil
		g.appendLog(models.LogTribunal, "Under pressure from the press, the tribunal reconvenes.", pa.OwnerId)
		return allow()

	case PendingDisappear:
		g.clearPending()
		owner := g.player(pa.OwnerId)
		if !approved {
			g.appendLog(models.LogAbility, "The quiet report is quietly shredded.", pa.OwnerId)
			return allow()
		}
		if owner != nil {
			owner.Caps.DisappearUsed = true
		}
		space, _ := g.cfg.GetById(pa.SpaceId)
		g.appendLog(models.LogAbility, fmt.Sprintf("%s has never existed. Records agree.", space.Name), pa.OwnerId)
		return g.TransferProperty(pa.SpaceId, "")

	case PendingSpeech:
		if approved {
			return g.rejected(callerId, "approving a speech requires naming the sincere applauders")
		}
		g.clearPending()
		g.appendLog(models.LogAbility, "The speech is postponed indefinitely. The orator keeps it warm.", pa.OwnerId)
		return allow()
	}
	return deny("nothing awaits approval")
}

// ResolveSpeech approves the Old Bolshevik's speech: every designated
// applauder pays the tribute.
func (g *Game) ResolveSpeech(callerId string, applauderIds []string) Decision {
	caller := g.player(callerId)
	if caller == nil {
		return deny("unknown player")
	}
	if !caller.IsStalin {
		return g.rejected(callerId, "approvals come from the top")
	}
	pa, ok := g.Pending.(PendingSpeech)
	if !ok {
		return deny("no speech awaits approval")
	}
	g.clearPending()
	orator := g.player(pa.OwnerId)
	if orator == nil {
		return deny("unknown orator")
	}
	orator.Caps.SpeechUsed = true
	g.appendLog(models.LogAbility, fmt.Sprintf("%s delivers the speech of a lifetime. Applause is assessed for sincerity.", orator.Name), orator.Id)
	for _, id := range applauderIds {
		listener := g.player(id)
		if listener == nil || listener.Eliminated || listener.IsStalin || listener.Id == orator.Id {
			continue
		}
		paid := board.SpeechTribute
		if listener.Balance < paid {
			paid = listener.Balance
		}
		g.debit(listener, paid)
		g.credit(orator, paid)
		g.appendLog(models.LogAbility, fmt.Sprintf("%s applauded sincerely and contributes %d rubles.", listener.Name, paid), listener.Id)
	}
	return allow()
}
