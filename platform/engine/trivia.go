package engine

import (
	"fmt"
	"strings"

	"github.com/redstar-games/politburo-backend/app/models"
)

// Loyalty-test stakes.
const (
	triviaReward  = 25
	triviaPenalty = 50
)

// AnswerMatches implements the bank's grading rule: the submission is
// correct when any acceptable answer appears in it, case-insensitively.
func AnswerMatches(q models.TriviaQuestion, answer string) bool {
	given := strings.ToLower(strings.TrimSpace(answer))
	if given == "" {
		return false
	}
	for _, acceptable := range q.Answers {
		if strings.Contains(given, strings.ToLower(acceptable)) {
			return true
		}
	}
	return false
}

// askTrivia draws a question (any difficulty when empty) and parks it
// as the pending action.
func (g *Game) askTrivia(p *models.Player, difficulty string) {
	bank := g.cfg.Trivia
	if difficulty != "" {
		bank = g.cfg.TriviaByDifficulty(difficulty)
	}
	if len(bank) == 0 {
		return
	}
	q := bank[g.rng.Intn(len(bank))]
	if !g.setPending(PendingTrivia{Kind: "trivia", PlayerId: p.Id, QuestionId: q.Id, Question: q.Question, Difficulty: q.Difficulty}) {
		g.appendLog(models.LogTrivia, p.Name+" is spared an examination; the Party is busy.", p.Id)
		return
	}
	g.appendLog(models.LogTrivia, fmt.Sprintf("%s faces a loyalty examination: %s", p.Name, q.Question), p.Id)
}

// StartTrivia lets the UI open a loyalty test directly.
func (g *Game) StartTrivia(playerId, difficulty string) Decision {
	p := g.player(playerId)
	if p == nil {
		return deny("unknown player")
	}
	if g.Pending != nil {
		return g.rejected(playerId, "another matter is pending")
	}
	g.askTrivia(p, difficulty)
	return allow()
}

// PreviewTrivia is the Lubyanka custodian's per-round privilege: a
// look at the acceptable answers before answering.
func (g *Game) PreviewTrivia(playerId string) ([]string, Decision) {
	p := g.player(playerId)
	if p == nil {
		return nil, deny("unknown player")
	}
	pa, ok := g.Pending.(PendingTrivia)
	if !ok {
		return nil, g.rejected(playerId, "no examination is in progress")
	}
	if !g.ownsFullGroup(p.Id, "kgb") {
		return nil, g.rejected(playerId, "only the custodian of Lubyanka hears the answers in advance")
	}
	if p.Caps.PreviewUsedThisRound {
		return nil, g.rejected(playerId, "the walls have already whispered this round")
	}
	q, err := g.questionById(pa.QuestionId)
	if err != nil {
		return nil, deny("unknown question")
	}
	p.Caps.PreviewUsedThisRound = true
	g.appendLog(models.LogAbility, p.Name+" consults the walls of Lubyanka before the examination.", p.Id)
	return q.Answers, allow()
}

// AnswerTrivia grades the pending examination and settles the stakes.
// The grandmaster cannot be tricked; the apparatchik pays double for
// failure.
func (g *Game) AnswerTrivia(playerId, answer string) (bool, Decision) {
	pa, ok := g.Pending.(PendingTrivia)
	if !ok {
		return false, deny("no examination is in progress")
	}
	if pa.PlayerId != playerId {
		return false, g.rejected(playerId, "the question was not addressed to this player")
	}
	p := g.player(playerId)
	q, err := g.questionById(pa.QuestionId)
	if err != nil {
		g.clearPending()
		return false, deny("unknown question")
	}
	g.clearPending()

	correct := AnswerMatches(q, answer)
	if q.Difficulty == "trick" && p.Piece == models.PieceGrandmaster {
		correct = true
		g.appendLog(models.LogAbility, p.Name+" saw the trick several moves ago.", p.Id)
	}

	if correct {
		g.Treasury -= triviaReward
		g.credit(p, triviaReward)
		g.appendLog(models.LogTrivia, fmt.Sprintf("%s answers correctly and receives %d rubles for ideological clarity.", p.Name, triviaReward), p.Id)
		return true, allow()
	}
	penalty := triviaPenalty
	if p.Piece == models.PieceApparatchik {
		penalty *= 2
	}
	g.appendLog(models.LogTrivia, fmt.Sprintf("%s answers incorrectly. The correct answer has always been correct.", p.Name), p.Id)
	g.chargeOrDebt(p, "", penalty, "failed loyalty examination")
	return false, allow()
}

func (g *Game) questionById(id int) (models.TriviaQuestion, error) {
	for _, q := range g.cfg.Trivia {
		if q.Id == id {
			return q, nil
		}
	}
	return models.TriviaQuestion{}, ErrNotFound
}
