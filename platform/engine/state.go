package engine

import (
	"errors"
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
)

// Decision is the engine's answer to a rules question: allowed or
// denied with a human-readable reason. Rule violations are reported
// this way, never as errors (errors are reserved for bad references
// and programming faults).
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// ErrNotFound is returned for stale or unknown ids. Per policy the
// engine does not log these; it just declines to act.
var ErrNotFound = errors.New("engine: not found")

// PlayerSetup is one row of the UI-provided setup list.
type PlayerSetup struct {
	Name     string       `json:"name"`
	Piece    models.Piece `json:"piece"`
	Rank     models.Rank  `json:"rank,omitempty"` // optional override
	IsStalin bool         `json:"is_stalin"`
}

// StartingBalance is handed to every competing player.
const StartingBalance = 1000

// StartingTreasury is the State's opening reserve.
const StartingTreasury = 50000

// Game is the entire mutable state of one session. Every engine
// operation is a method on Game; there are no package-level singletons.
// The caller (the socket layer) serializes access.
type Game struct {
	Players    []*models.Player         `json:"players"`
	Properties map[int]*models.Property `json:"properties"`
	Treasury   int                      `json:"treasury"`

	Order        []string    `json:"order"` // turn order, player ids
	Current      int         `json:"current"`
	Round        int         `json:"round"`
	DoublesCount int         `json:"doubles_count"`
	HasRolled    bool        `json:"has_rolled"`
	LastRoll     *RollResult `json:"last_roll,omitempty"`

	Tribunal     *models.Tribunal `json:"tribunal,omitempty"`
	LastTribunal *models.Tribunal `json:"last_tribunal,omitempty"`

	Trades  map[string]*models.TradeOffer `json:"trades"`
	Pending PendingAction                 `json:"pending,omitempty"`

	Log []models.GameLogEntry `json:"log"`

	Started bool   `json:"started"`
	Over    bool   `json:"over"`
	Winner  string `json:"winner,omitempty"` // player id, or "" for the State

	cfg *board.Config
	rng *rand.Rand
}

// New builds a fresh session from a setup list. Exactly one entry must
// be flagged as Stalin; Stalin competes in no turn and holds no piece.
func New(cfg *board.Config, setup []PlayerSetup, seed int64) (*Game, error) {
	if cfg == nil {
		return nil, errors.New("engine: nil config")
	}
	stalins := 0
	for _, s := range setup {
		if s.IsStalin {
			stalins++
		}
	}
	if stalins != 1 {
		return nil, errors.New("engine: exactly one Stalin required")
	}
	if len(setup) < 3 {
		return nil, errors.New("engine: need Stalin plus at least two players")
	}

	g := &Game{
		Properties: map[int]*models.Property{},
		Treasury:   StartingTreasury,
		Trades:     map[string]*models.TradeOffer{},
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
	}

	for _, s := range setup {
		p := &models.Player{
			Id:          uuid.NewV4().String(),
			Name:        s.Name,
			Piece:       s.Piece,
			Rank:        models.Proletariat,
			Balance:     StartingBalance,
			Properties:  []int{},
			FavoursOwed: []string{},
		}
		if s.IsStalin {
			p.IsStalin = true
			p.Piece = models.PieceNone
			p.Rank = models.InnerCircle
			p.Balance = 0
		} else {
			if info, ok := board.Pieces[s.Piece]; ok {
				p.Rank = info.StartingRank
			}
			if s.Rank != "" && models.RankIndex(s.Rank) >= 0 {
				p.Rank = s.Rank
			}
		}
		g.Players = append(g.Players, p)
	}

	for _, space := range cfg.Spaces {
		if space.Ownable() {
			g.Properties[space.Id] = &models.Property{SpaceId: space.Id}
		}
	}

	g.appendLog(models.LogSystem, "A new game convenes. The State is watching.", "")
	return g, nil
}

// NewSeeded builds a session seeded from the wall clock.
func NewSeeded(cfg *board.Config, setup []PlayerSetup) (*Game, error) {
	return New(cfg, setup, time.Now().UnixNano())
}

// player resolves an id, nil when unknown (silent no-op policy).
func (g *Game) player(id string) *models.Player {
	for _, p := range g.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// GetPlayer exposes player lookup to the shell layer.
func (g *Game) GetPlayer(id string) *models.Player { return g.player(id) }

// Stalin returns the adjudicator.
func (g *Game) Stalin() *models.Player {
	for _, p := range g.Players {
		if p.IsStalin {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the turn holder, nil before StartGame.
func (g *Game) CurrentPlayer() *models.Player {
	if !g.Started || len(g.Order) == 0 {
		return nil
	}
	return g.player(g.Order[g.Current])
}

// Config exposes the static tables to the shell layer.
func (g *Game) Config() *board.Config { return g.cfg }

// credit adds rubles to a player, applying the profiteer ceiling: the
// overflow is confiscated to the treasury.
func (g *Game) credit(p *models.Player, amount int) {
	p.Balance += amount
	if p.Piece == models.PieceProfiteer && p.Balance > board.ProfiteerCeiling {
		g.Treasury += p.Balance - board.ProfiteerCeiling
		p.Balance = board.ProfiteerCeiling
		g.appendLog(models.LogAbility, p.Name+" holds more than the black market can hide; the surplus is confiscated.", p.Id)
	}
}

// debit removes rubles if the player can afford it. The profiteer floor
// is topped back up from the treasury afterwards.
func (g *Game) debit(p *models.Player, amount int) bool {
	if p.Balance < amount {
		return false
	}
	p.Balance -= amount
	if p.Piece == models.PieceProfiteer && p.Balance < board.ProfiteerFloor {
		g.Treasury -= board.ProfiteerFloor - p.Balance
		p.Balance = board.ProfiteerFloor
		g.appendLog(models.LogAbility, p.Name+" is never entirely broke; a hidden stash appears.", p.Id)
	}
	return true
}

// demote drops a player one rank, saturating at proletariat. The
// apparatchik does not survive the fall to the bottom of the ladder.
func (g *Game) demote(p *models.Player, why string) {
	before := p.Rank
	p.Rank = models.Demote(p.Rank)
	if p.Rank != before {
		g.appendLog(models.LogSystem, p.Name+" is demoted to "+string(p.Rank)+" ("+why+").", p.Id)
	}
	if p.Piece == models.PieceApparatchik && p.Rank == models.Proletariat && !p.Eliminated {
		g.eliminate(p, "an apparatchik reduced to the proletariat has nothing left to live for")
	}
}

// promote raises a player one rank, saturating at innerCircle.
func (g *Game) promote(p *models.Player, why string) {
	before := p.Rank
	p.Rank = models.Promote(p.Rank)
	if p.Rank != before {
		g.appendLog(models.LogSystem, p.Name+" is promoted to "+string(p.Rank)+" ("+why+").", p.Id)
	}
}

// eliminate removes a player from play. Holdings revert to the State.
func (g *Game) eliminate(p *models.Player, why string) {
	if p.Eliminated {
		return
	}
	p.Eliminated = true
	p.InGulag = false
	p.GulagTurns = 0
	g.Treasury += p.Balance
	p.Balance = 0
	for _, id := range append([]int(nil), p.Properties...) {
		if prop, ok := g.Properties[id]; ok {
			prop.CustodianId = ""
			prop.CollectivizationLevel = 0
			prop.Mortgaged = false
		}
		p.RemoveProperty(id)
	}
	g.appendLog(models.LogSystem, p.Name+" is liquidated: "+why+".", p.Id)
	g.CheckGameEnd()
}
