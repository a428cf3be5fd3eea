package board

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redstar-games/politburo-backend/app/models"
)

//go:embed spaces.json cards.json trivia.json
var dataFS embed.FS

// Board space ids with hardcoded behavior.
const (
	StartSpace       = 0
	GulagSpace       = 10
	DachaSpace       = 20
	ToGulagSpace     = 30
	BoardSize        = 40
	TravelTax        = 50
	PilferAmount     = 100
	InformantBonus   = 100
	GulagEscapeFee   = 50
	BribeAmount      = 100
	SpeechTribute    = 50
	MaxGulagTurns    = 10
	SeizureCostLimit = 100
)

// CollectivizationTable holds the six quota multipliers and the cost of
// buying each level. Level 0 is the unimproved state.
var CollectivizationTable = []models.CollectivizationStep{
	{Level: 0, Multiplier: 1, Cost: 0},
	{Level: 1, Multiplier: 4, Cost: 100},
	{Level: 2, Multiplier: 9, Cost: 100},
	{Level: 3, Multiplier: 15, Cost: 100},
	{Level: 4, Multiplier: 20, Cost: 100},
	{Level: 5, Multiplier: 30, Cost: 250},
}

// RailwayFees is the per-landing fee indexed by the number of stations
// the custodian controls.
var RailwayFees = []int{0, 50, 100, 150, 200}

// PurchaseDiscount maps rank to the percent knocked off a purchase.
var PurchaseDiscount = map[models.Rank]int{
	models.Proletariat: 0,
	models.PartyMember: 10,
	models.Commissar:   20,
	models.InnerCircle: 50,
}

// GroupMinRank restricts custodianship of some groups by rank.
// The elite group requires inner-circle rank exactly, not merely at
// least; that check lives with the purchase rules.
var GroupMinRank = map[string]models.Rank{
	"utilities": models.Commissar,
	"media":     models.PartyMember,
	"elite":     models.InnerCircle,
}

// Groups that charge proletarians double quota.
var SurchargeGroups = map[string]bool{"elite": true}

// Groups whose quotas are halved for the peasant piece.
var FarmDiscountGroups = map[string]bool{"farms": true}

// Pieces describes the eight playable characters.
var Pieces = map[models.Piece]models.PieceInfo{
	models.PieceWorker: {
		Piece: models.PieceWorker, Name: "Stakhanovite Worker",
		Description:  "Collects a hero's bonus at Red Square and cannot be imprisoned by the schemes of mere players.",
		StartingRank: models.Proletariat, BarredGroups: []string{"kgb"},
	},
	models.PiecePeasant: {
		Piece: models.PiecePeasant, Name: "Kolkhoz Peasant",
		Description:  "Pays half quota on the farms and, once, simply walks off with a cheap property.",
		StartingRank: models.Proletariat, BarredGroups: []string{"media"},
	},
	models.PieceApparatchik: {
		Piece: models.PieceApparatchik, Name: "Party Apparatchik",
		Description:  "Starts as a Party member. Pays double on tests and taxes, and does not survive demotion to the proletariat.",
		StartingRank: models.PartyMember,
	},
	models.PieceOfficer: {
		Piece: models.PieceOfficer, Name: "Red Army Officer",
		Description:  "Requisitions cash from a comrade once per lap, and once in a lifetime is marched to a railway station instead of the Gulag.",
		StartingRank: models.Proletariat,
	},
	models.PieceProfiteer: {
		Piece: models.PieceProfiteer, Name: "Black-Market Profiteer",
		Description:  "Covers other players' debts at generous interest. Never quite broke, never quite rich.",
		StartingRank: models.Proletariat,
	},
	models.PieceInformant: {
		Piece: models.PieceInformant, Name: "NKVD Informant",
		Description:  "Nobody knows what they have. Once, with approval from above, a property simply ceases to exist.",
		StartingRank: models.Proletariat, HiddenBalance: true,
	},
	models.PieceGrandmaster: {
		Piece: models.PieceGrandmaster, Name: "Chess Grandmaster",
		Description:  "Rolls three dice and keeps the best two. Sees trick questions coming a move away.",
		StartingRank: models.Proletariat,
	},
	models.PieceBolshevik: {
		Piece: models.PieceBolshevik, Name: "Old Bolshevik",
		Description:  "Too senior to be denounced by juniors. One inspiring speech left, and everyone will applaud it.",
		StartingRank: models.Proletariat,
	},
}

// Profiteer balance clamp.
const (
	ProfiteerFloor   = 100
	ProfiteerCeiling = 3000
)

// Config is the full static configuration the engine reads. It is
// immutable after Load.
type Config struct {
	Spaces []models.BoardSpace
	Groups map[string][]int // group name -> member space ids
	Cards  map[string][]models.Special
	Trivia []models.TriviaQuestion

	byId map[int]models.BoardSpace
}

// Load parses the embedded tables. It panics on malformed data: a
// missing or bad table is a build defect, not a runtime condition.
func Load() *Config {
	cfg := &Config{
		Groups: map[string][]int{},
		byId:   map[int]models.BoardSpace{},
	}

	mustUnmarshal("spaces.json", &cfg.Spaces)
	mustUnmarshal("cards.json", &cfg.Cards)
	mustUnmarshal("trivia.json", &cfg.Trivia)

	if len(cfg.Spaces) != BoardSize {
		panic(fmt.Sprintf("board: expected %d spaces, got %d", BoardSize, len(cfg.Spaces)))
	}
	for _, space := range cfg.Spaces {
		cfg.byId[space.Id] = space
		if space.Ownable() && space.Group != "" {
			cfg.Groups[space.Group] = append(cfg.Groups[space.Group], space.Id)
		}
	}
	return cfg
}

func mustUnmarshal(name string, v interface{}) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		panic(fmt.Sprintf("board: %s: %v", name, err))
	}
}

// GetById returns the space with the given id.
func (c *Config) GetById(id int) (models.BoardSpace, error) {
	space, ok := c.byId[id]
	if !ok {
		return models.BoardSpace{}, errors.New("not found")
	}
	return space, nil
}

// GroupMembers returns the space ids belonging to a color group.
func (c *Config) GroupMembers(group string) []int {
	return c.Groups[group]
}

// NearestRailway returns the railway space id closest ahead of pos.
func (c *Config) NearestRailway(pos int) int {
	for step := 0; step < BoardSize; step++ {
		id := (pos + step) % BoardSize
		if space, ok := c.byId[id]; ok && space.Type == models.SpaceRailway {
			return id
		}
	}
	return GulagSpace // unreachable with a well-formed board
}

// TriviaByDifficulty returns the bank entries for one difficulty.
func (c *Config) TriviaByDifficulty(difficulty string) []models.TriviaQuestion {
	var out []models.TriviaQuestion
	for _, q := range c.Trivia {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}
