package models

// SpaceType classifies a board space.
type SpaceType string

const (
	SpaceCorner   SpaceType = "corner"
	SpaceProperty SpaceType = "property"
	SpaceRailway  SpaceType = "railway"
	SpaceUtility  SpaceType = "utility"
	SpaceCard     SpaceType = "card"
	SpaceTax      SpaceType = "tax"
)

// BoardSpace is one immutable entry of the 40-space board table.
type BoardSpace struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Type      SpaceType `json:"type"`
	Group     string    `json:"group,omitempty"`
	BaseCost  int       `json:"base_cost"`
	BaseQuota int       `json:"base_quota"`
	Rule      string    `json:"rule,omitempty"` // free-text special rule
}

// Ownable reports whether a custodian can ever hold this space.
func (s BoardSpace) Ownable() bool {
	switch s.Type {
	case SpaceProperty, SpaceRailway, SpaceUtility:
		return true
	}
	return false
}

// Property is the mutable per-space state. Spaces are never created or
// destroyed after game start; only these fields change.
type Property struct {
	SpaceId               int    `json:"space_id"`
	CustodianId           string `json:"custodian_id"`           // "" means held by the State
	CollectivizationLevel int    `json:"collectivization_level"` // 0-5, monotonic
	Mortgaged             bool   `json:"mortgaged"`
}

// CollectivizationStep describes one improvement step: the quota
// multiplier at that level and the cost to reach it.
type CollectivizationStep struct {
	Level      int `json:"level"`
	Multiplier int `json:"multiplier"`
	Cost       int `json:"cost"`
}

// Special is one drawn card (Party Directive / NKVD File).
type Special struct {
	Info    string `json:"info"`
	Action  string `json:"action"` // "change" | "move" | "gulag" | "promote" | "demote" | "token" | "test"
	Payload int    `json:"payload"`
}

// PieceInfo is the static descriptor of one playable character.
type PieceInfo struct {
	Piece         Piece    `json:"piece"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	StartingRank  Rank     `json:"starting_rank"`
	BarredGroups  []string `json:"barred_groups,omitempty"`
	HiddenBalance bool     `json:"hidden_balance,omitempty"` // UI hides the balance
}

// TriviaQuestion is one entry of the loyalty-test bank. A submitted
// answer is correct when any acceptable answer is a case-insensitive
// substring match.
type TriviaQuestion struct {
	Id         int      `json:"id"`
	Difficulty string   `json:"difficulty"` // "easy" | "hard" | "trick"
	Question   string   `json:"question"`
	Answers    []string `json:"answers"`
}
