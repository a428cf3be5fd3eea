package models

import "time"

// Log categories.
const (
	LogTurn     = "turn"
	LogProperty = "property"
	LogGulag    = "gulag"
	LogTribunal = "tribunal"
	LogTrade    = "trade"
	LogAbility  = "ability"
	LogTrivia   = "trivia"
	LogRejected = "rejected"
	LogSystem   = "system"
)

// GameLogEntry is one line of the append-only audit trail. Entries are
// never mutated after being written.
type GameLogEntry struct {
	Id        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	PlayerId  string    `json:"player_id,omitempty"`
}
