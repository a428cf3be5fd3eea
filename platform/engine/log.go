package engine

import (
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/redstar-games/politburo-backend/app/models"
)

// appendLog writes one line of the append-only audit trail.
func (g *Game) appendLog(category, message, playerId string) {
	g.Log = append(g.Log, models.GameLogEntry{
		Id:        uuid.NewV4().String(),
		Timestamp: time.Now(),
		Category:  category,
		Message:   message,
		PlayerId:  playerId,
	})
}

// rejected records a denied action in the audit trail and returns the
// denial so callers can hand it straight back to the UI.
func (g *Game) rejected(playerId, reason string) Decision {
	g.appendLog(models.LogRejected, reason, playerId)
	return deny(reason)
}
