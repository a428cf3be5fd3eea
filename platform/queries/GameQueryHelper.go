package queries

import (
	"github.com/gomodule/redigo/redis"

	"github.com/redstar-games/politburo-backend/platform/cache"
)

// CacheTurn records the engine player id whose turn was last
// broadcast, so reconnecting clients can resync without replaying.
func CacheTurn(gameId, enginePlayerId string, conn *redis.Conn) error {
	return cache.Set(turnKey(gameId), enginePlayerId, conn)
}

// CachedTurn returns the last broadcast turn holder, "" if none.
func CachedTurn(gameId string, conn *redis.Conn) string {
	val, err := cache.Get(turnKey(gameId), conn)
	if err != nil {
		return ""
	}
	return val
}

// MapSeat links an account id to its engine player id for one game.
func MapSeat(gameId, userId, enginePlayerId string, conn *redis.Conn) error {
	return cache.HSET(gameId+".seats", userId, enginePlayerId, conn)
}

// SeatOf resolves an account id to its engine player id, "" if the
// user holds no seat in the game.
func SeatOf(gameId, userId string, conn *redis.Conn) string {
	val, err := cache.HGET(gameId+".seats", userId, conn)
	if err != nil {
		return ""
	}
	return val
}
