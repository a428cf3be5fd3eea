package queries

import (
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/cache"
)

// VerifyGame reports whether a lobby game with the given id exists.
func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	return db.Model(game).WherePK().Select() == nil
}

// GetUserData loads an account row.
func GetUserData(userId string, db *pg.DB) (models.User, error) {
	user := models.User{Id: userId}
	err := db.Model(&user).WherePK().Select()
	return user, err
}

// CreatePlayer inserts a lobby membership row. An empty piece marks
// the game master seat.
func CreatePlayer(player models.LobbyPlayer, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

// GetLobbyPlayers lists the lobby rows for a game in join order.
func GetLobbyPlayers(gameId string, db *pg.DB) ([]models.LobbyPlayer, error) {
	var players []models.LobbyPlayer
	err := db.Model(&players).Where("game_id = ?", gameId).Select()
	return players, err
}

// DeletePlayer removes a lobby row and the redis presence entry. When
// the room empties the whole game is cleaned up.
func DeletePlayer(userId string, gameId string, db *pg.DB) error {
	player := new(models.LobbyPlayer)
	_, err := db.Model(player).Where("user_id = ? and game_id = ?", userId, gameId).Delete()
	if err != nil {
		return err
	}

	conn, cerr := cache.CreateRedisConnection()
	if cerr != nil {
		return cerr
	}
	defer conn.Close()

	cache.LREM(lobbyKey(gameId), userId, &conn)
	remaining, _ := cache.LLEN(lobbyKey(gameId), &conn)
	if remaining == 0 {
		CleanUpGame(gameId, db, &conn)
	}
	return nil
}

// RegisterPresence appends a user to the room presence list.
func RegisterPresence(gameId, userId string, conn *redis.Conn) error {
	return cache.RPUSH(lobbyKey(gameId), []interface{}{userId}, conn)
}

// Presence returns the user ids currently present in a room.
func Presence(gameId string, conn *redis.Conn) ([]string, error) {
	return cache.LGET(lobbyKey(gameId), conn)
}

// MarkInProgress flips the lobby status once the table starts playing.
func MarkInProgress(gameId string, db *pg.DB) error {
	game := &models.Game{Id: gameId}
	_, err := db.Model(game).WherePK().Set("status = ?", "in progress").Update()
	return err
}

// CleanUpGame drops the lobby rows and redis keys for a finished or
// abandoned game.
func CleanUpGame(gameId string, db *pg.DB, conn *redis.Conn) {
	player := new(models.LobbyPlayer)
	game := new(models.Game)
	db.Model(player).Where("game_id = ?", gameId).Delete()
	db.Model(game).Where("id = ?", gameId).Delete()

	cache.Del(gameId, conn)
	cache.Del(lobbyKey(gameId), conn)
	cache.Del(turnKey(gameId), conn)
	cache.Del(gameId+".seats", conn)
}

func lobbyKey(gameId string) string { return fmt.Sprintf("%s.lobby", gameId) }
func turnKey(gameId string) string  { return fmt.Sprintf("%s.turn", gameId) }
