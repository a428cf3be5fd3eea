package models

// Game is a lobby record (postgres). Live rule-engine state is held in
// memory by the socket layer, keyed by this id.
type Game struct {
	Id     string
	Name   string
	Status string
	Type   string
}

// LobbyPlayer links a registered user to a lobby game (postgres row).
type LobbyPlayer struct {
	User_id  string
	Game_id  string
	Username string
	Piece    string
	Active   string
}

type GameCreateDto struct {
	Name string
	Type string
}

type VerifyGameDto struct {
	Code    string
	User_id string
}
