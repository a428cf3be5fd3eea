package socket

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"

	"github.com/redstar-games/politburo-backend/app/models"
	"github.com/redstar-games/politburo-backend/platform/board"
	"github.com/redstar-games/politburo-backend/platform/cache"
	"github.com/redstar-games/politburo-backend/platform/database"
	"github.com/redstar-games/politburo-backend/platform/engine"
	"github.com/redstar-games/politburo-backend/platform/logging"
	"github.com/redstar-games/politburo-backend/platform/queries"
)

// Session binds one lobby game to its in-memory rules engine. The
// engine is single-threaded by design; the mutex serializes the socket
// handlers driving it.
type Session struct {
	mu    sync.Mutex
	Game  *engine.Game
	Seats map[string]string // account user_id -> engine player id
}

var (
	sessionsMu sync.Mutex
	sessions   = map[string]*Session{}
)

func getSession(gameId string) *Session {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	return sessions[gameId]
}

func putSession(gameId string, s *Session) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	sessions[gameId] = s
}

func dropSession(gameId string) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	delete(sessions, gameId)
}

// seat resolves the caller's engine player id, "" when they hold none.
func (s *Session) seat(userId string) string { return s.Seats[userId] }

// playerView is the redacted per-player read model. The informant's
// balance is hidden from everyone but the informant.
type playerView struct {
	models.Player
	BalanceHidden bool `json:"balance_hidden,omitempty"`
}

// stateFor builds the read models for one viewer.
func (s *Session) stateFor(viewerUserId string) map[string]interface{} {
	g := s.Game
	viewerSeat := s.seat(viewerUserId)

	players := make([]playerView, 0, len(g.Players))
	for _, p := range g.Players {
		view := playerView{Player: *p}
		if info, ok := board.Pieces[p.Piece]; ok && info.HiddenBalance && p.Id != viewerSeat {
			view.Balance = -1
			view.BalanceHidden = true
		}
		players = append(players, view)
	}

	logTail := g.Log
	if len(logTail) > 50 {
		logTail = logTail[len(logTail)-50:]
	}

	return map[string]interface{}{
		"players":    players,
		"properties": g.Properties,
		"treasury":   g.Treasury,
		"order":      g.Order,
		"current":    g.Current,
		"round":      g.Round,
		"tribunal":   g.Tribunal,
		"trades":     g.Trades,
		"pending":    g.Pending,
		"log":        logTail,
		"over":       g.Over,
		"winner":     g.Winner,
	}
}

type payload struct {
	GameId     string   `json:"game_id"`
	UserId     string   `json:"user_id"`
	Piece      string   `json:"piece"`
	CardPos    int      `json:"card_pos"`
	ThirdDie   bool     `json:"third_die"`
	Method     string   `json:"method"`
	HelperId   string   `json:"helper_id"`
	AccusedId  string   `json:"accused_id"`
	Crime      string   `json:"crime"`
	Side       string   `json:"side"`
	Verdict    string   `json:"verdict"`
	Accept     bool     `json:"accept"`
	Attempt    bool     `json:"attempt"`
	Action     string   `json:"action"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Ability    string   `json:"ability"`
	TargetId   string   `json:"target_id"`
	Approved   bool     `json:"approved"`
	Applauders []string `json:"applauders"`
	OfferId    string   `json:"offer_id"`
	ToUserId   string   `json:"to_user_id"`

	Offering   models.TradeBundle `json:"offering"`
	Requesting models.TradeBundle `json:"requesting"`
}

func parse(jsonStr string) payload {
	var p payload
	json.Unmarshal([]byte(jsonStr), &p)
	return p
}

// CreateSocketIOServer runs the event surface that drives the engine.
// Every rule operation is one event; the engine replies through the
// shared game-state broadcast plus error-message emits.
func CreateSocketIOServer() {
	server, err := socketio.NewServer(nil)
	if err != nil {
		logging.L().WithError(err).Fatal("socket server failed to start")
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	cfg := board.Load()

	broadcast := func(gameId string, sess *Session) {
		state, err := json.Marshal(sess.stateFor(""))
		if err != nil {
			logging.WithGame(gameId).WithError(err).Error("state marshal failed")
			return
		}
		server.BroadcastToRoom("/", gameId, "game-state", string(state))
		if cur := sess.Game.CurrentPlayer(); cur != nil && !sess.Game.Over {
			conn := pool.Get()
			queries.CacheTurn(gameId, cur.Id, &conn)
			server.BroadcastToRoom("/", gameId, "change-turn", cur.Id)
			conn.Close()
		}
	}

	// withSession runs one engine call under the session lock and
	// broadcasts the resulting state.
	withSession := func(s socketio.Conn, jsonStr string, fn func(sess *Session, p payload) engine.Decision) {
		p := parse(jsonStr)
		sess := getSession(p.GameId)
		if sess == nil {
			s.Emit("error-message", "No game in progress")
			return
		}
		sess.mu.Lock()
		d := fn(sess, p)
		sess.mu.Unlock()
		if !d.Allowed && d.Reason != "" {
			s.Emit("error-message", d.Reason)
		}
		broadcast(p.GameId, sess)
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		p := parse(jsonStr)
		if p.GameId == "" || !queries.VerifyGame(p.GameId, db) {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}
		if sess := getSession(p.GameId); sess != nil {
			// The game is already underway; this is a reconnect.
			conn := pool.Get()
			seat := queries.SeatOf(p.GameId, p.UserId, &conn)
			turn := queries.CachedTurn(p.GameId, &conn)
			conn.Close()
			if seat == "" {
				s.Emit("error-message", "The game has started without you")
				s.Emit("failed")
				return
			}
			s.Join(p.GameId)
			s.Emit("rejoined-game", seat)
			if turn != "" {
				s.Emit("change-turn", turn)
			}
			return
		}
		user, err := queries.GetUserData(p.UserId, db)
		if err != nil {
			s.Emit("error-message", "User not authenticated")
			s.Emit("failed")
			return
		}
		err = queries.CreatePlayer(models.LobbyPlayer{
			Game_id:  p.GameId,
			User_id:  p.UserId,
			Username: user.Email,
			Piece:    p.Piece,
		}, db)
		if err != nil {
			logging.WithGame(p.GameId).WithError(err).Warn("player join failed")
			s.Emit("error-message", "Failed creating player")
			s.Emit("failed")
			return
		}
		conn := pool.Get()
		queries.RegisterPresence(p.GameId, p.UserId, &conn)
		roster, err := queries.Presence(p.GameId, &conn)
		conn.Close()
		if err != nil {
			logging.WithGame(p.GameId).WithError(err).Warn("lobby roster unavailable")
		}

		out, _ := json.Marshal(roster)
		server.BroadcastToRoom("/", p.GameId, "player-join", string(out))
		s.Join(p.GameId)
		s.Emit("joined-game", p.GameId)
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		p := parse(jsonStr)
		s.Leave(p.GameId)
		if err := queries.DeletePlayer(p.UserId, p.GameId, db); err != nil {
			logging.WithGame(p.GameId).WithError(err).Warn("player leave failed")
		}
		server.BroadcastToRoom("/", p.GameId, "player-left")
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		p := parse(jsonStr)
		lobby, err := queries.GetLobbyPlayers(p.GameId, db)
		if err != nil || len(lobby) < 3 {
			s.Emit("error-message", "Unable to start game: a table needs Stalin and at least two players")
			return
		}

		setup := make([]engine.PlayerSetup, 0, len(lobby))
		for _, row := range lobby {
			setup = append(setup, engine.PlayerSetup{
				Name:     row.Username,
				Piece:    models.Piece(row.Piece),
				IsStalin: row.Piece == "",
			})
		}
		game, err := engine.NewSeeded(cfg, setup)
		if err != nil {
			s.Emit("error-message", "Unable to start game: "+err.Error())
			return
		}

		sess := &Session{Game: game, Seats: map[string]string{}}
		conn := pool.Get()
		for i, row := range lobby {
			sess.Seats[row.User_id] = game.Players[i].Id
			queries.MapSeat(p.GameId, row.User_id, game.Players[i].Id, &conn)
		}
		conn.Close()
		putSession(p.GameId, sess)

		sess.mu.Lock()
		game.StartGame()
		sess.mu.Unlock()

		if err := queries.MarkInProgress(p.GameId, db); err != nil {
			logging.WithGame(p.GameId).WithError(err).Warn("status update failed")
		}

		seats, _ := json.Marshal(sess.Seats)
		server.BroadcastToRoom("/", p.GameId, "game-start", string(seats))
		broadcast(p.GameId, sess)
	})

	server.OnEvent("/", "game-state", func(s socketio.Conn, jsonStr string) {
		p := parse(jsonStr)
		sess := getSession(p.GameId)
		if sess == nil {
			s.Emit("error-message", "No game in progress")
			return
		}
		sess.mu.Lock()
		state, err := json.Marshal(sess.stateFor(p.UserId))
		sess.mu.Unlock()
		if err == nil {
			s.Emit("game-state", string(state))
		}
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			_, d := sess.Game.RollDice(sess.seat(p.UserId), p.ThirdDie)
			return d
		})
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			d := sess.Game.EndTurn(sess.seat(p.UserId))
			if sess.Game.Over {
				server.BroadcastToRoom("/", p.GameId, "game-over", sess.Game.Winner)
				dropSession(p.GameId)
				conn := pool.Get()
				queries.CleanUpGame(p.GameId, db, &conn)
				conn.Close()
			}
			return d
		})
	})

	server.OnEvent("/", "request-buy", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.ResolvePurchase(sess.seat(p.UserId), p.Accept)
		})
	})

	server.OnEvent("/", "build-level", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.AddCollectivization(sess.seat(p.UserId), p.CardPos)
		})
	})

	server.OnEvent("/", "sell-level", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.SellCollectivization(sess.seat(p.UserId), p.CardPos)
		})
	})

	server.OnEvent("/", "mortgage", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.MortgageProperty(sess.seat(p.UserId), p.CardPos)
		})
	})

	server.OnEvent("/", "unmortgage", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.UnmortgageProperty(sess.seat(p.UserId), p.CardPos)
		})
	})

	server.OnEvent("/", "gulag-escape", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			result, d := sess.Game.AttemptGulagEscape(sess.seat(p.UserId), p.Method, sess.seat(p.HelperId))
			if d.Allowed {
				out, _ := json.Marshal(result)
				s.Emit("escape-result", string(out))
			}
			return d
		})
	})

	server.OnEvent("/", "denounce", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.DenouncePlayer(sess.seat(p.UserId), sess.seat(p.AccusedId), p.Crime)
		})
	})

	server.OnEvent("/", "witness", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.AddWitness(sess.seat(p.UserId), p.Side)
		})
	})

	server.OnEvent("/", "verdict", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.RenderVerdict(sess.seat(p.UserId), models.Verdict(p.Verdict))
		})
	})

	server.OnEvent("/", "propose-trade", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			offerId, d := sess.Game.ProposeTrade(sess.seat(p.UserId), sess.seat(p.ToUserId), p.Offering, p.Requesting)
			if d.Allowed {
				s.Emit("trade-proposed", offerId)
			}
			return d
		})
	})

	server.OnEvent("/", "accept-trade", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.AcceptTrade(sess.seat(p.UserId), p.OfferId)
		})
	})

	server.OnEvent("/", "reject-trade", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.RejectTrade(sess.seat(p.UserId), p.OfferId)
		})
	})

	server.OnEvent("/", "use-ability", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			g := sess.Game
			actor := sess.seat(p.UserId)
			switch p.Ability {
			case "seizure":
				return g.UsePeasantSeizure(actor, p.CardPos)
			case "requisition":
				return g.UseOfficerRequisition(actor, sess.seat(p.TargetId))
			case "disappear":
				return g.UseInformantDisappear(actor, p.CardPos)
			case "speech":
				return g.UseBolshevikSpeech(actor)
			case "camp":
				return g.UseCampPower(actor, sess.seat(p.TargetId))
			case "ministry":
				return g.UseMinistryPower(actor, p.CardPos)
			case "media":
				return g.UseMediaRevote(actor)
			case "claim":
				_, d := g.CollectClaim(actor, sess.seat(p.TargetId))
				return d
			}
			return engine.Decision{Allowed: false, Reason: "Unknown ability"}
		})
	})

	server.OnEvent("/", "resolve-approval", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.ResolveApproval(sess.seat(p.UserId), p.Approved)
		})
	})

	server.OnEvent("/", "resolve-speech", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			seats := make([]string, 0, len(p.Applauders))
			for _, userId := range p.Applauders {
				seats = append(seats, sess.seat(userId))
			}
			return sess.Game.ResolveSpeech(sess.seat(p.UserId), seats)
		})
	})

	server.OnEvent("/", "resolve-pilfer", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			_, d := sess.Game.ResolvePilfer(sess.seat(p.UserId), p.Attempt)
			return d
		})
	})

	server.OnEvent("/", "resolve-debt", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.ResolveDebt(sess.seat(p.UserId), p.Action)
		})
	})

	server.OnEvent("/", "cover-debt", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.CoverDebt(sess.seat(p.UserId))
		})
	})

	server.OnEvent("/", "start-trivia", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			return sess.Game.StartTrivia(sess.seat(p.UserId), p.Difficulty)
		})
	})

	server.OnEvent("/", "preview-trivia", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			answers, d := sess.Game.PreviewTrivia(sess.seat(p.UserId))
			if d.Allowed {
				out, _ := json.Marshal(answers)
				s.Emit("trivia-preview", string(out))
			}
			return d
		})
	})

	server.OnEvent("/", "answer-trivia", func(s socketio.Conn, jsonStr string) {
		withSession(s, jsonStr, func(sess *Session, p payload) engine.Decision {
			_, d := sess.Game.AnswerTrivia(sess.seat(p.UserId), p.Answer)
			return d
		})
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logging.L().WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	port := os.Getenv("SOCKET_PORT")
	if port == "" {
		port = "8000"
	}
	logging.L().WithField("port", port).Info("socket server listening")
	http.ListenAndServe(":"+port, c.Handler(mux))
}
