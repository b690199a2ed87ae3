// Package api exposes the casino engines over HTTP: a chi-routed JSON
// surface for bets and actions, plus a websocket feed that mirrors
// every ledger mutation.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/feltworks/casino-core/internal/games"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// Server owns one engine instance per game, all settling into the same
// ledger.
type Server struct {
	led    *ledger.Ledger
	logger *log.Logger
	hub    *Hub

	blackjack *games.Blackjack
	poker     *games.Poker
	slots     *games.Slots
	roulette  *games.Roulette
	baccarat  *games.Baccarat
	craps     *games.Craps
	wheel     *games.Wheel
	dice      *games.Dice
}

// NewServer wires the eight engines to the ledger and random source and
// subscribes the websocket hub to ledger updates.
func NewServer(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Server {
	s := &Server{
		led:    led,
		logger: logger.With("component", "api"),
		hub:    NewHub(logger),

		blackjack: games.NewBlackjack(led, src, logger),
		poker:     games.NewPoker(led, src, logger),
		slots:     games.NewSlots(led, src, logger),
		roulette:  games.NewRoulette(led, src, logger),
		baccarat:  games.NewBaccarat(led, src, logger),
		craps:     games.NewCraps(led, src, logger),
		wheel:     games.NewWheel(led, src, logger),
		dice:      games.NewDice(led, src, logger),
	}

	led.Subscribe(func(snap ledger.Snapshot) {
		s.hub.Broadcast(snap)
	})

	return s
}

// Close shuts down the websocket hub.
func (s *Server) Close() {
	s.hub.Close()
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Heartbeat("/health"))
	r.Use(corsMiddleware)

	r.Get("/ws", s.hub.ServeWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Get("/stats", s.handleStats)
		r.Post("/reset", s.handleReset)

		r.Route("/blackjack", func(r chi.Router) {
			r.Post("/bet", s.amountHandler(s.blackjack.PlaceBet))
			r.Post("/hit", s.actionHandler(s.blackjack.Hit))
			r.Post("/stand", s.actionHandler(s.blackjack.Stand))
			r.Post("/double", s.actionHandler(s.blackjack.DoubleDown))
		})
		r.Route("/poker", func(r chi.Router) {
			r.Post("/start", s.amountHandler(s.poker.Start))
			r.Post("/call", s.actionHandler(s.poker.Call))
			r.Post("/raise", s.actionHandler(s.poker.Raise))
			r.Post("/fold", s.actionHandler(s.poker.Fold))
		})
		r.Post("/slots/spin", s.amountHandler(s.slots.Spin))
		r.Route("/roulette", func(r chi.Router) {
			r.Get("/bets", s.handleRouletteBets)
			r.Post("/bets", s.handleRoulettePlaceBet)
			r.Post("/spin", s.actionHandler(s.roulette.Spin))
		})
		r.Post("/baccarat/deal", s.handleBaccaratDeal)
		r.Post("/craps/roll", s.handleCrapsRoll)
		r.Post("/wheel/spin", s.amountHandler(s.wheel.Spin))
		r.Post("/dice/roll", s.handleDiceRoll)
	})

	return r
}

// corsMiddleware allows browser lobbies served from other origins.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type baccaratRequest struct {
	Side   games.BaccaratSide `json:"side"`
	Amount int64              `json:"amount"`
}

type crapsRequest struct {
	Bet    games.CrapsBetType `json:"bet"`
	Amount int64              `json:"amount"`
}

type diceRequest struct {
	Prediction games.DicePrediction `json:"prediction"`
	Amount     int64                `json:"amount"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// amountHandler adapts the engines' bet entrypoints, which all share
// the amount-only request shape.
func (s *Server) amountHandler(op func(int64) (games.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if !s.decode(w, r, &req) {
			return
		}
		res, err := op(req.Amount)
		s.respond(w, res, err)
	}
}

// actionHandler adapts parameterless round actions.
func (s *Server) actionHandler(op func() (games.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := op()
		s.respond(w, res, err)
	}
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"games": games.Specs()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.led.Snapshot())
}

// handleReset restores the default bankroll and statistics. Destructive,
// so the body must carry an explicit confirm flag.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.Confirm {
		s.writeBadRequest(w, "reset requires confirm=true")
		return
	}
	if err := s.led.Reset(); err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.led.Snapshot())
}

func (s *Server) handleRouletteBets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"bets": s.roulette.PendingBets()})
}

func (s *Server) handleRoulettePlaceBet(w http.ResponseWriter, r *http.Request) {
	var bet games.RouletteBet
	if !s.decode(w, r, &bet) {
		return
	}
	res, err := s.roulette.PlaceBet(bet)
	s.respond(w, res, err)
}

func (s *Server) handleBaccaratDeal(w http.ResponseWriter, r *http.Request) {
	var req baccaratRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.baccarat.Deal(req.Side, req.Amount)
	s.respond(w, res, err)
}

func (s *Server) handleCrapsRoll(w http.ResponseWriter, r *http.Request) {
	var req crapsRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.craps.Roll(req.Bet, req.Amount)
	s.respond(w, res, err)
}

func (s *Server) handleDiceRoll(w http.ResponseWriter, r *http.Request) {
	var req diceRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.dice.Roll(req.Prediction, req.Amount)
	s.respond(w, res, err)
}

// decode reads a JSON body, answering 400 on malformed input.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, res games.Result, err error) {
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}
