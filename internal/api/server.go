package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"newsopoly/internal/config"
	"newsopoly/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server hosts game sessions over HTTP. Sessions live in memory; a
// session dies with the process.
type Server struct {
	cfg    config.APIConfig
	log    *slog.Logger
	source game.EventSource
	mux    *chi.Mux

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	games map[uuid.UUID]*game.Game
}

func New(cfg config.APIConfig, logger *slog.Logger, source game.EventSource) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		log:    logger,
		source: source,
		mux:    chi.NewRouter(),
		ctx:    ctx,
		cancel: cancel,
		games:  make(map[uuid.UUID]*game.Game),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Close stops every session's scheduler loop.
func (s *Server) Close() {
	s.cancel()
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGameState)
			r.Post("/roll", s.handleRoll)
			r.Post("/buy", s.handleBuy)
			r.Post("/sell", s.handleSell)
			r.Post("/end-turn", s.handleEndTurn)
		})
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Seats []game.Seat `json:"seats"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := game.New(in.Seats, game.Options{
		Source:    s.source,
		Logger:    s.log,
		StepDelay: s.cfg.StepDelay,
		FetchWait: s.cfg.FetchWait,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.mu.Lock()
	s.games[g.ID()] = g
	s.mu.Unlock()
	go g.Scheduler().Run(s.ctx)

	s.log.Info("game created", "game", g.ID(), "seats", len(in.Seats))
	writeJSON(w, http.StatusCreated, g.Snapshot())
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	dice, err := g.Roll()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dice": dice, "state": g.Snapshot()})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	var in struct {
		AssetID int `json:"asset_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := g.BuyShare(in.AssetID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	var in struct {
		AssetID int `json:"asset_id"`
		Shares  int `json:"shares"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Shares == 0 {
		in.Shares = 1
	}
	if err := g.SellShare(in.AssetID, in.Shares); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err := g.EndTurn(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) lookup(r *http.Request) (*game.Game, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrAlreadyRolled),
		errors.Is(err, game.ErrRollFirst),
		errors.Is(err, game.ErrTradeWindowClosed),
		errors.Is(err, game.ErrPlayerEliminated):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrAssetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrNotOnAsset),
		errors.Is(err, game.ErrAssetUnavailable),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientShares),
		errors.Is(err, game.ErrSeatCount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
