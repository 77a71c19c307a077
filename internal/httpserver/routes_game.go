// apps/go-server/internal/httpserver/routes_game.go
//
// HTTP routes for playing Hangman:
//   - POST /game/new    → start a game (random secret unless one is supplied)
//   - POST /game/guess  → guess one letter
//   - GET  /game/{id}   → current view of a game
//
// Rejected guesses (invalid or repeated) are 200 responses with ok=false and a
// reason. The secret is only revealed once the game is over, and the session is
// dropped on that same response. Games with a player-chosen secret or budget
// are unranked: they never reach stats or the leaderboard.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/results"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
)

func (s *Server) mountGameRoutes() {
	r := s.r.With(s.withOptionalAuth())
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
}

// gameView is the public rendering of a game.
type gameView struct {
	GameID     string   `json:"gameId"`
	Masked     string   `json:"masked"`
	Guessed    []string `json:"guessed"`
	WrongCount int      `json:"wrongCount"`
	MaxWrong   int      `json:"maxWrong"`
	Remaining  int      `json:"remaining"`
	State      string   `json:"state"` // "playing" | "won" | "lost"
	Score      int      `json:"score"`
	Secret     string   `json:"secret,omitempty"`
	Ranked     bool     `json:"ranked"`
}

func viewOf(g *game.Game) gameView {
	guessed := g.Guessed()
	v := gameView{
		GameID:     g.ID,
		Masked:     g.MaskedWord(),
		Guessed:    make([]string, len(guessed)),
		WrongCount: g.WrongCount(),
		MaxWrong:   g.MaxWrong(),
		Remaining:  g.RemainingAttempts(),
		State:      g.Status().String(),
		Score:      game.ComputeScore(g),
		Ranked:     !g.Custom,
	}
	for i, l := range guessed {
		v.Guessed[i] = l.String()
	}
	if g.Status() != game.StatusPlaying {
		v.Secret = g.Secret()
	}
	return v
}

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	MaxWrong int    `json:"maxWrong"` // optional; server default when zero
	Secret   string `json:"secret"`   // optional fixed secret; makes the game unranked
}

// handleNewGame creates a new in-memory game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	custom := req.Secret != "" || (req.MaxWrong != 0 && req.MaxWrong != s.cfg.MaxWrong)
	if req.MaxWrong == 0 {
		req.MaxWrong = s.cfg.MaxWrong
	}
	if req.Secret == "" {
		req.Secret = s.pick()
	}

	g, err := game.New(req.Secret, req.MaxWrong)
	switch {
	case errors.Is(err, game.ErrInvalidSecret):
		writeError(w, http.StatusBadRequest, "invalid_secret")
		return
	case errors.Is(err, game.ErrInvalidMaxWrong):
		writeError(w, http.StatusBadRequest, "invalid_max_wrong")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	g.Custom = custom
	if err := s.store.Create(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("create game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Int("maxWrong", g.MaxWrong()).Bool("custom", custom).Msg("game started")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(viewOf(g))
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}
type guessRes struct {
	OK     bool   `json:"ok"`
	Hit    bool   `json:"hit"`
	Reason string `json:"reason,omitempty"`
	gameView
}

// handleGuess applies a guess under the store's per-game lock. The guess that
// ends the game records a ranked result and drops the session, so later
// requests for that game get 404.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var (
		res      guessRes
		done     bool
		finished *results.Result
	)
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		out := g.Guess(req.Letter)
		res = guessRes{OK: out.OK, Hit: out.Hit, Reason: string(out.Reason), gameView: viewOf(g)}
		if !out.OK || g.Status() == game.StatusPlaying {
			return nil
		}
		done = true
		if g.Custom {
			return nil
		}
		sum, err := results.FromGame(g)
		if err != nil {
			return err
		}
		finished = &sum
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", req.GameID).Msg("guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}

	if done {
		if err := s.store.Delete(r.Context(), req.GameID); err != nil {
			log.Warn().Err(err).Str("gameId", req.GameID).Msg("drop session")
		}
		log.Info().Str("gameId", req.GameID).Str("state", res.State).Int("score", res.Score).Bool("ranked", res.Ranked).Msg("game finished")
	}
	if finished != nil {
		if me := currentUser(r); me != nil {
			finished.UserID = me.ID
		} else {
			finished.AnonymousID = s.ensureAnonID(w, r)
		}
		if err := s.results.Record(r.Context(), *finished); err != nil {
			log.Warn().Err(err).Str("gameId", finished.GameID).Msg("record result")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleGetGame returns the current view of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var v gameView
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		v = viewOf(g)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "view_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
