// apps/go-server/internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Create new games from a secret word and a wrong-guess budget.
//   - Validate and apply single-letter guesses.
//   - Render the masked word and report win/loss.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Secrets and guesses are lowercased at the boundary; everything below
//     compares lowercase letters only.
//   - Rejected guesses are reported in GuessResult, never as errors.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"unicode"
)

// New constructs a new game for secret with a budget of maxWrong wrong guesses.
// It fails fast on an empty or non-alphabetic secret and on a budget outside
// 1..MaxWrongLimit.
func New(secret string, maxWrong int) (*Game, error) {
	if maxWrong <= 0 || maxWrong > MaxWrongLimit {
		return nil, ErrInvalidMaxWrong
	}
	runes := []rune(strings.TrimSpace(secret))
	if len(runes) == 0 {
		return nil, ErrInvalidSecret
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			return nil, ErrInvalidSecret
		}
		runes[i] = unicode.ToLower(r)
	}
	return &Game{
		ID:       randomID(),
		secret:   runes,
		maxWrong: maxWrong,
		guessed:  make(map[Letter]struct{}),
	}, nil
}

// Guess validates and applies a guess, mutating the game state on success.
//
// Rejection rules (no state change):
//   - Game must not be finished.
//   - Input must be exactly one letter (any case).
//   - Letter must not have been guessed before.
//
// Otherwise the letter is recorded; a miss increments the wrong count.
func (g *Game) Guess(s string) GuessResult {
	if g.Status() != StatusPlaying {
		return GuessResult{Reason: RejectFinished}
	}
	l, ok := ParseLetter(s)
	if !ok {
		return GuessResult{Reason: RejectInvalid}
	}
	if _, seen := g.guessed[l]; seen {
		return GuessResult{Reason: RejectRepeated}
	}

	g.guessed[l] = struct{}{}
	hit := g.contains(l)
	if !hit {
		g.wrong++
	}
	return GuessResult{OK: true, Hit: hit}
}

// MaskedWord renders the secret with unrevealed letters replaced by
// Placeholder, one character per letter, separated by single spaces.
func (g *Game) MaskedWord() string {
	var b strings.Builder
	for i, r := range g.secret {
		if i > 0 {
			b.WriteByte(' ')
		}
		if _, ok := g.guessed[Letter(r)]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(Placeholder)
		}
	}
	return b.String()
}

// IsWon reports whether every letter of the secret has been guessed.
func (g *Game) IsWon() bool {
	for _, r := range g.secret {
		if _, ok := g.guessed[Letter(r)]; !ok {
			return false
		}
	}
	return true
}

// IsLost reports whether the wrong-guess budget is exhausted.
func (g *Game) IsLost() bool { return g.wrong >= g.maxWrong }

// WrongCount returns the number of unique guessed letters absent from the secret.
func (g *Game) WrongCount() int { return g.wrong }

// MaxWrong returns the wrong-guess budget.
func (g *Game) MaxWrong() int { return g.maxWrong }

// RemainingAttempts returns how many more wrong guesses are allowed.
func (g *Game) RemainingAttempts() int { return g.maxWrong - g.wrong }

// Secret returns the lowercase secret word.
func (g *Game) Secret() string { return string(g.secret) }

// Guessed returns the guessed letters in ascending order.
func (g *Game) Guessed() []Letter {
	out := make([]Letter, 0, len(g.guessed))
	for l := range g.guessed {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Status reports the lifecycle state. A hit never increments the wrong
// count, so a single guess cannot both win and lose.
func (g *Game) Status() Status {
	switch {
	case g.IsWon():
		return StatusWon
	case g.IsLost():
		return StatusLost
	}
	return StatusPlaying
}

// revealed counts the distinct secret letters that have been guessed.
func (g *Game) revealed() int {
	seen := make(map[Letter]struct{}, len(g.secret))
	for _, r := range g.secret {
		l := Letter(r)
		if _, ok := g.guessed[l]; ok {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}

func (g *Game) contains(l Letter) bool {
	for _, r := range g.secret {
		if Letter(r) == l {
			return true
		}
	}
	return false
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
