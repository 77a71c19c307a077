// apps/go-server/internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Status: coarse lifecycle state (playing/won/lost).
//   - Rejection: why a guess was not applied.
//   - GuessResult: outcome of a single guess.
//   - Game: state for a single in-progress or finished game.

package game

import "errors"

// Placeholder is shown in the masked word for letters not yet revealed.
const Placeholder = '_'

// MaxWrongLimit caps the wrong-guess budget: one miss per letter of the
// Latin alphabet. It also bounds every term of ComputeScore.
const MaxWrongLimit = 26

var (
	ErrInvalidSecret   = errors.New("secret must be a non-empty word of letters")
	ErrInvalidMaxWrong = errors.New("max wrong guesses must be between 1 and 26")
)

// Status is the lifecycle state of a game. Won and Lost are terminal.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "?"
}

// Rejection explains why a guess was not applied.
type Rejection string

const (
	RejectNone     Rejection = ""
	RejectInvalid  Rejection = "invalid"  // not exactly one letter
	RejectRepeated Rejection = "repeated" // letter already guessed
	RejectFinished Rejection = "finished" // game already won or lost
)

// GuessResult reports the outcome of Game.Guess.
// Hit is only meaningful when OK is true.
type GuessResult struct {
	OK     bool
	Hit    bool
	Reason Rejection
}

// Game holds the state of a single Hangman game.
// It is owned by one caller at a time; it does no locking of its own.
type Game struct {
	ID       string
	Custom   bool // secret or budget chosen by the player; never ranked
	secret   []rune              // lowercase, immutable after New
	maxWrong int                 // immutable after New
	guessed  map[Letter]struct{} // unique guessed letters
	wrong    int                 // guessed letters absent from secret
}
