// apps/go-server/internal/results/store.go
//
// Finished-game summaries and per-user stats.
// Only the outcome of a game is stored; live sessions stay in memory.

package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// Result is the summary of one finished game.
type Result struct {
	GameID      string    `json:"gameId"`
	UserID      string    `json:"userId,omitempty"`
	AnonymousID string    `json:"-"`
	Status      string    `json:"status"`
	WordLength  int       `json:"wordLength"`
	WrongCount  int       `json:"wrongCount"`
	MaxWrong    int       `json:"maxWrong"`
	Score       int       `json:"score"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// FromGame summarizes g. It is an error to summarize a game still in play.
func FromGame(g *game.Game) (Result, error) {
	st := g.Status()
	if st == game.StatusPlaying {
		return Result{}, errors.New("game not finished")
	}
	return Result{
		GameID:     g.ID,
		Status:     st.String(),
		WordLength: len([]rune(g.Secret())),
		WrongCount: g.WrongCount(),
		MaxWrong:   g.MaxWrong(),
		Score:      game.ComputeScore(g),
		FinishedAt: time.Now().UTC().Truncate(time.Second),
	}, nil
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts r and, for signed-in players, updates their stats in the same tx.
// Recording the same game twice is a no-op.
func (s *Store) Record(ctx context.Context, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, user_id, anonymous_id, status, word_length, wrong_count, max_wrong, score, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, nullable(r.UserID), nullable(r.AnonymousID), r.Status,
		r.WordLength, r.WrongCount, r.MaxWrong, r.Score, r.FinishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 || r.UserID == "" {
		return tx.Commit()
	}
	if err := bumpStats(ctx, tx, r.UserID, r.Status == game.StatusWon.String(), r.Score); err != nil {
		return fmt.Errorf("bump stats: %w", err)
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins, streak and best score.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool, score int) error {
	var gp, wins, streak, best int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak, best_score FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak, &best); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	if score > best {
		best = score
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=?, best_score=? WHERE id=?`,
		gp, wins, streak, best, userID)
	return err
}

// Claim transfers anonymous games to a user account.
func (s *Store) Claim(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

// LBRow is one leaderboard entry: a player's best score and win count.
type LBRow struct {
	Username  string `json:"username"`
	BestScore int    `json:"bestScore"`
	Wins      int    `json:"wins"`
}

// Leaderboard returns the top players by best score, then wins.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT username, best_score, wins
        FROM users
        WHERE games_played > 0
        ORDER BY best_score DESC, wins DESC, created_at ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.BestScore, &r.Wins); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Mine returns a user's most recent finished games.
func (s *Store) Mine(ctx context.Context, userID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, status, word_length, wrong_count, max_wrong, score, finished_at
        FROM games WHERE user_id=?
        ORDER BY finished_at DESC, rowid DESC
        LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		r := Result{UserID: userID}
		var finished string
		if err := rows.Scan(&r.GameID, &r.Status, &r.WordLength, &r.WrongCount, &r.MaxWrong, &r.Score, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
