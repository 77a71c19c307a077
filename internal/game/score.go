package game

// Scoring weights.
const (
	pointsPerLetter = 10
	penaltyPerMiss  = 5
	winBonus        = 50
	pointsPerLife   = 10
)

// ComputeScore derives a non-negative score from g without mutating it.
//
//	score = revealed distinct letters*10 - wrong guesses*5, floored at 0
//	won   → + 50 + 10 per unused wrong guess
func ComputeScore(g *Game) int {
	score := g.revealed()*pointsPerLetter - g.WrongCount()*penaltyPerMiss
	if score < 0 {
		score = 0
	}
	if g.IsWon() {
		score += winBonus + g.RemainingAttempts()*pointsPerLife
	}
	return score
}
