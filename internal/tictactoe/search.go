package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// scores of terminal positions are within [-1, 1].
const (
	lowestScore  = -2
	highestScore = 2
)

var ErrNoAvailableMoves = errors.New("no available moves")

type MoveScore struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

// BestMove returns the cell mark should play assuming perfect play from both sides.
// X maximizes, O minimizes. On equal scores the lowest index wins.
// The board is not modified.
func BestMove(board *entity.Board, mark entity.Mark) (int, error) {
	scores, err := ScoreMoves(board, mark)
	if err != nil {
		return -1, err
	}

	return PickBest(scores, mark).Cell, nil
}

// PickBest selects the best of already scored moves for mark with the same
// rule as BestMove. scores must not be empty.
func PickBest(scores []MoveScore, mark entity.Mark) MoveScore {
	best := scores[0]
	for _, move := range scores[1:] {
		if improves(mark, move.Score, best.Score) {
			best = move
		}
	}

	return best
}

// ScoreMoves returns the minimax score of every empty cell, in index order,
// as if mark played there.
func ScoreMoves(board *entity.Board, mark entity.Mark) ([]MoveScore, error) {
	if !mark.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidMark, mark)
	}

	cells := board.EmptyCells()
	if len(cells) == 0 {
		return nil, ErrNoAvailableMoves
	}

	// the search mutates its own copy, callers keep their board
	work := *board

	scores := make([]MoveScore, 0, len(cells))
	for _, cell := range cells {
		work[cell] = mark
		scores = append(scores, MoveScore{Cell: cell, Score: evaluate(&work, mark.Opponent())})
		work[cell] = entity.EmptyCell
	}

	return scores, nil
}

// evaluate runs an exhaustive minimax. Every tentative mark is removed
// before the next sibling is tried, so board is unchanged on return.
func evaluate(board *entity.Board, toMove entity.Mark) int {
	if outcome := DetermineOutcome(board); outcome.IsTerminal() {
		return outcome.Score()
	}

	best := highestScore
	if toMove == entity.MarkX {
		best = lowestScore
	}

	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = toMove
		score := evaluate(board, toMove.Opponent())
		board[i] = entity.EmptyCell

		if improves(toMove, score, best) {
			best = score
		}
	}

	return best
}

// improves is a strict comparison, ties keep the earlier move.
func improves(mark entity.Mark, score, best int) bool {
	if mark == entity.MarkX {
		return score > best
	}

	return score < best
}
