package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

const (
	InProgress Result = iota
	Win
	Draw
)

// WinCombos lists rows, then columns, then the two diagonals.
// The first uniform combo in this order decides the winner.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Result int

func (that Result) String() string {
	switch that {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Outcome classifies a board. Winner is set only for Win.
type Outcome struct {
	Result Result
	Winner entity.Mark
}

func (that Outcome) IsTerminal() bool {
	return that.Result != InProgress
}

// Score is +1 for an X win, -1 for an O win and 0 otherwise.
func (that Outcome) Score() int {
	if that.Result != Win {
		return 0
	}

	if that.Winner == entity.MarkX {
		return 1
	}

	return -1
}

func (that Outcome) String() string {
	if that.Result == Win {
		return "win(" + string(that.Winner) + ")"
	}

	return that.Result.String()
}

// Winner returns the mark of the first completed line, or EmptyCell.
func Winner(board *entity.Board) entity.Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// DetermineOutcome checks for a win before checking for a draw,
// so a full board with a completed line is a win.
func DetermineOutcome(board *entity.Board) Outcome {
	if winner := Winner(board); winner != entity.EmptyCell {
		return Outcome{Result: Win, Winner: winner}
	}

	// the game will continue until all the squares are full
	if board.IsFull() {
		return Outcome{Result: Draw}
	}

	return Outcome{Result: InProgress}
}
