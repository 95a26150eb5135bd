package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.MarkX
	o = entity.MarkO
	e = entity.EmptyCell
)

func TestDetermineOutcome(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		want  Outcome
	}{
		{
			name:  "empty board is in progress",
			board: entity.Board{},
			want:  Outcome{Result: InProgress},
		},
		{
			name: "no line and free cells is in progress",
			board: entity.Board{
				x, o, x,
				e, o, e,
				o, x, e,
			},
			want: Outcome{Result: InProgress},
		},
		{
			name: "full board without a line is a draw",
			board: entity.Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			want: Outcome{Result: Draw},
		},
		{
			name: "column win for O",
			board: entity.Board{
				x, o, e,
				e, o, x,
				e, o, x,
			},
			want: Outcome{Result: Win, Winner: o},
		},
		{
			name: "full board with a line is a win, not a draw",
			board: entity.Board{
				x, o, x,
				o, x, o,
				o, x, x,
			},
			want: Outcome{Result: Win, Winner: x},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutcome(&tt.board))
		})
	}
}

func TestDetermineOutcome_EveryLine(t *testing.T) {
	for _, mark := range []entity.Mark{x, o} {
		for _, combo := range WinCombos {
			// Given: a board where only this line is filled with mark
			var board entity.Board
			for _, cell := range combo {
				board[cell] = mark
			}

			// When: the outcome is determined
			outcome := DetermineOutcome(&board)

			// Then: mark wins
			assert.Equal(t, Outcome{Result: Win, Winner: mark}, outcome, "mark %s, line %v", mark, combo)
		}
	}
}

func TestWinner_FirstLineInOrderDecides(t *testing.T) {
	// Given: an illegal board with a completed row for O and a completed column for X;
	// rows are checked before columns
	board := entity.Board{
		x, o, o,
		x, e, e,
		x, e, e,
	}
	board[3], board[4], board[5] = o, o, o

	// Then: the row (O) is reported even though column 0 belongs to X
	assert.Equal(t, o, Winner(&board))
}

func TestDetermineOutcome_Idempotent(t *testing.T) {
	board := entity.Board{
		x, o, e,
		e, x, e,
		e, e, o,
	}

	first := DetermineOutcome(&board)
	second := DetermineOutcome(&board)

	require.Equal(t, first, second)
	assert.Equal(t, entity.Board{x, o, e, e, x, e, e, e, o}, board)
}

func TestDetermineOutcome_AfterReset(t *testing.T) {
	// Given: a won board
	board := entity.Board{
		x, x, x,
		o, o, e,
		e, e, e,
	}
	require.True(t, DetermineOutcome(&board).IsTerminal())

	// When: the board is reset
	board.Reset()

	// Then: the game is in progress again
	assert.Equal(t, Outcome{Result: InProgress}, DetermineOutcome(&board))
}

func TestOutcome_Score(t *testing.T) {
	assert.Equal(t, 1, Outcome{Result: Win, Winner: x}.Score())
	assert.Equal(t, -1, Outcome{Result: Win, Winner: o}.Score())
	assert.Equal(t, 0, Outcome{Result: Draw}.Score())
	assert.Equal(t, 0, Outcome{Result: InProgress}.Score())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "win(X)", Outcome{Result: Win, Winner: x}.String())
	assert.Equal(t, "draw", Outcome{Result: Draw}.String())
	assert.Equal(t, "in_progress", Outcome{Result: InProgress}.String())
}
