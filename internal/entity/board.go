package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	MarkX = Mark("X")
	MarkO = Mark("O")

	// PlayerTie is the winner of a drawn game. It never appears on a board.
	PlayerTie = Mark("-")

	EmptyCell = Mark("")
)

const BoardSize = 9

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid mark")
)

// Mark is the content of a single cell: EmptyCell, MarkX or MarkO.
type Mark string

// IsValid reports whether the mark can be placed by a player.
func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other side. For anything but X it returns X.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// Board is a 3x3 grid stored row by row, cell index is row*3+col.
type Board [BoardSize]Mark

// Get returns the cell at i. An index outside 0..8 panics.
func (that *Board) Get(i int) Mark {
	return that[i]
}

// Set places mark on an empty cell.
func (that *Board) Set(i int, mark Mark) error {
	if i < 0 || i >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, i)
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that[i] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, i)
	}

	that[i] = mark

	return nil
}

// Reset clears every cell.
func (that *Board) Reset() {
	for i := range that {
		that[i] = EmptyCell
	}
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells returns the indices of free cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}
