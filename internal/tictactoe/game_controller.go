package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn places mark on cell and moves the game to its next state.
func MakeTurn(game *entity.Game, mark entity.Mark, cell int) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := game.Board.Set(cell, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	updateGameStatus(game, mark)

	return nil
}

// MakeBestTurn plays the optimal move for the side to move and returns its cell.
func MakeBestTurn(game *entity.Game) (int, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return -1, err
	}

	cell, err := BestMove(&game.Board, game.Turn)
	if err != nil {
		return -1, fmt.Errorf("failed to find best move: %w", err)
	}

	if err = MakeTurn(game, game.Turn, cell); err != nil {
		return -1, err
	}

	return cell, nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, mark entity.Mark) {
	switch outcome := DetermineOutcome(&game.Board); outcome.Result {
	case Win:
		game.Winner = outcome.Winner
		game.Status = entity.StatusFinished
		game.Turn = entity.EmptyCell
	case Draw:
		game.Winner = entity.PlayerTie
		game.Status = entity.StatusFinished
		game.Turn = entity.EmptyCell
	default:
		game.Turn = mark.Opponent()
	}
}
