package websocket

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	errBadMessage    = errors.New("malformed message")
	errUnknownAction = errors.New("unknown action")
	errNotConnected  = errors.New("connect first")
	errMissingCell   = errors.New("cell is required")

	// clientErrors are shown to the client as is, anything else is hidden.
	clientErrors = []error{
		errBadMessage,
		errUnknownAction,
		errNotConnected,
		errMissingCell,
		apperror.ErrGameFinished,
		apperror.ErrNotYourTurn,
		apperror.ErrBotTurn,
		apperror.ErrNoActiveGame,
		apperror.ErrCellOccupied,
		entity.ErrInvalidCell,
		entity.ErrInvalidMark,
		entity.ErrInvalidControl,
	}
)

func errorMessage(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}
