package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// handleConnect binds the connection to the player of its session cookie.
// Player ids sent by the client are ignored.
func (that *Server) handleConnect(ctx context.Context, sess *session, _ *Payload) error {
	log := that.logger.With("method", "handleConnect")

	player, err := that.uGame.GetOrCreatePlayer(ctx, sess.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	sess.playerID = player.ID

	response := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.uGame.GetGame(ctx, player.ID)
		switch {
		case err == nil:
			response.Game = game
		case errors.Is(err, apperror.ErrNoActiveGame):
			log.Info("player game is gone", "playerID", player.ID)
		default:
			return fmt.Errorf("failed to get game: %w", err)
		}
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return that.sendMessage(ctx, sess, actionConnect, response)
}

func (that *Server) handleNewGame(ctx context.Context, sess *session, payload *Payload) error {
	game, err := that.uGame.GetOrCreateGame(ctx, sess.playerID, payload.Settings)
	if err != nil {
		return fmt.Errorf("failed to get or create game: %w", err)
	}

	return that.sendMessage(ctx, sess, actionGameNew, Payload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, payload *Payload) error {
	if payload.Cell == nil {
		return errMissingCell
	}

	game, err := that.uGame.MakeTurn(ctx, sess.playerID, *payload.Cell)
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return that.sendMessage(ctx, sess, actionGameTurn, Payload{Game: game})
}

func (that *Server) handleControl(ctx context.Context, sess *session, payload *Payload) error {
	game, err := that.uGame.SetControl(ctx, sess.playerID, payload.Mark, payload.Control)
	if err != nil {
		return fmt.Errorf("failed to set control: %w", err)
	}

	return that.sendMessage(ctx, sess, actionControl, Payload{Game: game})
}

func (that *Server) handleReset(ctx context.Context, sess *session, _ *Payload) error {
	game, err := that.uGame.ResetGame(ctx, sess.playerID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return that.sendMessage(ctx, sess, actionGameReset, Payload{Game: game})
}

func (that *Server) handleLeave(ctx context.Context, sess *session, _ *Payload) error {
	player, err := that.uGame.LeaveGame(ctx, sess.playerID)
	if err != nil {
		return fmt.Errorf("failed to leave game: %w", err)
	}

	return that.sendMessage(ctx, sess, actionGameLeave, Payload{Player: player})
}
