package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs game sessions: it applies human turns, answers with the bot
// whenever a bot controls the side to move and keeps the state in the repositories.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo

	defaults entity.Settings
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, defaults entity.Settings) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		defaults: defaults,
	}
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		sessionID, err := pkg.GenerateNewSessionID()
		if err != nil {
			return nil, err
		}

		return that.createPlayer(ctx, sessionID)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		// the record expired, keep the id the client already has
		return that.createPlayer(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateGame returns the player's game or starts a new one.
// A nil settings uses the configured defaults.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string, settings *entity.Settings) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		game, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		that.logger.Info("player game expired, creating a new one", "playerID", player.ID, "gameID", player.GameID)
	}

	if settings == nil {
		settings = &that.defaults
	}

	game, err := that.createGame(ctx, player, *settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// MakeTurn plays cell for the side to move, then lets the bot answer.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if game.IsBotTurn() {
		return game, apperror.ErrBotTurn
	}

	if seat := game.PlayerByMark(game.Turn); seat == nil || seat.ID != player.ID {
		return game, apperror.ErrNotYourTurn
	}

	if err = tictactoe.MakeTurn(game, game.Turn, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.playBotTurns(game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// SetControl hands a side to a human or to the bot. A bot that gets the move plays at once.
func (that *GameManager) SetControl(ctx context.Context, playerID string, mark entity.Mark, control entity.Control) (*entity.Game, error) {
	if !mark.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidMark, mark)
	}

	if _, err := entity.ParseControl(string(control)); err != nil {
		return nil, err
	}

	player, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	seat := game.PlayerByMark(mark)
	if seat == nil {
		return nil, fmt.Errorf("%w: no seat for %s", entity.ErrInvalidMark, mark)
	}

	seat.Control = control
	seat.ID = player.ID
	if control == entity.ControlBot {
		seat.ID = entity.BotPlayerID
	}

	if err = that.playBotTurns(game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// ResetGame clears the board of the player's game and starts over with X.
func (that *GameManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.getPlayerGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.Restart()

	if err = that.playBotTurns(game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// LeaveGame drops the player's game.
func (that *GameManager) LeaveGame(ctx context.Context, playerID string) (*entity.Player, error) {
	log := that.logger.With("method", "LeaveGame", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return player, apperror.ErrNoActiveGame
	}

	if err = that.gameRepo.DeleteByID(ctx, player.GameID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "gameID", player.GameID, "error", err)
	}

	player.GameID = ""
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	log.Info("player left the game")

	return player, nil
}

// playBotTurns moves for the bot as long as it controls the side to move.
func (that *GameManager) playBotTurns(game *entity.Game) error {
	log := that.logger.With("method", "playBotTurns", "gameID", game.ID)

	for game.IsBotTurn() {
		mark := game.Turn

		cell, err := tictactoe.MakeBestTurn(game)
		if err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}

		log.Debug("bot made turn", "mark", mark, "cell", cell)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, settings entity.Settings) (*entity.Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, err
	}

	game := entity.NewGame(gameID, player.ID, settings)
	if err = that.playBotTurns(game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	player.GameID = gameID
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{
		ID: id,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerGame(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if player.GameID == "" {
		return player, nil, apperror.ErrNoActiveGame
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return player, nil, apperror.ErrNoActiveGame
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	return player, game, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
