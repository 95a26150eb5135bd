package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a game against the bot is created
	game := NewGame("123", "p1", Settings{X: ControlHuman, O: ControlBot})

	// Then: X moves first on an empty board and the seats are filled
	expectedGame := &Game{
		ID:     "123",
		Board:  Board{},
		Turn:   MarkX,
		Status: StatusOngoing,
		Players: []*Player{
			{ID: "p1", Mark: MarkX, Control: ControlHuman, GameID: "123"},
			{ID: BotPlayerID, Mark: MarkO, Control: ControlBot, GameID: "123"},
		},
	}

	require.Equal(t, expectedGame, game)
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should be finished and not ongoing
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
	})

	t.Run("IsDraw returns true for a finished tie", func(t *testing.T) {
		game := &Game{Status: StatusFinished, Winner: PlayerTie}

		assert.True(t, game.IsDraw())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return an error
		require.ErrorIs(t, err, ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_IsBotTurn(t *testing.T) {
	t.Run("Bot to move in an ongoing game", func(t *testing.T) {
		// Given: X is the bot and it is X's turn
		game := NewGame("1", "p1", Settings{X: ControlBot, O: ControlHuman})

		// Then: it is the bot's turn
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Human to move", func(t *testing.T) {
		game := NewGame("1", "p1", Settings{X: ControlHuman, O: ControlBot})

		assert.False(t, game.IsBotTurn())
	})

	t.Run("Finished game is never the bot's turn", func(t *testing.T) {
		game := NewGame("1", "p1", Settings{X: ControlBot, O: ControlBot})
		game.Status = StatusFinished

		assert.False(t, game.IsBotTurn())
	})
}

func TestGame_Restart(t *testing.T) {
	// Given: a finished game
	game := NewGame("1", "p1", Settings{X: ControlHuman, O: ControlHuman})
	game.Board = Board{MarkX, MarkX, MarkX, MarkO, MarkO, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
	game.Status = StatusFinished
	game.Winner = MarkX
	game.Turn = EmptyCell

	// When: the game is restarted
	game.Restart()

	// Then: the board is empty and X moves in an ongoing game
	assert.Equal(t, Board{}, game.Board)
	assert.Equal(t, MarkX, game.Turn)
	assert.Equal(t, EmptyCell, game.Winner)
	assert.True(t, game.IsOngoing())
	assert.Len(t, game.Players, 2)
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, Settings{X: ControlHuman, O: ControlBot}.Validate())
	assert.ErrorIs(t, Settings{X: ControlHuman, O: "robot"}.Validate(), ErrInvalidControl)
	assert.ErrorIs(t, Settings{}.Validate(), ErrInvalidControl)
}
