package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Settings selects who controls each side of a new game.
type Settings struct {
	X Control `json:"x"`
	O Control `json:"o"`
}

func (that Settings) Validate() error {
	if _, err := ParseControl(string(that.X)); err != nil {
		return fmt.Errorf("side X: %w", err)
	}

	if _, err := ParseControl(string(that.O)); err != nil {
		return fmt.Errorf("side O: %w", err)
	}

	return nil
}

type Game struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Winner  Mark      `json:"winner"`
	Status  string    `json:"status"`
	Turn    Mark      `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
}

// NewGame creates an ongoing game with an empty board and X to move.
// Human sides are owned by ownerID.
func NewGame(id, ownerID string, settings Settings) *Game {
	return &Game{
		ID:     id,
		Turn:   MarkX,
		Status: StatusOngoing,
		Players: []*Player{
			newSeat(id, ownerID, MarkX, settings.X),
			newSeat(id, ownerID, MarkO, settings.O),
		},
	}
}

func newSeat(gameID, ownerID string, mark Mark, control Control) *Player {
	id := ownerID
	if control == ControlBot {
		id = BotPlayerID
	}

	return &Player{
		ID:      id,
		Mark:    mark,
		Control: control,
		GameID:  gameID,
	}
}

// PlayerByMark returns the side playing mark, or nil.
func (that *Game) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

// IsBotTurn reports whether the side to move is controlled by the bot.
func (that *Game) IsBotTurn() bool {
	if !that.IsOngoing() {
		return false
	}

	player := that.PlayerByMark(that.Turn)

	return player != nil && player.IsBot()
}

// Restart clears the board and hands the first move back to X.
func (that *Game) Restart() {
	that.Board.Reset()
	that.Turn = MarkX
	that.Winner = EmptyCell
	that.Status = StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
