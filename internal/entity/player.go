package entity

import (
	"errors"
	"fmt"
)

const (
	ControlHuman = Control("human")
	ControlBot   = Control("bot")

	BotPlayerID = "bot"
)

var ErrInvalidControl = errors.New("invalid control mode")

// Control tells who picks the moves of a side.
type Control string

func ParseControl(value string) (Control, error) {
	switch control := Control(value); control {
	case ControlHuman, ControlBot:
		return control, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidControl, value)
	}
}

type Player struct {
	ID      string  `json:"id"`
	Mark    Mark    `json:"mark,omitempty"`
	Control Control `json:"control,omitempty"`
	GameID  string  `json:"game_id,omitempty"`
}

func (that *Player) IsBot() bool {
	return that.Control == ControlBot
}
