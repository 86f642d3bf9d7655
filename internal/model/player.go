package model

import "time"

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Player represents a participant in a single game.
// A player has no lifecycle outside the game that owns it.
type Player struct {
	ID       PlayerID `json:"id"`
	Username string   `json:"username"`

	// CurrentPosition is the character index reached in the game text.
	// Never decreases over the player's lifetime.
	CurrentPosition int `json:"currentPosition"`

	// Caller-reported telemetry, overwritten on each progress update
	WPM      float64 `json:"wpm"`
	Accuracy float64 `json:"accuracy"`

	IsReady bool `json:"isReady"`

	// CompletedAt is set once, when CurrentPosition reaches the text length
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// HasCompleted returns true if the player has finished typing the text
func (p *Player) HasCompleted() bool {
	return p.CompletedAt != nil
}
