package response

import (
	"time"

	"github.com/typerace/typerace-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	CurrentPosition int        `json:"current_position"`
	WPM             float64    `json:"wpm"`
	Accuracy        float64    `json:"accuracy"`
	IsReady         bool       `json:"is_ready"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:              string(p.ID),
		Username:        p.Username,
		CurrentPosition: p.CurrentPosition,
		WPM:             p.WPM,
		Accuracy:        p.Accuracy,
		IsReady:         p.IsReady,
		CompletedAt:     p.CompletedAt,
	}
}

// Game represents a game in API responses
type Game struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Text       string     `json:"text"`
	Players    []Player   `json:"players"`
	MaxPlayers int        `json:"max_players"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	players := make([]Player, len(g.Players))
	for i := range g.Players {
		players[i] = PlayerFromModel(&g.Players[i])
	}

	return Game{
		ID:         string(g.ID),
		Status:     string(g.Status),
		Text:       g.Text,
		Players:    players,
		MaxPlayers: g.MaxPlayers,
		StartTime:  g.StartTime,
		EndTime:    g.EndTime,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}
