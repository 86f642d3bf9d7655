package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Waiting for players to join and ready up
	GameStatusStarting GameStatus = "starting" // Quorum reached, countdown before the race
	GameStatusActive   GameStatus = "active"   // Race in progress
	GameStatusFinished GameStatus = "finished" // All players have completed the text
)

// Player count bounds for a game
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Game represents a single typing race session
type Game struct {
	ID     GameID     `json:"id"`
	Status GameStatus `json:"status"`

	// Text all players must type; its length is the completion threshold
	Text string `json:"text"`

	// Players in join order
	Players []Player `json:"players"`

	// MaxPlayers is fixed at creation, in [MinPlayers, MaxPlayers]
	MaxPlayers int `json:"maxPlayers"`

	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FindPlayer returns the player with the given ID, or nil if not in the game
func (g *Game) FindPlayer(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// IsFull returns true if no more players can join
func (g *Game) IsFull() bool {
	return len(g.Players) >= g.MaxPlayers
}

// HasQuorum returns true if enough players have joined to begin a race
func (g *Game) HasQuorum() bool {
	return len(g.Players) >= MinPlayers
}

// AllReady returns true if every joined player is ready
func (g *Game) AllReady() bool {
	for i := range g.Players {
		if !g.Players[i].IsReady {
			return false
		}
	}
	return true
}

// AllCompleted returns true if every player has finished the text
func (g *Game) AllCompleted() bool {
	for i := range g.Players {
		if g.Players[i].CompletedAt == nil {
			return false
		}
	}
	return true
}
