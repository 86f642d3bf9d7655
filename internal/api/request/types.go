package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	MaxPlayers int    `json:"max_players"`
	Text       string `json:"text"`
}

// AddPlayerRequest is the request body for joining a game
type AddPlayerRequest struct {
	Username string `json:"username"`
}

// UpdateProgressRequest is the request body for reporting typing progress
type UpdateProgressRequest struct {
	CurrentPosition int     `json:"current_position"`
	WPM             float64 `json:"wpm"`
	Accuracy        float64 `json:"accuracy"`
}
