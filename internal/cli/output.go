package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case Player:
		o.printPlayer(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	CurrentPosition int        `json:"current_position"`
	WPM             float64    `json:"wpm"`
	Accuracy        float64    `json:"accuracy"`
	IsReady         bool       `json:"is_ready"`
	CompletedAt     *time.Time `json:"completed_at"`
}

// Game response type
type Game struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Text       string     `json:"text"`
	Players    []Player   `json:"players"`
	MaxPlayers int        `json:"max_players"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Text: %s\n", g.Text)
	if g.StartTime != nil {
		fmt.Printf("Started: %s\n", g.StartTime.Format(time.RFC3339))
	}
	if g.EndTime != nil {
		fmt.Printf("Ended: %s\n", g.EndTime.Format(time.RFC3339))
	}
	fmt.Printf("Players (%d/%d):\n", len(g.Players), g.MaxPlayers)
	for _, p := range g.Players {
		o.printPlayerLine(p, len(g.Text))
	}
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Username, p.ID)
	fmt.Printf("Position: %d\n", p.CurrentPosition)
	fmt.Printf("WPM: %.1f\n", p.WPM)
	fmt.Printf("Accuracy: %.1f%%\n", p.Accuracy)
}

func (o *Output) printPlayerLine(p Player, textLen int) {
	status := ""
	switch {
	case p.CompletedAt != nil:
		status = " [finished]"
	case p.IsReady:
		status = " [ready]"
	}
	fmt.Printf("  - %s (%s) - %d/%d chars, %.1f wpm, %.1f%% acc%s\n",
		p.Username, p.ID, p.CurrentPosition, textLen, p.WPM, p.Accuracy, status)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
