package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <game-id>",
		Short: "Stream WebSocket events from a game",
		Long: `Connect to the game's WebSocket endpoint and stream events in real-time.

Events include:
  - player_joined: A player joined the game
  - player_ready: A player marked themselves ready
  - race_started: The race has started
  - progress_updated: A player reported typing progress

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			return streamEvents(gameID, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// GameEvent is the envelope received from the events endpoint
type GameEvent struct {
	Event  string `json:"event"`
	GameID string `json:"game_id"`
	Game   *Game  `json:"game,omitempty"`
}

func streamEvents(gameID string, jsonOutput bool) error {
	url := wsURL(cfg.ServerURL) + "/api/v1/games/" + gameID + "/events"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Connected to %s\n", url)
	}

	// Close the connection on Ctrl+C so ReadMessage unblocks
	interrupted := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(interrupted)
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			select {
			case <-interrupted:
				return nil
			default:
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		if jsonOutput {
			fmt.Println(string(data))
			continue
		}

		var event GameEvent
		if err := json.Unmarshal(data, &event); err != nil {
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), string(data))
			continue
		}
		printEvent(event)
	}
}

func printEvent(e GameEvent) {
	ts := time.Now().Format("15:04:05")
	if e.Game == nil {
		fmt.Printf("[%s] %s\n", ts, e.Event)
		return
	}

	switch e.Event {
	case "player_joined":
		fmt.Printf("[%s] player_joined: %d/%d players\n", ts, len(e.Game.Players), e.Game.MaxPlayers)
	case "player_ready", "race_started":
		fmt.Printf("[%s] %s: status=%s\n", ts, e.Event, e.Game.Status)
	case "progress_updated":
		fmt.Printf("[%s] progress_updated: status=%s\n", ts, e.Game.Status)
		for _, p := range e.Game.Players {
			fmt.Printf("           %s: %d chars, %.1f wpm\n", p.Username, p.CurrentPosition, p.WPM)
		}
	default:
		fmt.Printf("[%s] %s: status=%s\n", ts, e.Event, e.Game.Status)
	}
}

func wsURL(serverURL string) string {
	url := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	default:
		return "ws://" + url
	}
}
