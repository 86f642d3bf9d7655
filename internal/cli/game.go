package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameReadyCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameProgressCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var maxPlayers int
	var text string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"max_players": maxPlayers, "text": text}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 4, "Maximum number of players (2-4)")
	cmd.Flags().StringVar(&text, "text", "", "Text to race on")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id> <username>",
		Short: "Join a game as a new player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			username := args[1]

			req := map[string]string{"username": username}
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/players", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameReadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready <game-id> <player-id>",
		Short: "Mark a player as ready",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			playerID := args[1]

			var result Game

			path := fmt.Sprintf("/api/v1/games/%s/players/%s/ready", gameID, playerID)
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start a game whose countdown has begun",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", gameID), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameProgressCmd() *cobra.Command {
	var wpm, accuracy float64

	cmd := &cobra.Command{
		Use:   "progress <game-id> <player-id> <position>",
		Short: "Report a player's typing progress",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			playerID := args[1]

			position, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid position: %w", err)
			}

			req := map[string]any{
				"current_position": position,
				"wpm":              wpm,
				"accuracy":         accuracy,
			}
			var result Game

			path := fmt.Sprintf("/api/v1/games/%s/players/%s/progress", gameID, playerID)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&wpm, "wpm", 0, "Current words per minute")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 100, "Current accuracy percentage")

	return cmd
}
