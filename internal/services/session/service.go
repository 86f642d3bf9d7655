package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/typerace/typerace-go/internal/dependencies/clock"
	"github.com/typerace/typerace-go/internal/dependencies/ident"
	"github.com/typerace/typerace-go/internal/model"
	"github.com/typerace/typerace-go/internal/storage"
)

// Service owns the game lifecycle state machine and player mutations.
// It is stateless: every operation is a single read-validate-mutate-persist
// cycle against storage, and all mutations go through storage.UpdateGame so
// concurrent operations on one game are serialized by the store.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ident   ident.Generator
	logger  *slog.Logger
}

// New creates a new game session service
func New(storage storage.Storage, clock clock.Clock, ident ident.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ident:   ident,
		logger:  logger,
	}
}

// CreateGame creates a new game in the waiting state with no players.
// Input is validated upstream; the checks here are defensive.
func (s *Service) CreateGame(ctx context.Context, maxPlayers int, text string) (*model.Game, error) {
	if maxPlayers < model.MinPlayers || maxPlayers > model.MaxPlayers {
		return nil, fmt.Errorf("%w: maxPlayers must be between %d and %d",
			model.ErrInvalidArgument, model.MinPlayers, model.MaxPlayers)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text must not be empty", model.ErrInvalidArgument)
	}

	now := s.clock.Now()
	game := &model.Game{
		ID:         model.GameID(s.ident.NewID()),
		Status:     model.GameStatusWaiting,
		Text:       text,
		Players:    []model.Player{},
		MaxPlayers: maxPlayers,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		s.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("max_players", maxPlayers),
		slog.Int("text_length", len(text)),
	)

	return game, nil
}

// GetGame retrieves the latest game snapshot
func (s *Service) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, gameID)
}

// AddPlayer joins a new player to a waiting game
func (s *Service) AddPlayer(ctx context.Context, gameID model.GameID, username string) (*model.Game, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", model.ErrInvalidArgument)
	}

	playerID := model.PlayerID(s.ident.NewID())

	game, err := s.storage.UpdateGame(ctx, gameID, func(game *model.Game) error {
		if game.Status != model.GameStatusWaiting {
			return model.ErrGameNotWaiting
		}
		if game.IsFull() {
			return model.ErrGameFull
		}

		game.Players = append(game.Players, model.Player{
			ID:              playerID,
			Username:        username,
			CurrentPosition: 0,
			WPM:             0,
			Accuracy:        100,
			IsReady:         false,
		})
		game.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player joined",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("username", username),
		slog.Int("player_count", len(game.Players)),
	)

	return game, nil
}

// SetPlayerReady marks a player as ready. Idempotent. When every player in
// a waiting game with quorum is ready, the game advances to starting.
func (s *Service) SetPlayerReady(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	var started bool

	game, err := s.storage.UpdateGame(ctx, gameID, func(game *model.Game) error {
		player := game.FindPlayer(playerID)
		if player == nil {
			return model.ErrPlayerNotFound
		}

		player.IsReady = true

		// The quorum transition only fires from the waiting state; ready
		// calls on a later-stage game are harmless no-ops.
		started = false
		if game.Status == model.GameStatusWaiting && game.HasQuorum() && game.AllReady() {
			game.Status = model.GameStatusStarting
			started = true
		}

		game.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if started {
		s.logger.Info("all players ready, countdown starting",
			slog.String("game_id", string(gameID)),
			slog.Int("player_count", len(game.Players)),
		)
	}

	return game, nil
}

// StartGame moves a starting game to active and records the start time.
// Invoked by an external trigger once the countdown elapses.
func (s *Service) StartGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := s.storage.UpdateGame(ctx, gameID, func(game *model.Game) error {
		if game.Status != model.GameStatusStarting {
			return model.ErrGameNotStarting
		}

		now := s.clock.Now()
		game.Status = model.GameStatusActive
		game.StartTime = &now
		game.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("race started",
		slog.String("game_id", string(gameID)),
		slog.Int("player_count", len(game.Players)),
	)

	return game, nil
}

// UpdatePlayerProgress records a player's typing progress. A position at or
// beyond the end of the text completes the player; once every player has
// completed, the game finishes.
func (s *Service) UpdatePlayerProgress(
	ctx context.Context,
	gameID model.GameID,
	playerID model.PlayerID,
	currentPosition int,
	wpm float64,
	accuracy float64,
) (*model.Game, error) {
	if currentPosition < 0 {
		return nil, fmt.Errorf("%w: currentPosition must not be negative", model.ErrInvalidArgument)
	}

	var completed, finished bool

	game, err := s.storage.UpdateGame(ctx, gameID, func(game *model.Game) error {
		if game.Status != model.GameStatusActive {
			return model.ErrGameNotActive
		}

		player := game.FindPlayer(playerID)
		if player == nil {
			return model.ErrPlayerNotFound
		}

		// Position never moves backwards; a lower report is treated as a
		// stale frame and clamped, while telemetry still updates.
		if currentPosition > player.CurrentPosition {
			player.CurrentPosition = currentPosition
		}
		player.WPM = wpm
		player.Accuracy = accuracy

		completed = false
		if player.CurrentPosition >= len(game.Text) && player.CompletedAt == nil {
			now := s.clock.Now()
			player.CompletedAt = &now
			completed = true
		}

		finished = false
		if game.AllCompleted() {
			now := s.clock.Now()
			game.Status = model.GameStatusFinished
			game.EndTime = &now
			finished = true
		}

		game.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		s.logger.Info("player completed text",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.Float64("wpm", wpm),
		)
	}
	if finished {
		s.logger.Info("race finished",
			slog.String("game_id", string(gameID)),
			slog.Int("player_count", len(game.Players)),
		)
	}

	return game, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateGame(ctx context.Context, maxPlayers int, text string) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	AddPlayer(ctx context.Context, gameID model.GameID, username string) (*model.Game, error)
	SetPlayerReady(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	StartGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	UpdatePlayerProgress(ctx context.Context, gameID model.GameID, playerID model.PlayerID, currentPosition int, wpm float64, accuracy float64) (*model.Game, error)
}

var _ ServiceInterface = (*Service)(nil)
