package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/typerace/typerace-go/internal/model"
	"github.com/typerace/typerace-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are stored as JSON snapshots so reads return independent copies,
// matching the serialization behavior of the Redis backend.
type Storage struct {
	mu    sync.Mutex
	games map[model.GameID][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = data
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.Lock()
	data, ok := s.games[id]
	s.mu.Unlock()
	if !ok {
		return nil, model.ErrGameNotFound
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// UpdateGame applies fn under the store lock, so concurrent updates to the
// same game are fully serialized.
func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn storage.UpdateFunc) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	if err := fn(&game); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(&game)
	if err != nil {
		return nil, err
	}
	s.games[id] = updated

	return &game, nil
}
