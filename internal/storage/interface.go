package storage

import (
	"context"

	"github.com/typerace/typerace-go/internal/model"
)

// UpdateFunc mutates a game snapshot in place. Returning an error aborts the
// update without persisting anything.
type UpdateFunc func(game *model.Game) error

// Storage defines the interface for game persistence.
//
// UpdateGame is the only way to mutate an existing game: implementations
// must apply the read-mutate-persist cycle atomically with respect to other
// UpdateGame calls for the same game ID, so that concurrent operations on
// one game observe a linearizable history. Operations on different game IDs
// must not contend.
type Storage interface {
	// SaveGame persists a new game snapshot, replacing any prior value
	SaveGame(ctx context.Context, game *model.Game) error

	// GetGame returns the latest persisted snapshot, or model.ErrGameNotFound
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// UpdateGame loads the game, applies fn to it, and persists the result.
	// Returns the persisted snapshot. If fn fails, nothing is written and
	// its error is returned unchanged.
	UpdateGame(ctx context.Context, id model.GameID, fn UpdateFunc) (*model.Game, error)
}
