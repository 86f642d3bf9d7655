package redis

import (
	"fmt"

	"github.com/typerace/typerace-go/internal/model"
)

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("game:%s", id)
}
