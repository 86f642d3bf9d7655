package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/typerace/typerace-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete race flow from game creation to finish
func (s *IntegrationSuite) TestCompleteRaceFlow() {
	s.app.MockIdent.Queue("game-1", "alice-id", "bob-id")

	// Step 1: Create a game
	game, err := s.app.SessionService.CreateGame(s.ctx, 2, "the quick brown fox")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), game.ID)
	s.Equal(model.GameStatusWaiting, game.Status)

	// Step 2: Two players join
	game, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "alice")
	s.Require().NoError(err)
	game, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "bob")
	s.Require().NoError(err)
	s.Len(game.Players, 2)

	// Step 3: Both ready up, game moves to starting
	game, err = s.app.SessionService.SetPlayerReady(s.ctx, game.ID, "alice-id")
	s.Require().NoError(err)
	s.Equal(model.GameStatusWaiting, game.Status)

	game, err = s.app.SessionService.SetPlayerReady(s.ctx, game.ID, "bob-id")
	s.Require().NoError(err)
	s.Equal(model.GameStatusStarting, game.Status)

	// Step 4: Start the race
	s.app.MockClock.Advance(3 * time.Second)
	game, err = s.app.SessionService.StartGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusActive, game.Status)
	s.Require().NotNil(game.StartTime)

	// Step 5: Players race; alice finishes first
	textLen := len(game.Text)
	game, err = s.app.SessionService.UpdatePlayerProgress(s.ctx, game.ID, "alice-id", textLen/2, 80, 97.5)
	s.Require().NoError(err)
	s.Equal(model.GameStatusActive, game.Status)

	s.app.MockClock.Advance(10 * time.Second)
	game, err = s.app.SessionService.UpdatePlayerProgress(s.ctx, game.ID, "alice-id", textLen, 84, 98.1)
	s.Require().NoError(err)
	alice := game.FindPlayer("alice-id")
	s.Require().NotNil(alice)
	s.NotNil(alice.CompletedAt)
	s.Equal(model.GameStatusActive, game.Status)

	// Step 6: Bob finishes, race ends
	s.app.MockClock.Advance(5 * time.Second)
	game, err = s.app.SessionService.UpdatePlayerProgress(s.ctx, game.ID, "bob-id", textLen, 62, 91.0)
	s.Require().NoError(err)
	s.Equal(model.GameStatusFinished, game.Status)
	s.Require().NotNil(game.EndTime)
	s.True(game.EndTime.After(*game.StartTime))

	// Step 7: Final state is persisted
	stored, err := s.app.SessionService.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusFinished, stored.Status)
	s.Len(stored.Players, 2)
}

// Test: Joining is rejected once the race has left the lobby
func (s *IntegrationSuite) TestLateJoinRejected() {
	s.app.MockIdent.Queue("game-1", "p1", "p2")

	game, err := s.app.SessionService.CreateGame(s.ctx, 4, "hello world")
	s.Require().NoError(err)

	_, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "one")
	s.Require().NoError(err)
	_, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "two")
	s.Require().NoError(err)

	_, err = s.app.SessionService.SetPlayerReady(s.ctx, game.ID, "p1")
	s.Require().NoError(err)
	_, err = s.app.SessionService.SetPlayerReady(s.ctx, game.ID, "p2")
	s.Require().NoError(err)

	_, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "latecomer")
	s.ErrorIs(err, model.ErrGameNotWaiting)
}

// Test: A full lobby turns away additional players without corrupting state
func (s *IntegrationSuite) TestFullLobby() {
	s.app.MockIdent.Queue("game-1", "p1", "p2")

	game, err := s.app.SessionService.CreateGame(s.ctx, 2, "short text")
	s.Require().NoError(err)

	_, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "one")
	s.Require().NoError(err)
	_, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "two")
	s.Require().NoError(err)

	_, err = s.app.SessionService.AddPlayer(s.ctx, game.ID, "three")
	s.ErrorIs(err, model.ErrGameFull)

	stored, err := s.app.SessionService.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Len(stored.Players, 2)
}

// Test: Multiple independent games do not interfere
func (s *IntegrationSuite) TestMultipleGames() {
	s.app.MockIdent.Queue("game-a", "game-b")

	gameA, err := s.app.SessionService.CreateGame(s.ctx, 2, "first race text")
	s.Require().NoError(err)
	gameB, err := s.app.SessionService.CreateGame(s.ctx, 4, "second race text")
	s.Require().NoError(err)

	_, err = s.app.SessionService.AddPlayer(s.ctx, gameA.ID, "alice")
	s.Require().NoError(err)

	storedA, err := s.app.SessionService.GetGame(s.ctx, gameA.ID)
	s.Require().NoError(err)
	storedB, err := s.app.SessionService.GetGame(s.ctx, gameB.ID)
	s.Require().NoError(err)

	s.Len(storedA.Players, 1)
	s.Empty(storedB.Players)
	s.Equal(2, storedA.MaxPlayers)
	s.Equal(4, storedB.MaxPlayers)
}
