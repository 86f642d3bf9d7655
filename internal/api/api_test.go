package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typerace/typerace-go/internal/api"
	"github.com/typerace/typerace-go/internal/api/response"
	"github.com/typerace/typerace-go/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		SessionService: app.SessionService,
		EventManager:   app.EventManager,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) decodeGame(t *testing.T, rr *httptest.ResponseRecorder) response.Game {
	t.Helper()
	var game response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	return game
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1")

	body := map[string]any{"max_players": 3, "text": "the quick brown fox"}
	rr := ts.request(http.MethodPost, "/api/v1/games", body)

	assert.Equal(t, http.StatusCreated, rr.Code)

	game := ts.decodeGame(t, rr)
	assert.Equal(t, "game-1", game.ID)
	assert.Equal(t, "waiting", game.Status)
	assert.Equal(t, 3, game.MaxPlayers)
	assert.Equal(t, "the quick brown fox", game.Text)
	assert.Empty(t, game.Players)
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"too few players", map[string]any{"max_players": 1, "text": "hello"}},
		{"too many players", map[string]any{"max_players": 5, "text": "hello"}},
		{"empty text", map[string]any{"max_players": 2, "text": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetGame(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})

	rr := ts.request(http.MethodGet, "/api/v1/games/game-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	game := ts.decodeGame(t, rr)
	assert.Equal(t, "game-1", game.ID)
	assert.Equal(t, "waiting", game.Status)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestAddPlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "player-1")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	game := ts.decodeGame(t, rr)
	require.Len(t, game.Players, 1)
	assert.Equal(t, "player-1", game.Players[0].ID)
	assert.Equal(t, "alice", game.Players[0].Username)
	assert.Equal(t, 0, game.Players[0].CurrentPosition)
	assert.Equal(t, 100.0, game.Players[0].Accuracy)
	assert.False(t, game.Players[0].IsReady)
}

func TestAddPlayerRejectsEmptyUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddPlayerGameFull(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "p1", "p2")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "bob"})

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "carol"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_FULL")
}

func TestReadyQuorumStartsCountdown(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "p1", "p2")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "bob"})

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players/p1/ready", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "waiting", ts.decodeGame(t, rr).Status)

	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/players/p2/ready", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "starting", ts.decodeGame(t, rr).Status)
}

func TestStartGameRequiresStarting(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/start", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_STARTING")
}

func TestFullRaceOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "p1", "p2")

	text := "hello world"
	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": text})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "bob"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players/p1/ready", nil)
	ts.request(http.MethodPost, "/api/v1/games/game-1/players/p2/ready", nil)

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/start", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	game := ts.decodeGame(t, rr)
	assert.Equal(t, "active", game.Status)
	assert.NotNil(t, game.StartTime)

	progress := map[string]any{"current_position": len(text), "wpm": 75.0, "accuracy": 96.4}
	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/players/p1/progress", progress)
	require.Equal(t, http.StatusOK, rr.Code)
	game = ts.decodeGame(t, rr)
	assert.Equal(t, "active", game.Status)
	assert.NotNil(t, game.Players[0].CompletedAt)

	progress = map[string]any{"current_position": len(text), "wpm": 60.0, "accuracy": 90.2}
	rr = ts.request(http.MethodPost, "/api/v1/games/game-1/players/p2/progress", progress)
	require.Equal(t, http.StatusOK, rr.Code)
	game = ts.decodeGame(t, rr)
	assert.Equal(t, "finished", game.Status)
	assert.NotNil(t, game.EndTime)
}

func TestProgressRejectsNegativePosition(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "p1", "p2")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "bob"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players/p1/ready", nil)
	ts.request(http.MethodPost, "/api/v1/games/game-1/players/p2/ready", nil)
	ts.request(http.MethodPost, "/api/v1/games/game-1/start", nil)

	body := map[string]any{"current_position": -1, "wpm": 50.0, "accuracy": 90.0}
	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players/p1/progress", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProgressRequiresActiveGame(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "p1")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})

	body := map[string]any{"current_position": 3, "wpm": 50.0, "accuracy": 90.0}
	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players/p1/progress", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_ACTIVE")
}

func TestPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1", "p1", "p2")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 2, "text": "hello world"})
	ts.request(http.MethodPost, "/api/v1/games/game-1/players", map[string]string{"username": "alice"})

	rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players/ghost/ready", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER_NOT_FOUND")
}

func TestMalformedJSONRejected(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEventStreamRequiresExistingGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/missing/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIdent.Queue("game-1")

	ts.request(http.MethodPost, "/api/v1/games", map[string]any{"max_players": 4, "text": "hello world"})

	results := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func(n int) {
			body := map[string]string{"username": fmt.Sprintf("racer-%d", n)}
			rr := ts.request(http.MethodPost, "/api/v1/games/game-1/players", body)
			results <- rr.Code
		}(i)
	}

	var created, rejected int
	for i := 0; i < 8; i++ {
		switch <-results {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			rejected++
		}
	}
	assert.Equal(t, 4, created)
	assert.Equal(t, 4, rejected)

	rr := ts.request(http.MethodGet, "/api/v1/games/game-1", nil)
	game := ts.decodeGame(t, rr)
	assert.Len(t, game.Players, 4)
}
