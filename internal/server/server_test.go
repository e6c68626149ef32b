package server

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-Online/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Online/internal/client"
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"ctchen222/Tic-Tac-Toe-Online/internal/hub"
	"ctchen222/Tic-Tac-Toe-Online/internal/repository"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryMatchRepository()
	mc := controller.NewMatchController(service.NewMatchService(repo))
	srv := NewServer(hub.NewHub(repo), repo, mc)

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return ts
}

func newSession(t *testing.T, baseURL string) *client.Session {
	t.Helper()
	dialer, err := client.NewWebSocketDialer(baseURL)
	require.NoError(t, err)
	s := client.NewSession(client.NewHTTPCoordinator(baseURL, nil), dialer, discardLogger)
	t.Cleanup(func() { s.Close() })
	return s
}

// nextFrame reads and applies one frame, failing the test if none arrives in time.
func nextFrame(t *testing.T, s *client.Session) {
	t.Helper()
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := s.ReadFrame()
		ch <- result{data, err}
	}()

	select {
	case r := <-ch:
		require.NoError(t, r.err)
		require.NoError(t, s.HandleMessage(r.data))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
	}
}

func TestServer_FullMatch(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	alice := newSession(t, ts.URL)
	require.NoError(t, alice.CreateMatch(ctx, "alice"))

	bob := newSession(t, ts.URL)
	require.NoError(t, bob.JoinMatch(ctx, alice.MatchID(), "bob"))

	nextFrame(t, alice)
	nextFrame(t, bob)
	for _, s := range []*client.Session{alice, bob} {
		view := s.View()
		assert.Equal(t, client.ScreenBoard, view.Screen)
		assert.Equal(t, "Info: Game started!", view.Info)
		assert.Equal(t, "Current Player: X", view.CurrentPlayer)
	}
	assert.Equal(t, "You play by: X", alice.View().YouPlayBy)
	assert.Equal(t, "You play by: O", bob.View().YouPlayBy)

	moves := []struct {
		s   *client.Session
		pos int
	}{{alice, 0}, {bob, 3}, {alice, 1}, {bob, 4}, {alice, 2}}
	for _, m := range moves {
		require.NoError(t, m.s.SelectCell(ctx, m.pos))
		nextFrame(t, alice)
		nextFrame(t, bob)
	}

	for _, s := range []*client.Session{alice, bob} {
		view := s.View()
		assert.Equal(t, "Info: Player X won!", view.Info)
		assert.Equal(t, []game.Symbol{"X", "X", "X", "O", "O", "", "", "", ""}, view.Cells)
	}
}

func TestServer_JoinRejections(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	alice := newSession(t, ts.URL)
	require.NoError(t, alice.CreateMatch(ctx, "alice"))
	bob := newSession(t, ts.URL)
	require.NoError(t, bob.JoinMatch(ctx, alice.MatchID(), "bob"))

	carol := newSession(t, ts.URL)
	err := carol.JoinMatch(ctx, alice.MatchID(), "carol")
	var rejected *client.JoinRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Game already full.", rejected.Reason)

	err = carol.JoinMatch(ctx, "nope00", "carol")
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Game not found.", rejected.Reason)
	assert.Empty(t, carol.MatchID())
}

func TestServer_StreamForUnknownMatch(t *testing.T) {
	ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/nope00"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CORS(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/create_game", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
