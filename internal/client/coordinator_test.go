package client_test

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/client"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCoordinator_CreateMatch(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{"game_id":"a1b2c3","message":"Game created. Share Game ID with another player."}`))
	}))
	defer srv.Close()

	c := client.NewHTTPCoordinator(srv.URL+"/", srv.Client())
	id, err := c.CreateMatch(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", id)
	assert.Equal(t, "/create_game", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"player_name": "alice"}, gotBody)
}

func TestHTTPCoordinator_CreateMatchErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "error body", body: `{"error":"Field required"}`},
		{name: "missing id", body: `{}`},
		{name: "not json", body: `Internal Server Error`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := client.NewHTTPCoordinator(srv.URL, srv.Client()).CreateMatch(context.Background(), "alice")
			assert.Error(t, err)
		})
	}
}

func TestHTTPCoordinator_JoinMatch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"message":"Joined game successfully.","game_id":"a1b2c3"}`))
	}))
	defer srv.Close()

	err := client.NewHTTPCoordinator(srv.URL, srv.Client()).JoinMatch(context.Background(), "a1b2c3", "bob")

	require.NoError(t, err)
	assert.Equal(t, "/join_game/a1b2c3", gotPath)
}

func TestHTTPCoordinator_JoinMatchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Game not found."}`))
	}))
	defer srv.Close()

	err := client.NewHTTPCoordinator(srv.URL, srv.Client()).JoinMatch(context.Background(), "nope", "bob")

	var rejected *client.JoinRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Game not found.", rejected.Reason)
	assert.Equal(t, "nope", rejected.MatchID)
	assert.Equal(t, "Game not found.", err.Error())
}

func TestHTTPCoordinator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := client.NewHTTPCoordinator(url, nil).JoinMatch(context.Background(), "a1b2c3", "bob")

	var rejected *client.JoinRejectedError
	assert.Error(t, err)
	assert.NotErrorAs(t, err, &rejected)
}
