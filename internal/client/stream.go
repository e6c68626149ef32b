package client

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/player"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

//go:generate mockgen -source=stream.go -destination=mocks/mock_stream.go -package=mocks

// StreamDialer opens the message stream of a match.
type StreamDialer interface {
	Dial(ctx context.Context, matchID string) (player.Connection, error)
}

// WebSocketDialer dials /ws/{id} on the match service.
type WebSocketDialer struct {
	baseURL *url.URL
	dialer  *websocket.Dialer
}

// NewWebSocketDialer derives the stream address from the service's HTTP base URL.
func NewWebSocketDialer(baseURL string) (*WebSocketDialer, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}

	return &WebSocketDialer{
		baseURL: u,
		dialer:  websocket.DefaultDialer,
	}, nil
}

// StreamURL returns the address of the match's message stream.
func (d *WebSocketDialer) StreamURL(matchID string) string {
	return d.baseURL.JoinPath("ws", matchID).String()
}

// Dial opens the stream.
func (d *WebSocketDialer) Dial(ctx context.Context, matchID string) (player.Connection, error) {
	streamURL := d.StreamURL(matchID)
	conn, resp, err := d.dialer.DialContext(ctx, streamURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to dial %s (status %d): %w", streamURL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to dial %s: %w", streamURL, err)
	}
	return conn, nil
}
