package client

import (
	"bytes"
	"context"
	"ctchen222/Tic-Tac-Toe-Online/pkg/proto"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:generate mockgen -source=coordinator.go -destination=mocks/mock_coordinator.go -package=mocks

// Coordinator is the request/response side of the match service.
type Coordinator interface {
	CreateMatch(ctx context.Context, playerName string) (string, error)
	JoinMatch(ctx context.Context, matchID, playerName string) error
}

// JoinRejectedError carries the service's reason for refusing a join.
type JoinRejectedError struct {
	MatchID string
	Reason  string
}

func (e *JoinRejectedError) Error() string {
	return e.Reason
}

// HTTPCoordinator talks to the match service over HTTP.
type HTTPCoordinator struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPCoordinator creates a coordinator for the service at baseURL.
// A nil httpClient gets a traced default client.
func NewHTTPCoordinator(baseURL string, httpClient *http.Client) *HTTPCoordinator {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTPCoordinator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CreateMatch asks the service for a new match and returns its id.
func (c *HTTPCoordinator) CreateMatch(ctx context.Context, playerName string) (string, error) {
	var resp proto.CreateMatchResponse
	if err := c.post(ctx, "/create_game", playerName, &resp); err != nil {
		return "", fmt.Errorf("create match: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("create match: %s", resp.Error)
	}
	if resp.GameID == "" {
		return "", errors.New("create match: response has no game_id")
	}
	return resp.GameID, nil
}

// JoinMatch asks the service to seat the player in an existing match.
func (c *HTTPCoordinator) JoinMatch(ctx context.Context, matchID, playerName string) error {
	var resp proto.JoinMatchResponse
	if err := c.post(ctx, "/join_game/"+url.PathEscape(matchID), playerName, &resp); err != nil {
		return fmt.Errorf("join match: %w", err)
	}
	if resp.Error != "" {
		return &JoinRejectedError{MatchID: matchID, Reason: resp.Error}
	}
	return nil
}

func (c *HTTPCoordinator) post(ctx context.Context, path, playerName string, out any) error {
	body, err := json.Marshal(proto.PlayerRequest{PlayerName: &playerName})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response (status %d, body: %s): %w", resp.StatusCode, string(data), err)
	}
	return nil
}
