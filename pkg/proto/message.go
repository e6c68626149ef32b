package proto

import "ctchen222/Tic-Tac-Toe-Online/internal/game"

// Message actions.
const (
	ActionStart  = "start"
	ActionUpdate = "update"
	ActionMove   = "move"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Action   string      `json:"action" validate:"required,eq=move"`
	Position int         `json:"position" validate:"min=0,max=8"`
	Symbol   game.Symbol `json:"symbol" validate:"symbol"`
}

// ServerToClientMessage represents a message from the server to the client.
// Winner is null until someone wins.
type ServerToClientMessage struct {
	Action string        `json:"action" validate:"required"`
	Board  []game.Symbol `json:"board"`
	Turn   game.Symbol   `json:"turn"`
	Winner *game.Symbol  `json:"winner"`
}

// PlayerRequest is the body of both bootstrap calls.
type PlayerRequest struct {
	PlayerName *string `json:"player_name" binding:"required"`
}

// CreateMatchResponse is returned by POST /create_game.
type CreateMatchResponse struct {
	GameID  string `json:"game_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JoinMatchResponse is returned by POST /join_game/{id}. Error is set instead of the
// other fields when the join was refused.
type JoinMatchResponse struct {
	GameID  string `json:"game_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
