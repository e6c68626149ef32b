package client

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"ctchen222/Tic-Tac-Toe-Online/internal/player"
	"ctchen222/Tic-Tac-Toe-Online/pkg/proto"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("client")
	meter  = otel.Meter("client")
)

// Session mirrors one match for one player. Every field after bootstrap comes from
// the server; nothing is computed or checked locally.
type Session struct {
	coordinator Coordinator
	dialer      StreamDialer
	logger      *slog.Logger
	movesSent   metric.Int64Counter

	// writeMu serializes writes on conn; the websocket allows one writer at a time.
	writeMu sync.Mutex

	mu          sync.Mutex
	matchID     string
	symbol      game.Symbol
	currentTurn game.Symbol
	conn        player.Connection
	view        View
}

// NewSession creates a session that has not joined any match yet.
func NewSession(coordinator Coordinator, dialer StreamDialer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	movesSent, err := meter.Int64Counter("client.moves.sent",
		metric.WithDescription("Move messages written to the match stream"))
	if err != nil {
		logger.Warn("failed to create moves counter", "error", err)
	}

	return &Session{
		coordinator: coordinator,
		dialer:      dialer,
		logger:      logger.With("component", "session"),
		movesSent:   movesSent,
		currentTurn: game.PlayerX,
		view:        View{Screen: ScreenMenu},
	}
}

// CreateMatch creates a match, takes X and opens the match stream.
func (s *Session) CreateMatch(ctx context.Context, playerName string) error {
	ctx, span := tracer.Start(ctx, "client.CreateMatch")
	defer span.End()

	if s.started() {
		return apperror.ErrSessionStarted
	}

	matchID, err := s.coordinator.CreateMatch(ctx, playerName)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create match", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create match")
		return err
	}
	span.SetAttributes(attribute.String("match.id", matchID))
	s.logger.InfoContext(ctx, "match created", "match.id", matchID, "player.symbol", game.PlayerX)

	if err := s.connect(ctx, matchID, game.PlayerX); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to open match stream")
		return err
	}

	s.mu.Lock()
	s.view.GameIDText = fmt.Sprintf("Game ID: %s", matchID)
	s.mu.Unlock()
	return nil
}

// JoinMatch joins matchID as O and opens the match stream. A refusal is returned
// as *JoinRejectedError and leaves the session untouched.
func (s *Session) JoinMatch(ctx context.Context, matchID, playerName string) error {
	ctx, span := tracer.Start(ctx, "client.JoinMatch", trace.WithAttributes(
		attribute.String("match.id", matchID),
	))
	defer span.End()

	if s.started() {
		return apperror.ErrSessionStarted
	}

	if err := s.coordinator.JoinMatch(ctx, matchID, playerName); err != nil {
		s.logger.WarnContext(ctx, "failed to join match", "match.id", matchID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to join match")
		return err
	}

	s.logger.InfoContext(ctx, "match joined", "match.id", matchID, "player.symbol", game.PlayerO)

	if err := s.connect(ctx, matchID, game.PlayerO); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to open match stream")
		return err
	}
	return nil
}

// connect opens the stream and only then records the match, so a failed dial
// leaves the session free to bootstrap again.
func (s *Session) connect(ctx context.Context, matchID string, symbol game.Symbol) error {
	conn, err := s.dialer.Dial(ctx, matchID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to open match stream", "match.id", matchID, "error", err)
		return err
	}

	s.mu.Lock()
	s.matchID = matchID
	s.symbol = symbol
	s.conn = conn
	s.mu.Unlock()
	return nil
}

// ReadFrame blocks until the next frame arrives on the match stream.
func (s *Session) ReadFrame() ([]byte, error) {
	conn := s.connection()
	if conn == nil {
		return nil, apperror.ErrNotConnected
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// HandleMessage decodes one inbound frame and applies it to the view.
func (s *Session) HandleMessage(raw []byte) error {
	var message proto.ServerToClientMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		s.logger.Error("error unmarshalling message", "error", err)
		return fmt.Errorf("malformed message: %w", err)
	}
	s.apply(&message)
	return nil
}

func (s *Session) apply(message *proto.ServerToClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch message.Action {
	case proto.ActionStart:
		s.view.Screen = ScreenBoard
		s.view.renderBoard(message.Board)
		s.currentTurn = message.Turn
		s.view.updateInfoPanel(s.currentTurn, s.symbol, infoGameStarted)

	case proto.ActionUpdate:
		s.view.renderBoard(message.Board)
		s.currentTurn = message.Turn
		if message.Winner != nil && *message.Winner != game.None {
			s.view.updateInfoPanel(s.currentTurn, s.symbol, wonInfo(*message.Winner))
		} else {
			s.view.updateInfoPanel(s.currentTurn, s.symbol, infoWaiting)
		}

	default:
		s.logger.Debug("ignoring message", "message.action", message.Action)
	}
}

// SelectCell sends one move for position with the local symbol. Occupancy and turn
// are left to the server. It is safe to call from several goroutines.
func (s *Session) SelectCell(ctx context.Context, position int) error {
	s.mu.Lock()
	conn, symbol, matchID := s.conn, s.symbol, s.matchID
	s.mu.Unlock()

	if conn == nil {
		return apperror.ErrNotConnected
	}

	data, err := json.Marshal(proto.ClientToServerMessage{
		Action:   proto.ActionMove,
		Position: position,
		Symbol:   symbol,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}

	s.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	s.writeMu.Unlock()
	if err != nil {
		s.logger.ErrorContext(ctx, "error writing move", "match.id", matchID, "move.position", position, "error", err)
		return fmt.Errorf("failed to send move: %w", err)
	}

	if s.movesSent != nil {
		s.movesSent.Add(ctx, 1, metric.WithAttributes(attribute.String("player.symbol", string(symbol))))
	}
	return nil
}

// View returns a copy of what should be on screen.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.clone()
}

// MatchID returns the id issued at bootstrap.
func (s *Session) MatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchID
}

// Symbol returns the local player's symbol, empty before bootstrap.
func (s *Session) Symbol() game.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbol
}

// CurrentTurn returns the turn from the last snapshot.
func (s *Session) CurrentTurn() game.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTurn
}

// Close closes the match stream if one is open.
func (s *Session) Close() error {
	conn := s.connection()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (s *Session) connection() player.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchID != ""
}
