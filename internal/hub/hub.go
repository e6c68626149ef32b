package hub

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"ctchen222/Tic-Tac-Toe-Online/internal/player"
	"ctchen222/Tic-Tac-Toe-Online/internal/repository"
	"ctchen222/Tic-Tac-Toe-Online/internal/validator"
	"ctchen222/Tic-Tac-Toe-Online/pkg/proto"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// startPlayers is the connection count that triggers the start broadcast.
const startPlayers = 2

var (
	tracer = otel.Tracer("hub")
	meter  = otel.Meter("hub")
)

// room holds the live streams of one match. mu serializes move handling and
// broadcasts so every player sees snapshots in the same order.
type room struct {
	mu      sync.Mutex
	players []*player.Player
}

// Hub fans match snapshots out to the players connected to each match.
type Hub struct {
	matchRepo    repository.MatchRepository
	movesApplied metric.Int64Counter

	mu    sync.Mutex
	rooms map[string]*room
}

// NewHub creates a new hub backed by matchRepo.
func NewHub(matchRepo repository.MatchRepository) *Hub {
	movesApplied, err := meter.Int64Counter("moves.applied",
		metric.WithDescription("Moves accepted and broadcast to a match"))
	if err != nil {
		slog.Warn("failed to create moves counter", "error", err)
	}
	return &Hub{
		matchRepo:    matchRepo,
		movesApplied: movesApplied,
		rooms:        make(map[string]*room),
	}
}

// Serve attaches p to its match and pumps its inbound frames until the stream
// fails. The connection is closed and detached before Serve returns.
func (h *Hub) Serve(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "hub.Serve", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("match.id", p.MatchID),
	))
	defer span.End()

	h.register(ctx, p)
	defer h.unregister(ctx, p)

	for {
		_, msg, err := p.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "player connection error", "player.id", p.ID, "match.id", p.MatchID, "error", err)
			}
			return
		}
		h.HandleMessage(ctx, p, msg)
	}
}

func (h *Hub) register(ctx context.Context, p *player.Player) {
	h.mu.Lock()
	r, ok := h.rooms[p.MatchID]
	if !ok {
		r = &room{}
		h.rooms[p.MatchID] = r
	}
	r.mu.Lock()
	h.mu.Unlock()
	defer r.mu.Unlock()

	r.players = append(r.players, p)
	slog.InfoContext(ctx, "player connected", "player.id", p.ID, "match.id", p.MatchID, "match.connections", len(r.players))

	if len(r.players) != startPlayers {
		return
	}

	g, err := h.matchRepo.FindByID(ctx, p.MatchID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load match for start", "match.id", p.MatchID, "error", err)
		return
	}
	r.broadcast(ctx, p.MatchID, &proto.ServerToClientMessage{
		Action: proto.ActionStart,
		Board:  g.Board.Cells(),
		Turn:   g.Turn,
	})
}

func (h *Hub) unregister(ctx context.Context, p *player.Player) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[p.MatchID]
	if ok {
		r.mu.Lock()
		for i, other := range r.players {
			if other == p {
				r.players = append(r.players[:i], r.players[i+1:]...)
				break
			}
		}
		empty := len(r.players) == 0
		r.mu.Unlock()

		if empty {
			delete(h.rooms, p.MatchID)
		}
	}

	if err := p.Conn.Close(); err != nil {
		slog.DebugContext(ctx, "error closing connection", "player.id", p.ID, "error", err)
	}
	slog.InfoContext(ctx, "player disconnected", "player.id", p.ID, "match.id", p.MatchID)
}

// HandleMessage applies one inbound frame from p. Frames that fail to decode or
// validate and moves the match rejects are logged and dropped.
func (h *Hub) HandleMessage(ctx context.Context, p *player.Player, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "hub.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("match.id", p.MatchID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return
	}

	r := h.room(p.MatchID)
	if r == nil {
		slog.WarnContext(ctx, "message for a match with no room", "match.id", p.MatchID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := h.matchRepo.ApplyMove(ctx, p.MatchID, message.Position, message.Symbol)
	if err != nil {
		slog.WarnContext(ctx, "move rejected", "match.id", p.MatchID,
			"move.position", message.Position, "move.symbol", message.Symbol, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move rejected")
		return
	}

	if g.Winner == game.None && game.IsBoardFull(g.Board) {
		slog.InfoContext(ctx, "match ended in a draw", "match.id", p.MatchID)
	}
	if h.movesApplied != nil {
		h.movesApplied.Add(ctx, 1, metric.WithAttributes(attribute.String("player.symbol", string(message.Symbol))))
	}

	r.broadcast(ctx, p.MatchID, &proto.ServerToClientMessage{
		Action: proto.ActionUpdate,
		Board:  g.Board.Cells(),
		Turn:   g.Turn,
		Winner: winnerOf(g),
	})
}

// Connections returns how many streams are attached to matchID.
func (h *Hub) Connections(matchID string) int {
	r := h.room(matchID)
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (h *Hub) room(matchID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[matchID]
}

// broadcast writes message to every player in the room. Callers hold r.mu.
func (r *room) broadcast(ctx context.Context, matchID string, message *proto.ServerToClientMessage) {
	ctx, span := tracer.Start(ctx, "hub.broadcast", trace.WithAttributes(
		attribute.String("match.id", matchID),
		attribute.String("message.action", message.Action),
	))
	defer span.End()

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling message")
		return
	}

	for _, p := range r.players {
		if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.ErrorContext(ctx, "error writing message to player", "player.id", p.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Error writing message to player")
		}
	}
}

func winnerOf(g *game.Game) *game.Symbol {
	if g.Winner == game.None {
		return nil
	}
	w := g.Winner
	return &w
}
