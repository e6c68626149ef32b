package server

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-Online/internal/api/response"
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"ctchen222/Tic-Tac-Toe-Online/internal/hub"
	"ctchen222/Tic-Tac-Toe-Online/internal/player"
	"ctchen222/Tic-Tac-Toe-Online/internal/repository"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub             *hub.Hub
	matchRepo       repository.MatchRepository
	matchController *controller.MatchController
	upgrader        websocket.Upgrader
	engine          *gin.Engine
}

func NewServer(h *hub.Hub, matchRepo repository.MatchRepository, mc *controller.MatchController) *Server {
	s := &Server{
		hub:             h,
		matchRepo:       matchRepo,
		matchController: mc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.routes()
	return s
}

// Engine returns the router serving every endpoint.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors())

	r.POST("/create_game", s.matchController.CreateMatch)
	r.POST("/join_game/:id", s.matchController.JoinMatch)
	r.GET("/ws/:id", s.handleWebSocket)
	return r
}

// cors lets any origin reach the service.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		h.Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// handleWebSocket upgrades the request for a known match and hands the
// connection to the hub. It blocks until the player disconnects.
func (s *Server) handleWebSocket(c *gin.Context) {
	matchID := c.Param("id")
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("match.id", matchID),
	))
	defer span.End()

	if _, err := s.matchRepo.FindByID(ctx, matchID); err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			response.AbortWithError(c, http.StatusNotFound, "Game not found.")
			return
		}
		slog.ErrorContext(ctx, "failed to look up match", "match.id", matchID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to look up match")
		response.AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	playerID := uuid.New().String()
	span.SetAttributes(attribute.String("player.id", playerID))

	s.hub.Serve(ctx, player.NewPlayer(playerID, matchID, conn))
}
