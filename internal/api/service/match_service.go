package service

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"ctchen222/Tic-Tac-Toe-Online/internal/repository"
	"ctchen222/Tic-Tac-Toe-Online/pkg/proto"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	matchIDLength     = 6
	createMaxAttempts = 3

	msgCreated = "Game created. Share Game ID with another player."
	msgJoined  = "Joined game successfully."
)

var (
	tracer = otel.Tracer("api.service")
	meter  = otel.Meter("api.service")
)

// MatchService defines the bootstrap operations of the match service.
type MatchService interface {
	CreateMatch(ctx context.Context, playerName string) (*proto.CreateMatchResponse, error)
	JoinMatch(ctx context.Context, matchID, playerName string) (*proto.JoinMatchResponse, error)
}

type matchService struct {
	matchRepo      repository.MatchRepository
	newID          func() string
	matchesCreated metric.Int64Counter
}

// NewMatchService creates a new MatchService.
func NewMatchService(matchRepo repository.MatchRepository) MatchService {
	matchesCreated, err := meter.Int64Counter("matches.created")
	if err != nil {
		slog.Warn("failed to create matches counter", "error", err)
	}
	return &matchService{
		matchRepo:      matchRepo,
		newID:          newMatchID,
		matchesCreated: matchesCreated,
	}
}

// newMatchID returns a short id taken from a random UUID.
func newMatchID() string {
	return uuid.New().String()[:matchIDLength]
}

// CreateMatch opens a match with the creator as X.
func (s *matchService) CreateMatch(ctx context.Context, playerName string) (*proto.CreateMatchResponse, error) {
	ctx, span := tracer.Start(ctx, "MatchService.CreateMatch")
	defer span.End()

	var err error
	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		id := s.newID()
		err = s.matchRepo.Create(ctx, id, playerName)
		if errors.Is(err, apperror.ErrGameAlreadyExists) {
			slog.WarnContext(ctx, "match id collision, retrying", "match.id", id)
			continue
		}
		if err != nil {
			break
		}

		span.SetAttributes(attribute.String("match.id", id))
		if s.matchesCreated != nil {
			s.matchesCreated.Add(ctx, 1)
		}
		slog.InfoContext(ctx, "match created", "match.id", id)
		return &proto.CreateMatchResponse{GameID: id, Message: msgCreated}, nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "Failed to create match")
	return nil, fmt.Errorf("failed to create match: %w", err)
}

// JoinMatch seats the player as O. Refusals come back as the body the client shows.
func (s *matchService) JoinMatch(ctx context.Context, matchID, playerName string) (*proto.JoinMatchResponse, error) {
	ctx, span := tracer.Start(ctx, "MatchService.JoinMatch", trace.WithAttributes(
		attribute.String("match.id", matchID),
	))
	defer span.End()

	err := s.matchRepo.Join(ctx, matchID, playerName)
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return &proto.JoinMatchResponse{Error: "Game not found."}, nil
	case errors.Is(err, apperror.ErrGameFull):
		return &proto.JoinMatchResponse{Error: "Game already full."}, nil
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to join match")
		return nil, fmt.Errorf("failed to join match: %w", err)
	}

	slog.InfoContext(ctx, "player joined match", "match.id", matchID)
	return &proto.JoinMatchResponse{Message: msgJoined, GameID: matchID}, nil
}
