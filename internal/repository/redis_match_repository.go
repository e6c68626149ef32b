package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.match")

// Hash fields of a match.
const (
	fieldBoard   = "board"
	fieldTurn    = "turn"
	fieldWinner  = "winner"
	fieldPlayerX = "player_x"
	fieldPlayerO = "player_o"
)

// matchTTL bounds how long an abandoned match lingers in Redis.
const matchTTL = 24 * time.Hour

type redisMatchRepository struct {
	rdb *redis.Client
}

// NewRedisMatchRepository creates a Redis-based MatchRepository.
func NewRedisMatchRepository(rdb *redis.Client) MatchRepository {
	return &redisMatchRepository{rdb: rdb}
}

func matchKey(id string) string {
	return fmt.Sprintf("match:%s", id)
}

// Create initializes a new match in Redis.
func (r *redisMatchRepository) Create(ctx context.Context, id, creatorName string) error {
	ctx, span := tracer.Start(ctx, "MatchRepository.Create", trace.WithAttributes(attribute.String("match.id", id)))
	defer span.End()

	g := game.NewGame()
	boardJSON, err := json.Marshal(g.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal initial board: %w", err)
	}

	key := matchKey(id)
	txf := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.ErrGameAlreadyExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldBoard, boardJSON,
				fieldTurn, string(g.Turn),
				fieldWinner, string(game.None),
				fieldPlayerX, creatorName,
			)
			pipe.Expire(ctx, key, matchTTL)
			return nil
		})
		return err
	}

	if err := r.rdb.Watch(ctx, txf, key); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create match in redis: %w", err)
	}
	return nil
}

// Join seats playerName as O.
func (r *redisMatchRepository) Join(ctx context.Context, id, playerName string) error {
	ctx, span := tracer.Start(ctx, "MatchRepository.Join", trace.WithAttributes(attribute.String("match.id", id)))
	defer span.End()

	key := matchKey(id)
	txf := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.ErrGameNotFound
		}

		taken, err := tx.HExists(ctx, key, fieldPlayerO).Result()
		if err != nil {
			return err
		}
		if taken {
			return apperror.ErrGameFull
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldPlayerO, playerName)
			return nil
		})
		return err
	}

	if err := r.rdb.Watch(ctx, txf, key); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to join match in redis: %w", err)
	}
	return nil
}

// FindByID retrieves the current match state from Redis.
func (r *redisMatchRepository) FindByID(ctx context.Context, id string) (*game.Game, error) {
	ctx, span := tracer.Start(ctx, "MatchRepository.FindByID", trace.WithAttributes(attribute.String("match.id", id)))
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, matchKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get match from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, apperror.ErrGameNotFound
	}
	return decodeMatch(data)
}

// ApplyMove applies a move inside a WATCH transaction so concurrent moves on the
// same match cannot interleave.
func (r *redisMatchRepository) ApplyMove(ctx context.Context, id string, position int, symbol game.Symbol) (*game.Game, error) {
	ctx, span := tracer.Start(ctx, "MatchRepository.ApplyMove", trace.WithAttributes(
		attribute.String("match.id", id),
		attribute.Int("move.position", position),
	))
	defer span.End()

	key := matchKey(id)
	var result *game.Game

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return apperror.ErrGameNotFound
		}

		g, err := decodeMatch(data)
		if err != nil {
			return err
		}
		if err := g.Move(position, symbol); err != nil {
			return err
		}

		boardJSON, err := json.Marshal(g.Board)
		if err != nil {
			return fmt.Errorf("failed to marshal updated board: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldBoard, boardJSON,
				fieldTurn, string(g.Turn),
				fieldWinner, string(g.Winner),
			)
			return nil
		})
		if err != nil {
			return err
		}
		result = g
		return nil
	}

	if err := r.rdb.Watch(ctx, txf, key); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

func decodeMatch(data map[string]string) (*game.Game, error) {
	g := game.NewGame()
	if err := json.Unmarshal([]byte(data[fieldBoard]), &g.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	g.Turn = game.Symbol(data[fieldTurn])
	g.Winner = game.Symbol(data[fieldWinner])
	if name, ok := data[fieldPlayerX]; ok {
		g.Players[game.PlayerX] = name
	}
	if name, ok := data[fieldPlayerO]; ok {
		g.Players[game.PlayerO] = name
	}
	return g, nil
}
