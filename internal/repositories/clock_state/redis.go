package clockstate

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/campus-api/internal/redis"
)

const (
	// Key pattern: clock_state:{world_id}
	keyPrefix = "clock_state:"

	errWorldIDEmpty = "world ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for clock state
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Save overwrites the state for a world
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.WorldID == "" {
		return nil, errors.InvalidArgument(errWorldIDEmpty)
	}

	record := &Record{
		WorldID: input.WorldID,
		State:   input.State,
		SavedAt: r.clock.Now(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal clock state")
	}

	if err := r.client.Set(ctx, buildKey(input.WorldID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store clock state in Redis")
	}

	slog.DebugContext(ctx, "saved clock state",
		"world_id", input.WorldID,
		"day_index", input.State.DayIndex,
		"seconds", input.State.Seconds)

	return &SaveOutput{Record: record}, nil
}

// Get returns the saved state
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.WorldID == "" {
		return nil, errors.InvalidArgument(errWorldIDEmpty)
	}

	data, err := r.client.Get(ctx, buildKey(input.WorldID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no clock state for world %s", input.WorldID)
		}
		return nil, errors.Wrapf(err, "failed to get clock state from Redis")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal clock state")
	}

	return &GetOutput{Record: &record}, nil
}

// Delete removes the saved state. Deleting a missing state is not an error.
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.WorldID == "" {
		return nil, errors.InvalidArgument(errWorldIDEmpty)
	}

	if err := r.client.Del(ctx, buildKey(input.WorldID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete clock state from Redis")
	}

	return &DeleteOutput{}, nil
}

func buildKey(worldID string) string {
	return keyPrefix + worldID
}
