package attendance

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/errors"
	redisclient "github.com/KirkDiggler/campus-api/internal/redis"
)

const (
	// Key pattern: attendance:{student_id}
	keyPrefix = "attendance:"

	errStudentIDEmpty = "student ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for attendance records
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Append pushes records onto the student's list
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.StudentID == "" {
		return nil, errors.InvalidArgument(errStudentIDEmpty)
	}

	key := buildKey(input.StudentID)
	if len(input.Records) == 0 {
		total, err := r.client.LLen(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to count attendance records")
		}
		return &AppendOutput{Total: total}, nil
	}

	values, err := encode(input.Records)
	if err != nil {
		return nil, err
	}

	total, err := r.client.RPush(ctx, key, values...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to append attendance records")
	}

	return &AppendOutput{Total: total}, nil
}

// List reads back every record
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.StudentID == "" {
		return nil, errors.InvalidArgument(errStudentIDEmpty)
	}

	raw, err := r.client.LRange(ctx, buildKey(input.StudentID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list attendance records")
	}

	records := make([]campus.AttendanceRecord, 0, len(raw))
	for i, item := range raw {
		var rec campus.AttendanceRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
				fmt.Sprintf("failed to unmarshal attendance record %d", i))
		}
		records = append(records, rec)
	}

	return &ListOutput{Records: records}, nil
}

// Replace deletes and rewrites the list in one transaction
func (r *redisRepository) Replace(ctx context.Context, input ReplaceInput) (*ReplaceOutput, error) {
	if input.StudentID == "" {
		return nil, errors.InvalidArgument(errStudentIDEmpty)
	}

	values, err := encode(input.Records)
	if err != nil {
		return nil, err
	}

	key := buildKey(input.StudentID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to replace attendance records")
	}

	return &ReplaceOutput{}, nil
}

func encode(records []campus.AttendanceRecord) ([]interface{}, error) {
	values := make([]interface{}, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal attendance record %s", rec.ID)
		}
		values = append(values, data)
	}
	return values, nil
}

func buildKey(studentID string) string {
	return keyPrefix + studentID
}
