package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound wraps redis.Nil so callers need not import the driver.
var ErrNotFound = redis.Nil

const (
	fileMD5KeyPrefix     = "cv:md5:"
	extractRateKeyPrefix = "ratelimit:extract:"
)

// Cache is the de-duplication and rate-limiting interface used by
// handlers.
type Cache interface {
	Close() error
	Ping(ctx context.Context) error

	CheckFileMD5(ctx context.Context, studentID, fileMD5 string) (duplicate bool, firstSubmission string, err error)
	RecordFileMD5(ctx context.Context, studentID, fileMD5, submissionUUID string) error

	AllowExtraction(ctx context.Context, studentID string) (bool, error)
}

var _ Cache = (*Redis)(nil)

// Redis provides upload de-duplication and extraction rate limiting.
type Redis struct {
	Client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedis creates the client and verifies connectivity.
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Address, err)
	}

	return &Redis{Client: client, cfg: cfg}, nil
}

// Close closes the client connection.
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// md5ExpireDuration returns how long uploaded-file MD5 records live.
func (r *Redis) md5ExpireDuration() time.Duration {
	days := r.cfg.FileMD5ExpireDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

func fileMD5Key(studentID, fileMD5 string) string {
	return fileMD5KeyPrefix + studentID + ":" + fileMD5
}

// CheckFileMD5 reports whether a file with this MD5 was already uploaded
// for the student. The stored value is the submission UUID of the first
// upload.
func (r *Redis) CheckFileMD5(ctx context.Context, studentID, fileMD5 string) (duplicate bool, firstSubmission string, err error) {
	existing, err := r.Client.Get(ctx, fileMD5Key(studentID, fileMD5)).Result()
	if errors.Is(err, redis.Nil) {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("reading md5 record: %w", err)
	}
	return true, existing, nil
}

// RecordFileMD5 stores the submission UUID under the file's MD5 key.
// Callers record only after the file and its submission row are durably
// stored; a failed upload must not leave a dedupe record behind.
func (r *Redis) RecordFileMD5(ctx context.Context, studentID, fileMD5, submissionUUID string) error {
	key := fileMD5Key(studentID, fileMD5)
	if err := r.Client.SetNX(ctx, key, submissionUUID, r.md5ExpireDuration()).Err(); err != nil {
		return fmt.Errorf("recording file md5: %w", err)
	}
	return nil
}

// AllowExtraction enforces a per-student per-minute rate limit on
// extraction requests using a counter keyed by the current minute.
func (r *Redis) AllowExtraction(ctx context.Context, studentID string) (bool, error) {
	limit := r.cfg.ExtractRatePerMinute
	if limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("%s%s:%d", extractRateKeyPrefix, studentID, time.Now().Unix()/60)
	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incrementing rate counter: %w", err)
	}
	if count == 1 {
		// First hit in this window sets the expiry.
		if err := r.Client.Expire(ctx, key, time.Minute).Err(); err != nil {
			return false, fmt.Errorf("setting rate counter expiry: %w", err)
		}
	}
	return count <= int64(limit), nil
}
