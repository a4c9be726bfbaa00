package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/logger"
)

// Storage aggregates every storage backend the service talks to, behind
// the per-backend interfaces. Members left nil were not configured;
// callers check before use.
type Storage struct {
	MySQL    Database
	MinIO    ObjectStorage
	Redis    Cache
	RabbitMQ MessageQueue
}

// NewStorage initializes each configured backend. A backend that fails to
// initialize logs a warning and stays nil; only total failure is an error.
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	s := &Storage{}
	var initErrors []string

	if cfg.MySQL.Host != "" {
		mysql, err := NewMySQL(&cfg.MySQL)
		if err != nil {
			logger.Warn().Err(err).Msg("mysql initialization failed")
			initErrors = append(initErrors, fmt.Sprintf("mysql: %v", err))
		} else {
			s.MySQL = mysql
		}
	}

	if cfg.MinIO.Endpoint != "" {
		minio, err := NewMinIO(&cfg.MinIO)
		if err != nil {
			logger.Warn().Err(err).Msg("minio initialization failed")
			initErrors = append(initErrors, fmt.Sprintf("minio: %v", err))
		} else {
			s.MinIO = minio
		}
	}

	if cfg.Redis.Address != "" {
		redis, err := NewRedis(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis initialization failed")
			initErrors = append(initErrors, fmt.Sprintf("redis: %v", err))
		} else {
			s.Redis = redis
		}
	}

	if cfg.RabbitMQ.URL != "" {
		rabbit, err := NewRabbitMQ(&cfg.RabbitMQ)
		if err != nil {
			logger.Warn().Err(err).Msg("rabbitmq initialization failed")
			initErrors = append(initErrors, fmt.Sprintf("rabbitmq: %v", err))
		} else {
			s.RabbitMQ = rabbit
		}
	}

	if s.MySQL == nil && s.MinIO == nil && s.Redis == nil && s.RabbitMQ == nil {
		return nil, fmt.Errorf("all storage backends failed to initialize: %s", strings.Join(initErrors, "; "))
	}
	if len(initErrors) > 0 {
		logger.Warn().Strs("failures", initErrors).Msg("some storage backends unavailable")
	}
	return s, nil
}

// Close shuts down every initialized backend.
func (s *Storage) Close() {
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Error().Err(err).Msg("closing rabbitmq failed")
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Error().Err(err).Msg("closing mysql failed")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Error().Err(err).Msg("closing redis failed")
		}
	}
	// The MinIO client holds no long-lived connection that needs closing.
}
