package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuskit/attendance_backend/internal/config"
	"github.com/campuskit/attendance_backend/internal/models"
)

const redisOpTimeout = 5 * time.Second

// RedisStore keeps one JSON value per student, the closest analog of the
// original key-value storage layout.
type RedisStore struct {
	client *redis.Client
}

func OpenRedis(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       config.IntOr(cfg.RedisDB, 0),
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func recordsKey(studentID string) string {
	return "attendance:" + studentID
}

func (s *RedisStore) Load(studentID string) ([]models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	data, err := s.client.Get(ctx, recordsKey(studentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []models.AttendanceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RedisStore) Save(studentID string, records []models.AttendanceRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Set(ctx, recordsKey(studentID), data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
