package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"towers-verifier-backend/internal/config"
	"towers-verifier-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisService backs the commitment registry and the live verification feed.
// Verification itself is pure and stateless; redis only holds what the
// operator published and what the feed needs to replay.
type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{
		client: client,
		ctx:    ctx,
	}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func (s *RedisService) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// StorePublishedGame registers a new commitment. Publishing is write-once:
// overwriting an existing game would defeat the point of committing.
func (s *RedisService) StorePublishedGame(game *models.PublishedGame) error {
	key := fmt.Sprintf(KeyPublishedGame, game.GameID)

	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal published game: %v", err)
	}

	ok, err := s.client.SetNX(s.ctx, key, data, TTLPublishedGame).Result()
	if err != nil {
		return fmt.Errorf("failed to store published game: %v", err)
	}
	if !ok {
		return fmt.Errorf("game %s already published", game.GameID)
	}

	return nil
}

func (s *RedisService) GetPublishedGame(gameID string) (*models.PublishedGame, error) {
	key := fmt.Sprintf(KeyPublishedGame, gameID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("game %s not found", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published game: %v", err)
	}

	var game models.PublishedGame
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal published game: %v", err)
	}

	return &game, nil
}

// RevealSeed attaches the now-public seed to a published game. A seed can
// only be revealed once and never changed afterwards.
func (s *RedisService) RevealSeed(gameID, seed string) (*models.PublishedGame, error) {
	game, err := s.GetPublishedGame(gameID)
	if err != nil {
		return nil, err
	}

	if game.Seed != "" {
		return nil, fmt.Errorf("seed for game %s already revealed", gameID)
	}

	game.Seed = seed
	game.RevealedAt = time.Now()

	key := fmt.Sprintf(KeyPublishedGame, gameID)
	data, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal published game: %v", err)
	}

	if err := s.client.Set(s.ctx, key, data, redis.KeepTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to save revealed seed: %v", err)
	}

	return game, nil
}

func (s *RedisService) DeletePublishedGame(gameID string) error {
	key := fmt.Sprintf(KeyPublishedGame, gameID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) RecordVerificationEvent(event *models.VerificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal verification event: %v", err)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(s.ctx, KeyRecentVerifications, data)
	pipe.LTrim(s.ctx, KeyRecentVerifications, 0, RecentVerificationsMax-1)
	_, err = pipe.Exec(s.ctx)
	return err
}

func (s *RedisService) RecentVerifications(limit int) ([]models.VerificationEvent, error) {
	if limit <= 0 || limit > RecentVerificationsMax {
		limit = RecentVerificationsMax
	}

	raw, err := s.client.LRange(s.ctx, KeyRecentVerifications, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent verifications: %v", err)
	}

	events := make([]models.VerificationEvent, 0, len(raw))
	for _, item := range raw {
		var event models.VerificationEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// CheckRateLimit is a fixed-window counter keyed by client identity (the
// verify endpoints key it by IP, there are no accounts here).
func (s *RedisService) CheckRateLimit(clientKey, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, clientKey, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *RedisService) ClearRateLimit(clientKey, action string) error {
	key := fmt.Sprintf(KeyRateLimit, clientKey, action)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) ClearRecentVerifications() error {
	return s.client.Del(s.ctx, KeyRecentVerifications).Err()
}
