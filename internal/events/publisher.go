package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InterviewCompletedChannel is the pub/sub channel downstream consumers
// (analytics, notifications) subscribe to.
const InterviewCompletedChannel = "interview_completed"

type InterviewCompletedEvent struct {
	InterviewID   string  `json:"interviewId"`
	UserID        string  `json:"userId"`
	InterviewType string  `json:"interviewType"`
	Score         float64 `json:"score"`
	AnswerCount   int     `json:"answerCount"`
	CompletedAt   string  `json:"completedAt"`
}

// Publisher emits interview lifecycle events.
type Publisher interface {
	PublishInterviewCompleted(ctx context.Context, event InterviewCompletedEvent) error
}

type RedisPublisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisPublisher(redisAddr string, logger *zap.Logger) *RedisPublisher {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	return &RedisPublisher{rdb: rdb, logger: logger}
}

func (p *RedisPublisher) PublishInterviewCompleted(ctx context.Context, event InterviewCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal completion event: %w", err)
	}
	if err := p.rdb.Publish(ctx, InterviewCompletedChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish completion event: %w", err)
	}
	p.logger.Info("Published interview completion event",
		zap.String("interview_id", event.InterviewID),
		zap.Float64("score", event.Score))
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}
