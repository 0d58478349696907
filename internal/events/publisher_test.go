package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishInterviewCompleted(t *testing.T) {
	mr := miniredis.RunT(t)
	publisher := NewRedisPublisher(mr.Addr(), zap.NewNop())
	defer publisher.Close()

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubsub := sub.Subscribe(ctx, InterviewCompletedChannel)
	defer pubsub.Close()
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	event := InterviewCompletedEvent{
		InterviewID:   "iv-1",
		UserID:        "user-1",
		InterviewType: "tech",
		Score:         7.5,
		AnswerCount:   5,
		CompletedAt:   time.Now().Format(time.RFC3339),
	}
	require.NoError(t, publisher.PublishInterviewCompleted(ctx, event))

	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, InterviewCompletedChannel, msg.Channel)

	var got InterviewCompletedEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	require.Equal(t, event, got)
}

func TestPublishWithoutRedis(t *testing.T) {
	publisher := NewRedisPublisher("127.0.0.1:0", zap.NewNop())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := publisher.PublishInterviewCompleted(ctx, InterviewCompletedEvent{InterviewID: "iv-1"})
	require.Error(t, err)
}
