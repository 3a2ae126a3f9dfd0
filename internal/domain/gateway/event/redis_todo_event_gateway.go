package event

import (
	"context"
	"time"

	"todo-api/internal/domain/model"
)

// Publisher is implemented by *redis.Publisher from pkg/redis.
type Publisher interface {
	PublishJSON(ctx context.Context, channel string, message interface{}) error
	BuildChannelName(channel string) string
	Ping(ctx context.Context) error
}

type RedisTodoEventGateway struct {
	publisher Publisher
	channel   string
}

var _ TodoEventGateway = (*RedisTodoEventGateway)(nil)

func NewRedisTodoEventGateway(publisher Publisher, channel string) *RedisTodoEventGateway {
	return &RedisTodoEventGateway{publisher: publisher, channel: channel}
}

// Channel returns the fully qualified channel events are published on
func (gateway *RedisTodoEventGateway) Channel() string {
	return gateway.publisher.BuildChannelName(gateway.channel)
}

func (gateway *RedisTodoEventGateway) Publish(ctx context.Context, event model.TodoEvent) error {
	return gateway.publisher.PublishJSON(ctx, gateway.channel, event)
}

func (gateway *RedisTodoEventGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.publisher.Ping(ctx); err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"message": err.Error(),
				"channel": gateway.Channel(),
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message": string(model.StatusUp),
			"channel": gateway.Channel(),
		},
	}
}
