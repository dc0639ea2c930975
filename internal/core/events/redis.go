package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultChannel = "invoicevista:events"

type wireEvent struct {
	Origin string `json:"origin"`
	Topic  Topic  `json:"topic"`
}

// RedisBridge mirrors bus signals across instances through Redis pub/sub
type RedisBridge struct {
	bus     *Bus
	client  *redis.Client
	channel string
	origin  string
}

// NewRedisBridge hooks the bus so local publishes are forwarded to Redis
func NewRedisBridge(bus *Bus, client *redis.Client, channel string) *RedisBridge {
	if channel == "" {
		channel = defaultChannel
	}
	r := &RedisBridge{
		bus:     bus,
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
	}
	bus.OnPublish(r.forward)
	return r
}

func (r *RedisBridge) forward(ev Event) {
	payload, err := json.Marshal(wireEvent{Origin: r.origin, Topic: ev.Topic})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("topic", string(ev.Topic)).Msg("failed to forward event to redis")
	}
}

// Run relays remote signals into the local bus until ctx is done
func (r *RedisBridge) Run(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	log.Info().Str("channel", r.channel).Str("origin", r.origin).Msg("redis event bridge started")

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var ev wireEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn().Err(err).Msg("ignoring malformed event from redis")
				continue
			}
			if ev.Origin == r.origin {
				continue
			}
			r.bus.PublishRemote(ev.Topic)
		}
	}
}
