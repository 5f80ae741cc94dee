package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	l          *slog.Logger
	w          *kafka.Writer
	auditTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:          l,
		w:          w,
		auditTopic: topic,
	}
}

type FavoriteToggledEvent struct {
	Type      string    `json:"type"`
	Email     string    `json:"email"`
	AppID     string    `json:"app_id"`
	Favorited bool      `json:"favorited"`
	At        time.Time `json:"at"`
}

// FavoriteToggled publishes an audit event for a favorite toggle. Delivery
// is async and best-effort: a broker failure never affects the toggle.
func (p *Producer) FavoriteToggled(ctx context.Context, email, appID string, favorited bool) {
	event := FavoriteToggledEvent{
		Type:      "favorite_toggled",
		Email:     email,
		AppID:     appID,
		Favorited: favorited,
		At:        time.Now().UTC(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%s", email, appID)),
		Value: b,
		Topic: p.auditTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (il *infoLogger) Printf(format string, args ...any) {
	il.l.Info(fmt.Sprintf(format, args...))
}

type errorLogger struct {
	l *slog.Logger
}

func (el *errorLogger) Printf(format string, args ...any) {
	el.l.Error(fmt.Sprintf(format, args...))
}
