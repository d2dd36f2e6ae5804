package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/metrics"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/logger"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/model"
)

// jetStream is the slice of nats.JetStreamContext the publisher needs.
type jetStream interface {
	PublishMsg(m *nats.Msg, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher wraps a NATS connection and publishes canonical order events.
type Publisher struct {
	nc      *nats.Conn
	js      jetStream
	service string
}

// New creates a new Publisher with JetStream enabled.
func New(nc *nats.Conn, service string) (*Publisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, js: js, service: service}, nil
}

func newWithJetStream(js jetStream, service string) *Publisher {
	return &Publisher{js: js, service: service}
}

// OrderSubject builds the versioned subject for an order lifecycle event.
func OrderSubject(event string) string {
	return fmt.Sprintf("evt.order.%s.v1.%s", event, hyperliquid.Venue)
}

// PublishOrderEvent emits an order lifecycle event keyed by its status.
func (p *Publisher) PublishOrderEvent(ctx context.Context, evt model.OrderEvent) error {
	subject := OrderSubject(evt.Status)

	payload, err := json.Marshal(evt)
	if err != nil {
		metrics.IncNATSPublishError(subject)
		return err
	}

	env := &model.Envelope{
		ID:            uuid.New(),
		CorrelationID: uuid.New(),
		Topic:         subject,
		EventType:     "order." + evt.Status,
		Version:       "1.0.0",
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}

	return p.publishEnvelope(subject, env)
}

func (p *Publisher) publishEnvelope(subject string, env *model.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		logger.S().Errorw("publisher.marshal_failed",
			"subject", subject,
			"event_type", env.EventType,
			"error", err,
		)
		metrics.IncNATSPublishError(subject)
		return err
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"event_type":     []string{env.EventType},
			"correlation_id": []string{env.CorrelationID.String()},
			"service":        []string{p.service},
			"content_type":   []string{"application/json"},
		},
	}

	_, err = p.js.PublishMsg(msg)
	if err != nil {
		logger.S().Errorw("publisher.publish_failed",
			"subject", subject,
			"event_type", env.EventType,
			"error", err,
		)
		metrics.IncNATSMessage(subject, "error")
		metrics.IncNATSPublishError(subject)
		return err
	}

	logger.S().Infow("publisher.publish_success",
		"subject", subject,
		"event_type", env.EventType,
	)

	metrics.IncNATSMessage(subject, "ok")
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
	}
}
