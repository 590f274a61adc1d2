package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/metrics"
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

const (
	venue                = "BTW"
	EventTypeQuotePriced = "quote.priced"
)

// jetStream is the part of nats.JetStreamContext the publisher uses.
type jetStream interface {
	PublishMsg(msg *nats.Msg, opts ...nats.PubOpt) (*nats.PubAck, error)
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
}

// Publisher wraps a NATS connection and provides helpers for publishing canonical events.
type Publisher struct {
	nc      *nats.Conn
	js      jetStream
	subject string
	service string
	logger  *zap.Logger
}

// New creates a Publisher on JetStream. When stream is set it is created if missing, bound
// to subject.
func New(nc *nats.Conn, subject, stream, service string, logger *zap.Logger) (*Publisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	p := &Publisher{nc: nc, js: js, subject: subject, service: service, logger: logger}
	if stream != "" {
		if err := p.ensureStream(stream); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Publisher) ensureStream(name string) error {
	_, err := p.js.StreamInfo(name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("stream info %s: %w", name, err)
	}
	if _, err := p.js.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: []string{p.subject},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	}); err != nil {
		return fmt.Errorf("add stream %s: %w", name, err)
	}
	p.logger.Info("publisher.stream_created", zap.String("stream", name), zap.String("subject", p.subject))
	return nil
}

// PublishEnvelope serializes and publishes a canonical event envelope. An empty subject
// uses the publisher's default.
func (p *Publisher) PublishEnvelope(ctx context.Context, subject string, env *model.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("publisher.marshal_failed",
			zap.String("event_type", env.EventType),
			zap.Error(err))
		metrics.IncError("publisher", "marshal_failed")
		return err
	}

	if subject == "" {
		subject = p.subject
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"event_type":     []string{env.EventType},
			"correlation_id": []string{env.CorrelationID.String()},
			"service":        []string{p.service},
			"venue":          []string{env.Venue},
			"content_type":   []string{"application/json"},
		},
	}
	msg.Header.Set(nats.MsgIdHdr, env.ID.String())

	start := time.Now()
	_, err = p.js.PublishMsg(msg, nats.Context(ctx))
	metrics.ObserveDuration(metrics.NATSMessageLatency, start, subject)

	if err != nil {
		p.logger.Error("publisher.publish_failed",
			zap.String("subject", subject),
			zap.String("event_type", env.EventType),
			zap.Error(err))
		metrics.IncNATSMessage(subject, "error")
		return err
	}

	p.logger.Debug("publisher.publish_success",
		zap.String("subject", subject),
		zap.String("event_type", env.EventType))
	metrics.IncNATSMessage(subject, "ok")
	return nil
}

// PublishQuotePriced emits a quote.priced event carrying the full result.
func (p *Publisher) PublishQuotePriced(ctx context.Context, result *model.QuoteResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		metrics.IncError("publisher", "marshal_failed")
		return err
	}
	env := model.NewEnvelope(venue, p.subject, EventTypeQuotePriced, payload)
	if id, ok := quoteUUID(result.CorrelationID); ok {
		env.CorrelationID = id
	}
	return p.PublishEnvelope(ctx, p.subject, env)
}

// quoteUUID pulls the uuid out of a "<tag> <uuid>" quote reference.
func quoteUUID(ref string) (uuid.UUID, bool) {
	fields := strings.Fields(ref)
	if len(fields) == 0 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(fields[len(fields)-1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Healthy reports whether the underlying connection is up.
func (p *Publisher) Healthy() bool {
	return p.nc != nil && p.nc.IsConnected()
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() {
	if p.nc == nil || p.nc.IsClosed() {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}
