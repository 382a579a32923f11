package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-settlement/config"
	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/pkg/apperror"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const defaultFetchBackoff = time.Second

// Delivery is one message pulled from the response stream.
type Delivery interface {
	Data() []byte
	Ack() error
	Nak() error
	Term() error
}

// Fetcher pulls batches of deliveries. An empty batch with a nil error means
// nothing arrived within the fetch window.
type Fetcher interface {
	Fetch(ctx context.Context, batch int) ([]Delivery, error)
}

// PullFetcher fetches from a durable JetStream pull consumer.
type PullFetcher struct {
	sub  *natsgo.Subscription
	wait time.Duration
}

// NewPullFetcher binds the durable pull consumer on the response subject.
func NewPullFetcher(js natsgo.JetStreamContext, cfg config.NATSConfig) (*PullFetcher, error) {
	sub, err := js.PullSubscribe(cfg.ResponseSubject, cfg.Durable,
		natsgo.BindStream(cfg.Stream),
		natsgo.AckExplicit(),
	)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", cfg.ResponseSubject, err)
	}
	wait := cfg.FetchWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &PullFetcher{sub: sub, wait: wait}, nil
}

func (f *PullFetcher) Fetch(ctx context.Context, batch int) ([]Delivery, error) {
	fctx, cancel := context.WithTimeout(ctx, f.wait)
	defer cancel()

	msgs, err := f.sub.Fetch(batch, natsgo.Context(fctx))
	if err != nil {
		if errors.Is(err, natsgo.ErrTimeout) || (errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]Delivery, len(msgs))
	for i, m := range msgs {
		out[i] = msgDelivery{m: m}
	}
	return out, nil
}

// Drain stops the subscription after in-flight messages are processed.
func (f *PullFetcher) Drain() error {
	return f.sub.Drain()
}

type msgDelivery struct {
	m *natsgo.Msg
}

func (d msgDelivery) Data() []byte { return d.m.Data }
func (d msgDelivery) Ack() error   { return d.m.Ack() }
func (d msgDelivery) Nak() error   { return d.m.Nak() }
func (d msgDelivery) Term() error  { return d.m.Term() }

// Consumer applies settlement verdicts from the response stream and publishes
// the outcome to the ack subject. Delivery is at least once; the engine's
// terminal-state guard makes redelivery harmless.
type Consumer struct {
	fetcher    Fetcher
	txSvc      ports.TransactionService
	pub        Publisher
	ackSubject string
	batch      int
	backoff    time.Duration
	log        zerolog.Logger
}

// NewConsumer creates the response consumer. pub may be nil to skip acks.
func NewConsumer(
	fetcher Fetcher,
	txSvc ports.TransactionService,
	pub Publisher,
	ackSubject string,
	batch int,
	log zerolog.Logger,
) *Consumer {
	if batch <= 0 {
		batch = 1
	}
	return &Consumer{
		fetcher:    fetcher,
		txSvc:      txSvc,
		pub:        pub,
		ackSubject: ackSubject,
		batch:      batch,
		backoff:    defaultFetchBackoff,
		log:        log,
	}
}

// Run pulls and handles deliveries until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info().Int("batch", c.batch).Msg("settlement response consumer started")

	for {
		if ctx.Err() != nil {
			c.log.Info().Msg("settlement response consumer stopped")
			return nil
		}

		deliveries, err := c.fetcher.Fetch(ctx, c.batch)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.log.Error().Err(err).Msg("fetching settlement responses")
			select {
			case <-ctx.Done():
			case <-time.After(c.backoff):
			}
			continue
		}

		for _, d := range deliveries {
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d Delivery) {
	var msg domain.SettlementMessage
	if err := json.Unmarshal(d.Data(), &msg); err != nil || msg.ID == 0 {
		c.log.Error().Err(err).Bytes("payload", d.Data()).Msg("discarding malformed settlement response")
		c.settle(d.Term, 0, "term")
		return
	}

	result, err := c.txSvc.ApplyExternalUpdate(ctx, msg.ID, msg.Status)
	if err != nil {
		switch apperror.KindOf(err) {
		case apperror.KindConflict:
			c.log.Info().Int64("tx_id", msg.ID).Str("status", string(msg.Status)).Msg("duplicate settlement response")
			c.settle(d.Ack, msg.ID, "ack")
		case apperror.KindNotFound, apperror.KindInvalidRequest:
			c.log.Warn().Err(err).Int64("tx_id", msg.ID).Str("status", string(msg.Status)).Msg("rejecting settlement response")
			c.settle(d.Term, msg.ID, "term")
		default:
			c.log.Error().Err(err).Int64("tx_id", msg.ID).Msg("settlement response failed, requesting redelivery")
			c.settle(d.Nak, msg.ID, "nak")
		}
		return
	}

	c.publishAck(ctx, result)
	c.settle(d.Ack, msg.ID, "ack")
}

func (c *Consumer) publishAck(ctx context.Context, result *domain.SettlementResult) {
	if c.pub == nil || c.ackSubject == "" {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.log.Error().Err(err).Int64("tx_id", result.TransactionID).Msg("marshal settlement ack")
		return
	}
	ctx, cancel := withPublishDeadline(ctx)
	defer cancel()
	if _, err := c.pub.Publish(c.ackSubject, data, natsgo.Context(ctx)); err != nil {
		c.log.Warn().Err(err).Int64("tx_id", result.TransactionID).Msg("publishing settlement ack")
	}
}

func (c *Consumer) settle(fn func() error, id int64, action string) {
	if err := fn(); err != nil {
		c.log.Warn().Err(err).Int64("tx_id", id).Str("action", action).Msg("acknowledging delivery")
	}
}
