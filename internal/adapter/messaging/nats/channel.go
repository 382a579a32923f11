package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/pkg/apperror"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// Publisher is the subset of nats.JetStreamContext used to emit events.
type Publisher interface {
	Publish(subj string, data []byte, opts ...natsgo.PubOpt) (*natsgo.PubAck, error)
}

// Channel implements ports.SettlementChannel by publishing settlement
// requests onto a JetStream subject. Verdicts come back through Consumer.
type Channel struct {
	pub     Publisher
	subject string
	log     zerolog.Logger
}

// NewChannel creates the queue settlement channel.
func NewChannel(pub Publisher, subject string, log zerolog.Logger) *Channel {
	return &Channel{pub: pub, subject: subject, log: log}
}

func (c *Channel) Name() string { return "queue" }

func (c *Channel) Async() bool { return true }

// RequestConfirmation publishes msg and waits for the stream to persist it.
// It never returns a verdict.
func (c *Channel) RequestConfirmation(ctx context.Context, msg domain.SettlementMessage) (*domain.GatewayVerdict, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal settlement message: %w", err))
	}

	ctx, cancel := withPublishDeadline(ctx)
	defer cancel()

	ack, err := c.pub.Publish(c.subject, data, natsgo.Context(ctx), natsgo.MsgId(messageID(msg)))
	if err != nil {
		c.log.Warn().Err(err).
			Int64("tx_id", msg.ID).
			Str("subject", c.subject).
			Msg("queue: publish failed")
		return nil, apperror.ErrBadGateway(fmt.Errorf("publish %s: %w", c.subject, err))
	}

	c.log.Debug().
		Int64("tx_id", msg.ID).
		Str("status", string(msg.Status)).
		Str("stream", ack.Stream).
		Uint64("seq", ack.Sequence).
		Bool("duplicate", ack.Duplicate).
		Msg("queue: settlement event published")

	return nil, nil
}

// messageID lets the stream drop a republish of the same event.
func messageID(msg domain.SettlementMessage) string {
	return fmt.Sprintf("tx-%d-%s", msg.ID, msg.Status)
}

func withPublishDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, publishTimeout)
}
