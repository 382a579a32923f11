package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-settlement/config"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const duplicateWindow = 2 * time.Minute

// Connect dials NATS and keeps reconnecting for the life of the process.
func Connect(cfg config.NATSConfig, log zerolog.Logger) (*natsgo.Conn, error) {
	nc, err := natsgo.Connect(cfg.URL,
		natsgo.Name("wallet-settlement"),
		natsgo.MaxReconnects(-1),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}

	log.Info().
		Str("url", nc.ConnectedUrl()).
		Str("stream", cfg.Stream).
		Msg("NATS connection established")

	return nc, nil
}

// StreamManager is the subset of nats.JetStreamContext used to provision streams.
type StreamManager interface {
	StreamInfo(stream string, opts ...natsgo.JSOpt) (*natsgo.StreamInfo, error)
	AddStream(cfg *natsgo.StreamConfig, opts ...natsgo.JSOpt) (*natsgo.StreamInfo, error)
}

// EnsureStream creates the settlement stream over the request, response and
// ack subjects unless it already exists.
func EnsureStream(ctx context.Context, js StreamManager, cfg config.NATSConfig) error {
	_, err := js.StreamInfo(cfg.Stream, natsgo.Context(ctx))
	if err == nil {
		return nil
	}
	if !errors.Is(err, natsgo.ErrStreamNotFound) {
		return fmt.Errorf("looking up stream %s: %w", cfg.Stream, err)
	}

	_, err = js.AddStream(&natsgo.StreamConfig{
		Name:       cfg.Stream,
		Subjects:   streamSubjects(cfg),
		Storage:    natsgo.FileStorage,
		Retention:  natsgo.LimitsPolicy,
		Duplicates: duplicateWindow,
	}, natsgo.Context(ctx))
	if err != nil {
		return fmt.Errorf("creating stream %s: %w", cfg.Stream, err)
	}
	return nil
}

func streamSubjects(cfg config.NATSConfig) []string {
	var subjects []string
	for _, s := range []string{cfg.RequestSubject, cfg.ResponseSubject, cfg.AckSubject} {
		if s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}
