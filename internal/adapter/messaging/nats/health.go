package nats

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Flusher is satisfied by *nats.Conn; a flush is a PING/PONG round trip.
type Flusher interface {
	FlushWithContext(ctx context.Context) error
}

// HealthCheck implements ports.HealthChecker for NATS.
type HealthCheck struct {
	conn Flusher
}

// NewHealthCheck creates a NATS health checker.
func NewHealthCheck(conn Flusher) *HealthCheck {
	return &HealthCheck{conn: conn}
}

// Ping checks NATS connectivity.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pingTimeout)
		defer cancel()
	}
	return h.conn.FlushWithContext(ctx)
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "nats"
}
