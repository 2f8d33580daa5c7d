package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const drainTimeout = 5 * time.Second

// natsPublisher publishes events on core NATS subjects.
type natsPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATS connects to url and returns a Publisher backed by that connection.
func NewNATS(url string, logger *slog.Logger) (Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("rosapi"),
		nats.Timeout(5*time.Second),
		nats.DrainTimeout(drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats_disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats_reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &natsPublisher{conn: conn, logger: logger}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, subject string, evt ROSEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(evt)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.DebugContext(ctx, "event_published", "subject", subject, "ros_id", evt.ROSID, "size", len(data))
	return nil
}

// Close drains pending messages before closing the connection.
func (p *natsPublisher) Close() error {
	return p.conn.Drain()
}
