package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher is the subset of *nats.Conn used by NATSNotifier.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes events as JSON on "<prefix>.<kind>" for mail and CRM workers.
type NATSNotifier struct {
	conn   Publisher
	prefix string
}

// NewNATSNotifier wires a notifier over an established connection.
func NewNATSNotifier(conn Publisher, subjectPrefix string) *NATSNotifier {
	return &NATSNotifier{conn: conn, prefix: strings.Trim(subjectPrefix, ".")}
}

// Subject returns the subject an event of the given kind is published on.
func (n *NATSNotifier) Subject(kind string) string {
	if n.prefix == "" {
		return kind
	}
	return n.prefix + "." + kind
}

// Notify marshals and publishes the event. Publish is buffered by the client, so the context
// is only checked before the call.
func (n *NATSNotifier) Notify(ctx context.Context, event Event) error {
	if n.conn == nil {
		return fmt.Errorf("nats connection is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.conn.Publish(n.Subject(event.Kind), data); err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	return nil
}

var _ Notifier = (*NATSNotifier)(nil)

// ConnectNATS dials the NATS server with reconnect handling that reports through the logger.
func ConnectNATS(url string, logger *zap.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := nats.Connect(url,
		nats.Name("bondspire-intake-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return conn, nil
}
