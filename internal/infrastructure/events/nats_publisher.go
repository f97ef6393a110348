package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// msgPublisher é o subconjunto de *nats.Conn usado pelo publisher
type msgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// NATSPublisher publica eventos de post em <prefixo>.<tipo>, ex: blog.posts.post.created
type NATSPublisher struct {
	conn   msgPublisher
	prefix string
	logger ports.Logger
}

// NewNATSPublisher cria o publisher sobre uma conexão já aberta
func NewNATSPublisher(conn *nats.Conn, prefix string, logger ports.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}
}

func (p *NATSPublisher) Publish(ctx context.Context, event ports.PostEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: p.subject(event.Type),
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set("Content-Type", "application/json")
	msg.Header.Set("Event-Type", event.Type)

	p.logger.Debug("publishing post event", "subject", msg.Subject, "post_id", event.PostID)

	return p.conn.PublishMsg(msg)
}

func (p *NATSPublisher) subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// Connect abre a conexão com o NATS, reconectando indefinidamente
func Connect(url string, logger ports.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("blog-backend"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	logger.Info("nats connected", "url", nc.ConnectedUrl())
	return nc, nil
}
