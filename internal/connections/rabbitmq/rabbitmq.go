package rabbitmq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"orders-api/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// confirmation is the broker's answer to one publish.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type publishFunc func(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)

type Client struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	publish publishFunc
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// URL renders the AMQP URI for cfg; the vhost is path-escaped so "/" becomes "%2F".
func URL(cfg config.RabbitMQConfig) string {
	vhost := cfg.VHost
	if vhost == "" {
		vhost = "/"
	}
	scheme := "amqp"
	if cfg.UseTLS {
		scheme = "amqps"
	}
	return fmt.Sprintf("%s://%s:%s@%s:%d/%s",
		scheme, url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, url.PathEscape(vhost))
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	if cfg.UseTLS {
		conn, err = amqp.DialTLS(URL(cfg), &tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		conn, err = amqp.Dial(URL(cfg))
	}
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	c := &Client{conn: conn, ch: ch}
	c.publish = c.publishDeferred
	return c, nil
}

// DeclareExchange makes sure the durable topic exchange exists.
func (c *Client) DeclareExchange(name string) error {
	return c.ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// Publish sends one message and waits for the broker's ack or nack of that
// message. Each publish carries its own delivery tag, so a confirm that arrives
// after ctx expired is never read by a later publish.
func (c *Client) Publish(ctx context.Context, exchange, key string,
	body []byte, headers amqp.Table, contentType string, persistent bool) error {

	mode := amqp.Transient
	if persistent {
		mode = amqp.Persistent
	}

	conf, err := c.publish(ctx, exchange, key, amqp.Publishing{
		DeliveryMode: mode,
		ContentType:  contentType,
		Timestamp:    time.Now().UTC(),
		MessageId:    fmt.Sprintf("%d", time.Now().UnixNano()),
		Headers:      headers,
		Body:         body,
	})
	if err != nil {
		return err
	}

	ack, err := conf.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ack {
		return errors.New("publish NACK from broker")
	}
	return nil
}

func (c *Client) publishDeferred(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(
		ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("channel is not in confirm mode")
	}
	return dc, nil
}

// Subscribe binds queue to exchange under key and starts an auto-ack consumer.
// An empty queue name asks the broker for an exclusive, server-named queue.
func (c *Client) Subscribe(exchange, queue, key string) (<-chan amqp.Delivery, error) {
	exclusive := queue == ""
	q, err := c.ch.QueueDeclare(queue, !exclusive, exclusive, exclusive, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}
	if err := c.ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind %s to %s: %w", q.Name, exchange, err)
	}
	return c.ch.Consume(q.Name, "", true, exclusive, false, false, nil)
}
