package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"orders-api/internal/common/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSubscriber struct {
	ch      chan amqp.Delivery
	err     error
	gotKey  string
	gotExch string
}

func (s *chanSubscriber) Subscribe(exchange, _, key string) (<-chan amqp.Delivery, error) {
	s.gotExch, s.gotKey = exchange, key
	return s.ch, s.err
}

func logLines(buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if json.Unmarshal([]byte(line), &m) == nil {
			out = append(out, m)
		}
	}
	return out
}

func TestNotify_LogsEventsUntilClosed(t *testing.T) {
	var buf bytes.Buffer
	sub := &chanSubscriber{ch: make(chan amqp.Delivery, 2)}
	ns := NewNotificatorService(sub, "orders_topic", "", logger.NewWithWriter("notificator", &buf))

	sub.ch <- amqp.Delivery{RoutingKey: "order.patched", Body: []byte(`{"type":"order.patched","order_number":200100}`)}
	sub.ch <- amqp.Delivery{RoutingKey: "order.created", Body: []byte(`not json`)}
	close(sub.ch)

	err := ns.Notify(context.Background())
	assert.ErrorIs(t, err, ErrDeliveriesClosed)
	assert.Equal(t, "orders_topic", sub.gotExch)
	assert.Equal(t, "order.#", sub.gotKey)

	lines := logLines(&buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "order_event_received", lines[1]["action"])
	assert.Equal(t, "order.patched", lines[1]["event"])
	assert.Equal(t, float64(200100), lines[1]["order_number"])
	assert.Equal(t, "order_event_undecodable", lines[2]["action"])
}

func TestNotify_StopsOnCancel(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan amqp.Delivery)}
	ns := NewNotificatorService(sub, "orders_topic", "audit", logger.NewWithWriter("notificator", &bytes.Buffer{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, ns.Notify(ctx))
}

func TestNotify_SubscribeFailure(t *testing.T) {
	boom := errors.New("access refused")
	ns := NewNotificatorService(&chanSubscriber{err: boom}, "orders_topic", "", logger.NewWithWriter("notificator", &bytes.Buffer{}))
	assert.ErrorIs(t, ns.Notify(context.Background()), boom)
}
