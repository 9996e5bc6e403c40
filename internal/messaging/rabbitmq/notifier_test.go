package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

type fakeChannel struct {
	exchanges  map[string]string
	published  []amqp.Publishing
	publishTo  []string
	publishErr error
	closed     bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	if c.exchanges == nil {
		c.exchanges = map[string]string{}
	}
	c.exchanges[name] = kind
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, _ string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.publishTo = append(c.publishTo, exchange)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConnection struct {
	ch         *fakeChannel
	channelErr error
}

func (c *fakeConnection) Channel() (Channel, error) {
	if c.channelErr != nil {
		return nil, c.channelErr
	}
	return c.ch, nil
}

func (c *fakeConnection) Close() error { return nil }

func TestNotifier_PublishesToFanoutExchange(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	n := NewNotifier(&fakeConnection{ch: ch}, "")

	err := n.Notify(context.Background(), domain.UrgencyReport{Overdue: 1, DueTomorrow: 2, TotalPending: 5})
	require.NoError(t, err)

	assert.Equal(t, "fanout", ch.exchanges[DefaultExchange])
	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{DefaultExchange}, ch.publishTo)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.True(t, ch.closed, "channel must be closed after publish")

	var msg UrgencyMessage
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &msg))
	assert.Equal(t, 1, msg.Overdue)
	assert.Equal(t, 2, msg.DueTomorrow)
	assert.Equal(t, 5, msg.TotalPending)
	assert.Equal(t, ch.published[0].MessageId, msg.MessageID)
	assert.Contains(t, msg.Summary, "1 overdue order(s)")
}

func TestNotifier_Errors(t *testing.T) {
	t.Parallel()

	n := NewNotifier(&fakeConnection{channelErr: errors.New("closed")}, "alerts")
	assert.Error(t, n.Notify(context.Background(), domain.UrgencyReport{Overdue: 1}))

	ch := &fakeChannel{publishErr: errors.New("blocked")}
	n = NewNotifier(&fakeConnection{ch: ch}, "alerts")
	err := n.Notify(context.Background(), domain.UrgencyReport{Overdue: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
	assert.Equal(t, "fanout", ch.exchanges["alerts"])
}
