package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/formctl/model"
)

// ============================================================================
// Bus Tests
// ============================================================================

func TestBusEmitInOrder(t *testing.T) {
	bus := New()
	var got []string
	bus.On("e", func(p any) { got = append(got, "a:"+p.(string)) })
	bus.On("e", func(p any) { got = append(got, "b:"+p.(string)) })

	bus.Emit("e", "x")
	bus.Emit("other", "y")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestBusIsSubscribe(t *testing.T) {
	bus := New()
	assert.False(t, bus.IsSubscribe(ControlChange))

	off := bus.On(ControlChange, func(any) {})
	assert.True(t, bus.IsSubscribe(ControlChange))

	off()
	assert.False(t, bus.IsSubscribe(ControlChange))
	off()
}

func TestBusUnsubscribeKeepsOthers(t *testing.T) {
	bus := New()
	calls := 0
	off := bus.On("e", func(any) { calls += 10 })
	bus.On("e", func(any) { calls++ })

	off()
	bus.Emit("e", nil)
	assert.Equal(t, 1, calls)
}

// ============================================================================
// Publisher Tests
// ============================================================================

func TestPublisherForwardsToWatermill(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := pubSub.Subscribe(ctx, "formctl.events")
	require.NoError(t, err)

	bus := New()
	bus.On(ControlChange, NewPublisher(pubSub, "formctl.events", nil).Handler(ControlChange))
	bus.Emit(ControlChange, &model.Control{Type: model.ControlSelect, ConceptID: "k1", Code: "a"})

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, ControlChange, msg.Metadata.Get(MetadataEvent))
		var ctl model.Control
		require.NoError(t, json.Unmarshal(msg.Payload, &ctl))
		assert.Equal(t, model.ControlSelect, ctl.Type)
		assert.Equal(t, "k1", ctl.ConceptID)
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestPublisherNilPayload(t *testing.T) {
	rec := &recordingPublisher{}
	require.NoError(t, NewPublisher(rec, "t", nil).Publish(ControlChange, nil))
	require.Len(t, rec.messages, 1)
	assert.Equal(t, "null", string(rec.messages[0].Payload))
}

func TestPublisherReportsFailure(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("broker down")}
	err := NewPublisher(rec, "t", nil).Publish(ControlChange, nil)
	assert.ErrorContains(t, err, "broker down")

	// Handler swallows the error after logging it.
	NewPublisher(rec, "t", nil).Handler(ControlChange)(nil)
}

type recordingPublisher struct {
	messages []*message.Message
	err      error
}

func (r *recordingPublisher) Publish(topic string, messages ...*message.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, messages...)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }
