package ws

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePubSub struct {
	confirm chan struct{}
	msgs    chan *redis.Message
	closed  atomic.Bool
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{
		confirm: make(chan struct{}),
		msgs:    make(chan *redis.Message, 8),
	}
}

func (p *fakePubSub) Receive(ctx context.Context) (interface{}, error) {
	select {
	case <-p.confirm:
		return &redis.Subscription{Kind: "subscribe"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *fakePubSub) Channel(...redis.ChannelOption) <-chan *redis.Message { return p.msgs }

func (p *fakePubSub) Close() error {
	p.closed.Store(true)
	return nil
}

type delivered struct {
	topic   string
	payload string
}

type collectingDeliverer struct {
	mu  sync.Mutex
	got []delivered
}

func (d *collectingDeliverer) Deliver(topic string, payload []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.got = append(d.got, delivered{topic: topic, payload: string(payload)})
}

func (d *collectingDeliverer) all() []delivered {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]delivered(nil), d.got...)
}

// newTestManager wires a manager to fake pub/subs; the returned channel
// yields every channel name passed to SUBSCRIBE.
func newTestManager(ps *fakePubSub) (*subscriptionManager, *collectingDeliverer, <-chan string) {
	out := &collectingDeliverer{}
	started := make(chan string, 4)
	sm := &subscriptionManager{
		subscribe: func(_ context.Context, channel string) pubSub {
			started <- channel
			return ps
		},
		hub:  out,
		subs: make(map[string]*subEntry),
	}
	return sm, out, started
}

func TestSubscriptionManager_FanOut(t *testing.T) {
	ps := newFakePubSub()
	close(ps.confirm)
	sm, out, started := newTestManager(ps)

	sm.Subscribe("/topic/public")
	assert.Equal(t, "chat:/topic/public", <-started)

	ps.msgs <- &redis.Message{Channel: "auction:42", Payload: "ignored"}
	ps.msgs <- &redis.Message{Channel: "chat:/topic/public", Payload: `{"type":"CHAT"}`}

	require.Eventually(t, func() bool { return len(out.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, delivered{topic: "/topic/public", payload: `{"type":"CHAT"}`}, out.all()[0])
}

func TestSubscriptionManager_RefCount(t *testing.T) {
	ps := newFakePubSub()
	close(ps.confirm)
	sm, _, started := newTestManager(ps)

	sm.Subscribe("/topic/room/r1")
	sm.Subscribe("/topic/room/r1")
	<-started
	assert.Len(t, started, 0, "one SUBSCRIBE per topic")

	sm.Unsubscribe("/topic/room/r1")
	time.Sleep(20 * time.Millisecond)
	assert.False(t, ps.closed.Load(), "still one listener")

	sm.Unsubscribe("/topic/room/r1")
	assert.Eventually(t, ps.closed.Load, time.Second, 5*time.Millisecond)

	// unknown topics are ignored
	sm.Unsubscribe("/topic/room/r1")
}

func TestSubscriptionManager_LaterSubscriberWaitsForConfirmation(t *testing.T) {
	ps := newFakePubSub()
	sm, _, started := newTestManager(ps)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		sm.Subscribe("/topic/public")
	}()
	<-started

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		sm.Subscribe("/topic/public")
	}()

	select {
	case <-secondDone:
		t.Fatal("second subscriber returned before the channel was confirmed")
	case <-time.After(50 * time.Millisecond):
	}

	close(ps.confirm)
	for _, done := range []chan struct{}{firstDone, secondDone} {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("subscriber still waiting after confirmation")
		}
	}
}
