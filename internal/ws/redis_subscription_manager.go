package ws

import (
	"context"
	"sync"
	"time"

	"github.com/kshitijx07/gemaverse-v2/internal/broadcast"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const subscribeConfirmWait = 2 * time.Second

// topicSubscriber follows the upstream feed of a topic while local
// connections listen on it.
type topicSubscriber interface {
	Subscribe(topic string)
	Unsubscribe(topic string)
}

// nopSubscriber is used when messages are delivered in-process only.
type nopSubscriber struct{}

func (nopSubscriber) Subscribe(string)   {}
func (nopSubscriber) Unsubscribe(string) {}

// pubSub is the part of *redis.PubSub the fan-out loop reads from.
type pubSub interface {
	Receive(ctx context.Context) (interface{}, error)
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

// subscriptionManager guarantees that we have **exactly one** Redis
// subscription per "chat:<topic>" channel ― no matter how many websocket
// clients listen on the same topic.
type subscriptionManager struct {
	subscribe func(ctx context.Context, channel string) pubSub
	hub       broadcast.Deliverer
	mu        sync.Mutex
	subs      map[string]*subEntry // topic ➜ subscription data
}

type subEntry struct {
	refCnt int
	cancel context.CancelFunc
	ready  chan struct{} // closed once SUBSCRIBE is confirmed (or timed out)
}

func newSubscriptionManager(rdb *redis.Client, hub broadcast.Deliverer) *subscriptionManager {
	return &subscriptionManager{
		subscribe: func(ctx context.Context, channel string) pubSub {
			return rdb.Subscribe(ctx, channel)
		},
		hub:  hub,
		subs: make(map[string]*subEntry),
	}
}

// Subscribe ensures that the process is subscribed to the topic's channel;
// subsequent calls for the same topic only increment the ref‑counter.
// Every caller returns only after the channel is confirmed, so a publish
// right after a join is not lost.
func (sm *subscriptionManager) Subscribe(topic string) {
	sm.mu.Lock()
	if e, ok := sm.subs[topic]; ok {
		e.refCnt++
		ready := e.ready
		sm.mu.Unlock()

		select {
		case <-ready:
		case <-time.After(subscribeConfirmWait):
		}
		return
	}

	// First consumer → create Redis SUB and fan‑out loop.
	ctx, cancel := context.WithCancel(context.Background())
	ps := sm.subscribe(ctx, broadcast.ChannelFor(topic))

	e := &subEntry{refCnt: 1, cancel: cancel, ready: make(chan struct{})}
	sm.subs[topic] = e
	sm.mu.Unlock()

	rctx, rcancel := context.WithTimeout(ctx, subscribeConfirmWait)
	if _, err := ps.Receive(rctx); err != nil {
		zap.L().Warn("ws.redis_subscribe", zap.String("topic", topic), zap.Error(err))
	}
	rcancel()
	close(e.ready)

	go sm.fanOut(ctx, ps)
}

// fanOut hands every message on ps to the local hub until ctx is cancelled
// or the Redis connection goes away.
func (sm *subscriptionManager) fanOut(ctx context.Context, ps pubSub) {
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok { // Redis connection closed.
				return
			}
			t, valid := broadcast.TopicFromChannel(m.Channel)
			if !valid {
				continue
			}
			sm.hub.Deliver(t, []byte(m.Payload))
		}
	}
}

// Unsubscribe decrements the ref‑counter and tears the Redis SUB down when the
// last websocket client leaves the topic.
func (sm *subscriptionManager) Unsubscribe(topic string) {
	sm.mu.Lock()
	e, ok := sm.subs[topic]
	if !ok {
		sm.mu.Unlock()
		return
	}
	e.refCnt--
	if e.refCnt > 0 {
		sm.mu.Unlock()
		return
	}
	delete(sm.subs, topic)
	sm.mu.Unlock()

	// Outside the lock → stop the fan‑out goroutine.
	e.cancel()
}
