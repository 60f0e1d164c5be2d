package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type clientConn struct {
	rawConn *websocket.Conn
	mu      sync.Mutex

	topicsMu sync.Mutex
	topics   map[string]struct{}

	closeOnce sync.Once
}

func newClientConn(raw *websocket.Conn) *clientConn {
	return &clientConn{rawConn: raw, topics: make(map[string]struct{})}
}

func (c *clientConn) write(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(mt, data) // Text/Binary only
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}

// trackTopic reports whether the topic was newly added for this connection.
func (c *clientConn) trackTopic(topic string) bool {
	c.topicsMu.Lock()
	defer c.topicsMu.Unlock()
	if _, ok := c.topics[topic]; ok {
		return false
	}
	c.topics[topic] = struct{}{}
	return true
}

func (c *clientConn) untrackTopic(topic string) bool {
	c.topicsMu.Lock()
	defer c.topicsMu.Unlock()
	if _, ok := c.topics[topic]; !ok {
		return false
	}
	delete(c.topics, topic)
	return true
}

// drainTopics empties the topic set and returns what it held.
func (c *clientConn) drainTopics() []string {
	c.topicsMu.Lock()
	defer c.topicsMu.Unlock()
	out := make([]string, 0, len(c.topics))
	for t := range c.topics {
		out = append(out, t)
	}
	c.topics = make(map[string]struct{})
	return out
}

func (c *clientConn) close() {
	c.closeOnce.Do(func() { _ = c.rawConn.Close() })
}
