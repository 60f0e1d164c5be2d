package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// subscribers is the set of local connections listening on one topic.
type subscribers struct {
	mu    sync.RWMutex
	conns map[*clientConn]struct{}
}

func newSubscribers() *subscribers { return &subscribers{conns: map[*clientConn]struct{}{}} }

func (s *subscribers) add(c *clientConn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *subscribers) remove(c *clientConn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

func (s *subscribers) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

func (s *subscribers) broadcast(msg []byte) {
	// Take a quick snapshot of the current connections
	s.mu.RLock()
	conns := make([]*clientConn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	// Do the I/O outside the lock
	var failed []*clientConn
	for _, c := range conns {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			failed = append(failed, c)
		}
	}
	// a dead peer's reader loop unwinds the rest of its state
	for _, c := range failed {
		s.remove(c)
		c.close()
	}
}
