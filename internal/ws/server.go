package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"
	"github.com/kshitijx07/gemaverse-v2/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 12 * time.Second
	pingPeriod     = 3 * time.Second // must be < pongWait
	maxMessageSize = 4096

	dispatchTimeout   = 1900 * time.Millisecond
	disconnectTimeout = 5 * time.Second
)

// ConnContext is the per-connection state handed to every event handler.
type ConnContext struct {
	SessionID session.ID
	Server    *WsServer

	conn *clientConn
	done chan struct{}
}

type WsServer struct {
	hub      *Hub
	subs     topicSubscriber
	router   *Router
	chatSvc  chat.IChatService
	upgrader websocket.Upgrader
}

// NewWsServer wires the websocket endpoint. With a nil Redis client topics
// are fed only by in-process broadcasts.
func NewWsServer(h *Hub, rdc *redis.Client, chatSvc chat.IChatService) *WsServer {
	var subs topicSubscriber = nopSubscriber{}
	if rdc != nil {
		subs = newSubscriptionManager(rdc, h)
	}

	srv := &WsServer{
		hub:     h,
		subs:    subs,
		router:  NewRouter(),
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true }, // dev‑only
		},
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry‑point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxMessageSize)

	cc := &ConnContext{
		SessionID: session.NewID(),
		Server:    s,
		conn:      newClientConn(rawConn),
		done:      make(chan struct{}),
	}
	zap.L().Debug("ws.connected", zap.String("session", string(cc.SessionID)))

	go s.reader(cc)
	go s.pinger(cc)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	// 🔹 chat/subscribe -------------------------------------------------------
	Register(
		s.router,
		EventSubscribe,
		func(ctx context.Context, cc *ConnContext, req RoomRequest) (SubscribeAck, error) {
			topic, err := s.chatSvc.Topic(req.RoomID)
			if err != nil {
				return SubscribeAck{}, err
			}
			s.subscribe(cc, topic)
			return SubscribeAck{Topic: topic}, nil
		},
	)

	// 🔹 chat/unsubscribe -----------------------------------------------------
	Register(
		s.router,
		EventUnsubscribe,
		func(ctx context.Context, cc *ConnContext, req RoomRequest) (AckBody, error) {
			s.unsubscribe(cc, chat.TopicFor(req.RoomID))
			return AckBody{}, nil
		},
	)

	// 🔹 chat/addUser ---------------------------------------------------------
	Register(
		s.router,
		EventAddUser,
		func(ctx context.Context, cc *ConnContext, req AddUserRequest) (SubscribeAck, error) {
			topic, err := s.chatSvc.Topic(req.RoomID)
			if err != nil {
				return SubscribeAck{}, err
			}
			added := s.subscribe(cc, topic)
			err = s.chatSvc.AnnounceJoin(ctx, cc.SessionID, req.RoomID, chat.Message{
				Sender:  req.Sender,
				Content: req.Content,
			})
			if err != nil {
				if added {
					s.unsubscribe(cc, topic)
				}
				return SubscribeAck{}, err
			}
			return SubscribeAck{Topic: topic}, nil
		},
	)

	// 🔹 chat/sendMessage -----------------------------------------------------
	Register(
		s.router,
		EventSendMessage,
		func(ctx context.Context, cc *ConnContext, req SendMessageRequest) (AckBody, error) {
			if req.Type == "" {
				req.Type = chat.MessageChat
			}
			err := s.chatSvc.SendMessage(ctx, req.RoomID, chat.Message{
				Type:    req.Type,
				Sender:  req.Sender,
				Content: req.Content,
			})
			return AckBody{}, err
		},
	)

	// 🔹 chat/leave: same path as a dropped connection, minus the close ------
	Register(
		s.router,
		EventLeave,
		func(ctx context.Context, cc *ConnContext, _ LeaveRequest) (LeaveAck, error) {
			p, left := s.chatSvc.Disconnect(ctx, cc.SessionID)
			if left {
				s.unsubscribe(cc, chat.TopicFor(p.RoomID))
			}
			return LeaveAck{Left: left}, nil
		},
	)
}

// subscribe reports whether the connection was newly added to topic.
func (s *WsServer) subscribe(cc *ConnContext, topic string) bool {
	if !cc.conn.trackTopic(topic) {
		return false
	}
	s.hub.Join(topic, cc.conn)
	s.subs.Subscribe(topic) // may be a no‑op (already subscribed)
	return true
}

func (s *WsServer) unsubscribe(cc *ConnContext, topic string) {
	if cc.conn.untrackTopic(topic) {
		s.hub.Leave(topic, cc.conn)
		s.subs.Unsubscribe(topic)
	}
}

func (s *WsServer) reader(cc *ConnContext) {
	defer s.release(cc)

	raw := cc.conn.rawConn
	_ = raw.SetReadDeadline(time.Now().Add(pongWait))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("ws.read", zap.String("session", string(cc.SessionID)), zap.Error(err))
			}
			return // client closed or errored
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			_ = cc.conn.writeJSON(map[string]any{
				"event": EventError,
				"body":  ErrorBody{Error: "invalid_frame"},
			})
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		res, err := s.router.dispatch(ctx, cc, env)
		cancel()

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err != nil {
			_ = cc.conn.writeJSON(map[string]any{
				"event": EventError,
				"body":  ErrorBody{Error: err.Error()},
			})
			continue
		}

		// ---- success -> {"event":"<evt>-ack", "body":{...}} --------
		reply := map[string]any{"event": env.Event + "-ack"}
		if res != nil {
			reply["body"] = res
		}
		_ = cc.conn.writeJSON(reply)
	}
}

// release runs exactly once per connection, after the reader loop ends.
// Topics are dropped first so the LEAVE is not written to this socket.
func (s *WsServer) release(cc *ConnContext) {
	close(cc.done)

	for _, topic := range cc.conn.drainTopics() {
		s.hub.Leave(topic, cc.conn)
		s.subs.Unsubscribe(topic)
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	s.chatSvc.Disconnect(ctx, cc.SessionID)

	cc.conn.close()
	zap.L().Debug("ws.disconnected", zap.String("session", string(cc.SessionID)))
}

func (s *WsServer) pinger(cc *ConnContext) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-cc.done:
			return
		case <-ticker.C:
			err := cc.conn.rawConn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				cc.conn.close()
				return
			}
		}
	}
}
