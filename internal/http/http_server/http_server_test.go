package http_server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kshitijx07/gemaverse-v2/internal/broadcast"
	"github.com/kshitijx07/gemaverse-v2/internal/rooms"
	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"
	"github.com/kshitijx07/gemaverse-v2/internal/services/chatroom"
	"github.com/kshitijx07/gemaverse-v2/internal/session"
	"github.com/kshitijx07/gemaverse-v2/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEngineRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := rooms.NewRegistry("General Lobby", 100)
	hub := ws.NewHub()
	chatSvc := chat.NewChatService(reg, session.NewTracker(), broadcast.NewLocal(hub))
	srv := NewHttpServer(context.Background(), 8080, ws.NewWsServer(hub, nil, chatSvc),
		chatroom.NewChatRoomService(reg, chatSvc))
	engine := srv.Engine()

	tests := []struct {
		path string
		want int
	}{
		{path: "/api/status", want: http.StatusOK},
		{path: "/api/chat/rooms", want: http.StatusOK},
		{path: "/api/chat/rooms/public", want: http.StatusOK},
		// plain GET without the upgrade headers is refused
		{path: "/ws", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
