package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	topic   string
	payload string
}

type fakeDeliverer struct{ got []captured }

func (f *fakeDeliverer) Deliver(topic string, payload []byte) {
	f.got = append(f.got, captured{topic: topic, payload: string(payload)})
}

func TestLocal_Broadcast(t *testing.T) {
	out := &fakeDeliverer{}
	bc := NewLocal(out)

	err := bc.Broadcast(context.Background(), "/topic/public",
		chat.Message{Type: chat.MessageJoin, Sender: "alice"})
	require.NoError(t, err)

	require.Len(t, out.got, 1)
	assert.Equal(t, "/topic/public", out.got[0].topic)
	assert.JSONEq(t, `{"type":"JOIN","sender":"alice"}`, out.got[0].payload)
}

func TestRedis_Broadcast(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bc := NewRedis(db)

	mock.ExpectPublish("chat:/topic/room/r1", `{"type":"CHAT","sender":"bob","content":"gg"}`).SetVal(2)

	err := bc.Broadcast(context.Background(), "/topic/room/r1",
		chat.Message{Type: chat.MessageChat, Sender: "bob", Content: "gg"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_BroadcastError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	bc := NewRedis(db)

	mock.ExpectPublish("chat:/topic/public", `{"type":"LEAVE","sender":"bob"}`).
		SetErr(errors.New("redis down"))

	err := bc.Broadcast(context.Background(), "/topic/public",
		chat.Message{Type: chat.MessageLeave, Sender: "bob"})
	assert.EqualError(t, err, "redis down")
}

func TestChannelRoundTrip(t *testing.T) {
	ch := ChannelFor("/topic/room/abc")
	assert.Equal(t, "chat:/topic/room/abc", ch)

	topic, ok := TopicFromChannel(ch)
	require.True(t, ok)
	assert.Equal(t, "/topic/room/abc", topic)

	_, ok = TopicFromChannel("auc:1:events")
	assert.False(t, ok)
}
