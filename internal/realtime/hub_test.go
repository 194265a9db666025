package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	messages [][]byte
	ok       bool
}

func (f *fakeClient) Send(message []byte) bool {
	f.messages = append(f.messages, message)
	return f.ok
}

func (f *fakeClient) Close() {}

func TestBroadcastEvent_OnlyToOwnClients(t *testing.T) {
	h := &Hub{userIDToClients: make(map[uint]map[Client]struct{})}
	mine := &fakeClient{ok: true}
	other := &fakeClient{ok: true}
	h.Register(1, mine)
	h.Register(2, other)

	h.BroadcastEvent(1, Event{Type: EventSubtaskPicked, SubtaskID: 5, UserID: 1})

	require.Len(t, mine.messages, 1)
	require.Empty(t, other.messages)

	var evt Event
	require.NoError(t, json.Unmarshal(mine.messages[0], &evt))
	require.Equal(t, EventSubtaskPicked, evt.Type)
	require.Equal(t, uint(5), evt.SubtaskID)
}

func TestUnregister_DropsClient(t *testing.T) {
	h := &Hub{userIDToClients: make(map[uint]map[Client]struct{})}
	c := &fakeClient{ok: true}
	h.Register(1, c)
	h.Unregister(1, c)

	h.Broadcast(1, []byte("gone"))
	require.Empty(t, c.messages)
}

func TestBroadcast_MultipleClientsSameUser(t *testing.T) {
	h := &Hub{userIDToClients: make(map[uint]map[Client]struct{})}
	a := &fakeClient{ok: true}
	b := &fakeClient{ok: false} // failed writes are the handler's problem
	h.Register(1, a)
	h.Register(1, b)

	h.Broadcast(1, []byte("hello"))
	require.Len(t, a.messages, 1)
	require.Len(t, b.messages, 1)
}
