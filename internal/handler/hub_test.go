package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawMessage struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readMessage(t *testing.T, conn *websocket.Conn) rawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg rawMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) models.ViewState {
	t.Helper()

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeState, msg.Type)

	var state models.ViewState
	require.NoError(t, json.Unmarshal(msg.Data, &state))
	return state
}

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/ws", hub.ServeWS)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_SendsInitialSnapshot(t *testing.T) {
	hub := NewHub(func() models.ViewState {
		return models.ViewState{Username: "octocat", Status: models.StatusIdle, Generation: 4}
	})

	conn := dialHub(t, hub)

	state := readState(t, conn)
	assert.Equal(t, "octocat", state.Username)
	assert.Equal(t, uint64(4), state.Generation)

	views := readMessage(t, conn)
	assert.Equal(t, MessageTypeViews, views.Type)

	var v Views
	require.NoError(t, json.Unmarshal(views.Data, &v))
	assert.True(t, v.Weekly.NoData)
	assert.True(t, v.Yearly.NoData)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsPublishedState(t *testing.T) {
	hub := NewHub(func() models.ViewState { return models.ViewState{Status: models.StatusIdle} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialHub(t, hub)
	readState(t, conn)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(models.ViewState{Username: "octocat", Status: models.StatusLoading, Generation: 7})

	state := readState(t, conn)
	assert.Equal(t, models.StatusLoading, state.Status)
	assert.Equal(t, uint64(7), state.Generation)
	assert.Equal(t, MessageTypeViews, readMessage(t, conn).Type)
}

func TestHub_FollowsControllerTransitions(t *testing.T) {
	controller := newTestController(t)
	hub := NewHub(controller.State)
	controller.Subscribe(hub.Publish)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialHub(t, hub)
	readState(t, conn)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, controller.Search(ctx, "octocat"))

	var last models.ViewState
	for last.Status != models.StatusLoaded {
		last = readState(t, conn)
		readMessage(t, conn)
	}
	assert.Equal(t, "hello-world", last.Selection)
	assert.Len(t, last.Activity, 2)
}

func TestHub_RemovesClientOnDisconnect(t *testing.T) {
	hub := NewHub(func() models.ViewState { return models.ViewState{} })

	conn := dialHub(t, hub)
	readState(t, conn)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub(func() models.ViewState { return models.ViewState{} })

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "http://"+req.Host)
	assert.True(t, upgrader.CheckOrigin(req))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(func() models.ViewState { return models.ViewState{} })

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.Publish(models.ViewState{Generation: uint64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no running hub")
	}
}

func TestHub_FullQueueKeepsNewestState(t *testing.T) {
	hub := NewHub(func() models.ViewState { return models.ViewState{} })

	total := cap(hub.broadcast) + 10
	for i := 0; i < total-1; i++ {
		hub.Publish(models.ViewState{Status: models.StatusLoading, Generation: uint64(i)})
	}
	hub.Publish(models.ViewState{Status: models.StatusLoaded, Generation: uint64(total - 1)})

	require.Equal(t, cap(hub.broadcast), len(hub.broadcast))

	first := <-hub.broadcast
	assert.Equal(t, uint64(10), first.Generation)

	var last models.ViewState
	for len(hub.broadcast) > 0 {
		last = <-hub.broadcast
	}
	assert.Equal(t, models.StatusLoaded, last.Status)
	assert.Equal(t, uint64(total-1), last.Generation)
}
