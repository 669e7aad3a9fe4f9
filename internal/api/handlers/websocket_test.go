package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anstrom/portsim/internal/metrics/mocks"
	"github.com/anstrom/portsim/internal/scanning"
)

type staticSource struct {
	mu   sync.Mutex
	snap scanning.Snapshot
}

func (s *staticSource) Snapshot() scanning.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

type decodedMessage struct {
	Type string            `json:"type"`
	Data scanning.Snapshot `json:"data"`
}

func startHub(t *testing.T, source SnapshotSource) (*WebSocketHandler, string) {
	t.Helper()
	handler := NewWebSocketHandler(source, createTestLogger(), nil)
	server := httptest.NewServer(http.HandlerFunc(handler.ScanWebSocket))
	t.Cleanup(func() {
		_ = handler.Close()
		server.Close()
	})
	return handler, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) decodedMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg decodedMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebSocketHandler_InitialSnapshot(t *testing.T) {
	source := &staticSource{snap: runningSnapshot()}
	_, url := startHub(t, source)

	conn := dial(t, url)
	msg := readMessage(t, conn)

	assert.Equal(t, "scan_update", msg.Type)
	assert.Equal(t, "run-1", msg.Data.ID)
	assert.Equal(t, scanning.StatusRunning, msg.Data.Status)
	assert.Len(t, msg.Data.Findings, 4)
}

func TestWebSocketHandler_BroadcastsSnapshots(t *testing.T) {
	source := &staticSource{snap: scanning.Snapshot{Status: scanning.StatusIdle, Findings: []scanning.Finding{}}}
	handler, url := startHub(t, source)

	first := dial(t, url)
	second := dial(t, url)
	readMessage(t, first)
	readMessage(t, second)

	require.Eventually(t, func() bool { return handler.GetConnectedClients() == 2 },
		2*time.Second, 10*time.Millisecond)

	snap := runningSnapshot()
	snap.Cursor = 77
	handler.OnSnapshot(snap)

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, 77, msg.Data.Cursor)
	}
}

func TestWebSocketHandler_ClientDisconnect(t *testing.T) {
	handler, url := startHub(t, &staticSource{})

	conn := dial(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return handler.GetConnectedClients() == 1 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return handler.GetConnectedClients() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_CloseSendsCloseFrame(t *testing.T) {
	handler, url := startHub(t, &staticSource{})

	conn := dial(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return handler.GetConnectedClients() == 1 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, handler.Close())
	assert.Equal(t, 0, handler.GetConnectedClients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)

	// Close is idempotent.
	assert.NoError(t, handler.Close())
}

func TestWebSocketHandler_OnSnapshotDropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockStreamRecorder(ctrl)
	recorder.EXPECT().IncrementStreamDropped().Times(1)

	// The hub is not running, so nothing drains the queue.
	handler := newWebSocketHandler(&staticSource{}, createTestLogger(), recorder)
	for i := 0; i < bufferSize; i++ {
		handler.OnSnapshot(scanning.Snapshot{Cursor: i})
	}

	done := make(chan struct{})
	go func() {
		handler.OnSnapshot(scanning.Snapshot{Cursor: bufferSize})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnSnapshot blocked on a full queue")
	}
	assert.Len(t, handler.updates, bufferSize)
}

func TestWebSocketHandler_RecordsStreamMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockStreamRecorder(ctrl)
	recorder.EXPECT().SetStreamClients(gomock.Any()).AnyTimes()
	recorder.EXPECT().IncrementStreamMessages("scan_update").MinTimes(1)

	handler := NewWebSocketHandler(&staticSource{}, createTestLogger(), recorder)
	server := httptest.NewServer(http.HandlerFunc(handler.ScanWebSocket))
	defer server.Close()
	defer func() { _ = handler.Close() }()

	conn := dial(t, "ws"+strings.TrimPrefix(server.URL, "http"))
	readMessage(t, conn)
	require.Eventually(t, func() bool { return handler.GetConnectedClients() == 1 },
		2*time.Second, 10*time.Millisecond)

	handler.OnSnapshot(runningSnapshot())
	assert.Equal(t, "run-1", readMessage(t, conn).Data.ID)
}

func TestWebSocketHandler_RejectsPlainHTTP(t *testing.T) {
	handler := NewWebSocketHandler(&staticSource{}, createTestLogger(), nil)
	defer func() { _ = handler.Close() }()

	w := httptest.NewRecorder()
	handler.ScanWebSocket(w, httptest.NewRequest(http.MethodGet, "/ws/scan", http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, handler.GetConnectedClients())
}
