package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// DialStream opens a websocket to path on an httptest server URL. The
// connection is closed on cleanup.
func DialStream(t *testing.T, serverURL, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(serverURL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ReadStreamJSON reads one JSON frame into dest within two seconds.
func ReadStreamJSON(t *testing.T, conn *websocket.Conn, dest any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(dest); err != nil {
		t.Fatalf("read stream: %v", err)
	}
}
