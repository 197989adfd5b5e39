package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestLogHubBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewLogHub()
	go hub.Run()
	defer hub.Stop()

	r := gin.New()
	r.GET("/ws/logs", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/logs"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.NotifyChange("updated", 42)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev LogEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatal(err)
	}
	if ev.Type != "updated" || ev.ID != 42 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestNotifyChangeNeverBlocks(t *testing.T) {
	hub := NewLogHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.NotifyChange("created", int64(i))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyChange blocked without a running hub")
	}
}
