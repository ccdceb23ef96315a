package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNotificationEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{
			name:    "http base",
			baseURL: "http://localhost:8000",
			want:    "ws://localhost:8000/notifications/stream",
		},
		{
			name:    "https base",
			baseURL: "https://api.example.com",
			want:    "wss://api.example.com/notifications/stream",
		},
		{
			name:    "trailing slash",
			baseURL: "https://api.example.com/",
			want:    "wss://api.example.com/notifications/stream",
		},
		{
			name:    "base with path",
			baseURL: "https://api.example.com/v1",
			want:    "wss://api.example.com/v1/notifications/stream",
		},
		{
			name:    "already websocket",
			baseURL: "wss://api.example.com",
			want:    "wss://api.example.com/notifications/stream",
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := notificationEndpoint(tt.baseURL)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("notificationEndpoint(%q) should fail", tt.baseURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("notificationEndpoint(%q) error = %v", tt.baseURL, err)
			}
			if got != tt.want {
				t.Errorf("notificationEndpoint(%q) = %q, want %q", tt.baseURL, got, tt.want)
			}
		})
	}
}

func TestSubscriberReceivesEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotAuth := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer func() { _ = conn.Close() }()

		messages := []string{
			`{"tipo":"task_creato","messaggio":"Nuovo task: Invio grafica LED"}`,
			`{"tipo":"contratto_attivato","messaggio":"Contratto attivato","dati":{"id":42}}`,
		}
		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		// Non-text frames are ignored by the subscriber
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02})

		// Hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	sub, err := NewSubscriber(server.URL, "tok-abc")
	if err != nil {
		t.Fatalf("NewSubscriber() error = %v", err)
	}
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sub.Start(ctx)

	// The handshake must carry the bearer token
	select {
	case auth := <-gotAuth:
		if auth != "Bearer tok-abc" {
			t.Errorf("Authorization = %q, want 'Bearer tok-abc'", auth)
		}
	case <-ctx.Done():
		t.Fatal("server never saw the handshake")
	}

	var events []Event
	for len(events) < 2 {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				t.Fatal("events channel closed early")
			}
			events = append(events, ev)
		case <-ctx.Done():
			t.Fatalf("timed out waiting for events, got %d", len(events))
		}
	}

	if events[0].Type != "task_creato" {
		t.Errorf("first event type = %q, want task_creato", events[0].Type)
	}
	if events[0].Message != "Nuovo task: Invio grafica LED" {
		t.Errorf("first event message = %q", events[0].Message)
	}
	if events[1].Type != "contratto_attivato" {
		t.Errorf("second event type = %q, want contratto_attivato", events[1].Type)
	}
	if len(events[1].Payload) == 0 {
		t.Error("second event should carry a payload")
	}
}

func TestSubscriberCloseEndsStream(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	sub, err := NewSubscriber(server.URL, "")
	if err != nil {
		t.Fatalf("NewSubscriber() error = %v", err)
	}

	sub.Start(context.Background())

	// Give the dial a moment, then close
	time.Sleep(100 * time.Millisecond)
	sub.Close()
	sub.Close() // second close is a no-op

	select {
	case _, ok := <-sub.Events():
		if ok {
			// An event before close is fine; the channel must still close
			for range sub.Events() {
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel did not close after Close()")
	}
}
