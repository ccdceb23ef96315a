package events

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sponsorhub/sponsorhub/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Delay before the first reconnect attempt; doubles up to maxBackoff
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Event is a single notification pushed by the backend.
type Event struct {
	Type      string          `json:"tipo"`
	Message   string          `json:"messaggio"`
	Payload   json.RawMessage `json:"dati,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Subscriber maintains a WebSocket connection to the notification endpoint
// and delivers decoded events on its channel. It reconnects with backoff
// until closed, so a flaky network degrades to missed toasts instead of a
// dead session.
type Subscriber struct {
	endpoint string
	token    string

	events chan Event

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	cancel context.CancelFunc
}

// NewSubscriber prepares a subscriber for the given API base URL.
// The notification endpoint is derived from the base URL by switching the
// scheme to ws/wss and appending the notifications path.
func NewSubscriber(baseURL, token string) (*Subscriber, error) {
	endpoint, err := notificationEndpoint(baseURL)
	if err != nil {
		return nil, err
	}
	return &Subscriber{
		endpoint: endpoint,
		token:    token,
		events:   make(chan Event, 16),
	}, nil
}

// notificationEndpoint converts an http(s) base URL into the ws(s) URL of
// the notifications stream.
func notificationEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already a websocket URL
	default:
		return "", fmt.Errorf("unsupported scheme %q in base URL", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/notifications/stream"
	return u.String(), nil
}

// Events returns the channel events are delivered on.
// The channel is closed when the subscriber is closed.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Start connects and begins delivering events. It returns immediately;
// reading and reconnecting happen on a background goroutine.
func (s *Subscriber) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Subscriber) run(ctx context.Context) {
	defer close(s.events)

	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := s.dial(ctx)
		if err != nil {
			logging.Warn("Notification connect failed",
				zap.String("endpoint", s.endpoint),
				zap.Error(err),
			)
			if !s.sleep(ctx, backoff) {
				return
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = initialBackoff
		logging.Info("Notification stream connected",
			zap.String("endpoint", s.endpoint),
		)

		s.readLoop(ctx, conn)

		if ctx.Err() != nil {
			return
		}
		if !s.sleep(ctx, backoff) {
			return
		}
	}
}

func (s *Subscriber) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, s.endpoint, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return nil, fmt.Errorf("subscriber closed")
	}
	s.conn = conn
	s.mu.Unlock()
	return conn, nil
}

// readLoop reads events until the connection drops or the context ends.
// Pings keep the connection alive; pongs extend the read deadline.
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(writeWait)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-done:
				return
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("Notification stream dropped", zap.Error(err))
			} else {
				logging.Debug("Notification stream closed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			logging.Debug("Ignoring non-text notification frame",
				zap.Int("message_type", msgType),
				zap.Int("length", len(data)),
			)
			continue
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			logging.Warn("Malformed notification",
				zap.Error(err),
				zap.Int("length", len(data)),
			)
			continue
		}
		logging.LogNotification(ev.Type, len(data))

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		default:
			// Drop when the consumer is not keeping up. Notifications are
			// advisory; the screens refetch on demand anyway.
			logging.Debug("Notification dropped, channel full",
				zap.String("event_type", ev.Type),
			)
		}
	}
}

// sleep waits for d or until the context is cancelled.
func (s *Subscriber) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close stops the subscriber. Safe to call more than once.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
