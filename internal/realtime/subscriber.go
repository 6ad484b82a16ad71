package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

const (
	postsTopic        = "realtime:public:posts"
	heartbeatInterval = 25 * time.Second
	reconnectDelay    = 5 * time.Second
)

// Subscriber listens on the Supabase Realtime websocket for changes to the
// posts table and notifies the client so it can refetch.
type Subscriber struct {
	url      string
	apiKey   string
	onChange func(event string)
	logger   *slog.Logger
}

// NewSubscriber creates a subscriber for the given realtime endpoint.
// onChange is invoked from the subscriber's goroutine for every
// INSERT/UPDATE/DELETE on the posts table.
func NewSubscriber(realtimeURL, apiKey string, onChange func(event string), logger *slog.Logger) *Subscriber {
	return &Subscriber{
		url:      realtimeURL,
		apiKey:   apiKey,
		onChange: onChange,
		logger:   logger,
	}
}

// Start connects to the realtime endpoint and processes change events until
// the context is cancelled. It automatically reconnects on transient errors.
func (s *Subscriber) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx); err != nil {
				s.logger.Error("realtime connection error, reconnecting", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
					// backoff before reconnecting
				}
			}
		}
	}
}

func (s *Subscriber) buildURL() string {
	u, _ := url.Parse(s.url)
	q := u.Query()
	q.Set("apikey", s.apiKey)
	q.Set("vsn", "1.0.0")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Subscriber) subscribe(ctx context.Context) error {
	s.logger.Info("connecting to realtime", "url", s.url)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.buildURL(), nil)
	if err != nil {
		return fmt.Errorf("dial realtime: %w", err)
	}
	defer conn.Close()

	join := phoenixMessage{
		Topic:   postsTopic,
		Event:   "phx_join",
		Payload: []byte(`{}`),
		Ref:     "1",
	}
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("join posts channel: %w", err)
	}
	s.logger.Info("joined posts channel")

	// The read loop stays on this goroutine; heartbeats keep the channel
	// alive from a helper goroutine tied to this connection.
	done := make(chan struct{})
	defer close(done)
	go s.heartbeat(ctx, conn, done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		msg, err := parseMessage(message)
		if err != nil {
			s.logger.Error("failed to parse realtime frame", "error", err)
			continue
		}

		if msg.Topic != postsTopic || !isChangeEvent(msg.Event) {
			continue
		}

		s.logger.Debug("posts change received", "event", msg.Event)
		s.onChange(msg.Event)
	}
}

func (s *Subscriber) heartbeat(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 2
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			hb := phoenixMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: []byte(`{}`),
				Ref:     strconv.Itoa(ref),
			}
			ref++
			if err := conn.WriteJSON(hb); err != nil {
				return
			}
		}
	}
}
