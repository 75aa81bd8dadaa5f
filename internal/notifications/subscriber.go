package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"jobmatch-client/internal/cache"
	"jobmatch-client/internal/domain/notification"
	jobmatch_errors "jobmatch-client/pkg/errors"
	"jobmatch-client/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// TokenSource resolves the Authorization header for the dial.
type TokenSource interface {
	AuthHeader() (string, bool)
}

type notificationWire struct {
	ID        json.Number `json:"id"`
	Type      string      `json:"type"`
	Kind      string      `json:"kind"`
	Message   string      `json:"message"`
	Text      string      `json:"text"`
	CompanyID json.Number `json:"company_id"`
	PollID    json.Number `json:"poll_id"`
	Read      bool        `json:"read"`
	CreatedAt string      `json:"created_at"`
}

// Subscriber keeps a websocket open to the notification feed and upserts
// every received entry into the notification cache.
type Subscriber struct {
	url    string
	tokens TokenSource
	store  *cache.Store[notification.Notification]
	log    *logger.Logger

	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

func NewSubscriber(url string, tokens TokenSource, store *cache.Store[notification.Notification], log *logger.Logger) *Subscriber {
	return &Subscriber{
		url:    url,
		tokens: tokens,
		store:  store,
		log:    log,
	}
}

// Start dials the feed and spawns the read and ping loops. It fails fast
// without a resolvable auth header.
func (s *Subscriber) Start(ctx context.Context) error {
	header, ok := s.tokens.AuthHeader()
	if !ok {
		return jobmatch_errors.ErrAuthRequired
	}
	headers := http.Header{}
	headers.Set("Authorization", header)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, headers)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.readLoop(ctx, conn)
	go s.pingLoop(ctx, conn)
	s.log.Infof("notification feed connected: %s", s.url)
	return nil
}

func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer close(s.done)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Errorf("notification feed read: %v", err)
			}
			return
		}
		var wire notificationWire
		if err := json.Unmarshal(payload, &wire); err != nil {
			s.log.Warnf("notification feed: skipping malformed payload: %v", err)
			continue
		}
		s.store.Upsert(normalize(wire))
	}
}

func (s *Subscriber) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			conn.Close()
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// Stop closes the connection and waits for the read loop to drain.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.mu.Unlock()
	if conn == nil {
		return
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	conn.Close()
	<-done
}

func normalize(w notificationWire) notification.Notification {
	out := notification.Notification{
		Read: w.Read,
	}
	if id, err := w.ID.Int64(); err == nil {
		out.ID = id
	}
	out.Type = w.Type
	if out.Type == "" {
		out.Type = w.Kind
	}
	out.Message = w.Message
	if out.Message == "" {
		out.Message = w.Text
	}
	if id, err := w.CompanyID.Int64(); err == nil {
		out.CompanyID = id
	}
	if id, err := w.PollID.Int64(); err == nil {
		out.PollID = id
	}
	if w.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
			out.CreatedAt = ts
		}
	}
	return out
}
