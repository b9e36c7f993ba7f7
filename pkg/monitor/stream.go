package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	maxClientFrame = 512
	clientBuffer   = 64
)

// StreamMessage is the JSON frame sent to WebSocket clients. The
// first frame after connecting carries the current stats, every
// later frame one event.
type StreamMessage struct {
	Type  string          `json:"type"`
	Event *AssertionEvent `json:"event,omitempty"`
	Stats *CollectorStats `json:"stats,omitempty"`
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// StreamServer exposes an EventCollector over HTTP: /ws streams
// events over WebSocket, /stats returns the aggregate counts and
// /health reports liveness.
type StreamServer struct {
	mu        sync.RWMutex
	collector *EventCollector
	upgrader  websocket.Upgrader
	clients   map[*streamClient]struct{}
	addr      string
	server    *http.Server
}

// NewStreamServer creates a server for the collector and starts
// forwarding its events to connected clients.
func NewStreamServer(addr string, collector *EventCollector) *StreamServer {
	s := &StreamServer{
		addr:      addr,
		collector: collector,
		clients:   make(map[*streamClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	collector.OnEvent(s.publish)
	return s
}

// Handler returns the HTTP handler serving all endpoints.
func (s *StreamServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleStream)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start serves until ctx is cancelled or the listener fails.
func (s *StreamServer) Start(ctx context.Context) error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	server := s.server
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop disconnects all clients and shuts the server down.
func (s *StreamServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
	server := s.server
	s.mu.Unlock()

	if server != nil {
		return server.Shutdown(ctx)
	}
	return nil
}

// ClientCount returns the number of connected stream clients.
func (s *StreamServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *StreamServer) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	stats := s.collector.Stats()
	first, err := json.Marshal(StreamMessage{Type: "stats", Stats: &stats})
	if err != nil {
		_ = conn.Close()
		return
	}

	c := &streamClient{conn: conn, send: make(chan []byte, clientBuffer)}
	s.mu.Lock()
	c.send <- first
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop drains client frames until the peer goes away.
func (s *StreamServer) readLoop(c *streamClient) {
	defer s.remove(c)
	c.conn.SetReadLimit(maxClientFrame)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *StreamServer) writeLoop(c *streamClient) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
}

func (s *StreamServer) remove(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *StreamServer) publish(event AssertionEvent) {
	data, err := json.Marshal(StreamMessage{Type: "event", Event: &event})
	if err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Client too slow, skip
		}
	}
}

func (s *StreamServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stats := s.collector.Stats()
	_ = json.NewEncoder(w).Encode(struct {
		CollectorStats
		PassRate float64 `json:"pass_rate"`
	}{stats, stats.PassRate()})
}
