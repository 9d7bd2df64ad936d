package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/logging"
)

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// EventSource is a store that announces its mutations.
type EventSource interface {
	Subscribe(l store.Listener) (unsubscribe func())
}

// Hub fans store events out to websocket subscribers. A subscriber that
// falls behind by more than its buffer is disconnected rather than
// blocking the mutating goroutine.
type Hub struct {
	log     zerolog.Logger
	metrics *Metrics

	mu      sync.Mutex
	clients map[*client]struct{}
	unsubs  []func()
	closed  bool
}

type client struct {
	events chan store.Event
	topics map[store.Topic]bool // nil means every topic

	once   sync.Once
	done   chan struct{}
	status websocket.StatusCode
	reason string
}

func (c *client) wants(t store.Topic) bool {
	return c.topics == nil || c.topics[t]
}

func (c *client) kick(status websocket.StatusCode, reason string) {
	c.once.Do(func() {
		c.status = status
		c.reason = reason
		close(c.done)
	})
}

// NewHub creates an empty hub. metrics may be nil.
func NewHub(log zerolog.Logger, metrics *Metrics) *Hub {
	return &Hub{
		log:     log.With().Str(logging.FieldComponent, "events").Logger(),
		metrics: metrics,
		clients: make(map[*client]struct{}),
	}
}

// Attach subscribes the hub to every source until Close.
func (h *Hub) Attach(sources ...EventSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, src := range sources {
		h.unsubs = append(h.unsubs, src.Subscribe(h.Publish))
	}
}

// Publish queues e for every interested subscriber.
func (h *Hub) Publish(e store.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.wants(e.Topic) {
			continue
		}
		select {
		case c.events <- e:
		default:
			c.kick(websocket.StatusPolicyViolation, "subscriber too slow")
			delete(h.clients, c)
			if h.metrics != nil {
				h.metrics.WSDropped.Inc()
			}
			h.log.Warn().Msg("dropping slow event subscriber")
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close detaches the hub from its sources and disconnects subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, unsubscribe := range h.unsubs {
		unsubscribe()
	}
	h.unsubs = nil
	for c := range h.clients {
		c.kick(websocket.StatusGoingAway, "server shutting down")
		delete(h.clients, c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if h.metrics != nil {
		h.metrics.WSConnections.Dec()
	}
}

// parseTopics reads a comma-separated ?topics= filter.
func parseTopics(raw string) map[store.Topic]bool {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	topics := make(map[store.Topic]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics[store.Topic(t)] = true
		}
	}
	return topics
}

// ServeHTTP upgrades the request and streams events as JSON text frames
// until the peer goes away. Inbound frames are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
	})
	if err != nil {
		h.log.Debug().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	c := &client{
		events: make(chan store.Event, clientBuffer),
		topics: parseTopics(r.URL.Query().Get("topics")),
		done:   make(chan struct{}),
	}
	if !h.register(c) {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.unregister(c)
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("event subscriber connected")

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			_ = conn.Close(c.status, c.reason)
			return
		case e := <-c.events:
			if err := writeEvent(ctx, conn, e); err != nil {
				h.log.Debug().Err(err).Msg("event subscriber write failed")
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, e store.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
