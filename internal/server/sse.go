package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/iksnae/stickyboard/internal"
)

const (
	// WriteTimeout bounds a write to one SSE client
	WriteTimeout = 2 * time.Second

	// ClientBuffer is the number of events queued for a client before it
	// is considered too slow and dropped
	ClientBuffer = 64
)

// Client is a connected event stream. Only the handler serving the client
// writes to its response; Broadcast only queues messages.
type Client struct {
	ID   string
	Done chan struct{}
	send chan []byte
}

// Broadcaster fans board change events out to every connected client
type Broadcaster struct {
	clients map[string]*Client
	mu      sync.RWMutex
	nextID  int
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]*Client),
	}
}

// AddClient registers a new client with an empty queue
func (b *Broadcaster) AddClient() *Client {
	b.mu.Lock()
	b.nextID++
	id := fmt.Sprintf("client-%d", b.nextID)
	client := &Client{
		ID:   id,
		Done: make(chan struct{}),
		send: make(chan []byte, ClientBuffer),
	}
	b.clients[id] = client
	count := len(b.clients)
	b.mu.Unlock()

	internal.Logger().Debug().Str("client", id).Int("clients", count).Msg("event client connected")
	return client
}

// RemoveClient unregisters a client
func (b *Broadcaster) RemoveClient(client *Client) {
	b.mu.Lock()
	_, exists := b.clients[client.ID]
	delete(b.clients, client.ID)
	count := len(b.clients)
	b.mu.Unlock()

	if exists {
		close(client.Done)
	}
	internal.Logger().Debug().Str("client", client.ID).Int("clients", count).Msg("event client disconnected")
}

// Broadcast queues one named event for every client. It never blocks;
// clients whose queue is full are dropped.
func (b *Broadcaster) Broadcast(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		internal.Logger().Error().Err(err).Msg("failed to marshal event")
		return
	}
	message := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, payload))

	b.mu.RLock()
	var slow []*Client
	for _, c := range b.clients {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	b.mu.RUnlock()

	for _, c := range slow {
		internal.Logger().Warn().Str("client", c.ID).Int("buffer", ClientBuffer).Msg("event client too slow, dropping")
		b.RemoveClient(c)
	}
}

// ClientCount returns the number of connected clients
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// HandleSSE streams queued events until the request context ends or the
// client is dropped
func (b *Broadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	rc := http.NewResponseController(w)
	client := b.AddClient()
	defer b.RemoveClient(client)

	if err := writeEvent(rc, w, []byte("event: connected\ndata: {}\n\n")); err != nil {
		internal.Logger().Debug().Str("client", client.ID).Err(err).Msg("event write failed")
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.Done:
			return
		case message := <-client.send:
			if err := writeEvent(rc, w, message); err != nil {
				internal.Logger().Debug().Str("client", client.ID).Err(err).Msg("event write failed")
				return
			}
		}
	}
}

func writeEvent(rc *http.ResponseController, w http.ResponseWriter, message []byte) error {
	if err := rc.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	return rc.Flush()
}
