package api

import (
	"io"
	"log"
	"sync"

	"sharebox/models"
	"sharebox/store"

	"github.com/gin-gonic/gin"
)

const clientBuffer = 16

// Event is one server-sent event.
type Event struct {
	Name string
	Data any
}

// ViewState is the payload of a "change" event: everything a view needs to re-render.
type ViewState struct {
	Products []models.Product  `json:"products"`
	User     models.UserProfile `json:"user"`
	Filters  models.FilterState `json:"filters"`
	Stats    models.Stats       `json:"stats"`
}

// ToastEvent is the payload of a "toast" event.
type ToastEvent struct {
	Severity models.Severity `json:"severity"`
	Message  string          `json:"message"`
}

// Hub fans store changes and toasts out to connected event streams. It is the
// store's Toaster.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Event]struct{}
	metrics *Metrics
}

func NewHub(metrics *Metrics) *Hub {
	return &Hub{
		clients: make(map[chan Event]struct{}),
		metrics: metrics,
	}
}

// Toast broadcasts a toast event. It never blocks.
func (h *Hub) Toast(severity models.Severity, message string) {
	log.Printf("DEBUG: Toast (%s): %s", severity, message)
	h.metrics.recordToast(severity)
	h.broadcast(Event{Name: "toast", Data: ToastEvent{Severity: severity, Message: message}})
}

// Attach subscribes the hub to catalog. Every change is broadcast as a
// "change" event carrying the new view state.
func (h *Hub) Attach(catalog *store.Store) (detach func()) {
	return catalog.Subscribe(func() {
		h.metrics.recordChange()
		h.mu.Lock()
		listening := len(h.clients) > 0
		h.mu.Unlock()
		if !listening {
			return
		}
		h.broadcast(Event{Name: "change", Data: viewState(catalog)})
	})
}

func viewState(catalog *store.Store) ViewState {
	return ViewState{
		Products: catalog.FilteredProducts(),
		User:     catalog.User(),
		Filters:  catalog.Filters(),
		Stats:    catalog.Stats(),
	}
}

// register adds a client and returns its event channel.
func (h *Hub) register() chan Event {
	ch := make(chan Event, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.setClients(count)
	log.Printf("INFO: Event stream client connected. Clients: %d", count)
	return ch
}

func (h *Hub) unregister(ch chan Event) {
	h.mu.Lock()
	delete(h.clients, ch)
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.setClients(count)
	log.Printf("INFO: Event stream client disconnected. Clients: %d", count)
}

// broadcast delivers ev to every client with room in its buffer. A client
// that has fallen behind misses the event.
func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			log.Printf("WARN: Event stream client is behind, dropping '%s' event", ev.Name)
		}
	}
}

// EventsHandler streams store changes and toasts as server-sent events.
// @Summary      Event Stream
// @Description  Server-sent events. A `change` event with the full view state (filtered products, user, filters, stats) is sent on connect and after every change.
// @Description  `toast` events carry short user-facing messages with a severity of `success`, `info` or `error`.
// @Tags         Catalog
// @Produce      text/event-stream
// @Success      200  {object}  ViewState "Stream of change and toast events."
// @Router       /events [get]
func EventsHandler(c *gin.Context, catalog *store.Store, hub *Hub) {
	ch := hub.register()
	defer hub.unregister(ch)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("change", viewState(catalog))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-ch:
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
