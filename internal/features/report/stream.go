package report

import "sync"

// RenderEvent is one progress notification emitted while a dashboard render
// walks the catalog.
type RenderEvent struct {
	CompanyID string `json:"company_id"`
	ReportID  string `json:"report_id"`
	Title     string `json:"title"`
	Status    string `json:"status"` // generating, rendered, locked
}

// Render event statuses
const (
	StatusGenerating = "generating"
	StatusRendered   = "rendered"
	StatusLocked     = "locked"
)

// RenderHub fans render progress out to websocket subscribers. Publishing
// never blocks: slow subscribers miss events rather than stalling a render.
type RenderHub struct {
	mu   sync.RWMutex
	subs map[chan RenderEvent]struct{}
}

func NewRenderHub() *RenderHub {
	return &RenderHub{
		subs: make(map[chan RenderEvent]struct{}),
	}
}

// Subscribe returns an event channel and a cancel func that must be called
// when the subscriber disconnects.
func (h *RenderHub) Subscribe() (<-chan RenderEvent, func()) {
	ch := make(chan RenderEvent, 32)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *RenderHub) Publish(event RenderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full, drop the event
		}
	}
}
