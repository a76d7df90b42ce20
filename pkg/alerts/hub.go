package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
)

// subscriberBuffer bounds how far a subscriber may lag before it is dropped
const subscriberBuffer = 16

// StoredAlert is one alert kept in the hub's recent history
type StoredAlert struct {
	ID        string    `json:"id"`
	Message   string    `json:"mensaje"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder persists published alerts for later retrieval
type Recorder interface {
	RecordAlert(ctx context.Context, id, message string, createdAt time.Time) error
}

// Hub fans alert and ping events out to every connected SSE subscriber
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}

	pingInterval time.Duration

	historyMu   sync.RWMutex
	history     []StoredAlert
	historySize int

	recorder Recorder
}

// NewHub creates an alert hub
func NewHub(cfg *config.AlertsConfig) *Hub {
	interval := time.Duration(cfg.PingInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	size := cfg.HistorySize
	if size <= 0 {
		size = 100
	}

	return &Hub{
		subscribers:  make(map[chan Event]struct{}),
		pingInterval: interval,
		historySize:  size,
	}
}

// SetRecorder attaches a persistence hook for published alerts
func (h *Hub) SetRecorder(recorder Recorder) {
	h.recorder = recorder
}

// Subscribe registers a new subscriber. The returned cancel function must
// be called when the subscriber goes away.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	logger.Debug("SSE subscriber connected", zap.Int("subscribers", count))

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		remaining := len(h.subscribers)
		h.mu.Unlock()
		logger.Debug("SSE subscriber disconnected", zap.Int("subscribers", remaining))
	}

	return ch, cancel
}

// Publish delivers an event to every subscriber. A subscriber whose buffer
// is full is dropped rather than blocking the hub.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			delete(h.subscribers, ch)
			close(ch)
			logger.Warn("Dropped slow SSE subscriber")
		}
	}
}

// PublishAlert publishes a user-facing alert, records it in the recent
// history and hands it to the recorder when one is attached.
func (h *Hub) PublishAlert(ctx context.Context, message string) {
	stored := StoredAlert{
		ID:        uuid.New().String(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	h.historyMu.Lock()
	h.history = append(h.history, stored)
	if len(h.history) > h.historySize {
		h.history = h.history[len(h.history)-h.historySize:]
	}
	h.historyMu.Unlock()

	if h.recorder != nil {
		if err := h.recorder.RecordAlert(ctx, stored.ID, stored.Message, stored.CreatedAt); err != nil {
			logger.Error("Failed to persist alert", zap.String("alert_id", stored.ID), zap.Error(err))
		}
	}

	h.Publish(NewAlertEvent(message))
	logger.Info("Published alert", zap.String("alert_id", stored.ID), zap.String("mensaje", message))
}

// Recent returns the retained alerts, newest first
func (h *Hub) Recent() []StoredAlert {
	h.historyMu.RLock()
	defer h.historyMu.RUnlock()

	out := make([]StoredAlert, len(h.history))
	for i, alert := range h.history {
		out[len(h.history)-1-i] = alert
	}
	return out
}

// SubscriberCount returns the number of connected subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Run emits liveness pings until the context is cancelled
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Alert hub stopping")
			return
		case now := <-ticker.C:
			h.Publish(NewPingEvent(now))
		}
	}
}
