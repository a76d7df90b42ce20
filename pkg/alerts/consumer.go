package alerts

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tiendascan/pkg/logger"
)

// Widget-side defaults: alerts dismiss themselves after five seconds and a
// lost stream is retried with a flat delay.
const (
	DefaultDisplayDuration = 5 * time.Second
	DefaultReconnectDelay  = 3 * time.Second
)

// ActiveAlert is one alert currently visible on the widget
type ActiveAlert struct {
	Message string
	ShownAt time.Time
}

// Consumer is the widget side of the alert stream: it connects to the SSE
// endpoint, keeps visible alerts with auto-expiry and tracks liveness pings.
type Consumer struct {
	streamURL       string
	httpClient      *http.Client
	displayDuration time.Duration
	reconnectDelay  time.Duration

	mu       sync.Mutex
	active   []ActiveAlert
	lastPing time.Time
}

// NewConsumer creates an alert stream consumer for the given /stream URL
func NewConsumer(streamURL string) *Consumer {
	return &Consumer{
		streamURL:       streamURL,
		httpClient:      &http.Client{},
		displayDuration: DefaultDisplayDuration,
		reconnectDelay:  DefaultReconnectDelay,
	}
}

// Run consumes the stream until the context is cancelled, reconnecting
// after a flat delay whenever the connection drops.
func (c *Consumer) Run(ctx context.Context) {
	for {
		if err := c.consumeOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("Alert stream disconnected", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *Consumer) consumeOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.streamURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		c.HandleData(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
	}

	return scanner.Err()
}

// HandleData processes one SSE data payload. A payload that carries a
// mensaje becomes a visible alert; a time payload refreshes liveness; an
// unparseable payload is logged and dropped, never fatal.
func (c *Consumer) HandleData(data string) {
	var payload struct {
		Mensaje string   `json:"mensaje"`
		Time    *float64 `json:"time"`
	}

	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		logger.Debug("Ignoring unparseable stream payload", zap.String("data", data), zap.Error(err))
		return
	}

	switch {
	case payload.Mensaje != "":
		c.mu.Lock()
		c.active = append(c.active, ActiveAlert{Message: payload.Mensaje, ShownAt: time.Now()})
		c.mu.Unlock()
	case payload.Time != nil:
		c.mu.Lock()
		c.lastPing = time.Now()
		c.mu.Unlock()
	default:
		logger.Debug("Ignoring stream payload without mensaje or time", zap.String("data", data))
	}
}

// Active returns the alerts still within their display window and prunes
// the expired ones.
func (c *Consumer) Active() []ActiveAlert {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.active[:0]
	for _, alert := range c.active {
		if now.Sub(alert.ShownAt) < c.displayDuration {
			kept = append(kept, alert)
		}
	}
	c.active = kept

	out := make([]ActiveAlert, len(c.active))
	copy(out, c.active)
	return out
}

// LastPing returns when the stream last reported liveness
func (c *Consumer) LastPing() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPing
}
