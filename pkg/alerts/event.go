package alerts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Event is one server-sent event ready for the wire
type Event struct {
	// Name is the SSE event name; empty for plain data events
	Name string
	Data []byte
}

// alertPayload is the user-facing alert body
type alertPayload struct {
	Mensaje string `json:"mensaje"`
}

// pingPayload is the liveness body
type pingPayload struct {
	Time float64 `json:"time"`
}

// NewAlertEvent builds a user-facing alert event
func NewAlertEvent(message string) Event {
	data, _ := json.Marshal(alertPayload{Mensaje: message})
	return Event{Data: data}
}

// NewPingEvent builds a liveness ping event
func NewPingEvent(t time.Time) Event {
	data, _ := json.Marshal(pingPayload{Time: float64(t.UnixNano()) / float64(time.Second)})
	return Event{Name: "ping", Data: data}
}

// Frame renders the event in text/event-stream framing
func (e Event) Frame() string {
	var b strings.Builder
	if e.Name != "" {
		fmt.Fprintf(&b, "event: %s\n", e.Name)
	}
	fmt.Fprintf(&b, "data: %s\n\n", e.Data)
	return b.String()
}
