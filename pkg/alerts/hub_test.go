package alerts

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(true, ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testHub() *Hub {
	return NewHub(&config.AlertsConfig{PingInterval: 5, HistorySize: 3})
}

func TestHubPublishFanOut(t *testing.T) {
	hub := testHub()

	ch1, cancel1 := hub.Subscribe()
	ch2, cancel2 := hub.Subscribe()
	defer cancel1()
	defer cancel2()

	hub.Publish(NewAlertEvent("sin stock"))

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if !strings.Contains(string(event.Data), "sin stock") {
				t.Errorf("Subscriber %d got unexpected payload: %s", i, event.Data)
			}
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d never received the event", i)
		}
	}
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := testHub()

	_, cancel := hub.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer without draining
	for i := 0; i < subscriberBuffer+1; i++ {
		hub.Publish(NewAlertEvent("overflow"))
	}

	if count := hub.SubscriberCount(); count != 0 {
		t.Errorf("Slow subscriber should be dropped, still have %d", count)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := testHub()

	_, cancel := hub.Subscribe()
	cancel()
	cancel() // Second call must be harmless

	if count := hub.SubscriberCount(); count != 0 {
		t.Errorf("Expected no subscribers, got %d", count)
	}

	// Publishing to an empty hub must not panic
	hub.Publish(NewAlertEvent("nadie escucha"))
}

type fakeRecorder struct {
	messages []string
}

func (f *fakeRecorder) RecordAlert(ctx context.Context, id, message string, createdAt time.Time) error {
	f.messages = append(f.messages, message)
	return nil
}

func TestHubPublishAlertHistoryAndRecorder(t *testing.T) {
	hub := testHub()
	recorder := &fakeRecorder{}
	hub.SetRecorder(recorder)

	for _, msg := range []string{"uno", "dos", "tres", "cuatro"} {
		hub.PublishAlert(context.Background(), msg)
	}

	recent := hub.Recent()
	if len(recent) != 3 {
		t.Fatalf("History should cap at 3, got %d", len(recent))
	}
	if recent[0].Message != "cuatro" {
		t.Errorf("Expected newest first, got %s", recent[0].Message)
	}
	if recent[2].Message != "dos" {
		t.Errorf("Oldest retained should be dos, got %s", recent[2].Message)
	}
	for _, alert := range recent {
		if alert.ID == "" || alert.CreatedAt.IsZero() {
			t.Errorf("Stored alert missing ID or timestamp: %+v", alert)
		}
	}

	if len(recorder.messages) != 4 {
		t.Errorf("Recorder should see every alert, got %d", len(recorder.messages))
	}
}

func TestEventFraming(t *testing.T) {
	alert := NewAlertEvent("hola")
	frame := alert.Frame()
	if !strings.HasPrefix(frame, "data: ") || !strings.HasSuffix(frame, "\n\n") {
		t.Errorf("Bad alert framing: %q", frame)
	}

	var payload map[string]string
	body := strings.TrimSpace(strings.TrimPrefix(frame, "data: "))
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("Alert payload should be JSON: %v", err)
	}
	if payload["mensaje"] != "hola" {
		t.Errorf("Expected mensaje hola, got %v", payload)
	}

	ping := NewPingEvent(time.Unix(1700000000, 0))
	pingFrame := ping.Frame()
	if !strings.HasPrefix(pingFrame, "event: ping\n") {
		t.Errorf("Ping should carry the ping event name: %q", pingFrame)
	}
	if !strings.Contains(pingFrame, `"time":`) {
		t.Errorf("Ping payload should carry time: %q", pingFrame)
	}
}

func TestHubRunEmitsPings(t *testing.T) {
	hub := NewHub(&config.AlertsConfig{PingInterval: 1, HistorySize: 10})
	// Shrink the interval so the test stays fast
	hub.pingInterval = 10 * time.Millisecond

	ch, cancel := hub.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go hub.Run(ctx)

	select {
	case event := <-ch:
		if event.Name != "ping" {
			t.Errorf("Expected ping event, got %q", event.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("Never received a ping")
	}
}
