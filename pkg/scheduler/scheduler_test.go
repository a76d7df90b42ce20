package scheduler

import (
	"context"
	"os"
	"testing"
	"time"

	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
	"tiendascan/pkg/store"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(true, ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeScanner struct {
	entries []store.LowStockEntry
	err     error
}

func (f *fakeScanner) LowStock(ctx context.Context, threshold int) ([]store.LowStockEntry, error) {
	return f.entries, f.err
}

type fakePublisher struct {
	messages []string
}

func (f *fakePublisher) PublishAlert(ctx context.Context, message string) {
	f.messages = append(f.messages, message)
}

func testSchedulerConfig() *config.Config {
	return &config.Config{
		Scheduler: &config.SchedulerConfig{
			Enabled:           true,
			Cron:              "*/5 * * * *",
			LowStockThreshold: 0,
		},
	}
}

func TestNewStockSchedulerRegistersSweepJob(t *testing.T) {
	s, err := NewStockScheduler(context.Background(), testSchedulerConfig(), &fakeScanner{}, &fakePublisher{})
	if err != nil {
		t.Fatalf("NewStockScheduler failed: %v", err)
	}

	jobs := s.GetJobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 registered job, got %d", len(jobs))
	}
	if jobs[0].Name != "low_stock_sweep" {
		t.Errorf("job name = %s, want low_stock_sweep", jobs[0].Name)
	}
	if jobs[0].Status != JobStatusScheduled {
		t.Errorf("job status = %s, want %s", jobs[0].Status, JobStatusScheduled)
	}
}

func TestNewStockSchedulerDisabledRegistersNothing(t *testing.T) {
	cfg := &config.Config{Scheduler: &config.SchedulerConfig{Enabled: false}}

	s, err := NewStockScheduler(context.Background(), cfg, &fakeScanner{}, &fakePublisher{})
	if err != nil {
		t.Fatalf("NewStockScheduler failed: %v", err)
	}
	if len(s.GetJobs()) != 0 {
		t.Errorf("disabled scheduler should register no jobs")
	}
}

func TestNewStockSchedulerRejectsBadCron(t *testing.T) {
	cfg := &config.Config{Scheduler: &config.SchedulerConfig{Enabled: true, Cron: "no es cron"}}

	if _, err := NewStockScheduler(context.Background(), cfg, &fakeScanner{}, &fakePublisher{}); err == nil {
		t.Fatal("expected an error for an invalid cron expression")
	}
}

func TestGetJobsReturnsSnapshots(t *testing.T) {
	s, err := NewStockScheduler(context.Background(), testSchedulerConfig(), &fakeScanner{}, &fakePublisher{})
	if err != nil {
		t.Fatalf("NewStockScheduler failed: %v", err)
	}

	first := s.GetJobs()
	first[0].Status = "manipulado"
	first[0].LastRun = time.Now().Add(time.Hour)

	second := s.GetJobs()
	if second[0].Status != JobStatusScheduled {
		t.Errorf("tracked job status changed through a snapshot: %s", second[0].Status)
	}
	if !second[0].LastRun.IsZero() {
		t.Errorf("tracked job LastRun changed through a snapshot: %v", second[0].LastRun)
	}
}

func TestRunLowStockSweepPublishesPerEntry(t *testing.T) {
	scanner := &fakeScanner{entries: []store.LowStockEntry{
		{BranchID: 1, BranchName: "Centro", ProductID: 2, ProductName: "Yerba", Quantity: 0},
		{BranchID: 3, BranchName: "Norte", ProductID: 2, ProductName: "Yerba", Quantity: 2},
	}}
	publisher := &fakePublisher{}

	s, err := NewStockScheduler(context.Background(), testSchedulerConfig(), scanner, publisher)
	if err != nil {
		t.Fatalf("NewStockScheduler failed: %v", err)
	}

	if err := s.runLowStockSweep(context.Background(), 2); err != nil {
		t.Fatalf("runLowStockSweep failed: %v", err)
	}

	if len(publisher.messages) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(publisher.messages))
	}
	if publisher.messages[0] != "¡El producto Yerba en la sucursal Centro tiene stock 0!" {
		t.Errorf("unexpected depleted message: %s", publisher.messages[0])
	}
	if publisher.messages[1] != "¡El producto Yerba en la sucursal Norte tiene stock bajo (2)!" {
		t.Errorf("unexpected low stock message: %s", publisher.messages[1])
	}
}
