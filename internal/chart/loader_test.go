package chart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coinScope/internal/model"
)

type gatedFetcher struct {
	mu      sync.Mutex
	calls   int
	started chan int
	gates   map[int]chan struct{}
	err     error
}

func newGatedFetcher(n int) *gatedFetcher {
	f := &gatedFetcher{started: make(chan int, n), gates: make(map[int]chan struct{})}
	for i := 1; i <= n; i++ {
		f.gates[i] = make(chan struct{})
	}
	return f
}

func (f *gatedFetcher) GetCoinMarketChart(ctx context.Context, id model.AssetID, currency string, days int) (*model.MarketChart, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	f.started <- call

	select {
	case <-f.gates[call]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	v := float64(call)
	return &model.MarketChart{
		Prices:       []model.SeriesPoint{{1000, v}},
		TotalVolumes: []model.SeriesPoint{{1000, v * 10}},
		MarketCaps:   []model.SeriesPoint{{1000, v * 100}},
	}, nil
}

func waitTask(t *testing.T, task *Task) ([]model.ChartPoint, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	points, err := task.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("task did not finish")
	}
	return points, err
}

func TestLoaderPublishes(t *testing.T) {
	f := newGatedFetcher(1)
	l := NewLoader(f, nil)

	task := l.Load(context.Background(), "bitcoin", "usd", 7)
	<-f.started
	if s := l.State(); !s.Loading || s.Days != 7 || s.AssetID != "bitcoin" {
		t.Fatalf("expected loading state, got %+v", s)
	}

	close(f.gates[1])
	points, err := waitTask(t, task)
	if err != nil || len(points) != 1 || points[0].Price != 1 {
		t.Fatalf("unexpected result: %+v, %v", points, err)
	}

	s := l.State()
	if s.Loading || s.Err != nil || len(s.Points) != 1 || s.Points[0].MarketCap != 100 {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestLoaderNewLoadCancelsPrevious(t *testing.T) {
	f := newGatedFetcher(2)
	l := NewLoader(f, nil)
	ctx := context.Background()

	first := l.Load(ctx, "bitcoin", "usd", 7)
	<-f.started
	second := l.Load(ctx, "bitcoin", "usd", 30)
	<-f.started

	if _, err := waitTask(t, first); !errors.Is(err, context.Canceled) {
		t.Fatalf("first load should be cancelled, got %v", err)
	}

	close(f.gates[2])
	if _, err := waitTask(t, second); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	s := l.State()
	if s.Days != 30 || len(s.Points) != 1 || s.Points[0].Price != 2 {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestLoaderCloseDropsPending(t *testing.T) {
	f := newGatedFetcher(1)
	l := NewLoader(f, nil)

	task := l.Load(context.Background(), "bitcoin", "usd", 7)
	<-f.started
	l.Close()

	if _, err := waitTask(t, task); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if s := l.State(); len(s.Points) != 0 {
		t.Fatalf("closed loader published points: %+v", s)
	}

	if _, err := waitTask(t, l.Load(context.Background(), "bitcoin", "usd", 7)); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestLoaderError(t *testing.T) {
	f := newGatedFetcher(1)
	f.err = errors.New("boom")
	l := NewLoader(f, nil)

	task := l.Load(context.Background(), "bitcoin", "usd", 7)
	<-f.started
	close(f.gates[1])

	if _, err := waitTask(t, task); err == nil {
		t.Fatalf("expected error")
	}
	if s := l.State(); s.Loading || s.Err == nil {
		t.Fatalf("unexpected state: %+v", s)
	}
}
