package chart

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coinScope/internal/model"
)

// LoadErrorMessage is the user-facing text for a failed chart load.
const LoadErrorMessage = "Failed to load data. Please try again later."

// ErrClosed is returned by loads started after Close.
var ErrClosed = errors.New("chart loader closed")

// Fetcher loads a market chart. *gecko.Client implements it.
type Fetcher interface {
	GetCoinMarketChart(ctx context.Context, id model.AssetID, currency string, days int) (*model.MarketChart, error)
}

// State is what a coin view renders for its chart.
type State struct {
	AssetID model.AssetID
	Days    int
	Points  []model.ChartPoint
	Loading bool
	Err     error
}

// Loader owns the chart fetches of one view. Starting a load cancels the
// previous one, and Close cancels whatever is still pending. Results of
// cancelled loads are never published to State.
type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu      sync.Mutex
	state   State
	current *Task
	closed  bool
}

func NewLoader(fetcher Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Task is one chart load.
type Task struct {
	ID uuid.UUID

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	points []model.ChartPoint
	err    error
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the load finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) ([]model.ChartPoint, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.points, t.err
	}
}

// Load starts fetching the chart for id over days.
func (l *Loader) Load(ctx context.Context, id model.AssetID, currency string, days int) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	task := &Task{ID: uuid.New(), ctx: taskCtx, cancel: cancel, done: make(chan struct{})}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		task.err = ErrClosed
		cancel()
		close(task.done)
		return task
	}
	if l.current != nil {
		l.current.cancel()
	}
	l.current = task
	l.state = State{AssetID: id, Days: days, Points: l.state.Points, Loading: true}
	l.mu.Unlock()

	go func() {
		defer cancel()
		chart, err := l.fetcher.GetCoinMarketChart(taskCtx, id, currency, days)
		var points []model.ChartPoint
		if err == nil {
			points = Zip(chart)
		}
		l.publish(task, points, err)
	}()

	return task
}

func (l *Loader) publish(task *Task, points []model.ChartPoint, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer close(task.done)

	if task.ctx.Err() != nil || l.current != task {
		task.err = context.Canceled
		l.logger.Debug("drop cancelled chart load", zap.String("task", task.ID.String()))
		return
	}

	task.points = points
	task.err = err
	l.current = nil
	l.state.Loading = false
	if err != nil {
		l.state.Err = err
		l.logger.Warn("chart load failed", zap.String("id", l.state.AssetID.String()), zap.Error(err))
		return
	}
	l.state.Points = points
	l.state.Err = nil
}

// State returns the latest published chart state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.state
	s.Points = append([]model.ChartPoint(nil), l.state.Points...)
	return s
}

// Close cancels any pending load. Later loads fail with ErrClosed.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.current != nil {
		l.current.cancel()
		l.current = nil
	}
}
