package detail

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"coinScope/internal/model"
)

var (
	// ErrStale is reported by a task whose response arrived after a newer
	// request for the same asset had been issued.
	ErrStale = errors.New("stale response discarded")
	// ErrCanceled is reported by a task cancelled before its response was applied.
	ErrCanceled = errors.New("request canceled")
)

// Task is one in-flight detail request.
type Task struct {
	ID      uuid.UUID
	AssetID model.AssetID

	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	entry Entry
	err   error
}

func newTask(ctx context.Context, id model.AssetID, seq uint64) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	return &Task{
		ID:      uuid.New(),
		AssetID: id,
		seq:     seq,
		ctx:     taskCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

func completedTask(id model.AssetID, entry Entry) *Task {
	t := newTask(context.Background(), id, 0)
	t.finish(entry, nil)
	return t
}

func (t *Task) finish(entry Entry, err error) {
	t.entry = entry
	t.err = err
	t.cancel()
	close(t.done)
}

// Done is closed once the task has completed, failed, or been discarded.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel aborts the request. A cancelled response is never applied.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the task finishes or ctx is done. It returns the cache
// entry as of completion and the fetch error, ErrStale, or ErrCanceled.
func (t *Task) Wait(ctx context.Context) (Entry, error) {
	select {
	case <-ctx.Done():
		return Entry{}, ctx.Err()
	case <-t.done:
		return t.entry, t.err
	}
}
