package export

import (
	"context"

	"resumeStudio/internal/document"
)

// Task 是一次异步导出。
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}

	artifact *Artifact
	err      error
}

// Start runs the export in its own goroutine. The task stops when ctx is done
// or Cancel is called.
func (e *Exporter) Start(ctx context.Context, doc *document.Document, filename string, f Format, q Quality) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer cancel()
		t.artifact, t.err = e.Export(ctx, doc, filename, f, q)
	}()
	return t
}

// Cancel asks the export to stop; Wait still has to be called for the result.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the export finished, successfully or not.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the export finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) (*Artifact, error) {
	select {
	case <-t.done:
		return t.artifact, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
