package setup

import (
	"context"
	"sync"

	"github.com/thushan/llmsource/internal/adapter/query"
	"github.com/thushan/llmsource/internal/core/domain"
)

// Batch is one listing shared by every panel that joined the same remote
// call. Its models reach the store at most once, appended by the first panel
// still current when the call returns.
type Batch struct {
	LLMs []*domain.LLM
	err  error
	once sync.Once
}

func (b *Batch) commit(store func([]*domain.LLM) error) error {
	b.once.Do(func() { b.err = store(b.LLMs) })
	return b.err
}

// QueryGroup dedups list calls across panels of the same source and host
type QueryGroup = query.Group[*Batch]

func NewQueryGroup() *QueryGroup {
	return query.NewGroup[*Batch]()
}

// FetchResult is the outcome of one list models round trip
type FetchResult struct {
	Err       error
	Host      string
	RequestID string
	LLMs      []*domain.LLM
	// Shared is set when another caller's fetch produced the result
	Shared bool
}

// Task is a fetch started by a panel, awaited by whoever triggered it
type Task struct {
	done      chan struct{}
	result    FetchResult
	host      string
	requestID string
}

func newTask(host, requestID string) *Task {
	return &Task{
		done:      make(chan struct{}),
		host:      host,
		requestID: requestID,
	}
}

func (t *Task) Host() string {
	return t.host
}

func (t *Task) RequestID() string {
	return t.requestID
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the fetch completes or ctx is done
func (t *Task) Wait(ctx context.Context) ([]*domain.LLM, error) {
	select {
	case <-t.done:
		return t.result.LLMs, t.result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result is only meaningful once Done is closed
func (t *Task) Result() FetchResult {
	select {
	case <-t.done:
		return t.result
	default:
		return FetchResult{Host: t.host, RequestID: t.requestID}
	}
}

func (t *Task) complete(result FetchResult) {
	t.result = result
	close(t.done)
}
