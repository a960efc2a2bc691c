package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_CollapsesConcurrentCalls(t *testing.T) {
	g := NewGroup[[]string]()

	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	fn := func() ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []string{"a", "b"}, nil
	}

	var wg sync.WaitGroup
	results := make([]Result[[]string], 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = g.Do(context.Background(), "http://localhost:8080", fn)
	}()

	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = g.Do(context.Background(), "http://localhost:8080", fn)
	}()

	// let the second caller join the in flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, []string{"a", "b"}, res.Value)
	}
}

func TestGroup_SequentialCallsRunAgain(t *testing.T) {
	g := NewGroup[int]()
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		res := g.Do(context.Background(), "k", func() (int, error) {
			return int(calls.Add(1)), nil
		})
		require.NoError(t, res.Err)
	}

	assert.Equal(t, int32(3), calls.Load())
}

func TestGroup_PropagatesErrors(t *testing.T) {
	g := NewGroup[int]()
	boom := errors.New("boom")

	res := g.Do(context.Background(), "k", func() (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, res.Err, boom)
	assert.Zero(t, res.Value)
}

func TestGroup_CallerContextOnlyBoundsWaiting(t *testing.T) {
	g := NewGroup[string]()
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		res := g.Do(context.Background(), "k", func() (string, error) {
			<-release
			return "ok", nil
		})
		assert.Equal(t, "ok", res.Value)
	}()

	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res := g.Do(ctx, "k", func() (string, error) { return "second", nil })
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)

	close(release)
	<-done
}

func TestGroup_ForgetStartsFreshCall(t *testing.T) {
	g := NewGroup[int]()

	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	fn := func() (int, error) {
		n := calls.Add(1)
		started <- struct{}{}
		<-release
		return int(n), nil
	}

	first := make(chan Result[int], 1)
	go func() { first <- g.Do(context.Background(), "k", fn) }()
	<-started

	g.Forget("k")
	second := make(chan Result[int], 1)
	go func() { second <- g.Do(context.Background(), "k", fn) }()
	<-started

	close(release)
	assert.Equal(t, 1, (<-first).Value)
	assert.Equal(t, 2, (<-second).Value)
	assert.Equal(t, int32(2), calls.Load())
}
