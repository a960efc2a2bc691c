package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thushan/llmsource/internal/core/domain"
)

const DefaultFetchConcurrency = 4

// SourceFetch is what one headless fetch produced for a source
type SourceFetch struct {
	Err      error
	SourceID domain.SourceID
	Host     string
	LLMs     []*domain.LLM
	Latency  time.Duration
	Skipped  bool
}

// FetchSources runs a manual fetch for every id concurrently. A failing source
// doesn't stop the others, its error is reported in its SourceFetch. Sources
// whose host URL is not valid are marked skipped.
func (a *Application) FetchSources(ctx context.Context, ids []domain.SourceID) ([]SourceFetch, error) {
	results := make([]SourceFetch, len(ids))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(DefaultFetchConcurrency)

	for i, id := range ids {
		eg.Go(func() error {
			res := a.fetchSource(ctx, id)
			mu.Lock()
			results[i] = res
			mu.Unlock()

			// only cancellation of the whole run aborts the group
			if errors.Is(res.Err, context.Canceled) && ctx.Err() != nil {
				return res.Err
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (a *Application) fetchSource(ctx context.Context, id domain.SourceID) SourceFetch {
	res := SourceFetch{SourceID: id}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	panel, err := a.NewPanel(id)
	if err != nil {
		res.Err = err
		return res
	}
	defer panel.Close()

	res.Host = panel.HostURL()

	task, err := panel.Refetch()
	if errors.Is(err, domain.ErrFetchDisabled) {
		res.Skipped = true
		return res
	}
	if err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	res.LLMs, res.Err = task.Wait(ctx)
	res.Latency = time.Since(start)
	return res
}
