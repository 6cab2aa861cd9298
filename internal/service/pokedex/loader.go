package pokedex

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pokedex-backend/internal/provider"
)

const (
	detailsBatchWait     = 2 * time.Millisecond
	detailsBatchCapacity = 100
)

type fetchDetailsFunc func(ctx context.Context, detailsURL string) (*provider.DetailsResult, error)

// detailsLoader coalesces concurrent details fetches for the same URL and
// memoises successful results. Failed results are dropped from the cache.
//
// The loader is shared by every caller of the service, while a batch runs
// with the context of whichever Load opened it. The batch therefore keeps
// that context's values but not its cancellation; the HTTP client timeout
// bounds it, and each caller stops waiting when its own ctx is done.
type detailsLoader struct {
	loader *dataloader.Loader[string, *provider.DetailsResult]
}

func newDetailsLoader(fetch fetchDetailsFunc) *detailsLoader {
	batchFn := func(ctx context.Context, keys []string) []*dataloader.Result[*provider.DetailsResult] {
		ctx = context.WithoutCancel(ctx)
		results := make([]*dataloader.Result[*provider.DetailsResult], len(keys))

		var g errgroup.Group
		for i, key := range keys {
			g.Go(func() error {
				res, err := fetch(ctx, key)
				results[i] = &dataloader.Result[*provider.DetailsResult]{Data: res, Error: err}
				return nil
			})
		}
		_ = g.Wait()

		return results
	}

	return &detailsLoader{
		loader: dataloader.NewBatchedLoader(batchFn,
			dataloader.WithWait[string, *provider.DetailsResult](detailsBatchWait),
			dataloader.WithBatchCapacity[string, *provider.DetailsResult](detailsBatchCapacity),
		),
	}
}

// Load returns the details at detailsURL. reload drops any memoised result first.
// It returns ctx.Err() as soon as ctx is done, leaving the batch to finish for
// the other callers waiting on it.
func (l *detailsLoader) Load(ctx context.Context, detailsURL string, reload bool) (*provider.DetailsResult, error) {
	if reload {
		l.loader.Clear(ctx, detailsURL)
	}
	thunk := l.loader.Load(ctx, detailsURL)

	type loaded struct {
		res *provider.DetailsResult
		err error
	}
	done := make(chan loaded, 1)
	go func() {
		res, err := thunk()
		if err != nil {
			l.loader.Clear(context.WithoutCancel(ctx), detailsURL)
		}
		done <- loaded{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.res, out.err
	}
}
