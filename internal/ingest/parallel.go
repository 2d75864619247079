package ingest

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/truesize/engine/pkg/core"
)

type result struct {
	countries []core.Country
	reason    string
	err       error
}

// LoadConcurrent is Load with measurement spread over workers goroutines
// (GOMAXPROCS when workers <= 0). Output order and ids match Load. It only
// fails when ctx is cancelled.
func (l *Loader) LoadConcurrent(ctx context.Context, features []core.Feature, workers int) ([]core.Country, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]result, len(features))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range features {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			countries, reason, err := l.convert(features[i])
			results[i] = result{countries: countries, reason: reason, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return l.collect(ctx, features, func(i int) ([]core.Country, string, error) {
		r := results[i]
		return r.countries, r.reason, r.err
	}), nil
}
