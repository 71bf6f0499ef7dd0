package funcalg

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny batches from being split across goroutines.
const minChunk = 256

// Sample evaluates f at every point of xs, in order.
func Sample(f Func, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Evaluate(f, x)
	}
	return out
}

// SampleConcurrent is Sample spread over at most workers goroutines;
// workers <= 0 means GOMAXPROCS. Trees are immutable, so the goroutines
// share f without coordination. A ctx that is already done fails the call,
// even for an empty xs; cancellation later stops chunks that have not
// started yet. Either way the context error is returned.
func SampleConcurrent(ctx context.Context, f Func, xs []float64, workers int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]float64, len(xs))
	chunk := (len(xs) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(xs); lo += chunk {
		hi := lo + chunk
		if hi > len(xs) {
			hi = len(xs)
		}
		lo := lo
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				out[i] = Evaluate(f, xs[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
