package finder

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// preloadLimit bounds concurrent loads during Preload.
const preloadLimit = 4

// Preload loads the given sets concurrently. Failures are remembered by the
// store like any other load; the first one is returned after all loads
// finished.
func (f *Finder) Preload(ctx context.Context, provider string, prefixes ...string) error {
	var g errgroup.Group
	g.SetLimit(preloadLimit)
	for _, prefix := range prefixes {
		g.Go(func() error {
			_, err := f.iconSet(ctx, provider, prefix)
			return err
		})
	}
	return g.Wait()
}
