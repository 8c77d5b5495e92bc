package services

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// sharedCall runs fn once per key for all concurrent callers. fn runs on a
// context detached from any single caller's cancellation; a caller whose ctx
// ends stops waiting and gets ctx.Err() while the call continues for the rest.
func sharedCall[T any](ctx context.Context, g *singleflight.Group, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	detached := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Val.(T), nil
	}
}
