package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	applog "ecole/internal/log"
)

// settle schedules a repository fetch on the group and converts its failure
// into an empty result, so the group join never short-circuits and sibling
// fetches always run to completion. The degraded fetch is logged, not
// surfaced.
func settle[T any](ctx context.Context, g *errgroup.Group, logger *applog.Logger, entity string, dst *[]T, list func(context.Context) ([]T, error)) {
	g.Go(func() error {
		items, err := list(ctx)
		if err != nil {
			logger.WarnContext(ctx, "fetch degraded to empty",
				applog.FieldEntity, entity,
				applog.FieldError, err)
			return nil
		}
		*dst = items
		return nil
	})
}

// settleTask is settle for non-list sub-computations inside composers: a
// failed section keeps its zero value.
func settleTask(g *errgroup.Group, run func()) {
	g.Go(func() error {
		run()
		return nil
	})
}
