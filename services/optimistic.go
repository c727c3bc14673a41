package services

import "context"

// RunOptimistic is the one place the snapshot -> apply -> persist ->
// commit-or-rollback contract lives. The mutation is applied to a clone of
// the snapshot and the clone is persisted; if the write fails the caller
// gets the untouched snapshot back, so observable state fully reverts
// rather than ending up partially applied.
func RunOptimistic[T any](
	ctx context.Context,
	snapshot T,
	clone func(T) T,
	apply func(T) T,
	persist func(context.Context, T) error,
) (T, error) {
	next := apply(clone(snapshot))
	if err := persist(ctx, next); err != nil {
		return snapshot, err
	}
	return next, nil
}
