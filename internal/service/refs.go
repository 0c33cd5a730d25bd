package service

import (
	"context"
	"errors"
	"slices"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
)

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func addID(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []string, id string) ([]string, bool) {
	if !slices.Contains(ids, id) {
		return ids, false
	}
	return slices.DeleteFunc(models.CloneIDs(ids), func(s string) bool { return s == id }), true
}

// diffIDs reports which ids appear only in after (added) and only in before (removed).
func diffIDs(before, after []string) (added, removed []string) {
	for _, id := range after {
		if !slices.Contains(before, id) {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if !slices.Contains(after, id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// resolveRefs deduplicates ids and checks each one exists in col.
func resolveRefs[T any](ctx context.Context, tx *txn, col repository.Collection[T], field string, ids []string) ([]string, error) {
	ids = uniqueIDs(ids)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		_, err := col.Get(ctx, id)
		switch {
		case err == nil:
			out = append(out, id)
		case errors.Is(err, models.ErrNotFound):
			if tx.importing {
				continue
			}
			return nil, models.NewValidationError("%s references unknown id %q", field, id)
		default:
			return nil, err
		}
	}
	return out, nil
}

func update[T any](ctx context.Context, col repository.Collection[T], id string, fn func(*T)) error {
	v, err := col.Get(ctx, id)
	if err != nil {
		return err
	}
	fn(&v)
	return col.Save(ctx, v)
}

// stripAll removes id from the reference set picked by refs on every item of col.
func stripAll[T any](ctx context.Context, col repository.Collection[T], id string, refs func(*T) *[]string) error {
	items, err := col.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		set := refs(&item)
		next, removed := removeID(*set, id)
		if !removed {
			continue
		}
		*set = next
		if err := col.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// linkEach adds or removes owner in the reference set of each target.
func linkEach[T any](ctx context.Context, col repository.Collection[T], targets []string, owner string, link bool, refs func(*T) *[]string) error {
	for _, target := range targets {
		err := update(ctx, col, target, func(v *T) {
			set := refs(v)
			if link {
				*set = addID(*set, owner)
			} else {
				*set, _ = removeID(*set, owner)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}
