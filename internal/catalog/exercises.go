package catalog

import (
	"context"

	"fittrack/api/internal/models"
)

type ExerciseFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Exercise, error)
}

type ExerciseSource struct {
	Source Source
	Repo   ExerciseFinder
	Accept func(models.Exercise) bool
}

// ExerciseChain resolves batches of exercise ids, one query per source.
type ExerciseChain []ExerciseSource

// ExerciseIndex maps ids to the entry chosen by the chain.
type ExerciseIndex map[string]Entry[models.Exercise]

// Index looks up every id. Each id is taken from the first source that holds
// and accepts it; later sources are only queried for ids still unresolved.
func (c ExerciseChain) Index(ctx context.Context, ids []string) (ExerciseIndex, error) {
	index := make(ExerciseIndex, len(ids))
	pending := unique(ids)

	for _, src := range c {
		if len(pending) == 0 {
			break
		}
		items, err := src.Repo.FindByIDs(ctx, pending)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if _, taken := index[item.ID]; taken {
				continue
			}
			if src.Accept != nil && !src.Accept(item) {
				continue
			}
			index[item.ID] = Entry[models.Exercise]{Source: src.Source, Item: item}
		}

		next := make([]string, 0, len(pending))
		for _, id := range pending {
			if _, ok := index[id]; !ok {
				next = append(next, id)
			}
		}
		pending = next
	}
	return index, nil
}

// Populate expands ids into exercises in the order given, dropping ids found
// nowhere.
func (c ExerciseChain) Populate(ctx context.Context, ids []string) ([]Entry[models.Exercise], error) {
	if len(ids) == 0 {
		return []Entry[models.Exercise]{}, nil
	}
	index, err := c.Index(ctx, ids)
	if err != nil {
		return nil, err
	}
	return index.Expand(ids), nil
}

// Missing returns the ids, deduplicated and in first-seen order, that no
// source accepts.
func (c ExerciseChain) Missing(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	index, err := c.Index(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, id := range unique(ids) {
		if _, ok := index[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (ix ExerciseIndex) Expand(ids []string) []Entry[models.Exercise] {
	out := make([]Entry[models.Exercise], 0, len(ids))
	for _, id := range ids {
		if entry, ok := ix[id]; ok {
			out = append(out, entry)
		}
	}
	return out
}

func unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
