package catalog

import (
	"context"
	"errors"

	"fittrack/api/internal/repository"
)

var ErrNotFound = errors.New("catalog entry not found")

type Getter[T any] interface {
	GetByID(ctx context.Context, id string) (T, error)
}

// Probe is one step of a lookup chain. A hit rejected by Accept is treated as
// a miss, which lets callers scope a collection to one owner.
type Probe[T any] struct {
	Source Source
	Repo   Getter[T]
	Accept func(T) bool
}

// Chain is an ordered list of probes. The order is policy: callers decide
// whether the user collection shadows the default one.
type Chain[T any] []Probe[T]

// Resolve returns the first accepted hit, or ErrNotFound.
func (c Chain[T]) Resolve(ctx context.Context, id string) (Entry[T], error) {
	for _, probe := range c {
		item, err := probe.Repo.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return Entry[T]{}, err
		}
		if probe.Accept != nil && !probe.Accept(item) {
			continue
		}
		return Entry[T]{Source: probe.Source, Item: item}, nil
	}
	return Entry[T]{}, ErrNotFound
}

// Sources lists the sources of the chain in probe order.
func (c Chain[T]) Sources() []Source {
	out := make([]Source, 0, len(c))
	for _, probe := range c {
		out = append(out, probe.Source)
	}
	return out
}
