// Package catalog resolves exercises and workouts across the user-owned and
// the admin-curated default collections.
//
// The two collections share one identifier namespace as far as clients are
// concerned, but nothing guarantees they are disjoint. Every lookup therefore
// goes through an explicit, ordered Chain of sources and stops at the first hit.
package catalog

type Source int

const (
	SourceUser Source = iota
	SourceDefault
)

func (s Source) String() string {
	if s == SourceDefault {
		return "default"
	}
	return "user"
}

// Entry tags a catalog item with the collection it came from.
type Entry[T any] struct {
	Source Source
	Item   T
}

func (e Entry[T]) IsDefault() bool {
	return e.Source == SourceDefault
}

// Tag wraps every item with the same source, keeping order.
func Tag[T any](source Source, items []T) []Entry[T] {
	out := make([]Entry[T], 0, len(items))
	for _, item := range items {
		out = append(out, Entry[T]{Source: source, Item: item})
	}
	return out
}

// Merge builds the client-visible list: default entries first, then the
// requester's own entries. Each input keeps its own order.
func Merge[T any](defaults, owned []T) []Entry[T] {
	out := make([]Entry[T], 0, len(defaults)+len(owned))
	out = append(out, Tag(SourceDefault, defaults)...)
	out = append(out, Tag(SourceUser, owned)...)
	return out
}
