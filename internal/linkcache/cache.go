// Package linkcache caches per-link state keyed by an unordered node
// pair: the a->b and b->a directions of a link are the same entry. An
// extra class id separates independent state families sharing the same
// endpoints.
package linkcache

import "github.com/netfabric/intsim/internal/core"

type pathKey struct {
	lo, hi uint32
	class  uint32
}

// keyFor normalizes the endpoint order so lookups are symmetric.
func keyFor(a, b, class uint32) pathKey {
	if a > b {
		a, b = b, a
	}
	return pathKey{lo: a, hi: b, class: class}
}

// Cache memoizes one T per (unordered node pair, class).
type Cache[T any] struct {
	paths map[pathKey]T
}

func New[T any]() *Cache[T] {
	return &Cache[T]{paths: make(map[pathKey]T)}
}

// Get returns the state cached for the path, if any.
func (c *Cache[T]) Get(a, b, class uint32) (T, bool) {
	v, ok := c.paths[keyFor(a, b, class)]
	return v, ok
}

// Add caches state for the path. Adding a path twice is a caller bug and
// returns ErrDuplicateLink with the cache unchanged.
func (c *Cache[T]) Add(v T, a, b, class uint32) error {
	k := keyFor(a, b, class)
	if _, ok := c.paths[k]; ok {
		return core.ErrDuplicateLink
	}
	c.paths[k] = v
	return nil
}

// Len returns the number of cached paths.
func (c *Cache[T]) Len() int {
	return len(c.paths)
}

// Cleanup empties the cache, calling dispose (when non-nil) on each
// entry first.
func (c *Cache[T]) Cleanup(dispose func(T)) {
	if dispose != nil {
		for _, v := range c.paths {
			dispose(v)
		}
	}
	clear(c.paths)
}
