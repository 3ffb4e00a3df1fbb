package metadata

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a keyed view over a single gache file. A nil cacher caches nothing.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.RWMutex
}

func newCacher[K comparable, T any](dir, name string, lifetime time.Duration) *cacher[K, T] {
	if lifetime <= 0 {
		return nil
	}

	return &cacher[K, T]{
		internal: gache.New[*cacheData[K, T]](&gache.Options{
			Path:       filepath.Join(dir, name),
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	if c == nil {
		return mo.None[T]()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if v, ok := data.Entries[key]; ok {
		return mo.Some(v)
	}

	return mo.None[T]()
}

func (c *cacher[K, T]) Set(key K, t T) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// An unreadable file is replaced rather than blocking new entries.
	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[key] = t
	return c.internal.Set(data)
}
