package jsonpath

import (
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is used by NewCache for sizes below one.
const DefaultCacheSize = 256

// Cache keeps recently compiled paths keyed by their source text. Failed
// compilations are not cached. Safe for concurrent use.
type Cache struct {
	paths *lru.Cache
	opts  []ParseOption
}

// NewCache returns a cache of at most size paths, each compiled with opts.
func NewCache(size int, opts ...ParseOption) (*Cache, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	paths, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{paths: paths, opts: opts}, nil
}

// Parse returns the cached path for source, compiling it on a miss.
func (c *Cache) Parse(source string) (*Path, error) {
	if cached, ok := c.paths.Get(source); ok {
		return cached.(*Path), nil
	}

	path, err := Parse(source, c.opts...)
	if err != nil {
		return nil, err
	}
	c.paths.Add(source, path)
	return path, nil
}

func (c *Cache) Len() int {
	return c.paths.Len()
}

func (c *Cache) Purge() {
	c.paths.Purge()
}
