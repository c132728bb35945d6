package nllb

import (
	"context"
	"fmt"
	"sync"

	"github.com/xpanvictor/linguabridge/internal/lang"
)

// Key identifies one memoized pipeline.
type Key struct {
	Tier ModelTier
	Src  lang.Code
	Tgt  lang.Code
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s->%s", k.Tier, k.Src, k.Tgt)
}

// ConstructionError reports that a pipeline could not be built for a key.
// The failure is not cached; a later Acquire for the same key retries.
type ConstructionError struct {
	Key Key
	Err error
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("building pipeline %s: %v", e.Key, e.Err)
}

func (e ConstructionError) Unwrap() error { return e.Err }

// BuildFunc constructs the resource for a key. Injected so tests can count
// and fail constructions.
type BuildFunc func(Key) (*Pipeline, error)

type cacheEntry struct {
	ready    chan struct{}
	pipeline *Pipeline
	err      error
}

// Cache lazily builds and memoizes pipelines. A key is constructed at most
// once even under concurrent first access: later callers for the same key
// block on the entry's ready channel while builders for other keys proceed
// independently. The map mutex is only held for bookkeeping, never across a
// build.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*cacheEntry
	build   BuildFunc
}

// NewCache returns a cache using the default pipeline builder for cfg.
func NewCache(cfg Config) *Cache {
	return NewCacheWithBuilder(func(key Key) (*Pipeline, error) {
		return newPipeline(cfg, key)
	})
}

// NewCacheWithBuilder returns a cache with a custom builder.
func NewCacheWithBuilder(build BuildFunc) *Cache {
	return &Cache{
		entries: make(map[Key]*cacheEntry),
		build:   build,
	}
}

// Acquire returns the pipeline for key, building it on first use.
func (c *Cache) Acquire(key Key) (*Pipeline, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		<-e.ready
		if e.err != nil {
			return nil, e.err
		}
		return e.pipeline, nil
	}
	e := &cacheEntry{ready: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	p, err := c.build(key)
	if err != nil {
		// Drop the entry before releasing waiters so the next Acquire
		// retries instead of observing a poisoned key.
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		e.err = ConstructionError{Key: key, Err: err}
		close(e.ready)
		return nil, e.err
	}
	e.pipeline = p
	close(e.ready)
	return p, nil
}

// Len returns the number of built (or in-flight) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Translator exposes the cache behind the single call the orchestrator
// needs.
type Translator struct {
	cache *Cache
}

func NewTranslator(cfg Config) *Translator {
	return &Translator{cache: NewCache(cfg)}
}

// Translate acquires the pipeline for (tier, src, tgt) and runs text
// through it.
func (t *Translator) Translate(ctx context.Context, text string, src, tgt lang.Code, tier ModelTier) (string, error) {
	p, err := t.cache.Acquire(Key{Tier: tier, Src: src, Tgt: tgt})
	if err != nil {
		return "", err
	}
	return p.Translate(ctx, text)
}
