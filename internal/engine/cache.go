package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrMappingNotFound means the date is outside the dataset or the
	// dataset has a gap.
	ErrMappingNotFound = errors.New("no date mapping found")

	// ErrLoad wraps the failure to read or parse the dataset. Once returned
	// it is returned for the life of the Cache.
	ErrLoad = errors.New("date mappings unavailable")
)

// Source produces the full table. It is called at most once per Cache.
type Source interface {
	Load() (Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Table, error)

func (f SourceFunc) Load() (Table, error) { return f() }

// FileSource loads the dataset from a configured path.
type FileSource struct {
	Path string
}

func (s FileSource) Load() (Table, error) { return LoadFile(s.Path) }

// Stats are cumulative counters of a Cache.
type Stats struct {
	Loads  int64 `json:"loads"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Dates  int   `json:"dates"`
}

// Cache is the process-wide view of the dataset. Build one at startup and
// share it; the first Mapping or Warm call parses the source, every later
// call reads memory.
type Cache struct {
	src Source

	once  sync.Once
	table Table
	err   error
	ready atomic.Bool
	done  atomic.Bool

	mu   sync.RWMutex
	memo map[string]Entry

	loads  atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache(src Source) *Cache {
	return &Cache{
		src:  src,
		memo: make(map[string]Entry),
	}
}

// NewTableCache wraps an already built table.
func NewTableCache(t Table) *Cache {
	return NewCache(SourceFunc(func() (Table, error) { return t, nil }))
}

func (c *Cache) load() error {
	c.once.Do(func() {
		defer c.done.Store(true)
		c.loads.Add(1)
		t, err := c.src.Load()
		if err == nil && len(t) == 0 {
			err = errors.New("dataset is empty")
		}
		if err != nil {
			c.err = fmt.Errorf("%w: %w", ErrLoad, err)
			return
		}
		c.table = t
		c.ready.Store(true)
	})
	return c.err
}

// Warm forces the load and reports its outcome.
func (c *Cache) Warm() error { return c.load() }

// Ready is true once the table has loaded successfully.
func (c *Cache) Ready() bool { return c.ready.Load() }

// Err reports the load failure without blocking. It is nil while the load
// is still running or if it succeeded.
func (c *Cache) Err() error {
	if !c.done.Load() {
		return nil
	}
	return c.err
}

// Mapping returns the entry for a civil date.
func (c *Cache) Mapping(year, month, day int) (Entry, error) {
	if err := c.load(); err != nil {
		return Entry{}, err
	}

	key := Key(year, month, day)
	c.mu.RLock()
	e, ok := c.memo[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return e, nil
	}

	c.misses.Add(1)
	e, ok = c.table.Lookup(year, month, day)
	if !ok {
		return Entry{}, fmt.Errorf("%w for %s", ErrMappingNotFound, key)
	}

	c.mu.Lock()
	c.memo[key] = e
	c.mu.Unlock()
	return e, nil
}

// Years returns the dataset coverage, or nil before a successful load.
func (c *Cache) Years() []int {
	if !c.Ready() {
		return nil
	}
	return c.table.Years()
}

func (c *Cache) Stats() Stats {
	s := Stats{
		Loads:  c.loads.Load(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	if c.Ready() {
		s.Dates = c.table.Len()
	}
	return s
}
