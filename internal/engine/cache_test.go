package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingSource struct {
	calls atomic.Int32
	delay time.Duration
	table Table
	err   error
}

func (s *countingSource) Load() (Table, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	return s.table, s.err
}

func fixtureTable() Table {
	t := Table{}
	t.Set(1990, 5, 10, Entry{Day: 11, Month: 17})
	t.Set(1990, 5, 11, Entry{Day: 12, Month: 17})
	return t
}

func TestCacheParsesOnceUnderConcurrency(t *testing.T) {
	src := &countingSource{delay: 20 * time.Millisecond, table: fixtureTable()}
	c := NewCache(src)

	const callers = 64
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			e, err := c.Mapping(1990, 5, 10)
			if err == nil && e.Day != 11 {
				err = errors.New("wrong entry")
			}
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, int64(1), c.Stats().Loads)
	assert.True(t, c.Ready())
}

func TestCacheLoadFailureIsSticky(t *testing.T) {
	boom := errors.New("disk on fire")
	src := &countingSource{err: boom}
	c := NewCache(src)
	assert.NoError(t, c.Err())

	for i := 0; i < 3; i++ {
		_, err := c.Mapping(1990, 5, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, boom)
	}
	assert.ErrorIs(t, c.Warm(), ErrLoad)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.False(t, c.Ready())
	assert.Nil(t, c.Years())
	assert.ErrorIs(t, c.Err(), boom)
}

func TestCacheEmptyTableIsLoadFailure(t *testing.T) {
	c := NewCache(SourceFunc(func() (Table, error) { return Table{}, nil }))
	assert.ErrorIs(t, c.Warm(), ErrLoad)
}

func TestCacheNotFound(t *testing.T) {
	c := NewTableCache(fixtureTable())

	_, err := c.Mapping(1890, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMappingNotFound)
	assert.Contains(t, err.Error(), "1890-1-1")
	assert.NotErrorIs(t, err, ErrLoad)
}

func TestCacheMemoizes(t *testing.T) {
	c := NewTableCache(fixtureTable())

	for i := 0; i < 5; i++ {
		_, err := c.Mapping(1990, 5, 11)
		require.NoError(t, err)
	}
	s := c.Stats()
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, int64(4), s.Hits)
	assert.Equal(t, 2, s.Dates)
	assert.Equal(t, []int{1990}, c.Years())
}

func TestCacheConcurrentMisses(t *testing.T) {
	c := NewTableCache(fixtureTable())
	require.NoError(t, c.Warm())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, _ = c.Mapping(1990, 5, day)
		}(10 + i%2)
	}
	wg.Wait()

	s := c.Stats()
	assert.Equal(t, int64(32), s.Hits+s.Misses)
}
