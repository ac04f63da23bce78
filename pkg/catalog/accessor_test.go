package catalog

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errcatalog/pkg/errx"
)

func countingSet(domain string, calls *atomic.Int32, codes ...string) *errx.Set {
	set := errx.NewSet(domain)
	for _, code := range codes {
		set.Add(func() errx.Descriptor {
			calls.Add(1)
			return errx.NewDescriptor(domain, code, code, "message for "+code)
		})
	}
	return set
}

func TestAccessor_BuildsOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	a := NewAccessor([]Provider{
		countingSet("auth", &calls, "expired_token", "invalid_token"),
		countingSet("billing", &calls, "card_declined"),
	})
	assert.Equal(t, StateUninitialized, a.State())

	const workers = 32
	results := make([]*Catalog, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := a.Get()
			assert.NoError(t, err)
			results[i] = c
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, StateReady, a.State())
	for _, c := range results {
		assert.Same(t, results[0], c)
	}
	assert.Equal(t, 3, results[0].Len())

	again, err := a.Get()
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAccessor_FailureIsTerminal(t *testing.T) {
	var calls atomic.Int32
	a := NewAccessor([]Provider{
		countingSet("auth", &calls, "invalid_token"),
		countingSet("auth", &calls, "invalid_token"),
	})

	c, err := a.Get()
	assert.Nil(t, c)
	require.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Equal(t, StateFailed, a.State())

	c2, err2 := a.Get()
	assert.Nil(t, c2)
	assert.Same(t, err, err2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAccessor_MustGet(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		var calls atomic.Int32
		a := NewAccessor([]Provider{countingSet("auth", &calls, "A")})
		assert.Equal(t, 1, a.MustGet().Len())
	})

	t.Run("failure hook", func(t *testing.T) {
		var calls atomic.Int32
		var got error
		a := NewAccessor(
			[]Provider{countingSet("", &calls, "A")},
			WithOnFailure(func(err error) { got = err }),
		)

		assert.Nil(t, a.MustGet())
		assert.ErrorIs(t, got, ErrEmptyDomainOrCode)
	})

	t.Run("default hook panics", func(t *testing.T) {
		var calls atomic.Int32
		a := NewAccessor([]Provider{
			countingSet("auth", &calls, "A"),
			countingSet("auth", &calls, "A"),
		})

		assert.Panics(t, func() { a.MustGet() })
	})
}

func TestAccessor_ProducerPanicFailsBuild(t *testing.T) {
	set := errx.NewSet("boom")
	set.Add(func() errx.Descriptor { panic("bad producer") })
	a := NewAccessor([]Provider{set})

	c, err := a.Get()

	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad producer")
	assert.Equal(t, StateFailed, a.State())
}

func TestAccessor_ReadySurvivesPanickingLogger(t *testing.T) {
	logger := funcr.New(func(prefix, args string) {
		panic("log sink failed")
	}, funcr.Options{Verbosity: 1})

	var calls atomic.Int32
	a := NewAccessor([]Provider{countingSet("auth", &calls, "A")}, WithLogger(logger))

	assert.Panics(t, func() { _, _ = a.Get() })
	assert.Equal(t, StateReady, a.State())

	c, err := a.Get()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int32(1), calls.Load())
}

func TestAccessor_LogsOutcome(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	var calls atomic.Int32
	a := NewAccessor([]Provider{countingSet("auth", &calls, "A")}, WithLogger(logger))
	_, err := a.Get()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg"="error catalog built"`)
	assert.Contains(t, lines[0], `"entries"=1`)

	lines = nil
	failing := NewAccessor([]Provider{
		countingSet("auth", &calls, "A"),
		countingSet("auth", &calls, "A"),
	}, WithLogger(logger))
	_, err = failing.Get()
	require.Error(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg"="error catalog build failed"`)
	assert.Contains(t, lines[1], `"msg"="error catalog violation"`)
	assert.Contains(t, lines[1], `"error.code"="DUPLICATE_REGISTRATION"`)
	assert.Contains(t, lines[1], `"error.domain"="catalog"`)
}

func TestAccessor_ProvidersAreCopied(t *testing.T) {
	var calls atomic.Int32
	providers := []Provider{countingSet("auth", &calls, "A")}
	a := NewAccessor(providers)
	providers[0] = countingSet("auth", &calls, "B")

	c, err := a.Get()
	require.NoError(t, err)
	_, ok := c.Lookup("auth", "A")
	assert.True(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "building", StateBuilding.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
