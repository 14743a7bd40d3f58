package reference

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enquiries/pkg/requestcontext"
)

func ctxAt(year int) context.Context {
	return requestcontext.WithTime(context.Background(),
		time.Date(year, time.March, 1, 9, 0, 0, 0, time.UTC))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "MEM-25-0001", Format("MEM", 2025, 1))
	assert.Equal(t, "MEM-07-0042", Format("MEM", 2007, 42))
	assert.Equal(t, "MEM-25-10001", Format("MEM", 2025, 10001), "width grows past four digits")
	assert.Equal(t, "MEM-99-0001", Format("", 1999, 1), "empty prefix falls back to default")
}

func TestMemoryAllocatorSequence(t *testing.T) {
	a := NewMemory("MEM", nil)

	first, err := a.Next(ctxAt(2025))
	require.NoError(t, err)
	second, err := a.Next(ctxAt(2025))
	require.NoError(t, err)

	assert.Equal(t, "MEM-25-0001", first)
	assert.Equal(t, "MEM-25-0002", second)
}

func TestMemoryAllocatorPartitionsIndependent(t *testing.T) {
	a := NewMemory("MEM", nil)

	_, err := a.Next(ctxAt(2025))
	require.NoError(t, err)
	_, err = a.Next(ctxAt(2025))
	require.NoError(t, err)

	// A new year starts its own sequence at 1.
	next, err := a.Next(ctxAt(2026))
	require.NoError(t, err)
	assert.Equal(t, "MEM-26-0001", next)

	// The old year continues where it left off.
	back, err := a.Next(ctxAt(2025))
	require.NoError(t, err)
	assert.Equal(t, "MEM-25-0003", back)
}

func TestMemoryAllocatorSkipsIssuedReferences(t *testing.T) {
	issued := map[string]bool{
		"MEM-25-0001": true,
		"MEM-25-0002": true,
	}
	a := NewMemory("MEM", func(_ context.Context, ref string) (bool, error) {
		return issued[ref], nil
	})

	got, err := a.Next(ctxAt(2025))
	require.NoError(t, err)
	assert.Equal(t, "MEM-25-0003", got)
}

func TestMemoryAllocatorConcurrentUniqueness(t *testing.T) {
	a := NewMemory("MEM", nil)
	const goroutines = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := a.Next(ctxAt(2025))
			require.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[ref], "duplicate reference %s", ref)
			seen[ref] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines)
}
