package reference

import (
	"context"
	"sync"

	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/requestcontext"
)

// ExistsFunc reports whether a reference is already issued. The memory
// allocator uses it for the same uniqueness recheck the SQL allocator does
// in-transaction.
type ExistsFunc func(ctx context.Context, reference string) (bool, error)

// MemoryAllocator is a mutex-guarded allocator for tests and development.
type MemoryAllocator struct {
	mu     sync.Mutex
	last   map[string]int
	prefix string
	exists ExistsFunc
}

// NewMemory constructs a memory allocator. exists may be nil when no issued
// references predate the allocator.
func NewMemory(prefix string, exists ExistsFunc) *MemoryAllocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &MemoryAllocator{
		last:   make(map[string]int),
		prefix: prefix,
		exists: exists,
	}
}

// Next allocates the next reference for the year of the request time.
func (a *MemoryAllocator) Next(ctx context.Context) (string, error) {
	year := requestcontext.Now(ctx).Year()
	suffix := YearSuffix(year)

	a.mu.Lock()
	defer a.mu.Unlock()

	candidate := a.last[suffix] + 1
	if a.exists != nil {
		for {
			taken, err := a.exists(ctx, Format(a.prefix, year, candidate))
			if err != nil {
				return "", dErrors.Wrap(err, dErrors.CodeInternal, "check reference uniqueness")
			}
			if !taken {
				break
			}
			candidate++
		}
	}

	a.last[suffix] = candidate
	return Format(a.prefix, year, candidate), nil
}
