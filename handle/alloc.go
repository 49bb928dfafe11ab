package handle

import (
	"sync"

	"github.com/wippyai/ownership"
)

// CellAllocator is re-exported from the root package for convenience.
type CellAllocator = ownership.CellAllocator

// HeapCells allocates counter cells on the Go heap. It never fails and
// leaves freed cells to the garbage collector. This is the allocator used
// by NewShared.
type HeapCells struct{}

func (HeapCells) AllocCell() (*int64, error) { return new(int64), nil }

func (HeapCells) FreeCell(*int64) {}

// defaultCells is the shared stateless default.
var defaultCells = HeapCells{}

// PooledCells recycles counter cells through a sync.Pool. Useful for hot
// paths that churn short-lived lineages. Never fails.
type PooledCells struct {
	pool sync.Pool
}

// NewPooledCells creates a pooled cell allocator.
func NewPooledCells() *PooledCells {
	return &PooledCells{
		pool: sync.Pool{
			New: func() any { return new(int64) },
		},
	}
}

func (p *PooledCells) AllocCell() (*int64, error) {
	cell := p.pool.Get().(*int64)
	*cell = 0
	return cell, nil
}

func (p *PooledCells) FreeCell(cell *int64) {
	if cell == nil {
		return
	}
	*cell = 0
	p.pool.Put(cell)
}

// cellsOrDefault substitutes the heap allocator for a nil one.
func cellsOrDefault(alloc CellAllocator) CellAllocator {
	if alloc == nil {
		return defaultCells
	}
	return alloc
}
