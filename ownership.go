package ownership

// Dropper is implemented by managed values that need cleanup when their
// last owning handle releases them. Values without a Drop method are
// simply unreferenced and left to the garbage collector.
type Dropper interface {
	Drop()
}

// CellAllocator provides counter cells for shared lineages. A cell is
// allocated once, when a fresh value is adopted, and freed together with
// the managed value when the count reaches zero.
//
// AllocCell may fail; the failure must be observable as a non-nil error.
// FreeCell must accept any cell previously returned by AllocCell.
type CellAllocator interface {
	AllocCell() (*int64, error)
	FreeCell(cell *int64)
}
