package gas

import (
	"sync/atomic"

	"github.com/CosmWasm/costmodel/types"
)

// Schedule holds the cost table the metering layer reads from. The table
// itself is immutable; recalibration swaps the whole table in one atomic
// store, so readers always observe a consistent set of models and partial
// updates cannot exist. Construct one at host startup and hand it to the
// metering layer explicitly rather than through package-level state.
type Schedule struct {
	table atomic.Pointer[types.CostTable]
}

// NewSchedule creates a schedule serving the given table.
func NewSchedule(t *types.CostTable) *Schedule {
	s := &Schedule{}
	s.table.Store(t)
	return s
}

// Current returns the table in effect. Safe for concurrent readers with no
// locking.
func (s *Schedule) Current() *types.CostTable {
	return s.table.Load()
}

// Replace swaps in a newly calibrated table. Meters created before the swap
// keep charging against whichever table they read next; in-flight charges are
// not re-priced.
func (s *Schedule) Replace(t *types.CostTable) {
	s.table.Store(t)
}
