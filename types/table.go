package types

import (
	"sort"
)

// CostTable maps each calibrated operation to its quantized cost model. It is
// the durable artifact of a calibration run: built once offline, loaded by the
// host at startup and treated as immutable configuration thereafter.
// Recalibration replaces a whole table, never individual entries.
type CostTable struct {
	models map[CostType]QuantizedCostModel
}

// NewCostTable builds an immutable table from the given entries. The input
// map is copied, so the caller may keep mutating it.
func NewCostTable(entries map[CostType]QuantizedCostModel) *CostTable {
	models := make(map[CostType]QuantizedCostModel, len(entries))
	for op, m := range entries {
		models[op] = m
	}
	return &CostTable{models: models}
}

// Lookup returns the model for op. A miss is an UncalibratedOperationError;
// callers must not fall back to a zero-cost model.
func (t *CostTable) Lookup(op CostType) (QuantizedCostModel, error) {
	m, ok := t.models[op]
	if !ok {
		return QuantizedCostModel{}, UncalibratedOperationError{Op: op}
	}
	return m, nil
}

// Ops returns the calibrated operations in lexicographic order, for
// deterministic serialization and logging.
func (t *CostTable) Ops() []CostType {
	ops := make([]CostType, 0, len(t.models))
	for op := range t.models {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Len returns the number of calibrated operations.
func (t *CostTable) Len() int {
	return len(t.models)
}
