package gas

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/costmodel/types"
)

func testSchedule() *Schedule {
	return NewSchedule(types.NewCostTable(map[types.CostType]types.QuantizedCostModel{
		types.CostSha256Hash: {ConstParam: 100, LinParam: 2},
		types.CostHostMemCpy: {ConstParam: 10, LinParam: 1},
	}))
}

func TestChargeConsumesEvaluatedCost(t *testing.T) {
	m := NewScheduledMeter(10_000, testSchedule())

	require.NoError(t, m.Charge(types.CostSha256Hash, 50))
	assert.Equal(t, uint64(200), m.Consumed()) // 100 + 2*50
	assert.Equal(t, uint64(9_800), m.Remaining())

	require.NoError(t, m.Charge(types.CostSha256Hash, 0))
	assert.Equal(t, uint64(300), m.Consumed()) // zero size charges the constant alone
}

func TestChargeUncalibratedOperationFails(t *testing.T) {
	m := NewScheduledMeter(10_000, testSchedule())

	err := m.Charge(types.CostWasmInsnExec, 1)
	require.Error(t, err)
	assert.IsType(t, types.UncalibratedOperationError{}, err)
	// a failed charge consumes nothing
	assert.Equal(t, uint64(0), m.Consumed())
}

func TestOutOfGas(t *testing.T) {
	m := NewScheduledMeter(150, testSchedule())

	err := m.Charge(types.CostSha256Hash, 50) // costs 200
	require.Error(t, err)
	var oog OutOfGasError
	require.ErrorAs(t, err, &oog)
	assert.Equal(t, uint64(200), oog.Wanted)
	assert.Equal(t, uint64(150), oog.Available)

	// cheaper charges still fit afterwards
	require.NoError(t, m.Charge(types.CostHostMemCpy, 100)) // costs 110
	assert.Equal(t, uint64(40), m.Remaining())
}

func TestConsumeSaturatedCostExhaustsMeter(t *testing.T) {
	s := NewSchedule(types.NewCostTable(map[types.CostType]types.QuantizedCostModel{
		types.CostHostMemAlloc: {ConstParam: 1, LinParam: math.MaxUint64},
	}))
	m := NewScheduledMeter(math.MaxUint64, s)

	// evaluation saturates instead of wrapping, so the charge is the full limit
	require.NoError(t, m.Charge(types.CostHostMemAlloc, 1<<40))
	assert.Equal(t, uint64(math.MaxUint64), m.Consumed())
	assert.False(t, m.HasGas())
}

func TestScheduleReplaceIsWholesale(t *testing.T) {
	s := testSchedule()
	m := NewScheduledMeter(10_000, s)

	require.NoError(t, m.Charge(types.CostSha256Hash, 10))

	s.Replace(types.NewCostTable(map[types.CostType]types.QuantizedCostModel{
		types.CostSha256Hash: {ConstParam: 1, LinParam: 1},
	}))

	before := m.Consumed()
	require.NoError(t, m.Charge(types.CostSha256Hash, 10))
	assert.Equal(t, before+11, m.Consumed())

	// entries absent from the new table are gone, not inherited
	err := m.Charge(types.CostHostMemCpy, 1)
	assert.IsType(t, types.UncalibratedOperationError{}, err)
}

func TestScheduleConcurrentReaders(t *testing.T) {
	s := testSchedule()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_, err := s.Current().Lookup(types.CostSha256Hash)
				assert.NoError(t, err)
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.Replace(s.Current())
	}
	wg.Wait()
}
