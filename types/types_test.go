package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizedEvaluate(t *testing.T) {
	m := QuantizedCostModel{ConstParam: 10, LinParam: 1}

	assert.Equal(t, uint64(10), m.Evaluate(0))
	assert.Equal(t, uint64(11), m.Evaluate(1))
	assert.Equal(t, uint64(1010), m.Evaluate(1000))
}

func TestQuantizedEvaluateZeroSize(t *testing.T) {
	// zero-sized input costs the fixed overhead alone, for every model
	for _, m := range []QuantizedCostModel{
		{ConstParam: 0, LinParam: 0},
		{ConstParam: 42, LinParam: 0},
		{ConstParam: 42, LinParam: 7},
		{ConstParam: math.MaxUint64, LinParam: math.MaxUint64},
	} {
		assert.Equal(t, uint64(m.ConstParam), m.Evaluate(0))
	}
}

func TestQuantizedEvaluateSaturates(t *testing.T) {
	mulOverflow := QuantizedCostModel{ConstParam: 0, LinParam: math.MaxUint64}
	assert.Equal(t, uint64(math.MaxUint64), mulOverflow.Evaluate(2))

	addOverflow := QuantizedCostModel{ConstParam: math.MaxUint64, LinParam: 1}
	assert.Equal(t, uint64(math.MaxUint64), addOverflow.Evaluate(1))

	// saturated, not wrapped: the result never shrinks below either term
	m := QuantizedCostModel{ConstParam: 1 << 63, LinParam: 1 << 62}
	assert.Equal(t, uint64(math.MaxUint64), m.Evaluate(3))
}

func TestFPEvaluate(t *testing.T) {
	m := CostModel{ConstParam: 10, LinParam: 0.4}
	assert.Equal(t, 10.0, m.Evaluate(0))
	assert.InDelta(t, 410.0, m.Evaluate(1000), 1e-9)
	// non-finite inputs charge the constant alone rather than poisoning the result
	assert.Equal(t, 10.0, m.Evaluate(math.Inf(1)))
	assert.Equal(t, 10.0, m.Evaluate(math.NaN()))
}

func TestQuantizedModelJSONRoundTrip(t *testing.T) {
	// string-encoded so values above 2^53 survive JSON exactly
	m := QuantizedCostModel{ConstParam: math.MaxUint64, LinParam: 1<<53 + 1}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"const_param":"18446744073709551615","lin_param":"9007199254740993"}`, string(data))

	var decoded QuantizedCostModel
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestUint64RejectsBareNumbers(t *testing.T) {
	var u Uint64
	require.Error(t, json.Unmarshal([]byte(`123`), &u))
	require.Error(t, json.Unmarshal([]byte(`"not a number"`), &u))
	require.NoError(t, json.Unmarshal([]byte(`"123"`), &u))
	assert.Equal(t, Uint64(123), u)
}

func TestCostTableLookup(t *testing.T) {
	table := NewCostTable(map[CostType]QuantizedCostModel{
		CostSha256Hash: {ConstParam: 100, LinParam: 2},
	})

	model, err := table.Lookup(CostSha256Hash)
	require.NoError(t, err)
	assert.Equal(t, Uint64(100), model.ConstParam)

	_, err = table.Lookup(CostKeccak256Hash)
	require.Error(t, err)
	assert.IsType(t, UncalibratedOperationError{}, err)
	assert.Contains(t, err.Error(), "compute_keccak256_hash")
}

func TestCostTableIsACopy(t *testing.T) {
	entries := map[CostType]QuantizedCostModel{
		CostSha256Hash: {ConstParam: 1, LinParam: 1},
	}
	table := NewCostTable(entries)

	// mutating the input map after construction must not affect the table
	entries[CostKeccak256Hash] = QuantizedCostModel{}
	delete(entries, CostSha256Hash)

	assert.Equal(t, 1, table.Len())
	_, err := table.Lookup(CostSha256Hash)
	assert.NoError(t, err)
}

func TestCostTableOpsSorted(t *testing.T) {
	table := NewCostTable(map[CostType]QuantizedCostModel{
		CostWasmInsnExec: {},
		CostSha256Hash:   {},
		CostHostMemCpy:   {},
	})
	ops := table.Ops()
	require.Len(t, ops, 3)
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1], ops[i])
	}
}

func TestAllCostTypesAreValid(t *testing.T) {
	for _, ct := range AllCostTypes() {
		assert.True(t, IsValidCostType(string(ct)))
	}
	assert.False(t, IsValidCostType("compute_md5_hash"))
}
