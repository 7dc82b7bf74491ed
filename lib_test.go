package costmodel

import (
	"context"
	"fmt"
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/costmodel/types"
)

// stubSource feeds canned samples through the calibration pipeline.
type stubSource struct {
	op      types.CostType
	samples []types.Sample
	err     error
}

func (s stubSource) Op() types.CostType { return s.op }

func (s stubSource) Collect(_ context.Context) ([]types.Sample, error) {
	return s.samples, s.err
}

func linearSamples(constParam, linParam uint64, sizes ...uint64) []types.Sample {
	samples := make([]types.Sample, len(sizes))
	for i, size := range sizes {
		samples[i] = types.Sample{Size: size, Cost: constParam + linParam*size}
	}
	return samples
}

func TestFitModelFacade(t *testing.T) {
	m, err := FitModel([]uint64{100, 200, 300, 400}, []uint64{50, 90, 130, 170})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, m.ConstParam, 1e-9)
	assert.InDelta(t, 0.4, m.LinParam, 1e-9)

	q, err := Quantize(m)
	require.NoError(t, err)
	assert.Equal(t, uint64(1010), q.Evaluate(1000))
}

func TestBuildTableIsolatesFailures(t *testing.T) {
	samplesByOp := map[types.CostType][]types.Sample{
		types.CostSha256Hash: linearSamples(100, 3, 64, 128, 256, 512),
		// strictly decreasing cost: fails the slope gate
		types.CostHostMemCpy: {{Size: 10, Cost: 100}, {Size: 20, Cost: 50}},
		types.CostValSer:     linearSamples(7, 2, 16, 32, 64),
	}

	table, failures := BuildTable(samplesByOp)

	assert.Equal(t, 2, table.Len())
	require.Len(t, failures, 1)
	assert.IsType(t, types.NonMonotoneFitError{}, failures[types.CostHostMemCpy])

	model, err := table.Lookup(types.CostSha256Hash)
	require.NoError(t, err)
	assert.Equal(t, uint64(100+3*1000), model.Evaluate(1000))

	_, err = table.Lookup(types.CostHostMemCpy)
	assert.IsType(t, types.UncalibratedOperationError{}, err)
}

func TestCalibratorRun(t *testing.T) {
	sources := []types.SampleSource{
		stubSource{op: types.CostSha256Hash, samples: linearSamples(50, 2, 64, 128, 256)},
		stubSource{op: types.CostHostMemAlloc, samples: linearSamples(10, 1, 64, 128, 256)},
		stubSource{op: types.CostHostMemCmp, err: fmt.Errorf("perf counter unavailable")},
		// constant operation: same size everywhere
		stubSource{op: types.CostEd25519PubKey, samples: []types.Sample{
			{Size: 32, Cost: 900}, {Size: 32, Cost: 900}, {Size: 32, Cost: 902},
		}},
	}

	c := NewCalibrator(types.DefaultCalibrationConfig(), zerolog.Nop())
	table, failures, err := c.Run(context.Background(), sources)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	require.Len(t, failures, 1)
	assert.Error(t, failures[types.CostHostMemCmp])

	constant, err := table.Lookup(types.CostEd25519PubKey)
	require.NoError(t, err)
	// mean cost 900.67 rounds to one decimal and ceils
	assert.Equal(t, types.Uint64(901), constant.ConstParam)
	assert.Equal(t, types.Uint64(0), constant.LinParam)
}

func TestCalibratorRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := stubSource{op: types.CostSha256Hash, err: context.Canceled}
	c := NewCalibrator(types.DefaultCalibrationConfig(), zerolog.Nop())
	_, _, err := c.Run(ctx, []types.SampleSource{blocked})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCalibrateThenPersistThenMeter(t *testing.T) {
	samplesByOp := map[types.CostType][]types.Sample{
		types.CostSha256Hash:   linearSamples(100, 3, 64, 128, 256),
		types.CostWasmInsnExec: linearSamples(0, 7, 100, 200, 400),
	}
	table, failures := BuildTable(samplesByOp)
	require.Empty(t, failures)

	db := dbm.NewMemDB()
	require.NoError(t, SaveTable(db, table))
	loaded, err := LoadTable(db)
	require.NoError(t, err)

	doc, err := ExportTOML(loaded)
	require.NoError(t, err)
	fromDoc, err := ImportTOML(doc)
	require.NoError(t, err)

	model, err := fromDoc.Lookup(types.CostWasmInsnExec)
	require.NoError(t, err)
	assert.Equal(t, uint64(7*1_000_000), model.Evaluate(1_000_000))
}
