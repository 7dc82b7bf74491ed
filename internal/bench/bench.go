// Package bench implements the sample-collection layer: one SampleSource per
// benchmarked host primitive, producing the ordered (size, cost) pairs the
// fitter consumes. Costs are wall-clock nanoseconds averaged over a number of
// timed iterations; sizes are non-decreasing by construction so the fitter's
// pinned-fit assumption holds.
package bench

import (
	"context"
	"time"

	"github.com/CosmWasm/costmodel/types"
)

// runner is the shared measurement harness. A concrete source supplies the
// operation name, optionally its own size domain, and a setup function that
// prepares one timed closure for a given size.
type runner struct {
	op    types.CostType
	cfg   types.CalibrationConfig
	sizes func(cfg types.CalibrationConfig) []uint64
	setup func(ctx context.Context, size uint64) (run func() error, cleanup func(), err error)
}

var _ types.SampleSource = (*runner)(nil)

func (r *runner) Op() types.CostType {
	return r.op
}

func (r *runner) Collect(ctx context.Context) ([]types.Sample, error) {
	sizes := r.cfg.Sizes
	if r.sizes != nil {
		sizes = r.sizes(r.cfg)
	}
	samples := make([]types.Sample, 0, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sample, err := r.measure(ctx, size)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (r *runner) measure(ctx context.Context, size uint64) (types.Sample, error) {
	run, cleanup, err := r.setup(ctx, size)
	if err != nil {
		return types.Sample{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	for i := uint32(0); i < r.cfg.Warmup; i++ {
		if err := run(); err != nil {
			return types.Sample{}, err
		}
	}

	iters := r.cfg.Iterations
	if iters == 0 {
		iters = 1
	}
	start := time.Now()
	for i := uint32(0); i < iters; i++ {
		if err := run(); err != nil {
			return types.Sample{}, err
		}
	}
	elapsed := time.Since(start)

	return types.Sample{
		Size: size,
		Cost: uint64(elapsed.Nanoseconds()) / uint64(iters),
	}, nil
}

// All returns every stock sample source, one per operation in the catalogue.
func All(cfg types.CalibrationConfig) []types.SampleSource {
	return []types.SampleSource{
		NewSha256Source(cfg),
		NewKeccak256Source(cfg),
		NewEd25519PubKeySource(cfg),
		NewEd25519VerifySource(cfg),
		NewSecp256k1SignSource(cfg),
		NewSecp256k1RecoverSource(cfg),
		NewBlsAggregateG1Source(cfg),
		NewMemAllocSource(cfg),
		NewMemCmpSource(cfg),
		NewMemCpySource(cfg),
		NewValSerSource(cfg),
		NewValDeserSource(cfg),
		NewVisitObjectSource(cfg),
		NewWasmInsnExecSource(cfg),
		NewPrngDrawSource(cfg),
		NewInt256ArithSource(cfg),
	}
}

// fillPattern fills buf with a fixed byte pattern so measurements do not
// depend on randomness between runs.
func fillPattern(buf []byte) {
	for i := range buf {
		buf[i] = byte(i*7 + 13)
	}
}

// fixedSizes pins every sample to the same size, yielding the degenerate
// constant model for operations whose cost does not scale with any input.
func fixedSizes(size uint64) func(types.CalibrationConfig) []uint64 {
	return func(cfg types.CalibrationConfig) []uint64 {
		n := len(cfg.Sizes)
		if n == 0 {
			n = 1
		}
		sizes := make([]uint64, n)
		for i := range sizes {
			sizes[i] = size
		}
		return sizes
	}
}
