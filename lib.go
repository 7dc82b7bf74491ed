// Package costmodel fits, quantizes and persists the cost models a contract
// host uses to charge deterministic resource costs for its primitive
// operations. Each operation is benchmarked offline across a range of input
// sizes; the noisy (size, cost) samples are reduced to a conservative affine
// model, quantized into integers, and assembled into the cost table the
// runtime metering layer evaluates before any operation executes.
package costmodel

import (
	"context"
	"sync"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/CosmWasm/costmodel/types"

	"github.com/CosmWasm/costmodel/internal/fit"
	"github.com/CosmWasm/costmodel/internal/store"
)

// FitModel fits an affine cost model to one operation's samples: x are the
// input sizes (non-decreasing, x[0] the smallest measured size) and y the
// measured costs. See the package documentation of internal/fit for the
// strategy; a slope that is not positive fails with NonMonotoneFitError.
func FitModel(x, y []uint64) (types.CostModel, error) {
	return fit.Model(x, y)
}

// Quantize converts a fitted model into the conservative integer form the
// metering layer consumes. Parameters only ever round up.
func Quantize(m types.CostModel) (types.QuantizedCostModel, error) {
	return fit.Quantize(m)
}

// BuildTable fits and quantizes every operation's sample set independently.
// A failed fit is local to its operation: the entry is omitted from the table
// and recorded in the returned error map, and sibling operations are
// unaffected.
func BuildTable(samplesByOp map[types.CostType][]types.Sample) (*types.CostTable, map[types.CostType]error) {
	models := make(map[types.CostType]types.QuantizedCostModel, len(samplesByOp))
	failures := make(map[types.CostType]error)
	for op, samples := range samplesByOp {
		model, err := fit.ModelFromSamples(samples)
		if err != nil {
			failures[op] = err
			continue
		}
		quantized, err := fit.Quantize(model)
		if err != nil {
			failures[op] = err
			continue
		}
		models[op] = quantized
	}
	return types.NewCostTable(models), failures
}

// Calibrator runs a full calibration pass: collect samples per operation, fit
// and quantize each one, and assemble the cost table.
type Calibrator struct {
	cfg    types.CalibrationConfig
	logger zerolog.Logger
}

// NewCalibrator creates a calibrator with the given measurement config.
func NewCalibrator(cfg types.CalibrationConfig, logger zerolog.Logger) *Calibrator {
	return &Calibrator{cfg: cfg, logger: logger}
}

// Config returns the measurement config sources should be built with.
func (c *Calibrator) Config() types.CalibrationConfig {
	return c.cfg
}

// Run calibrates every source concurrently; each operation's fit depends only
// on its own samples, so the only shared state is the assembly of the final
// table. Per-operation failures (bad measurements, non-monotone fits) land in
// the returned error map without aborting sibling operations; only context
// cancellation aborts the whole run.
func (c *Calibrator) Run(ctx context.Context, sources []types.SampleSource) (*types.CostTable, map[types.CostType]error, error) {
	var mu sync.Mutex
	models := make(map[types.CostType]types.QuantizedCostModel, len(sources))
	failures := make(map[types.CostType]error)

	record := func(op types.CostType, model types.QuantizedCostModel, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failures[op] = err
			return
		}
		models[op] = model
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			op := src.Op()
			logger := c.logger.With().Str("op", string(op)).Logger()

			samples, err := src.Collect(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn().Err(err).Msg("sample collection failed")
				record(op, types.QuantizedCostModel{}, err)
				return nil
			}

			model, err := fit.ModelFromSamples(samples)
			if err != nil {
				logger.Warn().Err(err).Msg("fit failed")
				record(op, types.QuantizedCostModel{}, err)
				return nil
			}
			quantized, err := fit.Quantize(model)
			if err != nil {
				logger.Warn().Err(err).Msg("quantization failed")
				record(op, types.QuantizedCostModel{}, err)
				return nil
			}

			logger.Info().
				Float64("const_param", model.ConstParam).
				Float64("lin_param", model.LinParam).
				Float64("r_squared", model.RSquared).
				Uint64("q_const", uint64(quantized.ConstParam)).
				Uint64("q_lin", uint64(quantized.LinParam)).
				Msg("operation calibrated")
			record(op, quantized, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return types.NewCostTable(models), failures, nil
}

// SaveTable persists the table into db, replacing any previous table in one
// atomic batch.
func SaveTable(db dbm.DB, t *types.CostTable) error {
	return store.Save(db, t)
}

// LoadTable reads the whole persisted table from db.
func LoadTable(db dbm.DB) (*types.CostTable, error) {
	return store.Load(db)
}

// ExportTOML renders the table as the human-reviewable TOML artifact.
func ExportTOML(t *types.CostTable) ([]byte, error) {
	return store.ExportTOML(t)
}

// ImportTOML parses a TOML artifact produced by ExportTOML.
func ImportTOML(data []byte) (*types.CostTable, error) {
	return store.ImportTOML(data)
}
