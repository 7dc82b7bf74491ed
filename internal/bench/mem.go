package bench

import (
	"bytes"
	"context"

	"github.com/CosmWasm/costmodel/types"
)

var (
	allocSink []byte
	intSink   int
)

// NewMemAllocSource measures host byte buffer allocation.
func NewMemAllocSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostHostMemAlloc,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			return func() error {
				allocSink = make([]byte, size)
				return nil
			}, nil, nil
		},
	}
}

// NewMemCmpSource measures comparison of two equal-sized buffers. Equal
// contents force the comparison to scan the full length, the worst case the
// model must cover.
func NewMemCmpSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostHostMemCmp,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			a := make([]byte, size)
			b := make([]byte, size)
			fillPattern(a)
			fillPattern(b)
			return func() error {
				intSink = bytes.Compare(a, b)
				return nil
			}, nil, nil
		},
	}
}

// NewMemCpySource measures copying between host buffers.
func NewMemCpySource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostHostMemCpy,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			src := make([]byte, size)
			dst := make([]byte, size)
			fillPattern(src)
			return func() error {
				intSink = copy(dst, src)
				return nil
			}, nil, nil
		},
	}
}
