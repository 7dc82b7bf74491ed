package bench

import (
	"context"
	"crypto/sha256"

	"golang.org/x/crypto/sha3"

	"github.com/CosmWasm/costmodel/types"
)

var hashSink []byte

// NewSha256Source measures SHA-256 digest computation over the configured
// input sizes.
func NewSha256Source(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostSha256Hash,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			buf := make([]byte, size)
			fillPattern(buf)
			return func() error {
				digest := sha256.Sum256(buf)
				hashSink = digest[:]
				return nil
			}, nil, nil
		},
	}
}

// NewKeccak256Source measures Keccak-256 digest computation over the
// configured input sizes.
func NewKeccak256Source(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostKeccak256Hash,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			buf := make([]byte, size)
			fillPattern(buf)
			return func() error {
				h := sha3.NewLegacyKeccak256()
				h.Write(buf)
				hashSink = h.Sum(nil)
				return nil
			}, nil, nil
		},
	}
}
