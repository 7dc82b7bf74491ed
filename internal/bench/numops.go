package bench

import (
	"context"
	"math/big"

	"github.com/CosmWasm/costmodel/types"

	"github.com/CosmWasm/costmodel/internal/num"
)

var bigSink *big.Int

// NewInt256ArithSource measures the checked 256-bit arithmetic layer, sized
// by operand bit length. Bit lengths step up by 32 per sample instead of
// following the byte-oriented config sizes.
func NewInt256ArithSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostInt256Arith,
		cfg: cfg,
		sizes: func(cfg types.CalibrationConfig) []uint64 {
			n := len(cfg.Sizes)
			if n == 0 {
				n = 1
			}
			sizes := make([]uint64, n)
			for i := range sizes {
				bits := uint64(32 * (i + 1))
				// leave two bits of headroom so a*3 still fits the checked width
				if bits > num.Int256Bits-3 {
					bits = num.Int256Bits - 3
				}
				sizes[i] = bits
			}
			return sizes
		},
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			// a is a full-width operand at the requested bit length; b stays
			// small so add/sub/mul/div all succeed and every run measures the
			// checked path, not the failure path.
			a := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(size)), big.NewInt(1))
			b := big.NewInt(3)
			ops := num.Int256Ops()
			return func() error {
				for _, op := range ops {
					res, err := num.Checked(op, a, b)
					if err != nil {
						return err
					}
					bigSink = res
				}
				return nil
			}, nil, nil
		},
	}
}
