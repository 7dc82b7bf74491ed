package bench

import (
	"context"

	"golang.org/x/crypto/chacha20"

	"github.com/CosmWasm/costmodel/types"
)

// NewPrngDrawSource measures drawing pseudo-random bytes from the host's
// ChaCha20 stream, sized by the number of bytes drawn.
func NewPrngDrawSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostPrngDrawBytes,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			key := make([]byte, chacha20.KeySize)
			nonce := make([]byte, chacha20.NonceSize)
			fillPattern(key)
			cipher, err := chacha20.NewUnauthenticatedCipher(key, nonce)
			if err != nil {
				return nil, nil, err
			}
			buf := make([]byte, size)
			return func() error {
				cipher.XORKeyStream(buf, buf)
				return nil
			}, nil, nil
		},
	}
}
