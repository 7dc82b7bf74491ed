package bench

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	bls12381 "github.com/kilic/bls12-381"

	"github.com/CosmWasm/costmodel/types"
)

var (
	boolSink  bool
	bytesSink []byte
)

// NewEd25519PubKeySource measures ed25519 public key derivation. The seed is
// always 32 bytes, so every sample sits at the same size and the fitter
// produces a constant model.
func NewEd25519PubKeySource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:    types.CostEd25519PubKey,
		cfg:   cfg,
		sizes: fixedSizes(ed25519.SeedSize),
		setup: func(_ context.Context, _ uint64) (func() error, func(), error) {
			seed := make([]byte, ed25519.SeedSize)
			fillPattern(seed)
			return func() error {
				key := ed25519.NewKeyFromSeed(seed)
				bytesSink = key
				return nil
			}, nil, nil
		},
	}
}

// NewEd25519VerifySource measures ed25519 signature verification, sized by
// the signed message length.
func NewEd25519VerifySource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostVerifyEd25519Sig,
		cfg: cfg,
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			seed := make([]byte, ed25519.SeedSize)
			fillPattern(seed)
			priv := ed25519.NewKeyFromSeed(seed)
			pub := priv.Public().(ed25519.PublicKey)

			msg := make([]byte, size)
			fillPattern(msg)
			sig := ed25519.Sign(priv, msg)
			return func() error {
				if !ed25519.Verify(pub, msg, sig) {
					return fmt.Errorf("ed25519 verification unexpectedly failed")
				}
				return nil
			}, nil, nil
		},
	}
}

// NewSecp256k1SignSource measures recoverable secp256k1 signing over a 32-byte
// digest. Constant-sized input.
func NewSecp256k1SignSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:    types.CostSecp256k1Sign,
		cfg:   cfg,
		sizes: fixedSizes(sha256.Size),
		setup: func(_ context.Context, _ uint64) (func() error, func(), error) {
			priv, err := btcec.NewPrivateKey()
			if err != nil {
				return nil, nil, err
			}
			digest := sha256.Sum256([]byte("costmodel calibration digest"))
			return func() error {
				sig, err := btcecdsa.SignCompact(priv, digest[:], true)
				if err != nil {
					return err
				}
				bytesSink = sig
				return nil
			}, nil, nil
		},
	}
}

// NewSecp256k1RecoverSource measures public key recovery from a compact
// secp256k1 signature. Constant-sized input.
func NewSecp256k1RecoverSource(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:    types.CostSecp256k1Recover,
		cfg:   cfg,
		sizes: fixedSizes(sha256.Size),
		setup: func(_ context.Context, _ uint64) (func() error, func(), error) {
			priv, err := btcec.NewPrivateKey()
			if err != nil {
				return nil, nil, err
			}
			digest := sha256.Sum256([]byte("costmodel calibration digest"))
			sig, err := btcecdsa.SignCompact(priv, digest[:], true)
			if err != nil {
				return nil, nil, err
			}
			return func() error {
				_, _, err := btcecdsa.RecoverCompact(sig, digest[:])
				return err
			}, nil, nil
		},
	}
}

// NewBlsAggregateG1Source measures aggregation of compressed BLS12-381 G1
// points, sized by the number of points. The point counts double per sample
// instead of following the byte-oriented config sizes.
func NewBlsAggregateG1Source(cfg types.CalibrationConfig) types.SampleSource {
	return &runner{
		op:  types.CostBls12381AggregateG1,
		cfg: cfg,
		sizes: func(cfg types.CalibrationConfig) []uint64 {
			n := len(cfg.Sizes)
			if n == 0 {
				n = 1
			}
			sizes := make([]uint64, n)
			for i := range sizes {
				sizes[i] = 1 << uint(i)
			}
			return sizes
		},
		setup: func(_ context.Context, size uint64) (func() error, func(), error) {
			g1 := bls12381.NewG1()
			compressed := g1.ToCompressed(g1.One())
			elements := make([][]byte, size)
			for i := range elements {
				elements[i] = compressed
			}
			return func() error {
				acc := g1.Zero()
				for _, element := range elements {
					point, err := g1.FromCompressed(element)
					if err != nil {
						return fmt.Errorf("failed to decompress G1 point: %w", err)
					}
					g1.Add(acc, acc, point)
				}
				boolSink = acc != nil
				return nil
			}, nil, nil
		},
	}
}
