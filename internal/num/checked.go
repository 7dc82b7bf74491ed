// Package num provides overflow-checked arithmetic for the host's numeric
// object types. Instead of one near-identical wrapper per operation, a single
// generic descriptor captures "checked binary op with overflow signal" and is
// instantiated once per numeric kind.
package num

import (
	"fmt"
	"math/big"
	"math/bits"
)

// BinOp describes one checked binary operation over T. Apply reports ok=false
// when the result cannot be represented (overflow, division by zero); callers
// must not use the returned value in that case.
type BinOp[T any] struct {
	Name  string
	Apply func(a, b T) (T, bool)
}

// ArithError is the failure of one checked operation.
type ArithError struct {
	Op string
}

var _ error = ArithError{}

func (e ArithError) Error() string {
	return fmt.Sprintf("arithmetic domain error in %s: overflow or invalid operand", e.Op)
}

// Checked applies op and converts the overflow signal into an error.
func Checked[T any](op BinOp[T], a, b T) (T, error) {
	res, ok := op.Apply(a, b)
	if !ok {
		var zero T
		return zero, ArithError{Op: op.Name}
	}
	return res, nil
}

// Uint64Ops returns the checked operations over uint64 host values.
func Uint64Ops() []BinOp[uint64] {
	return []BinOp[uint64]{
		{Name: "u64_add", Apply: func(a, b uint64) (uint64, bool) {
			sum, carry := bits.Add64(a, b, 0)
			return sum, carry == 0
		}},
		{Name: "u64_sub", Apply: func(a, b uint64) (uint64, bool) {
			diff, borrow := bits.Sub64(a, b, 0)
			return diff, borrow == 0
		}},
		{Name: "u64_mul", Apply: func(a, b uint64) (uint64, bool) {
			hi, lo := bits.Mul64(a, b)
			return lo, hi == 0
		}},
		{Name: "u64_div", Apply: func(a, b uint64) (uint64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		}},
	}
}

// Int256Bits is the width of the host's big signed integer objects.
const Int256Bits = 256

// Int256Ops returns the checked operations over 256-bit signed integers,
// represented as big.Int. Results wider than Int256Bits signal overflow; the
// inputs are not mutated.
func Int256Ops() []BinOp[*big.Int] {
	fit := func(v *big.Int) (*big.Int, bool) {
		// BitLen ignores the sign; bounds are kept symmetric at |v| < 2^255
		// rather than modelling the two's-complement asymmetry.
		if v.BitLen() > Int256Bits-1 {
			return nil, false
		}
		return v, true
	}
	return []BinOp[*big.Int]{
		{Name: "i256_add", Apply: func(a, b *big.Int) (*big.Int, bool) {
			return fit(new(big.Int).Add(a, b))
		}},
		{Name: "i256_sub", Apply: func(a, b *big.Int) (*big.Int, bool) {
			return fit(new(big.Int).Sub(a, b))
		}},
		{Name: "i256_mul", Apply: func(a, b *big.Int) (*big.Int, bool) {
			return fit(new(big.Int).Mul(a, b))
		}},
		{Name: "i256_div", Apply: func(a, b *big.Int) (*big.Int, bool) {
			if b.Sign() == 0 {
				return nil, false
			}
			return fit(new(big.Int).Quo(a, b))
		}},
	}
}
