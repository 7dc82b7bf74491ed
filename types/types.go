// Package types provides core types used throughout the costmodel package.
package types

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Uint64 is a wrapper for uint64, but it is marshalled to and from JSON as a string.
// This keeps large parameters exact; plain JSON numbers lose precision above 2^53.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint64, expected string-encoded integer", data)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint64, failed to parse integer", data)
	}
	*u = Uint64(v)
	return nil
}

// Sample is one empirical measurement for an operation: the input size a
// benchmark ran at and the cost it observed.
type Sample struct {
	Size uint64 `json:"size"`
	Cost uint64 `json:"cost"`
}

// SampleSource produces the measurements for one operation. Implementations
// must return at least one sample and keep sizes non-decreasing; the fitter
// pins its regression line to the first (smallest) sample.
type SampleSource interface {
	Op() CostType
	Collect(ctx context.Context) ([]Sample, error)
}

// CostModel is a fitted affine cost function cost(size) = ConstParam +
// LinParam*size over floating-point parameters. RSquared is a fit-quality
// diagnostic in [0,1]; it never gates correctness, it only flags operations
// that deserve a closer look.
type CostModel struct {
	ConstParam float64 `json:"const_param"`
	LinParam   float64 `json:"lin_param"`
	RSquared   float64 `json:"r_squared"`
}

// Evaluate computes the modelled cost for the given input size.
// Mirrors QuantizedCostModel.Evaluate, just with f64 ops rather than
// saturating integer ops.
func (m CostModel) Evaluate(input float64) float64 {
	res := m.ConstParam
	if !math.IsInf(input, 0) && !math.IsNaN(input) && input != 0 {
		res += m.LinParam * input
	}
	return res
}

// QuantizedCostModel is the integer form of a fitted model, the only form the
// runtime metering layer consumes. Parameters are conservative: quantization
// rounds up, so the evaluator never charges less than the fitted model.
type QuantizedCostModel struct {
	ConstParam Uint64 `json:"const_param"`
	LinParam   Uint64 `json:"lin_param"`
}

// Evaluate computes the charged cost for the given input size using only
// saturating integer arithmetic. A zero-sized input costs the fixed overhead
// alone. Total function: overflow clamps at MaxUint64, it never wraps or
// panics on adversarial sizes.
func (m QuantizedCostModel) Evaluate(size uint64) uint64 {
	if size == 0 {
		return uint64(m.ConstParam)
	}
	return saturatingAdd(uint64(m.ConstParam), saturatingMul(uint64(m.LinParam), size))
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
