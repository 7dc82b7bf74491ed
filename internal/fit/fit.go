// Package fit turns one operation's (size, cost) samples into an affine cost
// model. The fit is deliberately simple: a single-parameter least-squares
// line pinned through the first observed sample, with a constrained refit
// when the implied intercept comes out negative.
package fit

import (
	"github.com/CosmWasm/costmodel/types"
)

// Model fits cost(size) = ConstParam + LinParam*size to the given samples.
// x and y must be the same non-zero length; x is assumed non-decreasing with
// x[0] the smallest measured size.
//
// Strategy, in order:
//  1. all sizes equal: constant model, ConstParam = mean(y), RSquared = 0
//     (predicting the mean explains nothing, and there is nothing to explain).
//  2. least-squares slope through the pinned point (x[0], y[0]). Pinning to a
//     real observation avoids the wild negative intercepts an unconstrained
//     two-parameter fit produces when the sampled range starts far from zero.
//  3. slope <= 0 is a NonMonotoneFitError: bad measurement data, never
//     silently replaced with a different model.
//  4. negative intercept: discard the pinned fit and refit a one-parameter
//     line through the origin, then ConstParam = 0.
func Model(x, y []uint64) (types.CostModel, error) {
	if len(x) == 0 || len(x) != len(y) {
		return types.CostModel{}, types.InvalidSampleSetError{XLen: len(x), YLen: len(y)}
	}

	if constantSizes(x) {
		var sum uint64
		for _, c := range y {
			sum += c
		}
		return types.CostModel{
			ConstParam: float64(sum) / float64(len(y)),
			LinParam:   0,
			// always predicting the mean
			RSquared: 0,
		}, nil
	}

	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i := range x {
		xs[i] = float64(x[i])
		ys[i] = float64(y[i])
	}

	// Least squares over the shifted coordinates (x-x0, y-y0) has a single
	// degree of freedom, the slope; the line passes through (x0, y0) exactly.
	x0, y0 := xs[0], ys[0]
	var num, den float64
	for i := range xs {
		num += (xs[i] - x0) * (ys[i] - y0)
		den += (xs[i] - x0) * (xs[i] - x0)
	}
	linParam := num / den
	constParam := y0 - linParam*x0

	r2, err := rSquared(xs, ys, constParam, linParam)
	if err != nil {
		return types.CostModel{}, err
	}

	if linParam <= 0 {
		return types.CostModel{}, types.NonMonotoneFitError{LinParam: linParam}
	}

	if constParam < 0 {
		// Refit through the origin over the unshifted data.
		num, den = 0, 0
		for i := range xs {
			num += xs[i] * ys[i]
			den += xs[i] * xs[i]
		}
		linParam = num / den
		constParam = 0
		r2, err = rSquared(xs, ys, constParam, linParam)
		if err != nil {
			return types.CostModel{}, err
		}
	}

	return types.CostModel{
		ConstParam: constParam,
		LinParam:   linParam,
		RSquared:   r2,
	}, nil
}

// ModelFromSamples is Model over the sample pairs the collection layer emits.
func ModelFromSamples(samples []types.Sample) (types.CostModel, error) {
	x := make([]uint64, len(samples))
	y := make([]uint64, len(samples))
	for i, s := range samples {
		x[i] = s.Size
		y[i] = s.Cost
	}
	return Model(x, y)
}

func constantSizes(x []uint64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}

// rSquared is the standard 1 - SSres/SStot goodness of fit over the original
// (unshifted) data. Zero total variance makes the ratio undefined; when the
// residuals are zero too the model reproduces the data exactly and we report
// a perfect fit, otherwise the diagnostic has no defined value and that is
// surfaced as an error rather than a NaN that would end up in the persisted
// table.
func rSquared(xs, ys []float64, constParam, linParam float64) (float64, error) {
	var mean float64
	for _, v := range ys {
		mean += v
	}
	mean /= float64(len(ys))

	var ssRes, ssTot float64
	for i := range ys {
		pred := constParam + linParam*xs[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - mean) * (ys[i] - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, types.UndefinedFitQualityError{}
	}
	return 1 - ssRes/ssTot, nil
}
