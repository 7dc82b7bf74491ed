package fit

import (
	"math"
	"strconv"

	"github.com/CosmWasm/costmodel/types"
)

// Quantize converts a fitted model into the integer form the metering layer
// evaluates. Each parameter is clamped to one decimal digit (filtering
// floating-point noise out of the fit) and then ceiled. Ceiling is mandatory:
// the runtime must never charge less than the fitted model predicts.
//
// Negative parameters should not reach this point (the fitter refits them
// away); they are rejected rather than clamped so a broken fit cannot slip
// into a persisted table.
func Quantize(m types.CostModel) (types.QuantizedCostModel, error) {
	constParam, err := quantizeParam("const_param", m.ConstParam)
	if err != nil {
		return types.QuantizedCostModel{}, err
	}
	linParam, err := quantizeParam("lin_param", m.LinParam)
	if err != nil {
		return types.QuantizedCostModel{}, err
	}
	return types.QuantizedCostModel{
		ConstParam: types.Uint64(constParam),
		LinParam:   types.Uint64(linParam),
	}, nil
}

func quantizeParam(name string, f float64) (uint64, error) {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, types.NegativeParamError{Name: name, Value: f}
	}
	// Round through a 1-decimal string rather than multiplying by 10, so the
	// result matches the printed form of the parameter exactly.
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 1, 64), 64)
	if err != nil {
		return 0, err
	}
	return uint64(math.Ceil(rounded)), nil
}
