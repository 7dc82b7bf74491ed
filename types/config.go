package types

// CalibrationConfig defines how the sample-collection layer exercises each
// operation. All sources of one calibration run share a config so their
// sample sets cover the same size range.
type CalibrationConfig struct {
	// Sizes are the input sizes each operation is measured at, ascending.
	// The fitter pins its regression line to the first one, so it should be
	// the smallest size of interest.
	Sizes []uint64 `json:"sizes"`
	// Iterations is the number of timed runs averaged into one sample.
	Iterations uint32 `json:"iterations"`
	// Warmup is the number of untimed runs before measuring, to let caches
	// and the scheduler settle.
	Warmup uint32 `json:"warmup"`
}

// DefaultCalibrationConfig returns the size range and repetition counts used
// by the stock calibration CLI.
func DefaultCalibrationConfig() CalibrationConfig {
	return CalibrationConfig{
		Sizes:      []uint64{64, 256, 1024, 4096, 16384, 65536},
		Iterations: 100,
		Warmup:     10,
	}
}
