// Package gas charges calibrated costs for host operations before they run.
// It is the runtime-side consumer of the cost table: pure integer arithmetic,
// no fitting, suitable for the metering hot path.
package gas

import (
	"fmt"

	"github.com/CosmWasm/costmodel/types"
)

// OutOfGasError is returned when a charge exceeds the remaining limit.
type OutOfGasError struct {
	Descriptor string
	Wanted     uint64
	Available  uint64
}

var _ error = OutOfGasError{}

func (e OutOfGasError) Error() string {
	return fmt.Sprintf("out of gas: %s wanted %d, %d available", e.Descriptor, e.Wanted, e.Available)
}

// Meter tracks gas consumption during contract execution.
type Meter interface {
	// Consume charges the specified amount of gas
	Consume(amount uint64, descriptor string) error
	// Remaining returns the amount of gas left
	Remaining() uint64
	// HasGas checks if there is any gas left
	HasGas() bool
}

// ScheduledMeter is a Meter that prices operations through a calibrated cost
// schedule. The charge happens before the operation executes, so work is
// always paid for up front.
type ScheduledMeter struct {
	limit    uint64
	consumed uint64
	schedule *Schedule
}

var _ Meter = (*ScheduledMeter)(nil)

// NewScheduledMeter creates a meter with the specified limit, charging
// through the given schedule.
func NewScheduledMeter(limit uint64, schedule *Schedule) *ScheduledMeter {
	return &ScheduledMeter{
		limit:    limit,
		consumed: 0,
		schedule: schedule,
	}
}

// Charge prices op at the given input size and consumes the result. An
// operation missing from the table fails with UncalibratedOperationError;
// it must not run, and it is never treated as free.
func (m *ScheduledMeter) Charge(op types.CostType, size uint64) error {
	model, err := m.schedule.Current().Lookup(op)
	if err != nil {
		return err
	}
	return m.Consume(model.Evaluate(size), string(op))
}

func (m *ScheduledMeter) Consume(amount uint64, descriptor string) error {
	if amount > m.limit-m.consumed {
		return OutOfGasError{
			Descriptor: descriptor,
			Wanted:     amount,
			Available:  m.Remaining(),
		}
	}
	m.consumed += amount
	return nil
}

func (m *ScheduledMeter) Remaining() uint64 {
	if m.consumed >= m.limit {
		return 0
	}
	return m.limit - m.consumed
}

func (m *ScheduledMeter) HasGas() bool {
	return m.Remaining() > 0
}

// Consumed returns the gas charged so far.
func (m *ScheduledMeter) Consumed() uint64 {
	return m.consumed
}

// Report contains information about gas usage.
type Report struct {
	Limit     uint64
	Remaining uint64
	Used      uint64
}

// Report summarizes the meter's state.
func (m *ScheduledMeter) Report() Report {
	return Report{
		Limit:     m.limit,
		Remaining: m.Remaining(),
		Used:      m.consumed,
	}
}
