package graph

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/vine-io/bpmnconv/result"
)

// NewAdHocExecutionSet builds the execution set of an ad-hoc sub-process.
// Ordering must be Sequential or Parallel.
func NewAdHocExecutionSet(condition ScriptTypeValue, ordering string, onEntry, onExit []ScriptTypeValue) result.Result[AdHocSubprocessExecutionSet] {
	set := AdHocSubprocessExecutionSet{
		CompletionCondition: condition,
		Ordering:            ordering,
		OnEntryAction:       onEntry,
		OnExitAction:        onExit,
	}
	err := validation.ValidateStruct(&set,
		validation.Field(&set.Ordering, validation.Required, validation.In(AdHocOrderingSequential, AdHocOrderingParallel)),
	)
	if err != nil {
		return result.Failf[AdHocSubprocessExecutionSet]("invalid ad-hoc execution set: %v", err)
	}
	return result.Of(set)
}

// NewBounds builds node bounds. Width and height must not be negative.
func NewBounds(x, y, width, height float64) result.Result[*Bounds] {
	b := &Bounds{X: x, Y: y, Width: width, Height: height}
	err := validation.ValidateStruct(b,
		validation.Field(&b.Width, validation.Min(0.0)),
		validation.Field(&b.Height, validation.Min(0.0)),
	)
	if err != nil {
		return result.Failf[*Bounds]("invalid bounds: %v", err)
	}
	return result.Of(b)
}

var notNegative = validation.By(func(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
})

// NewSimulationSet checks the distribution name and the sign of every
// parameter of set.
func NewSimulationSet(set SimulationSet) result.Result[SimulationSet] {
	err := validation.ValidateStruct(&set,
		validation.Field(&set.Distribution, validation.Required,
			validation.In(DistributionNormal, DistributionUniform, DistributionPoisson)),
		validation.Field(&set.Mean, notNegative),
		validation.Field(&set.StandardDeviation, notNegative),
		validation.Field(&set.Min, notNegative),
		validation.Field(&set.Max, notNegative),
		validation.Field(&set.Quantity, notNegative),
		validation.Field(&set.WorkingHours, notNegative),
		validation.Field(&set.UnitCost, notNegative),
	)
	if err != nil {
		return result.Failf[SimulationSet]("invalid simulation set: %v", err)
	}
	if set.Distribution == DistributionUniform && set.Min.GreaterThan(set.Max) {
		return result.Failf[SimulationSet]("invalid simulation set: min %v is greater than max %v", set.Min, set.Max)
	}
	return result.Of(set)
}
