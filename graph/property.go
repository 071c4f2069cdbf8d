package graph

import (
	"github.com/shopspring/decimal"
)

// GeneralSet is the name and documentation every definition carries.
type GeneralSet struct {
	Name          string
	Documentation string
}

type BackgroundSet struct {
	BgColor     string
	BorderColor string
	BorderSize  float64
}

type FontSet struct {
	FontFamily string
	FontColor  string
	FontSize   float64
}

// StyleSet groups the cosmetic properties of a shape.
type StyleSet struct {
	Background BackgroundSet
	Font       FontSet
}

// Common is embedded by every definition.
type Common struct {
	General GeneralSet
	Style   StyleSet
}

func (c *Common) GeneralSet() *GeneralSet { return &c.General }

func (c *Common) Styles() *StyleSet { return &c.Style }

type RectangleDimensionsSet struct {
	Width  float64
	Height float64
}

func (s *RectangleDimensionsSet) Rectangle() *RectangleDimensionsSet { return s }

type CircleDimensionSet struct {
	Radius float64
}

func (s *CircleDimensionSet) Circle() *CircleDimensionSet { return s }

const (
	DistributionNormal  = "normal"
	DistributionUniform = "uniform"
	DistributionPoisson = "poisson"
)

// SimulationSet holds the BPSim parameters of an activity.
type SimulationSet struct {
	Distribution      string
	Mean              decimal.Decimal
	StandardDeviation decimal.Decimal
	Min               decimal.Decimal
	Max               decimal.Decimal
	Quantity          decimal.Decimal
	WorkingHours      decimal.Decimal
	UnitCost          decimal.Decimal
	TimeUnit          string
	Currency          string
}

func (s *SimulationSet) Simulation() *SimulationSet { return s }

// DefaultSimulationSet is the simulation bundle of a freshly created node.
func DefaultSimulationSet() SimulationSet {
	return SimulationSet{
		Distribution: DistributionNormal,
		Quantity:     decimal.NewFromInt(1),
		WorkingHours: decimal.NewFromInt(8),
		TimeUnit:     "ms",
	}
}

// IsDefault reports whether s equals DefaultSimulationSet.
func (s *SimulationSet) IsDefault() bool {
	d := DefaultSimulationSet()
	return s.Distribution == d.Distribution &&
		s.Mean.Equal(d.Mean) &&
		s.StandardDeviation.Equal(d.StandardDeviation) &&
		s.Min.Equal(d.Min) &&
		s.Max.Equal(d.Max) &&
		s.Quantity.Equal(d.Quantity) &&
		s.WorkingHours.Equal(d.WorkingHours) &&
		s.UnitCost.Equal(d.UnitCost) &&
		s.TimeUnit == d.TimeUnit &&
		s.Currency == d.Currency
}

// ProcessData holds the variables a process or sub-process declares.
type ProcessData struct {
	Variables ProcessVariables
}

func (s *ProcessData) Data() *ProcessData { return s }

// DataIOSet holds the data inputs and outputs of an activity or event.
type DataIOSet struct {
	AssignmentsInfo AssignmentsInfo
}

func (s *DataIOSet) DataIO() *DataIOSet { return s }

// DiagramSet holds the process level attributes of the root node.
type DiagramSet struct {
	ID                         string
	PackageName                string
	Version                    string
	AdHoc                      bool
	Executable                 bool
	ProcessInstanceDescription string
}

// ScriptTypeValue is a script body and the language it is written in.
type ScriptTypeValue struct {
	Language string
	Script   string
}

func (v ScriptTypeValue) IsEmpty() bool { return v.Script == "" }

type UserTaskExecutionSet struct {
	TaskName       string
	Actors         string
	Groups         string
	Subject        string
	Description    string
	Priority       string
	CreatedBy      string
	Skippable      bool
	AdHocAutostart bool
	IsAsync        bool
	OnEntryAction  []ScriptTypeValue
	OnExitAction   []ScriptTypeValue
}

type ScriptTaskExecutionSet struct {
	Script         ScriptTypeValue
	IsAsync        bool
	AdHocAutostart bool
}

type BusinessRuleTaskExecutionSet struct {
	RuleFlowGroup  string
	IsAsync        bool
	AdHocAutostart bool
	OnEntryAction  []ScriptTypeValue
	OnExitAction   []ScriptTypeValue
}

type EmbeddedSubprocessExecutionSet struct {
	IsAsync       bool
	OnEntryAction []ScriptTypeValue
	OnExitAction  []ScriptTypeValue
}

type EventSubprocessExecutionSet struct {
	IsAsync bool
}

const (
	AdHocOrderingSequential = "Sequential"
	AdHocOrderingParallel   = "Parallel"
)

type AdHocSubprocessExecutionSet struct {
	CompletionCondition ScriptTypeValue
	Ordering            string
	OnEntryAction       []ScriptTypeValue
	OnExitAction        []ScriptTypeValue
}

type ReusableSubprocessExecutionSet struct {
	CalledElement     string
	Independent       bool
	WaitForCompletion bool
	IsAsync           bool
}

// GatewayExecutionSet names the default outgoing flow of a gateway.
type GatewayExecutionSet struct {
	DefaultRoute string
}

// TimerSettings keeps exactly one of duration, date or cycle in practice.
type TimerSettings struct {
	TimeDuration      string
	TimeDate          string
	TimeCycle         string
	TimeCycleLanguage string
}

type TimerExecutionSet struct {
	Timer TimerSettings
}

type InterruptingTimerExecutionSet struct {
	IsInterrupting bool
	Timer          TimerSettings
}

type MessageExecutionSet struct {
	MessageRef string
}

type InterruptingMessageExecutionSet struct {
	IsInterrupting bool
	MessageRef     string
}

type SignalExecutionSet struct {
	SignalRef string
}

type InterruptingSignalExecutionSet struct {
	IsInterrupting bool
	SignalRef      string
}

type SequenceFlowExecutionSet struct {
	Priority  string
	Condition ScriptTypeValue
}

const (
	AssociationNone = "none"
	AssociationOne  = "one"
	AssociationBoth = "both"
)
