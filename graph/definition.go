package graph

// Definition is the typed payload of a node or an edge. Its concrete type
// fixes which property sets the element carries.
type Definition interface {
	Kind() Kind
	GeneralSet() *GeneralSet
	Styles() *StyleSet
}

// Simulated is implemented by definitions embedding a SimulationSet.
type Simulated interface {
	Definition
	Simulation() *SimulationSet
}

// DataIOCarrier is implemented by definitions embedding a DataIOSet.
type DataIOCarrier interface {
	Definition
	DataIO() *DataIOSet
}

// DataCarrier is implemented by definitions embedding ProcessData.
type DataCarrier interface {
	Definition
	Data() *ProcessData
}

// Rectangular is implemented by definitions drawn as rectangles.
type Rectangular interface {
	Definition
	Rectangle() *RectangleDimensionsSet
}

// Circular is implemented by definitions drawn as circles.
type Circular interface {
	Definition
	Circle() *CircleDimensionSet
}

type BPMNDiagram struct {
	Common
	Diagram DiagramSet
	ProcessData
	RectangleDimensionsSet
}

func (d *BPMNDiagram) Kind() Kind { return KindDiagram }

type Lane struct {
	Common
	RectangleDimensionsSet
}

func (d *Lane) Kind() Kind { return KindLane }

type NoneTask struct {
	Common
	RectangleDimensionsSet
	SimulationSet
}

func (d *NoneTask) Kind() Kind { return KindNoneTask }

type UserTask struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	DataIOSet
	ExecutionSet UserTaskExecutionSet
}

func (d *UserTask) Kind() Kind { return KindUserTask }

type ScriptTask struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	ExecutionSet ScriptTaskExecutionSet
}

func (d *ScriptTask) Kind() Kind { return KindScriptTask }

type BusinessRuleTask struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	DataIOSet
	ExecutionSet BusinessRuleTaskExecutionSet
}

func (d *BusinessRuleTask) Kind() Kind { return KindBusinessRuleTask }

type StartNoneEvent struct {
	Common
	CircleDimensionSet
	IsInterrupting bool
}

func (d *StartNoneEvent) Kind() Kind { return KindStartNoneEvent }

type StartMessageEvent struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet InterruptingMessageExecutionSet
}

func (d *StartMessageEvent) Kind() Kind { return KindStartMessageEvent }

type StartSignalEvent struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet InterruptingSignalExecutionSet
}

func (d *StartSignalEvent) Kind() Kind { return KindStartSignalEvent }

type StartTimerEvent struct {
	Common
	CircleDimensionSet
	ExecutionSet InterruptingTimerExecutionSet
}

func (d *StartTimerEvent) Kind() Kind { return KindStartTimerEvent }

type EndNoneEvent struct {
	Common
	CircleDimensionSet
}

func (d *EndNoneEvent) Kind() Kind { return KindEndNoneEvent }

type EndTerminateEvent struct {
	Common
	CircleDimensionSet
}

func (d *EndTerminateEvent) Kind() Kind { return KindEndTerminateEvent }

type EndMessageEvent struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet MessageExecutionSet
}

func (d *EndMessageEvent) Kind() Kind { return KindEndMessageEvent }

type EndSignalEvent struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet SignalExecutionSet
}

func (d *EndSignalEvent) Kind() Kind { return KindEndSignalEvent }

type IntermediateTimerEvent struct {
	Common
	CircleDimensionSet
	ExecutionSet TimerExecutionSet
}

func (d *IntermediateTimerEvent) Kind() Kind { return KindIntermediateTimerEvent }

type IntermediateMessageEventCatching struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet MessageExecutionSet
}

func (d *IntermediateMessageEventCatching) Kind() Kind { return KindIntermediateMessageEventCatching }

type IntermediateSignalEventCatching struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet SignalExecutionSet
}

func (d *IntermediateSignalEventCatching) Kind() Kind { return KindIntermediateSignalEventCatching }

type IntermediateMessageEventThrowing struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet MessageExecutionSet
}

func (d *IntermediateMessageEventThrowing) Kind() Kind { return KindIntermediateMessageEventThrowing }

type IntermediateSignalEventThrowing struct {
	Common
	CircleDimensionSet
	DataIOSet
	ExecutionSet SignalExecutionSet
}

func (d *IntermediateSignalEventThrowing) Kind() Kind { return KindIntermediateSignalEventThrowing }

type ExclusiveGateway struct {
	Common
	CircleDimensionSet
	ExecutionSet GatewayExecutionSet
}

func (d *ExclusiveGateway) Kind() Kind { return KindExclusiveGateway }

type ParallelGateway struct {
	Common
	CircleDimensionSet
}

func (d *ParallelGateway) Kind() Kind { return KindParallelGateway }

type InclusiveGateway struct {
	Common
	CircleDimensionSet
	ExecutionSet GatewayExecutionSet
}

func (d *InclusiveGateway) Kind() Kind { return KindInclusiveGateway }

type EventBasedGateway struct {
	Common
	CircleDimensionSet
}

func (d *EventBasedGateway) Kind() Kind { return KindEventBasedGateway }

type EmbeddedSubprocess struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	ProcessData
	ExecutionSet EmbeddedSubprocessExecutionSet
}

func (d *EmbeddedSubprocess) Kind() Kind { return KindEmbeddedSubprocess }

type EventSubprocess struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	ProcessData
	ExecutionSet EventSubprocessExecutionSet
}

func (d *EventSubprocess) Kind() Kind { return KindEventSubprocess }

type AdHocSubprocess struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	ProcessData
	ExecutionSet AdHocSubprocessExecutionSet
}

func (d *AdHocSubprocess) Kind() Kind { return KindAdHocSubprocess }

type ReusableSubprocess struct {
	Common
	RectangleDimensionsSet
	SimulationSet
	DataIOSet
	ExecutionSet ReusableSubprocessExecutionSet
}

func (d *ReusableSubprocess) Kind() Kind { return KindReusableSubprocess }

type DataObject struct {
	Common
	RectangleDimensionsSet
	Type string
}

func (d *DataObject) Kind() Kind { return KindDataObject }

type TextAnnotation struct {
	Common
	RectangleDimensionsSet
}

func (d *TextAnnotation) Kind() Kind { return KindTextAnnotation }

type SequenceFlow struct {
	Common
	ExecutionSet SequenceFlowExecutionSet
}

func (d *SequenceFlow) Kind() Kind { return KindSequenceFlow }

type Association struct {
	Common
	Direction string
}

func (d *Association) Kind() Kind { return KindAssociation }
