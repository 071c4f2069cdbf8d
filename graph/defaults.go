package graph

const (
	DefaultFontFamily = "Open Sans"
	DefaultFontColor  = "#000000"
	DefaultFontSize   = 12

	DefaultTaskWidth        = 100
	DefaultTaskHeight       = 80
	DefaultSubprocessWidth  = 350
	DefaultSubprocessHeight = 200
	DefaultEventRadius      = 18
	DefaultGatewayRadius    = 25
)

// DefaultStyle returns the style a new node of the family starts with.
// Writers leave style attributes equal to these values out of the document.
func DefaultStyle(f Family) StyleSet {
	style := StyleSet{
		Background: BackgroundSet{BgColor: "#ffffff", BorderColor: "#000000", BorderSize: 1},
		Font:       FontSet{FontFamily: DefaultFontFamily, FontColor: DefaultFontColor, FontSize: DefaultFontSize},
	}
	switch f {
	case FamilyTask, FamilySubprocess:
		style.Background.BgColor = "#f9fad2"
	case FamilyStartEvent:
		style.Background.BgColor = "#ffffff"
	case FamilyEndEvent:
		style.Background.BorderSize = 3
	case FamilyIntermediateEvent:
		style.Background.BgColor = "#f5deb3"
		style.Background.BorderColor = "#a0522d"
	case FamilyGateway:
		style.Background.BgColor = "#f0e68c"
		style.Background.BorderColor = "#a67f00"
	}
	return style
}

func newCommon(kind Kind) Common {
	return Common{Style: DefaultStyle(kind.Family())}
}

func taskSize() RectangleDimensionsSet {
	return RectangleDimensionsSet{Width: DefaultTaskWidth, Height: DefaultTaskHeight}
}

func subprocessSize() RectangleDimensionsSet {
	return RectangleDimensionsSet{Width: DefaultSubprocessWidth, Height: DefaultSubprocessHeight}
}

func eventSize() CircleDimensionSet {
	return CircleDimensionSet{Radius: DefaultEventRadius}
}

func gatewaySize() CircleDimensionSet {
	return CircleDimensionSet{Radius: DefaultGatewayRadius}
}

// NewDefinition returns a definition of the given kind holding default
// property sets, or nil for an unknown kind.
func NewDefinition(kind Kind) Definition {
	common := newCommon(kind)
	switch kind {
	case KindDiagram:
		return &BPMNDiagram{
			Common:                 common,
			Diagram:                DiagramSet{Executable: true, Version: "1.0"},
			RectangleDimensionsSet: RectangleDimensionsSet{Width: 2800, Height: 1400},
		}
	case KindLane:
		return &Lane{Common: common, RectangleDimensionsSet: RectangleDimensionsSet{Width: 1000, Height: 250}}
	case KindNoneTask:
		return &NoneTask{Common: common, RectangleDimensionsSet: taskSize(), SimulationSet: DefaultSimulationSet()}
	case KindUserTask:
		return &UserTask{Common: common, RectangleDimensionsSet: taskSize(), SimulationSet: DefaultSimulationSet(),
			ExecutionSet: UserTaskExecutionSet{Skippable: true}}
	case KindScriptTask:
		return &ScriptTask{Common: common, RectangleDimensionsSet: taskSize(), SimulationSet: DefaultSimulationSet(),
			ExecutionSet: ScriptTaskExecutionSet{Script: ScriptTypeValue{Language: "java"}}}
	case KindBusinessRuleTask:
		return &BusinessRuleTask{Common: common, RectangleDimensionsSet: taskSize(), SimulationSet: DefaultSimulationSet()}
	case KindStartNoneEvent:
		return &StartNoneEvent{Common: common, CircleDimensionSet: eventSize(), IsInterrupting: true}
	case KindStartMessageEvent:
		return &StartMessageEvent{Common: common, CircleDimensionSet: eventSize(),
			ExecutionSet: InterruptingMessageExecutionSet{IsInterrupting: true}}
	case KindStartSignalEvent:
		return &StartSignalEvent{Common: common, CircleDimensionSet: eventSize(),
			ExecutionSet: InterruptingSignalExecutionSet{IsInterrupting: true}}
	case KindStartTimerEvent:
		return &StartTimerEvent{Common: common, CircleDimensionSet: eventSize(),
			ExecutionSet: InterruptingTimerExecutionSet{IsInterrupting: true}}
	case KindEndNoneEvent:
		return &EndNoneEvent{Common: common, CircleDimensionSet: eventSize()}
	case KindEndTerminateEvent:
		return &EndTerminateEvent{Common: common, CircleDimensionSet: eventSize()}
	case KindEndMessageEvent:
		return &EndMessageEvent{Common: common, CircleDimensionSet: eventSize()}
	case KindEndSignalEvent:
		return &EndSignalEvent{Common: common, CircleDimensionSet: eventSize()}
	case KindIntermediateTimerEvent:
		return &IntermediateTimerEvent{Common: common, CircleDimensionSet: eventSize()}
	case KindIntermediateMessageEventCatching:
		return &IntermediateMessageEventCatching{Common: common, CircleDimensionSet: eventSize()}
	case KindIntermediateSignalEventCatching:
		return &IntermediateSignalEventCatching{Common: common, CircleDimensionSet: eventSize()}
	case KindIntermediateMessageEventThrowing:
		return &IntermediateMessageEventThrowing{Common: common, CircleDimensionSet: eventSize()}
	case KindIntermediateSignalEventThrowing:
		return &IntermediateSignalEventThrowing{Common: common, CircleDimensionSet: eventSize()}
	case KindExclusiveGateway:
		return &ExclusiveGateway{Common: common, CircleDimensionSet: gatewaySize()}
	case KindParallelGateway:
		return &ParallelGateway{Common: common, CircleDimensionSet: gatewaySize()}
	case KindInclusiveGateway:
		return &InclusiveGateway{Common: common, CircleDimensionSet: gatewaySize()}
	case KindEventBasedGateway:
		return &EventBasedGateway{Common: common, CircleDimensionSet: gatewaySize()}
	case KindEmbeddedSubprocess:
		return &EmbeddedSubprocess{Common: common, RectangleDimensionsSet: subprocessSize(), SimulationSet: DefaultSimulationSet()}
	case KindEventSubprocess:
		return &EventSubprocess{Common: common, RectangleDimensionsSet: subprocessSize(), SimulationSet: DefaultSimulationSet()}
	case KindAdHocSubprocess:
		return &AdHocSubprocess{Common: common, RectangleDimensionsSet: subprocessSize(), SimulationSet: DefaultSimulationSet(),
			ExecutionSet: AdHocSubprocessExecutionSet{
				Ordering:            AdHocOrderingSequential,
				CompletionCondition: ScriptTypeValue{Language: "mvel", Script: "autocomplete"},
			}}
	case KindReusableSubprocess:
		return &ReusableSubprocess{Common: common, RectangleDimensionsSet: taskSize(), SimulationSet: DefaultSimulationSet()}
	case KindDataObject:
		return &DataObject{Common: common, RectangleDimensionsSet: RectangleDimensionsSet{Width: 35, Height: 45}, Type: "Object"}
	case KindTextAnnotation:
		return &TextAnnotation{Common: common, RectangleDimensionsSet: RectangleDimensionsSet{Width: 100, Height: 30}}
	case KindSequenceFlow:
		return &SequenceFlow{Common: common, ExecutionSet: SequenceFlowExecutionSet{
			Condition: ScriptTypeValue{Language: "java"},
		}}
	case KindAssociation:
		return &Association{Common: common, Direction: AssociationNone}
	default:
		return nil
	}
}
