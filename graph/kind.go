// Package graph is the canvas side of the converter: nodes and edges that
// carry one typed definition each, plus the property sets those definitions
// are composed of.
package graph

// Kind names the definition a node or an edge carries.
type Kind string

const (
	KindDiagram Kind = "BPMNDiagram"
	KindLane    Kind = "Lane"

	KindNoneTask         Kind = "NoneTask"
	KindUserTask         Kind = "UserTask"
	KindScriptTask       Kind = "ScriptTask"
	KindBusinessRuleTask Kind = "BusinessRuleTask"

	KindStartNoneEvent    Kind = "StartNoneEvent"
	KindStartMessageEvent Kind = "StartMessageEvent"
	KindStartSignalEvent  Kind = "StartSignalEvent"
	KindStartTimerEvent   Kind = "StartTimerEvent"

	KindEndNoneEvent      Kind = "EndNoneEvent"
	KindEndTerminateEvent Kind = "EndTerminateEvent"
	KindEndMessageEvent   Kind = "EndMessageEvent"
	KindEndSignalEvent    Kind = "EndSignalEvent"

	KindIntermediateTimerEvent           Kind = "IntermediateTimerEvent"
	KindIntermediateMessageEventCatching Kind = "IntermediateMessageEventCatching"
	KindIntermediateSignalEventCatching  Kind = "IntermediateSignalEventCatching"
	KindIntermediateMessageEventThrowing Kind = "IntermediateMessageEventThrowing"
	KindIntermediateSignalEventThrowing  Kind = "IntermediateSignalEventThrowing"

	KindExclusiveGateway  Kind = "ExclusiveGateway"
	KindParallelGateway   Kind = "ParallelGateway"
	KindInclusiveGateway  Kind = "InclusiveGateway"
	KindEventBasedGateway Kind = "EventBasedGateway"

	KindEmbeddedSubprocess Kind = "EmbeddedSubprocess"
	KindEventSubprocess    Kind = "EventSubprocess"
	KindAdHocSubprocess    Kind = "AdHocSubprocess"
	KindReusableSubprocess Kind = "ReusableSubprocess"

	KindDataObject     Kind = "DataObject"
	KindTextAnnotation Kind = "TextAnnotation"

	KindSequenceFlow Kind = "SequenceFlow"
	KindAssociation  Kind = "Association"
)

// Family groups kinds that share a shape and a default style.
type Family int32

const (
	FamilyUnknown Family = iota
	FamilyDiagram
	FamilyLane
	FamilyTask
	FamilyStartEvent
	FamilyEndEvent
	FamilyIntermediateEvent
	FamilyGateway
	FamilySubprocess
	FamilyArtifact
	FamilyConnector
)

func (f Family) String() string {
	switch f {
	case FamilyDiagram:
		return "diagram"
	case FamilyLane:
		return "lane"
	case FamilyTask:
		return "task"
	case FamilyStartEvent:
		return "start event"
	case FamilyEndEvent:
		return "end event"
	case FamilyIntermediateEvent:
		return "intermediate event"
	case FamilyGateway:
		return "gateway"
	case FamilySubprocess:
		return "sub-process"
	case FamilyArtifact:
		return "artifact"
	case FamilyConnector:
		return "connector"
	default:
		return "unknown"
	}
}

func (k Kind) Family() Family {
	switch k {
	case KindDiagram:
		return FamilyDiagram
	case KindLane:
		return FamilyLane
	case KindNoneTask, KindUserTask, KindScriptTask, KindBusinessRuleTask:
		return FamilyTask
	case KindStartNoneEvent, KindStartMessageEvent, KindStartSignalEvent, KindStartTimerEvent:
		return FamilyStartEvent
	case KindEndNoneEvent, KindEndTerminateEvent, KindEndMessageEvent, KindEndSignalEvent:
		return FamilyEndEvent
	case KindIntermediateTimerEvent,
		KindIntermediateMessageEventCatching, KindIntermediateSignalEventCatching,
		KindIntermediateMessageEventThrowing, KindIntermediateSignalEventThrowing:
		return FamilyIntermediateEvent
	case KindExclusiveGateway, KindParallelGateway, KindInclusiveGateway, KindEventBasedGateway:
		return FamilyGateway
	case KindEmbeddedSubprocess, KindEventSubprocess, KindAdHocSubprocess, KindReusableSubprocess:
		return FamilySubprocess
	case KindDataObject, KindTextAnnotation:
		return FamilyArtifact
	case KindSequenceFlow, KindAssociation:
		return FamilyConnector
	default:
		return FamilyUnknown
	}
}

// IsEdge reports whether the kind is carried by an Edge rather than a Node.
func (k Kind) IsEdge() bool { return k.Family() == FamilyConnector }

// IsContainer reports whether nodes of this kind may hold children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindDiagram, KindLane, KindEmbeddedSubprocess, KindEventSubprocess, KindAdHocSubprocess:
		return true
	default:
		return false
	}
}

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindDiagram, KindLane,
		KindNoneTask, KindUserTask, KindScriptTask, KindBusinessRuleTask,
		KindStartNoneEvent, KindStartMessageEvent, KindStartSignalEvent, KindStartTimerEvent,
		KindEndNoneEvent, KindEndTerminateEvent, KindEndMessageEvent, KindEndSignalEvent,
		KindIntermediateTimerEvent,
		KindIntermediateMessageEventCatching, KindIntermediateSignalEventCatching,
		KindIntermediateMessageEventThrowing, KindIntermediateSignalEventThrowing,
		KindExclusiveGateway, KindParallelGateway, KindInclusiveGateway, KindEventBasedGateway,
		KindEmbeddedSubprocess, KindEventSubprocess, KindAdHocSubprocess, KindReusableSubprocess,
		KindDataObject, KindTextAnnotation,
		KindSequenceFlow, KindAssociation,
	}
}
