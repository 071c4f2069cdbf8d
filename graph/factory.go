package graph

//go:generate mockgen -source=factory.go -destination=mock_graph/mock_factory.go -package=mock_graph

// Factory allocates nodes and edges for a kind. Converters obtain every
// element through a Factory so that callers may decorate allocation.
type Factory interface {
	NewNode(id string, kind Kind) Node
	NewEdge(id string, kind Kind) Edge
}

// DefaultFactory allocates elements holding the default property sets of
// their kind.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

// NewNode returns nil for edge or unknown kinds.
func (DefaultFactory) NewNode(id string, kind Kind) Node {
	if kind.IsEdge() {
		return nil
	}
	return Wrap(id, NewDefinition(kind))
}

// NewEdge returns nil for node or unknown kinds.
func (DefaultFactory) NewEdge(id string, kind Kind) Edge {
	return WrapEdge(id, NewDefinition(kind), "", "")
}

// Wrap returns a node carrying def, typed after the concrete definition.
func Wrap(id string, def Definition) Node {
	switch tt := def.(type) {
	case *BPMNDiagram:
		return NewNode(id, tt)
	case *Lane:
		return NewNode(id, tt)
	case *NoneTask:
		return NewNode(id, tt)
	case *UserTask:
		return NewNode(id, tt)
	case *ScriptTask:
		return NewNode(id, tt)
	case *BusinessRuleTask:
		return NewNode(id, tt)
	case *StartNoneEvent:
		return NewNode(id, tt)
	case *StartMessageEvent:
		return NewNode(id, tt)
	case *StartSignalEvent:
		return NewNode(id, tt)
	case *StartTimerEvent:
		return NewNode(id, tt)
	case *EndNoneEvent:
		return NewNode(id, tt)
	case *EndTerminateEvent:
		return NewNode(id, tt)
	case *EndMessageEvent:
		return NewNode(id, tt)
	case *EndSignalEvent:
		return NewNode(id, tt)
	case *IntermediateTimerEvent:
		return NewNode(id, tt)
	case *IntermediateMessageEventCatching:
		return NewNode(id, tt)
	case *IntermediateSignalEventCatching:
		return NewNode(id, tt)
	case *IntermediateMessageEventThrowing:
		return NewNode(id, tt)
	case *IntermediateSignalEventThrowing:
		return NewNode(id, tt)
	case *ExclusiveGateway:
		return NewNode(id, tt)
	case *ParallelGateway:
		return NewNode(id, tt)
	case *InclusiveGateway:
		return NewNode(id, tt)
	case *EventBasedGateway:
		return NewNode(id, tt)
	case *EmbeddedSubprocess:
		return NewNode(id, tt)
	case *EventSubprocess:
		return NewNode(id, tt)
	case *AdHocSubprocess:
		return NewNode(id, tt)
	case *ReusableSubprocess:
		return NewNode(id, tt)
	case *DataObject:
		return NewNode(id, tt)
	case *TextAnnotation:
		return NewNode(id, tt)
	default:
		return nil
	}
}

// WrapEdge returns an edge carrying def, typed after the concrete definition.
func WrapEdge(id string, def Definition, source, target string) Edge {
	switch tt := def.(type) {
	case *SequenceFlow:
		return NewEdge(id, tt, source, target)
	case *Association:
		return NewEdge(id, tt, source, target)
	default:
		return nil
	}
}
