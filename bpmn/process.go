package bpmn

const (
	AdHocOrderingSequential = "Sequential"
	AdHocOrderingParallel   = "Parallel"
)

// Process is a top level process of the definitions.
type Process struct {
	BaseElement
	ContainerBase
	IsExecutable bool
	PackageName  string
	Version      string
	AdHoc        bool
}

// SubProcess is an embedded sub-process, or an event sub-process when
// TriggeredByEvent is set.
type SubProcess struct {
	ActivityBase
	ContainerBase
	TriggeredByEvent bool
}

type AdHocSubProcess struct {
	SubProcess
	CompletionCondition *FormalExpression
	Ordering            string
}

type LaneSet struct {
	Id    string
	Lanes []*Lane
}

// Lane partitions the flow nodes of its container. FlowNodeRefs keeps
// the declaration order.
type Lane struct {
	BaseElement
	ShapeInfo
	FlowNodeRefs []string
}
