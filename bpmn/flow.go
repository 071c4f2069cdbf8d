package bpmn

var (
	_ Connector = (*SequenceFlow)(nil)
	_ Connector = (*Association)(nil)
)

type SequenceFlow struct {
	BaseElement
	SourceRef string
	TargetRef string
	Condition *FormalExpression
	Priority  string
	Waypoints []*Point
}

func (f *SequenceFlow) GetSourceRef() string { return f.SourceRef }

func (f *SequenceFlow) GetTargetRef() string { return f.TargetRef }

func (f *SequenceFlow) GetWaypoints() []*Point { return f.Waypoints }

func (f *SequenceFlow) SetWaypoints(points []*Point) { f.Waypoints = points }

const (
	AssociationDirectionNone = "None"
	AssociationDirectionOne  = "One"
	AssociationDirectionBoth = "Both"
)

type Association struct {
	BaseElement
	SourceRef string
	TargetRef string
	Direction string
	Waypoints []*Point
}

func (a *Association) GetSourceRef() string { return a.SourceRef }

func (a *Association) GetTargetRef() string { return a.TargetRef }

func (a *Association) GetWaypoints() []*Point { return a.Waypoints }

func (a *Association) SetWaypoints(points []*Point) { a.Waypoints = points }
