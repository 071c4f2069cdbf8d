// Package bpmn is the BPMN 2.0 interchange document: definitions, processes,
// sub-processes, lanes, flow elements and connectors, plus the XML codec that
// reads and writes them with drools extensions, BPMNDI shapes and BPSim
// simulation data.
package bpmn

const (
	BpmnNS   = "http://www.omg.org/spec/BPMN/20100524/MODEL"
	BpmnDINS = "http://www.omg.org/spec/BPMN/20100524/DI"
	DCNS     = "http://www.omg.org/spec/DD/20100524/DC"
	DINS     = "http://www.omg.org/spec/DD/20100524/DI"
	XSINS    = "http://www.w3.org/2001/XMLSchema-instance"
	DroolsNS = "http://www.jboss.org/drools"
	BPSimNS  = "http://www.bpsim.org/schemas/1.0"
	ColorNS  = "http://www.omg.org/spec/BPMN/non-normative/color/1.0"

	DefaultTargetNamespace = "http://www.omg.org/bpmn20"
	DefaultExporter        = "bpmnconv"
	DefaultExporterVersion = "1.0"
)

// Element is implemented by every identifiable node of the document.
type Element interface {
	GetID() string
	SetID(string)
	GetName() string
	SetName(string)
	GetBase() *BaseElement
}

// BaseElement carries the attributes shared by all elements.
type BaseElement struct {
	Id            string
	Name          string
	Documentation string
	Extension     *ExtensionElements
}

func (e *BaseElement) GetID() string { return e.Id }

func (e *BaseElement) SetID(id string) { e.Id = id }

func (e *BaseElement) GetName() string { return e.Name }

func (e *BaseElement) SetName(name string) { e.Name = name }

func (e *BaseElement) GetBase() *BaseElement { return e }

// Extensions returns the extension elements, allocating them on first use.
func (e *BaseElement) Extensions() *ExtensionElements {
	if e.Extension == nil {
		e.Extension = &ExtensionElements{}
	}
	return e.Extension
}

// Shaped is implemented by elements drawn as a BPMNShape.
type Shaped interface {
	Element
	GetShape() *ShapeInfo
}

// ShapeInfo is the diagram information of a shape. Bounds are absolute.
type ShapeInfo struct {
	Bounds   *Bounds
	Style    *ShapeStyle
	Expanded bool
}

func (s *ShapeInfo) GetShape() *ShapeInfo { return s }

type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type Point struct {
	X float64
	Y float64
}

// ShapeStyle holds the color and font attributes of a BPMNShape.
type ShapeStyle struct {
	BackgroundColor string
	BorderColor     string
	BorderSize      float64
	FontFamily      string
	FontColor       string
	FontSize        float64
}

func (s *ShapeStyle) IsZero() bool {
	return s == nil || *s == ShapeStyle{}
}

// FlowNode is an element that sequence flows connect.
type FlowNode interface {
	Shaped
	GetFlowNode() *FlowNodeBase
}

type FlowNodeBase struct {
	BaseElement
	ShapeInfo
	Incoming   []string
	Outgoing   []string
	Simulation *ElementParameters
}

func (n *FlowNodeBase) GetFlowNode() *FlowNodeBase { return n }

func (n *FlowNodeBase) AddIncoming(id string) { n.Incoming = appendOnce(n.Incoming, id) }

func (n *FlowNodeBase) AddOutgoing(id string) { n.Outgoing = appendOnce(n.Outgoing, id) }

// Activity is a task, a sub-process or a call activity.
type Activity interface {
	FlowNode
	GetActivity() *ActivityBase
}

type ActivityBase struct {
	FlowNodeBase
	IOSpecification        *IOSpecification
	DataInputAssociations  []*DataAssociation
	DataOutputAssociations []*DataAssociation
}

func (a *ActivityBase) GetActivity() *ActivityBase { return a }

// Container holds flow elements, artifacts and lanes: a Process or a
// sub-process.
type Container interface {
	Element
	GetContainer() *ContainerBase
}

type ContainerBase struct {
	Properties   []*Property
	LaneSets     []*LaneSet
	FlowElements []Element
	Artifacts    []Element
}

func (c *ContainerBase) GetContainer() *ContainerBase { return c }

func (c *ContainerBase) AddFlowElement(e Element) { c.FlowElements = append(c.FlowElements, e) }

func (c *ContainerBase) AddArtifact(e Element) { c.Artifacts = append(c.Artifacts, e) }

// AddLane appends lane to the first lane set, creating it when needed.
func (c *ContainerBase) AddLane(lane *Lane) {
	if len(c.LaneSets) == 0 {
		c.LaneSets = append(c.LaneSets, &LaneSet{Id: "LaneSet_" + randName()})
	}
	c.LaneSets[0].Lanes = append(c.LaneSets[0].Lanes, lane)
}

// Lanes returns the lanes of every lane set in declaration order.
func (c *ContainerBase) Lanes() []*Lane {
	lanes := make([]*Lane, 0)
	for _, set := range c.LaneSets {
		lanes = append(lanes, set.Lanes...)
	}
	return lanes
}

// Connector is a sequence flow or an association.
type Connector interface {
	Element
	GetSourceRef() string
	GetTargetRef() string
	GetWaypoints() []*Point
	SetWaypoints([]*Point)
}

// ExtensionElements holds the drools extensions of an element.
type ExtensionElements struct {
	MetaData []*MetaData
	OnEntry  []*Script
	OnExit   []*Script
}

type MetaData struct {
	Name  string
	Value string
}

// Script is a drools on-entry or on-exit action. Format is the language URI.
type Script struct {
	Format string
	Body   string
}

func (e *ExtensionElements) IsEmpty() bool {
	return e == nil || len(e.MetaData) == 0 && len(e.OnEntry) == 0 && len(e.OnExit) == 0
}

// Meta returns the value of the named metaData entry.
func (e *ExtensionElements) Meta(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, item := range e.MetaData {
		if item.Name == name {
			return item.Value, true
		}
	}
	return "", false
}

// SetMeta replaces or appends a metaData entry.
func (e *ExtensionElements) SetMeta(name, value string) {
	for _, item := range e.MetaData {
		if item.Name == name {
			item.Value = value
			return
		}
	}
	e.MetaData = append(e.MetaData, &MetaData{Name: name, Value: value})
}

// FormalExpression is an expression body with its language URI.
type FormalExpression struct {
	Language string
	Body     string
}

type IOSpecification struct {
	Id          string
	DataInputs  []*DataIO
	DataOutputs []*DataIO
}

func (s *IOSpecification) IsEmpty() bool {
	return s == nil || len(s.DataInputs) == 0 && len(s.DataOutputs) == 0
}

// DataIO is a dataInput or a dataOutput. DType is the drools:dtype.
type DataIO struct {
	Id             string
	Name           string
	DType          string
	ItemSubjectRef string
}

// DataAssociation maps a variable to a data input (or a data output to a
// variable). Constant inputs carry an Assignment and no SourceRef.
type DataAssociation struct {
	SourceRef   string
	TargetRef   string
	Assignments []*Assignment
}

type Assignment struct {
	From string
	To   string
}

// Property is a process or sub-process variable.
type Property struct {
	Id             string
	Name           string
	ItemSubjectRef string
}

type ItemDefinition struct {
	Id           string
	StructureRef string
}

type Message struct {
	Id      string
	Name    string
	ItemRef string
}

type Signal struct {
	Id   string
	Name string
}

func appendOnce(list []string, id string) []string {
	for _, item := range list {
		if item == id {
			return list
		}
	}
	return append(list, id)
}
