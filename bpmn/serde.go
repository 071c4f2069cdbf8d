package bpmn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

var serializers = map[string]Serializer{
	getKind(new(Definitions)):            &definitionSerde{},
	getKind(new(Process)):                &processSerde{},
	getKind(new(SubProcess)):             &subProcessSerde{},
	getKind(new(AdHocSubProcess)):        &adHocSubProcessSerde{},
	getKind(new(StartEvent)):             &startEventSerde{},
	getKind(new(EndEvent)):               &endEventSerde{},
	getKind(new(IntermediateCatchEvent)): &intermediateCatchEventSerde{},
	getKind(new(IntermediateThrowEvent)): &intermediateThrowEventSerde{},
	getKind(new(Task)):                   &taskSerde{},
	getKind(new(UserTask)):               &userTaskSerde{},
	getKind(new(ScriptTask)):             &scriptTaskSerde{},
	getKind(new(BusinessRuleTask)):       &businessRuleTaskSerde{},
	getKind(new(ServiceTask)):            &serviceTaskSerde{},
	getKind(new(CallActivity)):           &callActivitySerde{},
	getKind(new(ExclusiveGateway)):       &exclusiveGatewaySerde{},
	getKind(new(InclusiveGateway)):       &inclusiveGatewaySerde{},
	getKind(new(ParallelGateway)):        &parallelGatewaySerde{},
	getKind(new(EventBasedGateway)):      &eventBasedGatewaySerde{},
	getKind(new(ComplexGateway)):         &complexGatewaySerde{},
	getKind(new(SequenceFlow)):           &sequenceFlowSerde{},
	getKind(new(Association)):            &associationSerde{},
	getKind(new(DataObject)):             &dataObjectSerde{},
	getKind(new(DataObjectReference)):    &dataObjectReferenceSerde{},
	getKind(new(TextAnnotation)):         &textAnnotationSerde{},
	getKind(new(Group)):                  &groupSerde{},
	getKind(new(Unknown)):                &unknownSerde{},
	getKind(new(Diagram)):                &diagramSerde{},
	getKind(new(DiagramPlane)):           &diagramPlaneSerde{},
	getKind(new(DiagramShape)):           &diagramShapeSerde{},
	getKind(new(DiagramEdge)):            &diagramEdgeSerde{},
}

// deserializers are keyed by local tag name, so that any prefix bound to the
// BPMN namespace is accepted.
var deserializers = map[string]Deserializer{
	"definitions":            &definitionSerde{},
	"process":                &processSerde{},
	"subProcess":             &subProcessSerde{},
	"adHocSubProcess":        &adHocSubProcessSerde{},
	"startEvent":             &startEventSerde{},
	"endEvent":               &endEventSerde{},
	"intermediateCatchEvent": &intermediateCatchEventSerde{},
	"intermediateThrowEvent": &intermediateThrowEventSerde{},
	"task":                   &taskSerde{},
	"userTask":               &userTaskSerde{},
	"scriptTask":             &scriptTaskSerde{},
	"businessRuleTask":       &businessRuleTaskSerde{},
	"serviceTask":            &serviceTaskSerde{},
	"callActivity":           &callActivitySerde{},
	"exclusiveGateway":       &exclusiveGatewaySerde{},
	"inclusiveGateway":       &inclusiveGatewaySerde{},
	"parallelGateway":        &parallelGatewaySerde{},
	"eventBasedGateway":      &eventBasedGatewaySerde{},
	"complexGateway":         &complexGatewaySerde{},
	"sequenceFlow":           &sequenceFlowSerde{},
	"association":            &associationSerde{},
	"dataObject":             &dataObjectSerde{},
	"dataObjectReference":    &dataObjectReferenceSerde{},
	"textAnnotation":         &textAnnotationSerde{},
	"group":                  &groupSerde{},
	"BPMNDiagram":            &diagramSerde{},
	"BPMNPlane":              &diagramPlaneSerde{},
	"BPMNShape":              &diagramShapeSerde{},
	"BPMNEdge":               &diagramEdgeSerde{},
}

// tags found inside containers that are neither flow elements nor
// artifacts.
var skipped = map[string]struct{}{
	"auditing":                         {},
	"monitoring":                       {},
	"multiInstanceLoopCharacteristics": {},
	"standardLoopCharacteristics":      {},
	"inputSet":                         {},
	"outputSet":                        {},
}

// errNotHandled is returned by a ranger that leaves a child to the next
// reader in the chain.
var errNotHandled = errors.New("not handled")

type Serializer interface {
	Serialize(element any, start *etree.Element) error
}

type Deserializer interface {
	Deserialize(start *etree.Element) (any, error)
}

func Serialize(element any, start *etree.Element) error {
	kind := getKind(element)
	serializer, ok := serializers[kind]
	if !ok {
		return fmt.Errorf("%s not support to serialize", kind)
	}

	return serializer.Serialize(element, start)
}

func Deserialize(start *etree.Element) (any, error) {
	deserializer, ok := deserializers[start.Tag]
	if !ok {
		return nil, fmt.Errorf("%s not support to deserialize", start.FullTag())
	}

	return deserializer.Deserialize(start)
}

// FromXML parses a BPMN document and resolves its diagram and simulation
// data onto the elements.
func FromXML(text string) (*Definitions, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("read bpmn document: %v", err)
	}
	return fromDocument(doc)
}

func FromBytes(data []byte) (*Definitions, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("read bpmn document: %v", err)
	}
	return fromDocument(doc)
}

func fromDocument(doc *etree.Document) (*Definitions, error) {
	root := doc.Root()
	if root == nil || root.Tag != "definitions" {
		return nil, fmt.Errorf("bpmn document has no definitions root")
	}
	v, err := Deserialize(root)
	if err != nil {
		return nil, err
	}
	return v.(*Definitions), nil
}

// WriteToBytes encodes the definitions with a regenerated diagram and
// simulation scenario.
func (d *Definitions) WriteToBytes() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	if err := Serialize(d, doc.CreateElement("")); err != nil {
		return nil, err
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

type definitionSerde struct{}

func (s *definitionSerde) Serialize(element any, start *etree.Element) error {
	definitions, ok := element.(*Definitions)
	if !ok {
		return fmt.Errorf("%v is not Definitions", element)
	}

	start.Space = "bpmn"
	start.Tag = "definitions"
	start.CreateAttr("xmlns:bpmn", BpmnNS)
	start.CreateAttr("xmlns:bpmndi", BpmnDINS)
	start.CreateAttr("xmlns:bpsim", BPSimNS)
	start.CreateAttr("xmlns:color", ColorNS)
	start.CreateAttr("xmlns:dc", DCNS)
	start.CreateAttr("xmlns:di", DINS)
	start.CreateAttr("xmlns:drools", DroolsNS)
	start.CreateAttr("xmlns:xsi", XSINS)
	if definitions.Id != "" {
		start.CreateAttr("id", definitions.Id)
	}
	if definitions.Exporter != "" {
		start.CreateAttr("exporter", definitions.Exporter)
	}
	if definitions.ExporterVersion != "" {
		start.CreateAttr("exporterVersion", definitions.ExporterVersion)
	}
	targetNamespace := definitions.TargetNamespace
	if targetNamespace == "" {
		targetNamespace = DefaultTargetNamespace
	}
	start.CreateAttr("targetNamespace", targetNamespace)

	for _, item := range definitions.ItemDefinitions {
		child := start.CreateElement("bpmn:itemDefinition")
		child.CreateAttr("id", item.Id)
		if item.StructureRef != "" {
			child.CreateAttr("structureRef", item.StructureRef)
		}
	}
	for _, message := range definitions.Messages {
		child := start.CreateElement("bpmn:message")
		child.CreateAttr("id", message.Id)
		if message.ItemRef != "" {
			child.CreateAttr("itemRef", message.ItemRef)
		}
		child.CreateAttr("name", message.Name)
	}
	for _, signal := range definitions.Signals {
		child := start.CreateElement("bpmn:signal")
		child.CreateAttr("id", signal.Id)
		child.CreateAttr("name", signal.Name)
	}

	for _, process := range definitions.Processes {
		if err := Serialize(process, start.CreateElement("")); err != nil {
			return err
		}
	}

	for _, diagram := range buildDiagrams(definitions) {
		if err := Serialize(diagram, start.CreateElement("")); err != nil {
			return err
		}
	}

	writeSimulation(definitions, start)

	return nil
}

func (s *definitionSerde) Deserialize(start *etree.Element) (any, error) {
	d := &Definitions{}
	d.Id = attrString(start, "id")
	d.TargetNamespace = attrString(start, "targetNamespace")
	d.Exporter = attrString(start, "exporter")
	d.ExporterVersion = attrString(start, "exporterVersion")

	diagrams := make([]*Diagram, 0)
	params := make([]*ElementParameters, 0)
	for _, child := range start.ChildElements() {
		switch child.Tag {
		case "itemDefinition":
			d.ItemDefinitions = append(d.ItemDefinitions, &ItemDefinition{
				Id:           attrString(child, "id"),
				StructureRef: attrString(child, "structureRef"),
			})
		case "message":
			d.Messages = append(d.Messages, &Message{
				Id:      attrString(child, "id"),
				Name:    attrString(child, "name"),
				ItemRef: attrString(child, "itemRef"),
			})
		case "signal":
			d.Signals = append(d.Signals, &Signal{
				Id:   attrString(child, "id"),
				Name: attrString(child, "name"),
			})
		case "process", "BPMNDiagram":
			elem, err := Deserialize(child)
			if err != nil {
				return nil, err
			}
			switch tt := elem.(type) {
			case *Process:
				d.Processes = append(d.Processes, tt)
			case *Diagram:
				diagrams = append(diagrams, tt)
			}
		case "relationship":
			if attrString(child, "type") == "BPSimData" {
				params = append(params, readSimulation(child)...)
			}
		}
	}

	attachDiagrams(d, diagrams)
	attachSimulation(d, params)

	return d, nil
}

type elementSerde struct{}

func (s *elementSerde) serialize(e *BaseElement, start *etree.Element) {
	if e.Id != "" {
		start.CreateAttr("id", e.Id)
	}
	if e.Name != "" {
		start.CreateAttr("name", e.Name)
	}
	if e.Documentation != "" {
		start.CreateElement("bpmn:documentation").CreateCData(e.Documentation)
	}
	if !e.Extension.IsEmpty() {
		writeExtension(e.Extension, start.CreateElement("bpmn:extensionElements"))
	}
}

func (s *elementSerde) deserialize(start *etree.Element, e *BaseElement, ranger func(element *etree.Element) error) error {
	e.Id = attrString(start, "id")
	e.Name = attrString(start, "name")

	for _, child := range start.ChildElements() {
		switch child.Tag {
		case "documentation":
			e.Documentation = child.Text()
		case "extensionElements":
			e.Extension = readExtension(child)
		default:
			if ranger != nil {
				if err := ranger(child); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

type flowNodeSerde struct{ inner elementSerde }

func (s *flowNodeSerde) serialize(n *FlowNodeBase, start *etree.Element) {
	s.inner.serialize(&n.BaseElement, start)
	for _, id := range n.Incoming {
		start.CreateElement("bpmn:incoming").SetText(id)
	}
	for _, id := range n.Outgoing {
		start.CreateElement("bpmn:outgoing").SetText(id)
	}
}

func (s *flowNodeSerde) deserialize(start *etree.Element, n *FlowNodeBase, ranger func(element *etree.Element) error) error {
	return s.inner.deserialize(start, &n.BaseElement, func(child *etree.Element) error {
		switch child.Tag {
		case "incoming":
			n.Incoming = append(n.Incoming, strings.TrimSpace(child.Text()))
		case "outgoing":
			n.Outgoing = append(n.Outgoing, strings.TrimSpace(child.Text()))
		default:
			if ranger != nil {
				return ranger(child)
			}
		}
		return nil
	})
}

type activitySerde struct{ inner flowNodeSerde }

func (s *activitySerde) serialize(a *ActivityBase, properties []*Property, start *etree.Element) {
	s.inner.serialize(&a.FlowNodeBase, start)
	if !a.IOSpecification.IsEmpty() {
		writeIOSpecification(a.IOSpecification, start.CreateElement("bpmn:ioSpecification"))
	}
	writeProperties(properties, start)
	for _, association := range a.DataInputAssociations {
		writeDataAssociation(association, start.CreateElement("bpmn:dataInputAssociation"))
	}
	for _, association := range a.DataOutputAssociations {
		writeDataAssociation(association, start.CreateElement("bpmn:dataOutputAssociation"))
	}
}

func (s *activitySerde) deserialize(start *etree.Element, a *ActivityBase, ranger func(element *etree.Element) error) error {
	return s.inner.deserialize(start, &a.FlowNodeBase, func(child *etree.Element) error {
		switch child.Tag {
		case "ioSpecification":
			a.IOSpecification = readIOSpecification(child)
		case "dataInputAssociation":
			a.DataInputAssociations = append(a.DataInputAssociations, readDataAssociation(child))
		case "dataOutputAssociation":
			a.DataOutputAssociations = append(a.DataOutputAssociations, readDataAssociation(child))
		default:
			if ranger != nil {
				return ranger(child)
			}
		}
		return nil
	})
}

type containerSerde struct{ inner elementSerde }

func (s *containerSerde) serialize(c *ContainerBase, start *etree.Element) error {
	for _, set := range c.LaneSets {
		child := start.CreateElement("bpmn:laneSet")
		if set.Id != "" {
			child.CreateAttr("id", set.Id)
		}
		for _, lane := range set.Lanes {
			elem := child.CreateElement("bpmn:lane")
			s.inner.serialize(&lane.BaseElement, elem)
			for _, ref := range lane.FlowNodeRefs {
				elem.CreateElement("bpmn:flowNodeRef").SetText(ref)
			}
		}
	}

	for _, elem := range c.FlowElements {
		if err := Serialize(elem, start.CreateElement("")); err != nil {
			return err
		}
	}
	for _, elem := range c.Artifacts {
		if err := Serialize(elem, start.CreateElement("")); err != nil {
			return err
		}
	}

	return nil
}

func (s *containerSerde) deserialize(child *etree.Element, c *ContainerBase) error {
	switch child.Tag {
	case "property":
		c.Properties = append(c.Properties, &Property{
			Id:             attrString(child, "id"),
			Name:           attrString(child, "name"),
			ItemSubjectRef: attrString(child, "itemSubjectRef"),
		})
		return nil
	case "laneSet":
		set := &LaneSet{Id: attrString(child, "id")}
		for _, item := range child.SelectElements("lane") {
			lane := &Lane{}
			err := s.inner.deserialize(item, &lane.BaseElement, func(ref *etree.Element) error {
				if ref.Tag == "flowNodeRef" {
					lane.FlowNodeRefs = append(lane.FlowNodeRefs, strings.TrimSpace(ref.Text()))
				}
				return nil
			})
			if err != nil {
				return err
			}
			set.Lanes = append(set.Lanes, lane)
		}
		c.LaneSets = append(c.LaneSets, set)
		return nil
	}

	if _, ok := skipped[child.Tag]; ok {
		return nil
	}

	if _, ok := deserializers[child.Tag]; !ok {
		unknown := &Unknown{Tag: child.Tag}
		if err := s.inner.deserialize(child, &unknown.BaseElement, nil); err != nil {
			return err
		}
		c.AddFlowElement(unknown)
		return nil
	}

	elem, err := Deserialize(child)
	if err != nil {
		return err
	}
	switch tt := elem.(type) {
	case *TextAnnotation, *Group, *Association:
		c.AddArtifact(elem.(Element))
	case Element:
		c.AddFlowElement(tt)
	default:
		return fmt.Errorf("%s is not a flow element", child.FullTag())
	}

	return nil
}

type processSerde struct {
	inner     elementSerde
	container containerSerde
}

func (s *processSerde) Serialize(element any, start *etree.Element) error {
	process, ok := element.(*Process)
	if !ok {
		return fmt.Errorf("%v is not Process", element)
	}

	start.Space = "bpmn"
	start.Tag = "process"
	s.inner.serialize(&process.BaseElement, start)
	if process.PackageName != "" {
		start.CreateAttr("drools:packageName", process.PackageName)
	}
	if process.Version != "" {
		start.CreateAttr("drools:version", process.Version)
	}
	start.CreateAttr("drools:adHoc", formatBool(process.AdHoc))
	start.CreateAttr("isExecutable", formatBool(process.IsExecutable))

	writeProperties(process.Properties, start)

	return s.container.serialize(&process.ContainerBase, start)
}

func (s *processSerde) Deserialize(start *etree.Element) (any, error) {
	p := &Process{}
	p.PackageName = attrString(start, "packageName")
	p.Version = attrString(start, "version")
	p.AdHoc = attrBool(start, "adHoc", false)
	p.IsExecutable = attrBool(start, "isExecutable", true)

	ranger := func(child *etree.Element) error {
		return s.container.deserialize(child, &p.ContainerBase)
	}
	if err := s.inner.deserialize(start, &p.BaseElement, ranger); err != nil {
		return nil, err
	}

	return p, nil
}

type subProcessSerde struct {
	inner     activitySerde
	container containerSerde
}

func (s *subProcessSerde) serialize(sub *SubProcess, start *etree.Element) error {
	s.inner.serialize(&sub.ActivityBase, sub.Properties, start)
	if sub.TriggeredByEvent {
		start.CreateAttr("triggeredByEvent", "true")
	}
	return s.container.serialize(&sub.ContainerBase, start)
}

func (s *subProcessSerde) deserialize(start *etree.Element, sub *SubProcess, ranger func(element *etree.Element) error) error {
	sub.TriggeredByEvent = attrBool(start, "triggeredByEvent", false)
	return s.inner.deserialize(start, &sub.ActivityBase, func(child *etree.Element) error {
		if ranger != nil {
			if err := ranger(child); err != errNotHandled {
				return err
			}
		}
		return s.container.deserialize(child, &sub.ContainerBase)
	})
}

func (s *subProcessSerde) Serialize(element any, start *etree.Element) error {
	sub, ok := element.(*SubProcess)
	if !ok {
		return fmt.Errorf("%v is not SubProcess", element)
	}
	start.Space = "bpmn"
	start.Tag = "subProcess"
	return s.serialize(sub, start)
}

func (s *subProcessSerde) Deserialize(start *etree.Element) (any, error) {
	sub := &SubProcess{}
	if err := s.deserialize(start, sub, nil); err != nil {
		return nil, err
	}
	return sub, nil
}

type adHocSubProcessSerde struct{ inner subProcessSerde }

func (s *adHocSubProcessSerde) Serialize(element any, start *etree.Element) error {
	sub, ok := element.(*AdHocSubProcess)
	if !ok {
		return fmt.Errorf("%v is not AdHocSubProcess", element)
	}
	start.Space = "bpmn"
	start.Tag = "adHocSubProcess"
	if err := s.inner.serialize(&sub.SubProcess, start); err != nil {
		return err
	}
	if sub.Ordering != "" {
		start.CreateAttr("ordering", sub.Ordering)
	}
	writeExpression(sub.CompletionCondition, start, "bpmn:completionCondition")
	return nil
}

func (s *adHocSubProcessSerde) Deserialize(start *etree.Element) (any, error) {
	sub := &AdHocSubProcess{}
	sub.Ordering = attrString(start, "ordering")
	ranger := func(child *etree.Element) error {
		if child.Tag == "completionCondition" {
			sub.CompletionCondition = readExpression(child)
			return nil
		}
		return errNotHandled
	}
	if err := s.inner.deserialize(start, &sub.SubProcess, ranger); err != nil {
		return nil, err
	}
	return sub, nil
}

type unknownSerde struct{ inner elementSerde }

func (s *unknownSerde) Serialize(element any, start *etree.Element) error {
	unknown, ok := element.(*Unknown)
	if !ok {
		return fmt.Errorf("%v is not Unknown", element)
	}
	start.Space = "bpmn"
	start.Tag = unknown.Tag
	s.inner.serialize(&unknown.BaseElement, start)
	return nil
}

func (s *unknownSerde) Deserialize(start *etree.Element) (any, error) {
	unknown := &Unknown{Tag: start.Tag}
	if err := s.inner.deserialize(start, &unknown.BaseElement, nil); err != nil {
		return nil, err
	}
	return unknown, nil
}
