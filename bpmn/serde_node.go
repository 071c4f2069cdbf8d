package bpmn

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

type eventSerde struct{ inner flowNodeSerde }

func (s *eventSerde) serialize(e *EventBase, start *etree.Element) error {
	s.inner.serialize(&e.FlowNodeBase, start)

	writeDataIO(e.DataInputs, start, "bpmn:dataInput")
	for _, association := range e.DataInputAssociations {
		writeDataAssociation(association, start.CreateElement("bpmn:dataInputAssociation"))
	}
	if len(e.DataInputs) > 0 {
		set := start.CreateElement("bpmn:inputSet")
		for _, item := range e.DataInputs {
			set.CreateElement("bpmn:dataInputRefs").SetText(item.Id)
		}
	}

	writeDataIO(e.DataOutputs, start, "bpmn:dataOutput")
	for _, association := range e.DataOutputAssociations {
		writeDataAssociation(association, start.CreateElement("bpmn:dataOutputAssociation"))
	}
	if len(e.DataOutputs) > 0 {
		set := start.CreateElement("bpmn:outputSet")
		for _, item := range e.DataOutputs {
			set.CreateElement("bpmn:dataOutputRefs").SetText(item.Id)
		}
	}

	return writeEventDefinitions(e.Definitions, start)
}

func (s *eventSerde) deserialize(start *etree.Element, e *EventBase) error {
	return s.inner.deserialize(start, &e.FlowNodeBase, func(child *etree.Element) error {
		switch child.Tag {
		case "dataInput":
			e.DataInputs = append(e.DataInputs, readDataIO(child))
		case "dataOutput":
			e.DataOutputs = append(e.DataOutputs, readDataIO(child))
		case "dataInputAssociation":
			e.DataInputAssociations = append(e.DataInputAssociations, readDataAssociation(child))
		case "dataOutputAssociation":
			e.DataOutputAssociations = append(e.DataOutputAssociations, readDataAssociation(child))
		default:
			if def := readEventDefinition(child); def != nil {
				e.Definitions = append(e.Definitions, def)
			}
		}
		return nil
	})
}

type startEventSerde struct{ inner eventSerde }

func (s *startEventSerde) Serialize(element any, start *etree.Element) error {
	event, ok := element.(*StartEvent)
	if !ok {
		return fmt.Errorf("%v is not StartEvent", element)
	}
	start.Space = "bpmn"
	start.Tag = "startEvent"
	if !event.IsInterrupting {
		start.CreateAttr("isInterrupting", "false")
	}
	return s.inner.serialize(&event.EventBase, start)
}

func (s *startEventSerde) Deserialize(start *etree.Element) (any, error) {
	event := &StartEvent{}
	event.IsInterrupting = attrBool(start, "isInterrupting", true)
	if err := s.inner.deserialize(start, &event.EventBase); err != nil {
		return nil, err
	}

	return event, nil
}

type endEventSerde struct{ inner eventSerde }

func (s *endEventSerde) Serialize(element any, start *etree.Element) error {
	event, ok := element.(*EndEvent)
	if !ok {
		return fmt.Errorf("%v is not EndEvent", element)
	}
	start.Space = "bpmn"
	start.Tag = "endEvent"
	return s.inner.serialize(&event.EventBase, start)
}

func (s *endEventSerde) Deserialize(start *etree.Element) (any, error) {
	event := &EndEvent{}
	if err := s.inner.deserialize(start, &event.EventBase); err != nil {
		return nil, err
	}

	return event, nil
}

type intermediateCatchEventSerde struct{ inner eventSerde }

func (s *intermediateCatchEventSerde) Serialize(element any, start *etree.Element) error {
	event, ok := element.(*IntermediateCatchEvent)
	if !ok {
		return fmt.Errorf("%v is not IntermediateCatchEvent", element)
	}
	start.Space = "bpmn"
	start.Tag = "intermediateCatchEvent"
	return s.inner.serialize(&event.EventBase, start)
}

func (s *intermediateCatchEventSerde) Deserialize(start *etree.Element) (any, error) {
	event := &IntermediateCatchEvent{}
	if err := s.inner.deserialize(start, &event.EventBase); err != nil {
		return nil, err
	}

	return event, nil
}

type intermediateThrowEventSerde struct{ inner eventSerde }

func (s *intermediateThrowEventSerde) Serialize(element any, start *etree.Element) error {
	event, ok := element.(*IntermediateThrowEvent)
	if !ok {
		return fmt.Errorf("%v is not IntermediateThrowEvent", element)
	}
	start.Space = "bpmn"
	start.Tag = "intermediateThrowEvent"
	return s.inner.serialize(&event.EventBase, start)
}

func (s *intermediateThrowEventSerde) Deserialize(start *etree.Element) (any, error) {
	event := &IntermediateThrowEvent{}
	if err := s.inner.deserialize(start, &event.EventBase); err != nil {
		return nil, err
	}

	return event, nil
}

type taskSerde struct{ inner activitySerde }

func (s *taskSerde) Serialize(element any, start *etree.Element) error {
	task, ok := element.(*Task)
	if !ok {
		return fmt.Errorf("%v is not Task", element)
	}
	start.Space = "bpmn"
	start.Tag = "task"
	s.inner.serialize(&task.ActivityBase, nil, start)

	return nil
}

func (s *taskSerde) Deserialize(start *etree.Element) (any, error) {
	task := &Task{}
	if err := s.inner.deserialize(start, &task.ActivityBase, nil); err != nil {
		return nil, err
	}

	return task, nil
}

type userTaskSerde struct{ inner activitySerde }

func (s *userTaskSerde) Serialize(element any, start *etree.Element) error {
	task, ok := element.(*UserTask)
	if !ok {
		return fmt.Errorf("%v is not UserTask", element)
	}
	start.Space = "bpmn"
	start.Tag = "userTask"
	if task.Implementation != "" {
		start.CreateAttr("implementation", task.Implementation)
	}
	s.inner.serialize(&task.ActivityBase, nil, start)
	for _, owner := range task.PotentialOwners {
		child := start.CreateElement("bpmn:potentialOwner")
		expr := child.CreateElement("bpmn:resourceAssignmentExpression")
		expr.CreateElement("bpmn:formalExpression").SetText(owner)
	}

	return nil
}

func (s *userTaskSerde) Deserialize(start *etree.Element) (any, error) {
	task := &UserTask{}
	task.Implementation = attrString(start, "implementation")
	ranger := func(child *etree.Element) error {
		if child.Tag != "potentialOwner" {
			return nil
		}
		expr := child.SelectElement("resourceAssignmentExpression")
		if expr == nil {
			return nil
		}
		if formal := expr.SelectElement("formalExpression"); formal != nil {
			task.PotentialOwners = append(task.PotentialOwners, strings.TrimSpace(formal.Text()))
		}
		return nil
	}
	if err := s.inner.deserialize(start, &task.ActivityBase, ranger); err != nil {
		return nil, err
	}

	return task, nil
}

type scriptTaskSerde struct{ inner activitySerde }

func (s *scriptTaskSerde) Serialize(element any, start *etree.Element) error {
	task, ok := element.(*ScriptTask)
	if !ok {
		return fmt.Errorf("%v is not ScriptTask", element)
	}
	start.Space = "bpmn"
	start.Tag = "scriptTask"
	if task.ScriptFormat != "" {
		start.CreateAttr("scriptFormat", task.ScriptFormat)
	}
	s.inner.serialize(&task.ActivityBase, nil, start)
	if task.Script != "" {
		start.CreateElement("bpmn:script").CreateCData(task.Script)
	}

	return nil
}

func (s *scriptTaskSerde) Deserialize(start *etree.Element) (any, error) {
	task := &ScriptTask{}
	task.ScriptFormat = attrString(start, "scriptFormat")
	ranger := func(child *etree.Element) error {
		if child.Tag == "script" {
			task.Script = child.Text()
		}
		return nil
	}
	if err := s.inner.deserialize(start, &task.ActivityBase, ranger); err != nil {
		return nil, err
	}

	return task, nil
}

type businessRuleTaskSerde struct{ inner activitySerde }

func (s *businessRuleTaskSerde) Serialize(element any, start *etree.Element) error {
	task, ok := element.(*BusinessRuleTask)
	if !ok {
		return fmt.Errorf("%v is not BusinessRuleTask", element)
	}
	start.Space = "bpmn"
	start.Tag = "businessRuleTask"
	if task.Implementation != "" {
		start.CreateAttr("implementation", task.Implementation)
	}
	if task.RuleFlowGroup != "" {
		start.CreateAttr("drools:ruleFlowGroup", task.RuleFlowGroup)
	}
	s.inner.serialize(&task.ActivityBase, nil, start)

	return nil
}

func (s *businessRuleTaskSerde) Deserialize(start *etree.Element) (any, error) {
	task := &BusinessRuleTask{}
	task.Implementation = attrString(start, "implementation")
	task.RuleFlowGroup = attrString(start, "ruleFlowGroup")
	if err := s.inner.deserialize(start, &task.ActivityBase, nil); err != nil {
		return nil, err
	}

	return task, nil
}

type serviceTaskSerde struct{ inner activitySerde }

func (s *serviceTaskSerde) Serialize(element any, start *etree.Element) error {
	task, ok := element.(*ServiceTask)
	if !ok {
		return fmt.Errorf("%v is not ServiceTask", element)
	}
	start.Space = "bpmn"
	start.Tag = "serviceTask"
	if task.Implementation != "" {
		start.CreateAttr("implementation", task.Implementation)
	}
	if task.OperationRef != "" {
		start.CreateAttr("operationRef", task.OperationRef)
	}
	s.inner.serialize(&task.ActivityBase, nil, start)

	return nil
}

func (s *serviceTaskSerde) Deserialize(start *etree.Element) (any, error) {
	task := &ServiceTask{}
	task.Implementation = attrString(start, "implementation")
	task.OperationRef = attrString(start, "operationRef")
	if err := s.inner.deserialize(start, &task.ActivityBase, nil); err != nil {
		return nil, err
	}

	return task, nil
}

type callActivitySerde struct{ inner activitySerde }

func (s *callActivitySerde) Serialize(element any, start *etree.Element) error {
	call, ok := element.(*CallActivity)
	if !ok {
		return fmt.Errorf("%v is not CallActivity", element)
	}
	start.Space = "bpmn"
	start.Tag = "callActivity"
	if call.CalledElement != "" {
		start.CreateAttr("calledElement", call.CalledElement)
	}
	start.CreateAttr("drools:independent", formatBool(call.Independent))
	start.CreateAttr("drools:waitForCompletion", formatBool(call.WaitForCompletion))
	s.inner.serialize(&call.ActivityBase, nil, start)

	return nil
}

func (s *callActivitySerde) Deserialize(start *etree.Element) (any, error) {
	call := &CallActivity{}
	call.CalledElement = attrString(start, "calledElement")
	call.Independent = attrBool(start, "independent", false)
	call.WaitForCompletion = attrBool(start, "waitForCompletion", true)
	if err := s.inner.deserialize(start, &call.ActivityBase, nil); err != nil {
		return nil, err
	}

	return call, nil
}

type gatewaySerde struct{ inner flowNodeSerde }

func (s *gatewaySerde) serialize(g *GatewayBase, defaultFlow string, start *etree.Element) {
	s.inner.serialize(&g.FlowNodeBase, start)
	if g.Direction != "" {
		start.CreateAttr("gatewayDirection", g.Direction)
	}
	if defaultFlow != "" {
		start.CreateAttr("default", defaultFlow)
	}
}

func (s *gatewaySerde) deserialize(start *etree.Element, g *GatewayBase) (string, error) {
	g.Direction = attrString(start, "gatewayDirection")
	if err := s.inner.deserialize(start, &g.FlowNodeBase, nil); err != nil {
		return "", err
	}
	return attrString(start, "default"), nil
}

type exclusiveGatewaySerde struct{ inner gatewaySerde }

func (s *exclusiveGatewaySerde) Serialize(element any, start *etree.Element) error {
	gw, ok := element.(*ExclusiveGateway)
	if !ok {
		return fmt.Errorf("%v is not ExclusiveGateway", element)
	}
	start.Space = "bpmn"
	start.Tag = "exclusiveGateway"
	s.inner.serialize(&gw.GatewayBase, gw.Default, start)

	return nil
}

func (s *exclusiveGatewaySerde) Deserialize(start *etree.Element) (any, error) {
	gw := &ExclusiveGateway{}
	def, err := s.inner.deserialize(start, &gw.GatewayBase)
	if err != nil {
		return nil, err
	}
	gw.Default = def

	return gw, nil
}

type inclusiveGatewaySerde struct{ inner gatewaySerde }

func (s *inclusiveGatewaySerde) Serialize(element any, start *etree.Element) error {
	gw, ok := element.(*InclusiveGateway)
	if !ok {
		return fmt.Errorf("%v is not InclusiveGateway", element)
	}
	start.Space = "bpmn"
	start.Tag = "inclusiveGateway"
	s.inner.serialize(&gw.GatewayBase, gw.Default, start)

	return nil
}

func (s *inclusiveGatewaySerde) Deserialize(start *etree.Element) (any, error) {
	gw := &InclusiveGateway{}
	def, err := s.inner.deserialize(start, &gw.GatewayBase)
	if err != nil {
		return nil, err
	}
	gw.Default = def

	return gw, nil
}

type parallelGatewaySerde struct{ inner gatewaySerde }

func (s *parallelGatewaySerde) Serialize(element any, start *etree.Element) error {
	gw, ok := element.(*ParallelGateway)
	if !ok {
		return fmt.Errorf("%v is not ParallelGateway", element)
	}
	start.Space = "bpmn"
	start.Tag = "parallelGateway"
	s.inner.serialize(&gw.GatewayBase, "", start)

	return nil
}

func (s *parallelGatewaySerde) Deserialize(start *etree.Element) (any, error) {
	gw := &ParallelGateway{}
	if _, err := s.inner.deserialize(start, &gw.GatewayBase); err != nil {
		return nil, err
	}

	return gw, nil
}

type eventBasedGatewaySerde struct{ inner gatewaySerde }

func (s *eventBasedGatewaySerde) Serialize(element any, start *etree.Element) error {
	gw, ok := element.(*EventBasedGateway)
	if !ok {
		return fmt.Errorf("%v is not EventBasedGateway", element)
	}
	start.Space = "bpmn"
	start.Tag = "eventBasedGateway"
	s.inner.serialize(&gw.GatewayBase, "", start)

	return nil
}

func (s *eventBasedGatewaySerde) Deserialize(start *etree.Element) (any, error) {
	gw := &EventBasedGateway{}
	if _, err := s.inner.deserialize(start, &gw.GatewayBase); err != nil {
		return nil, err
	}

	return gw, nil
}

type complexGatewaySerde struct{ inner gatewaySerde }

func (s *complexGatewaySerde) Serialize(element any, start *etree.Element) error {
	gw, ok := element.(*ComplexGateway)
	if !ok {
		return fmt.Errorf("%v is not ComplexGateway", element)
	}
	start.Space = "bpmn"
	start.Tag = "complexGateway"
	s.inner.serialize(&gw.GatewayBase, gw.Default, start)

	return nil
}

func (s *complexGatewaySerde) Deserialize(start *etree.Element) (any, error) {
	gw := &ComplexGateway{}
	def, err := s.inner.deserialize(start, &gw.GatewayBase)
	if err != nil {
		return nil, err
	}
	gw.Default = def

	return gw, nil
}

type sequenceFlowSerde struct{ inner elementSerde }

func (s *sequenceFlowSerde) Serialize(element any, start *etree.Element) error {
	flow, ok := element.(*SequenceFlow)
	if !ok {
		return fmt.Errorf("%v is not SequenceFlow", element)
	}

	start.Space = "bpmn"
	start.Tag = "sequenceFlow"
	s.inner.serialize(&flow.BaseElement, start)
	if flow.Priority != "" {
		start.CreateAttr("drools:priority", flow.Priority)
	}
	start.CreateAttr("sourceRef", flow.SourceRef)
	start.CreateAttr("targetRef", flow.TargetRef)
	writeExpression(flow.Condition, start, "bpmn:conditionExpression")

	return nil
}

func (s *sequenceFlowSerde) Deserialize(start *etree.Element) (any, error) {
	flow := &SequenceFlow{}
	flow.SourceRef = attrString(start, "sourceRef")
	flow.TargetRef = attrString(start, "targetRef")
	flow.Priority = attrString(start, "priority")

	ranger := func(child *etree.Element) error {
		if child.Tag == "conditionExpression" {
			flow.Condition = readExpression(child)
		}
		return nil
	}
	if err := s.inner.deserialize(start, &flow.BaseElement, ranger); err != nil {
		return nil, err
	}

	return flow, nil
}

type associationSerde struct{ inner elementSerde }

func (s *associationSerde) Serialize(element any, start *etree.Element) error {
	association, ok := element.(*Association)
	if !ok {
		return fmt.Errorf("%v is not Association", element)
	}

	start.Space = "bpmn"
	start.Tag = "association"
	s.inner.serialize(&association.BaseElement, start)
	if association.Direction != "" {
		start.CreateAttr("associationDirection", association.Direction)
	}
	start.CreateAttr("sourceRef", association.SourceRef)
	start.CreateAttr("targetRef", association.TargetRef)

	return nil
}

func (s *associationSerde) Deserialize(start *etree.Element) (any, error) {
	association := &Association{}
	association.SourceRef = attrString(start, "sourceRef")
	association.TargetRef = attrString(start, "targetRef")
	association.Direction = attrString(start, "associationDirection")
	if err := s.inner.deserialize(start, &association.BaseElement, nil); err != nil {
		return nil, err
	}

	return association, nil
}

type dataObjectSerde struct{ inner elementSerde }

func (s *dataObjectSerde) Serialize(element any, start *etree.Element) error {
	do, ok := element.(*DataObject)
	if !ok {
		return fmt.Errorf("%v is not DataObject", element)
	}
	start.Space = "bpmn"
	start.Tag = "dataObject"
	s.inner.serialize(&do.BaseElement, start)
	if do.ItemSubjectRef != "" {
		start.CreateAttr("itemSubjectRef", do.ItemSubjectRef)
	}

	return nil
}

func (s *dataObjectSerde) Deserialize(start *etree.Element) (any, error) {
	do := &DataObject{}
	do.ItemSubjectRef = attrString(start, "itemSubjectRef")
	if err := s.inner.deserialize(start, &do.BaseElement, nil); err != nil {
		return nil, err
	}

	return do, nil
}

type dataObjectReferenceSerde struct{ inner elementSerde }

func (s *dataObjectReferenceSerde) Serialize(element any, start *etree.Element) error {
	ref, ok := element.(*DataObjectReference)
	if !ok {
		return fmt.Errorf("%v is not DataObjectReference", element)
	}
	start.Space = "bpmn"
	start.Tag = "dataObjectReference"
	s.inner.serialize(&ref.BaseElement, start)
	if ref.DataObjectRef != "" {
		start.CreateAttr("dataObjectRef", ref.DataObjectRef)
	}

	return nil
}

func (s *dataObjectReferenceSerde) Deserialize(start *etree.Element) (any, error) {
	ref := &DataObjectReference{}
	ref.DataObjectRef = attrString(start, "dataObjectRef")
	if err := s.inner.deserialize(start, &ref.BaseElement, nil); err != nil {
		return nil, err
	}

	return ref, nil
}

type textAnnotationSerde struct{ inner elementSerde }

func (s *textAnnotationSerde) Serialize(element any, start *etree.Element) error {
	text, ok := element.(*TextAnnotation)
	if !ok {
		return fmt.Errorf("%v is not TextAnnotation", element)
	}
	start.Space = "bpmn"
	start.Tag = "textAnnotation"
	s.inner.serialize(&text.BaseElement, start)
	if text.Text != "" {
		start.CreateElement("bpmn:text").CreateCData(text.Text)
	}

	return nil
}

func (s *textAnnotationSerde) Deserialize(start *etree.Element) (any, error) {
	text := &TextAnnotation{}
	ranger := func(child *etree.Element) error {
		if child.Tag == "text" {
			text.Text = child.Text()
		}
		return nil
	}
	if err := s.inner.deserialize(start, &text.BaseElement, ranger); err != nil {
		return nil, err
	}

	return text, nil
}

type groupSerde struct{ inner elementSerde }

func (s *groupSerde) Serialize(element any, start *etree.Element) error {
	group, ok := element.(*Group)
	if !ok {
		return fmt.Errorf("%v is not Group", element)
	}
	start.Space = "bpmn"
	start.Tag = "group"
	s.inner.serialize(&group.BaseElement, start)
	if group.CategoryValueRef != "" {
		start.CreateAttr("categoryValueRef", group.CategoryValueRef)
	}

	return nil
}

func (s *groupSerde) Deserialize(start *etree.Element) (any, error) {
	group := &Group{}
	group.CategoryValueRef = attrString(start, "categoryValueRef")
	if err := s.inner.deserialize(start, &group.BaseElement, nil); err != nil {
		return nil, err
	}

	return group, nil
}

func writeExtension(ext *ExtensionElements, start *etree.Element) {
	for _, item := range ext.MetaData {
		child := start.CreateElement("drools:metaData")
		child.CreateAttr("name", item.Name)
		child.CreateElement("drools:metaValue").CreateCData(item.Value)
	}
	for _, script := range ext.OnEntry {
		writeScript(script, start.CreateElement("drools:onEntry-script"))
	}
	for _, script := range ext.OnExit {
		writeScript(script, start.CreateElement("drools:onExit-script"))
	}
}

func writeScript(script *Script, start *etree.Element) {
	if script.Format != "" {
		start.CreateAttr("scriptFormat", script.Format)
	}
	start.CreateElement("drools:script").CreateCData(script.Body)
}

func readExtension(start *etree.Element) *ExtensionElements {
	ext := &ExtensionElements{}
	for _, child := range start.ChildElements() {
		switch child.Tag {
		case "metaData":
			item := &MetaData{Name: attrString(child, "name")}
			if value := child.SelectElement("metaValue"); value != nil {
				item.Value = value.Text()
			}
			ext.MetaData = append(ext.MetaData, item)
		case "onEntry-script":
			ext.OnEntry = append(ext.OnEntry, readScript(child))
		case "onExit-script":
			ext.OnExit = append(ext.OnExit, readScript(child))
		}
	}
	return ext
}

func readScript(start *etree.Element) *Script {
	script := &Script{Format: attrString(start, "scriptFormat")}
	if body := start.SelectElement("script"); body != nil {
		script.Body = body.Text()
	}
	return script
}

func writeExpression(expr *FormalExpression, start *etree.Element, tag string) {
	if expr == nil {
		return
	}
	child := start.CreateElement(tag)
	child.CreateAttr("xsi:type", "bpmn:tFormalExpression")
	if expr.Language != "" {
		child.CreateAttr("language", expr.Language)
	}
	child.CreateCData(expr.Body)
}

func readExpression(start *etree.Element) *FormalExpression {
	return &FormalExpression{
		Language: attrString(start, "language"),
		Body:     start.Text(),
	}
}

func writeProperties(properties []*Property, start *etree.Element) {
	for _, property := range properties {
		child := start.CreateElement("bpmn:property")
		child.CreateAttr("id", property.Id)
		if property.ItemSubjectRef != "" {
			child.CreateAttr("itemSubjectRef", property.ItemSubjectRef)
		}
		child.CreateAttr("name", property.Name)
	}
}

func writeIOSpecification(spec *IOSpecification, start *etree.Element) {
	if spec.Id != "" {
		start.CreateAttr("id", spec.Id)
	}
	writeDataIO(spec.DataInputs, start, "bpmn:dataInput")
	writeDataIO(spec.DataOutputs, start, "bpmn:dataOutput")

	inputs := start.CreateElement("bpmn:inputSet")
	for _, item := range spec.DataInputs {
		inputs.CreateElement("bpmn:dataInputRefs").SetText(item.Id)
	}
	outputs := start.CreateElement("bpmn:outputSet")
	for _, item := range spec.DataOutputs {
		outputs.CreateElement("bpmn:dataOutputRefs").SetText(item.Id)
	}
}

func readIOSpecification(start *etree.Element) *IOSpecification {
	spec := &IOSpecification{Id: attrString(start, "id")}
	for _, child := range start.ChildElements() {
		switch child.Tag {
		case "dataInput":
			spec.DataInputs = append(spec.DataInputs, readDataIO(child))
		case "dataOutput":
			spec.DataOutputs = append(spec.DataOutputs, readDataIO(child))
		}
	}
	return spec
}

func writeDataIO(items []*DataIO, start *etree.Element, tag string) {
	for _, item := range items {
		child := start.CreateElement(tag)
		child.CreateAttr("id", item.Id)
		if item.DType != "" {
			child.CreateAttr("drools:dtype", item.DType)
		}
		if item.ItemSubjectRef != "" {
			child.CreateAttr("itemSubjectRef", item.ItemSubjectRef)
		}
		child.CreateAttr("name", item.Name)
	}
}

func readDataIO(start *etree.Element) *DataIO {
	return &DataIO{
		Id:             attrString(start, "id"),
		Name:           attrString(start, "name"),
		DType:          attrString(start, "dtype"),
		ItemSubjectRef: attrString(start, "itemSubjectRef"),
	}
}

func writeDataAssociation(association *DataAssociation, start *etree.Element) {
	if association.SourceRef != "" {
		start.CreateElement("bpmn:sourceRef").SetText(association.SourceRef)
	}
	if association.TargetRef != "" {
		start.CreateElement("bpmn:targetRef").SetText(association.TargetRef)
	}
	for _, assignment := range association.Assignments {
		child := start.CreateElement("bpmn:assignment")
		from := child.CreateElement("bpmn:from")
		from.CreateAttr("xsi:type", "bpmn:tFormalExpression")
		from.CreateCData(assignment.From)
		to := child.CreateElement("bpmn:to")
		to.CreateAttr("xsi:type", "bpmn:tFormalExpression")
		to.CreateCData(assignment.To)
	}
}

func readDataAssociation(start *etree.Element) *DataAssociation {
	association := &DataAssociation{}
	for _, child := range start.ChildElements() {
		switch child.Tag {
		case "sourceRef":
			association.SourceRef = strings.TrimSpace(child.Text())
		case "targetRef":
			association.TargetRef = strings.TrimSpace(child.Text())
		case "assignment":
			assignment := &Assignment{}
			if from := child.SelectElement("from"); from != nil {
				assignment.From = from.Text()
			}
			if to := child.SelectElement("to"); to != nil {
				assignment.To = to.Text()
			}
			association.Assignments = append(association.Assignments, assignment)
		}
	}
	return association
}

func writeEventDefinitions(definitions []EventDefinition, start *etree.Element) error {
	for _, def := range definitions {
		var child *etree.Element
		switch tt := def.(type) {
		case *MessageEventDefinition:
			child = start.CreateElement("bpmn:messageEventDefinition")
			if tt.MessageRef != "" {
				child.CreateAttr("messageRef", tt.MessageRef)
			}
		case *SignalEventDefinition:
			child = start.CreateElement("bpmn:signalEventDefinition")
			if tt.SignalRef != "" {
				child.CreateAttr("signalRef", tt.SignalRef)
			}
		case *TimerEventDefinition:
			child = start.CreateElement("bpmn:timerEventDefinition")
			writeExpression(tt.TimeDuration, child, "bpmn:timeDuration")
			writeExpression(tt.TimeDate, child, "bpmn:timeDate")
			writeExpression(tt.TimeCycle, child, "bpmn:timeCycle")
		case *TerminateEventDefinition:
			child = start.CreateElement("bpmn:terminateEventDefinition")
		case *UnknownEventDefinition:
			child = start.CreateElement("bpmn:" + tt.Tag)
		default:
			return fmt.Errorf("%s not support to serialize", getKind(def))
		}
		if def.GetID() != "" {
			child.CreateAttr("id", def.GetID())
		}
	}
	return nil
}

// readEventDefinition returns nil for children that are not event
// definitions. Definitions without a model are kept as
// UnknownEventDefinition.
func readEventDefinition(start *etree.Element) EventDefinition {
	id := attrString(start, "id")
	switch start.Tag {
	case "messageEventDefinition":
		return &MessageEventDefinition{Id: id, MessageRef: attrString(start, "messageRef")}
	case "signalEventDefinition":
		return &SignalEventDefinition{Id: id, SignalRef: attrString(start, "signalRef")}
	case "timerEventDefinition":
		def := &TimerEventDefinition{Id: id}
		for _, child := range start.ChildElements() {
			switch child.Tag {
			case "timeDuration":
				def.TimeDuration = readExpression(child)
			case "timeDate":
				def.TimeDate = readExpression(child)
			case "timeCycle":
				def.TimeCycle = readExpression(child)
			}
		}
		return def
	case "terminateEventDefinition":
		return &TerminateEventDefinition{Id: id}
	}
	if strings.HasSuffix(start.Tag, "EventDefinition") {
		return &UnknownEventDefinition{Id: id, Tag: start.Tag}
	}
	return nil
}
