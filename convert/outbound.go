// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package convert

import (
	"strings"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/match"
	"github.com/vine-io/bpmnconv/result"
)

func (c *Context) outboundRules() *match.Match[graph.Node, bpmn.Element] {
	m := match.Of[graph.Node, bpmn.Element]()

	match.When(m, c.writeStartNoneEvent)
	match.When(m, c.writeStartMessageEvent)
	match.When(m, c.writeStartSignalEvent)
	match.When(m, c.writeStartTimerEvent)
	match.When(m, c.writeEndNoneEvent)
	match.When(m, c.writeEndTerminateEvent)
	match.When(m, c.writeEndMessageEvent)
	match.When(m, c.writeEndSignalEvent)
	match.When(m, c.writeIntermediateTimerEvent)
	match.When(m, c.writeIntermediateMessageEventCatching)
	match.When(m, c.writeIntermediateSignalEventCatching)
	match.When(m, c.writeIntermediateMessageEventThrowing)
	match.When(m, c.writeIntermediateSignalEventThrowing)

	match.When(m, c.writeNoneTask)
	match.When(m, c.writeUserTask)
	match.When(m, c.writeScriptTask)
	match.When(m, c.writeBusinessRuleTask)
	match.When(m, c.writeReusableSubprocess)

	match.When(m, c.writeExclusiveGateway)
	match.When(m, c.writeParallelGateway)
	match.When(m, c.writeInclusiveGateway)
	match.When(m, c.writeEventBasedGateway)

	whenContainer[*graph.BPMNDiagram](c, m)
	whenContainer[*graph.EmbeddedSubprocess](c, m)
	whenContainer[*graph.EventSubprocess](c, m)
	whenContainer[*graph.AdHocSubprocess](c, m)
	match.When(m, c.writeLane)

	match.When(m, c.writeDataObject)
	match.When(m, c.writeTextAnnotation)

	return m
}

func whenContainer[T graph.Definition](c *Context, m *match.Match[graph.Node, bpmn.Element]) {
	match.WhenResult(m, func(n *graph.TypedNode[T]) result.Result[bpmn.Element] {
		return c.toContainerElement(n)
	})
}

func (c *Context) writeStartNoneEvent(n *graph.TypedNode[*graph.StartNoneEvent]) bpmn.Element {
	e := &bpmn.StartEvent{IsInterrupting: n.Content.IsInterrupting}
	writeFlowNode(n, &e.FlowNodeBase)
	return e
}

func (c *Context) writeStartMessageEvent(n *graph.TypedNode[*graph.StartMessageEvent]) bpmn.Element {
	set := n.Content.ExecutionSet
	e := &bpmn.StartEvent{IsInterrupting: set.IsInterrupting}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.MessageEventDefinition{MessageRef: c.messageRef(set.MessageRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeStartSignalEvent(n *graph.TypedNode[*graph.StartSignalEvent]) bpmn.Element {
	set := n.Content.ExecutionSet
	e := &bpmn.StartEvent{IsInterrupting: set.IsInterrupting}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.SignalEventDefinition{SignalRef: c.signalRef(set.SignalRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeStartTimerEvent(n *graph.TypedNode[*graph.StartTimerEvent]) bpmn.Element {
	set := n.Content.ExecutionSet
	e := &bpmn.StartEvent{IsInterrupting: set.IsInterrupting}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{writeTimer(set.Timer)}
	return e
}

func (c *Context) writeEndNoneEvent(n *graph.TypedNode[*graph.EndNoneEvent]) bpmn.Element {
	e := &bpmn.EndEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	return e
}

func (c *Context) writeEndTerminateEvent(n *graph.TypedNode[*graph.EndTerminateEvent]) bpmn.Element {
	e := &bpmn.EndEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.TerminateEventDefinition{}}
	return e
}

func (c *Context) writeEndMessageEvent(n *graph.TypedNode[*graph.EndMessageEvent]) bpmn.Element {
	e := &bpmn.EndEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.MessageEventDefinition{MessageRef: c.messageRef(n.Content.ExecutionSet.MessageRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeEndSignalEvent(n *graph.TypedNode[*graph.EndSignalEvent]) bpmn.Element {
	e := &bpmn.EndEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.SignalEventDefinition{SignalRef: c.signalRef(n.Content.ExecutionSet.SignalRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeIntermediateTimerEvent(n *graph.TypedNode[*graph.IntermediateTimerEvent]) bpmn.Element {
	e := &bpmn.IntermediateCatchEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{writeTimer(n.Content.ExecutionSet.Timer)}
	return e
}

func (c *Context) writeIntermediateMessageEventCatching(n *graph.TypedNode[*graph.IntermediateMessageEventCatching]) bpmn.Element {
	e := &bpmn.IntermediateCatchEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.MessageEventDefinition{MessageRef: c.messageRef(n.Content.ExecutionSet.MessageRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeIntermediateSignalEventCatching(n *graph.TypedNode[*graph.IntermediateSignalEventCatching]) bpmn.Element {
	e := &bpmn.IntermediateCatchEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.SignalEventDefinition{SignalRef: c.signalRef(n.Content.ExecutionSet.SignalRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeIntermediateMessageEventThrowing(n *graph.TypedNode[*graph.IntermediateMessageEventThrowing]) bpmn.Element {
	e := &bpmn.IntermediateThrowEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.MessageEventDefinition{MessageRef: c.messageRef(n.Content.ExecutionSet.MessageRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeIntermediateSignalEventThrowing(n *graph.TypedNode[*graph.IntermediateSignalEventThrowing]) bpmn.Element {
	e := &bpmn.IntermediateThrowEvent{}
	writeFlowNode(n, &e.FlowNodeBase)
	e.Definitions = []bpmn.EventDefinition{&bpmn.SignalEventDefinition{SignalRef: c.signalRef(n.Content.ExecutionSet.SignalRef)}}
	setEventIO(&e.EventBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	return e
}

func (c *Context) writeNoneTask(n *graph.TypedNode[*graph.NoneTask]) bpmn.Element {
	t := &bpmn.Task{}
	writeFlowNode(n, &t.FlowNodeBase)
	return t
}

func (c *Context) writeUserTask(n *graph.TypedNode[*graph.UserTask]) bpmn.Element {
	set := n.Content.ExecutionSet
	t := &bpmn.UserTask{PotentialOwners: splitList(set.Actors)}
	writeFlowNode(n, &t.FlowNodeBase)

	io := c.writeAssignments(n.ID(), n.Content.AssignmentsInfo)
	reserved := [][2]string{
		{inputTaskName, set.TaskName},
		{inputGroupId, set.Groups},
		{inputComment, set.Subject},
		{inputDescription, set.Description},
		{inputPriority, set.Priority},
		{inputCreatedBy, set.CreatedBy},
	}
	if !set.Skippable {
		reserved = append(reserved, [2]string{inputSkippable, "false"})
	}
	for _, item := range reserved {
		if item[1] == "" {
			continue
		}
		id := inputID(n.ID(), item[0])
		io.inputs = append(io.inputs, &bpmn.DataIO{Id: id, Name: item[0], DType: defaultDataType})
		io.constant(id, item[1])
	}
	setActivityIO(&t.ActivityBase, io)

	writeMetaBool(&t.BaseElement, metaAsync, set.IsAsync)
	writeMetaBool(&t.BaseElement, metaAutoStart, set.AdHocAutostart)
	writeActions(&t.BaseElement, set.OnEntryAction, set.OnExitAction)
	return t
}

func (c *Context) writeScriptTask(n *graph.TypedNode[*graph.ScriptTask]) bpmn.Element {
	set := n.Content.ExecutionSet
	t := &bpmn.ScriptTask{Script: set.Script.Script}
	if set.Script.Language != "" {
		t.ScriptFormat = bpmn.LanguageURI(set.Script.Language)
	}
	writeFlowNode(n, &t.FlowNodeBase)
	writeMetaBool(&t.BaseElement, metaAsync, set.IsAsync)
	writeMetaBool(&t.BaseElement, metaAutoStart, set.AdHocAutostart)
	return t
}

func (c *Context) writeBusinessRuleTask(n *graph.TypedNode[*graph.BusinessRuleTask]) bpmn.Element {
	set := n.Content.ExecutionSet
	t := &bpmn.BusinessRuleTask{RuleFlowGroup: set.RuleFlowGroup}
	writeFlowNode(n, &t.FlowNodeBase)
	setActivityIO(&t.ActivityBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	writeMetaBool(&t.BaseElement, metaAsync, set.IsAsync)
	writeMetaBool(&t.BaseElement, metaAutoStart, set.AdHocAutostart)
	writeActions(&t.BaseElement, set.OnEntryAction, set.OnExitAction)
	return t
}

// waitForCompletion is the drools:waitForCompletion value written for a
// call activity. Documents keep it equal to the independent flag; the
// WaitForCompletion field of the graph is read but never written.
func waitForCompletion(set graph.ReusableSubprocessExecutionSet) bool {
	return set.Independent
}

func (c *Context) writeReusableSubprocess(n *graph.TypedNode[*graph.ReusableSubprocess]) bpmn.Element {
	set := n.Content.ExecutionSet
	t := &bpmn.CallActivity{
		CalledElement:     set.CalledElement,
		Independent:       set.Independent,
		WaitForCompletion: waitForCompletion(set),
	}
	writeFlowNode(n, &t.FlowNodeBase)
	setActivityIO(&t.ActivityBase, c.writeAssignments(n.ID(), n.Content.AssignmentsInfo))
	writeMetaBool(&t.BaseElement, metaAsync, set.IsAsync)
	return t
}

func (c *Context) writeExclusiveGateway(n *graph.TypedNode[*graph.ExclusiveGateway]) bpmn.Element {
	g := &bpmn.ExclusiveGateway{Default: n.Content.ExecutionSet.DefaultRoute}
	writeFlowNode(n, &g.FlowNodeBase)
	return g
}

func (c *Context) writeParallelGateway(n *graph.TypedNode[*graph.ParallelGateway]) bpmn.Element {
	g := &bpmn.ParallelGateway{}
	writeFlowNode(n, &g.FlowNodeBase)
	return g
}

func (c *Context) writeInclusiveGateway(n *graph.TypedNode[*graph.InclusiveGateway]) bpmn.Element {
	g := &bpmn.InclusiveGateway{Default: n.Content.ExecutionSet.DefaultRoute}
	writeFlowNode(n, &g.FlowNodeBase)
	return g
}

func (c *Context) writeEventBasedGateway(n *graph.TypedNode[*graph.EventBasedGateway]) bpmn.Element {
	g := &bpmn.EventBasedGateway{}
	writeFlowNode(n, &g.FlowNodeBase)
	return g
}

func (c *Context) writeLane(n *graph.TypedNode[*graph.Lane]) bpmn.Element {
	lane := &bpmn.Lane{}
	writeElement(n, &lane.BaseElement, &lane.ShapeInfo)
	return lane
}

// writeDataObject writes the reference drawn on the diagram and declares
// the data object behind it.
func (c *Context) writeDataObject(n *graph.TypedNode[*graph.DataObject]) bpmn.Element {
	ref := &bpmn.DataObjectReference{DataObjectRef: "DataObject_" + n.ID()}
	writeElement(n, &ref.BaseElement, &ref.ShapeInfo)

	do := &bpmn.DataObject{ItemSubjectRef: c.itemRef("_"+ref.DataObjectRef+"Item", n.Content.Type)}
	do.Id = ref.DataObjectRef
	do.Name = n.Content.General.Name
	c.declare(do)
	return ref
}

func (c *Context) writeTextAnnotation(n *graph.TypedNode[*graph.TextAnnotation]) bpmn.Element {
	text := &bpmn.TextAnnotation{Text: n.Content.General.Name}
	text.Id = n.ID()
	text.Documentation = n.Content.General.Documentation
	writeShape(n, &text.ShapeInfo)
	return text
}

func (c *Context) outboundEdgeRules() *match.Match[graph.Edge, bpmn.Element] {
	m := match.Of[graph.Edge, bpmn.Element]()
	match.When(m, c.writeSequenceFlow)
	match.When(m, c.writeAssociation)
	return m
}

func (c *Context) writeSequenceFlow(e *graph.TypedEdge[*graph.SequenceFlow]) bpmn.Element {
	set := e.Content.ExecutionSet
	flow := &bpmn.SequenceFlow{
		SourceRef: e.SourceID(),
		TargetRef: e.TargetID(),
		Condition: writeExpression(set.Condition),
		Priority:  set.Priority,
	}
	flow.Id = e.ID()
	writeGeneral(&e.Content.General, &flow.BaseElement)
	return flow
}

func (c *Context) writeAssociation(e *graph.TypedEdge[*graph.Association]) bpmn.Element {
	a := &bpmn.Association{
		SourceRef: e.SourceID(),
		TargetRef: e.TargetID(),
		Direction: writeDirection(e.Content.Direction),
	}
	a.Id = e.ID()
	writeGeneral(&e.Content.General, &a.BaseElement)
	return a
}

func splitList(text string) []string {
	var items []string
	for _, item := range strings.Split(text, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
