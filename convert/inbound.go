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
	"strconv"
	"strings"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/match"
	"github.com/vine-io/bpmnconv/result"
)

// data inputs of a user task holding its human task settings
const (
	inputTaskName    = "TaskName"
	inputSkippable   = "Skippable"
	inputGroupId     = "GroupId"
	inputComment     = "Comment"
	inputDescription = "Description"
	inputPriority    = "Priority"
	inputCreatedBy   = "CreatedBy"
)

var userTaskInputs = []string{
	inputTaskName,
	inputSkippable,
	inputGroupId,
	inputComment,
	inputDescription,
	inputPriority,
	inputCreatedBy,
}

func (c *Context) inboundRules() *match.Match[bpmn.Element, graph.Node] {
	m := match.Of[bpmn.Element, graph.Node]()

	match.WhenResult(m, c.startEvent)
	match.WhenResult(m, c.endEvent)
	match.WhenResult(m, c.catchEvent)
	match.WhenResult(m, c.throwEvent)

	match.WhenResult(m, c.noneTask)
	match.WhenResult(m, c.userTask)
	match.WhenResult(m, c.scriptTask)
	match.WhenResult(m, c.businessRuleTask)
	match.Missing[*bpmn.ServiceTask](m)
	match.WhenResult(m, c.callActivity)

	match.WhenResult(m, c.exclusiveGateway)
	match.WhenResult(m, c.parallelGateway)
	match.WhenResult(m, c.inclusiveGateway)
	match.WhenResult(m, c.eventBasedGateway)
	match.Missing[*bpmn.ComplexGateway](m)

	// processes and sub-processes
	match.WhenResult(m, c.toContainerNode)
	match.WhenResult(m, c.lane)

	match.WhenResult(m, c.dataObject)
	match.WhenResult(m, c.textAnnotation)
	match.Ignore[*bpmn.DataObject](m)
	match.Ignore[*bpmn.Group](m)
	match.WhenResult(m, func(e *bpmn.Unknown) result.Result[graph.Node] {
		return result.Fail[graph.Node]("Not yet implemented: " + e.Tag)
	})

	return m
}

// create allocates a node through the factory and returns its definition.
func create[T graph.Definition](c *Context, id string, kind graph.Kind) (graph.Node, T, result.Result[graph.Node]) {
	var def T
	n := c.factory.NewNode(id, kind)
	if n == nil {
		return nil, def, result.Failf[graph.Node]("can't create %s node %s", kind, id)
	}
	def, ok := n.Definition().(T)
	if !ok {
		return nil, def, result.Failf[graph.Node]("node %s: factory returned a %s definition for %s", id, n.Kind(), kind)
	}
	return n, def, result.Of(n)
}

func (c *Context) startEvent(e *bpmn.StartEvent) result.Result[graph.Node] {
	if e.EventDefinition() == nil {
		n, def, r := create[*graph.StartNoneEvent](c, e.Id, graph.KindStartNoneEvent)
		if !r.IsSuccess() {
			return r
		}
		def.IsInterrupting = e.IsInterrupting
		return c.readFlowNode(n, &e.FlowNodeBase)
	}

	m := match.Of[bpmn.EventDefinition, graph.Node]()
	match.WhenResult(m, func(d *bpmn.MessageEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.StartMessageEvent](c, e.Id, graph.KindStartMessageEvent)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet = graph.InterruptingMessageExecutionSet{
			IsInterrupting: e.IsInterrupting,
			MessageRef:     c.resolver.MessageName(d.MessageRef),
		}
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.SignalEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.StartSignalEvent](c, e.Id, graph.KindStartSignalEvent)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet = graph.InterruptingSignalExecutionSet{
			IsInterrupting: e.IsInterrupting,
			SignalRef:      c.resolver.SignalName(d.SignalRef),
		}
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.TimerEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.StartTimerEvent](c, e.Id, graph.KindStartTimerEvent)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet = graph.InterruptingTimerExecutionSet{IsInterrupting: e.IsInterrupting, Timer: readTimer(d)}
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, unknownDefinition)
	return m.Apply(e.EventDefinition())
}

func (c *Context) endEvent(e *bpmn.EndEvent) result.Result[graph.Node] {
	if e.EventDefinition() == nil {
		n, _, r := create[*graph.EndNoneEvent](c, e.Id, graph.KindEndNoneEvent)
		if !r.IsSuccess() {
			return r
		}
		return c.readFlowNode(n, &e.FlowNodeBase)
	}

	m := match.Of[bpmn.EventDefinition, graph.Node]()
	match.WhenResult(m, func(d *bpmn.TerminateEventDefinition) result.Result[graph.Node] {
		n, _, r := create[*graph.EndTerminateEvent](c, e.Id, graph.KindEndTerminateEvent)
		if !r.IsSuccess() {
			return r
		}
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.MessageEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.EndMessageEvent](c, e.Id, graph.KindEndMessageEvent)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.MessageRef = c.resolver.MessageName(d.MessageRef)
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.SignalEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.EndSignalEvent](c, e.Id, graph.KindEndSignalEvent)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.SignalRef = c.resolver.SignalName(d.SignalRef)
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, unknownDefinition)
	return m.Apply(e.EventDefinition())
}

func (c *Context) catchEvent(e *bpmn.IntermediateCatchEvent) result.Result[graph.Node] {
	m := match.Of[bpmn.EventDefinition, graph.Node]()
	match.WhenResult(m, func(d *bpmn.TimerEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.IntermediateTimerEvent](c, e.Id, graph.KindIntermediateTimerEvent)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.Timer = readTimer(d)
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.MessageEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.IntermediateMessageEventCatching](c, e.Id, graph.KindIntermediateMessageEventCatching)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.MessageRef = c.resolver.MessageName(d.MessageRef)
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.SignalEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.IntermediateSignalEventCatching](c, e.Id, graph.KindIntermediateSignalEventCatching)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.SignalRef = c.resolver.SignalName(d.SignalRef)
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, unknownDefinition)

	r := m.Apply(e.EventDefinition())
	if r.IsFailure() && e.EventDefinition() == nil {
		return result.Fail[graph.Node]("Not yet implemented: intermediate catch event without definition")
	}
	return r
}

func (c *Context) throwEvent(e *bpmn.IntermediateThrowEvent) result.Result[graph.Node] {
	m := match.Of[bpmn.EventDefinition, graph.Node]()
	match.WhenResult(m, func(d *bpmn.MessageEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.IntermediateMessageEventThrowing](c, e.Id, graph.KindIntermediateMessageEventThrowing)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.MessageRef = c.resolver.MessageName(d.MessageRef)
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, func(d *bpmn.SignalEventDefinition) result.Result[graph.Node] {
		n, def, r := create[*graph.IntermediateSignalEventThrowing](c, e.Id, graph.KindIntermediateSignalEventThrowing)
		if !r.IsSuccess() {
			return r
		}
		def.ExecutionSet.SignalRef = c.resolver.SignalName(d.SignalRef)
		def.AssignmentsInfo, _ = c.readAssignments(eventIO(&e.EventBase))
		return c.readFlowNode(n, &e.FlowNodeBase)
	})
	match.WhenResult(m, unknownDefinition)

	r := m.Apply(e.EventDefinition())
	if r.IsFailure() && e.EventDefinition() == nil {
		return result.Fail[graph.Node]("Not yet implemented: intermediate throw event without definition")
	}
	return r
}

func unknownDefinition(d *bpmn.UnknownEventDefinition) result.Result[graph.Node] {
	return result.Fail[graph.Node]("Not yet implemented: " + d.Tag)
}

func (c *Context) noneTask(e *bpmn.Task) result.Result[graph.Node] {
	n, _, r := create[*graph.NoneTask](c, e.Id, graph.KindNoneTask)
	if !r.IsSuccess() {
		return r
	}
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) userTask(e *bpmn.UserTask) result.Result[graph.Node] {
	n, def, r := create[*graph.UserTask](c, e.Id, graph.KindUserTask)
	if !r.IsSuccess() {
		return r
	}

	info, values := c.readAssignments(activityIO(&e.ActivityBase), userTaskInputs...)
	def.AssignmentsInfo = info

	set := &def.ExecutionSet
	set.TaskName = values[inputTaskName]
	set.Groups = values[inputGroupId]
	set.Subject = values[inputComment]
	set.Description = values[inputDescription]
	set.Priority = values[inputPriority]
	set.CreatedBy = values[inputCreatedBy]
	set.Skippable = true
	if v, ok := values[inputSkippable]; ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			set.Skippable = b
		}
	}
	set.Actors = strings.Join(e.PotentialOwners, ",")
	set.IsAsync = readMetaBool(&e.BaseElement, metaAsync)
	set.AdHocAutostart = readMetaBool(&e.BaseElement, metaAutoStart)
	set.OnEntryAction, set.OnExitAction = readActions(&e.BaseElement)

	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) scriptTask(e *bpmn.ScriptTask) result.Result[graph.Node] {
	n, def, r := create[*graph.ScriptTask](c, e.Id, graph.KindScriptTask)
	if !r.IsSuccess() {
		return r
	}

	language := defaultLanguage
	if e.ScriptFormat != "" {
		language = bpmn.LanguageName(e.ScriptFormat)
	}
	def.ExecutionSet = graph.ScriptTaskExecutionSet{
		Script:         graph.ScriptTypeValue{Language: language, Script: e.Script},
		IsAsync:        readMetaBool(&e.BaseElement, metaAsync),
		AdHocAutostart: readMetaBool(&e.BaseElement, metaAutoStart),
	}
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) businessRuleTask(e *bpmn.BusinessRuleTask) result.Result[graph.Node] {
	n, def, r := create[*graph.BusinessRuleTask](c, e.Id, graph.KindBusinessRuleTask)
	if !r.IsSuccess() {
		return r
	}

	def.AssignmentsInfo, _ = c.readAssignments(activityIO(&e.ActivityBase))
	set := &def.ExecutionSet
	set.RuleFlowGroup = e.RuleFlowGroup
	set.IsAsync = readMetaBool(&e.BaseElement, metaAsync)
	set.AdHocAutostart = readMetaBool(&e.BaseElement, metaAutoStart)
	set.OnEntryAction, set.OnExitAction = readActions(&e.BaseElement)
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) callActivity(e *bpmn.CallActivity) result.Result[graph.Node] {
	n, def, r := create[*graph.ReusableSubprocess](c, e.Id, graph.KindReusableSubprocess)
	if !r.IsSuccess() {
		return r
	}

	def.AssignmentsInfo, _ = c.readAssignments(activityIO(&e.ActivityBase))
	def.ExecutionSet = graph.ReusableSubprocessExecutionSet{
		CalledElement:     e.CalledElement,
		Independent:       e.Independent,
		WaitForCompletion: e.WaitForCompletion,
		IsAsync:           readMetaBool(&e.BaseElement, metaAsync),
	}
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) exclusiveGateway(e *bpmn.ExclusiveGateway) result.Result[graph.Node] {
	n, def, r := create[*graph.ExclusiveGateway](c, e.Id, graph.KindExclusiveGateway)
	if !r.IsSuccess() {
		return r
	}
	def.ExecutionSet.DefaultRoute = e.Default
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) inclusiveGateway(e *bpmn.InclusiveGateway) result.Result[graph.Node] {
	n, def, r := create[*graph.InclusiveGateway](c, e.Id, graph.KindInclusiveGateway)
	if !r.IsSuccess() {
		return r
	}
	def.ExecutionSet.DefaultRoute = e.Default
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) parallelGateway(e *bpmn.ParallelGateway) result.Result[graph.Node] {
	n, _, r := create[*graph.ParallelGateway](c, e.Id, graph.KindParallelGateway)
	if !r.IsSuccess() {
		return r
	}
	return c.readFlowNode(n, &e.FlowNodeBase)
}

func (c *Context) eventBasedGateway(e *bpmn.EventBasedGateway) result.Result[graph.Node] {
	n, _, r := create[*graph.EventBasedGateway](c, e.Id, graph.KindEventBasedGateway)
	if !r.IsSuccess() {
		return r
	}
	return c.readFlowNode(n, &e.FlowNodeBase)
}

// lane converts the lane itself. Its members are moved under it by the
// container.
func (c *Context) lane(e *bpmn.Lane) result.Result[graph.Node] {
	n, _, r := create[*graph.Lane](c, e.Id, graph.KindLane)
	if !r.IsSuccess() {
		return r
	}
	return c.readElement(n, &e.BaseElement, &e.ShapeInfo)
}

func (c *Context) dataObject(e *bpmn.DataObjectReference) result.Result[graph.Node] {
	n, def, r := create[*graph.DataObject](c, e.Id, graph.KindDataObject)
	if !r.IsSuccess() {
		return r
	}

	def.Type = c.resolver.DataObjectType(e.DataObjectRef)
	r = c.readElement(n, &e.BaseElement, &e.ShapeInfo)
	if do, ok := c.resolver.DataObject(e.DataObjectRef); ok && def.General.Name == "" {
		def.General.Name = do.Name
	}
	return r
}

func (c *Context) textAnnotation(e *bpmn.TextAnnotation) result.Result[graph.Node] {
	n, def, r := create[*graph.TextAnnotation](c, e.Id, graph.KindTextAnnotation)
	if !r.IsSuccess() {
		return r
	}
	r = c.readElement(n, &e.BaseElement, &e.ShapeInfo)
	def.General.Name = e.Text
	return r
}

func (c *Context) inboundEdgeRules() *match.Match[bpmn.Element, graph.Edge] {
	m := match.Of[bpmn.Element, graph.Edge]()
	match.WhenResult(m, c.sequenceFlow)
	match.WhenResult(m, c.association)
	return m
}

func createEdge[T graph.Definition](c *Context, id string, kind graph.Kind) (graph.Edge, T, result.Result[graph.Edge]) {
	var def T
	e := c.factory.NewEdge(id, kind)
	if e == nil {
		return nil, def, result.Failf[graph.Edge]("can't create %s edge %s", kind, id)
	}
	def, ok := e.Definition().(T)
	if !ok {
		return nil, def, result.Failf[graph.Edge]("edge %s: factory returned a %s definition for %s", id, e.Kind(), kind)
	}
	return e, def, result.Of(e)
}

func (c *Context) sequenceFlow(f *bpmn.SequenceFlow) result.Result[graph.Edge] {
	e, def, r := createEdge[*graph.SequenceFlow](c, f.Id, graph.KindSequenceFlow)
	if !r.IsSuccess() {
		return r
	}
	def.General = readGeneral(&f.BaseElement)
	def.ExecutionSet = graph.SequenceFlowExecutionSet{
		Priority:  f.Priority,
		Condition: readExpression(f.Condition, defaultLanguage),
	}
	e.Connect(f.SourceRef, f.TargetRef)
	return r
}

func (c *Context) association(a *bpmn.Association) result.Result[graph.Edge] {
	e, def, r := createEdge[*graph.Association](c, a.Id, graph.KindAssociation)
	if !r.IsSuccess() {
		return r
	}
	def.General = readGeneral(&a.BaseElement)
	def.Direction = readDirection(a.Direction)
	e.Connect(a.SourceRef, a.TargetRef)
	return r
}
