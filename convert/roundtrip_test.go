package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/convert"
	"github.com/vine-io/bpmnconv/graph"
)

func buildOrderGraph(t *testing.T) graph.Node {
	t.Helper()

	b := graph.NewBuilder("order").Id("Process_order").
		SetVariable("amount", "Integer").
		SetVariable("approved", "Boolean")
	b.Start()
	b.Add(graph.KindUserTask, "approve")
	approve := b.Current()
	b.Add(graph.KindExclusiveGateway, "")
	gw := b.Current()
	b.Add(graph.KindScriptTask, "notify")
	notify := b.Current()
	b.End()
	end := b.Current()
	b.Seek(gw).Add(graph.KindBusinessRuleTask, "audit")
	audit := b.Current()
	b.Link(audit, end, "")

	root, err := b.Out()
	require.NoError(t, err)

	n, _ := graph.Find(root, approve)
	task := n.(*graph.TypedNode[*graph.UserTask]).Content
	task.ExecutionSet.TaskName = "Approve"
	task.ExecutionSet.Actors = "john,mary"
	task.ExecutionSet.Groups = "managers"
	task.ExecutionSet.Skippable = false
	task.ExecutionSet.IsAsync = true
	task.ExecutionSet.OnEntryAction = []graph.ScriptTypeValue{{Language: "java", Script: `System.out.println("in");`}}
	task.AssignmentsInfo = graph.AssignmentsInfo{
		Inputs:  []graph.Variable{{Name: "amount", Type: "Integer"}},
		Outputs: []graph.Variable{{Name: "approved", Type: "Boolean"}},
		Assignments: []graph.Assignment{
			{Direction: graph.AssignmentIn, ProcessVar: "amount", DataVar: "amount"},
			{Direction: graph.AssignmentOut, DataVar: "approved", ProcessVar: "approved"},
		},
	}
	task.Style.Background.BgColor = "#fafad2"

	n, _ = graph.Find(root, notify)
	n.(*graph.TypedNode[*graph.ScriptTask]).Content.ExecutionSet.Script.Script = `kcontext.setVariable("done", true);`

	n, _ = graph.Find(root, audit)
	n.(*graph.TypedNode[*graph.BusinessRuleTask]).Content.ExecutionSet.RuleFlowGroup = "audit-rules"

	for _, e := range root.Edges() {
		if e.SourceID() == gw && e.TargetID() == audit {
			e.Definition().(*graph.SequenceFlow).ExecutionSet.Condition.Script = "return amount > 100;"
		}
	}

	n, _ = graph.Find(root, gw)
	for _, e := range root.Edges() {
		if e.SourceID() == gw && e.TargetID() == notify {
			n.(*graph.TypedNode[*graph.ExclusiveGateway]).Content.ExecutionSet.DefaultRoute = e.ID()
		}
	}
	return root
}

func TestRoundTrip(t *testing.T) {
	engine := convert.NewEngine()
	root := buildOrderGraph(t)

	d := engine.ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	defs := d.Value()
	require.Len(t, defs.Processes, 1)
	assert.Equal(t, "Process_order", defs.Processes[0].Id)
	assert.Equal(t, bpmn.DefaultExporter, defs.Exporter)

	r := engine.ToGraph(defs)
	require.True(t, r.IsSuccess(), r.Reason())
	assertSameGraph(t, root, r.Value())
}

func TestRoundTripThroughXML(t *testing.T) {
	engine := convert.NewEngine(convert.WithExporter("tests", "0.1"))
	root := buildOrderGraph(t)

	d := engine.ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	data, err := d.Value().WriteToBytes()
	require.NoError(t, err)
	defs, err := bpmn.FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "tests", defs.Exporter)

	r := engine.ToGraph(defs)
	require.True(t, r.IsSuccess(), r.Reason())
	assertSameGraph(t, root, r.Value())
}

func TestUserTaskDocument(t *testing.T) {
	root := buildOrderGraph(t)
	d := convert.NewEngine().ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	var task *bpmn.UserTask
	for _, e := range d.Value().Processes[0].FlowElements {
		if ut, ok := e.(*bpmn.UserTask); ok {
			task = ut
		}
	}
	require.NotNil(t, task)

	assert.Equal(t, []string{"john", "mary"}, task.PotentialOwners)
	v, ok := task.Extension.Meta("customAsync")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	names := make(map[string]bool)
	for _, in := range task.IOSpecification.DataInputs {
		names[in.Name] = true
	}
	assert.Equal(t, map[string]bool{"amount": true, "TaskName": true, "GroupId": true, "Skippable": true}, names)

	constants := make(map[string]string)
	for _, a := range task.DataInputAssociations {
		if len(a.Assignments) > 0 {
			constants[a.TargetRef] = a.Assignments[0].From
		}
	}
	assert.Equal(t, "Approve", constants[task.Id+"_TaskNameInputX"])
	assert.Equal(t, "managers", constants[task.Id+"_GroupIdInputX"])
	assert.Equal(t, "false", constants[task.Id+"_SkippableInputX"])
}

func TestGatewayDirection(t *testing.T) {
	d := convert.NewEngine().ToDocument(buildOrderGraph(t))
	require.True(t, d.IsSuccess(), d.Reason())

	for _, e := range d.Value().Processes[0].FlowElements {
		if g, ok := e.(*bpmn.ExclusiveGateway); ok {
			assert.Equal(t, bpmn.GatewayDirectionDiverging, g.Direction)
			assert.NotEmpty(t, g.Default)
			return
		}
	}
	t.Fatal("no exclusive gateway written")
}

func TestAdHocSubprocess(t *testing.T) {
	root := graph.Wrap("Process_adhoc", graph.NewDefinition(graph.KindDiagram))

	def := graph.NewDefinition(graph.KindAdHocSubprocess).(*graph.AdHocSubprocess)
	def.ExecutionSet.CompletionCondition = graph.ScriptTypeValue{Language: "mvel", Script: "true"}
	def.ExecutionSet.Ordering = graph.AdHocOrderingSequential
	adhoc := graph.Wrap("adhoc", def)
	adhoc.SetBounds(&graph.Bounds{X: 100, Y: 100, Width: 350, Height: 200})

	task := graph.Wrap("task", graph.NewDefinition(graph.KindUserTask))
	task.SetBounds(&graph.Bounds{X: 50, Y: 60, Width: 100, Height: 80})
	end := graph.Wrap("end", graph.NewDefinition(graph.KindEndNoneEvent))
	end.SetBounds(&graph.Bounds{X: 250, Y: 82, Width: 36, Height: 36})
	adhoc.AddChild(task)
	adhoc.AddChild(end)
	adhoc.AddEdge(graph.WrapEdge("flow", graph.NewDefinition(graph.KindSequenceFlow), "task", "end"))
	root.AddChild(adhoc)

	engine := convert.NewEngine()
	d := engine.ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	p := d.Value().Processes[0]
	require.Len(t, p.FlowElements, 1)
	sub, ok := p.FlowElements[0].(*bpmn.AdHocSubProcess)
	require.True(t, ok)
	assert.Equal(t, bpmn.AdHocOrderingSequential, sub.Ordering)
	require.NotNil(t, sub.CompletionCondition)
	assert.Equal(t, "true", sub.CompletionCondition.Body)

	require.Len(t, sub.FlowElements, 3)
	_, ok = sub.FlowElements[0].(*bpmn.UserTask)
	assert.True(t, ok)
	_, ok = sub.FlowElements[1].(*bpmn.EndEvent)
	assert.True(t, ok)
	flow, ok := sub.FlowElements[2].(*bpmn.SequenceFlow)
	require.True(t, ok)
	assert.Equal(t, "task", flow.SourceRef)
	assert.Equal(t, "end", flow.TargetRef)

	r := engine.ToGraph(d.Value())
	require.True(t, r.IsSuccess(), r.Reason())
	require.Len(t, r.Value().Children(), 1)
	back, ok := r.Value().Children()[0].(*graph.TypedNode[*graph.AdHocSubprocess])
	require.True(t, ok)
	assert.Len(t, back.Children(), 2)
	assert.Len(t, back.Edges(), 1)
	assert.Equal(t, def.ExecutionSet, back.Content.ExecutionSet)
}

func TestAdHocRejectsUnknownOrdering(t *testing.T) {
	root := graph.Wrap("Process_adhoc", graph.NewDefinition(graph.KindDiagram))
	def := graph.NewDefinition(graph.KindAdHocSubprocess).(*graph.AdHocSubprocess)
	def.ExecutionSet.Ordering = "Random"
	root.AddChild(graph.Wrap("adhoc", def))

	r := convert.NewEngine().ToDocument(root)
	assert.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "adhoc")
}

func TestCallActivityWaitForCompletion(t *testing.T) {
	root := graph.Wrap("Process_call", graph.NewDefinition(graph.KindDiagram))
	def := graph.NewDefinition(graph.KindReusableSubprocess).(*graph.ReusableSubprocess)
	def.ExecutionSet.CalledElement = "billing"
	def.ExecutionSet.Independent = true
	def.ExecutionSet.WaitForCompletion = false
	root.AddChild(graph.Wrap("call", def))

	d := convert.NewEngine().ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	call, ok := d.Value().Processes[0].FlowElements[0].(*bpmn.CallActivity)
	require.True(t, ok)
	assert.Equal(t, "billing", call.CalledElement)
	assert.True(t, call.Independent)
	assert.True(t, call.WaitForCompletion)
}

func TestEventsDeclareMessagesAndSignals(t *testing.T) {
	root := graph.Wrap("Process_events", graph.NewDefinition(graph.KindDiagram))

	start := graph.NewDefinition(graph.KindStartMessageEvent).(*graph.StartMessageEvent)
	start.ExecutionSet.MessageRef = "order"
	start.ExecutionSet.IsInterrupting = false
	start.AssignmentsInfo = graph.AssignmentsInfo{
		Outputs:     []graph.Variable{{Name: "payload", Type: "String"}},
		Assignments: []graph.Assignment{{Direction: graph.AssignmentOut, DataVar: "payload", ProcessVar: "order"}},
	}
	root.AddChild(graph.Wrap("start", start))

	timer := graph.NewDefinition(graph.KindIntermediateTimerEvent).(*graph.IntermediateTimerEvent)
	timer.ExecutionSet.Timer = graph.TimerSettings{TimeDuration: "PT5M"}
	root.AddChild(graph.Wrap("wait", timer))

	end := graph.NewDefinition(graph.KindEndSignalEvent).(*graph.EndSignalEvent)
	end.ExecutionSet.SignalRef = "shipped"
	root.AddChild(graph.Wrap("end", end))

	root.AddEdge(graph.WrapEdge("f1", graph.NewDefinition(graph.KindSequenceFlow), "start", "wait"))
	root.AddEdge(graph.WrapEdge("f2", graph.NewDefinition(graph.KindSequenceFlow), "wait", "end"))

	engine := convert.NewEngine()
	d := engine.ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	defs := d.Value()
	require.Len(t, defs.Messages, 1)
	assert.Equal(t, "_orderMessage", defs.Messages[0].Id)
	assert.Equal(t, "order", defs.Messages[0].Name)
	require.Len(t, defs.Signals, 1)
	assert.Equal(t, "_shippedSignal", defs.Signals[0].Id)

	r := engine.ToGraph(defs)
	require.True(t, r.IsSuccess(), r.Reason())

	n, ok := graph.Find(r.Value(), "start")
	require.True(t, ok)
	back := n.(*graph.TypedNode[*graph.StartMessageEvent]).Content
	assert.Equal(t, "order", back.ExecutionSet.MessageRef)
	assert.False(t, back.ExecutionSet.IsInterrupting)
	assert.Equal(t, start.AssignmentsInfo, back.AssignmentsInfo)

	n, ok = graph.Find(r.Value(), "wait")
	require.True(t, ok)
	assert.Equal(t, "PT5M", n.(*graph.TypedNode[*graph.IntermediateTimerEvent]).Content.ExecutionSet.Timer.TimeDuration)

	n, ok = graph.Find(r.Value(), "end")
	require.True(t, ok)
	assert.Equal(t, "shipped", n.(*graph.TypedNode[*graph.EndSignalEvent]).Content.ExecutionSet.SignalRef)
}

func TestDataObjectAndAnnotation(t *testing.T) {
	root := graph.Wrap("Process_data", graph.NewDefinition(graph.KindDiagram))

	task := graph.Wrap("task", graph.NewDefinition(graph.KindNoneTask))
	task.SetBounds(&graph.Bounds{X: 100, Y: 100, Width: 100, Height: 80})
	root.AddChild(task)

	data := graph.NewDefinition(graph.KindDataObject).(*graph.DataObject)
	data.General.Name = "invoice"
	data.Type = "com.example.Invoice"
	doc := graph.Wrap("invoice", data)
	doc.SetBounds(&graph.Bounds{X: 300, Y: 100, Width: 35, Height: 45})
	root.AddChild(doc)

	note := graph.NewDefinition(graph.KindTextAnnotation).(*graph.TextAnnotation)
	note.General.Name = "check credit"
	text := graph.Wrap("note", note)
	text.SetBounds(&graph.Bounds{X: 100, Y: 250, Width: 100, Height: 30})
	root.AddChild(text)

	assoc := graph.NewDefinition(graph.KindAssociation).(*graph.Association)
	assoc.Direction = graph.AssociationOne
	root.AddEdge(graph.WrapEdge("link", assoc, "note", "task"))

	engine := convert.NewEngine()
	d := engine.ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())

	p := d.Value().Processes[0]
	ref, ok := p.FlowElements[1].(*bpmn.DataObjectReference)
	require.True(t, ok)
	assert.Equal(t, "DataObject_invoice", ref.DataObjectRef)
	_, ok = p.FlowElements[2].(*bpmn.DataObject)
	assert.True(t, ok)

	require.Len(t, p.Artifacts, 2)
	annotation, ok := p.Artifacts[0].(*bpmn.TextAnnotation)
	require.True(t, ok)
	assert.Equal(t, "check credit", annotation.Text)
	association, ok := p.Artifacts[1].(*bpmn.Association)
	require.True(t, ok)
	assert.Equal(t, bpmn.AssociationDirectionOne, association.Direction)

	r := engine.ToGraph(d.Value())
	require.True(t, r.IsSuccess(), r.Reason())
	assertSameGraph(t, root, withDiagramSize(root, r.Value()))
}

// withDiagramSize copies the fitted size of got onto want, whose root was
// never laid out.
func withDiagramSize(want, got graph.Node) graph.Node {
	want.SetBounds(got.Bounds())
	wantRect := want.Definition().(graph.Rectangular).Rectangle()
	*wantRect = *got.Definition().(graph.Rectangular).Rectangle()
	want.Definition().(*graph.BPMNDiagram).Diagram.ID = got.ID()
	return got
}

func TestLanes(t *testing.T) {
	lane := &bpmn.Lane{FlowNodeRefs: []string{"task"}}
	lane.Id = "sales"
	lane.Name = "Sales"
	lane.Bounds = &bpmn.Bounds{X: 100, Y: 100, Width: 600, Height: 200}

	p := newProcess("lanes", newTask("task", 150, 120), newTask("free", 150, 400))
	p.AddLane(lane)

	engine := convert.NewEngine()
	r := engine.ToGraph(newDefinitions(p))
	require.True(t, r.IsSuccess(), r.Reason())

	root := r.Value()
	require.Len(t, root.Children(), 2)
	assert.Equal(t, "free", root.Children()[0].ID())
	ln := root.Children()[1]
	assert.Equal(t, graph.KindLane, ln.Kind())
	assert.Equal(t, "Sales", ln.Definition().GeneralSet().Name)
	require.Len(t, ln.Children(), 1)
	assert.Equal(t, &graph.Bounds{X: 50, Y: 20, Width: 100, Height: 80}, ln.Children()[0].Bounds())

	d := engine.ToDocument(root)
	require.True(t, d.IsSuccess(), d.Reason())
	out := d.Value().Processes[0]
	lanes := out.Lanes()
	require.Len(t, lanes, 1)
	assert.Equal(t, []string{"task"}, lanes[0].FlowNodeRefs)
	e, ok := d.Value().Find("task")
	require.True(t, ok)
	assert.Equal(t, &bpmn.Bounds{X: 150, Y: 120, Width: 100, Height: 80}, e.(*bpmn.Task).Bounds)
}

func TestLaneWithUnknownMember(t *testing.T) {
	lane := &bpmn.Lane{FlowNodeRefs: []string{"ghost"}}
	lane.Id = "sales"

	p := newProcess("lanes", newTask("task", 150, 120))
	p.AddLane(lane)

	r := convert.NewEngine().ToGraph(newDefinitions(p))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "ghost")
}
