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

package convert_test

import (
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/convert"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/graph/mock_graph"
	"github.com/vine-io/bpmnconv/result"
)

func loadOrder(t *testing.T) *bpmn.Definitions {
	t.Helper()
	data, err := os.ReadFile("testdata/order.bpmn")
	require.NoError(t, err)
	defs, err := bpmn.FromBytes(data)
	require.NoError(t, err)
	return defs
}

func TestToGraphFromXML(t *testing.T) {
	r := convert.NewEngine().ToGraph(loadOrder(t))
	require.True(t, r.IsSuccess(), r.Reason())
	root := r.Value()

	diagram := root.Definition().(*graph.BPMNDiagram)
	assert.Equal(t, "order", root.ID())
	assert.Equal(t, "Order", diagram.General.Name)
	assert.Equal(t, "com.example", diagram.Diagram.PackageName)
	assert.True(t, diagram.Diagram.Executable)
	assert.Equal(t, graph.ProcessVariables{{Name: "customer", Type: "String"}}, diagram.Variables)

	// lanes come after the other children
	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "_adhoc", children[0].ID())
	assert.Equal(t, "_note", children[1].ID())
	assert.Equal(t, "_lane", children[2].ID())
	assert.Len(t, children[2].Children(), 2)

	n, ok := graph.Find(root, "_start")
	require.True(t, ok)
	assert.Equal(t, "_lane", n.Parent().ID())
	assert.Equal(t, &graph.Bounds{X: 40, Y: 93, Width: 56, Height: 56}, n.Bounds())
	start := n.(*graph.TypedNode[*graph.StartMessageEvent]).Content
	assert.Equal(t, "order", start.ExecutionSet.MessageRef)
	assert.True(t, start.ExecutionSet.IsInterrupting)
	assert.Equal(t, float64(28), start.Radius)

	n, ok = graph.Find(root, "_review")
	require.True(t, ok)
	task := n.(*graph.TypedNode[*graph.UserTask]).Content
	assert.Equal(t, "Review", task.General.Name)
	assert.Equal(t, "review", task.ExecutionSet.TaskName)
	assert.Equal(t, "john", task.ExecutionSet.Actors)
	assert.True(t, task.ExecutionSet.Skippable)
	assert.Equal(t, []graph.ScriptTypeValue{{Language: "java", Script: `System.out.println("in");`}}, task.ExecutionSet.OnEntryAction)
	assert.Equal(t, []graph.Variable{{Name: "customer", Type: "String"}}, task.AssignmentsInfo.Inputs)
	assert.Equal(t, []graph.Assignment{{Direction: graph.AssignmentIn, ProcessVar: "customer", DataVar: "customer"}}, task.AssignmentsInfo.Assignments)
	assert.Equal(t, "#fafad2", task.Style.Background.BgColor)
	assert.Equal(t, float64(154), task.Width)

	sim := task.SimulationSet
	assert.Equal(t, graph.DistributionUniform, sim.Distribution)
	assert.True(t, sim.Min.Equal(decimal.NewFromInt(5)))
	assert.True(t, sim.Max.Equal(decimal.NewFromInt(10)))
	assert.True(t, sim.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, sim.UnitCost.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "ms", sim.TimeUnit)

	adhoc := children[0].(*graph.TypedNode[*graph.AdHocSubprocess])
	assert.Equal(t, graph.AdHocOrderingSequential, adhoc.Content.ExecutionSet.Ordering)
	assert.Equal(t, graph.ScriptTypeValue{Language: "mvel", Script: "autocomplete"}, adhoc.Content.ExecutionSet.CompletionCondition)
	assert.Len(t, adhoc.Children(), 2)
	assert.Len(t, adhoc.Edges(), 1)

	note := children[1].(*graph.TypedNode[*graph.TextAnnotation])
	assert.Equal(t, "check credit", note.Content.General.Name)

	edges := make(map[string]*graph.SequenceFlow)
	for _, e := range root.Edges() {
		edges[e.ID()] = e.Definition().(*graph.SequenceFlow)
	}
	require.Len(t, edges, 2)
	assert.Equal(t, "1", edges["_flow1"].ExecutionSet.Priority)
	assert.Equal(t, graph.ScriptTypeValue{Language: "java", Script: "return true;"}, edges["_flow2"].ExecutionSet.Condition)
}

func TestXMLDocumentRoundTrip(t *testing.T) {
	engine := convert.NewEngine()
	first := engine.ToGraph(loadOrder(t))
	require.True(t, first.IsSuccess(), first.Reason())

	d := engine.ToDocument(first.Value())
	require.True(t, d.IsSuccess(), d.Reason())

	second := engine.ToGraph(d.Value())
	require.True(t, second.IsSuccess(), second.Reason())
	assertSameGraph(t, first.Value(), second.Value())
}

func TestToGraphAll(t *testing.T) {
	service := &bpmn.ServiceTask{}
	service.Id = "charge"

	defs := newDefinitions(
		newProcess("first", newStart("s1"), newTask("t1", 150, 50), newFlow("f1", "s1", "t1")),
		newProcess("broken", newStart("s2"), service),
		newProcess("second", newStart("s3")),
	)

	report, err := convert.NewEngine(convert.WithWorkers(2)).ToGraphAll(defs)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "broken", "second"}, report.IDs())
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 0, report.Ignored())

	assert.Equal(t, result.Success, report.Status("first"))
	assert.Equal(t, result.Failure, report.Status("broken"))
	assert.Contains(t, report.Result("broken").Reason(), "ServiceTask")
	assert.Equal(t, result.Failure, report.Status("unknown"))

	first := report.Result("first").Value()
	assert.Len(t, first.Children(), 2)
	assert.Len(t, first.Edges(), 1)
}

func TestToDocumentAll(t *testing.T) {
	good := graph.Wrap("Process_good", graph.NewDefinition(graph.KindDiagram))
	msg := graph.NewDefinition(graph.KindStartMessageEvent).(*graph.StartMessageEvent)
	msg.ExecutionSet.MessageRef = "order"
	good.AddChild(graph.Wrap("start", msg))

	other := graph.Wrap("Process_other", graph.NewDefinition(graph.KindDiagram))
	sig := graph.NewDefinition(graph.KindEndSignalEvent).(*graph.EndSignalEvent)
	sig.ExecutionSet.SignalRef = "done"
	other.AddChild(graph.Wrap("end", sig))

	task := graph.Wrap("task", graph.NewDefinition(graph.KindNoneTask))

	engine := convert.NewEngine(convert.WithTargetNamespace("http://example.com/bpmn"))
	defs, report, err := engine.ToDocumentAll([]graph.Node{good, nil, task, other})
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/bpmn", defs.TargetNamespace)
	require.Len(t, defs.Processes, 2)
	assert.Equal(t, "Process_good", defs.Processes[0].Id)
	assert.Equal(t, "Process_other", defs.Processes[1].Id)
	require.Len(t, defs.Messages, 1)
	require.Len(t, defs.Signals, 1)

	assert.Equal(t, []string{"Process_good", "#1", "task", "Process_other"}, report.IDs())
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 2, report.Failed())
	assert.Equal(t, "Null", report.Result("#1").Reason())
}

func TestBatchDuplicateIDs(t *testing.T) {
	first := graph.Wrap("Process_x", graph.NewDefinition(graph.KindDiagram))
	first.AddChild(graph.Wrap("t1", graph.NewDefinition(graph.KindNoneTask)))
	second := graph.Wrap("Process_x", graph.NewDefinition(graph.KindDiagram))
	second.AddChild(graph.Wrap("t2", graph.NewDefinition(graph.KindNoneTask)))

	engine := convert.NewEngine(convert.WithWorkers(2))
	defs, report, err := engine.ToDocumentAll([]graph.Node{first, second})
	require.NoError(t, err)

	require.Len(t, defs.Processes, 1)
	require.Len(t, defs.Processes[0].FlowElements, 1)
	assert.Equal(t, "t1", defs.Processes[0].FlowElements[0].GetID())
	assert.Equal(t, 1, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	id, r := report.At(1)
	assert.Equal(t, "Process_x", id)
	assert.Equal(t, "diagram Process_x: duplicate id", r.Reason())
	assert.Equal(t, result.Success, report.Status("Process_x"))

	doc := newDefinitions(
		newProcess("dup", newStart("s1")),
		newProcess("dup", newStart("s2")),
	)
	graphs, err := engine.ToGraphAll(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, graphs.Len())
	assert.Equal(t, 1, graphs.Succeeded())
	_, r2 := graphs.At(1)
	assert.Equal(t, "process dup: duplicate id", r2.Reason())
	assert.Equal(t, "s1", graphs.Result("dup").Value().Children()[0].ID())
}

func TestFactoryWrongDefinition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	factory := mock_graph.NewMockFactory(ctrl)
	factory.EXPECT().NewNode(gomock.Any(), graph.KindDiagram).
		DoAndReturn(graph.DefaultFactory{}.NewNode).AnyTimes()
	factory.EXPECT().NewNode(gomock.Any(), graph.KindStartNoneEvent).
		DoAndReturn(func(id string, kind graph.Kind) graph.Node {
			return graph.Wrap(id, graph.NewDefinition(graph.KindNoneTask))
		}).Times(1)

	r := convert.NewEngine(convert.WithFactory(factory)).
		ToGraph(newDefinitions(newProcess("mocked", newStart("start"))))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "factory returned")
}

func TestFactoryDecoratesNodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	factory := mock_graph.NewMockFactory(ctrl)
	factory.EXPECT().NewNode(gomock.Any(), gomock.Any()).
		DoAndReturn(func(id string, kind graph.Kind) graph.Node {
			n := graph.DefaultFactory{}.NewNode(id, kind)
			n.Definition().GeneralSet().Documentation = "generated"
			return n
		}).Times(2)
	factory.EXPECT().NewEdge(gomock.Any(), gomock.Any()).Times(0)

	r := convert.NewEngine(convert.WithFactory(factory)).
		ToGraph(newDefinitions(newProcess("mocked", newTask("task", 100, 100))))
	require.True(t, r.IsSuccess(), r.Reason())

	// readers overwrite the general set from the document
	task := r.Value().Children()[0]
	assert.Equal(t, "", task.Definition().GeneralSet().Documentation)
}
