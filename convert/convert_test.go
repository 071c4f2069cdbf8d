package convert_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/convert"
	"github.com/vine-io/bpmnconv/graph"
)

type snapshot struct {
	ID       string
	Kind     graph.Kind
	Bounds   *graph.Bounds
	Def      graph.Definition
	Children []snapshot
	Edges    []edgeSnapshot
}

type edgeSnapshot struct {
	ID     string
	Kind   graph.Kind
	Source string
	Target string
	Def    graph.Definition
}

func snap(n graph.Node) snapshot {
	s := snapshot{ID: n.ID(), Kind: n.Kind(), Bounds: n.Bounds(), Def: n.Definition()}
	for _, child := range n.Children() {
		s.Children = append(s.Children, snap(child))
	}
	for _, e := range n.Edges() {
		s.Edges = append(s.Edges, edgeSnapshot{
			ID:     e.ID(),
			Kind:   e.Kind(),
			Source: e.SourceID(),
			Target: e.TargetID(),
			Def:    e.Definition(),
		})
	}
	return s
}

var graphOpts = []cmp.Option{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
	cmpopts.SortSlices(func(a, b snapshot) bool { return a.ID < b.ID }),
	cmpopts.SortSlices(func(a, b edgeSnapshot) bool { return a.ID < b.ID }),
}

func assertSameGraph(t *testing.T, want, got graph.Node) {
	t.Helper()
	if diff := cmp.Diff(snap(want), snap(got), graphOpts...); diff != "" {
		t.Errorf("graph mismatch (-want +got):\n%s", diff)
	}
}

func newDefinitions(processes ...*bpmn.Process) *bpmn.Definitions {
	defs := bpmn.NewDefinitions()
	defs.Processes = processes
	return defs
}

func newProcess(id string, elements ...bpmn.Element) *bpmn.Process {
	p := &bpmn.Process{IsExecutable: true}
	p.Id = id
	for _, e := range elements {
		p.AddFlowElement(e)
	}
	return p
}

func newTask(id string, x, y float64) *bpmn.Task {
	task := &bpmn.Task{}
	task.Id = id
	task.Bounds = &bpmn.Bounds{X: x, Y: y, Width: 100, Height: 80}
	return task
}

func newStart(id string) *bpmn.StartEvent {
	start := &bpmn.StartEvent{IsInterrupting: true}
	start.Id = id
	start.Bounds = &bpmn.Bounds{X: 50, Y: 50, Width: 36, Height: 36}
	return start
}

func newFlow(id, source, target string) *bpmn.SequenceFlow {
	flow := &bpmn.SequenceFlow{SourceRef: source, TargetRef: target}
	flow.Id = id
	return flow
}

func TestNullInput(t *testing.T) {
	engine := convert.NewEngine()

	r := engine.ToGraph(nil)
	assert.True(t, r.IsFailure())
	assert.Equal(t, "Null", r.Reason())

	d := engine.ToDocument(nil)
	assert.True(t, d.IsFailure())
	assert.Equal(t, "Null", d.Reason())

	ctx := convert.NewContext(nil, nil)
	assert.Equal(t, "Null", ctx.ToNode(nil).Reason())
	assert.Equal(t, "Null", ctx.ToElement(nil).Reason())

	_, err := engine.ToGraphAll(nil)
	assert.Error(t, err)
}

func TestToGraphWithoutProcess(t *testing.T) {
	r := convert.NewEngine().ToGraph(bpmn.NewDefinitions())
	assert.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "no process")

	r = convert.NewEngine().ProcessToGraph(newDefinitions(newProcess("a")), "b")
	assert.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "process b not found")
}

func TestMissingConverter(t *testing.T) {
	service := &bpmn.ServiceTask{}
	service.Id = "charge"

	r := convert.NewEngine().ToGraph(newDefinitions(newProcess("billing", newStart("start"), service)))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "Not yet implemented")
	assert.Contains(t, r.Reason(), "github.com/vine-io/bpmnconv/bpmn.ServiceTask")

	unknown := &bpmn.Unknown{Tag: "dataStoreReference"}
	unknown.Id = "store"
	r = convert.NewEngine().ToGraph(newDefinitions(newProcess("stores", unknown)))
	require.True(t, r.IsFailure())
	assert.Equal(t, "Not yet implemented: dataStoreReference", r.Reason())
}

func TestIgnoredChildren(t *testing.T) {
	group := &bpmn.Group{}
	group.Id = "group"
	data := &bpmn.DataObject{}
	data.Id = "DataObject_doc"

	p := newProcess("ignored", newStart("start"), data)
	p.AddArtifact(group)

	r := convert.NewEngine().ToGraph(newDefinitions(p))
	require.True(t, r.IsSuccess(), r.Reason())

	root := r.Value()
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "start", root.Children()[0].ID())
	_, ok := graph.Find(root, "group")
	assert.False(t, ok)
}

func TestEdgeToIgnoredChild(t *testing.T) {
	group := &bpmn.Group{}
	group.Id = "group"
	note := &bpmn.TextAnnotation{Text: "grouped"}
	note.Id = "note"
	note.Bounds = &bpmn.Bounds{X: 200, Y: 50, Width: 100, Height: 30}
	link := &bpmn.Association{SourceRef: "note", TargetRef: "group"}
	link.Id = "link"

	p := newProcess("grouped", newStart("start"))
	p.AddArtifact(group)
	p.AddArtifact(note)
	p.AddArtifact(link)

	r := convert.NewEngine().ToGraph(newDefinitions(p))
	require.True(t, r.IsSuccess(), r.Reason())
	assert.Len(t, r.Value().Children(), 2)
	assert.Empty(t, r.Value().Edges())

	dangling := &bpmn.Association{SourceRef: "note", TargetRef: "nowhere"}
	dangling.Id = "dangling"
	p.AddArtifact(dangling)

	r = convert.NewEngine().ToGraph(newDefinitions(p))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "unresolved reference nowhere")
}

func TestContainerDispatch(t *testing.T) {
	adhoc := &bpmn.AdHocSubProcess{Ordering: bpmn.AdHocOrderingSequential}
	adhoc.Id = "adhoc"
	adhoc.Bounds = &bpmn.Bounds{X: 100, Y: 100, Width: 400, Height: 200}

	event := &bpmn.SubProcess{TriggeredByEvent: true}
	event.Id = "event"
	event.Bounds = &bpmn.Bounds{X: 100, Y: 400, Width: 400, Height: 200}

	embedded := &bpmn.SubProcess{}
	embedded.Id = "embedded"
	embedded.Bounds = &bpmn.Bounds{X: 100, Y: 700, Width: 400, Height: 200}

	r := convert.NewEngine().ToGraph(newDefinitions(newProcess("containers", adhoc, event, embedded)))
	require.True(t, r.IsSuccess(), r.Reason())

	root := r.Value()
	assert.Equal(t, graph.KindDiagram, root.Kind())
	assert.Equal(t, "containers", root.ID())

	kinds := make(map[string]graph.Kind)
	for _, child := range root.Children() {
		kinds[child.ID()] = child.Kind()
	}
	assert.Equal(t, map[string]graph.Kind{
		"adhoc":    graph.KindAdHocSubprocess,
		"event":    graph.KindEventSubprocess,
		"embedded": graph.KindEmbeddedSubprocess,
	}, kinds)
}

func TestRelativeBounds(t *testing.T) {
	sub := &bpmn.SubProcess{}
	sub.Id = "sub"
	sub.Bounds = &bpmn.Bounds{X: 100, Y: 100, Width: 400, Height: 250}
	sub.AddFlowElement(newTask("inner", 150, 160))

	r := convert.NewEngine().ToGraph(newDefinitions(newProcess("nested", sub)))
	require.True(t, r.IsSuccess(), r.Reason())

	inner, ok := graph.Find(r.Value(), "inner")
	require.True(t, ok)
	assert.Equal(t, &graph.Bounds{X: 50, Y: 60, Width: 100, Height: 80}, inner.Bounds())
	assert.Equal(t, &graph.Bounds{X: 150, Y: 160, Width: 100, Height: 80}, graph.AbsoluteBounds(inner))

	d := convert.NewEngine().ToDocument(r.Value())
	require.True(t, d.IsSuccess(), d.Reason())
	e, ok := d.Value().Find("inner")
	require.True(t, ok)
	assert.Equal(t, &bpmn.Bounds{X: 150, Y: 160, Width: 100, Height: 80}, e.(*bpmn.Task).Bounds)
}

func TestUnresolvedSequenceFlowTarget(t *testing.T) {
	p := newProcess("dangling", newStart("start"), newFlow("flow", "start", "missing"))

	r := convert.NewEngine().ToGraph(newDefinitions(p))
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "unresolved reference missing")

	sub := &bpmn.SubProcess{}
	sub.Id = "sub"
	sub.Bounds = &bpmn.Bounds{X: 100, Y: 100, Width: 400, Height: 250}
	sub.AddFlowElement(newTask("inner", 150, 160))
	sub.AddFlowElement(newFlow("nested", "inner", "nowhere"))

	r = convert.NewEngine().ToGraph(newDefinitions(newProcess("outer", newStart("start"), sub)))
	require.True(t, r.IsFailure())
	assert.Equal(t, "SequenceFlow nested: unresolved reference nowhere", r.Reason())

	root := graph.Wrap("Process_dangling", graph.NewDefinition(graph.KindDiagram))
	root.AddChild(graph.Wrap("start", graph.NewDefinition(graph.KindStartNoneEvent)))
	root.AddEdge(graph.WrapEdge("flow", graph.NewDefinition(graph.KindSequenceFlow), "start", "missing"))

	d := convert.NewEngine().ToDocument(root)
	require.True(t, d.IsFailure())
	assert.Contains(t, d.Reason(), "unresolved reference missing")
}

func TestToDocumentRequiresDiagram(t *testing.T) {
	task := graph.Wrap("task", graph.NewDefinition(graph.KindNoneTask))
	r := convert.NewEngine().ToDocument(task)
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "is not a diagram")
}
