package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefinition(t *testing.T) {
	for _, kind := range Kinds() {
		def := NewDefinition(kind)
		if !assert.NotNil(t, def, "kind %s", kind) {
			continue
		}
		assert.Equal(t, kind, def.Kind())
		assert.Equal(t, DefaultStyle(kind.Family()), *def.Styles())

		if kind.IsEdge() {
			assert.Nil(t, DefaultFactory{}.NewNode("x", kind))
			e := DefaultFactory{}.NewEdge("x", kind)
			if assert.NotNil(t, e) {
				assert.Equal(t, kind, e.Kind())
			}
			continue
		}
		n := DefaultFactory{}.NewNode("x", kind)
		if assert.NotNil(t, n, "kind %s", kind) {
			assert.Equal(t, kind, n.Kind())
			assert.Equal(t, "x", n.ID())
		}
		assert.Nil(t, DefaultFactory{}.NewEdge("x", kind))
	}

	assert.Nil(t, NewDefinition("Choreography"))
}

func TestPropertyBundles(t *testing.T) {
	_, ok := NewDefinition(KindUserTask).(DataIOCarrier)
	assert.True(t, ok)
	_, ok = NewDefinition(KindScriptTask).(DataIOCarrier)
	assert.False(t, ok)
	_, ok = NewDefinition(KindEmbeddedSubprocess).(DataCarrier)
	assert.True(t, ok)
	_, ok = NewDefinition(KindReusableSubprocess).(DataCarrier)
	assert.False(t, ok)
	_, ok = NewDefinition(KindExclusiveGateway).(Circular)
	assert.True(t, ok)
	_, ok = NewDefinition(KindExclusiveGateway).(Simulated)
	assert.False(t, ok)

	sim := NewDefinition(KindNoneTask).(Simulated).Simulation()
	assert.True(t, sim.IsDefault())
	sim.UnitCost = decimal.RequireFromString("2.5")
	assert.False(t, sim.IsDefault())
}

func TestAssignmentsInfo(t *testing.T) {
	text := "|approver:String,reason:String||approved:Boolean|[din]manager->approver,[din]reason=too+late%2C+sorry,[dout]approved->ok"
	info, err := ParseAssignmentsInfo(text)
	require.NoError(t, err)

	assert.Equal(t, []Variable{{Name: "approver", Type: "String"}, {Name: "reason", Type: "String"}}, info.Inputs)
	assert.Equal(t, []Variable{{Name: "approved", Type: "Boolean"}}, info.Outputs)
	require.Len(t, info.Assignments, 3)
	assert.Equal(t, Assignment{Direction: AssignmentIn, ProcessVar: "manager", DataVar: "approver"}, info.Assignments[0])
	assert.Equal(t, Assignment{Direction: AssignmentIn, DataVar: "reason", Constant: "too late, sorry"}, info.Assignments[1])
	assert.True(t, info.Assignments[1].IsConstant())
	assert.Equal(t, Assignment{Direction: AssignmentOut, DataVar: "approved", ProcessVar: "ok"}, info.Assignments[2])

	in, ok := info.Input("reason")
	assert.True(t, ok)
	assert.Equal(t, "too late, sorry", in.Constant)

	assert.Equal(t, text, info.String())

	single, err := ParseAssignmentsInfo("msg:String||||[din]order->msg")
	require.NoError(t, err)
	assert.Equal(t, []Variable{{Name: "msg", Type: "String"}}, single.Inputs)

	_, err = ParseAssignmentsInfo("a|b")
	assert.Error(t, err)
	_, err = ParseAssignmentsInfo("||||[xx]a->b")
	assert.Error(t, err)

	empty, err := ParseAssignmentsInfo("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.String())
}

func TestProcessVariables(t *testing.T) {
	vs := ParseProcessVariables("amount:Integer, customer:org.acme.Customer,flag")
	assert.Equal(t, ProcessVariables{
		{Name: "amount", Type: "Integer"},
		{Name: "customer", Type: "org.acme.Customer"},
		{Name: "flag"},
	}, vs)
	assert.Equal(t, "amount:Integer,customer:org.acme.Customer,flag", vs.String())

	v, ok := vs.Get("customer")
	assert.True(t, ok)
	assert.Equal(t, "org.acme.Customer", v.Type)

	assert.Empty(t, ParseProcessVariables(""))
}

func TestValidatedConstructors(t *testing.T) {
	set := NewAdHocExecutionSet(ScriptTypeValue{Language: "mvel", Script: "autocomplete"}, AdHocOrderingParallel, nil, nil)
	require.True(t, set.IsSuccess(), set.Reason())
	assert.Equal(t, AdHocOrderingParallel, set.Value().Ordering)

	bad := NewAdHocExecutionSet(ScriptTypeValue{}, "Random", nil, nil)
	assert.True(t, bad.IsFailure())
	assert.Contains(t, bad.Reason(), "Ordering")

	assert.True(t, NewAdHocExecutionSet(ScriptTypeValue{}, "", nil, nil).IsFailure())

	assert.True(t, NewBounds(-10, -10, 0, 0).IsSuccess())
	assert.True(t, NewBounds(0, 0, -1, 10).IsFailure())

	sim := DefaultSimulationSet()
	assert.True(t, NewSimulationSet(sim).IsSuccess())

	sim.Distribution = "gamma"
	assert.True(t, NewSimulationSet(sim).IsFailure())

	sim = DefaultSimulationSet()
	sim.UnitCost = decimal.NewFromInt(-1)
	assert.True(t, NewSimulationSet(sim).IsFailure())

	sim = DefaultSimulationSet()
	sim.Distribution = DistributionUniform
	sim.Min = decimal.NewFromInt(5)
	sim.Max = decimal.NewFromInt(3)
	assert.True(t, NewSimulationSet(sim).IsFailure())
}

func TestTreeOperations(t *testing.T) {
	root := Wrap("root", NewDefinition(KindDiagram))
	sub := Wrap("sub", NewDefinition(KindEmbeddedSubprocess))
	task := Wrap("task", NewDefinition(KindNoneTask))
	lane := Wrap("lane", NewDefinition(KindLane))

	root.AddChild(sub)
	root.AddChild(lane)
	sub.AddChild(task)

	root.SetBounds(&Bounds{X: 0, Y: 0, Width: 1000, Height: 500})
	sub.SetBounds(&Bounds{X: 100, Y: 50, Width: 400, Height: 300})
	task.SetBounds(&Bounds{X: 20, Y: 30, Width: 100, Height: 80})

	assert.Equal(t, &Bounds{X: 120, Y: 80, Width: 100, Height: 80}, AbsoluteBounds(task))

	found, ok := Find(root, "task")
	assert.True(t, ok)
	assert.Equal(t, task, found)
	_, ok = Find(root, "nope")
	assert.False(t, ok)

	ids := make([]string, 0)
	Walk(root, func(n Node) bool {
		ids = append(ids, n.ID())
		return true
	})
	assert.Equal(t, []string{"root", "sub", "task", "lane"}, ids)

	// moving a node detaches it from its old parent
	lane.AddChild(task)
	assert.Empty(t, sub.Children())
	assert.Equal(t, lane, task.Parent())

	assert.True(t, lane.RemoveChild("task"))
	assert.Nil(t, task.Parent())
	assert.False(t, lane.RemoveChild("task"))

	flow := WrapEdge("flow", NewDefinition(KindSequenceFlow), "a", "b")
	sub.AddEdge(flow)
	e, ok := FindEdge(root, "flow")
	assert.True(t, ok)
	assert.Equal(t, "a", e.SourceID())
	assert.Equal(t, "b", e.TargetID())
}

func TestBuilderLayout(t *testing.T) {
	b := NewBuilder("order").Id("Process_order").SetVariable("amount", "Integer")
	b.Start()
	start := b.Current()
	b.Add(KindUserTask, "approve")
	task := b.Current()
	b.End()
	end := b.Current()

	root, err := b.Out()
	require.NoError(t, err)

	diagram := root.Definition().(*BPMNDiagram)
	assert.Equal(t, "Process_order", diagram.Diagram.ID)
	assert.Equal(t, "Process_order", root.ID())
	assert.Equal(t, "order", diagram.General.Name)
	assert.Equal(t, ProcessVariables{{Name: "amount", Type: "Integer"}}, diagram.Variables)

	require.Len(t, root.Children(), 3)
	require.Len(t, root.Edges(), 2)
	assert.Equal(t, start, root.Edges()[0].SourceID())
	assert.Equal(t, task, root.Edges()[0].TargetID())
	assert.Equal(t, task, root.Edges()[1].SourceID())
	assert.Equal(t, end, root.Edges()[1].TargetID())

	n, _ := Find(root, start)
	assert.Equal(t, &Bounds{X: 82, Y: 132, Width: 36, Height: 36}, n.Bounds())
	n, _ = Find(root, task)
	assert.Equal(t, &Bounds{X: 200, Y: 110, Width: 100, Height: 80}, n.Bounds())
	n, _ = Find(root, end)
	assert.Equal(t, &Bounds{X: 382, Y: 132, Width: 36, Height: 36}, n.Bounds())
}

func TestBuilderInsertAndBranch(t *testing.T) {
	b := NewBuilder("branch").Start()
	start := b.Current()
	b.End()
	end := b.Current()

	// inserting after the start event reroutes its outgoing flow
	b.Seek(start).Add(KindScriptTask, "log")
	script := b.Current()

	b.Add(KindExclusiveGateway, "")
	gw := b.Current()
	b.Add(KindNoneTask, "left")
	left := b.Current()
	b.Seek(gw).Add(KindNoneTask, "right")
	right := b.Current()
	b.Link(left, end, "").Link(right, end, "")

	root, err := b.Out()
	require.NoError(t, err)

	pairs := make([][2]string, 0)
	for _, e := range root.Edges() {
		pairs = append(pairs, [2]string{e.SourceID(), e.TargetID()})
	}
	assert.ElementsMatch(t, [][2]string{
		{start, script},
		{script, gw},
		{gw, end},
		{gw, left},
		{gw, right},
		{left, end},
		{right, end},
	}, pairs)

	l, _ := Find(root, left)
	r, _ := Find(root, right)
	assert.Equal(t, l.Bounds().X, r.Bounds().X)
	assert.Equal(t, float64(spaceY), r.Bounds().Y-l.Bounds().Y)
}

func TestBuilderSubProcess(t *testing.T) {
	b := NewBuilder("nested").Start().
		SubProcess(KindEmbeddedSubprocess, "inner").
		Start().Add(KindNoneTask, "work").End().
		Done().
		End()
	root, err := b.Out()
	require.NoError(t, err)

	require.Len(t, root.Children(), 3)
	sub := root.Children()[1]
	assert.Equal(t, KindEmbeddedSubprocess, sub.Kind())
	require.Len(t, sub.Children(), 3)
	require.Len(t, sub.Edges(), 2)

	// children are laid out relative to the sub-process
	first := sub.Children()[0].Bounds()
	assert.Equal(t, float64(margin)-DefaultEventRadius, first.X)

	rect := sub.Definition().(Rectangular).Rectangle()
	assert.Equal(t, sub.Bounds().Width, rect.Width)
	assert.GreaterOrEqual(t, rect.Width, float64(DefaultSubprocessWidth))

	_, err = NewBuilder("bad").Start().SubProcess(KindUserTask, "x").Out()
	assert.Error(t, err)
	_, err = NewBuilder("bad").Start().Link("a", "b", "").Out()
	assert.Error(t, err)
	_, err = NewBuilder("bad").Start().SubProcess(KindAdHocSubprocess, "x").Out()
	assert.Error(t, err)
}

func TestJSONCodec(t *testing.T) {
	b := NewBuilder("json").Start()
	b.Add(KindUserTask, "approve")
	task := b.Current()
	b.End()
	root, err := b.Out()
	require.NoError(t, err)

	n, _ := Find(root, task)
	def := n.Definition().(*UserTask)
	def.ExecutionSet.Actors = "john"
	def.Simulation().Distribution = DistributionPoisson
	def.Simulation().Mean = decimal.RequireFromString("12.75")
	def.DataIO().AssignmentsInfo = AssignmentsInfo{
		Inputs:      []Variable{{Name: "in", Type: "String"}},
		Assignments: []Assignment{{Direction: AssignmentIn, DataVar: "in", Constant: "x"}},
	}
	root.Edges()[0].Definition().(*SequenceFlow).ExecutionSet.Priority = "2"

	data, err := MarshalNode(root)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind": "UserTask"`)

	out, err := UnmarshalNode(data)
	require.NoError(t, err)

	opts := cmp.Options{
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
		cmpopts.EquateEmpty(),
	}
	assert.Equal(t, root.ID(), out.ID())
	assert.Equal(t, root.Bounds(), out.Bounds())
	require.Len(t, out.Children(), 3)
	for i, child := range root.Children() {
		got := out.Children()[i]
		assert.Equal(t, child.ID(), got.ID())
		assert.Equal(t, child.Bounds(), got.Bounds())
		assert.Equal(t, out, got.Parent())
		if diff := cmp.Diff(child.Definition(), got.Definition(), opts); diff != "" {
			t.Errorf("definition of %s mismatch (-want +got):\n%s", child.ID(), diff)
		}
	}
	require.Len(t, out.Edges(), 2)
	for i, e := range root.Edges() {
		got := out.Edges()[i]
		assert.Equal(t, e.SourceID(), got.SourceID())
		assert.Equal(t, e.TargetID(), got.TargetID())
		if diff := cmp.Diff(e.Definition(), got.Definition(), opts); diff != "" {
			t.Errorf("definition of %s mismatch (-want +got):\n%s", e.ID(), diff)
		}
	}

	_, err = UnmarshalNode([]byte(`{"id":"x","kind":"Choreography"}`))
	assert.Error(t, err)
	_, err = UnmarshalNode([]byte(`{"id":"x","kind":"SequenceFlow"}`))
	assert.Error(t, err)
}
