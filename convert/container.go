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
	"fmt"
	"math"

	log "github.com/vine-io/vine/lib/logger"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/match"
	"github.com/vine-io/bpmnconv/result"
)

// phase is a state of the container conversion.
type phase int32

const (
	phaseClassify phase = iota + 1
	phaseConvertSelf
	phaseConvertChildren
	phaseConvertEdges
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseClassify:
		return "Classify"
	case phaseConvertSelf:
		return "ConvertSelf"
	case phaseConvertChildren:
		return "ConvertChildren"
	case phaseConvertEdges:
		return "ConvertEdges"
	case phaseDone:
		return "Done"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// run drives a container pass from Classify to Done. The first step that
// does not succeed ends the pass with its result.
func run(step func(phase) result.Result[phase]) result.Result[phase] {
	state := phaseClassify
	for state != phaseDone {
		r := step(state)
		if !r.IsSuccess() {
			return r
		}
		state = r.Value()
	}
	return result.Of(state)
}

// the margin kept around the children of the diagram
const diagramMargin = 50

// nodeReader converts a container element into its node, without children.
type nodeReader func() result.Result[graph.Node]

func (c *Context) classifyRules() *match.Match[bpmn.Container, nodeReader] {
	m := match.Of[bpmn.Container, nodeReader]()
	match.When(m, func(p *bpmn.Process) nodeReader {
		return func() result.Result[graph.Node] { return c.readDiagram(p) }
	})
	match.When(m, func(s *bpmn.AdHocSubProcess) nodeReader {
		return func() result.Result[graph.Node] { return c.readAdHocSubprocess(s) }
	})
	match.When(m, func(s *bpmn.SubProcess) nodeReader {
		if s.TriggeredByEvent {
			return func() result.Result[graph.Node] { return c.readEventSubprocess(s) }
		}
		return func() result.Result[graph.Node] { return c.readEmbeddedSubprocess(s) }
	})
	return m
}

func (c *Context) readDiagram(p *bpmn.Process) result.Result[graph.Node] {
	_, def, r := create[*graph.BPMNDiagram](c, p.Id, graph.KindDiagram)
	if !r.IsSuccess() {
		return r
	}

	def.General = readGeneral(&p.BaseElement)
	def.Diagram = graph.DiagramSet{
		ID:                         p.Id,
		PackageName:                p.PackageName,
		Version:                    p.Version,
		AdHoc:                      p.AdHoc,
		Executable:                 p.IsExecutable,
		ProcessInstanceDescription: readMeta(&p.BaseElement, metaDescription),
	}
	def.Variables = c.readVariables(p.Properties)
	return r
}

func (c *Context) readEmbeddedSubprocess(s *bpmn.SubProcess) result.Result[graph.Node] {
	n, def, r := create[*graph.EmbeddedSubprocess](c, s.Id, graph.KindEmbeddedSubprocess)
	if !r.IsSuccess() {
		return r
	}

	def.Variables = c.readVariables(s.Properties)
	def.ExecutionSet.IsAsync = readMetaBool(&s.BaseElement, metaAsync)
	def.ExecutionSet.OnEntryAction, def.ExecutionSet.OnExitAction = readActions(&s.BaseElement)
	return c.readFlowNode(n, &s.FlowNodeBase)
}

func (c *Context) readEventSubprocess(s *bpmn.SubProcess) result.Result[graph.Node] {
	n, def, r := create[*graph.EventSubprocess](c, s.Id, graph.KindEventSubprocess)
	if !r.IsSuccess() {
		return r
	}

	def.Variables = c.readVariables(s.Properties)
	def.ExecutionSet.IsAsync = readMetaBool(&s.BaseElement, metaAsync)
	return c.readFlowNode(n, &s.FlowNodeBase)
}

func (c *Context) readAdHocSubprocess(s *bpmn.AdHocSubProcess) result.Result[graph.Node] {
	n, def, r := create[*graph.AdHocSubprocess](c, s.Id, graph.KindAdHocSubprocess)
	if !r.IsSuccess() {
		return r
	}

	def.Variables = c.readVariables(s.Properties)

	ordering := s.Ordering
	if ordering == "" {
		ordering = graph.AdHocOrderingParallel
	}
	condition := readExpression(s.CompletionCondition, "mvel")
	if s.CompletionCondition == nil {
		condition.Script = "autocomplete"
	}
	onEntry, onExit := readActions(&s.BaseElement)
	set := graph.NewAdHocExecutionSet(condition, ordering, onEntry, onExit)
	if !set.IsSuccess() {
		return result.Failf[graph.Node]("%s: %s", s.Id, set.Reason())
	}
	def.ExecutionSet = set.Value()

	return c.readFlowNode(n, &s.FlowNodeBase)
}

type inboundPass struct {
	ctx     *Context
	element bpmn.Container
	read    nodeReader
	node    graph.Node
	local   map[string]graph.Node
	ignored map[string]bool
}

// toContainerNode converts a process or a sub-process with everything it
// contains.
func (c *Context) toContainerNode(e bpmn.Container) result.Result[graph.Node] {
	p := &inboundPass{
		ctx:     c,
		element: e,
		local:   make(map[string]graph.Node),
		ignored: make(map[string]bool),
	}
	if r := run(p.step); !r.IsSuccess() {
		return result.Cast[graph.Node](r)
	}

	if diagram, ok := p.node.Definition().(*graph.BPMNDiagram); ok {
		fitDiagram(p.node, diagram)
	}
	log.Debugf("converted %s %s: %d children, %d edges", p.node.Kind(), p.node.ID(), len(p.node.Children()), len(p.node.Edges()))
	return result.Of(p.node)
}

func (p *inboundPass) step(s phase) result.Result[phase] {
	switch s {
	case phaseClassify:
		r := p.ctx.classifier.Apply(p.element)
		if !r.IsSuccess() {
			return result.Cast[phase](r)
		}
		p.read = r.Value()
		return result.Of(phaseConvertSelf)
	case phaseConvertSelf:
		r := p.read()
		if !r.IsSuccess() {
			return result.Cast[phase](r)
		}
		p.node = r.Value()
		return result.Of(phaseConvertChildren)
	case phaseConvertChildren:
		return p.convertChildren()
	case phaseConvertEdges:
		return p.convertEdges()
	}
	return result.Failf[phase]("unexpected phase %v", s)
}

func (p *inboundPass) elements() []bpmn.Element {
	base := p.element.GetContainer()
	elements := make([]bpmn.Element, 0, len(base.FlowElements)+len(base.Artifacts))
	elements = append(elements, base.FlowElements...)
	return append(elements, base.Artifacts...)
}

func (p *inboundPass) add(n graph.Node) {
	p.node.AddChild(n)
	p.local[n.ID()] = n
	p.ctx.addNode(n)
}

func (p *inboundPass) convertChildren() result.Result[phase] {
	var origin *bpmn.Bounds
	if shaped, ok := p.element.(bpmn.Shaped); ok {
		origin = shaped.GetShape().Bounds
	}
	p.ctx.pushOrigin(origin)
	defer p.ctx.popOrigin()

	for _, e := range p.elements() {
		if _, ok := e.(bpmn.Connector); ok {
			continue
		}
		r := p.ctx.inbound.Apply(e)
		switch {
		case r.IsIgnored():
			log.Debugf("%s: skip %s: %s", p.node.ID(), e.GetID(), r.Reason())
			p.ignored[e.GetID()] = true
			p.ctx.ignore(e.GetID())
			continue
		case r.IsFailure():
			return result.Cast[phase](r)
		}
		p.add(r.Value())
	}

	for _, lane := range p.element.GetContainer().Lanes() {
		r := p.ctx.inbound.Apply(lane)
		if !r.IsSuccess() {
			return result.Cast[phase](r)
		}
		ln := r.Value()
		for _, ref := range lane.FlowNodeRefs {
			member, ok := p.local[ref]
			if !ok {
				if p.ignored[ref] {
					continue
				}
				return result.Failf[phase]("lane %s: unresolved flow node %s", lane.Id, ref)
			}
			if member.Parent() != p.node {
				log.Warnf("lane %s: %s already belongs to %s", lane.Id, ref, member.Parent().ID())
				continue
			}
			if b, lb := member.Bounds(), ln.Bounds(); b != nil && lb != nil {
				b.X -= lb.X
				b.Y -= lb.Y
			}
			ln.AddChild(member)
		}
		p.add(ln)
	}

	return result.Of(phaseConvertEdges)
}

func (p *inboundPass) resolve(id string) bool {
	if _, ok := p.local[id]; ok {
		return true
	}
	_, ok := p.ctx.Node(id)
	return ok
}

// ignoredEndpoint returns the first endpoint of edge that was skipped as
// an ignored child, here or in an enclosing container.
func (p *inboundPass) ignoredEndpoint(edge graph.Edge) (string, bool) {
	for _, ref := range []string{edge.SourceID(), edge.TargetID()} {
		if p.ctx.isIgnored(ref) {
			return ref, true
		}
	}
	return "", false
}

func (p *inboundPass) convertEdges() result.Result[phase] {
	for _, e := range p.elements() {
		if _, ok := e.(bpmn.Connector); !ok {
			continue
		}
		r := p.ctx.inboundEdge.Apply(e)
		switch {
		case r.IsIgnored():
			log.Debugf("%s: skip %s: %s", p.node.ID(), e.GetID(), r.Reason())
			continue
		case r.IsFailure():
			return result.Cast[phase](r)
		}

		edge := r.Value()
		if ref, ok := p.ignoredEndpoint(edge); ok {
			log.Debugf("%s: skip %s %s: endpoint %s was ignored", p.node.ID(), edge.Kind(), edge.ID(), ref)
			continue
		}
		for _, ref := range []string{edge.SourceID(), edge.TargetID()} {
			if !p.resolve(ref) {
				return result.Failf[phase]("%s %s: unresolved reference %s", edge.Kind(), edge.ID(), ref)
			}
		}
		p.node.AddEdge(edge)
	}

	return result.Of(phaseDone)
}

// fitDiagram grows the diagram to hold its children.
func fitDiagram(n graph.Node, def *graph.BPMNDiagram) {
	maxX, maxY := 0.0, 0.0
	for _, child := range n.Children() {
		if b := child.Bounds(); b != nil {
			maxX = math.Max(maxX, b.X+b.Width)
			maxY = math.Max(maxY, b.Y+b.Height)
		}
	}
	rect := def.Rectangle()
	rect.Width = math.Max(rect.Width, maxX+diagramMargin)
	rect.Height = math.Max(rect.Height, maxY+diagramMargin)
	n.SetBounds(&graph.Bounds{Width: rect.Width, Height: rect.Height})
}

// elementWriter converts a container node into its element, without
// children.
type elementWriter func() result.Result[bpmn.Container]

func (c *Context) outboundClassifyRules() *match.Match[graph.Node, elementWriter] {
	m := match.Of[graph.Node, elementWriter]()
	match.When(m, func(n *graph.TypedNode[*graph.BPMNDiagram]) elementWriter {
		return func() result.Result[bpmn.Container] { return c.writeDiagram(n) }
	})
	match.When(m, func(n *graph.TypedNode[*graph.EmbeddedSubprocess]) elementWriter {
		return func() result.Result[bpmn.Container] { return c.writeEmbeddedSubprocess(n) }
	})
	match.When(m, func(n *graph.TypedNode[*graph.EventSubprocess]) elementWriter {
		return func() result.Result[bpmn.Container] { return c.writeEventSubprocess(n) }
	})
	match.When(m, func(n *graph.TypedNode[*graph.AdHocSubprocess]) elementWriter {
		return func() result.Result[bpmn.Container] { return c.writeAdHocSubprocess(n) }
	})
	return m
}

func (c *Context) writeDiagram(n *graph.TypedNode[*graph.BPMNDiagram]) result.Result[bpmn.Container] {
	def := n.Content
	p := &bpmn.Process{
		IsExecutable: def.Diagram.Executable,
		PackageName:  def.Diagram.PackageName,
		Version:      def.Diagram.Version,
		AdHoc:        def.Diagram.AdHoc,
	}
	p.Id = def.Diagram.ID
	if p.Id == "" {
		p.Id = n.ID()
	}
	p.Name = def.General.Name
	p.Documentation = def.General.Documentation
	writeMeta(&p.BaseElement, metaDescription, def.Diagram.ProcessInstanceDescription)
	p.Properties = c.writeVariables(def.Variables)
	return result.Of[bpmn.Container](p)
}

func (c *Context) writeEmbeddedSubprocess(n *graph.TypedNode[*graph.EmbeddedSubprocess]) result.Result[bpmn.Container] {
	def := n.Content
	s := &bpmn.SubProcess{}
	writeFlowNode(n, &s.FlowNodeBase)
	s.Expanded = true
	s.Properties = c.writeVariables(def.Variables)
	writeMetaBool(&s.BaseElement, metaAsync, def.ExecutionSet.IsAsync)
	writeActions(&s.BaseElement, def.ExecutionSet.OnEntryAction, def.ExecutionSet.OnExitAction)
	return result.Of[bpmn.Container](s)
}

func (c *Context) writeEventSubprocess(n *graph.TypedNode[*graph.EventSubprocess]) result.Result[bpmn.Container] {
	def := n.Content
	s := &bpmn.SubProcess{TriggeredByEvent: true}
	writeFlowNode(n, &s.FlowNodeBase)
	s.Expanded = true
	s.Properties = c.writeVariables(def.Variables)
	writeMetaBool(&s.BaseElement, metaAsync, def.ExecutionSet.IsAsync)
	return result.Of[bpmn.Container](s)
}

func (c *Context) writeAdHocSubprocess(n *graph.TypedNode[*graph.AdHocSubprocess]) result.Result[bpmn.Container] {
	def := n.Content
	set := def.ExecutionSet
	checked := graph.NewAdHocExecutionSet(set.CompletionCondition, set.Ordering, set.OnEntryAction, set.OnExitAction)
	if !checked.IsSuccess() {
		return result.Failf[bpmn.Container]("%s: %s", n.ID(), checked.Reason())
	}

	s := &bpmn.AdHocSubProcess{
		Ordering: set.Ordering,
		CompletionCondition: &bpmn.FormalExpression{
			Language: bpmn.LanguageURI(set.CompletionCondition.Language),
			Body:     set.CompletionCondition.Script,
		},
	}
	writeFlowNode(n, &s.FlowNodeBase)
	s.Expanded = true
	s.Properties = c.writeVariables(def.Variables)
	writeActions(&s.BaseElement, set.OnEntryAction, set.OnExitAction)
	return result.Of[bpmn.Container](s)
}

type outboundPass struct {
	ctx     *Context
	node    graph.Node
	write   elementWriter
	element bpmn.Container
	local   map[string]bpmn.Element
}

// toContainerElement converts a diagram or a sub-process node with
// everything it contains.
func (c *Context) toContainerElement(n graph.Node) result.Result[bpmn.Element] {
	p := &outboundPass{ctx: c, node: n, local: make(map[string]bpmn.Element)}
	if r := run(p.step); !r.IsSuccess() {
		return result.Cast[bpmn.Element](r)
	}

	log.Debugf("wrote %s %s: %d flow elements", n.Kind(), p.element.GetID(), len(p.element.GetContainer().FlowElements))
	return result.Of[bpmn.Element](p.element)
}

func (p *outboundPass) step(s phase) result.Result[phase] {
	switch s {
	case phaseClassify:
		r := p.ctx.outClassify.Apply(p.node)
		if !r.IsSuccess() {
			return result.Cast[phase](r)
		}
		p.write = r.Value()
		return result.Of(phaseConvertSelf)
	case phaseConvertSelf:
		r := p.write()
		if !r.IsSuccess() {
			return result.Cast[phase](r)
		}
		p.element = r.Value()
		return result.Of(phaseConvertChildren)
	case phaseConvertChildren:
		return p.convertChildren()
	case phaseConvertEdges:
		return p.convertEdges()
	}
	return result.Failf[phase]("unexpected phase %v", s)
}

// convert writes child into the container. It returns a nil element for an
// ignored child.
func (p *outboundPass) convert(child graph.Node) (bpmn.Element, result.Result[phase]) {
	r := p.ctx.outbound.Apply(child)
	switch {
	case r.IsIgnored():
		log.Debugf("%s: skip %s: %s", p.node.ID(), child.ID(), r.Reason())
		return nil, result.Of(phaseConvertChildren)
	case r.IsFailure():
		return nil, result.Cast[phase](r)
	}

	e := r.Value()
	container := p.element.GetContainer()
	switch e.(type) {
	case *bpmn.TextAnnotation:
		container.AddArtifact(e)
	default:
		container.AddFlowElement(e)
	}
	for _, d := range p.ctx.takeDeclared() {
		container.AddFlowElement(d)
	}
	p.local[e.GetID()] = e
	p.ctx.addElement(e)
	return e, result.Of(phaseConvertChildren)
}

func (p *outboundPass) convertChildren() result.Result[phase] {
	for _, child := range p.node.Children() {
		if lane, ok := child.(*graph.TypedNode[*graph.Lane]); ok {
			if r := p.convertLane(lane); !r.IsSuccess() {
				return r
			}
			continue
		}
		if _, r := p.convert(child); !r.IsSuccess() {
			return r
		}
	}
	return result.Of(phaseConvertEdges)
}

// convertLane writes the lane into the lane set of the container and its
// members as flow elements of the container.
func (p *outboundPass) convertLane(n *graph.TypedNode[*graph.Lane]) result.Result[phase] {
	r := p.ctx.outbound.Apply(n)
	if !r.IsSuccess() {
		return result.Cast[phase](r)
	}
	lane, ok := r.Value().(*bpmn.Lane)
	if !ok {
		return result.Failf[phase]("lane %s: unexpected %s", n.ID(), match.NameOf(r.Value()))
	}

	for _, member := range n.Children() {
		if member.Kind() == graph.KindLane {
			return result.Failf[phase]("lane %s: nested lane %s is not supported", n.ID(), member.ID())
		}
		e, r := p.convert(member)
		if !r.IsSuccess() {
			return r
		}
		if e != nil {
			lane.FlowNodeRefs = append(lane.FlowNodeRefs, e.GetID())
		}
	}

	p.element.GetContainer().AddLane(lane)
	p.local[lane.Id] = lane
	p.ctx.addElement(lane)
	return result.Of(phaseConvertChildren)
}

func (p *outboundPass) resolve(id string) (bpmn.Element, bool) {
	if e, ok := p.local[id]; ok {
		return e, true
	}
	return p.ctx.Element(id)
}

func (p *outboundPass) convertEdges() result.Result[phase] {
	container := p.element.GetContainer()
	for _, edge := range p.node.Edges() {
		r := p.ctx.outboundEdge.Apply(edge)
		switch {
		case r.IsIgnored():
			log.Debugf("%s: skip %s: %s", p.node.ID(), edge.ID(), r.Reason())
			continue
		case r.IsFailure():
			return result.Cast[phase](r)
		}

		source, ok := p.resolve(edge.SourceID())
		if !ok {
			return result.Failf[phase]("%s %s: unresolved reference %s", edge.Kind(), edge.ID(), edge.SourceID())
		}
		target, ok := p.resolve(edge.TargetID())
		if !ok {
			return result.Failf[phase]("%s %s: unresolved reference %s", edge.Kind(), edge.ID(), edge.TargetID())
		}

		e := r.Value()
		if flow, ok := e.(*bpmn.SequenceFlow); ok {
			if fn, ok := source.(bpmn.FlowNode); ok {
				fn.GetFlowNode().AddOutgoing(flow.Id)
			}
			if fn, ok := target.(bpmn.FlowNode); ok {
				fn.GetFlowNode().AddIncoming(flow.Id)
			}
			container.AddFlowElement(e)
		} else {
			container.AddArtifact(e)
		}
		p.ctx.addElement(e)
	}

	for _, e := range container.FlowElements {
		if g, ok := e.(bpmn.Gateway); ok {
			setDirection(g)
		}
	}
	return result.Of(phaseDone)
}

func setDirection(g bpmn.Gateway) {
	fn := g.GetFlowNode()
	in, out := len(fn.Incoming), len(fn.Outgoing)
	switch {
	case in > 1 && out > 1:
		g.GetGateway().Direction = bpmn.GatewayDirectionUnspecified
	case out > 1:
		g.GetGateway().Direction = bpmn.GatewayDirectionDiverging
	case in > 1:
		g.GetGateway().Direction = bpmn.GatewayDirectionConverging
	}
}
