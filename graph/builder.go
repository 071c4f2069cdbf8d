// Copyright 2023 Lack (xingyys@gmail.com).
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type frame struct {
	container Node
	cur       string
}

// Builder assembles a process graph: a BPMNDiagram root whose children are
// chained by sequence flows in the order they are appended.
//
//	root, err := NewBuilder("order").
//		Start().
//		Add(KindUserTask, "approve").
//		End().
//		Out()
type Builder struct {
	factory Factory
	root    *TypedNode[*BPMNDiagram]
	ptr     Node
	cur     string
	stack   []frame
	err     error
}

func NewBuilder(name string) *Builder {
	def := NewDefinition(KindDiagram).(*BPMNDiagram)
	def.General.Name = name
	def.Diagram.ID = "Process_" + strings.ToLower(randID()[1:8])
	root := NewNode(def.Diagram.ID, def)
	return &Builder{factory: DefaultFactory{}, root: root, ptr: root}
}

// Factory replaces the factory used for nodes and edges created by the
// builder itself.
func (b *Builder) Factory(f Factory) *Builder {
	b.factory = f
	return b
}

// Id sets the process id of the diagram. The root node shares it.
func (b *Builder) Id(id string) *Builder {
	b.root.Id = id
	b.root.Content.Diagram.ID = id
	return b
}

// SetVariable declares a process variable on the diagram.
func (b *Builder) SetVariable(name, dtype string) *Builder {
	data := b.root.Content.Data()
	for i, v := range data.Variables {
		if v.Name == name {
			data.Variables[i].Type = dtype
			return b
		}
	}
	data.Variables = append(data.Variables, Variable{Name: name, Type: dtype})
	return b
}

func (b *Builder) Start() *Builder {
	return b.Add(KindStartNoneEvent, "")
}

func (b *Builder) End() *Builder {
	return b.Add(KindEndNoneEvent, "")
}

// Add creates a node of the given kind and appends it.
func (b *Builder) Add(kind Kind, name string) *Builder {
	n := b.factory.NewNode(NewID(), kind)
	if n == nil {
		b.fail(fmt.Errorf("can't create node of kind %q", kind))
		return b
	}
	n.Definition().GeneralSet().Name = name
	return b.Append(n)
}

// Append adds n to the current container after the last appended node.
// When that node is not a gateway and already has an outgoing flow, n is
// inserted on that flow.
func (b *Builder) Append(n Node) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := Find(b.root, n.ID()); exists {
		b.fail(fmt.Errorf("node %s already exists", n.ID()))
		return b
	}

	src := b.cur
	b.ptr.AddChild(n)
	b.cur = n.ID()
	if src == "" {
		return b
	}

	if source, ok := b.child(src); ok && source.Kind().Family() != FamilyGateway {
		for _, e := range b.ptr.Edges() {
			if e.Kind() == KindSequenceFlow && e.SourceID() == src {
				e.Connect(n.ID(), e.TargetID())
				break
			}
		}
	}

	return b.Link(src, n.ID(), "")
}

// SubProcess appends a sub-process of the given kind and makes it the
// current container until Done is called.
func (b *Builder) SubProcess(kind Kind, name string) *Builder {
	if !kind.IsContainer() || kind.Family() != FamilySubprocess {
		b.fail(fmt.Errorf("%q is not a sub-process kind", kind))
		return b
	}
	b.Add(kind, name)
	if b.err != nil {
		return b
	}
	sub, _ := b.child(b.cur)
	b.stack = append(b.stack, frame{container: b.ptr, cur: b.cur})
	b.ptr = sub
	b.cur = ""
	return b
}

// Done closes the sub-process opened by the last SubProcess call.
func (b *Builder) Done() *Builder {
	if len(b.stack) == 0 {
		b.fail(fmt.Errorf("no open sub-process"))
		return b
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.ptr = top.container
	b.cur = top.cur
	return b
}

// Seek makes the node with the given id of the current container the
// insertion point.
func (b *Builder) Seek(id string) *Builder {
	if !isChild(b.ptr, id) {
		b.fail(fmt.Errorf("node %s not found", id))
		return b
	}
	b.cur = id
	return b
}

// Current returns the id of the last appended node.
func (b *Builder) Current() string { return b.cur }

// Link connects two nodes of the current container with a sequence flow.
// A non-empty condition becomes the flow's condition expression.
func (b *Builder) Link(src, dst, condition string) *Builder {
	if b.err != nil {
		return b
	}
	if !isChild(b.ptr, src) {
		b.fail(fmt.Errorf("link source %s not found", src))
		return b
	}
	if !isChild(b.ptr, dst) {
		b.fail(fmt.Errorf("link target %s not found", dst))
		return b
	}

	e := b.factory.NewEdge(NewID(), KindSequenceFlow)
	if e == nil {
		b.fail(fmt.Errorf("can't create sequence flow"))
		return b
	}
	e.Connect(src, dst)
	if condition != "" {
		if flow, ok := e.Definition().(*SequenceFlow); ok {
			flow.ExecutionSet.Condition.Script = condition
		}
	}
	b.ptr.AddEdge(e)
	return b
}

// Out lays the graph out and returns its root.
func (b *Builder) Out() (Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("%d sub-process(es) not closed", len(b.stack))
	}

	width, height := draw(b.root, 100, 150)
	rect := b.root.Content.Rectangle()
	rect.Width, rect.Height = width, height
	b.root.SetBounds(&Bounds{Width: width, Height: height})
	return b.root, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) child(id string) (Node, bool) {
	for _, child := range b.ptr.Children() {
		if child.ID() == id {
			return child, true
		}
	}
	return nil, false
}

func isChild(container Node, id string) bool {
	for _, child := range container.Children() {
		if child.ID() == id {
			return true
		}
	}
	return false
}

// NewID returns a fresh node or edge id.
func NewID() string {
	return randID()
}

func randID() string {
	return "_" + strings.ToUpper(uuid.New().String())
}
