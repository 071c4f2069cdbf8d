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

// Package convert translates process graphs into BPMN documents and back.
//
// Every element family has one rule in an ordered dispatcher (see package
// match). Containers, the process and its sub-processes, are converted by a
// small state machine that classifies the container, converts the container
// itself, then its children and finally the edges connecting them.
package convert

import (
	"github.com/tidwall/btree"
	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/match"
	"github.com/vine-io/bpmnconv/result"
)

// Context is the state of one conversion pass. It indexes what the pass has
// converted so far, so that later siblings can reference it. A Context is
// owned by a single goroutine and must not be reused across passes.
type Context struct {
	factory  graph.Factory
	resolver *DefinitionResolver

	// inbound
	nodes   *btree.Map[string, graph.Node]
	ignored *btree.Set[string]
	origins []bpmn.Point

	// outbound
	elements *btree.Map[string, bpmn.Element]
	defs     *bpmn.Definitions
	declared []bpmn.Element

	inbound      *match.Match[bpmn.Element, graph.Node]
	inboundEdge  *match.Match[bpmn.Element, graph.Edge]
	classifier   *match.Match[bpmn.Container, nodeReader]
	outbound     *match.Match[graph.Node, bpmn.Element]
	outboundEdge *match.Match[graph.Edge, bpmn.Element]
	outClassify  *match.Match[graph.Node, elementWriter]
}

// NewContext creates the context of one pass. resolver may be nil for an
// outbound pass.
func NewContext(factory graph.Factory, resolver *DefinitionResolver) *Context {
	if factory == nil {
		factory = graph.DefaultFactory{}
	}
	if resolver == nil {
		resolver = NewDefinitionResolver(nil)
	}
	c := &Context{
		factory:  factory,
		resolver: resolver,
		nodes:    &btree.Map[string, graph.Node]{},
		ignored:  &btree.Set[string]{},
		elements: &btree.Map[string, bpmn.Element]{},
		defs:     &bpmn.Definitions{},
	}
	c.inbound = c.inboundRules()
	c.inboundEdge = c.inboundEdgeRules()
	c.classifier = c.classifyRules()
	c.outbound = c.outboundRules()
	c.outboundEdge = c.outboundEdgeRules()
	c.outClassify = c.outboundClassifyRules()
	return c
}

func (c *Context) Factory() graph.Factory { return c.factory }

func (c *Context) Resolver() *DefinitionResolver { return c.resolver }

// Node returns a node converted earlier in the pass.
func (c *Context) Node(id string) (graph.Node, bool) {
	return c.nodes.Get(id)
}

// Element returns a document element written earlier in the pass.
func (c *Context) Element(id string) (bpmn.Element, bool) {
	return c.elements.Get(id)
}

// Definitions returns the item definitions, messages and signals the
// outbound pass declared.
func (c *Context) Definitions() *bpmn.Definitions { return c.defs }

// ToNode converts a process or a flow element.
func (c *Context) ToNode(e bpmn.Element) result.Result[graph.Node] {
	return c.inbound.Apply(e)
}

// ToElement converts a node into a document element.
func (c *Context) ToElement(n graph.Node) result.Result[bpmn.Element] {
	return c.outbound.Apply(n)
}

func (c *Context) addNode(n graph.Node) {
	c.nodes.Set(n.ID(), n)
}

// ignore records an element skipped by the pass.
func (c *Context) ignore(id string) {
	c.ignored.Insert(id)
}

func (c *Context) isIgnored(id string) bool {
	return c.ignored.Contains(id)
}

func (c *Context) addElement(e bpmn.Element) {
	c.elements.Set(e.GetID(), e)
}

// origin is the absolute position of the container being converted.
func (c *Context) origin() bpmn.Point {
	if len(c.origins) == 0 {
		return bpmn.Point{}
	}
	return c.origins[len(c.origins)-1]
}

func (c *Context) pushOrigin(b *bpmn.Bounds) {
	p := c.origin()
	if b != nil {
		p = bpmn.Point{X: b.X, Y: b.Y}
	}
	c.origins = append(c.origins, p)
}

func (c *Context) popOrigin() {
	if len(c.origins) > 0 {
		c.origins = c.origins[:len(c.origins)-1]
	}
}

// declare queues an element the current container must hold next to the
// element being written, such as the declaration behind a data object
// reference.
func (c *Context) declare(e bpmn.Element) {
	c.declared = append(c.declared, e)
}

func (c *Context) takeDeclared() []bpmn.Element {
	declared := c.declared
	c.declared = nil
	return declared
}

// itemRef declares an item definition and returns its id.
func (c *Context) itemRef(id, structure string) string {
	c.defs.AddItemDefinition(&bpmn.ItemDefinition{Id: id, StructureRef: structure})
	return id
}

// messageRef declares the message called name and returns its id.
func (c *Context) messageRef(name string) string {
	if name == "" {
		return ""
	}
	id := "_" + name + "Message"
	c.defs.AddMessage(&bpmn.Message{
		Id:      id,
		Name:    name,
		ItemRef: c.itemRef("_"+name+"Type", ""),
	})
	return id
}

// signalRef declares the signal called name and returns its id.
func (c *Context) signalRef(name string) string {
	if name == "" {
		return ""
	}
	id := "_" + name + "Signal"
	c.defs.AddSignal(&bpmn.Signal{Id: id, Name: name})
	return id
}
