package graph

// Bounds is the rectangle of a node, relative to its parent's origin.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Node is an element of the graph. Containers hold child nodes and the edges
// connecting them.
type Node interface {
	ID() string
	Kind() Kind
	Definition() Definition
	Bounds() *Bounds
	SetBounds(*Bounds)
	Parent() Node
	Children() []Node
	AddChild(Node)
	RemoveChild(id string) bool
	Edges() []Edge
	AddEdge(Edge)

	setParent(Node)
}

// TypedNode carries a definition of type T. The runtime type of a node thus
// names its definition, which is what outbound dispatch matches on.
type TypedNode[T Definition] struct {
	Id      string
	Content T

	bounds   *Bounds
	parent   Node
	children []Node
	edges    []Edge
}

func NewNode[T Definition](id string, content T) *TypedNode[T] {
	return &TypedNode[T]{Id: id, Content: content}
}

func (n *TypedNode[T]) ID() string { return n.Id }

func (n *TypedNode[T]) Kind() Kind { return n.Content.Kind() }

func (n *TypedNode[T]) Definition() Definition { return n.Content }

func (n *TypedNode[T]) Bounds() *Bounds { return n.bounds }

func (n *TypedNode[T]) SetBounds(b *Bounds) { n.bounds = b }

func (n *TypedNode[T]) Parent() Node { return n.parent }

func (n *TypedNode[T]) setParent(p Node) { n.parent = p }

func (n *TypedNode[T]) Children() []Node { return n.children }

// AddChild appends child and makes n its parent. A child already attached
// elsewhere is detached first.
func (n *TypedNode[T]) AddChild(child Node) {
	if old := child.Parent(); old != nil {
		old.RemoveChild(child.ID())
	}
	child.setParent(n)
	n.children = append(n.children, child)
}

func (n *TypedNode[T]) RemoveChild(id string) bool {
	for i, child := range n.children {
		if child.ID() == id {
			child.setParent(nil)
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

func (n *TypedNode[T]) Edges() []Edge { return n.edges }

func (n *TypedNode[T]) AddEdge(e Edge) { n.edges = append(n.edges, e) }

// Child returns the direct child with the given id.
func (n *TypedNode[T]) Child(id string) (Node, bool) {
	for _, child := range n.children {
		if child.ID() == id {
			return child, true
		}
	}
	return nil, false
}

// Edge connects two nodes of the same graph by id.
type Edge interface {
	ID() string
	Kind() Kind
	Definition() Definition
	SourceID() string
	TargetID() string
	Connect(source, target string)
}

type TypedEdge[T Definition] struct {
	Id      string
	Content T
	Source  string
	Target  string
}

func NewEdge[T Definition](id string, content T, source, target string) *TypedEdge[T] {
	return &TypedEdge[T]{Id: id, Content: content, Source: source, Target: target}
}

func (e *TypedEdge[T]) ID() string { return e.Id }

func (e *TypedEdge[T]) Kind() Kind { return e.Content.Kind() }

func (e *TypedEdge[T]) Definition() Definition { return e.Content }

func (e *TypedEdge[T]) SourceID() string { return e.Source }

func (e *TypedEdge[T]) TargetID() string { return e.Target }

func (e *TypedEdge[T]) Connect(source, target string) {
	e.Source = source
	e.Target = target
}

// Walk visits root and its descendants depth first, parents before
// children. Returning false from fn stops the walk.
func Walk(root Node, fn func(Node) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, child := range root.Children() {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id under root, root included.
func Find(root Node, id string) (Node, bool) {
	var found Node
	Walk(root, func(n Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// FindEdge returns the edge with the given id held by root or any of its
// descendants.
func FindEdge(root Node, id string) (Edge, bool) {
	var found Edge
	Walk(root, func(n Node) bool {
		for _, e := range n.Edges() {
			if e.ID() == id {
				found = e
				return false
			}
		}
		return true
	})
	return found, found != nil
}

// AbsoluteBounds returns the bounds of n translated to the root's origin.
func AbsoluteBounds(n Node) *Bounds {
	b := n.Bounds()
	if b == nil {
		return nil
	}
	abs := *b
	for p := n.Parent(); p != nil; p = p.Parent() {
		if pb := p.Bounds(); pb != nil {
			abs.X += pb.X
			abs.Y += pb.Y
		}
	}
	return &abs
}
