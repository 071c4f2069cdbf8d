package graph

import (
	"fmt"

	json "github.com/json-iterator/go"
)

type nodeEnvelope struct {
	Id         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Bounds     *Bounds         `json:"bounds,omitempty"`
	Definition json.RawMessage `json:"definition"`
	Children   []*nodeEnvelope `json:"children,omitempty"`
	Edges      []*edgeEnvelope `json:"edges,omitempty"`
}

type edgeEnvelope struct {
	Id         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Source     string          `json:"source"`
	Target     string          `json:"target"`
	Definition json.RawMessage `json:"definition"`
}

// MarshalNode encodes root and everything below it. Each element is wrapped
// in an envelope naming its kind, so UnmarshalNode can restore the concrete
// definition types.
func MarshalNode(root Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("marshal nil node")
	}
	envelope, err := encodeNode(root)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope, "", "  ")
}

func encodeNode(n Node) (*nodeEnvelope, error) {
	def, err := json.Marshal(n.Definition())
	if err != nil {
		return nil, fmt.Errorf("encode node %s: %v", n.ID(), err)
	}
	envelope := &nodeEnvelope{Id: n.ID(), Kind: n.Kind(), Bounds: n.Bounds(), Definition: def}
	for _, child := range n.Children() {
		c, err := encodeNode(child)
		if err != nil {
			return nil, err
		}
		envelope.Children = append(envelope.Children, c)
	}
	for _, e := range n.Edges() {
		def, err := json.Marshal(e.Definition())
		if err != nil {
			return nil, fmt.Errorf("encode edge %s: %v", e.ID(), err)
		}
		envelope.Edges = append(envelope.Edges, &edgeEnvelope{
			Id:         e.ID(),
			Kind:       e.Kind(),
			Source:     e.SourceID(),
			Target:     e.TargetID(),
			Definition: def,
		})
	}
	return envelope, nil
}

// UnmarshalNode decodes a tree written by MarshalNode.
func UnmarshalNode(data []byte) (Node, error) {
	envelope := &nodeEnvelope{}
	if err := json.Unmarshal(data, envelope); err != nil {
		return nil, fmt.Errorf("decode graph: %v", err)
	}
	return decodeNode(envelope)
}

func decodeNode(envelope *nodeEnvelope) (Node, error) {
	def := NewDefinition(envelope.Kind)
	if def == nil || envelope.Kind.IsEdge() {
		return nil, fmt.Errorf("node %s: unknown kind %q", envelope.Id, envelope.Kind)
	}
	if len(envelope.Definition) > 0 {
		if err := json.Unmarshal(envelope.Definition, def); err != nil {
			return nil, fmt.Errorf("decode node %s: %v", envelope.Id, err)
		}
	}

	n := Wrap(envelope.Id, def)
	n.SetBounds(envelope.Bounds)
	for _, c := range envelope.Children {
		child, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	for _, e := range envelope.Edges {
		def := NewDefinition(e.Kind)
		if def == nil || !e.Kind.IsEdge() {
			return nil, fmt.Errorf("edge %s: unknown kind %q", e.Id, e.Kind)
		}
		if len(e.Definition) > 0 {
			if err := json.Unmarshal(e.Definition, def); err != nil {
				return nil, fmt.Errorf("decode edge %s: %v", e.Id, err)
			}
		}
		n.AddEdge(WrapEdge(e.Id, def, e.Source, e.Target))
	}
	return n, nil
}
