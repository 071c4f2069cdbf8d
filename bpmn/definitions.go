package bpmn

import (
	"github.com/tidwall/btree"
)

// Definitions is the root of a document.
type Definitions struct {
	Id              string
	TargetNamespace string
	Exporter        string
	ExporterVersion string

	ItemDefinitions []*ItemDefinition
	Messages        []*Message
	Signals         []*Signal
	Processes       []*Process
}

func NewDefinitions() *Definitions {
	return &Definitions{
		Id:              "Definitions_" + randName(),
		TargetNamespace: DefaultTargetNamespace,
		Exporter:        DefaultExporter,
		ExporterVersion: DefaultExporterVersion,
	}
}

// Process returns the process with the given id.
func (d *Definitions) Process(id string) (*Process, bool) {
	for _, p := range d.Processes {
		if p.Id == id {
			return p, true
		}
	}
	return nil, false
}

func (d *Definitions) ItemDefinition(id string) (*ItemDefinition, bool) {
	for _, item := range d.ItemDefinitions {
		if item.Id == id {
			return item, true
		}
	}
	return nil, false
}

// AddItemDefinition appends item unless an item with the same id exists.
func (d *Definitions) AddItemDefinition(item *ItemDefinition) {
	if _, ok := d.ItemDefinition(item.Id); !ok {
		d.ItemDefinitions = append(d.ItemDefinitions, item)
	}
}

func (d *Definitions) AddMessage(m *Message) {
	for _, item := range d.Messages {
		if item.Id == m.Id {
			return
		}
	}
	d.Messages = append(d.Messages, m)
}

func (d *Definitions) AddSignal(s *Signal) {
	for _, item := range d.Signals {
		if item.Id == s.Id {
			return
		}
	}
	d.Signals = append(d.Signals, s)
}

// Walk visits every element of every process depth first: the process, its
// lanes, flow elements (descending into sub-processes) and artifacts.
// Returning false from fn stops the walk.
func (d *Definitions) Walk(fn func(e Element) bool) {
	for _, p := range d.Processes {
		if !fn(p) || !walkContainer(p, fn) {
			return
		}
	}
}

func walkContainer(c Container, fn func(e Element) bool) bool {
	base := c.GetContainer()
	for _, lane := range base.Lanes() {
		if !fn(lane) {
			return false
		}
	}
	for _, elem := range base.FlowElements {
		if !fn(elem) {
			return false
		}
		if sub, ok := elem.(Container); ok {
			if !walkContainer(sub, fn) {
				return false
			}
		}
	}
	for _, elem := range base.Artifacts {
		if !fn(elem) {
			return false
		}
	}
	return true
}

// Find returns the element with the given id.
func (d *Definitions) Find(id string) (Element, bool) {
	var found Element
	d.Walk(func(e Element) bool {
		if e.GetID() == id {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// index maps element ids to elements.
func (d *Definitions) index() *btree.Map[string, Element] {
	elements := &btree.Map[string, Element]{}
	d.Walk(func(e Element) bool {
		if e.GetID() != "" {
			elements.Set(e.GetID(), e)
		}
		return true
	})
	return elements
}
