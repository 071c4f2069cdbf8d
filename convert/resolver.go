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
	"github.com/tidwall/btree"
	"github.com/vine-io/bpmnconv/bpmn"
)

const defaultDataType = "Object"

// DefinitionResolver answers the lookups an inbound pass makes into the
// definitions-level declarations of a document: item definition types,
// message and signal names and data object declarations. It is built once
// before conversion and only read afterwards, so concurrent passes may
// share it.
type DefinitionResolver struct {
	items       *btree.Map[string, *bpmn.ItemDefinition]
	messages    *btree.Map[string, *bpmn.Message]
	signals     *btree.Map[string, *bpmn.Signal]
	dataObjects *btree.Map[string, *bpmn.DataObject]
}

func NewDefinitionResolver(defs *bpmn.Definitions) *DefinitionResolver {
	r := &DefinitionResolver{
		items:       &btree.Map[string, *bpmn.ItemDefinition]{},
		messages:    &btree.Map[string, *bpmn.Message]{},
		signals:     &btree.Map[string, *bpmn.Signal]{},
		dataObjects: &btree.Map[string, *bpmn.DataObject]{},
	}
	if defs == nil {
		return r
	}

	for _, item := range defs.ItemDefinitions {
		r.items.Set(item.Id, item)
	}
	for _, message := range defs.Messages {
		r.messages.Set(message.Id, message)
	}
	for _, signal := range defs.Signals {
		r.signals.Set(signal.Id, signal)
	}
	defs.Walk(func(e bpmn.Element) bool {
		if do, ok := e.(*bpmn.DataObject); ok {
			r.dataObjects.Set(do.Id, do)
		}
		return true
	})

	return r
}

// ItemType returns the structure of the item definition ref, or "" when
// ref is not declared.
func (r *DefinitionResolver) ItemType(ref string) string {
	if item, ok := r.items.Get(ref); ok {
		return item.StructureRef
	}
	return ""
}

// MessageName returns the name of the message ref. An undeclared ref is
// returned unchanged.
func (r *DefinitionResolver) MessageName(ref string) string {
	if message, ok := r.messages.Get(ref); ok && message.Name != "" {
		return message.Name
	}
	return ref
}

// SignalName returns the name of the signal ref. An undeclared ref is
// returned unchanged.
func (r *DefinitionResolver) SignalName(ref string) string {
	if signal, ok := r.signals.Get(ref); ok && signal.Name != "" {
		return signal.Name
	}
	return ref
}

func (r *DefinitionResolver) DataObject(id string) (*bpmn.DataObject, bool) {
	return r.dataObjects.Get(id)
}

// DataObjectType returns the type of the data object id, Object when it is
// not declared or not typed.
func (r *DefinitionResolver) DataObjectType(id string) string {
	do, ok := r.dataObjects.Get(id)
	if !ok {
		return defaultDataType
	}
	if dtype := r.ItemType(do.ItemSubjectRef); dtype != "" {
		return dtype
	}
	return defaultDataType
}
