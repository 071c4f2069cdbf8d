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
	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
)

// dataIO is the data interface of an activity or an event: declared inputs
// and outputs plus the associations feeding and draining them.
type dataIO struct {
	inputs   []*bpmn.DataIO
	outputs  []*bpmn.DataIO
	inAssoc  []*bpmn.DataAssociation
	outAssoc []*bpmn.DataAssociation
}

func activityIO(a *bpmn.ActivityBase) dataIO {
	io := dataIO{inAssoc: a.DataInputAssociations, outAssoc: a.DataOutputAssociations}
	if a.IOSpecification != nil {
		io.inputs = a.IOSpecification.DataInputs
		io.outputs = a.IOSpecification.DataOutputs
	}
	return io
}

func setActivityIO(a *bpmn.ActivityBase, io dataIO) {
	if len(io.inputs) > 0 || len(io.outputs) > 0 {
		a.IOSpecification = &bpmn.IOSpecification{DataInputs: io.inputs, DataOutputs: io.outputs}
	}
	a.DataInputAssociations = io.inAssoc
	a.DataOutputAssociations = io.outAssoc
}

func eventIO(e *bpmn.EventBase) dataIO {
	return dataIO{
		inputs:   e.DataInputs,
		outputs:  e.DataOutputs,
		inAssoc:  e.DataInputAssociations,
		outAssoc: e.DataOutputAssociations,
	}
}

func setEventIO(e *bpmn.EventBase, io dataIO) {
	e.DataInputs = io.inputs
	e.DataOutputs = io.outputs
	e.DataInputAssociations = io.inAssoc
	e.DataOutputAssociations = io.outAssoc
}

func (c *Context) dataType(item *bpmn.DataIO) string {
	if item.DType != "" {
		return item.DType
	}
	return c.resolver.ItemType(item.ItemSubjectRef)
}

// readAssignments reads the data interface of an element. Inputs named in
// reserved are left out of the result; the constants assigned to them are
// returned by name instead.
func (c *Context) readAssignments(io dataIO, reserved ...string) (graph.AssignmentsInfo, map[string]string) {
	info := graph.AssignmentsInfo{}
	values := make(map[string]string)

	skip := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		skip[name] = true
	}

	names := make(map[string]string)
	for _, item := range io.inputs {
		names[item.Id] = item.Name
		if skip[item.Name] {
			continue
		}
		info.Inputs = append(info.Inputs, graph.Variable{Name: item.Name, Type: c.dataType(item)})
	}
	for _, item := range io.outputs {
		names[item.Id] = item.Name
		info.Outputs = append(info.Outputs, graph.Variable{Name: item.Name, Type: c.dataType(item)})
	}
	nameOf := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	for _, a := range io.inAssoc {
		name := nameOf(a.TargetRef)
		switch {
		case a.SourceRef != "":
			if skip[name] {
				continue
			}
			info.Assignments = append(info.Assignments, graph.Assignment{
				Direction:  graph.AssignmentIn,
				ProcessVar: a.SourceRef,
				DataVar:    name,
			})
		case len(a.Assignments) > 0:
			if skip[name] {
				values[name] = a.Assignments[0].From
				continue
			}
			info.Assignments = append(info.Assignments, graph.Assignment{
				Direction: graph.AssignmentIn,
				DataVar:   name,
				Constant:  a.Assignments[0].From,
			})
		}
	}
	for _, a := range io.outAssoc {
		if a.TargetRef == "" {
			continue
		}
		info.Assignments = append(info.Assignments, graph.Assignment{
			Direction:  graph.AssignmentOut,
			DataVar:    nameOf(a.SourceRef),
			ProcessVar: a.TargetRef,
		})
	}

	return info, values
}

func inputID(id, name string) string { return id + "_" + name + "InputX" }

func outputID(id, name string) string { return id + "_" + name + "OutputX" }

// writeAssignments writes the data interface of the element id.
func (c *Context) writeAssignments(id string, info graph.AssignmentsInfo) dataIO {
	io := dataIO{}
	for _, v := range info.Inputs {
		io.inputs = append(io.inputs, c.newDataIO(inputID(id, v.Name), v))
	}
	for _, v := range info.Outputs {
		io.outputs = append(io.outputs, c.newDataIO(outputID(id, v.Name), v))
	}

	for _, as := range info.Assignments {
		switch {
		case as.Direction == graph.AssignmentOut:
			io.outAssoc = append(io.outAssoc, &bpmn.DataAssociation{
				SourceRef: outputID(id, as.DataVar),
				TargetRef: as.ProcessVar,
			})
		case as.IsConstant():
			io.constant(inputID(id, as.DataVar), as.Constant)
		default:
			io.inAssoc = append(io.inAssoc, &bpmn.DataAssociation{
				SourceRef: as.ProcessVar,
				TargetRef: inputID(id, as.DataVar),
			})
		}
	}
	return io
}

func (c *Context) newDataIO(id string, v graph.Variable) *bpmn.DataIO {
	item := &bpmn.DataIO{Id: id, Name: v.Name, DType: v.Type}
	if v.Type != "" {
		item.ItemSubjectRef = c.itemRef("_"+id+"Item", v.Type)
	}
	return item
}

// constant feeds value to the data input target.
func (io *dataIO) constant(target, value string) {
	io.inAssoc = append(io.inAssoc, &bpmn.DataAssociation{
		TargetRef:   target,
		Assignments: []*bpmn.Assignment{{From: value, To: target}},
	})
}
