package graph

import (
	"fmt"
	"net/url"
	"strings"
)

// Variable is a named, typed data slot.
type Variable struct {
	Name string
	Type string
}

func (v Variable) String() string {
	if v.Type == "" {
		return v.Name
	}
	return v.Name + ":" + v.Type
}

func parseVariable(text string) Variable {
	name, dtype, _ := strings.Cut(text, ":")
	return Variable{Name: strings.TrimSpace(name), Type: strings.TrimSpace(dtype)}
}

// ProcessVariables is a list of variables with the text form
// "name:Type,name2:Type2".
type ProcessVariables []Variable

func (vs ProcessVariables) String() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, ",")
}

// Get returns the variable called name.
func (vs ProcessVariables) Get(name string) (Variable, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

func ParseProcessVariables(text string) ProcessVariables {
	vs := ProcessVariables{}
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		vs = append(vs, parseVariable(part))
	}
	return vs
}

type AssignmentDirection int32

const (
	AssignmentIn AssignmentDirection = iota + 1
	AssignmentOut
)

// Assignment maps a process variable or a constant onto a data input, or a
// data output onto a process variable.
type Assignment struct {
	Direction  AssignmentDirection
	DataVar    string
	ProcessVar string
	Constant   string
}

// IsConstant reports whether the assignment feeds a constant to an input.
func (a Assignment) IsConstant() bool {
	return a.Direction == AssignmentIn && a.ProcessVar == ""
}

func (a Assignment) String() string {
	switch {
	case a.Direction == AssignmentOut:
		return "[dout]" + a.DataVar + "->" + a.ProcessVar
	case a.IsConstant():
		return "[din]" + a.DataVar + "=" + url.QueryEscape(a.Constant)
	default:
		return "[din]" + a.ProcessVar + "->" + a.DataVar
	}
}

func parseAssignment(text string) (Assignment, error) {
	switch {
	case strings.HasPrefix(text, "[din]"):
		body := strings.TrimPrefix(text, "[din]")
		if from, to, ok := strings.Cut(body, "->"); ok {
			return Assignment{Direction: AssignmentIn, ProcessVar: from, DataVar: to}, nil
		}
		if to, value, ok := strings.Cut(body, "="); ok {
			constant, err := url.QueryUnescape(value)
			if err != nil {
				return Assignment{}, fmt.Errorf("bad constant in %q: %v", text, err)
			}
			return Assignment{Direction: AssignmentIn, DataVar: to, Constant: constant}, nil
		}
	case strings.HasPrefix(text, "[dout]"):
		body := strings.TrimPrefix(text, "[dout]")
		if from, to, ok := strings.Cut(body, "->"); ok {
			return Assignment{Direction: AssignmentOut, DataVar: from, ProcessVar: to}, nil
		}
	}
	return Assignment{}, fmt.Errorf("invalid assignment %q", text)
}

// AssignmentsInfo describes the data inputs, data outputs and assignments of
// a node. Its text form has five '|' separated sections: single input,
// input set, single output, output set and assignments, for example
// "|approver:String||approved:Boolean|[din]manager->approver,[dout]approved->ok".
type AssignmentsInfo struct {
	Inputs      []Variable
	Outputs     []Variable
	Assignments []Assignment
}

func (a AssignmentsInfo) IsEmpty() bool {
	return len(a.Inputs) == 0 && len(a.Outputs) == 0 && len(a.Assignments) == 0
}

// Input returns the assignment feeding the data input called name.
func (a AssignmentsInfo) Input(name string) (Assignment, bool) {
	for _, as := range a.Assignments {
		if as.Direction == AssignmentIn && as.DataVar == name {
			return as, true
		}
	}
	return Assignment{}, false
}

func (a AssignmentsInfo) String() string {
	if a.IsEmpty() {
		return ""
	}
	assignments := make([]string, 0, len(a.Assignments))
	for _, as := range a.Assignments {
		assignments = append(assignments, as.String())
	}
	return strings.Join([]string{
		"",
		ProcessVariables(a.Inputs).String(),
		"",
		ProcessVariables(a.Outputs).String(),
		strings.Join(assignments, ","),
	}, "|")
}

func ParseAssignmentsInfo(text string) (AssignmentsInfo, error) {
	info := AssignmentsInfo{}
	if text == "" {
		return info, nil
	}

	sections := strings.Split(text, "|")
	if len(sections) != 5 {
		return info, fmt.Errorf("assignments info needs 5 sections, got %d", len(sections))
	}
	info.Inputs = append(ParseProcessVariables(sections[0]), ParseProcessVariables(sections[1])...)
	info.Outputs = append(ParseProcessVariables(sections[2]), ParseProcessVariables(sections[3])...)
	for _, part := range strings.Split(sections[4], ",") {
		if part == "" {
			continue
		}
		as, err := parseAssignment(part)
		if err != nil {
			return info, err
		}
		info.Assignments = append(info.Assignments, as)
	}
	return info, nil
}
