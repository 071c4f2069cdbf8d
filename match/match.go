// Package match implements an ordered, type based rule table.
//
// A Match tests its rules strictly in registration order and applies the
// first rule whose type the input is assignable to. There is no specificity
// ranking: a rule for an interface registered before a rule for one of its
// implementations shadows the latter.
//
//	m := match.Of[bpmn.Element, graph.Node]()
//	match.When(m, func(t *bpmn.UserTask) graph.Node { ... })
//	match.Ignore[*bpmn.Group](m)
//	r := m.Apply(elem)
package match

import (
	"reflect"

	"github.com/vine-io/bpmnconv/result"
)

type rule[In, Out any] struct {
	name  string
	match func(In) (result.Result[Out], bool)
}

// Match dispatches values of the In family to handlers producing Out.
type Match[In, Out any] struct {
	rules  []rule[In, Out]
	orElse func(In) Out
}

// Of creates an empty Match.
func Of[In, Out any]() *Match[In, Out] {
	return &Match[In, Out]{}
}

// When registers a rule for values assignable to Sub. The handler's return
// value is wrapped as a Success.
func When[Sub, In, Out any](m *Match[In, Out], then func(Sub) Out) *Match[In, Out] {
	return WhenResult(m, func(s Sub) result.Result[Out] {
		return result.Of(then(s))
	})
}

// WhenResult registers a rule whose handler produces its own Result.
func WhenResult[Sub, In, Out any](m *Match[In, Out], then func(Sub) result.Result[Out]) *Match[In, Out] {
	m.rules = append(m.rules, rule[In, Out]{
		name: TypeName(reflect.TypeOf((*Sub)(nil)).Elem()),
		match: func(v In) (result.Result[Out], bool) {
			s, ok := any(v).(Sub)
			if !ok {
				return result.Result[Out]{}, false
			}
			return then(s), true
		},
	})
	return m
}

// Missing registers a rule that always fails for Sub. It marks a kind that is
// known but has no conversion yet.
func Missing[Sub, In, Out any](m *Match[In, Out]) *Match[In, Out] {
	return WhenResult(m, func(s Sub) result.Result[Out] {
		return result.Fail[Out]("Not yet implemented: " + NameOf(s))
	})
}

// Ignore registers a rule that always declines Sub.
func Ignore[Sub, In, Out any](m *Match[In, Out]) *Match[In, Out] {
	return WhenResult(m, func(s Sub) result.Result[Out] {
		return result.Ignore[Out]("Ignored: " + NameOf(s))
	})
}

// OrElse sets the handler used when no rule produced a non-failure result.
// Its value is always reported as a Success.
func (m *Match[In, Out]) OrElse(then func(In) Out) *Match[In, Out] {
	m.orElse = then
	return m
}

// Rules returns the type names of the registered rules in test order.
func (m *Match[In, Out]) Rules() []string {
	names := make([]string, 0, len(m.rules))
	for _, r := range m.rules {
		names = append(names, r.name)
	}
	return names
}

// Apply runs the rules against v.
func (m *Match[In, Out]) Apply(v In) result.Result[Out] {
	if IsNil(v) {
		return result.Fail[Out]("Null")
	}

	var first *result.Result[Out]
	for _, r := range m.rules {
		out, ok := r.match(v)
		if !ok {
			continue
		}
		if out.NonFailure() {
			return out
		}
		if first == nil {
			first = &out
		}
	}

	if m.orElse != nil {
		return result.Of(m.orElse(v))
	}
	if first != nil {
		return *first
	}
	return result.Fail[Out](NameOf(v))
}

// IsNil reports whether v is a nil interface or a typed nil reference.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// NameOf returns the fully-qualified name of v's concrete type, pointer
// indirection removed.
func NameOf(v any) string {
	if v == nil {
		return "Null"
	}
	return TypeName(reflect.TypeOf(v))
}

// TypeName returns "<package path>.<name>" for named types and the type's
// string form otherwise.
func TypeName(typ reflect.Type) string {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Name() == "" || typ.PkgPath() == "" {
		return typ.String()
	}
	return typ.PkgPath() + "." + typ.Name()
}
