package bpmn

// Event is a start, end or intermediate event.
type Event interface {
	FlowNode
	GetEvent() *EventBase
}

// EventBase holds the event definitions and the data a catch event produces
// (outputs) or a throw event consumes (inputs).
type EventBase struct {
	FlowNodeBase
	DataInputs             []*DataIO
	DataOutputs            []*DataIO
	DataInputAssociations  []*DataAssociation
	DataOutputAssociations []*DataAssociation
	Definitions            []EventDefinition
}

func (e *EventBase) GetEvent() *EventBase { return e }

// EventDefinition returns the first event definition, or nil for a none
// event.
func (e *EventBase) EventDefinition() EventDefinition {
	if len(e.Definitions) == 0 {
		return nil
	}
	return e.Definitions[0]
}

type StartEvent struct {
	EventBase
	IsInterrupting bool
}

type EndEvent struct {
	EventBase
}

type IntermediateCatchEvent struct {
	EventBase
}

type IntermediateThrowEvent struct {
	EventBase
}

type EventDefinition interface {
	GetID() string
}

type MessageEventDefinition struct {
	Id         string
	MessageRef string
}

func (d *MessageEventDefinition) GetID() string { return d.Id }

type SignalEventDefinition struct {
	Id        string
	SignalRef string
}

func (d *SignalEventDefinition) GetID() string { return d.Id }

type TimerEventDefinition struct {
	Id           string
	TimeDuration *FormalExpression
	TimeDate     *FormalExpression
	TimeCycle    *FormalExpression
}

func (d *TimerEventDefinition) GetID() string { return d.Id }

type TerminateEventDefinition struct {
	Id string
}

func (d *TerminateEventDefinition) GetID() string { return d.Id }

// UnknownEventDefinition keeps an event definition that has no model, such
// as an error or escalation definition.
type UnknownEventDefinition struct {
	Id  string
	Tag string
}

func (d *UnknownEventDefinition) GetID() string { return d.Id }
