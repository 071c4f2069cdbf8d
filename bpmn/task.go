package bpmn

type Task struct {
	ActivityBase
}

type UserTask struct {
	ActivityBase
	Implementation  string
	PotentialOwners []string
}

// ScriptTask runs Script. ScriptFormat is the language URI.
type ScriptTask struct {
	ActivityBase
	ScriptFormat string
	Script       string
}

type BusinessRuleTask struct {
	ActivityBase
	Implementation string
	RuleFlowGroup  string
}

type ServiceTask struct {
	ActivityBase
	Implementation string
	OperationRef   string
}

// CallActivity starts the process named by CalledElement.
type CallActivity struct {
	ActivityBase
	CalledElement     string
	Independent       bool
	WaitForCompletion bool
}
