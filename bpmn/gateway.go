package bpmn

const (
	GatewayDirectionUnspecified = "Unspecified"
	GatewayDirectionConverging  = "Converging"
	GatewayDirectionDiverging   = "Diverging"
)

type Gateway interface {
	FlowNode
	GetGateway() *GatewayBase
}

type GatewayBase struct {
	FlowNodeBase
	Direction string
}

func (g *GatewayBase) GetGateway() *GatewayBase { return g }

// ExclusiveGateway takes the Default flow when no condition holds.
type ExclusiveGateway struct {
	GatewayBase
	Default string
}

type InclusiveGateway struct {
	GatewayBase
	Default string
}

type ParallelGateway struct {
	GatewayBase
}

type EventBasedGateway struct {
	GatewayBase
}

type ComplexGateway struct {
	GatewayBase
	Default string
}
