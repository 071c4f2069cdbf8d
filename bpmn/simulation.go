package bpmn

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

const (
	DistributionNormal  = "normal"
	DistributionUniform = "uniform"
	DistributionPoisson = "poisson"
)

// ElementParameters are the BPSim parameters of one flow node.
type ElementParameters struct {
	ElementRef string

	// Distribution selects which of Mean, StandardDeviation, Min and Max
	// describe the processing time.
	Distribution      string
	Mean              decimal.Decimal
	StandardDeviation decimal.Decimal
	Min               decimal.Decimal
	Max               decimal.Decimal

	Quantity     decimal.Decimal
	WorkingHours decimal.Decimal
	UnitCost     decimal.Decimal

	TimeUnit string
	Currency string
}

// writeSimulation emits a BPSim relationship holding the parameters of every
// flow node that carries some.
func writeSimulation(d *Definitions, start *etree.Element) {
	params := make([]*ElementParameters, 0)
	d.Walk(func(e Element) bool {
		if node, ok := e.(FlowNode); ok {
			if p := node.GetFlowNode().Simulation; p != nil {
				p.ElementRef = e.GetID()
				params = append(params, p)
			}
		}
		return true
	})
	if len(params) == 0 {
		return
	}

	relationship := start.CreateElement("bpmn:relationship")
	relationship.CreateAttr("type", "BPSimData")
	data := relationship.CreateElement("bpmn:extensionElements").CreateElement("bpsim:BPSimData")
	scenario := data.CreateElement("bpsim:Scenario")
	scenario.CreateAttr("id", "default")
	scenario.CreateAttr("name", "Simulationscenario")
	scenario.CreateElement("bpsim:ScenarioParameters")

	for _, p := range params {
		child := scenario.CreateElement("bpsim:ElementParameters")
		child.CreateAttr("elementRef", p.ElementRef)
		if p.TimeUnit != "" {
			child.CreateAttr("drools:timeUnit", p.TimeUnit)
		}
		if p.Currency != "" {
			child.CreateAttr("drools:currency", p.Currency)
		}

		processing := child.CreateElement("bpsim:TimeParameters").CreateElement("bpsim:ProcessingTime")
		switch p.Distribution {
		case DistributionUniform:
			dist := processing.CreateElement("bpsim:UniformDistribution")
			dist.CreateAttr("max", p.Max.String())
			dist.CreateAttr("min", p.Min.String())
		case DistributionPoisson:
			dist := processing.CreateElement("bpsim:PoissonDistribution")
			dist.CreateAttr("mean", p.Mean.String())
		default:
			dist := processing.CreateElement("bpsim:NormalDistribution")
			dist.CreateAttr("mean", p.Mean.String())
			dist.CreateAttr("standardDeviation", p.StandardDeviation.String())
		}

		resources := child.CreateElement("bpsim:ResourceParameters")
		writeFloating(p.WorkingHours, resources.CreateElement("bpsim:Availability"))
		writeFloating(p.Quantity, resources.CreateElement("bpsim:Quantity"))
		writeFloating(p.UnitCost, child.CreateElement("bpsim:CostParameters").CreateElement("bpsim:UnitCost"))
	}

	for _, p := range d.Processes {
		relationship.CreateElement("bpmn:source").SetText(p.Id)
		relationship.CreateElement("bpmn:target").SetText(p.Id)
	}
}

func writeFloating(v decimal.Decimal, start *etree.Element) {
	start.CreateElement("bpsim:FloatingParameter").CreateAttr("value", v.String())
}

func readSimulation(start *etree.Element) []*ElementParameters {
	params := make([]*ElementParameters, 0)
	for _, child := range start.FindElements(".//ElementParameters") {
		p := &ElementParameters{
			ElementRef: attrString(child, "elementRef"),
			TimeUnit:   attrString(child, "timeUnit"),
			Currency:   attrString(child, "currency"),
		}
		if processing := child.FindElement("./TimeParameters/ProcessingTime"); processing != nil {
			for _, dist := range processing.ChildElements() {
				switch dist.Tag {
				case "NormalDistribution":
					p.Distribution = DistributionNormal
					p.Mean = attrDecimal(dist, "mean")
					p.StandardDeviation = attrDecimal(dist, "standardDeviation")
				case "UniformDistribution":
					p.Distribution = DistributionUniform
					p.Min = attrDecimal(dist, "min")
					p.Max = attrDecimal(dist, "max")
				case "PoissonDistribution":
					p.Distribution = DistributionPoisson
					p.Mean = attrDecimal(dist, "mean")
				}
			}
		}
		p.WorkingHours = readFloating(child.FindElement("./ResourceParameters/Availability/FloatingParameter"))
		p.Quantity = readFloating(child.FindElement("./ResourceParameters/Quantity/FloatingParameter"))
		p.UnitCost = readFloating(child.FindElement("./CostParameters/UnitCost/FloatingParameter"))
		params = append(params, p)
	}
	return params
}

func readFloating(start *etree.Element) decimal.Decimal {
	if start == nil {
		return decimal.Zero
	}
	return attrDecimal(start, "value")
}

func attrDecimal(start *etree.Element, key string) decimal.Decimal {
	v, ok := getAttr(start.Attr, key)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func attachSimulation(d *Definitions, params []*ElementParameters) {
	if len(params) == 0 {
		return
	}
	elements := d.index()
	for _, p := range params {
		elem, ok := elements.Get(p.ElementRef)
		if !ok {
			continue
		}
		if node, ok := elem.(FlowNode); ok {
			node.GetFlowNode().Simulation = p
		}
	}
}
