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
	"strconv"
	"strings"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/result"
)

// drools metaData names
const (
	metaElementName = "elementname"
	metaAsync       = "customAsync"
	metaAutoStart   = "customAutoStart"
	metaDescription = "customDescription"
)

const defaultLanguage = "java"

func readGeneral(e *bpmn.BaseElement) graph.GeneralSet {
	name := e.Name
	if v, ok := e.Extension.Meta(metaElementName); ok && v != "" {
		name = v
	}
	return graph.GeneralSet{Name: name, Documentation: e.Documentation}
}

func writeGeneral(g *graph.GeneralSet, e *bpmn.BaseElement) {
	e.Name = g.Name
	e.Documentation = g.Documentation
	if g.Name != "" {
		e.Extensions().SetMeta(metaElementName, g.Name)
	}
}

func readMetaBool(e *bpmn.BaseElement, name string) bool {
	v, ok := e.Extension.Meta(name)
	if !ok {
		return false
	}
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

func writeMetaBool(e *bpmn.BaseElement, name string, v bool) {
	if v {
		e.Extensions().SetMeta(name, "true")
	}
}

func readMeta(e *bpmn.BaseElement, name string) string {
	v, _ := e.Extension.Meta(name)
	return v
}

func writeMeta(e *bpmn.BaseElement, name, v string) {
	if v != "" {
		e.Extensions().SetMeta(name, v)
	}
}

func readStyle(kind graph.Kind, s *bpmn.ShapeStyle) graph.StyleSet {
	style := graph.DefaultStyle(kind.Family())
	if s == nil {
		return style
	}
	if s.BackgroundColor != "" {
		style.Background.BgColor = s.BackgroundColor
	}
	if s.BorderColor != "" {
		style.Background.BorderColor = s.BorderColor
	}
	if s.BorderSize > 0 {
		style.Background.BorderSize = s.BorderSize
	}
	if s.FontFamily != "" {
		style.Font.FontFamily = s.FontFamily
	}
	if s.FontColor != "" {
		style.Font.FontColor = s.FontColor
	}
	if s.FontSize > 0 {
		style.Font.FontSize = s.FontSize
	}
	return style
}

// writeStyle keeps the attributes that differ from the family default. It
// returns nil when none does.
func writeStyle(kind graph.Kind, s *graph.StyleSet) *bpmn.ShapeStyle {
	def := graph.DefaultStyle(kind.Family())
	style := &bpmn.ShapeStyle{}
	if s.Background.BgColor != def.Background.BgColor {
		style.BackgroundColor = s.Background.BgColor
	}
	if s.Background.BorderColor != def.Background.BorderColor {
		style.BorderColor = s.Background.BorderColor
	}
	if s.Background.BorderSize != def.Background.BorderSize {
		style.BorderSize = s.Background.BorderSize
	}
	if s.Font.FontFamily != def.Font.FontFamily {
		style.FontFamily = s.Font.FontFamily
	}
	if s.Font.FontColor != def.Font.FontColor {
		style.FontColor = s.Font.FontColor
	}
	if s.Font.FontSize != def.Font.FontSize {
		style.FontSize = s.Font.FontSize
	}
	if style.IsZero() {
		return nil
	}
	return style
}

// readShape sets the style, bounds and dimensions of n from the diagram
// information of its element. Bounds become relative to the container
// being converted.
func (c *Context) readShape(n graph.Node, info *bpmn.ShapeInfo) result.Result[graph.Node] {
	def := n.Definition()
	*def.Styles() = readStyle(n.Kind(), info.Style)
	if info.Bounds == nil {
		return result.Of(n)
	}

	o := c.origin()
	b := info.Bounds
	r := graph.NewBounds(b.X-o.X, b.Y-o.Y, b.Width, b.Height)
	if !r.IsSuccess() {
		return result.Failf[graph.Node]("%s: %s", n.ID(), r.Reason())
	}
	n.SetBounds(r.Value())

	switch d := def.(type) {
	case graph.Circular:
		d.Circle().Radius = b.Width / 2
	case graph.Rectangular:
		rect := d.Rectangle()
		rect.Width, rect.Height = b.Width, b.Height
	}
	return result.Of(n)
}

// writeShape sets the absolute bounds and the style of a shape.
func writeShape(n graph.Node, info *bpmn.ShapeInfo) {
	if b := graph.AbsoluteBounds(n); b != nil {
		info.Bounds = &bpmn.Bounds{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	}
	info.Style = writeStyle(n.Kind(), n.Definition().Styles())
}

// readElement fills the general set and the shape of n.
func (c *Context) readElement(n graph.Node, e *bpmn.BaseElement, info *bpmn.ShapeInfo) result.Result[graph.Node] {
	*n.Definition().GeneralSet() = readGeneral(e)
	return c.readShape(n, info)
}

// readFlowNode is readElement plus the simulation parameters.
func (c *Context) readFlowNode(n graph.Node, fn *bpmn.FlowNodeBase) result.Result[graph.Node] {
	if sim, ok := n.Definition().(graph.Simulated); ok {
		r := readSimulation(fn.Simulation)
		if !r.IsSuccess() {
			return result.Failf[graph.Node]("%s: %s", n.ID(), r.Reason())
		}
		*sim.Simulation() = r.Value()
	}
	return c.readElement(n, &fn.BaseElement, &fn.ShapeInfo)
}

func writeElement(n graph.Node, e *bpmn.BaseElement, info *bpmn.ShapeInfo) {
	e.Id = n.ID()
	writeGeneral(n.Definition().GeneralSet(), e)
	writeShape(n, info)
}

func writeFlowNode(n graph.Node, fn *bpmn.FlowNodeBase) {
	writeElement(n, &fn.BaseElement, &fn.ShapeInfo)
	if sim, ok := n.Definition().(graph.Simulated); ok {
		fn.Simulation = writeSimulation(sim.Simulation())
	}
}

// readSimulation returns the default set when the element has no BPSim
// parameters.
func readSimulation(p *bpmn.ElementParameters) result.Result[graph.SimulationSet] {
	if p == nil {
		return result.Of(graph.DefaultSimulationSet())
	}
	set := graph.SimulationSet{
		Distribution:      p.Distribution,
		Mean:              p.Mean,
		StandardDeviation: p.StandardDeviation,
		Min:               p.Min,
		Max:               p.Max,
		Quantity:          p.Quantity,
		WorkingHours:      p.WorkingHours,
		UnitCost:          p.UnitCost,
		TimeUnit:          p.TimeUnit,
		Currency:          p.Currency,
	}
	if set.Distribution == "" {
		set.Distribution = graph.DistributionNormal
	}
	if set.TimeUnit == "" {
		set.TimeUnit = graph.DefaultSimulationSet().TimeUnit
	}
	return graph.NewSimulationSet(set)
}

func writeSimulation(set *graph.SimulationSet) *bpmn.ElementParameters {
	if set.IsDefault() {
		return nil
	}
	return &bpmn.ElementParameters{
		Distribution:      set.Distribution,
		Mean:              set.Mean,
		StandardDeviation: set.StandardDeviation,
		Min:               set.Min,
		Max:               set.Max,
		Quantity:          set.Quantity,
		WorkingHours:      set.WorkingHours,
		UnitCost:          set.UnitCost,
		TimeUnit:          set.TimeUnit,
		Currency:          set.Currency,
	}
}

func readScripts(scripts []*bpmn.Script) []graph.ScriptTypeValue {
	var values []graph.ScriptTypeValue
	for _, s := range scripts {
		language := defaultLanguage
		if s.Format != "" {
			language = bpmn.LanguageName(s.Format)
		}
		values = append(values, graph.ScriptTypeValue{Language: language, Script: s.Body})
	}
	return values
}

func writeScripts(values []graph.ScriptTypeValue) []*bpmn.Script {
	var scripts []*bpmn.Script
	for _, v := range values {
		if v.IsEmpty() {
			continue
		}
		scripts = append(scripts, &bpmn.Script{Format: bpmn.LanguageURI(v.Language), Body: v.Script})
	}
	return scripts
}

// readActions returns the on-entry and on-exit scripts of e.
func readActions(e *bpmn.BaseElement) ([]graph.ScriptTypeValue, []graph.ScriptTypeValue) {
	if e.Extension == nil {
		return nil, nil
	}
	return readScripts(e.Extension.OnEntry), readScripts(e.Extension.OnExit)
}

func writeActions(e *bpmn.BaseElement, onEntry, onExit []graph.ScriptTypeValue) {
	entry, exit := writeScripts(onEntry), writeScripts(onExit)
	if len(entry) == 0 && len(exit) == 0 {
		return
	}
	ext := e.Extensions()
	ext.OnEntry = entry
	ext.OnExit = exit
}

// readExpression returns an empty script in language when expr is absent.
func readExpression(expr *bpmn.FormalExpression, language string) graph.ScriptTypeValue {
	if expr == nil {
		return graph.ScriptTypeValue{Language: language}
	}
	v := graph.ScriptTypeValue{Language: language, Script: expr.Body}
	if expr.Language != "" {
		v.Language = bpmn.LanguageName(expr.Language)
	}
	return v
}

func writeExpression(v graph.ScriptTypeValue) *bpmn.FormalExpression {
	if v.IsEmpty() {
		return nil
	}
	return &bpmn.FormalExpression{Language: bpmn.LanguageURI(v.Language), Body: v.Script}
}

func (c *Context) readVariables(properties []*bpmn.Property) graph.ProcessVariables {
	var vars graph.ProcessVariables
	for _, p := range properties {
		name := p.Name
		if name == "" {
			name = p.Id
		}
		vars = append(vars, graph.Variable{Name: name, Type: c.resolver.ItemType(p.ItemSubjectRef)})
	}
	return vars
}

func (c *Context) writeVariables(vars graph.ProcessVariables) []*bpmn.Property {
	var properties []*bpmn.Property
	for _, v := range vars {
		properties = append(properties, &bpmn.Property{
			Id:             v.Name,
			Name:           v.Name,
			ItemSubjectRef: c.itemRef("_"+v.Name+"Item", v.Type),
		})
	}
	return properties
}

func readTimer(d *bpmn.TimerEventDefinition) graph.TimerSettings {
	timer := graph.TimerSettings{}
	if d.TimeDuration != nil {
		timer.TimeDuration = d.TimeDuration.Body
	}
	if d.TimeDate != nil {
		timer.TimeDate = d.TimeDate.Body
	}
	if d.TimeCycle != nil {
		timer.TimeCycle = d.TimeCycle.Body
		timer.TimeCycleLanguage = bpmn.LanguageName(d.TimeCycle.Language)
	}
	return timer
}

func writeTimer(timer graph.TimerSettings) *bpmn.TimerEventDefinition {
	d := &bpmn.TimerEventDefinition{}
	if timer.TimeDuration != "" {
		d.TimeDuration = &bpmn.FormalExpression{Body: timer.TimeDuration}
	}
	if timer.TimeDate != "" {
		d.TimeDate = &bpmn.FormalExpression{Body: timer.TimeDate}
	}
	if timer.TimeCycle != "" {
		d.TimeCycle = &bpmn.FormalExpression{Language: bpmn.LanguageURI(timer.TimeCycleLanguage), Body: timer.TimeCycle}
	}
	return d
}

// association directions of the document and of the graph
var directions = [][2]string{
	{bpmn.AssociationDirectionNone, graph.AssociationNone},
	{bpmn.AssociationDirectionOne, graph.AssociationOne},
	{bpmn.AssociationDirectionBoth, graph.AssociationBoth},
}

func readDirection(direction string) string {
	for _, item := range directions {
		if strings.EqualFold(item[0], direction) {
			return item[1]
		}
	}
	return graph.AssociationNone
}

func writeDirection(direction string) string {
	for _, item := range directions {
		if item[1] == direction {
			return item[0]
		}
	}
	return bpmn.AssociationDirectionNone
}
