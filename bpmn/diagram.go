package bpmn

import (
	"fmt"

	"github.com/beevik/etree"
)

type Diagram struct {
	Id    string
	Plane *DiagramPlane
}

type DiagramPlane struct {
	Id      string
	Element string
	Shapes  []*DiagramShape
	Edges   []*DiagramEdge
}

type DiagramShape struct {
	Id       string
	Element  string
	Expanded bool
	Bounds   *Bounds
	Style    *ShapeStyle
}

type DiagramEdge struct {
	Id        string
	Element   string
	Waypoints []*Point
}

// buildDiagrams draws one diagram per process from the element bounds.
// Connectors without waypoints are routed from the right middle of their
// source to the left middle of their target.
func buildDiagrams(d *Definitions) []*Diagram {
	diagrams := make([]*Diagram, 0, len(d.Processes))
	for _, p := range d.Processes {
		plane := &DiagramPlane{Id: "BPMNPlane_" + p.Id, Element: p.Id}
		shapes := make(map[string]*Bounds)
		connectors := make([]Connector, 0)
		walkContainer(p, func(e Element) bool {
			switch tt := e.(type) {
			case Shaped:
				info := tt.GetShape()
				if info.Bounds == nil {
					return true
				}
				shapes[e.GetID()] = info.Bounds
				plane.Shapes = append(plane.Shapes, &DiagramShape{
					Id:       "shape_" + e.GetID(),
					Element:  e.GetID(),
					Expanded: info.Expanded,
					Bounds:   info.Bounds,
					Style:    info.Style,
				})
			case Connector:
				connectors = append(connectors, tt)
			}
			return true
		})

		for _, c := range connectors {
			points := c.GetWaypoints()
			if len(points) == 0 {
				points = route(shapes[c.GetSourceRef()], shapes[c.GetTargetRef()])
			}
			if len(points) == 0 {
				continue
			}
			plane.Edges = append(plane.Edges, &DiagramEdge{
				Id:        "edge_" + c.GetID(),
				Element:   c.GetID(),
				Waypoints: points,
			})
		}

		diagrams = append(diagrams, &Diagram{Id: "BPMNDiagram_" + p.Id, Plane: plane})
	}
	return diagrams
}

func route(source, target *Bounds) []*Point {
	if source == nil || target == nil {
		return nil
	}

	start := &Point{X: source.X + source.Width, Y: source.Y + source.Height/2}
	end := &Point{X: target.X, Y: target.Y + target.Height/2}
	points := []*Point{start}
	if start.Y != end.Y {
		x := start.X + (end.X-start.X)/2
		points = append(points, &Point{X: x, Y: start.Y}, &Point{X: x, Y: end.Y})
	}
	return append(points, end)
}

// attachDiagrams copies the shapes and edges of parsed diagrams onto the
// elements they reference.
func attachDiagrams(d *Definitions, diagrams []*Diagram) {
	elements := d.index()
	for _, diagram := range diagrams {
		if diagram.Plane == nil {
			continue
		}
		for _, shape := range diagram.Plane.Shapes {
			elem, ok := elements.Get(shape.Element)
			if !ok {
				continue
			}
			if shaped, ok := elem.(Shaped); ok {
				info := shaped.GetShape()
				info.Bounds = shape.Bounds
				info.Style = shape.Style
				info.Expanded = shape.Expanded
			}
		}
		for _, edge := range diagram.Plane.Edges {
			elem, ok := elements.Get(edge.Element)
			if !ok {
				continue
			}
			if connector, ok := elem.(Connector); ok {
				connector.SetWaypoints(edge.Waypoints)
			}
		}
	}
}

type diagramSerde struct{}

func (s *diagramSerde) Serialize(element any, start *etree.Element) error {
	d, ok := element.(*Diagram)
	if !ok {
		return fmt.Errorf("%v is not Diagram", element)
	}

	start.Space = "bpmndi"
	start.Tag = "BPMNDiagram"
	if d.Id != "" {
		start.CreateAttr("id", d.Id)
	}

	if d.Plane != nil {
		if err := Serialize(d.Plane, start.CreateElement("")); err != nil {
			return err
		}
	}

	return nil
}

func (s *diagramSerde) Deserialize(start *etree.Element) (any, error) {
	d := &Diagram{}
	d.Id = attrString(start, "id")

	if child := start.SelectElement("BPMNPlane"); child != nil {
		v, err := Deserialize(child)
		if err != nil {
			return nil, err
		}
		d.Plane = v.(*DiagramPlane)
	}

	return d, nil
}

type diagramPlaneSerde struct{}

func (s *diagramPlaneSerde) Serialize(element any, start *etree.Element) error {
	plane, ok := element.(*DiagramPlane)
	if !ok {
		return fmt.Errorf("%v is not DiagramPlane", element)
	}

	start.Space = "bpmndi"
	start.Tag = "BPMNPlane"
	if plane.Id != "" {
		start.CreateAttr("id", plane.Id)
	}
	if plane.Element != "" {
		start.CreateAttr("bpmnElement", plane.Element)
	}

	for _, shape := range plane.Shapes {
		if err := Serialize(shape, start.CreateElement("")); err != nil {
			return err
		}
	}
	for _, edge := range plane.Edges {
		if err := Serialize(edge, start.CreateElement("")); err != nil {
			return err
		}
	}

	return nil
}

func (s *diagramPlaneSerde) Deserialize(start *etree.Element) (any, error) {
	plane := &DiagramPlane{}
	plane.Id = attrString(start, "id")
	plane.Element = attrString(start, "bpmnElement")

	for _, child := range start.ChildElements() {
		if _, ok := deserializers[child.Tag]; !ok {
			continue
		}
		elem, err := Deserialize(child)
		if err != nil {
			return nil, err
		}
		switch tt := elem.(type) {
		case *DiagramShape:
			plane.Shapes = append(plane.Shapes, tt)
		case *DiagramEdge:
			plane.Edges = append(plane.Edges, tt)
		}
	}

	return plane, nil
}

type diagramShapeSerde struct{}

func (s *diagramShapeSerde) Serialize(element any, start *etree.Element) error {
	shape, ok := element.(*DiagramShape)
	if !ok {
		return fmt.Errorf("%v is not DiagramShape", element)
	}

	start.Space = "bpmndi"
	start.Tag = "BPMNShape"
	if shape.Id != "" {
		start.CreateAttr("id", shape.Id)
	}
	if shape.Element != "" {
		start.CreateAttr("bpmnElement", shape.Element)
	}
	if shape.Expanded {
		start.CreateAttr("isExpanded", "true")
	}
	if style := shape.Style; !style.IsZero() {
		if style.BackgroundColor != "" {
			start.CreateAttr("color:background-color", style.BackgroundColor)
		}
		if style.BorderColor != "" {
			start.CreateAttr("color:border-color", style.BorderColor)
		}
		if style.BorderSize != 0 {
			start.CreateAttr("drools:borderSize", formatFloat(style.BorderSize))
		}
		if style.FontFamily != "" {
			start.CreateAttr("drools:fontFamily", style.FontFamily)
		}
		if style.FontColor != "" {
			start.CreateAttr("drools:fontColor", style.FontColor)
		}
		if style.FontSize != 0 {
			start.CreateAttr("drools:fontSize", formatFloat(style.FontSize))
		}
	}

	if bounds := shape.Bounds; bounds != nil {
		writeBounds(bounds, start.CreateElement("dc:Bounds"))
	}

	return nil
}

func (s *diagramShapeSerde) Deserialize(start *etree.Element) (any, error) {
	shape := &DiagramShape{}
	shape.Id = attrString(start, "id")
	shape.Element = attrString(start, "bpmnElement")
	shape.Expanded = attrBool(start, "isExpanded", false)

	style := &ShapeStyle{
		BackgroundColor: attrString(start, "background-color"),
		BorderColor:     attrString(start, "border-color"),
		BorderSize:      attrFloat(start, "borderSize"),
		FontFamily:      attrString(start, "fontFamily"),
		FontColor:       attrString(start, "fontColor"),
		FontSize:        attrFloat(start, "fontSize"),
	}
	if !style.IsZero() {
		shape.Style = style
	}

	if child := start.SelectElement("Bounds"); child != nil {
		shape.Bounds = readBounds(child)
	}

	return shape, nil
}

type diagramEdgeSerde struct{}

func (s *diagramEdgeSerde) Serialize(element any, start *etree.Element) error {
	edge, ok := element.(*DiagramEdge)
	if !ok {
		return fmt.Errorf("%v is not DiagramEdge", element)
	}

	start.Space = "bpmndi"
	start.Tag = "BPMNEdge"
	if edge.Id != "" {
		start.CreateAttr("id", edge.Id)
	}
	if edge.Element != "" {
		start.CreateAttr("bpmnElement", edge.Element)
	}

	for _, waypoint := range edge.Waypoints {
		child := start.CreateElement("di:waypoint")
		child.CreateAttr("x", formatFloat(waypoint.X))
		child.CreateAttr("y", formatFloat(waypoint.Y))
	}

	return nil
}

func (s *diagramEdgeSerde) Deserialize(start *etree.Element) (any, error) {
	edge := &DiagramEdge{}
	edge.Id = attrString(start, "id")
	edge.Element = attrString(start, "bpmnElement")

	for _, child := range start.SelectElements("waypoint") {
		edge.Waypoints = append(edge.Waypoints, &Point{
			X: attrFloat(child, "x"),
			Y: attrFloat(child, "y"),
		})
	}

	return edge, nil
}

func writeBounds(bounds *Bounds, start *etree.Element) {
	start.CreateAttr("height", formatFloat(bounds.Height))
	start.CreateAttr("width", formatFloat(bounds.Width))
	start.CreateAttr("x", formatFloat(bounds.X))
	start.CreateAttr("y", formatFloat(bounds.Y))
}

func readBounds(start *etree.Element) *Bounds {
	return &Bounds{
		X:      attrFloat(start, "x"),
		Y:      attrFloat(start, "y"),
		Width:  attrFloat(start, "width"),
		Height: attrFloat(start, "height"),
	}
}
