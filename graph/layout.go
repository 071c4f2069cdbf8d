// Copyright 2023 Lack (xingyys@gmail.com).
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graph

import (
	"math"
)

const (
	spaceX = 150 // distance between centers on the x axis
	spaceY = 200 // distance between branches on the y axis
	margin = 50
)

type shapeCoord struct {
	x     float64
	y     float64
	count int
}

// draw positions the children of container breadth first from its start
// event, (startX, startY) being the center of that event. Children that no
// flow reaches are lined up below. Nested sub-processes are drawn first so
// their size is known. It returns the size the container needs.
func draw(container Node, startX, startY float64) (float64, float64) {
	children := container.Children()
	if len(children) == 0 {
		return getFlowSize(container)
	}

	outgoing := make(map[string][]string)
	for _, e := range container.Edges() {
		if e.Kind() == KindSequenceFlow {
			outgoing[e.SourceID()] = append(outgoing[e.SourceID()], e.TargetID())
		}
	}

	start := children[0]
	for _, child := range children {
		if child.Kind().Family() == FamilyStartEvent {
			start = child
			break
		}
	}

	byID := make(map[string]Node, len(children))
	for _, child := range children {
		byID[child.ID()] = child
	}

	coordMap := map[string]*shapeCoord{start.ID(): {x: startX, y: startY}}
	placed := make(map[string]bool)
	queue := []string{start.ID()}
	for len(queue) > 0 {
		inner := make([]string, 0)
		for _, id := range queue {
			if placed[id] {
				continue
			}
			n, ok := byID[id]
			if !ok {
				continue
			}
			placed[id] = true

			coord := coordMap[id]
			x, y := coord.x, coord.y
			width, _ := place(n, x, y)
			next := x + spaceX
			if n.Kind().IsContainer() {
				next = x + width/2 + spaceX
			}

			for i, dst := range outgoing[id] {
				sc, ok := coordMap[dst]
				if ok {
					sc.count += 1
					if next > sc.x {
						sc.x = next
					}
				} else {
					sc = &shapeCoord{x: next, y: y + spaceY*float64(i)}
				}
				coordMap[dst] = sc
				inner = append(inner, dst)
			}
		}
		queue = inner
	}

	maxY := 0.0
	for _, child := range children {
		if b := child.Bounds(); b != nil && placed[child.ID()] {
			maxY = math.Max(maxY, b.Y+b.Height)
		}
	}

	x := startX
	for _, child := range children {
		if placed[child.ID()] {
			continue
		}
		width, _ := getFlowSize(child)
		place(child, x+width/2, maxY+margin+DefaultTaskHeight/2)
		x += width + margin
	}

	normalize(children)

	maxX := 0.0
	maxY = 0
	for _, child := range children {
		if b := child.Bounds(); b != nil {
			maxX = math.Max(maxX, b.X+b.Width)
			maxY = math.Max(maxY, b.Y+b.Height)
		}
	}
	width, height := getFlowSize(container)
	return math.Max(width, maxX+margin), math.Max(height, maxY+margin)
}

// place sets the bounds of n centered on (x, y) and returns its size.
func place(n Node, x, y float64) (float64, float64) {
	var width, height float64
	if n.Kind().IsContainer() && len(n.Children()) > 0 {
		width, height = draw(n, margin, DefaultSubprocessHeight/2)
		if rect, ok := n.Definition().(Rectangular); ok {
			rect.Rectangle().Width = width
			rect.Rectangle().Height = height
		}
	} else {
		width, height = getFlowSize(n)
	}
	n.SetBounds(&Bounds{X: x - width/2, Y: y - height/2, Width: width, Height: height})
	return width, height
}

// normalize shifts children so that none starts left of or above the
// container's margin.
func normalize(children []Node) {
	minX, minY := math.Inf(1), math.Inf(1)
	for _, child := range children {
		if b := child.Bounds(); b != nil {
			minX = math.Min(minX, b.X)
			minY = math.Min(minY, b.Y)
		}
	}
	dx, dy := 0.0, 0.0
	if minX < margin/2 {
		dx = margin/2 - minX
	}
	if minY < margin/2 {
		dy = margin/2 - minY
	}
	if dx == 0 && dy == 0 {
		return
	}
	for _, child := range children {
		if b := child.Bounds(); b != nil {
			b.X += dx
			b.Y += dy
		}
	}
}

func getFlowSize(n Node) (float64, float64) {
	switch def := n.Definition().(type) {
	case Circular:
		d := def.Circle().Radius * 2
		return d, d
	case Rectangular:
		rect := def.Rectangle()
		return rect.Width, rect.Height
	default:
		return 50, 50
	}
}
