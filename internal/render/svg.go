// Package render exports the dependency graph as a diagram. Two formats
// are supported: a self-contained SVG with a layered layout, and DOT
// text for users who prefer their own graphviz toolchain. Rendering
// reads the graph but never mutates it, so the textual ordering is
// unaffected by whether or when a diagram is produced.
package render

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/depgraph"
)

const (
	marginX    = 40
	marginY    = 40
	nodeHeight = 36
	levelGapX  = 90
	nodeGapY   = 24
	charWidth  = 8
	minNodeW   = 120
)

type nodeBox struct {
	x, y, w, h int
}

// quote wraps a name in literal double quotes for display, matching the
// labeling convention of the reference diagrams.
func quote(name string) string {
	return `"` + name + `"`
}

func labelWidth(name string) int {
	w := len(quote(name))*charWidth + 20
	if w < minNodeW {
		return minNodeW
	}
	return w
}

// layout places each node in a column per execution level. When the
// graph has a cycle, levels cannot be computed; every node then gets its
// own row in insertion order so the diagram still renders.
func layout(g *depgraph.Graph) map[string]nodeBox {
	levels, err := g.ExecutionLevels()
	if err != nil {
		levels = nil
		for _, node := range g.Nodes() {
			levels = append(levels, []string{node.Name})
		}
	}

	boxes := make(map[string]nodeBox, g.NodeCount())
	x := marginX
	for _, level := range levels {
		colWidth := minNodeW
		for _, name := range level {
			if w := labelWidth(name); w > colWidth {
				colWidth = w
			}
		}
		y := marginY
		for _, name := range level {
			boxes[name] = nodeBox{x: x, y: y, w: colWidth, h: nodeHeight}
			y += nodeHeight + nodeGapY
		}
		x += colWidth + levelGapX
	}
	return boxes
}

// WriteSVG renders the full graph, tables and views colored distinctly,
// with an edge arrow from each dependency to its dependents.
func WriteSVG(w io.Writer, g *depgraph.Graph) {
	boxes := layout(g)

	width, height := marginX, marginY
	for _, box := range boxes {
		if right := box.x + box.w + marginX; right > width {
			width = right
		}
		if bottom := box.y + box.h + marginY; bottom > height {
			height = bottom
		}
	}

	canvas := svg.New(w)
	canvas.Start(width, height)

	for _, edge := range g.Edges() {
		from, to := boxes[edge.From], boxes[edge.To]
		x1, y1 := from.x+from.w, from.y+from.h/2
		x2, y2 := to.x, to.y+to.h/2
		canvas.Line(x1, y1, x2, y2, "stroke:#555;stroke-width:1.5")
		// Arrowhead pointing at the dependent.
		canvas.Polygon(
			[]int{x2, x2 - 8, x2 - 8},
			[]int{y2, y2 - 4, y2 + 4},
			"fill:#555",
		)
	}

	for _, node := range g.Nodes() {
		box := boxes[node.Name]
		canvas.Roundrect(box.x, box.y, box.w, box.h, 6, 6,
			"fill:white;stroke:"+node.Color+";stroke-width:2")
		canvas.Text(box.x+box.w/2, box.y+box.h/2+4, quote(node.Name),
			"text-anchor:middle;font-family:sans-serif;font-size:12px;fill:#222")
	}

	canvas.End()
}
