package render

import (
	"io"

	"github.com/emicklei/dot"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/depgraph"
)

// WriteDOT renders the full graph as DOT text. Node identifiers are
// quoted by the dot library; the type and color attributes mirror the
// in-memory node annotations.
func WriteDOT(w io.Writer, g *depgraph.Graph) {
	dg := dot.NewGraph(dot.Directed)

	for _, node := range g.Nodes() {
		dn := dg.Node(node.Name)
		dn.Attr("type", string(node.Kind))
		dn.Attr("color", node.Color)
	}
	for _, edge := range g.Edges() {
		dg.Edge(dg.Node(edge.From), dg.Node(edge.To))
	}

	_, _ = io.WriteString(w, dg.String())
}
