// Package planner builds the dependency graph from SQL documents and
// derives the view deployment order from it.
package planner

import (
	"log/slog"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/depgraph"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/extract"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/sqlsource"
)

// BuildGraph constructs the dependency graph from the table and view
// documents. Table documents only contribute their defined names, which
// form the known-tables set used to classify every node: a name that
// matches a known table is a table even when the document came from the
// view list (table identity wins over source-list membership).
//
// A view document with no recognizable definition header is skipped with
// a warning rather than inserted under an empty key.
func BuildGraph(tables, views []sqlsource.Document, logger *slog.Logger) *depgraph.Graph {
	knownTables := make(map[string]bool)
	for _, doc := range tables {
		if name, ok := extract.DefinitionName(doc.SQL, sqlsource.KindTable); ok {
			knownTables[name] = true
		}
	}

	classify := func(name string) depgraph.Kind {
		if knownTables[name] {
			return depgraph.KindTable
		}
		return depgraph.KindView
	}

	graph := depgraph.New()
	for _, doc := range views {
		name, ok := extract.DefinitionName(doc.SQL, sqlsource.KindView)
		if !ok {
			logger.Warn("skipping document with no view definition header", "path", doc.Path)
			continue
		}

		graph.AddNode(name, classify(name))
		for _, ref := range extract.References(doc.SQL) {
			graph.AddNode(ref, classify(ref))
			// Both endpoints exist by construction.
			_ = graph.AddEdge(ref, name)
		}
	}

	return graph
}

// DeploymentOrder prunes every table node from the graph and returns the
// remaining views topologically sorted, so that each view is created
// only after everything it depends on. The input graph is not modified.
// Returns a *depgraph.CyclicDependencyError when the views form a cycle;
// no partial order is produced in that case.
func DeploymentOrder(graph *depgraph.Graph) ([]string, error) {
	viewsOnly := graph.WithoutKind(depgraph.KindTable)

	sorted, err := viewsOnly.TopologicalSort()
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(sorted))
	for _, node := range sorted {
		order = append(order, node.Name)
	}
	return order, nil
}

// Object is one parsed database object, for inventory reporting.
type Object struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Path      string   `json:"path"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// Inventory lists every document's defined object with its classified
// kind and extracted references, in document order. Documents without a
// definition header are reported with an empty name so the listing can
// surface them instead of hiding them.
func Inventory(tables, views []sqlsource.Document) []Object {
	knownTables := make(map[string]bool)
	for _, doc := range tables {
		if name, ok := extract.DefinitionName(doc.SQL, sqlsource.KindTable); ok {
			knownTables[name] = true
		}
	}

	objects := make([]Object, 0, len(tables)+len(views))
	for _, doc := range tables {
		name, _ := extract.DefinitionName(doc.SQL, sqlsource.KindTable)
		objects = append(objects, Object{
			Name: name,
			Kind: string(depgraph.KindTable),
			Path: doc.Path,
		})
	}
	for _, doc := range views {
		name, _ := extract.DefinitionName(doc.SQL, sqlsource.KindView)
		kind := depgraph.KindView
		if knownTables[name] {
			kind = depgraph.KindTable
		}
		objects = append(objects, Object{
			Name:      name,
			Kind:      string(kind),
			Path:      doc.Path,
			DependsOn: extract.References(doc.SQL),
		})
	}
	return objects
}
