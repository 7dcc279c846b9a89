// Package depgraph provides the directed dependency graph over database
// objects. It supports cycle detection with path reconstruction,
// insertion-order stable topological sorting, execution level grouping,
// and derived subgraphs with one object kind pruned away.
package depgraph

import (
	"fmt"
)

// Kind classifies a node as a table or a view.
type Kind string

const (
	KindTable Kind = "table"
	KindView  Kind = "view"
)

// colorMap assigns the display color for each kind, used by the diagram
// exports only.
var colorMap = map[Kind]string{
	KindTable: "blue",
	KindView:  "red",
}

// ColorFor returns the display color for a kind.
func ColorFor(kind Kind) string {
	return colorMap[kind]
}

// Node is a named database object in the graph.
type Node struct {
	// Name is the dotted object name, unquoted.
	Name string
	// Kind is fixed at creation and never changes afterwards.
	Kind Kind
	// Color is the display color derived from Kind.
	Color string
}

// Edge is a directed dependency edge: To depends on From.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph of tables and views. Edges run from a
// dependency to its dependent. Node and edge insertion order is
// preserved so that every derived ordering is reproducible for a fixed
// input ordering.
type Graph struct {
	nodes    map[string]*Node
	order    []string            // node names in insertion order
	children map[string][]string // dependency -> dependents
	parents  map[string][]string // dependent -> dependencies
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}
}

// AddNode inserts a node with the given name and kind. Re-adding an
// existing name is a no-op: the kind set at creation wins.
func (g *Graph) AddNode(name string, kind Kind) {
	if _, exists := g.nodes[name]; exists {
		return
	}
	g.nodes[name] = &Node{Name: name, Kind: kind, Color: ColorFor(kind)}
	g.order = append(g.order, name)
	g.children[name] = []string{}
	g.parents[name] = []string{}
}

// AddEdge adds a directed edge from a dependency to its dependent.
// Duplicate edges are ignored. Self-loops are accepted here and surface
// later as a cyclic dependency, matching how a self-referencing view
// must fail at ordering time rather than at construction time.
func (g *Graph) AddEdge(from, to string) error {
	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("dependency node %q does not exist", from)
	}
	if _, exists := g.nodes[to]; !exists {
		return fmt.Errorf("dependent node %q does not exist", to)
	}

	if !contains(g.children[from], to) {
		g.children[from] = append(g.children[from], to)
	}
	if !contains(g.parents[to], from) {
		g.parents[to] = append(g.parents[to], from)
	}
	return nil
}

// GetNode returns a node by name.
func (g *Graph) GetNode(name string) (*Node, bool) {
	node, exists := g.nodes[name]
	return node, exists
}

// GetParents returns the dependencies of a node.
func (g *Graph) GetParents(name string) []string {
	return g.parents[name]
}

// GetChildren returns the dependents of a node.
func (g *Graph) GetChildren(name string) []string {
	return g.children[name]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// Edges returns all edges, grouped by dependency in node insertion order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, name := range g.order {
		for _, child := range g.children[name] {
			edges = append(edges, Edge{From: name, To: child})
		}
	}
	return edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.children {
		count += len(children)
	}
	return count
}

// HasCycle reports whether the graph contains a cycle, along with the
// cycle path for diagnostics.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		visited[name] = true
		recStack[name] = true

		for _, child := range g.children[name] {
			if !visited[child] {
				path[child] = name
				if dfs(child) {
					return true
				}
			} else if recStack[child] {
				// Found a cycle, reconstruct the path back to its start.
				cyclePath = []string{child}
				for curr := name; curr != child; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{child}, cyclePath...)
				return true
			}
		}

		recStack[name] = false
		return false
	}

	for _, name := range g.order {
		if !visited[name] {
			if dfs(name) {
				return true, cyclePath
			}
		}
	}

	return false, nil
}

// CyclicDependencyError reports that the graph cannot be topologically
// ordered, carrying one offending cycle path.
type CyclicDependencyError struct {
	Path []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %v", e.Path)
}

// TopologicalSort returns the nodes so that every dependency precedes
// its dependents. Ties are broken by node insertion order, keeping the
// result stable across runs for a fixed input ordering. Returns a
// *CyclicDependencyError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]*Node, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, &CyclicDependencyError{Path: cyclePath}
	}

	visited := make(map[string]bool)
	result := make([]*Node, 0, len(g.order))

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true

		for _, parent := range g.parents[name] {
			visit(parent)
		}

		result = append(result, g.nodes[name])
	}

	for _, name := range g.order {
		visit(name)
	}

	return result, nil
}

// ExecutionLevels groups nodes by dependency depth. Nodes at level 0
// have no dependencies; a node's level is one past its deepest
// dependency. Within a level, insertion order is kept.
func (g *Graph) ExecutionLevels() ([][]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, &CyclicDependencyError{Path: cyclePath}
	}

	assigned := make(map[string]int)

	var getLevel func(name string) int
	getLevel = func(name string) int {
		if level, ok := assigned[name]; ok {
			return level
		}

		maxParentLevel := -1
		for _, parent := range g.parents[name] {
			if parentLevel := getLevel(parent); parentLevel > maxParentLevel {
				maxParentLevel = parentLevel
			}
		}

		level := maxParentLevel + 1
		assigned[name] = level
		return level
	}

	maxLevel := 0
	for _, name := range g.order {
		if level := getLevel(name); level > maxLevel {
			maxLevel = level
		}
	}

	levels := make([][]string, maxLevel+1)
	for i := range levels {
		levels[i] = []string{}
	}
	for _, name := range g.order {
		level := assigned[name]
		levels[level] = append(levels[level], name)
	}

	return levels, nil
}

// WithoutKind returns a derived graph with every node of the given kind
// removed, along with any edges touching those nodes. The receiver is
// left untouched, so a diagram rendered from it is unaffected by
// pruning. Insertion order of the surviving nodes and edges is kept.
func (g *Graph) WithoutKind(kind Kind) *Graph {
	pruned := New()
	for _, name := range g.order {
		if node := g.nodes[name]; node.Kind != kind {
			pruned.AddNode(node.Name, node.Kind)
		}
	}
	for _, name := range g.order {
		if _, kept := pruned.nodes[name]; !kept {
			continue
		}
		for _, child := range g.children[name] {
			if _, kept := pruned.nodes[child]; kept {
				_ = pruned.AddEdge(name, child)
			}
		}
	}
	return pruned
}

func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
