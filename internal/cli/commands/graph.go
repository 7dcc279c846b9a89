package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/output"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/depgraph"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/planner"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency graph",
		Long: `Build the full dependency graph (tables and views) from the
configured SQL sources, write it to the diagram file and display the
objects grouped by dependency depth.`,
		Example: `  # Write graph.svg and show the levels
  adcm graph

  # DOT output for an external graphviz toolchain
  adcm graph --graph-format dot --graph-file deps.dot`,
		RunE: runGraph,
	}
}

func runGraph(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	tables, views, err := loadSources(cfg)
	if err != nil {
		return err
	}

	graph := planner.BuildGraph(tables, views, cmdCtx.Logger)

	if err := writeDiagram(cfg, graph); err != nil {
		return err
	}

	levels, err := graph.ExecutionLevels()
	if err != nil {
		// The diagram is still written for a cyclic graph; only the
		// level display is impossible.
		return fmt.Errorf("cannot group objects by level: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return graphJSON(r, cfg.GraphFile, graph, levels)
	case output.ModeMarkdown:
		return graphMarkdown(r, cfg.GraphFile, graph, levels)
	default:
		return graphText(r, cfg.GraphFile, graph, levels)
	}
}

func graphText(r *output.Renderer, diagramFile string, graph *depgraph.Graph, levels [][]string) error {
	styles := r.Styles()

	r.Println(styles.Header1.Render("Dependency Graph"))
	r.Println("")

	for i, level := range levels {
		r.Println(styles.Header2.Render(fmt.Sprintf("Level %d:", i)))
		for _, name := range level {
			node, _ := graph.GetNode(name)
			kindStyle := styles.View
			if node.Kind == depgraph.KindTable {
				kindStyle = styles.Table
			}
			r.Printf("  %s %s\n", styles.ObjectName.Render(name), kindStyle.Render("["+string(node.Kind)+"]"))
			if deps := graph.GetParents(name); len(deps) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("depends on:"), strings.Join(deps, ", "))
			}
			if used := graph.GetChildren(name); len(used) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("used by:"), strings.Join(used, ", "))
			}
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d objects, %d dependencies", graph.NodeCount(), graph.EdgeCount())))
	r.Println(styles.Muted.Render("Diagram written to " + diagramFile))
	return nil
}

func graphMarkdown(r *output.Renderer, diagramFile string, graph *depgraph.Graph, levels [][]string) error {
	r.Println(output.FormatHeader(1, "Dependency Graph"))
	r.Println("")

	for i, level := range levels {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Level %d", i)))
		for _, name := range level {
			node, _ := graph.GetNode(name)
			r.Printf("- %s (%s)\n", name, node.Kind)
			if deps := graph.GetParents(name); len(deps) > 0 {
				r.Printf("  - depends on: %s\n", strings.Join(deps, ", "))
			}
			if used := graph.GetChildren(name); len(used) > 0 {
				r.Printf("  - used by: %s\n", strings.Join(used, ", "))
			}
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Objects", fmt.Sprintf("%d", graph.NodeCount())))
	r.Println(output.FormatKeyValue("Total Dependencies", fmt.Sprintf("%d", graph.EdgeCount())))
	r.Println(output.FormatKeyValue("Diagram", diagramFile))
	return nil
}

func graphJSON(r *output.Renderer, diagramFile string, graph *depgraph.Graph, levels [][]string) error {
	payload := output.GraphOutput{
		Levels:       make([]output.GraphLevel, 0, len(levels)),
		TotalObjects: graph.NodeCount(),
		TotalEdges:   graph.EdgeCount(),
		DiagramFile:  diagramFile,
	}

	for i, level := range levels {
		graphLevel := output.GraphLevel{
			Level:   i,
			Objects: make([]output.GraphNode, 0, len(level)),
		}
		for _, name := range level {
			node, _ := graph.GetNode(name)
			graphLevel.Objects = append(graphLevel.Objects, output.GraphNode{
				Name:      name,
				Kind:      string(node.Kind),
				DependsOn: graph.GetParents(name),
				UsedBy:    graph.GetChildren(name),
			})
		}
		payload.Levels = append(payload.Levels, graphLevel)
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
