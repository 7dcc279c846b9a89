package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/output"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/planner"
)

// NewOrderCommand creates the order command, the core pipeline: load the
// configured SQL sources, build the dependency graph, write the diagram
// and report the deployment order of views.
func NewOrderCommand() *cobra.Command {
	var noGraph bool

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Compute the deployment order of views",
		Long: `Compute the order in which the configured views can be deployed so
that every view is created only after the objects it depends on exist.

Tables are never deployed and never appear in the report; they only
anchor the dependency graph. A cyclic dependency among views fails the
run with the offending cycle.`,
		Example: `  # Report the deployment order and write the diagram
  adcm order

  # Order only, no diagram
  adcm order --no-graph

  # Machine-readable order
  adcm order --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrder(cmd, noGraph)
		},
	}

	cmd.Flags().BoolVar(&noGraph, "no-graph", false, "Skip writing the dependency diagram")

	return cmd
}

func runOrder(cmd *cobra.Command, noGraph bool) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	tables, views, err := loadSources(cfg)
	if err != nil {
		return err
	}

	graph := planner.BuildGraph(tables, views, cmdCtx.Logger)

	// The diagram shows the full graph, tables included, and is written
	// before pruning can matter: ordering works on a derived subgraph.
	if !noGraph {
		if err := writeDiagram(cfg, graph); err != nil {
			return err
		}
		cmdCtx.Logger.Debug("wrote dependency diagram", "path", cfg.GraphFile, "format", cfg.GraphFormat)
	}

	// Computed before anything is printed: a cyclic failure must not
	// leave a partial report behind.
	order, err := planner.DeploymentOrder(graph)
	if err != nil {
		return fmt.Errorf("cannot order views: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(output.OrderOutput{Order: order})
	}

	r.Println("Deployment order of views:")
	for _, name := range order {
		r.Println(name)
	}
	return nil
}
