package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/config"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/output"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/depgraph"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/render"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/sqlsource"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for the given command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to defaults
// when no LoadConfig call has happened (e.g. a command run standalone).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		GraphFile:    config.DefaultGraphFile,
		GraphFormat:  config.DefaultGraphFormat,
		OutputFormat: config.DefaultOutput,
	}
}

// loadSources reads all configured table and view definition files. Any
// unreadable file aborts with no partial results.
func loadSources(cfg *config.Config) (tables, views []sqlsource.Document, err error) {
	tables, err = sqlsource.Load(cfg.Tables, sqlsource.KindTable)
	if err != nil {
		return nil, nil, err
	}
	views, err = sqlsource.Load(cfg.Views, sqlsource.KindView)
	if err != nil {
		return nil, nil, err
	}
	return tables, views, nil
}

// writeDiagram renders the full graph to the configured file, in the
// configured format. The graph itself is never modified.
func writeDiagram(cfg *config.Config, graph *depgraph.Graph) error {
	f, err := os.Create(cfg.GraphFile)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer f.Close()

	switch cfg.GraphFormat {
	case "dot":
		render.WriteDOT(f, graph)
	default:
		render.WriteSVG(f, graph)
	}
	return nil
}
