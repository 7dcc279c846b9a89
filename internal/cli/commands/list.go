package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/output"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/planner"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured tables and views",
		Long: `List every configured SQL source with its extracted object name,
classified kind and references. A view-list document whose name matches
a known table is shown as a table.`,
		Example: `  adcm list
  adcm list --output json`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	tables, views, err := loadSources(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	objects := planner.Inventory(tables, views)

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(objects)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Name", "Kind", "Source", "Depends On"})
	for _, obj := range objects {
		name := obj.Name
		if name == "" {
			name = "(no definition header)"
		}
		t.AppendRow(table.Row{name, obj.Kind, obj.Path, strings.Join(obj.DependsOn, ", ")})
	}
	t.SetStyle(table.StyleLight)

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
