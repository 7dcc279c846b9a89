package config

import (
	"fmt"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/output"
)

// Validate checks a resolved configuration before the pipeline runs.
func Validate(cfg *Config) error {
	if len(cfg.Views) == 0 {
		return fmt.Errorf("no view files configured: set 'views' in the config file or pass --views")
	}

	seen := make(map[string]string)
	for _, path := range cfg.Tables {
		if prev, dup := seen[path]; dup {
			return fmt.Errorf("duplicate source path %s (listed as %s and table)", path, prev)
		}
		seen[path] = "table"
	}
	for _, path := range cfg.Views {
		if prev, dup := seen[path]; dup {
			return fmt.Errorf("duplicate source path %s (listed as %s and view)", path, prev)
		}
		seen[path] = "view"
	}

	switch cfg.GraphFormat {
	case "svg", "dot":
	default:
		return fmt.Errorf("invalid graph_format %q: must be svg or dot", cfg.GraphFormat)
	}

	switch output.Mode(cfg.OutputFormat) {
	case output.ModeAuto, output.ModeText, output.ModeMarkdown, output.ModeJSON, "":
	default:
		return fmt.Errorf("invalid output format %q: must be auto, text, markdown or json", cfg.OutputFormat)
	}

	return nil
}
