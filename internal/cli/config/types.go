// Package config loads and validates the adcm configuration from file,
// environment and flags.
package config

import "github.com/thomascjohnson/analytical-datastore-change-management/internal/cli/output"

// Defaults applied before any other configuration source.
const (
	DefaultGraphFile   = "graph.svg"
	DefaultGraphFormat = "svg"
	DefaultOutput      = string(output.ModeAuto)
)

// Config is the resolved configuration for a run.
type Config struct {
	// ProjectRoot anchors relative source paths. Derived from the config
	// file location (or the working directory), never set directly.
	ProjectRoot string `koanf:"-"`

	// Tables and Views are the ordered source file lists. Order matters:
	// it fixes node insertion order and therefore report tie-breaking.
	Tables []string `koanf:"tables"`
	Views  []string `koanf:"views"`

	// GraphFile is where the diagram is written.
	GraphFile string `koanf:"graph_file"`
	// GraphFormat is svg or dot.
	GraphFormat string `koanf:"graph_format"`

	// OutputFormat is auto, text, markdown or json.
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
}
