// =============================================================================
// Availability Model Translator - Run Configuration
// =============================================================================
//
// This module loads the optional YAML run configuration. Everything in it
// can also be set per run with command-line flags; flags win over the file,
// the file wins over the defaults. A missing configuration file is not an
// error — the tool works out of the box with the embedded schema catalog.
//
// Example config.yaml:
//
//   schema: ./schemas/plant.yaml
//   output_dir: ./output
//   xml:
//     root_element: AvailabilityModel
//     project_id: PLANT_A_2026
//   error_log: true
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// XMLConfig carries the workbench XML layout settings.
type XMLConfig struct {
	// RootElement is the document root element name.
	// Default: "AvailabilityModel"
	RootElement string `yaml:"root_element"`

	// ProjectID labels the export for the workbench import wizard.
	// Default: "AMT_ExportedProject"
	ProjectID string `yaml:"project_id"`
}

// Config is the run configuration.
type Config struct {
	// SchemaPath points at a YAML schema definition. Empty means the
	// embedded default catalog.
	SchemaPath string `yaml:"schema"`

	// OutputDir is the default directory for output artifacts when the
	// --out flag names a bare file name.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// XML carries the XML layout settings.
	XML XMLConfig `yaml:"xml"`

	// ErrorLog writes accumulated validation errors to a log file next to
	// the output artifact.
	// Default: true
	ErrorLog *bool `yaml:"error_log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	enabled := true
	return &Config{
		OutputDir: ".",
		XML: XMLConfig{
			RootElement: "AvailabilityModel",
			ProjectID:   "AMT_ExportedProject",
		},
		ErrorLog: &enabled,
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; a present but unparsable file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills fields the file left empty.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.XML.RootElement == "" {
		cfg.XML.RootElement = "AvailabilityModel"
	}
	if cfg.XML.ProjectID == "" {
		cfg.XML.ProjectID = "AMT_ExportedProject"
	}
	if cfg.ErrorLog == nil {
		enabled := true
		cfg.ErrorLog = &enabled
	}
}

// ErrorLogEnabled reports the effective error-log setting.
func (c *Config) ErrorLogEnabled() bool {
	return c.ErrorLog != nil && *c.ErrorLog
}
