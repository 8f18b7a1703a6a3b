package commands

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectSettings is the subset of a generated project's .tinderbox.yml that
// the CLI reads back when run inside a project directory.
type ProjectSettings struct {
	Project struct {
		Name      string `yaml:"name"`
		Framework string `yaml:"framework"`
	} `yaml:"project"`
	Backend struct {
		Type     string   `yaml:"type"`
		Pattern  string   `yaml:"pattern"`
		Features []string `yaml:"features"`
	} `yaml:"backend"`
}

// LoadProjectSettings reads .tinderbox.yml from the given directory.
// Returns nil when the directory is not a tinderbox project.
func LoadProjectSettings(dir string) *ProjectSettings {
	data, err := os.ReadFile(filepath.Join(dir, ".tinderbox.yml"))
	if err != nil {
		return nil
	}

	var settings ProjectSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil
	}
	return &settings
}

// HasBackendConfigured checks if the given directory is a tinderbox project
// with a backend configured.
func HasBackendConfigured(dir string) bool {
	settings := LoadProjectSettings(dir)
	return settings != nil && settings.Backend.Type != ""
}
