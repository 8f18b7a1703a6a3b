package config

// Defaults returns the quick-start configuration used when the CLI is given
// a bare project name and no configuration file.
func Defaults(name string) *Config {
	return &Config{
		Name: name,
		Workspace: Workspace{
			Type:      "single",
			Platforms: []string{"web"},
		},
		Web: Web{
			Framework:       "react",
			TypeScript:      true,
			Styling:         "tailwind",
			UI:              "none",
			Testing:         "vitest",
			StateManagement: "none",
			Linting:         true,
			Formatting:      true,
		},
		Documentation: Documentation{
			AIInstructions: true,
			Architecture:   true,
		},
		PackageManager: "npm",
	}
}

// applyDefaults fills zero-valued optional fields after loading.
func applyDefaults(cfg *Config) {
	if cfg.PackageManager == "" {
		cfg.PackageManager = "npm"
	}
	if cfg.Web.UI == "" {
		cfg.Web.UI = "none"
	}
	if cfg.Web.Testing == "" {
		cfg.Web.Testing = "none"
	}
	if cfg.Web.StateManagement == "" {
		cfg.Web.StateManagement = "none"
	}
}
