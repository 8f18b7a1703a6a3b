// Package config defines the project configuration model consumed by the
// plan compiler, along with loading and validation.
//
// A Config is produced once per run (from a JSON file, a bare project name,
// or the interactive prompt flow) and never mutated afterwards.
package config

// Config describes one requested project. All enumerated fields hold one of
// a fixed closed set of values; Validate must pass before the config reaches
// the plan compiler.
type Config struct {
	// Name is the project name, validated as a package-name (npm-style).
	Name string `json:"name" mapstructure:"name" validate:"required,projectname"`
	// Workspace describes the workspace shape.
	Workspace Workspace `json:"workspace" mapstructure:"workspace" validate:"required"`
	// Web holds the web platform feature choices.
	Web Web `json:"web" mapstructure:"web" validate:"required"`
	// Documentation selects which documentation files to generate.
	Documentation Documentation `json:"documentation" mapstructure:"documentation"`
	// Backend is the optional backend descriptor. Nil means no backend.
	Backend *Backend `json:"backend,omitempty" mapstructure:"backend"`
	// PWA is the optional progressive-web-app descriptor.
	PWA *PWA `json:"pwa,omitempty" mapstructure:"pwa"`
	// PackageManager selects the package manager for install steps.
	PackageManager string `json:"packageManager" mapstructure:"packageManager" validate:"omitempty,oneof=npm pnpm yarn bun"`
}

// Workspace describes the workspace type and target platforms.
type Workspace struct {
	Type      string   `json:"type" mapstructure:"type" validate:"required,oneof=single monorepo"`
	Platforms []string `json:"platforms" mapstructure:"platforms" validate:"required,min=1,dive,oneof=web mobile desktop"`
}

// Web holds the per-feature toggles for the web platform.
type Web struct {
	Framework       string `json:"framework" mapstructure:"framework" validate:"required,oneof=react vue svelte"`
	TypeScript      bool   `json:"typescript" mapstructure:"typescript"`
	Styling         string `json:"styling" mapstructure:"styling" validate:"required,oneof=tailwind css-modules styled-components vanilla"`
	UI              string `json:"ui" mapstructure:"ui" validate:"omitempty,oneof=none shadcn daisyui mui"`
	Testing         string `json:"testing" mapstructure:"testing" validate:"omitempty,oneof=none vitest jest playwright"`
	StateManagement string `json:"stateManagement" mapstructure:"stateManagement" validate:"omitempty,oneof=none zustand redux pinia"`
	Animations      bool   `json:"animations" mapstructure:"animations"`
	Linting         bool   `json:"linting" mapstructure:"linting"`
	Formatting      bool   `json:"formatting" mapstructure:"formatting"`
	GitHooks        bool   `json:"gitHooks" mapstructure:"gitHooks"`
}

// Documentation selects the documentation files to emit.
type Documentation struct {
	AIInstructions bool `json:"aiInstructions" mapstructure:"aiInstructions"`
	Architecture   bool `json:"architecture" mapstructure:"architecture"`
	APIDocs        bool `json:"apiDocs" mapstructure:"apiDocs"`
	Styleguide     bool `json:"styleguide" mapstructure:"styleguide"`
}

// Backend describes an optional backend integration.
type Backend struct {
	// Type is the backend kind. Only "firebase" is supported today.
	Type string `json:"type" mapstructure:"type" validate:"required,oneof=firebase"`
	// Features is the enabled backend feature subset.
	Features []string `json:"features" mapstructure:"features" validate:"dive,oneof=auth database storage"`
	// Pattern is the architecture pattern for credential modules.
	Pattern string `json:"pattern" mapstructure:"pattern" validate:"required,oneof=server-first client-side"`
}

// PWA describes progressive-web-app generation options.
type PWA struct {
	Enabled     bool   `json:"enabled" mapstructure:"enabled"`
	ThemeColor  string `json:"themeColor,omitempty" mapstructure:"themeColor"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// HasBackend reports whether a backend is configured.
func (c *Config) HasBackend() bool {
	return c.Backend != nil
}

// BackendFeature reports whether the named backend feature is enabled.
func (c *Config) BackendFeature(name string) bool {
	if c.Backend == nil {
		return false
	}
	for _, f := range c.Backend.Features {
		if f == name {
			return true
		}
	}
	return false
}

// HasTooling reports whether any developer-tooling feature is enabled.
func (c *Config) HasTooling() bool {
	return c.Web.Linting || c.Web.Formatting || c.Web.GitHooks
}
