package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// projectNamePattern matches npm-style package names: lowercase start,
// then lowercase letters, digits, hyphens, underscores.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tag names.
	_ = v.RegisterValidation("projectname", func(fl validator.FieldLevel) bool {
		return projectNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks a Config against the closed enum sets and the cross-field
// invariants. It must pass before the config is handed to the plan compiler.
func Validate(cfg *Config) error {
	if cfg == nil {
		return NewError(CategoryValidation, "configuration is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return NewErrorWithCause(CategoryValidation, "configuration is invalid", err)
	}

	return validateCrossField(cfg)
}

// validateCrossField enforces the invariants that span multiple fields.
func validateCrossField(cfg *Config) error {
	if cfg.Workspace.Type == "single" && len(cfg.Workspace.Platforms) != 1 {
		return NewFieldError(CategoryValidation, "workspace.platforms",
			fmt.Sprintf("a single workspace must target exactly one platform, got %d", len(cfg.Workspace.Platforms)),
			`use workspace.type "monorepo" for multiple platforms`)
	}

	if cfg.Backend != nil && len(cfg.Backend.Features) == 0 {
		return NewFieldError(CategoryValidation, "backend.features",
			"a configured backend must enable at least one feature",
			`enable one of "auth", "database", "storage", or remove the backend block`)
	}

	if cfg.PWA != nil && cfg.PWA.Enabled && !hasPlatform(cfg, "web") {
		return NewFieldError(CategoryValidation, "pwa.enabled",
			"PWA generation requires the web platform")
	}

	return nil
}

func hasPlatform(cfg *Config, name string) bool {
	for _, p := range cfg.Workspace.Platforms {
		if p == name {
			return true
		}
	}
	return false
}

// fieldError converts one validator field error into a config Error with the
// JSON-ish field path callers expect in messages.
func fieldError(fe validator.FieldError) *Error {
	field := namespaceToPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return NewFieldError(CategoryValidation, field, "field is required")
	case "projectname":
		return NewFieldError(CategoryValidation, field,
			fmt.Sprintf("%q is not a valid project name", fe.Value()),
			"project names must start with a lowercase letter and contain only lowercase letters, digits, hyphens, and underscores")
	case "oneof":
		return NewFieldError(CategoryValidation, field,
			fmt.Sprintf("%v is not one of the allowed values (%s)", fe.Value(), fe.Param()))
	case "min":
		return NewFieldError(CategoryValidation, field, "at least one entry is required")
	default:
		return NewFieldError(CategoryValidation, field,
			fmt.Sprintf("failed %q validation", fe.Tag()))
	}
}

// namespaceToPath turns "Config.Web.Framework" into "web.framework".
func namespaceToPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}
