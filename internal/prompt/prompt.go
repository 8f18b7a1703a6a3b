// Package prompt collects a project configuration interactively. It is a
// pure producer of a config value; generation semantics live elsewhere.
package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/tinderbox-cli/tinderbox/internal/config"
)

// Collect asks the interactive question flow and returns a validated
// configuration. name may be empty, in which case it is asked first.
func Collect(name string) (*config.Config, error) {
	cfg := config.Defaults(name)

	if cfg.Name == "" {
		if err := survey.AskOne(&survey.Input{
			Message: "Project name:",
		}, &cfg.Name, survey.WithValidator(survey.Required)); err != nil {
			return nil, fmt.Errorf("prompt cancelled: %w", err)
		}
	}

	questions := []*survey.Question{
		{
			Name: "framework",
			Prompt: &survey.Select{
				Message: "Framework:",
				Options: []string{"react", "vue", "svelte"},
				Default: cfg.Web.Framework,
			},
		},
		{
			Name: "typescript",
			Prompt: &survey.Confirm{
				Message: "Use TypeScript?",
				Default: cfg.Web.TypeScript,
			},
		},
		{
			Name: "styling",
			Prompt: &survey.Select{
				Message: "Styling:",
				Options: []string{"tailwind", "css-modules", "styled-components", "vanilla"},
				Default: cfg.Web.Styling,
			},
		},
		{
			Name: "ui",
			Prompt: &survey.Select{
				Message: "UI kit:",
				Options: []string{"none", "shadcn", "daisyui", "mui"},
				Default: cfg.Web.UI,
			},
		},
		{
			Name: "testing",
			Prompt: &survey.Select{
				Message: "Test framework:",
				Options: []string{"none", "vitest", "jest", "playwright"},
				Default: cfg.Web.Testing,
			},
		},
		{
			Name: "stateManagement",
			Prompt: &survey.Select{
				Message: "State management:",
				Options: []string{"none", "zustand", "redux", "pinia"},
				Default: cfg.Web.StateManagement,
			},
		},
		{
			Name: "linting",
			Prompt: &survey.Confirm{
				Message: "Enable linting?",
				Default: cfg.Web.Linting,
			},
		},
		{
			Name: "formatting",
			Prompt: &survey.Confirm{
				Message: "Enable formatting?",
				Default: cfg.Web.Formatting,
			},
		},
		{
			Name: "gitHooks",
			Prompt: &survey.Confirm{
				Message: "Enable git hooks?",
				Default: cfg.Web.GitHooks,
			},
		},
	}

	answers := struct {
		Framework       string
		TypeScript      bool
		Styling         string
		UI              string
		Testing         string
		StateManagement string
		Linting         bool
		Formatting      bool
		GitHooks        bool
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	cfg.Web.Framework = answers.Framework
	cfg.Web.TypeScript = answers.TypeScript
	cfg.Web.Styling = answers.Styling
	cfg.Web.UI = answers.UI
	cfg.Web.Testing = answers.Testing
	cfg.Web.StateManagement = answers.StateManagement
	cfg.Web.Linting = answers.Linting
	cfg.Web.Formatting = answers.Formatting
	cfg.Web.GitHooks = answers.GitHooks

	backend, err := collectBackend()
	if err != nil {
		return nil, err
	}
	cfg.Backend = backend

	if err := survey.AskOne(&survey.Select{
		Message: "Package manager:",
		Options: []string{"npm", "pnpm", "yarn", "bun"},
		Default: cfg.PackageManager,
	}, &cfg.PackageManager); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func collectBackend() (*config.Backend, error) {
	var wantBackend bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Add a Firebase backend?",
		Default: false,
	}, &wantBackend); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}
	if !wantBackend {
		return nil, nil
	}

	backend := &config.Backend{Type: "firebase"}

	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Backend features:",
		Options: []string{"auth", "database", "storage"},
		Default: []string{"auth"},
	}, &backend.Features); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Architecture pattern:",
		Options: []string{"server-first", "client-side"},
		Default: "server-first",
	}, &backend.Pattern); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	return backend, nil
}
