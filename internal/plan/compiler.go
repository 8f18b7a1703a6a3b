package plan

import (
	"fmt"
	"strings"

	"github.com/tinderbox-cli/tinderbox/internal/config"
)

// InternalError reports a duplicate destination path in a compiled plan.
// This is a programming error in the rule table, not a user-facing condition.
type InternalError struct {
	Dest  string
	Rules []string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("plan invariant violated: duplicate destination %q emitted by rules %s",
		e.Dest, strings.Join(e.Rules, ", "))
}

// rule is one unit of the compiler: a guard, a phase, an operation builder,
// and optionally a set of destination paths to suppress from earlier rules.
// Rules are evaluated in declaration order against one configuration.
type rule struct {
	name     string
	phase    string
	when     func(*config.Config) bool
	build    func(*config.Config) []Operation
	suppress func(*config.Config) []string
}

// Compile derives the operation plan for a validated configuration.
//
// It is pure and deterministic, and never fails for a validated config;
// the only error it can return is an InternalError from the rule table
// itself (two rules emitting the same destination without an override).
// When a later rule emits a destination an earlier rule already produced,
// the later rule wins and the operation moves to the later rule's phase.
func Compile(cfg *config.Config) (*Plan, error) {
	type tagged struct {
		op    Operation
		rule  string
		phase string
	}

	var ops []tagged
	suppressed := make(map[string]bool)

	for _, r := range rules {
		if r.when != nil && !r.when(cfg) {
			continue
		}
		if r.suppress != nil {
			for _, dest := range r.suppress(cfg) {
				suppressed[dest] = true
			}
		}
		if r.build == nil {
			continue
		}
		for _, op := range r.build(cfg) {
			// Last-declared rule wins on a shared destination.
			kept := ops[:0]
			for _, t := range ops {
				if t.op.Dest() == op.Dest() {
					if t.rule == r.name {
						return nil, &InternalError{Dest: op.Dest(), Rules: []string{r.name}}
					}
					continue
				}
				kept = append(kept, t)
			}
			ops = append(kept, tagged{op: op, rule: r.name, phase: r.phase})
		}
	}

	// Apply suppressions (explicit negative guards).
	kept := ops[:0]
	for _, t := range ops {
		if suppressed[t.op.Dest()] {
			continue
		}
		kept = append(kept, t)
	}
	ops = kept

	// The override pass above makes duplicates impossible; this guards the
	// invariant against future rule-table mistakes.
	byDest := make(map[string]string, len(ops))
	for _, t := range ops {
		if prev, dup := byDest[t.op.Dest()]; dup {
			return nil, &InternalError{Dest: t.op.Dest(), Rules: []string{prev, t.rule}}
		}
		byDest[t.op.Dest()] = t.rule
	}

	// Partition into phases, preserving emission order within each phase.
	p := &Plan{}
	for _, name := range phaseOrder {
		var phaseOps []Operation
		for _, t := range ops {
			if t.phase == name {
				phaseOps = append(phaseOps, t.op)
			}
		}
		if len(phaseOps) > 0 {
			p.Phases = append(p.Phases, Phase{Name: name, Ops: phaseOps})
		}
	}
	return p, nil
}

// scriptExt returns the extension for plain script files.
func scriptExt(cfg *config.Config) string {
	if cfg.Web.TypeScript {
		return "ts"
	}
	return "js"
}

// jsxExt returns the extension for component files.
func jsxExt(cfg *config.Config) string {
	if cfg.Web.TypeScript {
		return "tsx"
	}
	return "jsx"
}

// rules is the fixed, ordered rule table. Order matters twice: later rules
// win destination conflicts, and suppressions from any rule apply to the
// whole plan.
var rules = []rule{
	{
		name:  "base-config",
		phase: PhaseConfig,
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "config/package.json", DestPath: "package.json", Context: cfg},
				RenderOp{TemplateID: "config/vite.config", DestPath: "vite.config." + scriptExt(cfg), Context: cfg},
				RenderOp{TemplateID: "config/tinderbox.yml", DestPath: ".tinderbox.yml", Context: cfg},
			}
		},
	},
	{
		name:  "typescript-config",
		phase: PhaseConfig,
		when:  func(cfg *config.Config) bool { return cfg.Web.TypeScript },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "config/tsconfig.json", DestPath: "tsconfig.json", Context: cfg},
			}
		},
	},
	{
		name:  "testing-config",
		phase: PhaseConfig,
		when:  func(cfg *config.Config) bool { return cfg.Web.Testing != "none" },
		build: func(cfg *config.Config) []Operation {
			switch cfg.Web.Testing {
			case "jest":
				return []Operation{
					RenderOp{TemplateID: "testing/jest.config", DestPath: "jest.config.js", Context: cfg},
				}
			case "playwright":
				return []Operation{
					RenderOp{TemplateID: "testing/playwright.config", DestPath: "playwright.config." + scriptExt(cfg), Context: cfg},
					MkdirOp{DestPath: "e2e"},
				}
			default:
				return []Operation{
					RenderOp{TemplateID: "testing/vitest.config", DestPath: "vitest.config." + scriptExt(cfg), Context: cfg},
				}
			}
		},
	},
	{
		name:  "base-source",
		phase: PhaseSource,
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "src/index.html", DestPath: "index.html", Context: cfg},
				RenderOp{TemplateID: "src/main", DestPath: "src/main." + jsxExt(cfg), Context: cfg},
				RenderOp{TemplateID: "src/app", DestPath: "src/App." + jsxExt(cfg), Context: cfg},
				RenderOp{TemplateID: "src/styles.css", DestPath: "src/styles.css", Context: cfg},
				RenderOp{TemplateID: "src/utils", DestPath: "src/lib/utils." + scriptExt(cfg), Context: cfg},
				MkdirOp{DestPath: "src/components"},
			}
		},
	},
	{
		name:  "state-management",
		phase: PhaseSource,
		when:  func(cfg *config.Config) bool { return cfg.Web.StateManagement != "none" },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "src/store", DestPath: "src/lib/store." + scriptExt(cfg), Context: cfg},
			}
		},
	},
	{
		name:  "animations",
		phase: PhaseSource,
		when:  func(cfg *config.Config) bool { return cfg.Web.Animations },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "src/animations", DestPath: "src/lib/animations." + scriptExt(cfg), Context: cfg},
			}
		},
	},
	{
		// The backend module supersedes the generic utility placeholder.
		name:  "backend-client",
		phase: PhaseSource,
		when:  func(cfg *config.Config) bool { return cfg.HasBackend() },
		suppress: func(cfg *config.Config) []string {
			return []string{"src/lib/utils." + scriptExt(cfg)}
		},
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "firebase/client", DestPath: "src/lib/firebase/client." + scriptExt(cfg), Context: cfg},
			}
		},
	},
	{
		// Modular admin layout for server-first, legacy single file otherwise.
		// The two layouts are mutually exclusive.
		name:  "backend-admin",
		phase: PhaseSource,
		when:  func(cfg *config.Config) bool { return cfg.HasBackend() },
		build: func(cfg *config.Config) []Operation {
			ext := scriptExt(cfg)
			if cfg.Backend.Pattern == "server-first" {
				ops := []Operation{
					RenderOp{TemplateID: "firebase/admin/app", DestPath: "src/lib/firebase/admin/app." + ext, Context: cfg},
				}
				for _, feature := range []string{"auth", "database", "storage"} {
					if cfg.BackendFeature(feature) {
						ops = append(ops, RenderOp{
							TemplateID: "firebase/admin/" + feature,
							DestPath:   "src/lib/firebase/admin/" + feature + "." + ext,
							Context:    cfg,
						})
					}
				}
				return ops
			}
			return []Operation{
				RenderOp{TemplateID: "firebase/admin-legacy", DestPath: "src/lib/firebase/admin." + ext, Context: cfg},
			}
		},
	},
	{
		name:  "backend-hooks",
		phase: PhaseSource,
		when:  func(cfg *config.Config) bool { return cfg.HasBackend() },
		build: func(cfg *config.Config) []Operation {
			ext := scriptExt(cfg)
			var ops []Operation
			if cfg.BackendFeature("auth") {
				ops = append(ops, RenderOp{TemplateID: "firebase/hooks/use-auth", DestPath: "src/hooks/useAuth." + ext, Context: cfg})
			}
			if cfg.BackendFeature("database") {
				ops = append(ops, RenderOp{TemplateID: "firebase/hooks/use-database", DestPath: "src/hooks/useDatabase." + ext, Context: cfg})
			}
			if cfg.BackendFeature("storage") {
				ops = append(ops, RenderOp{TemplateID: "firebase/hooks/use-storage", DestPath: "src/hooks/useStorage." + ext, Context: cfg})
			}
			return ops
		},
	},
	{
		name:  "backend-env-example",
		phase: PhaseRoot,
		when:  func(cfg *config.Config) bool { return cfg.HasBackend() },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "firebase/env.example", DestPath: ".env.example", Context: cfg},
			}
		},
	},
	{
		name:  "root-meta",
		phase: PhaseRoot,
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "meta/readme.md", DestPath: "README.md", Context: cfg},
				CopyOp{Source: "gitignore", DestPath: ".gitignore"},
				CopyOp{Source: "favicon.svg", DestPath: "public/favicon.svg"},
			}
		},
	},
	{
		name:  "documentation",
		phase: PhaseRoot,
		build: func(cfg *config.Config) []Operation {
			var ops []Operation
			if cfg.Documentation.AIInstructions {
				ops = append(ops, RenderOp{TemplateID: "docs/ai-instructions.md", DestPath: "docs/ai-instructions.md", Context: cfg})
			}
			if cfg.Documentation.Architecture {
				ops = append(ops, RenderOp{TemplateID: "docs/architecture.md", DestPath: "docs/architecture.md", Context: cfg})
			}
			if cfg.Documentation.APIDocs {
				ops = append(ops, RenderOp{TemplateID: "docs/api.md", DestPath: "docs/api.md", Context: cfg})
			}
			if cfg.Documentation.Styleguide {
				ops = append(ops, RenderOp{TemplateID: "docs/styleguide.md", DestPath: "docs/styleguide.md", Context: cfg})
			}
			return ops
		},
	},
	{
		name:  "pwa",
		phase: PhaseRoot,
		when:  func(cfg *config.Config) bool { return cfg.PWA != nil && cfg.PWA.Enabled },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "pwa/manifest.webmanifest", DestPath: "public/manifest.webmanifest", Context: cfg},
			}
		},
	},
	{
		name:  "tooling-lint",
		phase: PhaseTooling,
		when:  func(cfg *config.Config) bool { return cfg.Web.Linting },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "tooling/eslint.config", DestPath: "eslint.config.js", Context: cfg},
			}
		},
	},
	{
		name:  "tooling-format",
		phase: PhaseTooling,
		when:  func(cfg *config.Config) bool { return cfg.Web.Formatting },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "tooling/prettierrc", DestPath: ".prettierrc", Context: cfg},
			}
		},
	},
	{
		name:  "tooling-git-hooks",
		phase: PhaseTooling,
		when:  func(cfg *config.Config) bool { return cfg.Web.GitHooks },
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "tooling/pre-commit", DestPath: ".husky/pre-commit", Context: cfg},
			}
		},
	},
}
