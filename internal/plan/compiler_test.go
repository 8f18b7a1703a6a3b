package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinderbox-cli/tinderbox/internal/config"
)

func baseConfig() *config.Config {
	cfg := config.Defaults("demo")
	return cfg
}

func backendConfig(pattern string, features ...string) *config.Config {
	cfg := baseConfig()
	cfg.Backend = &config.Backend{
		Type:     "firebase",
		Features: features,
		Pattern:  pattern,
	}
	return cfg
}

// allConfigs covers the interesting corners of the configuration space.
func allConfigs() map[string]*config.Config {
	noTS := baseConfig()
	noTS.Web.TypeScript = false

	noTooling := baseConfig()
	noTooling.Web.Linting = false
	noTooling.Web.Formatting = false
	noTooling.Web.GitHooks = false

	everything := backendConfig("server-first", "auth", "database", "storage")
	everything.Web.GitHooks = true
	everything.Web.Animations = true
	everything.Web.StateManagement = "zustand"
	everything.Web.Testing = "playwright"
	everything.Documentation = config.Documentation{
		AIInstructions: true, Architecture: true, APIDocs: true, Styleguide: true,
	}
	everything.PWA = &config.PWA{Enabled: true, ThemeColor: "#f25c26"}

	return map[string]*config.Config{
		"defaults":        baseConfig(),
		"no-typescript":   noTS,
		"no-tooling":      noTooling,
		"backend-server":  backendConfig("server-first", "auth", "database"),
		"backend-client":  backendConfig("client-side", "auth"),
		"backend-storage": backendConfig("server-first", "storage"),
		"everything":      everything,
	}
}

func TestCompile_UniqueDestinations(t *testing.T) {
	for name, cfg := range allConfigs() {
		t.Run(name, func(t *testing.T) {
			p, err := Compile(cfg)
			require.NoError(t, err)

			seen := make(map[string]bool)
			for _, dest := range p.Dests() {
				assert.False(t, seen[dest], "duplicate destination %s", dest)
				seen[dest] = true
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	for name, cfg := range allConfigs() {
		t.Run(name, func(t *testing.T) {
			p1, err := Compile(cfg)
			require.NoError(t, err)
			p2, err := Compile(cfg)
			require.NoError(t, err)

			assert.Equal(t, p1.Dests(), p2.Dests())
		})
	}
}

func TestCompile_TypeScriptGuard(t *testing.T) {
	cfg := baseConfig()
	cfg.Web.TypeScript = false

	p, err := Compile(cfg)
	require.NoError(t, err)

	assert.False(t, p.Contains("tsconfig.json"))
	assert.True(t, p.Contains("vite.config.js"))
	assert.True(t, p.Contains("src/main.jsx"))

	cfg.Web.TypeScript = true
	p, err = Compile(cfg)
	require.NoError(t, err)

	assert.True(t, p.Contains("tsconfig.json"))
	assert.True(t, p.Contains("vite.config.ts"))
	assert.True(t, p.Contains("src/main.tsx"))
}

func TestCompile_NoBackendMeansNoBackendOps(t *testing.T) {
	p, err := Compile(baseConfig())
	require.NoError(t, err)

	for _, dest := range p.Dests() {
		assert.NotContains(t, dest, "firebase", "unexpected backend operation %s", dest)
	}
	assert.False(t, p.Contains(".env.example"))
}

func TestCompile_ServerFirstVersusClientSide(t *testing.T) {
	server, err := Compile(backendConfig("server-first", "auth", "database"))
	require.NoError(t, err)

	assert.True(t, server.Contains("src/lib/firebase/admin/app.ts"))
	assert.True(t, server.Contains("src/lib/firebase/admin/auth.ts"))
	assert.True(t, server.Contains("src/lib/firebase/admin/database.ts"))
	assert.False(t, server.Contains("src/lib/firebase/admin/storage.ts"), "storage feature is off")
	assert.False(t, server.Contains("src/lib/firebase/admin.ts"), "legacy admin module must not coexist")

	client, err := Compile(backendConfig("client-side", "auth", "database"))
	require.NoError(t, err)

	assert.True(t, client.Contains("src/lib/firebase/admin.ts"))
	assert.False(t, client.Contains("src/lib/firebase/admin/app.ts"))
}

func TestCompile_PerFeatureHooksAreIndependent(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		want     []string
		absent   []string
	}{
		{
			name:     "auth only",
			features: []string{"auth"},
			want:     []string{"src/hooks/useAuth.ts"},
			absent:   []string{"src/hooks/useDatabase.ts", "src/hooks/useStorage.ts"},
		},
		{
			name:     "database and storage",
			features: []string{"database", "storage"},
			want:     []string{"src/hooks/useDatabase.ts", "src/hooks/useStorage.ts"},
			absent:   []string{"src/hooks/useAuth.ts"},
		},
		{
			name:     "all features",
			features: []string{"auth", "database", "storage"},
			want:     []string{"src/hooks/useAuth.ts", "src/hooks/useDatabase.ts", "src/hooks/useStorage.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(backendConfig("server-first", tt.features...))
			require.NoError(t, err)

			for _, dest := range tt.want {
				assert.True(t, p.Contains(dest), "missing %s", dest)
			}
			for _, dest := range tt.absent {
				assert.False(t, p.Contains(dest), "unexpected %s", dest)
			}
		})
	}
}

func TestCompile_BackendSuppressesUtilityPlaceholder(t *testing.T) {
	without, err := Compile(baseConfig())
	require.NoError(t, err)
	assert.True(t, without.Contains("src/lib/utils.ts"))

	with, err := Compile(backendConfig("server-first", "auth"))
	require.NoError(t, err)
	assert.False(t, with.Contains("src/lib/utils.ts"), "backend module supersedes the placeholder")
	assert.True(t, with.Contains("src/lib/firebase/client.ts"))
}

func TestCompile_ToolingPhase(t *testing.T) {
	cfg := baseConfig()
	cfg.Web.Linting = false
	cfg.Web.Formatting = false
	cfg.Web.GitHooks = false

	p, err := Compile(cfg)
	require.NoError(t, err)
	for _, ph := range p.Phases {
		assert.NotEqual(t, PhaseTooling, ph.Name, "tooling phase must be absent")
	}

	cfg.Web.GitHooks = true
	p, err = Compile(cfg)
	require.NoError(t, err)

	assert.True(t, p.Contains(".husky/pre-commit"))
	assert.False(t, p.Contains("eslint.config.js"))
	assert.False(t, p.Contains(".prettierrc"))
}

func TestCompile_PhasesAreContiguousAndOrdered(t *testing.T) {
	p, err := Compile(backendConfig("server-first", "auth", "database", "storage"))
	require.NoError(t, err)

	lastIndex := -1
	for _, ph := range p.Phases {
		idx := -1
		for i, name := range phaseOrder {
			if name == ph.Name {
				idx = i
			}
		}
		require.NotEqual(t, -1, idx, "unknown phase %s", ph.Name)
		assert.Greater(t, idx, lastIndex, "phases out of order")
		lastIndex = idx
		assert.NotEmpty(t, ph.Ops)
	}
}

func TestCompile_DuplicateWithinRuleIsInternalError(t *testing.T) {
	saved := rules
	defer func() { rules = saved }()

	rules = append(rules, rule{
		name:  "broken-rule",
		phase: PhaseRoot,
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				MkdirOp{DestPath: "dup"},
				MkdirOp{DestPath: "dup"},
			}
		},
	})

	_, err := Compile(baseConfig())
	require.Error(t, err)

	var internal *InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "dup", internal.Dest)
	assert.Contains(t, internal.Rules, "broken-rule")
}

func TestCompile_LaterRuleWinsSharedDestination(t *testing.T) {
	saved := rules
	defer func() { rules = saved }()

	rules = append(rules, rule{
		name:  "override-readme",
		phase: PhaseRoot,
		build: func(cfg *config.Config) []Operation {
			return []Operation{
				RenderOp{TemplateID: "docs/architecture.md", DestPath: "README.md", Context: cfg},
			}
		},
	})

	p, err := Compile(baseConfig())
	require.NoError(t, err)

	count := 0
	var winner Operation
	for _, op := range p.Operations() {
		if op.Dest() == "README.md" {
			count++
			winner = op
		}
	}
	require.Equal(t, 1, count)
	renderOp, ok := winner.(RenderOp)
	require.True(t, ok)
	assert.Equal(t, "docs/architecture.md", renderOp.TemplateID)
}

// The worked example from the design discussion: no backend, no linting,
// typescript on.
func TestCompile_DemoScenario(t *testing.T) {
	cfg := config.Defaults("demo")
	cfg.Web.TypeScript = true
	cfg.Web.Linting = false
	cfg.Web.Formatting = false
	cfg.Web.GitHooks = false
	cfg.Backend = nil

	p, err := Compile(cfg)
	require.NoError(t, err)

	assert.True(t, p.Contains("tsconfig.json"))
	for _, ph := range p.Phases {
		assert.NotEqual(t, PhaseTooling, ph.Name)
	}
	for _, dest := range p.Dests() {
		assert.NotContains(t, dest, "firebase")
	}
	assert.False(t, p.Contains("eslint.config.js"))
	assert.False(t, p.Contains(".prettierrc"))
	assert.False(t, p.Contains(".husky/pre-commit"))
}
