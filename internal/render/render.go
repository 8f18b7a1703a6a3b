// Package render is the template/copy backend for project generation.
//
// It wraps text/template with a parse cache and helper functions, and embeds
// the project template and static asset trees. The plan executor treats
// Render as a pure function of (template id, context).
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer renders embedded project templates with caching.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// New creates a renderer with the built-in helper functions.
func New() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// Render renders the embedded template identified by id (a path below
// templates/, without the .tmpl suffix) with the given context.
func (r *Renderer) Render(id string, data any) ([]byte, error) {
	path := "templates/" + id + ".tmpl"

	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()

	if !ok {
		raw, err := templatesFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("template %q not found: %w", id, err)
		}

		tmpl, err = template.New(id).Funcs(r.funcMap).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", id, err)
		}

		r.mu.Lock()
		r.cache[path] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %q: %w", id, err)
	}
	return buf.Bytes(), nil
}

// Static returns the raw bytes of an embedded static asset (a path below
// static/).
func Static(source string) ([]byte, error) {
	raw, err := staticFS.ReadFile("static/" + source)
	if err != nil {
		return nil, fmt.Errorf("static asset %q not found: %w", source, err)
	}
	return raw, nil
}

// ClearCache clears the template cache (useful for testing).
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

// defaultFuncMap returns the default template function map.
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"pascalCase": PascalCase,
		"camelCase":  CamelCase,
		"quote":      Quote,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"trim":       strings.TrimSpace,
		"join":       strings.Join,
		"contains":   strings.Contains,
		"hasPrefix":  strings.HasPrefix,
		"replace":    strings.ReplaceAll,
	}
}

// PascalCase converts kebab-case or snake_case to PascalCase.
// Examples: my-app → MyApp, user_name → UserName
func PascalCase(s string) string {
	if s == "" {
		return ""
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(string(part[0])) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

// CamelCase converts kebab-case or snake_case to camelCase.
// Examples: my-app → myApp, user_name → userName
func CamelCase(s string) string {
	p := PascalCase(s)
	if p == "" {
		return ""
	}
	if unicode.IsUpper(rune(p[0])) {
		return strings.ToLower(string(p[0])) + p[1:]
	}
	return p
}

// Quote wraps a string in double quotes.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}
