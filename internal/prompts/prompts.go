// file: internal/prompts/prompts.go
// version: 1.1.0
// guid: 5c4d3e2f-1a0b-4c9d-8e7f-6a5b4c3d2e1f

package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var embedded embed.FS

// Template ids known to the renderer. Each maps to a YAML file with
// "system" and "user" keys holding text/template sources.
const (
	TemplateCleaner            = "cleaner"
	TemplateQualityReview      = "quality_review"
	TemplateSearchAlternatives = "search_alternatives"
	TemplateFallback           = "fallback"
)

// Rendered holds one rendered prompt pair.
type Rendered struct {
	System string
	User   string
}

type promptFile struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// Renderer loads YAML prompt templates and renders them with a
// variable bag. Templates ship embedded; an override directory can
// shadow individual files without rebuilding.
type Renderer struct {
	overrideDir string
	cache       map[string]*promptTemplates
}

type promptTemplates struct {
	system *template.Template
	user   *template.Template
}

// NewRenderer returns a Renderer. overrideDir may be empty to use only
// the embedded templates.
func NewRenderer(overrideDir string) *Renderer {
	return &Renderer{
		overrideDir: overrideDir,
		cache:       make(map[string]*promptTemplates),
	}
}

// Render renders the named template with vars and returns the system
// and user prompts.
func (r *Renderer) Render(id string, vars any) (Rendered, error) {
	tmpl, err := r.load(id)
	if err != nil {
		return Rendered{}, err
	}

	var sysBuf, userBuf bytes.Buffer
	if err := tmpl.system.Execute(&sysBuf, vars); err != nil {
		return Rendered{}, fmt.Errorf("failed to render system prompt %q: %w", id, err)
	}
	if err := tmpl.user.Execute(&userBuf, vars); err != nil {
		return Rendered{}, fmt.Errorf("failed to render user prompt %q: %w", id, err)
	}
	return Rendered{System: sysBuf.String(), User: userBuf.String()}, nil
}

func (r *Renderer) load(id string) (*promptTemplates, error) {
	if cached, ok := r.cache[id]; ok {
		return cached, nil
	}

	raw, err := r.readSource(id)
	if err != nil {
		return nil, err
	}

	var pf promptFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %q: %w", id, err)
	}
	if pf.System == "" || pf.User == "" {
		return nil, fmt.Errorf("prompt template %q must define both system and user", id)
	}

	sysTmpl, err := template.New(id + ".system").Parse(pf.System)
	if err != nil {
		return nil, fmt.Errorf("failed to compile system template %q: %w", id, err)
	}
	userTmpl, err := template.New(id + ".user").Parse(pf.User)
	if err != nil {
		return nil, fmt.Errorf("failed to compile user template %q: %w", id, err)
	}

	result := &promptTemplates{system: sysTmpl, user: userTmpl}
	r.cache[id] = result
	return result, nil
}

func (r *Renderer) readSource(id string) ([]byte, error) {
	name := id + ".yaml"
	if r.overrideDir != "" {
		if raw, err := os.ReadFile(filepath.Join(r.overrideDir, name)); err == nil {
			return raw, nil
		}
	}
	raw, err := embedded.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown prompt template %q: %w", id, err)
	}
	return raw, nil
}
