package content

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/finfluency/internal/progress"
)

//go:embed data/*.yaml
var dataFS embed.FS

const glossaryFile = "data/glossary.yaml"

// Catalog holds the validated course content.
type Catalog struct {
	modules  []Module
	byID     map[int]*Module
	glossary []Term
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded content files.
// The files are parsed and validated once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(dataFS)
	})
	return defaultCatalog, defaultErr
}

// Load parses module and glossary files from fsys and validates them.
// Module files match data/module*.yaml; the glossary lives in
// data/glossary.yaml.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "data/module*.yaml")
	if err != nil {
		return nil, err
	}

	modules := make([]Module, 0, len(paths))
	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var m Module
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		modules = append(modules, m)
	}

	var glossary []Term
	if raw, err := fs.ReadFile(fsys, glossaryFile); err == nil {
		if err := yaml.Unmarshal(raw, &glossary); err != nil {
			return nil, fmt.Errorf("parse %s: %w", glossaryFile, err)
		}
	}

	return New(modules, glossary)
}

// New builds a catalog from already-decoded content.
func New(modules []Module, glossary []Term) (*Catalog, error) {
	if err := validateContent(validator.New(validator.WithRequiredStructEnabled()), modules, glossary); err != nil {
		return nil, err
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].ID < modules[j].ID })
	c := &Catalog{
		modules:  modules,
		byID:     make(map[int]*Module, len(modules)),
		glossary: glossary,
	}
	for i := range c.modules {
		c.byID[c.modules[i].ID] = &c.modules[i]
	}
	return c, nil
}

// Modules returns every module ordered by id.
func (c *Catalog) Modules() []Module {
	return c.modules
}

// Module returns the module with the given id.
func (c *Catalog) Module(id int) (*Module, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Requirements returns what a module needs for completion.
func (c *Catalog) Requirements(id int) (progress.Requirements, bool) {
	m, ok := c.byID[id]
	if !ok {
		return progress.Requirements{}, false
	}
	return progress.Requirements{
		ConceptIDs:    m.ConceptIDs(),
		PassThreshold: m.Threshold(),
	}, true
}

// Glossary returns glossary terms sorted alphabetically.
func (c *Catalog) Glossary() []Term {
	out := make([]Term, len(c.glossary))
	copy(out, c.glossary)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Term) < strings.ToLower(out[j].Term)
	})
	return out
}

// SearchGlossary returns the sorted terms whose name or definition contains
// query, ignoring case. An empty query matches everything.
func (c *Catalog) SearchGlossary(query string) []Term {
	q := strings.ToLower(strings.TrimSpace(query))
	all := c.Glossary()
	if q == "" {
		return all
	}
	out := all[:0]
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Term), q) || strings.Contains(strings.ToLower(t.Definition), q) {
			out = append(out, t)
		}
	}
	return out
}

// CaseStudy returns the case text a practice question refers to.
func (m *Module) CaseStudy(q PracticeQuestion) string {
	if q.Case == "" {
		return ""
	}
	return m.Cases[q.Case]
}
