package langparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/similarity-go/similarity/domain"
)

// Registry maps file extensions to parser adapters.
type Registry struct {
	byExt map[string]domain.Parser
}

// NewRegistry builds a registry with every adapter in this package wired
// for its conventional extensions (domain.Extensions).
func NewRegistry() (*Registry, error) {
	r := &Registry{byExt: make(map[string]domain.Parser)}

	py := NewPythonAdapter()
	r.register(py, domain.Extensions(domain.LanguagePython))

	goAdapter, err := NewGoAdapter()
	if err != nil {
		return nil, err
	}
	r.register(goAdapter, domain.Extensions(domain.LanguageGo))

	jsAdapter, err := NewJSAdapter()
	if err != nil {
		return nil, err
	}
	r.register(jsAdapter, domain.Extensions(domain.LanguageJavaScript))
	r.register(jsAdapter, domain.Extensions(domain.LanguageTypeScript))

	return r, nil
}

func (r *Registry) register(p domain.Parser, exts []string) {
	for _, ext := range exts {
		r.byExt[ext] = p
	}
}

// ForFile returns the adapter that handles filename's extension.
func (r *Registry) ForFile(filename string) (domain.Parser, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	p, ok := r.byExt[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("no parser registered for extension %q (file %s)", ext, filename)
	}
	return p, nil
}

// ForLanguage returns the adapter registered for one of lang's conventional
// extensions.
func (r *Registry) ForLanguage(lang domain.LanguageTag) (domain.Parser, error) {
	for _, ext := range domain.Extensions(lang) {
		if p, ok := r.byExt[ext]; ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no parser registered for language %q", lang)
}
