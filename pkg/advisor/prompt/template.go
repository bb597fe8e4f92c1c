// Package prompt holds the named, versioned prompt templates used by the
// advisor pipeline. Templates declare their required variables so rendering
// fails loudly instead of sending a half-filled prompt upstream.
package prompt

import (
	"fmt"
	"strings"
)

type Template struct {
	Name     string
	Version  int
	Required []string
	Text     string
}

// Render substitutes {name} placeholders. Every declared variable must be
// supplied; unknown variables are ignored.
func (t *Template) Render(vars map[string]string) (string, error) {
	for _, name := range t.Required {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("template %s v%d: missing variable %q", t.Name, t.Version, name)
		}
	}
	out := t.Text
	for name, val := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", val)
	}
	return out, nil
}

var registry = map[string]*Template{}

func register(t *Template) *Template {
	registry[t.Name] = t
	return t
}

func Lookup(name string) (*Template, bool) {
	t, ok := registry[name]
	return t, ok
}
