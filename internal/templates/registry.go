// Package templates defines the parametric shape generators placed on the
// canvas. Two read-only registries exist: general UI components and
// diagram shapes. Generators are pure functions of their parameters.
package templates

import (
	"errors"
	"fmt"
	"strings"

	"wireterm/internal/grid"
)

var ErrUnknownTemplate = errors.New("unknown template")

// Generator builds the content of a shape from its parameters.
type Generator func(p Params) grid.Content

type Descriptor struct {
	Key      string
	Label    string
	Category string
	Icon     string
	Generate Generator
}

type Category struct {
	Key   string
	Label string
	Color string
}

// Group is one palette section: a category and its templates in registry order.
type Group struct {
	Category  Category
	Templates []Descriptor
}

// Registry is an immutable table of descriptors keyed by template key.
type Registry struct {
	name       string
	byKey      map[string]Descriptor
	order      []string
	categories []Category
}

func newRegistry(name string, categories []Category, descriptors ...Descriptor) *Registry {
	r := &Registry{
		name:       name,
		byKey:      make(map[string]Descriptor, len(descriptors)),
		categories: categories,
	}
	for _, d := range descriptors {
		if _, dup := r.byKey[d.Key]; dup {
			panic(fmt.Sprintf("templates: duplicate key %q in %s registry", d.Key, name))
		}
		r.byKey[d.Key] = d
		r.order = append(r.order, d.Key)
	}
	return r
}

func (r *Registry) Name() string { return r.name }

func (r *Registry) Get(key string) (Descriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// Generate runs the generator for key. Unknown keys yield ErrUnknownTemplate.
func (r *Registry) Generate(key string, opts ...Option) (grid.Content, error) {
	d, ok := r.byKey[key]
	if !ok {
		return grid.Content{}, fmt.Errorf("%w: %q in %s registry", ErrUnknownTemplate, key, r.name)
	}
	return d.Generate(newParams(opts)), nil
}

// Keys lists template keys in definition order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, key := range r.order {
		out[i] = r.byKey[key]
	}
	return out
}

func (r *Registry) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

// Grouped buckets descriptors by category for a palette. Declared categories
// come first in their declared order; undeclared ones follow as "other".
func (r *Registry) Grouped() []Group {
	index := make(map[string]int)
	var groups []Group
	for _, c := range r.categories {
		index[c.Key] = len(groups)
		groups = append(groups, Group{Category: c})
	}
	for _, d := range r.Descriptors() {
		key := d.Category
		if key == "" {
			key = "other"
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Category: Category{Key: key, Label: strings.ToUpper(key[:1]) + key[1:]}})
		}
		groups[i].Templates = append(groups[i].Templates, d)
	}
	out := groups[:0]
	for _, g := range groups {
		if len(g.Templates) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Mode selects which registry placement draws from.
type Mode int

const (
	UIMode Mode = iota
	DiagramMode
)

func (m Mode) String() string {
	switch m {
	case DiagramMode:
		return "diagram"
	default:
		return "ui"
	}
}

// ParseMode accepts "ui" (also "web", the legacy name) and "diagram".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ui", "web":
		return UIMode, nil
	case "diagram":
		return DiagramMode, nil
	default:
		return UIMode, fmt.Errorf("unknown mode %q", s)
	}
}

func (m Mode) Toggle() Mode {
	if m == DiagramMode {
		return UIMode
	}
	return DiagramMode
}

// For returns the registry of a mode.
func For(m Mode) *Registry {
	if m == DiagramMode {
		return Diagram
	}
	return UI
}
