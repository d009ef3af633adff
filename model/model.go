// Package model is the public representation of an assembled Smithy model:
// shapes with their applied traits, model metadata, and the diagnostics
// produced while loading.
package model

import (
	"slices"
	"strings"
)

// Model is a fully assembled semantic model.
type Model struct {
	// Version is the Smithy IDL version from the '$version' control
	// statement, e.g. "2.0".
	Version string
	// Metadata holds merged 'metadata' statements across all files,
	// keyed by metadata name.
	Metadata map[string]Node

	shapes map[ShapeID]*Shape

	// Diagnostics are all problems found while loading, sorted by file
	// and position.
	Diagnostics []Diagnostic
}

// New creates an empty model.
func New() *Model {
	return &Model{
		Metadata: make(map[string]Node),
		shapes:   make(map[ShapeID]*Shape),
	}
}

// Shape returns the shape with the given ID, or nil.
func (m *Model) Shape(id ShapeID) *Shape {
	return m.shapes[id.WithoutMember()]
}

// AddShape inserts a shape. It returns false if a shape with the same ID
// already exists; the existing shape is kept.
func (m *Model) AddShape(s *Shape) bool {
	if _, exists := m.shapes[s.ID]; exists {
		return false
	}
	m.shapes[s.ID] = s
	return true
}

// Shapes returns all shapes ordered by ID.
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, 0, len(m.shapes))
	for _, s := range m.shapes {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Shape) int {
		return a.ID.Compare(b.ID)
	})
	return out
}

// NumShapes returns the number of shapes in the model.
func (m *Model) NumShapes() int {
	return len(m.shapes)
}

// Namespaces returns the distinct namespaces of the model's shapes,
// sorted.
func (m *Model) Namespaces() []string {
	set := make(map[string]struct{})
	for id := range m.shapes {
		set[id.Namespace] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for ns := range set {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out
}

// ShapesInNamespace returns the namespace's shapes ordered by ID.
func (m *Model) ShapesInNamespace(namespace string) []*Shape {
	var out []*Shape
	for _, s := range m.shapes {
		if s.ID.Namespace == namespace {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *Shape) int {
		return a.ID.Compare(b.ID)
	})
	return out
}

// HasErrors reports whether loading produced any error or fatal
// diagnostic.
func (m *Model) HasErrors() bool {
	return slices.ContainsFunc(m.Diagnostics, Diagnostic.IsError)
}

// SortDiagnostics orders diagnostics by file, position, and severity.
func (m *Model) SortDiagnostics() {
	slices.SortFunc(m.Diagnostics, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Location.File, b.Location.File); c != 0 {
			return c
		}
		if c := a.Location.Line - b.Location.Line; c != 0 {
			return c
		}
		if c := a.Location.Column - b.Location.Column; c != 0 {
			return c
		}
		return int(a.Severity) - int(b.Severity)
	})
}
