// Package registry maps scene IDs to factories.
// The host builds one registry per session and resolves navigation
// requests through it, so scenes never construct each other directly.
package registry

import (
	"fmt"

	"github.com/opendan/opendan/internal/scene"
)

// Factory creates a new instance of a scene.
type Factory func() scene.Scene

// Registry holds scene factories by ID. It belongs to one session and is
// not safe for concurrent use.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a scene factory.
// Panics if a scene with the same ID is already registered.
func (r *Registry) Register(id string, f Factory) {
	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}
	r.factories[id] = f
}

// Create instantiates a new scene by its ID.
// Returns an error if the ID is not registered.
func (r *Registry) Create(id string) (scene.Scene, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}
	return f(), nil
}
