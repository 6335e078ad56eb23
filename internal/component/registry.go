package component

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/roach88/dosio/internal/engine"
)

var (
	ErrComponentExists   = errors.New("component already registered")
	ErrComponentNotFound = errors.New("component not found")
	ErrInvalidParams     = errors.New("invalid component parameters")
)

// Params decodes a component's configuration block. *yaml.Node satisfies it.
type Params interface {
	Decode(v any) error
}

// Factory builds a component from its parameters. params is never nil.
type Factory func(params Params) (engine.Component, error)

// Registration describes one component type.
type Registration struct {
	Name        string
	Description string
	Factory     Factory
}

// Registry maps component names to factories.
//
// Thread-safety: Registry is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Registration)}
}

// Register adds a component type.
func (r *Registry) Register(reg Registration) error {
	if reg.Name == "" {
		return errors.New("component name is required")
	}
	if reg.Factory == nil {
		return fmt.Errorf("component %q: factory is required", reg.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.m[reg.Name]; exists {
		return fmt.Errorf("%w: %s", ErrComponentExists, reg.Name)
	}
	r.m[reg.Name] = reg
	return nil
}

// Build creates a component of the named type. A nil params decodes as an
// empty configuration.
func (r *Registry) Build(name string, params Params) (engine.Component, error) {
	r.mu.RLock()
	reg, ok := r.m[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, name)
	}
	if params == nil {
		params = noParams{}
	}
	c, err := reg.Factory(params)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return c, nil
}

// Lookup returns the registration of a component type.
func (r *Registry) Lookup(name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.m[name]
	return reg, ok
}

// List returns every registration, sorted by name.
func (r *Registry) List() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Registration, 0, len(r.m))
	for _, reg := range r.m {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default returns a registry holding the built-in components.
func Default() *Registry {
	r := NewRegistry()
	for _, reg := range builtins() {
		if err := r.Register(reg); err != nil {
			panic(err)
		}
	}
	return r
}

func builtins() []Registration {
	return []Registration{
		{Name: "playback", Description: "replays recorded series, one payload per tick", Factory: newPlayback},
		{Name: "gain", Description: "scales signals by a constant", Factory: newGain},
		{Name: "sum", Description: "adds or subtracts two signals", Factory: newSum},
		{Name: "delay", Description: "delays signals by one tick", Factory: newDelay},
		{Name: "monitor", Description: "running statistic of a signal", Factory: newMonitor},
	}
}

type noParams struct{}

func (noParams) Decode(any) error { return nil }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
