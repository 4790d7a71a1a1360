package calculator

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the available tools by name
type Registry struct {
	mu    sync.RWMutex
	tools map[Name]Tool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[Name]Tool),
	}
}

// NewDefaultRegistry creates a registry holding the five trade tools
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(airflowTool{})
	r.Register(loadTool{})
	r.Register(pipeTool{})
	r.Register(sheathingTool{})
	r.Register(shingleTool{})
	return r
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the shared registry of built-in tools
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
	})
	return defaultRegistry
}

// Register adds a tool. Panics on an empty or duplicate name (fail fast).
func (r *Registry) Register(tool Tool) {
	if err := r.RegisterSafe(tool); err != nil {
		panic(err.Error())
	}
}

// RegisterSafe adds a tool, returning an error instead of panicking
func (r *Registry) RegisterSafe(tool Tool) error {
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool has no name")
	}
	if d := tool.Describe(); d.Name != name {
		return fmt.Errorf("tool %s describes itself as %s", name, d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}
	r.tools[name] = tool
	return nil
}

// Get returns a tool by name, case-insensitively
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[Name(strings.ToLower(strings.TrimSpace(name)))]
	return tool, ok
}

// Names returns registered tool names in sorted order
func (r *Registry) Names() []Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Name, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Describe returns the descriptors of all tools in name order
func (r *Registry) Describe() []Descriptor {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(names))
	for _, n := range names {
		out = append(out, r.tools[n].Describe())
	}
	return out
}

// Calculate runs the named tool. The boolean is false when no such tool is
// registered; the calculation itself cannot fail.
func (r *Registry) Calculate(name string, fields Fields) (Result, bool) {
	tool, ok := r.Get(name)
	if !ok {
		return Result{}, false
	}
	return tool.Calculate(fields), true
}
