package canvas

import (
	"fmt"
	"sort"
	"sync"
)

// TemplateHook lets packages register templates during init().
type TemplateHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []TemplateHook
)

// RegisterTemplateHook registers a hook executed against new registries.
func RegisterTemplateHook(h TemplateHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements TemplateRegistry with hook + manifest support.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
	validator PropertyValidator
}

// RegistryOption customizes registry construction.
type RegistryOption func(*Registry)

// WithRegistryValidator installs the validator used for manifest payloads.
func WithRegistryValidator(v PropertyValidator) RegistryOption {
	return func(r *Registry) {
		r.validator = v
	}
}

// NewRegistry builds a registry seeded with the default templates and
// applies global hooks.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{
		templates: map[string]Template{},
		validator: NewJSONSchemaValidator(),
	}
	for _, opt := range opts {
		opt(reg)
	}
	for _, t := range BuildDefaultTemplates(DefaultLayoutConfig()) {
		_ = reg.Register(t)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered template hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register stores a template by key.
func (r *Registry) Register(t Template) error {
	if t.Key == "" {
		return fmt.Errorf("canvas: template key is required")
	}
	if len(t.Components) == 0 {
		return fmt.Errorf("canvas: template %s has no components", t.Key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Key] = t
	return nil
}

// Template fetches a template by key.
func (r *Registry) Template(key string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[key]
	return t, ok
}

// Templates returns all registered templates sorted by key.
func (r *Registry) Templates() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
