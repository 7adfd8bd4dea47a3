package canvas

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryComponentStore provides a concurrency-safe default store.
type InMemoryComponentStore struct {
	mu         sync.RWMutex
	components []Component
}

// NewInMemoryComponentStore creates an empty store.
func NewInMemoryComponentStore() *InMemoryComponentStore {
	return &InMemoryComponentStore{}
}

// List returns a copy of the current canvas contents.
func (s *InMemoryComponentStore) List(_ context.Context) ([]Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Component, len(s.components))
	copy(out, s.components)
	return out, nil
}

// Append adds placed components to the canvas.
func (s *InMemoryComponentStore) Append(_ context.Context, components []Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = append(s.components, components...)
	return nil
}

// ReplaceAll swaps the entire canvas contents.
func (s *InMemoryComponentStore) ReplaceAll(_ context.Context, components []Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make([]Component, len(components))
	copy(s.components, components)
	return nil
}

// Remove deletes a component by id.
func (s *InMemoryComponentStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.components {
		if c.ID == id {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("canvas: component %s not found", id)
}

// Clear removes every component.
func (s *InMemoryComponentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = nil
	return nil
}
