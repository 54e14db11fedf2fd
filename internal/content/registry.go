package content

import (
	"sync"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

// Registry maps target types to their content sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[models.TargetType]Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[models.TargetType]Source)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.TargetType()] = s
}

func (r *Registry) Get(t models.TargetType) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[t]
	return s, ok
}

// All returns the registered sources in models.TargetTypes order.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Source, 0, len(r.sources))
	for _, t := range models.TargetTypes {
		if s, ok := r.sources[t]; ok {
			result = append(result, s)
		}
	}
	return result
}

// Models collects the models of every registered source for migration.
func (r *Registry) Models() []interface{} {
	var all []interface{}
	for _, s := range r.All() {
		all = append(all, s.Models()...)
	}
	return all
}
