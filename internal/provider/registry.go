package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Digital-Shane/like-that/internal/media"
)

// Registry holds one gateway per media kind.
type Registry struct {
	mu       sync.RWMutex
	gateways map[media.Kind]Gateway
}

// NewRegistry creates a registry pre-populated with the given gateways.
func NewRegistry(gateways ...Gateway) (*Registry, error) {
	r := &Registry{gateways: make(map[media.Kind]Gateway)}
	for _, gw := range gateways {
		if err := r.Register(gw); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a gateway to the registry
func (r *Registry) Register(gw Gateway) error {
	if gw == nil {
		return fmt.Errorf("gateway is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kind := gw.Kind()
	if _, exists := r.gateways[kind]; exists {
		return fmt.Errorf("gateway for %s already registered", kind)
	}
	r.gateways[kind] = gw
	return nil
}

// Get returns the gateway for a kind
func (r *Registry) Get(kind media.Kind) (Gateway, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.gateways[kind]
	return gw, ok
}

// Kinds returns the registered kinds in name order.
func (r *Registry) Kinds() []media.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]media.Kind, 0, len(r.gateways))
	for k := range r.gateways {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
