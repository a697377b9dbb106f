package node

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry maintains a mapping of node IDs to implementations.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

// NewRegistry constructs an empty node registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[string]Node),
	}
}

// Register adds the node under its declared id.
func (r *Registry) Register(n Node) error {
	if n == nil {
		return errors.New("node must not be nil")
	}

	spec := n.Spec()
	if spec.ID == "" {
		return errors.New("node id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[spec.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, spec.ID)
	}
	r.nodes[spec.ID] = n
	return nil
}

// Lookup returns the node registered under the given id.
func (r *Registry) Lookup(id string) (Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return n, nil
}

// List returns the specs of all registered nodes, ordered by id.
func (r *Registry) List() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]Spec, 0, len(r.nodes))
	for _, n := range r.nodes {
		specs = append(specs, n.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
