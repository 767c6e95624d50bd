package adapter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flowkit-plugins/docintel/core/descriptor"
)

type registry struct {
	entries map[string]Capability
	mu      sync.RWMutex
}

var register = &registry{
	entries: make(map[string]Capability),
}

// Register adds a capability to the global registry under its descriptor
// name. Returns ErrAlreadyExists if the name is taken.
// Thread-safe for concurrent registration.
func Register(capability Capability) error {
	name := capability.Descriptor().Name
	if name == "" {
		return ErrEmptyName
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if _, exists := register.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}

	register.entries[name] = capability
	return nil
}

// MustRegister registers a capability and panics on failure. Intended for
// package init of node implementations.
func MustRegister(capability Capability) {
	if err := Register(capability); err != nil {
		panic(err)
	}
}

// Get retrieves a capability by node name.
// Returns ErrNotFound if no capability with the given name is registered.
func Get(name string) (Capability, error) {
	register.mu.RLock()
	defer register.mu.RUnlock()

	entry, exists := register.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return entry, nil
}

// List returns the descriptors of all registered capabilities, sorted by
// node name.
func List() []descriptor.Descriptor {
	register.mu.RLock()
	defer register.mu.RUnlock()

	descs := make([]descriptor.Descriptor, 0, len(register.entries))
	for _, entry := range register.entries {
		descs = append(descs, entry.Descriptor())
	}

	sort.Slice(descs, func(i, j int) bool {
		return descs[i].Name < descs[j].Name
	})

	return descs
}
