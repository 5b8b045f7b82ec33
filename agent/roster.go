package agent

import (
	"fmt"
	"sync"
)

// Roster holds the agents taking part in a conversation. Iteration follows
// registration order, which is also the order agents get to speak in a round.
// Thread-safe for concurrent access.
type Roster struct {
	mu     sync.RWMutex
	order  []Agent
	byName map[string]Agent
}

// NewRoster creates a Roster and registers agents in the given order.
func NewRoster(agents ...Agent) (*Roster, error) {
	r := &Roster{byName: make(map[string]Agent, len(agents))}
	for _, a := range agents {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends an agent. Names must be non-empty and unique.
func (r *Roster) Register(a Agent) error {
	name := a.Name()
	if name == "" {
		return ErrEmptyAgentName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrAgentExists, name)
	}

	r.byName[name] = a
	r.order = append(r.order, a)
	return nil
}

// Get retrieves an agent by name.
func (r *Roster) Get(name string) (Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	return a, nil
}

// List returns the agents in registration order.
func (r *Roster) List() []Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Agent, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns agent names in registration order.
func (r *Roster) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	for i, a := range r.order {
		names[i] = a.Name()
	}
	return names
}

// Len returns the number of registered agents.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// FirstOfKind returns the earliest registered agent of the given kind.
func (r *Roster) FirstOfKind(kind Kind) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.order {
		if a.Kind() == kind {
			return a, true
		}
	}
	return nil, false
}
