package filterchain

import (
	"errors"
	"strings"
	"sync"
)

// Well-known chain names. Callers may register patterns against any name;
// these cover the common access-control chains.
const (
	// ChainAnon marks anonymous access.
	ChainAnon = "anon"
	// ChainAuthc requires an authenticated caller.
	ChainAuthc = "authc"
	// ChainUser requires a known (authenticated or remembered) caller.
	ChainUser = "user"
	// ChainLogout ends the caller's session.
	ChainLogout = "logout"
)

// Definition binds one URL pattern to a chain name.
type Definition struct {
	Pattern string
	Chain   string
}

// Resolver resolves request paths to chain names over an ordered definition
// list. Register definitions during bootstrap, then [Resolver.Freeze] before
// serving.
type Resolver struct {
	mu     sync.RWMutex
	defs   []Definition
	frozen bool
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Register appends a pattern→chain definition, or updates the chain in place
// when the pattern was already registered (order is preserved either way).
// Must be called before [Resolver.Freeze].
func (r *Resolver) Register(pattern, chain string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.New("resolver frozen")
	}
	if strings.TrimSpace(pattern) == "" {
		return errors.New("pattern cannot be empty")
	}
	if strings.TrimSpace(chain) == "" {
		return errors.New("chain name cannot be empty")
	}

	for i := range r.defs {
		if r.defs[i].Pattern == pattern {
			r.defs[i].Chain = chain
			return nil
		}
	}

	r.defs = append(r.defs, Definition{Pattern: pattern, Chain: chain})
	return nil
}

// RegisterAll registers defs in order.
func (r *Resolver) RegisterAll(defs []Definition) error {
	for _, def := range defs {
		if err := r.Register(def.Pattern, def.Chain); err != nil {
			return err
		}
	}
	return nil
}

// Freeze prevents further registrations. Must be called before the resolver
// is used for resolution.
func (r *Resolver) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Resolve returns the chain name of the first definition whose pattern
// matches path, or false when no pattern matches.
func (r *Resolver) Resolve(path string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.defs {
		if Match(def.Pattern, path) {
			return def.Chain, true
		}
	}
	return "", false
}

// Definitions returns a copy of the registered definitions in order.
func (r *Resolver) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of registered definitions.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
