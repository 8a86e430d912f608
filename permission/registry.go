package permission

import (
	"errors"
	"strings"
	"sync"
)

// Registry holds the default permission expressions granted per role, in
// registration order. Register roles during bootstrap, then [Registry.Freeze]
// before querying.
type Registry struct {
	mu      sync.RWMutex
	roles   []string
	granted map[string][]Permission
	sources map[string][]string
	frozen  bool
}

// NewRegistry returns an empty role registry.
func NewRegistry() *Registry {
	return &Registry{
		granted: make(map[string][]Permission),
		sources: make(map[string][]string),
	}
}

// RegisterRole grants the expressions to role, parsing and validating each.
// Re-registering a role replaces its grants while keeping its position.
// Must be called before [Registry.Freeze].
func (r *Registry) RegisterRole(role string, exprs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.New("registry frozen")
	}
	if strings.TrimSpace(role) == "" {
		return errors.New("role name cannot be empty")
	}

	perms := make([]Permission, 0, len(exprs))
	sources := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		p, err := Parse(expr)
		if err != nil {
			return err
		}
		perms = append(perms, p)
		sources = append(sources, p.String())
	}

	if _, exists := r.granted[role]; !exists {
		r.roles = append(r.roles, role)
	}
	r.granted[role] = perms
	r.sources[role] = sources
	return nil
}

// Freeze prevents further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Permissions returns the role's granted expressions, or false when the role
// is not registered.
func (r *Registry) Permissions(role string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources, ok := r.sources[role]
	if !ok {
		return nil, false
	}
	out := make([]string, len(sources))
	copy(out, sources)
	return out, true
}

// Implies reports whether any of the role's grants implies the queried
// expression. The second return is false when the role is not registered.
func (r *Registry) Implies(role, expr string) (bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perms, ok := r.granted[role]
	if !ok {
		return false, false
	}

	queried, err := Parse(expr)
	if err != nil {
		return false, true
	}
	for _, p := range perms {
		if p.Implies(queried) {
			return true, true
		}
	}
	return false, true
}

// Roles returns the registered role names in registration order.
func (r *Registry) Roles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.roles))
	copy(out, r.roles)
	return out
}

// Count returns the number of registered roles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roles)
}
