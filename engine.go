package goSecure

import (
	"github.com/MrEthical07/goSecure/captcha"
	"github.com/MrEthical07/goSecure/filterchain"
	"github.com/MrEthical07/goSecure/permission"
	"github.com/MrEthical07/goSecure/token"
)

// Engine defines a public type used by goSecure APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	resolver *captcha.Resolver
	chains   *filterchain.Resolver
	roles    *permission.Registry
	tokens   *token.Manager
	metrics  *Metrics
	warn     WarnFunc
}

// Enabled reports whether the security layer is active.
func (e *Engine) Enabled() bool {
	return e != nil && e.config.Enabled
}

// Config returns a copy of the engine's effective configuration.
func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	return cloneConfig(e.config)
}

// ResolveChain returns the filter-chain name for path. The first registered
// pattern that matches wins; [ErrChainNotFound] is returned when none does.
func (e *Engine) ResolveChain(path string) (string, error) {
	if e == nil || e.chains == nil {
		return "", ErrEngineNotReady
	}
	chain, ok := e.chains.Resolve(path)
	if !ok {
		e.metricInc(MetricChainUnmatched)
		return "", ErrChainNotFound
	}
	e.metricInc(MetricChainResolved)
	return chain, nil
}

// ChainDefinitions returns the registered pattern-to-chain definitions in
// evaluation order.
func (e *Engine) ChainDefinitions() []filterchain.Definition {
	if e == nil || e.chains == nil {
		return nil
	}
	return e.chains.Definitions()
}

// RolePermissions returns the permission expressions granted to role, or
// [ErrRoleNotFound] when the role was never registered.
func (e *Engine) RolePermissions(role string) ([]string, error) {
	if e == nil || e.roles == nil {
		return nil, ErrEngineNotReady
	}
	perms, ok := e.roles.Permissions(role)
	if !ok {
		return nil, ErrRoleNotFound
	}
	return perms, nil
}

// RolePermits reports whether role is granted an expression implying expr.
// It returns [ErrRoleNotFound] when the role was never registered.
func (e *Engine) RolePermits(role, expr string) (bool, error) {
	if e == nil || e.roles == nil {
		return false, ErrEngineNotReady
	}
	implied, ok := e.roles.Implies(role, expr)
	if !ok {
		return false, ErrRoleNotFound
	}
	return implied, nil
}

// Roles returns the registered role names in registration order.
func (e *Engine) Roles() []string {
	if e == nil || e.roles == nil {
		return nil
	}
	return e.roles.Roles()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) warnf(msg string, err error) {
	if e == nil || e.warn == nil {
		return
	}
	e.warn(msg, err)
}
