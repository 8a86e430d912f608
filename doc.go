// Package goSecure provides web-security configuration binding and a
// cache-backed captcha verifier: session/cache/login settings, ordered
// filter-chain definitions, role permission defaults, and time-boxed captcha
// issuance and validation on top of an injected cache capability.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goSecure is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (MetricsSnapshot, RolePermission, etc.). Cache adapters live
// in rediscache and memcache; the low-level resolver, filter-chain matching,
// wildcard permissions, and stateless tokens live in their own sub-packages.
//
// # What this package must NOT do
//
//   - Implement cache eviction, persistence, or clustering. The [Cache]
//     capability is injected; its consistency guarantees are the caller's.
//   - Execute a filter pipeline or manage sessions. Chain resolution returns
//     a chain name; enforcement belongs to the host server (see middleware
//     for a minimal net/http adapter).
//   - Import any sub-package that re-imports goSecure (no import cycles).
package goSecure
