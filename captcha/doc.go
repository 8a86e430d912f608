// Package captcha implements the low-level captcha record store: a (text,
// issue-time) pair written under two keys of an injected [Cache] capability
// and validated with a case-insensitive compare plus an age check.
//
// The package owns no cache implementation. Eviction, persistence, and
// clustering are the injected cache's concern; adapters for Redis and an
// in-process cache live in the rediscache and memcache packages.
package captcha
