// Package middleware provides net/http wrappers around the security engine:
// captcha enforcement on form submissions and filter-chain routing of
// incoming paths.
package middleware
