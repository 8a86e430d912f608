package permission

import (
	"errors"
	"strings"
)

const (
	partDivider    = ":"
	subpartDivider = ","
	wildcard       = "*"
)

// Permission is a parsed wildcard permission expression.
type Permission struct {
	source string
	parts  []map[string]struct{}
}

// Parse builds a [Permission] from an expression such as "user:read,write:42".
// Parts are divided by colons, alternatives within a part by commas, and "*"
// matches any value. Parsing is case-insensitive.
func Parse(expr string) (Permission, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Permission{}, errors.New("permission expression cannot be empty")
	}

	var parts []map[string]struct{}
	for _, rawPart := range strings.Split(strings.ToLower(trimmed), partDivider) {
		subparts := make(map[string]struct{})
		for _, sub := range strings.Split(rawPart, subpartDivider) {
			sub = strings.TrimSpace(sub)
			if sub == "" {
				continue
			}
			subparts[sub] = struct{}{}
		}
		if len(subparts) == 0 {
			return Permission{}, errors.New("permission expression cannot contain empty parts")
		}
		parts = append(parts, subparts)
	}

	return Permission{source: trimmed, parts: parts}, nil
}

// String returns the original expression.
func (p Permission) String() string {
	return p.source
}

// Implies reports whether p grants everything other describes.
func (p Permission) Implies(other Permission) bool {
	for i, otherPart := range other.parts {
		// A granted expression shorter than the query implies everything
		// beneath its last part.
		if i >= len(p.parts) {
			return true
		}
		if !partImplies(p.parts[i], otherPart) {
			return false
		}
	}

	// Extra granted parts must all be wildcards.
	for i := len(other.parts); i < len(p.parts); i++ {
		if _, ok := p.parts[i][wildcard]; !ok {
			return false
		}
	}
	return true
}

func partImplies(granted, queried map[string]struct{}) bool {
	if _, ok := granted[wildcard]; ok {
		return true
	}
	for sub := range queried {
		if _, ok := granted[sub]; !ok {
			return false
		}
	}
	return true
}
