// Package permission implements wildcard permission expressions
// ("domain:action:instance" with * wildcards and comma sublists) and an
// ordered role registry granting expressions per role.
//
// Expressions are case-insensitive. An expression implies another when every
// part either contains the wildcard or is a superset of the other's part;
// trailing parts of a shorter granted expression imply everything beneath it.
package permission
