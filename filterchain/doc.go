// Package filterchain maps URL patterns to named filter chains. Definitions
// are ordered and resolution is first-match-wins, with Ant-style patterns
// (? single character, * within a segment, ** across segments).
//
// The package only resolves chain names; executing a chain is the host
// server's job.
package filterchain
