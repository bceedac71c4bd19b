// Package pipeline wires the collaborators of the two commands together.
//
// Fetch: resolve range -> git log -> parse -> filter -> version -> diff stats.
// Render: load commit log -> filter -> classify and render.
package pipeline
