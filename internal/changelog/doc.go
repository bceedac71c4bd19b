// Package changelog turns a persisted commit log into a Markdown change log.
//
// This package implements:
//   - conventional-commit classification (fix, feat, refactor, style, chore)
//   - message cleanup for display
//   - rendering grouped by version, then by category
//   - colored terminal output of a rendered document
//   - watching the commit log and re-rendering on change
package changelog
