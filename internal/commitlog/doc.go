// Package commitlog holds the persisted commit log used by both CLIs.
//
// This package implements:
//   - Record, one commit enriched with churn statistics
//   - parsing of field-delimited `git log --pretty=format:` output
//   - message filtering
//   - the JSON store (merge, dedupe by hash, atomic write)
//
// The on-disk format is a tab-indented JSON array of records, newest first,
// so repeated runs produce small diffs under version control.
package commitlog
