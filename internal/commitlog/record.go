package commitlog

import "strings"

// Record is one commit from the window, enriched with diff statistics.
// JSON keys match the historical commitLog.json layout.
type Record struct {
	Hash       string `json:"hash"`
	Parent     string `json:"parent"`
	Author     string `json:"auth"`
	Date       string `json:"date"`
	Message    string `json:"message"`
	Version    string `json:"version,omitempty"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// FirstParent returns the first parent identifier. Merge commits list several
// space-separated parents; root commits have none and yield "".
func (r Record) FirstParent() string {
	fields := strings.Fields(r.Parent)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsMerge returns true if the record has more than one parent.
func (r Record) IsMerge() bool {
	return len(strings.Fields(r.Parent)) > 1
}

// WithVersion returns copies of records with Version set.
func WithVersion(records []Record, version string) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.Version = version
		out[i] = r
	}
	return out
}
