package commitlog

import (
	"fmt"
	"regexp"
)

// Filter keeps records whose message matches a pattern.
// A nil *Filter keeps everything.
type Filter struct {
	re *regexp.Regexp
}

// NewFilter compiles pattern. An empty pattern returns a nil filter.
func NewFilter(pattern string) (*Filter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling filter: %w", err)
	}
	return &Filter{re: re}, nil
}

// Match reports whether a single message passes the filter.
func (f *Filter) Match(message string) bool {
	if f == nil {
		return true
	}
	return f.re.MatchString(message)
}

// Apply returns the records that pass the filter, preserving order.
func (f *Filter) Apply(records []Record) []Record {
	if f == nil {
		return records
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r.Message) {
			kept = append(kept, r)
		}
	}
	return kept
}

// String returns the source pattern.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.re.String()
}
