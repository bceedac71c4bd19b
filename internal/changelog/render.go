package changelog

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/ht-tools/commitlog/internal/commitlog"
)

// DefaultTitle is used when the project name is unknown.
const DefaultTitle = "Change Log"

// Separator closes each version section.
const Separator = "---"

// dateLayouts are tried in order when reading a record's date.
var dateLayouts = []string{
	"Mon Jan 2 15:04:05 2006 -0700", // git log default
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05 -0700", // --date=iso
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Document is a rendered change log, one element per line.
type Document []string

// String joins the lines with "\n" and terminates the last one.
func (d Document) String() string {
	if len(d) == 0 {
		return ""
	}
	return strings.Join(d, "\n") + "\n"
}

// WriteTo writes the document to w.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Lines yields the document's lines in order.
func (d Document) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range d {
			if !yield(line) {
				return
			}
		}
	}
}

// Renderer builds documents from commit records.
type Renderer struct {
	// Project is used as the title. Empty falls back to DefaultTitle.
	Project string
	// Location is the time zone dates are shown in. Nil means local time.
	Location *time.Location
}

// versionGroup holds the records of one version in input order.
type versionGroup struct {
	version string
	records []commitlog.Record
}

// Render produces the change log for records. Versions appear in the order
// first seen; categories in Categories order. Records without a version form
// their own group.
func (r Renderer) Render(records []commitlog.Record) Document {
	title := r.Project
	if title == "" {
		title = DefaultTitle
	}
	doc := Document{"# " + title}

	for _, group := range groupByVersion(records) {
		doc = append(doc, fmt.Sprintf("## v-%s (%s)", group.version, r.formatDate(group.records[0].Date)))

		classified := Classify(group.records)
		for _, c := range categories {
			members := classified[c]
			if len(members) == 0 {
				continue
			}
			doc = append(doc, "### "+string(c))
			for _, rec := range members {
				doc = append(doc, fmt.Sprintf("* %s. (auth: %s)", CleanMessage(rec.Message), rec.Author))
			}
			doc = append(doc, "")
		}

		doc = append(doc, Separator)
	}

	return doc
}

// groupByVersion groups records by Version, keeping first-seen order.
func groupByVersion(records []commitlog.Record) []versionGroup {
	var groups []versionGroup
	index := make(map[string]int)

	for _, rec := range records {
		i, ok := index[rec.Version]
		if !ok {
			i = len(groups)
			index[rec.Version] = i
			groups = append(groups, versionGroup{version: rec.Version})
		}
		groups[i].records = append(groups[i].records, rec)
	}

	return groups
}

// formatDate renders raw as Y-M-D without zero padding.
func (r Renderer) formatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return "unknown date"
	}

	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate reads a commit date in any of the formats git emits.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
