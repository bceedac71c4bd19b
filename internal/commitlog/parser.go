package commitlog

import "strings"

const (
	// FieldSeparator joins key/value segments within one formatted commit line.
	FieldSeparator = "@_@"
	// KeySeparator splits a segment into key and value.
	KeySeparator = "::"

	// FormatTemplate is handed to `git log --pretty=format:` so that every
	// commit is emitted as a single parseable line.
	FormatTemplate = "hash::%H@_@parent::%P@_@auth::%an@_@date::%ad@_@message::%s"
)

// ParseRecord parses one formatted commit line.
// Malformed input never fails: unknown keys and segments without a key
// separator are skipped, and absent fields stay empty.
func ParseRecord(line string) Record {
	var r Record
	for _, segment := range strings.Split(line, FieldSeparator) {
		key, value, ok := strings.Cut(segment, KeySeparator)
		if !ok {
			continue
		}
		switch key {
		case "hash":
			r.Hash = value
		case "parent":
			r.Parent = value
		case "auth":
			r.Author = value
		case "date":
			r.Date = value
		case "message":
			r.Message = value
		}
	}
	return r
}

// ParseRecords parses raw `git log` output, one commit per line.
// Empty lines are discarded before parsing.
func ParseRecords(output string) []Record {
	lines := strings.Split(output, "\n")
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		records = append(records, ParseRecord(line))
	}
	return records
}
