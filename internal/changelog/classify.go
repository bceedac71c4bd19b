package changelog

import (
	"regexp"
	"strings"

	"github.com/ht-tools/commitlog/internal/commitlog"
)

// Category names a group of commits in the rendered document.
type Category string

const (
	Fix      Category = "fix"
	Feat     Category = "feat"
	Refactor Category = "refactor"
	Style    Category = "style"
	Chore    Category = "chore"
)

// scopePattern is the text allowed between the parentheses of a scoped prefix.
const scopePattern = `[a-zA-Z0-9\p{Han}\-_]*`

// categories is the fixed render order.
var categories = []Category{Fix, Feat, Refactor, Style, Chore}

// matchers recognize "name:" or "name(scope):" at the start of a message.
var matchers = func() map[Category]*regexp.Regexp {
	m := make(map[Category]*regexp.Regexp, len(categories))
	for _, c := range categories {
		m[c] = regexp.MustCompile(`^` + string(c) + `(?:\(` + scopePattern + `\))?:`)
	}
	return m
}()

// prefixRegex captures the category, the optional scope and the text after
// the colon.
var prefixRegex = regexp.MustCompile(`^(?:fix|feat|refactor|style|chore)(?:\((` + scopePattern + `)\))?:\s*(.*)$`)

// Categories returns the categories in render order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Matches reports whether message carries the category prefix.
func (c Category) Matches(message string) bool {
	re, ok := matchers[c]
	return ok && re.MatchString(message)
}

// Classified maps each category to its commits in input order.
type Classified map[Category][]commitlog.Record

// Classify sorts records into categories. A record lands in every category
// whose prefix it carries and in none when it carries no prefix.
func Classify(records []commitlog.Record) Classified {
	out := make(Classified)
	for _, r := range records {
		for _, c := range categories {
			if c.Matches(r.Message) {
				out[c] = append(out[c], r)
			}
		}
	}
	return out
}

// CleanMessage strips the category prefix for display. A scope is kept as
// a leading word: "feat(auth): add login" becomes "auth add login".
// Messages without a prefix are returned unchanged.
func CleanMessage(message string) string {
	m := prefixRegex.FindStringSubmatch(message)
	if m == nil {
		return message
	}

	scope, text := m[1], strings.TrimSpace(m[2])
	switch {
	case scope == "":
		return text
	case text == "":
		return scope
	default:
		return scope + " " + text
	}
}
