package git

import (
	"regexp"
	"strconv"
	"strings"
)

// DiffStat is the churn between two commits.
type DiffStat struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

var clauseNumberRegex = regexp.MustCompile(`[0-9]+`)

// ParseShortStat reads a `git diff --shortstat` summary such as
// "3 files changed, 42 insertions(+), 7 deletions(-)".
//
// Clauses are positional: the first number is the file count, the second
// insertions, the third deletions. Missing clauses count as zero. Clauses
// without a number are dropped before positions are assigned.
func ParseShortStat(summary string) DiffStat {
	var numbers []int
	for _, clause := range strings.Split(summary, ",") {
		digits := clauseNumberRegex.FindString(clause)
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}

	var stat DiffStat
	if len(numbers) > 0 {
		stat.FilesChanged = numbers[0]
	}
	if len(numbers) > 1 {
		stat.Insertions = numbers[1]
	}
	if len(numbers) > 2 {
		stat.Deletions = numbers[2]
	}
	return stat
}
