package changelog

import (
	"testing"

	"github.com/ht-tools/commitlog/internal/commitlog"
	"github.com/stretchr/testify/assert"
)

func TestCategory_Matches(t *testing.T) {
	tests := map[string]struct {
		message string
		want    []Category
	}{
		"plain prefix": {
			message: "fix: crash on start",
			want:    []Category{Fix},
		},
		"scoped prefix": {
			message: "feat(auth): add login",
			want:    []Category{Feat},
		},
		"scope with hyphen and underscore": {
			message: "refactor(api-v2_core): split handlers",
			want:    []Category{Refactor},
		},
		"CJK scope": {
			message: "style(登录): 调整按钮",
			want:    []Category{Style},
		},
		"empty scope": {
			message: "chore(): bump deps",
			want:    []Category{Chore},
		},
		"no prefix": {
			message: "Merge branch 'main'",
			want:    nil,
		},
		"prefix not at start": {
			message: `Revert "fix: crash on start"`,
			want:    nil,
		},
		"missing colon": {
			message: "fix crash on start",
			want:    nil,
		},
		"scope with space": {
			message: "feat(my scope): text",
			want:    nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got []Category
			for _, c := range Categories() {
				if c.Matches(tt.message) {
					got = append(got, c)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	records := []commitlog.Record{
		{Hash: "1", Message: "fix: one"},
		{Hash: "2", Message: "feat: two"},
		{Hash: "3", Message: "fix(ui): three"},
		{Hash: "4", Message: "update readme"},
	}

	got := Classify(records)

	assert.Len(t, got[Fix], 2)
	assert.Equal(t, "1", got[Fix][0].Hash)
	assert.Equal(t, "3", got[Fix][1].Hash)
	assert.Len(t, got[Feat], 1)
	assert.Empty(t, got[Refactor])
	assert.Empty(t, got[Style])
	assert.Empty(t, got[Chore])
}

func TestCategories_Order(t *testing.T) {
	assert.Equal(t, []Category{Fix, Feat, Refactor, Style, Chore}, Categories())

	// Callers cannot reorder the package's list.
	c := Categories()
	c[0] = Chore
	assert.Equal(t, Fix, Categories()[0])
}

func TestCleanMessage(t *testing.T) {
	tests := map[string]struct {
		message string
		want    string
	}{
		"scoped":            {message: "feat(auth): add login", want: "auth add login"},
		"unscoped":          {message: "feat: text", want: "text"},
		"no space":          {message: "fix:typo", want: "typo"},
		"empty scope":       {message: "feat(): x", want: "x"},
		"CJK scope":         {message: "fix(登录): 修复", want: "登录 修复"},
		"scope only":        {message: "chore(deps):", want: "deps"},
		"no prefix":         {message: "Merge branch 'main'", want: "Merge branch 'main'"},
		"prefix not at top": {message: `Revert "fix: x"`, want: `Revert "fix: x"`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMessage(tt.message))
		})
	}
}
