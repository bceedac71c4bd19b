package config

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]any {
	return map[string]any{
		"diff_ignore":    []string{"*.svg", "*.lock", "*/lib/*"},
		"message_filter": "",
		"manifest":       "package.json",
		"version_field":  "version",
		"commit_log":     "commitLog.json",
		"changelog":      "changelog.md",
		"max_parallel":   8,
		"project_name":   "",
	}
}

// GetDefaultConfigTemplate returns a commented project config template.
func GetDefaultConfigTemplate() string {
	return `# commitlog configuration (.commitlog.yml)

diff_ignore:                          # Globs excluded from insertion/deletion counts
  - "*.svg"
  - "*.lock"
  - "*/lib/*"
message_filter: ""                    # Default --filter pattern (RE2)
manifest: package.json                # File whose version bumps delimit releases
version_field: version                # JSON key holding the version
commit_log: commitLog.json            # Persisted commit log
changelog: changelog.md               # Rendered changelog
max_parallel: 8                       # Concurrent git diff calls (1-64)
project_name: ""                      # Changelog title (default: manifest name)
`
}
