package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changelog-publisher configuration
# Relative paths resolve against the git repository root.

# Input
source_path: public/assets/other/changelog.md   # Changelog markdown file

# Output
output_dir: changelog/source          # Regeneration directory (replaced on every build)
authors_file: authors.json            # Author registry file inside output_dir
index_path: ""                        # Optional JSON listing with pagination links

# Link rewriting
issue_tracker_url: https://pianorhythm.myjetbrains.com/youtrack/issue
issue_prefix: PRFP                    # [PRFP-12] -> tracker link
code_host_issues_url: https://github.com/PianoRhythm/pianorhythm-issues/issues
avatar_host: github.com               # Avatar URLs: https://<host>/<alias>.png

# Listing
page_size: 10                         # Entries per list page
base_url: /                           # Site base URL
route_base_path: changelog            # List route under base_url

# Writing
max_concurrent_writes: 8              # Parallel entry writes (1-64)

# History
state_dir: ~/.changelog-publisher/state   # Build history directory ("" disables)
max_history_entries: 500              # Max build history entries to retain
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"source_path":  "public/assets/other/changelog.md",
		"output_dir":   "changelog/source",
		"authors_file": "authors.json",
		"index_path":   "",
		// Link rewriting targets for [PRFP-N] and [#N] references.
		"issue_tracker_url":     "https://pianorhythm.myjetbrains.com/youtrack/issue",
		"issue_prefix":          "PRFP",
		"code_host_issues_url":  "https://github.com/PianoRhythm/pianorhythm-issues/issues",
		"avatar_host":           "github.com",
		"page_size":             10,
		"base_url":              "/",
		"route_base_path":       "changelog",
		"max_concurrent_writes": 8,
		"state_dir":             "~/.changelog-publisher/state",
		"max_history_entries":   500,
	}
}
