package content

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// GetVersion finds the newest entry whose version matches, ignoring case and
// a leading "v". entries must be ordered newest first.
func GetVersion(entries []Entry, version string) (*Entry, error) {
	normalized := NormalizeVersion(version)

	for i := range entries {
		if NormalizeVersion(entries[i].Version) == normalized {
			return &entries[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: ListVersions(entries),
	}
}

// ListVersions returns version identifiers in list order.
func ListVersions(entries []Entry) []string {
	versions := make([]string, len(entries))
	for i, e := range entries {
		versions[i] = e.Version
	}
	return versions
}

// GetLastN returns the first n items of a newest-first list. If n is greater
// than the number of items, all items are returned.
func GetLastN[T any](entries []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}
