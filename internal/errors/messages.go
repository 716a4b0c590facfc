package errors

import "fmt"

// Common error messages for the changelog-publisher CLI.
// These templates keep user-facing failures consistent and actionable.

// SourceNotFound creates an error for a changelog file that cannot be read.
func SourceNotFound(path string, err error) *CLIError {
	return wrap(err, Prerequisite,
		fmt.Sprintf("changelog not readable: %s", path),
		"Check source_path in .changelog-publisher.yml",
		"Or set CHANGELOG_PUBLISHER_SOURCE_PATH to the changelog file",
		"Without --strict the existing entries are kept and listed",
	)
}

// ConfigFileNotFound creates an error for a --config path that does not exist.
func ConfigFileNotFound(path string) *CLIError {
	return newError(Configuration,
		fmt.Sprintf("config file not found: %s", path),
		"Print a starter config with: changelog-publisher config template",
		"Or drop --config to use .changelog-publisher.yml",
	)
}

// ConfigInvalid creates an error for a config that failed to load or validate.
func ConfigInvalid(err error) *CLIError {
	return wrap(err, Configuration,
		"invalid configuration",
		"Inspect the effective values with: changelog-publisher config show",
		"Environment overrides use the CHANGELOG_PUBLISHER_ prefix",
	)
}

// InvalidLastN creates an error for a non-positive --last value.
func InvalidLastN(n int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("--last must be positive, got %d", n),
		"changelog-publisher list --last <N>",
		"Omit --last to list every entry",
	)
}

// InvalidFlagValue creates an error for a flag with an unsupported value.
func InvalidFlagValue(flag, value string, allowed ...string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid value for --%s: %q", flag, value),
		fmt.Sprintf("Valid values: %v", allowed),
	)
}

// DriftDetected creates an error when the output directory is out of date.
func DriftDetected(dir string, files int) *CLIError {
	return newError(Drift,
		fmt.Sprintf("%d file(s) in %s differ from the changelog", files, dir),
		"Regenerate with: changelog-publisher build",
		"Commit the regenerated entries together with the changelog",
	)
}

// WriteFailed creates an error when the output directory could not be replaced.
func WriteFailed(dir string, err error) *CLIError {
	return wrap(err, Runtime,
		fmt.Sprintf("cannot write entries to %s", dir),
		"Check permissions: ls -la "+dir,
		"The previous entries are left in place on failure",
	)
}
