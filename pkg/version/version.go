// Package version exposes the build version of citytable.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// devVersion is reported when no version was injected at build time.
const devVersion = "0.0.0-dev"

// Build metadata injected via -ldflags "-X github.com/rshade/citytable/pkg/version.version=...".
//
//nolint:gochecknoglobals // Set by the linker at build time.
var (
	version   = devVersion
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the semantic version without a leading "v".
// Values that are not valid semver fall back to the development version.
func GetVersion() string {
	v, err := Parse(version)
	if err != nil {
		return devVersion
	}
	return v.String()
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}

// Parse parses a version string, tolerating a leading "v".
func Parse(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return v, nil
}

// IsDevelopment reports whether the running binary is an unreleased build.
func IsDevelopment() bool {
	v, err := Parse(GetVersion())
	if err != nil {
		return true
	}
	return v.Prerelease() != ""
}

// UserAgent returns the User-Agent header value sent to upstream APIs.
func UserAgent() string {
	return "citytable/" + GetVersion()
}

// String renders version, commit and build date for `--version` output.
func String() string {
	var b strings.Builder
	b.WriteString(GetVersion())
	if commit := GetGitCommit(); commit != "" {
		b.WriteString(" (" + commit)
		if date := GetBuildDate(); date != "" {
			b.WriteString(", " + date)
		}
		b.WriteString(")")
	}
	return b.String()
}
