// Package pyver handles the version conventions of Python package indexes:
// padding short versions, parsing them, the comparison operators accepted on
// the command line, and extracting version strings out of artifact file
// names.
package pyver

import (
	"strings"

	"github.com/glorpus-work/pipget/pkg/errors"
	"github.com/hashicorp/go-version"
)

// minSegments is the number of dot-separated segments a normalized version
// string carries.
const minSegments = 3

// Normalize pads a dotted version string with ".0" segments until it has at
// least minSegments segments: "2" becomes "2.0.0", "2.1" becomes "2.1.0",
// longer versions are returned unchanged. Normalize is idempotent.
func Normalize(v string) string {
	parts := strings.Split(v, ".")
	for len(parts) < minSegments {
		parts = append(parts, "0")
	}
	return strings.Join(parts, ".")
}

// Parse parses a version string. The error wraps ErrInvalidVersion so
// callers can distinguish a bad version from other failures.
func Parse(raw string) (*version.Version, error) {
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidVersion, "%q", raw)
	}
	return v, nil
}
