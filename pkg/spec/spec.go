// Package spec parses package spec arguments of the form "name" or
// "name<op>version", e.g. "flask" or "flask>=2.0.0".
package spec

import "regexp"

// specPattern splits a package spec into a name and a trailing version
// constraint. The constraint keeps its operator text so it can be parsed
// separately.
var specPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)([><=]+)([0-9A-Za-z.-]+)$`)

// Parse splits a package spec into the package name and an optional raw
// version constraint such as ">=2.0.0". Inputs that do not carry a
// constraint are returned whole as the name with an empty constraint.
func Parse(raw string) (name, constraint string) {
	m := specPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, ""
	}
	return m[1], m[2] + m[3]
}
