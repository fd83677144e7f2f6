package pyver

import (
	"regexp"
	"strings"
)

// An extractStrategy pulls a version string out of an artifact file name.
// Strategies are tried in order and the first match wins.
type extractStrategy struct {
	name string
	re   *regexp.Regexp
	// trimSuffix drops the captured run's final dot segment. The second
	// strategy captures up to the last extension token, so for names like
	// "flask-2.0.1.tar.gz" the run ends in ".tar" which belongs to the
	// extension, not the version.
	trimSuffix bool
}

// extractStrategies covers the common artifact naming shapes. Wheel-style
// names carry the version between hyphens ("flask-2.0.1-py3-none-any.whl"),
// source archives carry it between the last hyphen and the extension
// ("flask-2.0.1.tar.gz").
var extractStrategies = []extractStrategy{
	{
		name: "bounded-by-hyphens",
		re:   regexp.MustCompile(`-([0-9][^-]+)-`),
	},
	{
		name:       "bounded-by-dot-extension",
		re:         regexp.MustCompile(`-([0-9A-Za-z_.]+)\.(?:tar|tgz|whl|zip|gz)$`),
		trimSuffix: true,
	},
}

// Extract derives a version string from an artifact file name. The boolean
// is false when no strategy matched; such artifacts carry no usable version.
// The returned string is raw file-name text and may still fail to parse.
func Extract(fileName string) (string, bool) {
	for _, s := range extractStrategies {
		m := s.re.FindStringSubmatch(fileName)
		if m == nil {
			continue
		}
		got := m[1]
		if s.trimSuffix {
			if i := strings.LastIndex(got, "."); i >= 0 {
				got = got[:i]
			}
		}
		return got, true
	}
	return "", false
}
