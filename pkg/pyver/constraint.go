package pyver

import (
	"regexp"

	"github.com/glorpus-work/pipget/pkg/errors"
	"github.com/hashicorp/go-version"
)

// Operator is a comparison operator accepted in a version condition.
type Operator string

// Operators understood by ParseConstraint.
const (
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpEqual          Operator = "=="
)

// constraintPattern splits the leading operator run from the version text.
var constraintPattern = regexp.MustCompile(`^([><=]+)(.+)$`)

// Constraint is a parsed version condition such as ">=2.0.0".
type Constraint struct {
	Op      Operator
	Version *version.Version
}

// ParseConstraint parses a raw condition such as ">=2.0.0". The version text
// is normalized before parsing, so ">2" means ">2.0.0". Unknown operators and
// unparseable versions return an error wrapping ErrInvalidConstraint.
func ParseConstraint(raw string) (*Constraint, error) {
	m := constraintPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConstraint, "%q", raw)
	}
	op := Operator(m[1])
	switch op {
	case OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual, OpEqual:
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConstraint, "unknown operator %q in %q", m[1], raw)
	}
	v, err := version.NewVersion(Normalize(m[2]))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConstraint, "version %q", m[2])
	}
	return &Constraint{Op: op, Version: v}, nil
}

// Check reports whether v satisfies the constraint.
func (c *Constraint) Check(v *version.Version) bool {
	switch c.Op {
	case OpGreater:
		return v.GreaterThan(c.Version)
	case OpGreaterOrEqual:
		return v.GreaterThanOrEqual(c.Version)
	case OpLess:
		return v.LessThan(c.Version)
	case OpLessOrEqual:
		return v.LessThanOrEqual(c.Version)
	case OpEqual:
		return v.Equal(c.Version)
	}
	return false
}

// String renders the constraint with its normalized version text.
func (c *Constraint) String() string {
	return string(c.Op) + c.Version.Original()
}
