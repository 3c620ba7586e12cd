package pipeline

import (
	"strings"
	"unicode"
)

// ContainerType is the kind of qTest object test runs get organized under.
type ContainerType string

const (
	ContainerTypeRelease   ContainerType = "RELEASE"
	ContainerTypeTestCycle ContainerType = "TEST-CYCLE"
	ContainerTypeTestSuite ContainerType = "TEST-SUITE"
)

// NormalizeContainerType uppercases a container type. The empty string stays empty. Applying it twice is the same as
// applying it once.
func NormalizeContainerType(raw string) string {
	return strings.ToUpper(raw)
}

// ParseContainerType resolves a container type as users write it ("test cycle", "TEST_CYCLE", "Test-Cycle") to one
// of the known types. Words may be separated by dashes, underscores or spaces.
func ParseContainerType(raw string) (ContainerType, bool) {
	words := strings.FieldsFunc(NormalizeContainerType(raw), func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})

	switch t := ContainerType(strings.Join(words, "-")); t {
	case ContainerTypeRelease, ContainerTypeTestCycle, ContainerTypeTestSuite:
		return t, true
	default:
		return "", false
	}
}

// IsKnown reports whether the type resolves to one qTest understands. Validation does not depend on it.
func (t ContainerType) IsKnown() bool {
	_, ok := ParseContainerType(string(t))
	return ok
}
