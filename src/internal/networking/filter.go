package networking

import (
	"fmt"
	"strings"

	"github.com/maksimkurb/ifselect/src/internal/errors"
)

const (
	// MaxFilterEntries bounds the number of entries read from a filter spec.
	MaxFilterEntries = 16

	// MaxPrefixLen is the longest prefix kept by the filter parser.
	MaxPrefixLen = 63

	// AnyPort matches every port.
	AnyPort = -1
)

// FilterEntry is one "prefix[:port]" element of a filter spec.
type FilterEntry struct {
	Prefix string
	Port   int
}

func (e FilterEntry) String() string {
	if e.Port == AnyPort {
		return e.Prefix
	}
	return fmt.Sprintf("%s:%d", e.Prefix, e.Port)
}

// MatchName reports whether candidate matches prefix. With exact set the
// whole strings must be equal, otherwise prefix must be a prefix of candidate.
func MatchName(candidate, prefix string, exact bool) bool {
	if exact {
		return candidate == prefix
	}
	return strings.HasPrefix(candidate, prefix)
}

// MatchPort reports whether two ports match. AnyPort on either side matches.
func MatchPort(candidatePort, filterPort int) bool {
	return candidatePort == AnyPort || filterPort == AnyPort || candidatePort == filterPort
}

// MatchAny reports whether candidate matches at least one filter entry.
// An empty filter list places no restriction and matches everything.
func MatchAny(candidate string, port int, filters []FilterEntry, exact bool) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if MatchName(candidate, f.Prefix, exact) && MatchPort(port, f.Port) {
			return true
		}
	}
	return false
}

// ParseFilters parses a comma-separated list of "prefix[:port]" entries.
// Prefixes longer than MaxPrefixLen are truncated, and a port that is not a
// number reads as 0.
func ParseFilters(spec string, maxEntries int) []FilterEntry {
	entries, _ := parseFilters(spec, maxEntries, false)
	return entries
}

// ParseFiltersStrict is ParseFilters that rejects overlong prefixes with an
// INVALID_FORMAT error instead of truncating them.
func ParseFiltersStrict(spec string, maxEntries int) ([]FilterEntry, error) {
	return parseFilters(spec, maxEntries, true)
}

func parseFilters(spec string, maxEntries int, strict bool) ([]FilterEntry, error) {
	var entries []FilterEntry
	var prefix strings.Builder

	closePrefix := func(port int) {
		if prefix.Len() > 0 {
			entries = append(entries, FilterEntry{Prefix: prefix.String(), Port: port})
			prefix.Reset()
		}
	}

	for i := 0; len(entries) < maxEntries; i++ {
		if i >= len(spec) {
			closePrefix(AnyPort)
			break
		}

		switch c := spec[i]; c {
		case ':':
			closePrefix(atoi(spec[i+1:]))
			for i < len(spec) && spec[i] != ',' {
				i++
			}
			if i >= len(spec) {
				return entries, nil
			}
		case ',':
			closePrefix(AnyPort)
		default:
			if prefix.Len() >= MaxPrefixLen {
				if strict {
					return nil, errors.NewInvalidFormatError(
						fmt.Sprintf("filter prefix longer than %d characters in %q", MaxPrefixLen, spec), nil)
				}
				continue
			}
			prefix.WriteByte(c)
		}
	}
	return entries, nil
}

// atoi reads a leading decimal integer the way C atoi does: optional
// whitespace and sign, then digits up to the first non-digit. It returns 0
// when no digits are present.
func atoi(s string) int {
	i := 0
	for i < len(s) && strings.IndexByte(" \t\n\v\f\r", s[i]) >= 0 {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			n = 1 << 31
		}
	}
	if neg {
		return -n
	}
	return n
}

// FilterSpec is a parsed interface filter. A leading '^' negates the list,
// a following '=' switches to exact name matching.
type FilterSpec struct {
	Entries []FilterEntry
	Negate  bool
	Exact   bool
}

// ParseFilterSpec parses spec in legacy mode (overlong prefixes truncated).
func ParseFilterSpec(spec string) FilterSpec {
	fs, _ := parseFilterSpec(spec, false)
	return fs
}

// ParseFilterSpecStrict parses spec and rejects overlong prefixes.
func ParseFilterSpecStrict(spec string) (FilterSpec, error) {
	return parseFilterSpec(spec, true)
}

func parseFilterSpec(spec string, strict bool) (FilterSpec, error) {
	var fs FilterSpec
	if strings.HasPrefix(spec, "^") {
		fs.Negate = true
		spec = spec[1:]
	}
	if strings.HasPrefix(spec, "=") {
		fs.Exact = true
		spec = spec[1:]
	}
	entries, err := parseFilters(spec, MaxFilterEntries, strict)
	if err != nil {
		return FilterSpec{}, err
	}
	fs.Entries = entries
	return fs, nil
}

// Match reports whether an interface called name passes the filter.
func (fs FilterSpec) Match(name string) bool {
	return MatchAny(name, AnyPort, fs.Entries, fs.Exact) != fs.Negate
}

func (fs FilterSpec) String() string {
	var sb strings.Builder
	if fs.Negate {
		sb.WriteByte('^')
	}
	if fs.Exact {
		sb.WriteByte('=')
	}
	for i, e := range fs.Entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
