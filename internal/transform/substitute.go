package transform

import (
	"os"
	"strings"
)

// Namespace resolves placeholder names to their string values.
type Namespace interface {
	Lookup(name string) (string, bool)
}

// MapNamespace is a Namespace backed by a plain map.
type MapNamespace map[string]string

// Lookup implements Namespace.
func (m MapNamespace) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// EnvNamespace resolves names from the process environment.
type EnvNamespace struct{}

// Lookup implements Namespace.
func (EnvNamespace) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ChainNamespace tries each namespace in order and returns the first hit.
type ChainNamespace []Namespace

// Lookup implements Namespace.
func (c ChainNamespace) Lookup(name string) (string, bool) {
	for _, ns := range c {
		if ns == nil {
			continue
		}
		if v, ok := ns.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Substitute expands every un-escaped {name} in source with its value from
// ns, then turns \{ and \} into plain braces:
//
//	"path = '{data_dir}'"  -> "path = '/srv/data'"
//	"{missing}"            -> "{missing}"
//	"\{literal\}"          -> "{literal}"
//
// A placeholder is a '{' not preceded by '\', followed by text without
// braces or backslashes, and a closing '}'. Unknown names and anything that
// does not form a placeholder are kept verbatim. ns may be nil.
func Substitute(source string, ns Namespace) string {
	if !strings.ContainsAny(source, "{}") {
		return source
	}
	return unescapeBraces(expandPlaceholders(source, ns))
}

func expandPlaceholders(source string, ns Namespace) string {
	if ns == nil || !strings.Contains(source, "{") {
		return source
	}

	var out strings.Builder
	out.Grow(len(source))

	i := 0
	for i < len(source) {
		open := strings.IndexByte(source[i:], '{')
		if open < 0 {
			break
		}
		open += i

		// Escaped brace: emit through it and keep scanning.
		if open > 0 && source[open-1] == '\\' {
			out.WriteString(source[i : open+1])
			i = open + 1
			continue
		}

		end := placeholderEnd(source, open)
		if end < 0 {
			out.WriteString(source[i : open+1])
			i = open + 1
			continue
		}

		out.WriteString(source[i:open])
		name := source[open+1 : end]
		if v, ok := ns.Lookup(name); ok {
			out.WriteString(v)
		} else {
			out.WriteString(source[open : end+1])
		}
		i = end + 1
	}
	out.WriteString(source[i:])
	return out.String()
}

// placeholderEnd returns the index of the '}' closing the placeholder that
// opens at source[open], or -1 if the text after it is not a placeholder.
func placeholderEnd(source string, open int) int {
	for j := open + 1; j < len(source); j++ {
		switch source[j] {
		case '}':
			return j
		case '{', '\\':
			return -1
		}
	}
	return -1
}

var braceUnescaper = strings.NewReplacer(`\{`, "{", `\}`, "}")

func unescapeBraces(s string) string {
	return braceUnescaper.Replace(s)
}
