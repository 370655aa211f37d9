// Package naming implements the option name grammar and the derivation of
// result targets from option names. This package is internal and not part of
// the public API.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Valid reports whether name is a legal option spelling: one or two leading
// dashes followed by at least one character, exactly one character after a
// single dash, and no '=' anywhere.
func Valid(name string) bool {
	if strings.Contains(name, "=") {
		return false
	}
	dashes := len(name) - len(strings.TrimLeft(name, "-"))
	rest := name[dashes:]
	switch {
	case dashes < 1 || dashes > 2:
		return false
	case rest == "":
		return false
	case dashes == 1 && utf8.RuneCountInString(rest) != 1:
		return false
	}
	return true
}

// IsLong reports whether name is spelled with two leading dashes.
func IsLong(name string) bool { return strings.HasPrefix(name, "--") }

// StripDashes removes one or two leading dashes.
func StripDashes(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[2:]
	}
	return strings.TrimPrefix(name, "-")
}

// Target derives the result key for an option from its first name.
//
//	--FOO-BAR -> FOO_BAR
//	--foo-bar -> fooBar
func Target(name string) string {
	s := StripDashes(name)
	if strings.ToUpper(s) == s {
		return nonAlnum.ReplaceAllString(s, "_")
	}
	parts := nonAlnum.Split(s, -1)
	for i := 1; i < len(parts); i++ {
		parts[i] = upperFirst(parts[i])
	}
	return strings.Join(parts, "")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
