package mcversion

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Compare orders two loosely formatted version strings and returns -1, 0 or 1.
//
// Mod versions in the wild are rarely clean semver, so the comparison is
// deliberately forgiving: versions split on "." into tokens, numeric tokens
// compare numerically, string tokens lexicographically, and a numeric token
// beats a string token at the same position. A version that is a strict
// prefix of the other is older ("1.0" < "1.0.1"). A "-" starts a pre-release
// tail and a version carrying one sorts below the same version without it
// ("1.2.0-beta" < "1.2.0"), matching semver ordering for canonical inputs.
// Tails of non-canonical versions compare token by token under the same
// numeric-beats-string rule, so there "-1" outranks "-beta", unlike semver.
// Malformed input never errors; equal or empty-vs-empty input compares as 0.
func Compare(a string, b string) int {
	if a == b {
		return 0
	}

	// Canonical semver pairs take the strict path so ordering agrees with the
	// rest of the Go ecosystem.
	if semver.IsValid("v"+a) && semver.IsValid("v"+b) {
		return semver.Compare("v"+a, "v"+b)
	}

	abase, atail, _ := strings.Cut(a, "-")
	bbase, btail, _ := strings.Cut(b, "-")

	if c := compareDotted(abase, bbase); c != 0 {
		return c
	}
	if atail == btail {
		return 0
	}
	if atail == "" {
		return 1
	}
	if btail == "" {
		return -1
	}
	return compareDotted(atail, btail)
}

func compareDotted(a string, b string) int {
	as := splitTokens(a)
	bs := splitTokens(b)

	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}
		if c := compareToken(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func splitTokens(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == '+'
	})
}

func compareToken(a string, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)

	switch {
	case aerr == nil && berr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aerr == nil:
		//numeric beats string, so "0" > "beta"
		return 1
	case berr == nil:
		return -1
	}
	return strings.Compare(a, b)
}
