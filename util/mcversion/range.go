package mcversion

import "strings"

// SatisfiesAny reports whether the target version satisfies at least one of
// the given requirements. Mods commonly declare multi-version support as an
// array like ["1.21.x", "1.20.5"].
func SatisfiesAny(requirements []string, target string) bool {
	for _, r := range requirements {
		if Satisfies(r, target) {
			return true
		}
	}
	return false
}

// Satisfies evaluates a single range expression against a target version.
//
// Supported forms, checked in order: exact equality, a combined range like
// ">=1.2.0 <=1.3.0" (both bounds required), wildcards "1.21.x"/"1.21.*",
// tilde and caret ranges, and single-sided comparators. Anything
// unrecognized is false, never an error. An empty or "*" requirement means
// any version.
//
// Tilde intentionally matches on major.minor only and ignores the patch
// component ("~1.2.3" accepts "1.2.9"), which is broader than conventional
// tilde semantics but is what installed mods rely on. Caret matches on the
// major component alone.
func Satisfies(requirement string, target string) bool {
	requirement = strings.TrimSpace(requirement)
	target = strings.TrimSpace(target)

	if requirement == "" || requirement == "*" || requirement == target {
		return true
	}

	if fields := strings.Fields(requirement); len(fields) > 1 {
		lower := ""
		upper := ""
		for _, f := range fields {
			switch {
			case strings.HasPrefix(f, ">"):
				lower = f
			case strings.HasPrefix(f, "<"):
				upper = f
			}
		}
		if lower == "" || upper == "" {
			return false
		}
		return checkBound(lower, target) && checkBound(upper, target)
	}

	if strings.HasSuffix(requirement, ".x") || strings.HasSuffix(requirement, ".*") {
		return strings.HasPrefix(target, requirement[:len(requirement)-1])
	}

	if strings.HasPrefix(requirement, "~") {
		return sameComponents(requirement[1:], target, 2)
	}
	if strings.HasPrefix(requirement, "^") {
		return sameComponents(requirement[1:], target, 1)
	}

	if strings.HasPrefix(requirement, ">") || strings.HasPrefix(requirement, "<") {
		return checkBound(requirement, target)
	}
	return false
}

func checkBound(bound string, target string) bool {
	switch {
	case strings.HasPrefix(bound, ">="):
		return Compare(target, bound[2:]) >= 0
	case strings.HasPrefix(bound, "<="):
		return Compare(target, bound[2:]) <= 0
	case strings.HasPrefix(bound, ">"):
		return Compare(target, bound[1:]) > 0
	case strings.HasPrefix(bound, "<"):
		return Compare(target, bound[1:]) < 0
	}
	return false
}

func sameComponents(base string, target string, n int) bool {
	bs := splitTokens(base)
	ts := splitTokens(target)
	if len(bs) < n || len(ts) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if bs[i] != ts[i] {
			return false
		}
	}
	return true
}
