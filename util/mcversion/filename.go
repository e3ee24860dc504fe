package mcversion

import (
	"regexp"
	"strings"
)

// Confidence grades how much a filename-derived judgment should be trusted.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
)

// Ordered from most to least specific; the first pattern that matches wins.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`-v?(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.+-]+)?)$`),
	regexp.MustCompile(`_v?(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.+-]+)?)$`),
	regexp.MustCompile(` v?(\d+\.\d+(?:\.\d+)?)$`),
	regexp.MustCompile(`[\[(]v?(\d+\.\d+(?:\.\d+)?)[\])]`),
	regexp.MustCompile(`(?i)mc\d+\.\d+(?:\.\d+)?[-_ ]v?(\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(\d+)$`),
}

var numericRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// StripJarSuffix removes a trailing ".jar" or ".jar.disabled".
func StripJarSuffix(filename string) string {
	filename = strings.TrimSuffix(filename, ".disabled")
	return strings.TrimSuffix(filename, ".jar")
}

// ExtractVersion guesses the mod version embedded in a jar filename.
// Returns "" when no pattern matches. This is a fallback for mods with no
// registry metadata, so a wrong-but-plausible answer beats none at all.
func ExtractVersion(filename string) string {
	name := StripJarSuffix(filename)
	for _, p := range versionPatterns {
		if m := p.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return ""
}

// MatchesMinecraftVersion guesses from the filename alone whether a mod is
// compatible with the given Minecraft version. Compatible when any numeric
// substring in the name equals the target or is a prefix of it. Best effort
// only: use registry metadata whenever it exists. A name with no numeric
// substrings is assumed compatible at low confidence, everything else is
// medium at best.
func MatchesMinecraftVersion(filename string, mcVersion string) (isCompatible bool, confidence string) {
	name := strings.ToLower(StripJarSuffix(filename))

	nums := numericRe.FindAllString(name, -1)
	if len(nums) == 0 {
		return true, ConfidenceLow
	}

	for _, n := range nums {
		if n == mcVersion || strings.HasPrefix(mcVersion, n) {
			return true, ConfidenceMedium
		}
	}
	return false, ConfidenceMedium
}
