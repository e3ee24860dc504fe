package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/mrnavastar/modsync/api"
	"github.com/mrnavastar/modsync/util"
	"github.com/mrnavastar/modsync/util/fileutils"
	"github.com/mrnavastar/modsync/util/mcversion"
)

// Thresholds callers apply to fuzzy scores. The broadened fallback search
// casts a wider net, so it accepts weaker matches.
const (
	MatchThreshold          = 0.3
	BroadenedMatchThreshold = 0.15
)

// ScoreMatch rates how likely a registry project is to be the given local
// mod, in [0, 1]. Additive bonuses capped at 1, not a probability model:
// exact name 0.8, substring 0.6, slug match 0.5, otherwise word overlap up
// to 0.4; plus 0.2 for a matching version, 0.3 for a matching author and
// 0.1 for projects with over 10k downloads.
func ScoreMatch(localName string, localVersion string, hit api.ModrinthSearchHit, localMeta fileutils.ModJson) float64 {
	name := strings.ToLower(strings.TrimSpace(localName))
	title := strings.ToLower(strings.TrimSpace(hit.Title))
	slug := strings.ToLower(hit.Slug)

	score := 0.0
	switch {
	case name != "" && name == title:
		score += 0.8
	case name != "" && title != "" && (strings.Contains(title, name) || strings.Contains(name, title)):
		score += 0.6
	case name != "" && slug != "" && (name == slug || strings.Contains(slug, name) || strings.Contains(name, slug)):
		score += 0.5
	default:
		score += 0.4 * wordOverlap(name, title)
	}

	if localVersion != "" && util.Contains(hit.Versions, localVersion) {
		score += 0.2
	}
	for _, author := range localMeta.Authors {
		if strings.EqualFold(author, hit.Author) {
			score += 0.3
			break
		}
	}
	if hit.Downloads > 10000 {
		score += 0.1
	}

	if score > 1 {
		score = 1
	}
	return score
}

// wordOverlap is the shared-token count over the larger token count.
func wordOverlap(a string, b string) float64 {
	aw := strings.Fields(a)
	bw := strings.Fields(b)
	if len(aw) == 0 || len(bw) == 0 {
		return 0
	}

	set := map[string]bool{}
	for _, w := range aw {
		set[w] = true
	}
	shared := 0
	for _, w := range bw {
		if set[w] {
			shared++
		}
	}

	larger := len(aw)
	if len(bw) > larger {
		larger = len(bw)
	}
	return float64(shared) / float64(larger)
}

var versionTokenRe = regexp.MustCompile(`^(?:v|mc)?\d+(?:\.\d+)*.*$`)

// CleanModName turns a jar filename into something searchable: suffix and
// separators stripped, version-looking tokens dropped.
func CleanModName(fileName string) string {
	name := mcversion.StripJarSuffix(fileName)
	name = strings.NewReplacer("-", " ", "_", " ", "+", " ", "[", " ", "]", " ", "(", " ", ")", " ").Replace(name)

	var words []string
	for _, word := range strings.Fields(name) {
		if versionTokenRe.MatchString(strings.ToLower(word)) {
			continue
		}
		words = append(words, word)
	}
	return strings.Join(words, " ")
}

// MatchMod searches the registry for projects that could be the given
// unidentified jar and returns scored candidates for the user to confirm.
// The primary search uses the jar's own name when the metadata has one; if
// nothing clears the primary threshold, a broadened search over truncated
// name tokens accepts weaker candidates.
func (r *Resolver) MatchMod(fileName string) ([]util.MatchCandidate, error) {
	if fileName == "" {
		return nil, errors.New("filename is required")
	}

	var meta fileutils.ModJson
	if local := r.local.ByFileName(fileName); local != nil {
		path := fileutils.ModFilePath(r.local.ModsDir, fileName, local.Disabled)
		if modJson, err := fileutils.GetModJsonFromJar(path); err == nil {
			meta = modJson
		}
	}

	localName := meta.Name
	if localName == "" {
		localName = CleanModName(fileName)
	}
	localVersion := meta.Version
	if localVersion == "" {
		localVersion = mcversion.ExtractVersion(fileName)
	}

	candidates, err := r.searchAndScore(localName, localVersion, meta, MatchThreshold)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return candidates, nil
	}

	// Broaden: first couple of name tokens only.
	words := strings.Fields(localName)
	if len(words) > 2 {
		words = words[:2]
	}
	broadened := strings.Join(words, " ")
	if broadened == "" || broadened == localName {
		return candidates, nil
	}
	return r.searchAndScore(broadened, localVersion, meta, BroadenedMatchThreshold)
}

func (r *Resolver) searchAndScore(query string, localVersion string, meta fileutils.ModJson, threshold float64) ([]util.MatchCandidate, error) {
	hits, err := r.registry.SearchModrinth(query, r.Loader)
	if err != nil {
		return nil, err
	}

	var candidates []util.MatchCandidate
	for _, hit := range hits {
		score := ScoreMatch(query, localVersion, hit, meta)
		if score < threshold {
			continue
		}
		candidates = append(candidates, util.MatchCandidate{
			ProjectId: hit.Project_id,
			Slug:      hit.Slug,
			Title:     hit.Title,
			Author:    hit.Author,
			Downloads: hit.Downloads,
			Score:     score,
		})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	return candidates, nil
}
