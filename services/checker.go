package services

import (
	"sync/atomic"

	"github.com/mrnavastar/modsync/api"
	"github.com/mrnavastar/modsync/util"
	"github.com/mrnavastar/modsync/util/mcversion"
	"golang.org/x/sync/errgroup"
)

// CheckUpdates judges every installed mod against the session's game
// version. A check already in flight makes this call a no-op that returns
// nil and flags the running check to go again when it finishes; duplicate
// concurrent checks are dropped, not queued. A completion carrying a stale
// request id never overwrites fresher results.
func (r *Resolver) CheckUpdates() []util.CompatibilityResult {
	r.mu.Lock()
	if r.busy {
		r.runAgain = true
		r.mu.Unlock()
		return nil
	}
	r.busy = true
	r.mu.Unlock()

	id := atomic.AddUint64(&r.requestId, 1)
	results := r.checkAll()

	if again := r.finishCheck(id, results); again {
		return r.CheckUpdates()
	}
	return results
}

// finishCheck publishes a completed check's results unless a newer request
// has been issued since, and reports whether a dropped duplicate asked for
// another run.
func (r *Resolver) finishCheck(id uint64, results []util.CompatibilityResult) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == atomic.LoadUint64(&r.requestId) {
		r.lastResults = results
	}
	r.busy = false
	again := r.runAgain
	r.runAgain = false
	return again
}

// LastResults returns the most recent completed check.
func (r *Resolver) LastResults() []util.CompatibilityResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastResults
}

func (r *Resolver) checkAll() []util.CompatibilityResult {
	mods := r.local.Mods
	results := make([]util.CompatibilityResult, len(mods))

	var g errgroup.Group
	g.SetLimit(4)
	for i := range mods {
		i := i
		g.Go(func() error {
			results[i] = r.checkOne(mods[i])
			return nil
		})
	}
	g.Wait()
	return results
}

func (r *Resolver) checkOne(mod util.InstalledMod) util.CompatibilityResult {
	result := util.CompatibilityResult{FileName: mod.FileName, Name: mod.Name}

	// No registry identity: the filename is all there is to go on.
	if mod.ProjectId == "" {
		compatible, confidence := mcversion.MatchesMinecraftVersion(mod.FileName, r.GameVersion)
		result.Compatible = compatible
		result.Confidence = confidence
		result.Reason = "judged from filename, no registry metadata"
		return result
	}

	latest, err := r.LatestVersion(mod.ProjectId)
	if err != nil {
		result.Compatible = false
		result.Reason = "no version for " + r.GameVersion + " (" + api.ClassifyError(err) + ")"
		return result
	}

	result.Compatible = true
	result.LatestVersion = latest.VersionNumber
	if mod.VersionNumber != "" && mcversion.Compare(latest.VersionNumber, mod.VersionNumber) > 0 {
		result.HasUpdate = true
		result.Reason = "update available"
	}
	return result
}
