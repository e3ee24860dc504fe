package services

import (
	"errors"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mrnavastar/modsync/api"
	"github.com/mrnavastar/modsync/util"
	"github.com/mrnavastar/modsync/util/fileutils"
	"github.com/mrnavastar/modsync/util/mcversion"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

// FabricApiProject is the Modrinth slug of Fabric API. Fabric mods routinely
// rely on it without declaring the dependency.
const FabricApiProject = "fabric-api"

// Registry is the slice of the registry client the resolver needs. The
// heuristics stay behind this seam so a stricter resolver could replace them
// without touching callers.
type Registry interface {
	GetModrinthProject(idOrSlug string) (api.ModrinthProject, error)
	GetModrinthVersionsRaw(idOrSlug string, loader string, gameVersion string) (string, error)
	SearchModrinth(query string, loader string) ([]api.ModrinthSearchHit, error)
	GetCurseProject(id string) (api.CurseProject, error)
	GetCurseFiles(id string) ([]api.CurseFile, error)
}

// CurseId extracts the numeric CurseForge id from a project identifier:
// either the explicit curse:<id> form the dependency normalizer emits, or a
// bare numeric id, which Modrinth never uses for slugs.
func CurseId(projectId string) (string, bool) {
	if n := strings.TrimPrefix(projectId, "curse:"); n != projectId {
		return n, true
	}
	if _, err := strconv.Atoi(projectId); err == nil {
		return projectId, true
	}
	return "", false
}

// Resolver owns all the mutable resolution state for one session: the
// version cache, the busy flag and the request counter. Construct one per
// session and pass it around, there are no package-level singletons.
type Resolver struct {
	registry    Registry
	local       *LocalView
	Loader      string
	GameVersion string

	mu           sync.Mutex
	versionCache map[string][]util.ModVersion
	busy         bool
	runAgain     bool
	requestId    uint64
	lastResults  []util.CompatibilityResult
}

func NewResolver(registry Registry, local *LocalView, loader string, gameVersion string) *Resolver {
	return &Resolver{
		registry:     registry,
		local:        local,
		Loader:       loader,
		GameVersion:  gameVersion,
		versionCache: map[string][]util.ModVersion{},
	}
}

func (r *Resolver) ClearCache() {
	r.mu.Lock()
	r.versionCache = map[string][]util.ModVersion{}
	r.mu.Unlock()
}

func (r *Resolver) versions(projectId string) ([]util.ModVersion, error) {
	key := projectId + "|" + r.Loader + "|" + r.GameVersion

	r.mu.Lock()
	if cached, ok := r.versionCache[key]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	var versions []util.ModVersion
	if curseId, ok := CurseId(projectId); ok {
		files, err := r.registry.GetCurseFiles(curseId)
		if err != nil {
			return nil, err
		}
		versions = curseVersions(projectId, files, r.GameVersion)
	} else {
		raw, err := r.registry.GetModrinthVersionsRaw(projectId, r.Loader, r.GameVersion)
		if err != nil {
			return nil, err
		}
		versions = ParseModrinthVersions(raw)
	}

	r.mu.Lock()
	r.versionCache[key] = versions
	r.mu.Unlock()
	return versions, nil
}

// curseVersions converts the newest file matching the game version into the
// shared version shape used by the rest of the resolver.
func curseVersions(projectId string, files []api.CurseFile, gameVersion string) []util.ModVersion {
	latest, ok := api.LatestCurseFile(files, gameVersion)
	if !ok {
		return nil
	}
	versionNumber := mcversion.ExtractVersion(latest.FileName)
	if versionNumber == "" {
		versionNumber = mcversion.StripJarSuffix(latest.FileName)
	}
	return []util.ModVersion{{
		Id:            strconv.Itoa(latest.Id),
		ProjectId:     projectId,
		VersionNumber: versionNumber,
		GameVersions:  latest.GameVersion,
		Dependencies:  api.CurseDependencies(latest),
		Files:         []util.ModFile{{Url: latest.DownloadUrl, Filename: latest.FileName}},
	}}
}

// LatestVersion returns the newest version matching the session's loader and
// game version. The registry lists newest first.
func (r *Resolver) LatestVersion(projectId string) (*util.ModVersion, error) {
	versions, err := r.versions(projectId)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, errors.New("no matching version")
	}
	return &versions[0], nil
}

var systemDependencies = map[string]bool{
	"minecraft":     true,
	"java":          true,
	"fabricloader":  true,
	"fabric-loader": true,
	"forge":         true,
	"neoforge":      true,
	"quilt_loader":  true,
	"quilt-loader":  true,
}

// Loader-bundled submodules follow the fabric-<name>-v<N> convention and are
// satisfied by Fabric API itself, which keeps its own plain name.
var bundledModuleRe = regexp.MustCompile(`^fabric-.+-v\d+$`)

func isBundledModule(id string) bool {
	if id == FabricApiProject {
		return false
	}
	return bundledModuleRe.MatchString(id)
}

// ResolveDependencies walks a mod's dependency graph and reports every
// transitive dependency with its status against the local folder. The
// visited set doubles as the cycle guard; pass nil to start fresh.
func (r *Resolver) ResolveDependencies(projectId string, visited map[string]bool) []util.DependencyReport {
	if visited == nil {
		visited = map[string]bool{}
	}
	return dedupeReports(r.resolve(projectId, projectId, visited))
}

func (r *Resolver) resolve(rootId string, projectId string, visited map[string]bool) []util.DependencyReport {
	if visited[projectId] {
		return nil
	}
	visited[projectId] = true

	version, err := r.LatestVersion(projectId)
	if err != nil {
		//partial data beats aborting the whole resolution
		pterm.Warning.Println("could not look up " + projectId + " (" + api.ClassifyError(err) + ")")
	}

	var deps []util.Dependency
	if version != nil {
		deps = version.Dependencies
	}
	if len(deps) == 0 {
		deps = r.scanJarDependencies(projectId, version)
	}

	deps = filterDependencies(rootId, projectId, deps)
	if version != nil && util.Contains(version.Loaders, "fabric") {
		deps = injectFabricApi(projectId, deps)
	}

	reports := r.classify(deps)
	for _, dep := range deps {
		reports = append(reports, r.resolve(rootId, dep.ProjectId, visited)...)
	}
	return reports
}

// filterDependencies drops self references, the root mod, Minecraft/system
// entries and loader-bundled submodules, then dedupes by project id.
func filterDependencies(rootId string, selfId string, deps []util.Dependency) []util.Dependency {
	seen := map[string]bool{}
	var kept []util.Dependency
	for _, dep := range deps {
		if dep.ProjectId == "" || dep.ProjectId == selfId || dep.ProjectId == rootId {
			continue
		}
		id := strings.ToLower(dep.ProjectId)
		if systemDependencies[id] || isBundledModule(id) {
			continue
		}
		if seen[dep.ProjectId] {
			continue
		}
		seen[dep.ProjectId] = true
		kept = append(kept, dep)
	}
	return kept
}

func injectFabricApi(projectId string, deps []util.Dependency) []util.Dependency {
	if projectId == FabricApiProject {
		return deps
	}
	for _, dep := range deps {
		if strings.EqualFold(dep.ProjectId, FabricApiProject) || strings.EqualFold(dep.Name, "Fabric API") {
			return deps
		}
	}
	return append(deps, util.Dependency{
		ProjectId:      FabricApiProject,
		Name:           "Fabric API",
		DependencyType: "required",
	})
}

// classify checks each dependency against the local folder. Lookups for
// different dependencies are independent, so they run as a group.
func (r *Resolver) classify(deps []util.Dependency) []util.DependencyReport {
	reports := make([]util.DependencyReport, len(deps))

	var g errgroup.Group
	g.SetLimit(4)
	for i := range deps {
		i := i
		g.Go(func() error {
			reports[i] = r.classifyOne(deps[i])
			return nil
		})
	}
	g.Wait()
	return reports
}

func (r *Resolver) classifyOne(dep util.Dependency) util.DependencyReport {
	report := util.DependencyReport{Dependency: dep, Status: util.DepOk}

	local := r.local.Find(dep.ProjectId)
	switch {
	case local == nil:
		report.Status = util.DepMissing
	case local.Disabled:
		report.Status = util.DepDisabled
		report.InstalledVersion = local.VersionNumber
	case dep.VersionRequirement != "" && local.VersionNumber != "" &&
		!mcversion.Satisfies(dep.VersionRequirement, local.VersionNumber):
		report.Status = util.DepVersionMismatch
		report.InstalledVersion = local.VersionNumber
	}

	if report.Status == util.DepMissing || report.Status == util.DepVersionMismatch {
		r.fillSuggestion(&report)
	}
	return report
}

// fillSuggestion attaches a human-readable name and an installable version
// to an actionable report. Lookup failures fall back to a placeholder.
func (r *Resolver) fillSuggestion(report *util.DependencyReport) {
	if report.Name == "" || report.Name == report.ProjectId || isCursePlaceholderName(report) {
		if curseId, ok := CurseId(report.ProjectId); ok {
			if project, err := r.registry.GetCurseProject(curseId); err == nil && project.Name != "" {
				report.Name = project.Name
			}
		} else if project, err := r.registry.GetModrinthProject(report.ProjectId); err == nil && project.Title != "" {
			report.Name = project.Title
		}
	}
	if report.Name == "" {
		report.Name = "Unknown mod (" + report.ProjectId + ")"
	}

	if version, err := r.LatestVersion(report.ProjectId); err == nil {
		report.SuggestedVersion = version.VersionNumber
	}
}

// Relation records only carry the numeric addon id, which is not a name.
func isCursePlaceholderName(report *util.DependencyReport) bool {
	curseId, ok := CurseId(report.ProjectId)
	return ok && report.Name == curseId
}

// scanJarDependencies is the fallback when the registry declares nothing:
// scan the installed jar, or failing that download and scan the remote one.
func (r *Resolver) scanJarDependencies(projectId string, version *util.ModVersion) []util.Dependency {
	if local := r.local.Find(projectId); local != nil {
		path := fileutils.ModFilePath(r.local.ModsDir, local.FileName, local.Disabled)
		if modJson, err := fileutils.GetModJsonFromJar(path); err == nil {
			return dependenciesFromModJson(modJson)
		}
	}

	if version != nil && len(version.Files) > 0 && version.Files[0].Url != "" {
		tmp, err := fileutils.DownloadToTemp(version.Files[0].Url)
		if err != nil {
			pterm.Warning.Println("could not fetch " + projectId + " for inspection (" + api.ClassifyError(err) + ")")
			return nil
		}
		defer os.Remove(tmp)

		if modJson, err1 := fileutils.GetModJsonFromJar(tmp); err1 == nil {
			return dependenciesFromModJson(modJson)
		}
	}
	return nil
}

func dependenciesFromModJson(modJson fileutils.ModJson) []util.Dependency {
	var deps []util.Dependency
	for id, requirement := range modJson.Depends {
		deps = append(deps, util.Dependency{
			ProjectId:          id,
			Name:               id,
			DependencyType:     "required",
			VersionRequirement: requirement,
		})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].ProjectId < deps[j].ProjectId })
	return deps
}

func dedupeReports(reports []util.DependencyReport) []util.DependencyReport {
	seen := map[string]bool{}
	var out []util.DependencyReport
	for _, report := range reports {
		if seen[report.ProjectId] {
			continue
		}
		seen[report.ProjectId] = true
		out = append(out, report)
	}
	return out
}
