package util

type InstalledMod struct {
	FileName string
	// ProjectId is the registry identity, ModId the loader identity from the
	// jar metadata. Either can be empty, dependency matching tries both.
	ProjectId     string
	ModId         string
	VersionId     string
	VersionNumber string
	Name          string
	Source        string
	InstalledAt   string
	Disabled      bool
}

type ModFile struct {
	Url      string
	Filename string
}

type ModVersion struct {
	Id            string
	ProjectId     string
	VersionNumber string
	GameVersions  []string
	Loaders       []string
	Dependencies  []Dependency
	Files         []ModFile

	// Raw is the untouched registry JSON for this version, kept around so the
	// dependency shape adapters can probe layouts the typed fields don't cover.
	Raw string
}

type Dependency struct {
	ProjectId          string
	Name               string
	DependencyType     string
	VersionRequirement string
}

// Dependency classification against the local mods folder.
const (
	DepMissing         = "missing"
	DepDisabled        = "disabled"
	DepVersionMismatch = "version_mismatch"
	DepOk              = "ok"
)

type DependencyReport struct {
	Dependency
	Status           string
	InstalledVersion string
	SuggestedVersion string
}

type CompatibilityResult struct {
	FileName      string
	Name          string
	Compatible    bool
	HasUpdate     bool
	Reason        string
	LatestVersion string
	// Confidence is set when the judgment came from filename heuristics
	// instead of registry metadata ("low" or "medium").
	Confidence string
}

type MatchCandidate struct {
	ProjectId string
	Slug      string
	Title     string
	Author    string
	Downloads int
	Score     float64
}
