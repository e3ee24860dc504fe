package services

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/mrnavastar/modsync/util"
	"github.com/mrnavastar/modsync/util/fileutils"
	"github.com/pterm/pterm"
)

// InstallMod downloads the latest matching version of a project into the
// mods folder and records it in the manifest.
func (r *Resolver) InstallMod(projectId string) (util.InstalledMod, error) {
	if projectId == "" {
		return util.InstalledMod{}, errors.New("project id is required")
	}
	if local := r.local.Find(projectId); local != nil {
		return *local, errors.New("mod already added")
	}

	version, err := r.LatestVersion(projectId)
	if err != nil {
		return util.InstalledMod{}, err
	}
	if len(version.Files) == 0 || version.Files[0].Url == "" {
		return util.InstalledMod{}, errors.New("version has no downloadable file")
	}

	file := version.Files[0]
	path := filepath.Join(r.local.ModsDir, file.Filename)
	if err1 := fileutils.DownloadFile(file.Url, path); err1 != nil {
		return util.InstalledMod{}, err1
	}

	mod := util.InstalledMod{
		FileName:      file.Filename,
		ProjectId:     projectId,
		VersionId:     version.Id,
		VersionNumber: version.VersionNumber,
		Source:        "modrinth",
		InstalledAt:   time.Now().Format(time.RFC3339),
	}
	if _, ok := CurseId(projectId); ok {
		mod.Source = "curseforge"
	}
	if version.ProjectId != "" {
		mod.ProjectId = version.ProjectId
	}
	if modJson, err2 := fileutils.GetModJsonFromJar(path); err2 == nil {
		mod.ModId = modJson.Id
		mod.Name = modJson.Name
	}
	if mod.Name == "" {
		if curseId, ok := CurseId(projectId); ok {
			if project, err3 := r.registry.GetCurseProject(curseId); err3 == nil {
				mod.Name = project.Name
			}
		} else if project, err3 := r.registry.GetModrinthProject(projectId); err3 == nil {
			mod.Name = project.Title
		}
	}

	if err4 := fileutils.SetManifestMod(r.local.ModsDir, mod); err4 != nil {
		return mod, err4
	}
	r.local.Mods = append(r.local.Mods, mod)
	pterm.Success.Println("Installed " + mod.Name + " " + mod.VersionNumber)
	return mod, nil
}

// UpdateMod swaps an installed mod's file for the latest matching version.
func (r *Resolver) UpdateMod(fileName string) (util.InstalledMod, error) {
	local := r.local.ByFileName(fileName)
	if local == nil {
		return util.InstalledMod{}, errors.New("no mod found")
	}
	if local.ProjectId == "" {
		return util.InstalledMod{}, errors.New("mod has no registry identity, run match first")
	}

	version, err := r.LatestVersion(local.ProjectId)
	if err != nil {
		return util.InstalledMod{}, err
	}
	if version.Id == local.VersionId || version.VersionNumber == local.VersionNumber {
		return *local, errors.New("mod already up to date")
	}
	if len(version.Files) == 0 || version.Files[0].Url == "" {
		return util.InstalledMod{}, errors.New("version has no downloadable file")
	}

	file := version.Files[0]
	path := filepath.Join(r.local.ModsDir, file.Filename)
	if err1 := fileutils.DownloadFile(file.Url, path); err1 != nil {
		return util.InstalledMod{}, err1
	}

	// Drop the old file only once the replacement is on disk.
	if file.Filename != local.FileName {
		if err2 := fileutils.RemoveMod(r.local.ModsDir, local.FileName); err2 != nil {
			pterm.Warning.Println("could not remove " + local.FileName + ": " + err2.Error())
		}
	}

	updated := *local
	updated.FileName = file.Filename
	updated.VersionId = version.Id
	updated.VersionNumber = version.VersionNumber
	updated.Disabled = false
	updated.InstalledAt = time.Now().Format(time.RFC3339)

	if err3 := fileutils.SetManifestMod(r.local.ModsDir, updated); err3 != nil {
		return updated, err3
	}
	*local = updated
	pterm.Success.Println("Updated " + updated.Name + " to " + updated.VersionNumber)
	return updated, nil
}
