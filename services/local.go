package services

import (
	"strings"

	"github.com/mrnavastar/modsync/util"
	"github.com/mrnavastar/modsync/util/fileutils"
	"github.com/mrnavastar/modsync/util/mcversion"
)

// LocalView is a snapshot of the mods folder merged with the manifest.
// Rebuilt from disk on every load, nothing owns it across commands.
type LocalView struct {
	ModsDir string
	Mods    []util.InstalledMod
}

func NewLocalView(modsDir string) (*LocalView, error) {
	files, disabled, err := fileutils.ListMods(modsDir)
	if err != nil {
		return nil, err
	}

	manifest, err1 := fileutils.LoadManifest(modsDir)
	if err1 != nil {
		return nil, err1
	}

	view := &LocalView{ModsDir: modsDir}
	for _, file := range files {
		mod, ok := manifest[file]
		if !ok {
			mod = util.InstalledMod{FileName: file}
		}
		mod.FileName = file
		mod.Disabled = disabled[file]

		if mod.ModId == "" || mod.VersionNumber == "" {
			path := fileutils.ModFilePath(modsDir, file, mod.Disabled)
			if modJson, err2 := fileutils.GetModJsonFromJar(path); err2 == nil {
				if mod.ModId == "" {
					mod.ModId = modJson.Id
				}
				if mod.Name == "" {
					mod.Name = modJson.Name
				}
				if mod.VersionNumber == "" {
					mod.VersionNumber = modJson.Version
				}
			}
		}
		//last resort, read the version off the filename
		if mod.VersionNumber == "" {
			mod.VersionNumber = mcversion.ExtractVersion(file)
		}
		if mod.Name == "" {
			mod.Name = mcversion.StripJarSuffix(file)
		}
		view.Mods = append(view.Mods, mod)
	}
	return view, nil
}

// Find matches an installed mod by registry project id, loader mod id, or a
// slugified name as a last resort.
func (v *LocalView) Find(id string) *util.InstalledMod {
	for i := range v.Mods {
		mod := &v.Mods[i]
		if mod.ProjectId != "" && mod.ProjectId == id {
			return mod
		}
		if mod.ModId != "" && strings.EqualFold(mod.ModId, id) {
			return mod
		}
		if mod.Name != "" && strings.EqualFold(strings.ReplaceAll(mod.Name, " ", "-"), id) {
			return mod
		}
	}
	return nil
}

func (v *LocalView) ByFileName(fileName string) *util.InstalledMod {
	for i := range v.Mods {
		if v.Mods[i].FileName == fileName {
			return &v.Mods[i]
		}
	}
	return nil
}
