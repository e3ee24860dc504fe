package fileutils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const DisabledSuffix = ".disabled"

// ListMods scans a mods directory and returns every mod filename (normalized
// to its enabled ".jar" name) plus the set of filenames currently disabled.
// Disabled state is nothing more than the ".jar.disabled" rename convention.
func ListMods(modsDir string) (files []string, disabled map[string]bool, err error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, nil, err
	}

	disabled = map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".jar"):
			files = append(files, name)
		case strings.HasSuffix(name, ".jar"+DisabledSuffix):
			base := strings.TrimSuffix(name, DisabledSuffix)
			files = append(files, base)
			disabled[base] = true
		}
	}
	return files, disabled, nil
}

func EnableMod(modsDir string, fileName string) error {
	src := filepath.Join(modsDir, fileName+DisabledSuffix)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return errors.New("mod is not disabled")
	}
	return os.Rename(src, filepath.Join(modsDir, fileName))
}

func DisableMod(modsDir string, fileName string) error {
	src := filepath.Join(modsDir, fileName)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return errors.New("mod is not enabled")
	}
	return os.Rename(src, src+DisabledSuffix)
}

// RemoveMod deletes the mod file, whichever state it is in, and drops its
// manifest record.
func RemoveMod(modsDir string, fileName string) error {
	err := os.Remove(filepath.Join(modsDir, fileName))
	if os.IsNotExist(err) {
		err = os.Remove(filepath.Join(modsDir, fileName+DisabledSuffix))
	}
	if err != nil {
		return err
	}
	return RemoveManifestMod(modsDir, fileName)
}

// ModFilePath returns the on-disk path for a mod filename, accounting for
// the disabled rename.
func ModFilePath(modsDir string, fileName string, isDisabled bool) string {
	if isDisabled {
		return filepath.Join(modsDir, fileName+DisabledSuffix)
	}
	return filepath.Join(modsDir, fileName)
}
