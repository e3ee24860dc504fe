package fileutils

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/modsync/util"
	"github.com/zalando/go-keyring"
)

const ManifestName = "modsync.json"

// Setup remembers the managed mods directory and seeds an empty manifest.
func Setup(modsDir string) error {
	if modsDir == "" {
		return errors.New("mods directory is required")
	}

	err := keyring.Set("modsync", "mods_dir", modsDir)
	if err != nil {
		return err
	}

	if _, err1 := os.Stat(modsDir); os.IsNotExist(err1) {
		if err2 := os.MkdirAll(modsDir, 0700); err2 != nil {
			return err2
		}
	}

	manifest := filepath.Join(modsDir, ManifestName)
	if _, err1 := os.Stat(manifest); os.IsNotExist(err1) {
		return os.WriteFile(manifest, []byte(`{"mods":{}}`), 0644)
	}
	return nil
}

func ModsDir() (string, error) {
	dir, err := keyring.Get("modsync", "mods_dir")
	if err != nil {
		return "", errors.New("modsync is not set up, run setup first")
	}
	return dir, nil
}

// LoadManifest reads the install records keyed by filename. A missing
// manifest is not an error, the folder view is rebuilt from disk anyway.
func LoadManifest(modsDir string) (map[string]util.InstalledMod, error) {
	data, err := os.ReadFile(filepath.Join(modsDir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]util.InstalledMod{}, nil
		}
		return nil, err
	}

	var manifest struct {
		Mods map[string]util.InstalledMod
	}
	if err1 := json.Unmarshal(data, &manifest); err1 != nil {
		return nil, err1
	}
	if manifest.Mods == nil {
		manifest.Mods = map[string]util.InstalledMod{}
	}
	return manifest.Mods, nil
}

// SetManifestMod patches a single record in place instead of rewriting the
// whole file, so batched installs can't clobber each other's entries.
func SetManifestMod(modsDir string, mod util.InstalledMod) error {
	path := filepath.Join(modsDir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	record, err1 := json.Marshal(mod)
	if err1 != nil {
		return err1
	}

	patched, err2 := jsonparser.Set(data, record, "mods", mod.FileName)
	if err2 != nil {
		return err2
	}
	return os.WriteFile(path, patched, 0644)
}

func RemoveManifestMod(modsDir string, fileName string) error {
	path := filepath.Join(modsDir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, jsonparser.Delete(data, "mods", fileName), 0644)
}
