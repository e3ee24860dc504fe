package fileutils

import (
	"archive/zip"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/buger/jsonparser"
)

type ModJson struct {
	Id          string
	Version     string
	Name        string
	Description string
	Authors     []string
	// Depends maps a mod id to the declared version requirement. This is the
	// jar-scan dependency source used when the registry declares nothing.
	Depends map[string]string
}

// GetModJsonFromJar pulls loader metadata out of a mod jar. Fabric's
// fabric.mod.json is tried first, then Quilt's quilt.mod.json.
func GetModJsonFromJar(filepath string) (ModJson, error) {
	reader, err := zip.OpenReader(filepath)
	if err != nil {
		return ModJson{}, err
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != "fabric.mod.json" && file.Name != "quilt.mod.json" {
			continue
		}

		f, err1 := file.Open()
		if err1 != nil {
			return ModJson{}, err1
		}
		content, err2 := io.ReadAll(f)
		f.Close()
		if err2 != nil {
			return ModJson{}, err2
		}

		if file.Name == "fabric.mod.json" {
			return parseFabricModJson(content), nil
		}
		return parseQuiltModJson(content), nil
	}
	return ModJson{}, errors.New("no mod metadata in jar")
}

func parseFabricModJson(content []byte) ModJson {
	var modJson ModJson
	modJson.Id, _ = jsonparser.GetString(content, "id")
	modJson.Version, _ = jsonparser.GetString(content, "version")
	modJson.Name, _ = jsonparser.GetString(content, "name")
	modJson.Description, _ = jsonparser.GetString(content, "description")

	//authors entries are either plain strings or {"name": ...} objects
	jsonparser.ArrayEach(content, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		switch dataType {
		case jsonparser.String:
			modJson.Authors = append(modJson.Authors, string(value))
		case jsonparser.Object:
			if name, err1 := jsonparser.GetString(value, "name"); err1 == nil {
				modJson.Authors = append(modJson.Authors, name)
			}
		}
	}, "authors")

	modJson.Depends = map[string]string{}
	jsonparser.ObjectEach(content, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		switch dataType {
		case jsonparser.String:
			modJson.Depends[string(key)] = string(value)
		case jsonparser.Array:
			//fabric allows a list of acceptable ranges, the first is enough here
			jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, o int, e error) {
				if _, ok := modJson.Depends[string(key)]; !ok && dt == jsonparser.String {
					modJson.Depends[string(key)] = string(v)
				}
			})
		}
		return nil
	}, "depends")
	return modJson
}

func parseQuiltModJson(content []byte) ModJson {
	var modJson ModJson
	modJson.Id, _ = jsonparser.GetString(content, "quilt_loader", "id")
	modJson.Version, _ = jsonparser.GetString(content, "quilt_loader", "version")
	modJson.Name, _ = jsonparser.GetString(content, "quilt_loader", "metadata", "name")
	modJson.Description, _ = jsonparser.GetString(content, "quilt_loader", "metadata", "description")

	modJson.Depends = map[string]string{}
	jsonparser.ArrayEach(content, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if dataType != jsonparser.Object {
			return
		}
		id, err1 := jsonparser.GetString(value, "id")
		if err1 != nil {
			return
		}
		versions, _ := jsonparser.GetString(value, "versions")
		modJson.Depends[id] = versions
	}, "quilt_loader", "depends")
	return modJson
}

// DownloadFile streams a remote file to disk.
func DownloadFile(url string, filepath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("download failed: " + resp.Status)
	}

	file, err1 := os.Create(filepath)
	if err1 != nil {
		return err1
	}
	defer file.Close()

	_, err2 := io.Copy(file, resp.Body)
	return err2
}

// DownloadToTemp fetches a remote jar for inspection. Caller removes it.
func DownloadToTemp(url string) (string, error) {
	tmp, err := os.CreateTemp("", "modsync-*.jar")
	if err != nil {
		return "", err
	}
	tmp.Close()

	if err1 := DownloadFile(url, tmp.Name()); err1 != nil {
		os.Remove(tmp.Name())
		return "", err1
	}
	return tmp.Name(), nil
}
