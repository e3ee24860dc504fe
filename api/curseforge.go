package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/mrnavastar/modsync/util"
)

var CURSE_API_BASE = "https://addons-ecs.forgesvc.net/api/v2"

type CurseProject struct {
	Id            int
	Name          string
	Slug          string
	DownloadCount float64
	Authors       []struct {
		Name string
	}
}

type CurseFile struct {
	Id                      int
	FileName                string
	DownloadUrl             string
	GameVersion             []string
	GameVersionDateReleased string
	Dependencies            []struct {
		AddonId int
		Type    int
	}
}

// Relation types of the forgesvc API.
const (
	curseRelationEmbedded     = 1
	curseRelationOptional     = 2
	curseRelationRequired     = 3
	curseRelationIncompatible = 5
)

func (c *Client) GetCurseProject(id string) (CurseProject, error) {
	var project CurseProject
	_, err := c.getWithRetry(CURSE_API_BASE+"/addon/"+url.PathEscape(id), &project)
	return project, err
}

func (c *Client) GetCurseFiles(id string) ([]CurseFile, error) {
	var files []CurseFile
	_, err := c.getWithRetry(CURSE_API_BASE+"/addon/"+url.PathEscape(id)+"/files", &files)
	return files, err
}

func (c *Client) SearchCurse(query string) ([]CurseProject, error) {
	var projects []CurseProject
	_, err := c.get(CURSE_API_BASE+"/addon/search?gameId=432&searchfilter="+url.QueryEscape(query), &projects)
	return projects, err
}

// LatestCurseFile picks the newest file released for the given game version.
func LatestCurseFile(files []CurseFile, gameVersion string) (CurseFile, bool) {
	var latest CurseFile
	var date time.Time
	found := false

	for _, f := range files {
		if !util.Contains(f.GameVersion, gameVersion) {
			continue
		}
		t, err := time.Parse(time.RFC3339, f.GameVersionDateReleased)
		if err != nil {
			continue
		}
		if date.Before(t) {
			latest = f
			date = t
			found = true
		}
	}
	return latest, found
}

// CurseDependencies normalizes file relations into dependency records.
// Embedded and incompatible relations are dropped; anything with an
// ambiguous type counts as required rather than being silently ignored.
func CurseDependencies(file CurseFile) []util.Dependency {
	var deps []util.Dependency
	for _, rel := range file.Dependencies {
		if rel.Type == curseRelationEmbedded || rel.Type == curseRelationIncompatible {
			continue
		}

		depType := "required"
		if rel.Type == curseRelationOptional {
			depType = "optional"
		}
		deps = append(deps, util.Dependency{
			ProjectId:      "curse:" + strconv.Itoa(rel.AddonId),
			Name:           strconv.Itoa(rel.AddonId),
			DependencyType: depType,
		})
	}
	return deps
}
