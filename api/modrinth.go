package api

import "net/url"

var MODRINTH_API_BASE = "https://api.modrinth.com/v2"

type ModrinthProject struct {
	Id            string
	Slug          string
	Title         string
	Description   string
	Downloads     int
	Game_versions []string
}

type ModrinthSearchHit struct {
	Project_id string
	Slug       string
	Title      string
	Author     string
	Downloads  int
	Versions   []string
	Categories []string
}

func (c *Client) GetModrinthProject(idOrSlug string) (ModrinthProject, error) {
	var project ModrinthProject
	_, err := c.getWithRetry(MODRINTH_API_BASE+"/project/"+url.PathEscape(idOrSlug), &project)
	return project, err
}

// GetModrinthVersionsRaw fetches a project's version list filtered by loader
// and game version, unparsed. The dependency shape adapters work on the raw
// JSON because upstream layouts are too inconsistent for one decode struct.
func (c *Client) GetModrinthVersionsRaw(idOrSlug string, loader string, gameVersion string) (string, error) {
	u := MODRINTH_API_BASE + "/project/" + url.PathEscape(idOrSlug) + "/version"

	query := ""
	if loader != "" {
		query = "loaders=" + url.QueryEscape(`["`+loader+`"]`)
	}
	if gameVersion != "" {
		if query != "" {
			query += "&"
		}
		query += "game_versions=" + url.QueryEscape(`["`+gameVersion+`"]`)
	}
	if query != "" {
		u += "?" + query
	}

	resp, err := c.getWithRetry(u, nil)
	if err != nil {
		return "", err
	}
	return resp.String(), nil
}

func (c *Client) SearchModrinth(query string, loader string) ([]ModrinthSearchHit, error) {
	u := MODRINTH_API_BASE + "/search?query=" + url.QueryEscape(query)
	if loader != "" {
		u += "&facets=" + url.QueryEscape(`[["categories:`+loader+`"]]`)
	}

	var result struct {
		Hits []ModrinthSearchHit
	}
	_, err := c.get(u, &result)
	return result.Hits, err
}
