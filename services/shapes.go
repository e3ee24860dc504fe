package services

import (
	"github.com/mrnavastar/modsync/util"
	"github.com/tidwall/gjson"
)

// A shapeAdapter pulls dependency declarations out of one known upstream
// layout. Registry responses have gone through at least six layouts over the
// years and old ones still show up, so adapters run in order and the first
// non-empty extraction wins.
type shapeAdapter struct {
	name    string
	extract func(version gjson.Result) []util.Dependency
}

var shapeAdapters = []shapeAdapter{
	{"dependencies", func(v gjson.Result) []util.Dependency { return depsFromArray(v.Get("dependencies")) }},
	{"depends", adaptDepends},
	{"required_dependencies", func(v gjson.Result) []util.Dependency { return depsFromArray(v.Get("required_dependencies")) }},
	{"required_mods", func(v gjson.Result) []util.Dependency { return depsFromArray(v.Get("required_mods")) }},
	{"game_versions.requires", adaptGameVersionRequires},
	{"relationships", adaptRelationships},
	{"metadata.dependencies", func(v gjson.Result) []util.Dependency { return depsFromArray(v.Get("metadata.dependencies")) }},
}

// ExtractDependencies normalizes a version's declared dependencies out of
// whichever layout the response happens to use.
func ExtractDependencies(versionRaw string) []util.Dependency {
	doc := gjson.Parse(versionRaw)
	for _, adapter := range shapeAdapters {
		if deps := adapter.extract(doc); len(deps) > 0 {
			return deps
		}
	}
	return nil
}

// depsFromArray handles the common case: an array of either plain id strings
// or objects with some spelling of id/type/version. Ambiguous types count as
// required, over-including beats silently dropping a requirement.
func depsFromArray(arr gjson.Result) []util.Dependency {
	if !arr.IsArray() {
		return nil
	}

	var deps []util.Dependency
	arr.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			deps = append(deps, util.Dependency{
				ProjectId:      item.String(),
				Name:           item.String(),
				DependencyType: "required",
			})
			return true
		}

		id := firstString(item, "project_id", "projectId", "id", "mod_id", "slug")
		if id == "" {
			return true
		}

		depType := firstString(item, "dependency_type", "type")
		switch depType {
		case "incompatible", "embedded":
			return true
		case "optional":
		default:
			depType = "required"
		}

		deps = append(deps, util.Dependency{
			ProjectId:          id,
			Name:               firstString(item, "name", "title", "file_name"),
			DependencyType:     depType,
			VersionRequirement: firstString(item, "version_requirement", "version", "versions"),
		})
		return true
	})
	return deps
}

// adaptDepends covers the fabric.mod.json style map of modid to range, plus
// responses that ship "depends" as an array.
func adaptDepends(version gjson.Result) []util.Dependency {
	d := version.Get("depends")
	if !d.IsObject() {
		return depsFromArray(d)
	}

	var deps []util.Dependency
	d.ForEach(func(key, value gjson.Result) bool {
		requirement := ""
		switch {
		case value.Type == gjson.String:
			requirement = value.String()
		case value.IsArray():
			if items := value.Array(); len(items) > 0 {
				requirement = items[0].String()
			}
		}
		deps = append(deps, util.Dependency{
			ProjectId:          key.String(),
			Name:               key.String(),
			DependencyType:     "required",
			VersionRequirement: requirement,
		})
		return true
	})
	return deps
}

func adaptGameVersionRequires(version gjson.Result) []util.Dependency {
	var deps []util.Dependency
	version.Get("game_versions").ForEach(func(_, gv gjson.Result) bool {
		deps = append(deps, depsFromArray(gv.Get("requires"))...)
		return true
	})
	return deps
}

func adaptRelationships(version gjson.Result) []util.Dependency {
	if deps := depsFromArray(version.Get("relationships.dependencies")); len(deps) > 0 {
		return deps
	}
	return depsFromArray(version.Get("relationships.required"))
}

func firstString(item gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := item.Get(key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// ParseModrinthVersions decodes a raw version-list response, keeping each
// element's raw JSON so the shape adapters stay usable downstream.
func ParseModrinthVersions(raw string) []util.ModVersion {
	var versions []util.ModVersion
	gjson.Parse(raw).ForEach(func(_, v gjson.Result) bool {
		mv := util.ModVersion{
			Id:            v.Get("id").String(),
			ProjectId:     v.Get("project_id").String(),
			VersionNumber: v.Get("version_number").String(),
			Raw:           v.Raw,
		}
		for _, gv := range v.Get("game_versions").Array() {
			mv.GameVersions = append(mv.GameVersions, gv.String())
		}
		for _, l := range v.Get("loaders").Array() {
			mv.Loaders = append(mv.Loaders, l.String())
		}
		v.Get("files").ForEach(func(_, f gjson.Result) bool {
			mv.Files = append(mv.Files, util.ModFile{
				Url:      f.Get("url").String(),
				Filename: f.Get("filename").String(),
			})
			return true
		})
		mv.Dependencies = ExtractDependencies(v.Raw)
		versions = append(versions, mv)
		return true
	})
	return versions
}
