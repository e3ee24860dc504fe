package api

import "errors"

var (
	FABRIC_META_BASE = "https://meta.fabricmc.net/v2"
	MOJANG_META_BASE = "https://launchermeta.mojang.com"
)

type LoaderVersion struct {
	Version string
	Stable  bool
}

func (c *Client) GetLatestFabricLoaderVersion() (string, error) {
	var loaderVersions []LoaderVersion
	_, err := c.get(FABRIC_META_BASE+"/versions/loader", &loaderVersions)
	if err != nil {
		return "", err
	}

	for _, loaderVersion := range loaderVersions {
		if loaderVersion.Stable {
			return loaderVersion.Version, nil
		}
	}
	return "", errors.New("failed to find a stable version")
}

// GetLatestMcVersion returns the current Minecraft release, used as the
// default target when the caller doesn't name one.
func (c *Client) GetLatestMcVersion() (string, error) {
	var versions struct {
		Latest struct {
			Release string
		}
	}
	_, err := c.get(MOJANG_META_BASE+"/mc/game/version_manifest_v2.json", &versions)
	if err != nil {
		return "", err
	}
	if versions.Latest.Release == "" {
		return "", errors.New("failed to get latest minecraft version")
	}
	return versions.Latest.Release, nil
}
