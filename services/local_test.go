package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrnavastar/modsync/services"
	"github.com/mrnavastar/modsync/util"
	"github.com/mrnavastar/modsync/util/fileutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalView(t *testing.T) {
	dir := t.TempDir()
	writeModJar(t, filepath.Join(dir, "sodium-0.5.8.jar"),
		`{"id":"sodium","version":"0.5.8","name":"Sodium"}`)
	// A jar with no loader metadata at all, version comes off the filename.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examplemod-1.0.0.jar"), []byte("not a zip"), 0644))
	writeModJar(t, filepath.Join(dir, "lithium-0.12.0.jar.disabled"),
		`{"id":"lithium","version":"0.12.0","name":"Lithium"}`)

	require.NoError(t, os.WriteFile(filepath.Join(dir, fileutils.ManifestName), []byte(`{"mods":{}}`), 0644))
	require.NoError(t, fileutils.SetManifestMod(dir, util.InstalledMod{
		FileName:  "sodium-0.5.8.jar",
		ProjectId: "AANobbMI",
		Source:    "modrinth",
	}))

	view, err := services.NewLocalView(dir)
	require.NoError(t, err)
	require.Len(t, view.Mods, 3)

	sodium := view.ByFileName("sodium-0.5.8.jar")
	require.NotNil(t, sodium)
	assert.Equal(t, "AANobbMI", sodium.ProjectId, "manifest identity is kept")
	assert.Equal(t, "sodium", sodium.ModId, "loader identity comes from the jar")
	assert.Equal(t, "0.5.8", sodium.VersionNumber)
	assert.False(t, sodium.Disabled)

	example := view.ByFileName("examplemod-1.0.0.jar")
	require.NotNil(t, example)
	assert.Equal(t, "1.0.0", example.VersionNumber, "filename heuristic fills the gap")
	assert.Empty(t, example.ProjectId)

	lithium := view.ByFileName("lithium-0.12.0.jar")
	require.NotNil(t, lithium)
	assert.True(t, lithium.Disabled)
	assert.Equal(t, "0.12.0", lithium.VersionNumber, "disabled jars are still readable")
}

func TestLocalView_Find(t *testing.T) {
	view := &services.LocalView{Mods: []util.InstalledMod{
		{FileName: "a.jar", ProjectId: "P7dR8mSH", ModId: "fabric-api", Name: "Fabric API"},
		{FileName: "b.jar", Name: "Cloth Config"},
	}}

	assert.NotNil(t, view.Find("P7dR8mSH"), "registry project id")
	assert.NotNil(t, view.Find("fabric-api"), "loader mod id")
	assert.NotNil(t, view.Find("cloth-config"), "slugified name fallback")
	assert.Nil(t, view.Find("sodium"))
	assert.Nil(t, view.Find(""))
}
