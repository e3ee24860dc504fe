package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrnavastar/modsync/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"request timeout while dialing", api.ErrKindTimeout},
		{"context deadline exceeded", api.ErrKindTimeout},
		{"registry returned 404 for /project/x", api.ErrKindNotFound},
		{"project not found", api.ErrKindNotFound},
		{"registry returned 403 for /search", api.ErrKindForbidden},
		{"access forbidden", api.ErrKindForbidden},
		{"registry returned 500 for /project/x", api.ErrKindServer},
		{"internal server error", api.ErrKindServer},
		{"something else entirely", api.ErrKindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, api.ClassifyError(errors.New(tt.msg)), tt.msg)
	}
	assert.Equal(t, "", api.ClassifyError(nil))
}

func TestSearchModrinth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "sodium", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":[{"project_id":"AANobbMI","slug":"sodium","title":"Sodium","author":"jellysquid3","downloads":50000,"versions":["1.21.1"],"categories":["fabric"]}]}`))
	}))
	defer server.Close()

	old := api.MODRINTH_API_BASE
	api.MODRINTH_API_BASE = server.URL
	defer func() { api.MODRINTH_API_BASE = old }()

	hits, err := api.NewClient().SearchModrinth("sodium", "fabric")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "AANobbMI", hits[0].Project_id)
	assert.Equal(t, "sodium", hits[0].Slug)
	assert.Equal(t, 50000, hits[0].Downloads)
}

func TestGetWithRetry_RecoversFromServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"P7dR8mSH","slug":"fabric-api","title":"Fabric API"}`))
	}))
	defer server.Close()

	old := api.MODRINTH_API_BASE
	api.MODRINTH_API_BASE = server.URL
	defer func() { api.MODRINTH_API_BASE = old }()

	project, err := api.NewClient().GetModrinthProject("fabric-api")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "fabric-api", project.Slug)
}

func TestGetWithRetry_GivesUpOnClientError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	old := api.MODRINTH_API_BASE
	api.MODRINTH_API_BASE = server.URL
	defer func() { api.MODRINTH_API_BASE = old }()

	_, err := api.NewClient().GetModrinthProject("nope")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, api.ErrKindNotFound, api.ClassifyError(err))
}

func TestGetLatestFabricLoaderVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/versions/loader", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"version":"0.17.0-beta.1","stable":false},{"version":"0.16.14","stable":true},{"version":"0.16.13","stable":true}]`))
	}))
	defer server.Close()

	old := api.FABRIC_META_BASE
	api.FABRIC_META_BASE = server.URL
	defer func() { api.FABRIC_META_BASE = old }()

	version, err := api.NewClient().GetLatestFabricLoaderVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.16.14", version, "first stable entry wins, betas are skipped")
}

func TestLatestCurseFile(t *testing.T) {
	files := []api.CurseFile{
		{Id: 1, GameVersion: []string{"1.20.1"}, GameVersionDateReleased: "2023-06-01T00:00:00Z"},
		{Id: 2, GameVersion: []string{"1.20.1"}, GameVersionDateReleased: "2024-01-01T00:00:00Z"},
		{Id: 3, GameVersion: []string{"1.21.1"}, GameVersionDateReleased: "2024-06-01T00:00:00Z"},
	}

	latest, ok := api.LatestCurseFile(files, "1.20.1")
	require.True(t, ok)
	assert.Equal(t, 2, latest.Id)

	_, ok = api.LatestCurseFile(files, "1.19.2")
	assert.False(t, ok)
}

func TestCurseDependencies(t *testing.T) {
	file := api.CurseFile{
		Dependencies: []struct {
			AddonId int
			Type    int
		}{
			{AddonId: 100, Type: 3},
			{AddonId: 200, Type: 2},
			{AddonId: 300, Type: 1},
			{AddonId: 400, Type: 5},
			{AddonId: 500, Type: 0},
		},
	}

	deps := api.CurseDependencies(file)
	require.Len(t, deps, 3)
	assert.Equal(t, "curse:100", deps[0].ProjectId)
	assert.Equal(t, "required", deps[0].DependencyType)
	assert.Equal(t, "optional", deps[1].DependencyType)
	assert.Equal(t, "required", deps[2].DependencyType)
}
