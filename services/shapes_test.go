package services_test

import (
	"testing"

	"github.com/mrnavastar/modsync/services"
	"github.com/mrnavastar/modsync/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDependencies_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []util.Dependency
	}{
		{
			name: "modrinth dependencies array",
			raw:  `{"dependencies":[{"project_id":"P7dR8mSH","dependency_type":"required"},{"project_id":"mOgUt4GM","dependency_type":"optional"}]}`,
			want: []util.Dependency{
				{ProjectId: "P7dR8mSH", DependencyType: "required"},
				{ProjectId: "mOgUt4GM", DependencyType: "optional"},
			},
		},
		{
			name: "embedded and incompatible dropped",
			raw:  `{"dependencies":[{"project_id":"A","dependency_type":"embedded"},{"project_id":"B","dependency_type":"incompatible"},{"project_id":"C"}]}`,
			want: []util.Dependency{{ProjectId: "C", DependencyType: "required"}},
		},
		{
			name: "depends map",
			raw:  `{"depends":{"fabric-api":">=0.92.0","cloth-config":"*"}}`,
			want: []util.Dependency{
				{ProjectId: "fabric-api", Name: "fabric-api", DependencyType: "required", VersionRequirement: ">=0.92.0"},
				{ProjectId: "cloth-config", Name: "cloth-config", DependencyType: "required", VersionRequirement: "*"},
			},
		},
		{
			name: "required_dependencies of plain strings",
			raw:  `{"required_dependencies":["fabric-api","cloth-config"]}`,
			want: []util.Dependency{
				{ProjectId: "fabric-api", Name: "fabric-api", DependencyType: "required"},
				{ProjectId: "cloth-config", Name: "cloth-config", DependencyType: "required"},
			},
		},
		{
			name: "required_mods objects",
			raw:  `{"required_mods":[{"id":"yacl","version":">=3.0.0"}]}`,
			want: []util.Dependency{{ProjectId: "yacl", DependencyType: "required", VersionRequirement: ">=3.0.0"}},
		},
		{
			name: "nested game_versions requires",
			raw:  `{"game_versions":[{"version":"1.21.1","requires":[{"id":"fabric-api"}]},{"version":"1.21","requires":[{"id":"fabric-api"}]}]}`,
			want: []util.Dependency{
				{ProjectId: "fabric-api", DependencyType: "required"},
				{ProjectId: "fabric-api", DependencyType: "required"},
			},
		},
		{
			name: "relationships dependencies",
			raw:  `{"relationships":{"dependencies":[{"slug":"iris","type":"optional"}]}}`,
			want: []util.Dependency{{ProjectId: "iris", DependencyType: "optional"}},
		},
		{
			name: "relationships required fallback",
			raw:  `{"relationships":{"required":["sodium"]}}`,
			want: []util.Dependency{{ProjectId: "sodium", Name: "sodium", DependencyType: "required"}},
		},
		{
			name: "metadata dependencies",
			raw:  `{"metadata":{"dependencies":[{"mod_id":"modmenu"}]}}`,
			want: []util.Dependency{{ProjectId: "modmenu", DependencyType: "required"}},
		},
		{
			name: "no recognizable shape",
			raw:  `{"version_number":"1.0.0"}`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ExtractDependencies(tt.raw)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].ProjectId, got[i].ProjectId)
				assert.Equal(t, tt.want[i].DependencyType, got[i].DependencyType)
				if tt.want[i].VersionRequirement != "" {
					assert.Equal(t, tt.want[i].VersionRequirement, got[i].VersionRequirement)
				}
			}
		})
	}
}

func TestExtractDependencies_FirstNonEmptyShapeWins(t *testing.T) {
	raw := `{
		"dependencies": [{"project_id": "from-dependencies"}],
		"depends": {"from-depends": "*"}
	}`
	deps := services.ExtractDependencies(raw)
	require.Len(t, deps, 1)
	assert.Equal(t, "from-dependencies", deps[0].ProjectId)
}

func TestParseModrinthVersions(t *testing.T) {
	raw := `[
		{
			"id": "v2",
			"project_id": "AANobbMI",
			"version_number": "0.5.9",
			"game_versions": ["1.21.1"],
			"loaders": ["fabric"],
			"files": [{"url": "https://cdn.example/sodium-0.5.9.jar", "filename": "sodium-0.5.9.jar"}],
			"dependencies": [{"project_id": "P7dR8mSH", "dependency_type": "required"}]
		},
		{
			"id": "v1",
			"project_id": "AANobbMI",
			"version_number": "0.5.8",
			"game_versions": ["1.21"],
			"loaders": ["fabric"],
			"files": []
		}
	]`

	versions := services.ParseModrinthVersions(raw)
	require.Len(t, versions, 2)
	assert.Equal(t, "v2", versions[0].Id)
	assert.Equal(t, "0.5.9", versions[0].VersionNumber)
	assert.Equal(t, []string{"1.21.1"}, versions[0].GameVersions)
	assert.Equal(t, []string{"fabric"}, versions[0].Loaders)
	require.Len(t, versions[0].Files, 1)
	assert.Equal(t, "sodium-0.5.9.jar", versions[0].Files[0].Filename)
	require.Len(t, versions[0].Dependencies, 1)
	assert.Equal(t, "P7dR8mSH", versions[0].Dependencies[0].ProjectId)
	assert.Empty(t, versions[1].Dependencies)
}
