package mcversion_test

import (
	"testing"

	"github.com/mrnavastar/modsync/util/mcversion"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"patch greater", "1.2.4", "1.2.3", 1},
		{"minor greater", "1.3.0", "1.2.9", 1},
		{"major greater", "2.0.0", "1.99.99", 1},
		{"prefix is older", "1.0", "1.0.1", -1},
		{"prefix is older reversed", "1.0.1", "1.0", 1},
		{"prerelease below release", "1.2.0-beta", "1.2.0", -1},
		{"release above prerelease", "1.2.0", "1.2.0-beta", 1},
		{"prerelease ordering", "1.2.0-alpha", "1.2.0-beta", -1},
		{"numeric beats string token", "1.2.0", "1.2.beta", 1},
		{"string tokens lexicographic", "1.2.a", "1.2.b", -1},
		{"numeric not padded", "1.10.0", "1.9.0", 1},
		{"both empty", "", "", 0},
		{"underscore separator", "1.2_3", "1.2_2", 1},
		{"loose tail numeric beats string", "1.2.0_x-1", "1.2.0_x-beta", 1},
		{"build metadata tail", "0.91.0+1.20.1", "0.90.0+1.20.1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mcversion.Compare(tt.a, tt.b))
		})
	}
}

func TestCompare_Reflexive(t *testing.T) {
	for _, v := range []string{"1.0", "1.2.3", "1.2.3-beta.1", "0.91.0+1.20.1", "garbage", ""} {
		assert.Equal(t, 0, mcversion.Compare(v, v), v)
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	versions := []string{"1.0", "1.0.1", "1.2.0", "1.2.0-beta", "2.0.0", "1.10.2", "1.9.4"}
	for _, a := range versions {
		for _, b := range versions {
			assert.Equal(t, -mcversion.Compare(b, a), mcversion.Compare(a, b), "%s vs %s", a, b)
		}
	}
}
