package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRolesTOML() []byte {
	var out []byte
	for _, r := range DefaultRoles() {
		var category string
		switch r.Category.String() {
		case "llm":
			category = "llm"
		case "hybrid":
			category = "hybrid"
		default:
			category = "tool"
		}
		out = append(out, []byte(
			"[[role]]\nname = \""+string(r.Name)+"\"\ncategory = \""+category+"\"\navg_tokens = "+
				strconv.FormatInt(int64(r.AvgTokens), 10)+"\n\n",
		)...)
	}
	return out
}

func TestLoader_LoadFromBytes_RejectsEmpty(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadFromBytes(nil)
	assert.ErrorIs(t, err, ErrConfigEmpty)
}

func TestLoader_LoadFromBytes_RejectsMalformedTOML(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadFromBytes([]byte("not = [valid"))
	assert.Error(t, err)
}

func TestLoader_LoadFromFile_MissingFileErrors(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoader_LoadFromFile_ValidRegistryRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.toml")
	require.NoError(t, os.WriteFile(path, defaultRolesTOML(), 0o644))

	reg, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 20)

	role, ok := reg.Lookup("coder")
	require.True(t, ok)
	assert.Equal(t, "coder", string(role.Name))
}

func TestLoader_LoadFromBytes_RejectsBadCategoryMix(t *testing.T) {
	body := []byte(`
[[role]]
name = "only-one"
category = "llm"
avg_tokens = 100
`)
	_, err := NewLoader().LoadFromBytes(body)
	assert.Error(t, err)
}
