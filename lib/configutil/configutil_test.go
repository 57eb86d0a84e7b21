package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Limit    int    `json:"limit"`
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "tabroom.json5"), []byte(`{
		// comments and trailing commas are allowed
		base_url: "https://www.tabroom.com",
		username: "default",
		limit: 16,
	}`), 0600)
	require.Nil(t, err)
	err = os.WriteFile(filepath.Join(dir, "tabroom.local.json5"), []byte(`{username: "override"}`), 0600)
	require.Nil(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "tabroom.json5"))
	require.Nil(t, err)
	require.Equal(t, testConfig{
		BaseUrl:  "https://www.tabroom.com",
		Username: "override",
		Limit:    16,
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nothing.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestLocalVariant(t *testing.T) {
	require.Equal(t, "a/b/config.local.json5", localVariant("a/b/config.json5"))
	require.Equal(t, "config.local", localVariant("config"))
}
