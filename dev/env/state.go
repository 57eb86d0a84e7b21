package devenv

import (
	"os"
	"path/filepath"
	"strings"

	"tabroomapi/lib/configutil"

	"golang.org/x/mod/modfile"
)

const (
	modulePath = "tabroomapi"
	// statePrefix marks a config path as relative to the dev state directory
	statePrefix = "<dev_state>"
)

func isWorkspaceRoot(dir string) bool {
	mod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return false
	}
	return modfile.ModulePath(mod) == modulePath
}

// WorkspaceRoot walks up from the working directory to the directory holding
// the tabroomapi go.mod.
func WorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if isWorkspaceRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// StateDir returns dev/.state under the workspace root, creating it when it
// is missing.
func StateDir() (string, error) {
	root, err := WorkspaceRoot()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "dev", ".state")
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return "", err
	}
	return dir, nil
}

func GetStateFilePath(name string) (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ResolvePath expands a leading <dev_state> segment, any other path is
// returned as is.
func ResolvePath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, statePrefix)
	if !ok {
		return path, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.TrimLeft(rest, `/\`)), nil
}

// ReadTabroomTestConfig reads the live account config, callers should t.Skip
// when it returns an error.
func ReadTabroomTestConfig() (TabroomTestConfig, error) {
	path, err := GetStateFilePath(TabroomTestConfigFile)
	if err != nil {
		return TabroomTestConfig{}, err
	}
	return configutil.ReadConfig[TabroomTestConfig](path)
}
