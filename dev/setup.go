package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	devenv "tabroomapi/dev/env"
	"tabroomapi/internal/store"
	configlibsql "tabroomapi/lib/configutil/libsql"
)

const storeDbFile = "tabroom.db"

func CreateStoreDB() error {
	path, err := devenv.ResolvePath(filepath.Join("<dev_state>", storeDbFile))
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	s, err := store.Open(context.Background(), configlibsql.Struct{File: path})
	if err != nil {
		return err
	}
	return s.Close()
}

const testConfigTemplate = `{
    // an account on tabroom.com, live tests skip themselves while this is empty
    username: "",
    password: "",
    // a tournament the account entered and a judge with a paradigm
    tournament_id: 0,
    judge_id: 0
}
`

// CreateTestConfigTemplate writes a blank live test config unless one exists.
func CreateTestConfigTemplate() error {
	path, err := devenv.GetStateFilePath(devenv.TabroomTestConfigFile)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(testConfigTemplate), 0600)
}

func PrintConfigLocations() {
	configPath, _ := devenv.GetStateFilePath(devenv.TabroomTestConfigFile)
	dbPath, _ := devenv.GetStateFilePath(storeDbFile)

	slog.Info("live tests read their credentials from here", "path", configPath)
	slog.Info(
		"point tabroom.json5 at the dev database to keep scraped tournaments",
		"database", fmt.Sprintf(`{ file: "<dev_state>/%s" }`, storeDbFile),
		"path", dbPath,
	)
}
