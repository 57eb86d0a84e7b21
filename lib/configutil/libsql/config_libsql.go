package configlibsql

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	devenv "tabroomapi/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct points at either a local sqlite file (paths may start with
// `<dev_state>`), a remote libsql database (libsql://, https://, wss://)
// or ":memory:".
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func isRemote(u string) bool {
	for _, scheme := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(u, scheme) {
			return true
		}
	}
	return false
}

func (config Struct) openRemote() (*sql.DB, error) {
	if !isRemote(config.Url) {
		return nil, fmt.Errorf("unsupported database url '%s'", config.Url)
	}
	dsn := config.Url
	if config.AuthToken != "" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "authToken=" + config.AuthToken
	}
	return sql.Open("libsql", dsn)
}

func (config Struct) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		return config.openRemote()
	}
	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}

	dbpath := config.File
	if dbpath != ":memory:" {
		resolved, err := devenv.ResolvePath(config.File)
		if err != nil {
			return nil, err
		}
		dbpath = resolved

		_, statErr := os.Stat(dbpath)
		if os.IsNotExist(statErr) {
			f, err := os.Create(dbpath)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway, a single connection also keeps an
	// in-memory database alive between calls
	db.SetMaxOpenConns(1)
	if dbpath != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
