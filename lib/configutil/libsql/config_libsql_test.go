package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	db, err := Struct{File: filepath.Join(t.TempDir(), "state.db")}.OpenDB()
	require.Nil(t, err)
	defer db.Close()

	_, err = db.Exec("create table t (id integer primary key)")
	require.Nil(t, err)
}

func TestOpenMemory(t *testing.T) {
	db, err := Struct{File: ":memory:"}.OpenDB()
	require.Nil(t, err)
	defer db.Close()
	require.Nil(t, db.Ping())
}

func TestOpenInvalid(t *testing.T) {
	_, err := Struct{}.OpenDB()
	require.NotNil(t, err)
	_, err = Struct{Url: "postgres://localhost"}.OpenDB()
	require.NotNil(t, err)
	require.True(t, isRemote("libsql://db.turso.io"))
}
