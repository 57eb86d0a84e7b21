package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"tabroomapi/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func intArg(args []string, i int, name string) int {
	n, err := strconv.Atoi(args[i])
	if err != nil {
		serviceutil.Fatal(fmt.Sprintf("%s must be an integer", name), err)
	}
	return n
}

var errNoCredentials = errors.New("set username and password in tabroom.json5 or TABROOM_USERNAME / TABROOM_PASSWORD")

// withSession logs in with the configured credentials, runs fn then logs out.
func withSession(ctx context.Context, fn func(ctx context.Context) error) {
	if config.Username == "" || config.Password == "" {
		serviceutil.Fatal("no credentials", errNoCredentials)
	}
	ok, err := client.Login(ctx, config.Username, config.Password)
	if err != nil {
		serviceutil.Fatal("failed to login", err)
	}
	if !ok {
		serviceutil.Fatal("failed to login", fmt.Errorf("tabroom rejected the credentials of '%s'", config.Username))
	}

	err = fn(ctx)
	client.Logout(ctx)
	if err != nil {
		serviceutil.Fatal("command failed", err)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
