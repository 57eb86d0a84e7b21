package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"tabroomapi/internal/tabroom"
	"tabroomapi/lib/restyutil"
	"tabroomapi/lib/serviceutil"
	"tabroomapi/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	verbose *bool
	dumpDir *string
)

// populated by the root command before any subcommand runs
var (
	config Config
	client *tabroom.Client
)

var rootCmd = &cobra.Command{
	Use:   "tabroom-cli",
	Short: "tabroom-cli scrapes tournaments, results and account data off tabroom.com.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		var err error
		config, err = ReadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		opts := config.ClientOptions()
		if *dumpDir != "" {
			output, err := restyutil.NewFilesystemOutput(*dumpDir)
			if err != nil {
				serviceutil.Fatal("failed to create dump directory", err)
			}
			slog.Info("dumping http exchanges", "dir", output.Directory())
			opts.InstrumentOutput = output
		}

		client, err = tabroom.NewClient(opts)
		if err != nil {
			serviceutil.Fatal("failed to create client", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output.")
	dumpDir = rootCmd.PersistentFlags().String("dump", "", "Write every http exchange into this directory (may start with <dev_state>).")
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
