package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	mode     string
	config   string
	log      string
	dumpHttp string
	verbose  bool
	send     bool
}

var rootCmd = &cobra.Command{
	Use:          "stockbot --mode <ticker> --config <path/to/config.json5> --log <path/to/log> [--send]",
	Short:        "stockbot scrapes daily stock metrics for a ticker and posts them to twitter.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		return run(cmd.Context(), s.config, s.tel, s.output, runOptions{
			ticker: s.ticker,
			send:   rootFlags.send,
			out:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.mode, "mode", "", "The ticker to report on (AMC or GME).")
	flags.StringVar(&rootFlags.config, "config", "", "The config file holding the account credentials.")
	flags.StringVar(&rootFlags.log, "log", "", "The file to write logs to, its directory must already exist.")
	flags.StringVar(&rootFlags.dumpHttp, "dump-http", "", "Write every http request and response to this directory.")
	flags.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log debug information.")
	rootCmd.MarkPersistentFlagRequired("mode")
	rootCmd.MarkPersistentFlagRequired("config")
	rootCmd.MarkPersistentFlagRequired("log")

	rootCmd.Flags().BoolVar(&rootFlags.send, "send", false, "Post the report instead of printing it.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
