package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iterum-provenance/dbt-runner/env"
	"github.com/iterum-provenance/dbt-runner/garbage"
	"github.com/iterum-provenance/dbt-runner/logging"
	"github.com/iterum-provenance/dbt-runner/pipeline"
	"github.com/iterum-provenance/dbt-runner/store"
)

type options struct {
	logLevel string
	logOut   io.Writer
}

func (opts *options) logger() (logging.Logger, error) {
	logger, err := logging.New(opts.logOut, opts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return logger, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{logOut: os.Stderr}
	root := &cobra.Command{
		Use:           "dbt-runner",
		Short:         "Fetch a dbt project, resolve its credentials and run a command against it",
		Long:          "dbt-runner is configured entirely through environment variables, see `dbt-runner config`.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			conf := env.Resolve(logger)
			code, err := pipeline.New(conf, logger).Run(cmd.Context())
			if err != nil && code == 0 {
				code = 1
			}
			if code != 0 {
				return &ExitError{Code: code, Err: err}
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(newCleanupCmd(opts), newConfigCmd(opts))
	return root
}

func newCleanupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove every package fetched into the download directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			if err = garbage.NewCollector(store.DownloadDir, logger).Collect(); err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the configuration resolved from the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			values := env.Resolve(logger).Values()
			names := make([]string, 0, len(values))
			for name := range values {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%v=%v\n", name, values[name])
			}
			return nil
		},
	}
}
