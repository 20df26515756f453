package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"snapshot-matcher/internal/config"
	"snapshot-matcher/internal/log"
	"snapshot-matcher/internal/store"
)

// errMismatch signals a failed check; the report is already printed.
var errMismatch = errors.New("snapshot mismatch")

// options are the persistent flags shared by all subcommands.
type options struct {
	configPath string
	root       string
	format     string
	verbose    bool
	jsonLog    bool
	unified    bool
	context    int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "snapshot-matcher",
		Short:         "Inspect and check test snapshot files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			log.Init(log.Options{
				Verbose:    cfg.Log.Verbose,
				JSONFormat: cfg.Log.JSON,
				Stderr:     cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML settings file (default: ./"+config.DefaultFile+" when present)")
	f.StringVar(&opts.root, "root", "", "snapshot root directory")
	f.StringVar(&opts.format, "format", "", "snapshot format: json or yaml")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&opts.jsonLog, "json-log", false, "log as JSON")
	f.BoolVar(&opts.unified, "unified", false, "append a unified diff to mismatch reports")
	f.IntVar(&opts.context, "context", 0, "context lines in unified diffs")

	cmd.AddCommand(newListCmd(opts), newCheckCmd(opts), newResolveCmd(opts))
	return cmd
}

// load merges file and environment settings with explicitly set flags.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	var lopts []config.Option
	switch {
	case o.configPath != "":
		lopts = append(lopts, config.WithConfigFile(o.configPath))
	default:
		if ok, _ := store.Exists(config.DefaultFile); ok {
			lopts = append(lopts, config.WithConfigFile(config.DefaultFile))
		}
	}
	cfg, err := config.Load(lopts...)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbose = o.verbose
	}
	if flags.Changed("json-log") {
		cfg.Log.JSON = o.jsonLog
	}
	if flags.Changed("unified") {
		cfg.Report.Unified = o.unified
	}
	if flags.Changed("context") {
		cfg.Report.Context = o.context
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// readInput returns the content of path, or stdin for "" and "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
