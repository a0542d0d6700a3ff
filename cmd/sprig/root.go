package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/sprig/store"
)

// globalOptions are the persistent flags shared by every subcommand of one
// command tree.
type globalOptions struct {
	verbosity int
	logFile   string
	dbPath    string
	dbDriver  string
}

// openStore opens the run archive named by the --db and --driver flags.
func (o *globalOptions) openStore() (*store.Store, error) {
	if o.dbDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(o.dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	return store.Open(o.dbDriver, o.dbPath)
}

// newRootCmd builds a fresh command tree. Flag values live in the tree, so
// two trees never share state.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "sprig",
		Short: "Grow branching 3D structures from L-system grammars",
		Long: `sprig expands an L-system grammar and walks the result with a 3D turtle,
producing an ordered stream of geometry commands (start marker, line
segments, instance placements).

Grammars are read from preset files in TOML or YAML.

Examples:
  # Show how the grammar grows
  sprig generate examples/coral.toml

  # Draw with a fixed seed and write JSON
  sprig draw examples/coral.toml --seed 7 --format json -o coral.json

  # Draw only the last generation and archive the run
  sprig draw examples/fern.yaml --final --save
  sprig runs list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if opts.logFile != "" {
				path = &opts.logFile
			}
			commonlog.Configure(opts.verbosity, path)
		},
	}

	flags := cmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&opts.dbPath, "db", defaultDBPath(), "run archive location")
	flags.StringVar(&opts.dbDriver, "driver", store.DriverSQLite, "run archive driver: sqlite or duckdb")

	cmd.AddCommand(newGenerateCmd(), newDrawCmd(opts), newRunsCmd(opts))
	return cmd
}

// Execute runs the sprig command tree.
func Execute() error {
	return newRootCmd().Execute()
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sprig-runs.db"
	}
	return filepath.Join(dir, "sprig", "runs.db")
}
