package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/sprig/command"
	"github.com/chazu/sprig/lsystem"
	"github.com/chazu/sprig/preset"
	"github.com/chazu/sprig/store"
	"github.com/chazu/sprig/turtle"
)

type drawOptions struct {
	format string
	output string
	seed   uint64
	final  bool
	stats  bool
	save   bool
}

func newDrawCmd(global *globalOptions) *cobra.Command {
	opts := &drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw <preset>",
		Short: "Run a drawing pass and write the command stream",
		Long: `Run a drawing pass and write the command stream.

If the pass fails part way (an unbalanced ']' for example), the commands
emitted before the failure are still written and the error is reported
afterwards. Failed runs are never archived.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := command.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			p, err := preset.Load(args[0])
			if err != nil {
				return err
			}
			cfg, err := p.Config(nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = lsystem.Seed(opts.seed)
			}
			if opts.final {
				cfg.Replay = turtle.ReplayFinal
			}

			l, err := lsystem.New(cfg)
			if err != nil {
				return err
			}
			cmds, drawErr := l.Record()

			if err := writeStream(cmd.OutOrStdout(), opts.output, format, cmds); err != nil {
				return err
			}
			if opts.stats {
				printStats(cmd.ErrOrStderr(), command.Summarize(cmds))
			}
			if drawErr != nil {
				return drawErr
			}
			if opts.save {
				id, err := saveRun(cmd.Context(), global, p, l, cmds)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved run %s\n", id)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "text", "output format: text, json, cbor, msgpack")
	flags.StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (overrides the preset)")
	flags.BoolVar(&opts.final, "final", false, "interpret only the last generation")
	flags.BoolVar(&opts.stats, "stats", false, "print a summary to stderr")
	flags.BoolVar(&opts.save, "save", false, "archive the run")
	return cmd
}

func writeStream(stdout io.Writer, path string, format command.Format, cmds []command.Command) error {
	if path == "" {
		return command.Encode(stdout, format, cmds)
	}
	var buf bytes.Buffer
	if err := command.Encode(&buf, format, cmds); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func printStats(w io.Writer, s command.Stats) {
	fmt.Fprintf(w, "markers:   %d\n", s.Markers)
	fmt.Fprintf(w, "lines:     %d\n", s.Lines)
	fmt.Fprintf(w, "instances: %d\n", s.Instances)
	fmt.Fprintf(w, "length:    %g\n", s.Length)
	fmt.Fprintf(w, "bounds:    %v - %v\n", s.Min, s.Max)
}

func saveRun(ctx context.Context, global *globalOptions, p *preset.Preset, l *lsystem.LSystem, cmds []command.Command) (string, error) {
	stream, err := command.MarshalCBOR(cmds)
	if err != nil {
		return "", err
	}
	hash, err := p.Hash()
	if err != nil {
		return "", err
	}
	seed, hasSeed := l.Source().Seed()

	s, err := global.openStore()
	if err != nil {
		return "", err
	}
	defer s.Close()

	run := &store.Run{
		Preset:     p.Name,
		PresetHash: hash,
		Seed:       seed,
		HasSeed:    hasSeed,
		Replay:     l.Config().Replay.String(),
		Commands:   len(cmds),
		Stream:     stream,
	}
	if err := s.Save(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}
