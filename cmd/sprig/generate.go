package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/sprig/grammar"
	"github.com/chazu/sprig/preset"
)

func newGenerateCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "generate <preset>",
		Short: "Print every generation of a preset's grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preset.Load(args[0])
			if err != nil {
				return err
			}
			iters := p.Iterations
			if cmd.Flags().Changed("iterations") {
				iters = iterations
			}
			cfg, err := p.Config(nil)
			if err != nil {
				return err
			}
			prod, err := grammar.Generate(iters, cfg.Axiom, cfg.Rules)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, s := range prod {
				fmt.Fprintf(out, "%d\t%s\n", i, s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "override the preset's iteration count")
	return cmd
}
