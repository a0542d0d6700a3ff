package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/sprig/command"
)

func newRunsCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List, show and delete archived runs",
	}
	cmd.AddCommand(newRunsListCmd(global), newRunsShowCmd(global), newRunsDeleteCmd(global))
	return cmd
}

func newRunsListCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRESET\tSEED\tREPLAY\tCOMMANDS\tCREATED")
			for _, r := range runs {
				seed := "-"
				if r.HasSeed {
					seed = fmt.Sprint(r.Seed)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Preset, seed, r.Replay, r.Commands, r.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func newRunsShowCmd(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Write an archived run's command stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := command.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := global.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmds, err := run.Decode()
			if err != nil {
				return err
			}
			return command.Encode(cmd.OutOrStdout(), f, cmds)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, cbor, msgpack")
	return cmd
}

func newRunsDeleteCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(cmd.Context(), args[0])
		},
	}
}
