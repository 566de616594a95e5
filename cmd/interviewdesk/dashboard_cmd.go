package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's numbers and the most recent interviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			c := a.console
			fmt.Fprintf(a.out, "Hello, %s\n\n", c.UserName())
			if err := printStats(a.out, c.Dashboard.Stats(), c.Labels()); err != nil {
				return err
			}
			fmt.Fprintln(a.out)
			return printRows(a.out, c.PresentAll(c.Dashboard.Records()))
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show interview statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			return printStats(a.out, a.console.Dashboard.Stats(), a.console.Labels())
		},
	}
}
