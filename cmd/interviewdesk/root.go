package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "interviewdesk",
		Short:         "Track, schedule and complete candidate interviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.PersistentFlags().StringVar(&a.lang, "lang", "", "Label language (overrides UI_LANG)")

	cmd.AddCommand(newDashboardCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newCompleteCmd(a))
	cmd.AddCommand(newUploadCmd(a))
	cmd.AddCommand(newUpcomingCmd(a))
	cmd.AddCommand(newMineCmd(a))
	cmd.AddCommand(newSessionCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	return cmd
}

func Execute() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		code := exitCode(err)
		if !alreadyShown(err) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(code)
	}
}
