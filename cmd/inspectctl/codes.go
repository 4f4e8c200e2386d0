package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/inspectkit/apierror"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "Print the error code taxonomy and status messages",
		Args:  cobra.NoArgs,
		// Needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "CODE\tFAMILY\tLOGOUT")
			for _, c := range apierror.Codes() {
				family := c.Family()
				if family == "" {
					family = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\n", c, family, c.IsTokenInvalidation())
			}
			fmt.Fprintln(tw)

			msgs := apierror.StatusMessages()
			statuses := make([]int, 0, len(msgs))
			for s := range msgs {
				statuses = append(statuses, s)
			}
			slices.Sort(statuses)

			fmt.Fprintln(tw, "STATUS\tDEFAULT CODE\tMESSAGE")
			for _, s := range statuses {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s, apierror.CodeForStatus(s), msgs[s])
			}
			fmt.Fprintf(tw, "other\t%s\t%s\n", apierror.CodeUnknownError, apierror.MessageUnknown)
			return tw.Flush()
		},
	}
}
