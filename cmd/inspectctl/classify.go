package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/inspectkit/apierror"
)

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a recorded failure fixture",
		Long: `Classify reads a failure fixture (kind "response", "no_response" or
"exception") and prints the classification with its retry, logout,
user message and field error decisions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				fh, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open fixture: %w", err)
				}
				defer fh.Close()
				in = fh
			}

			f, err := decodeFixture(in)
			if err != nil {
				return err
			}
			p := apierror.Classify(f.failure())
			opts.log.Failure(fixtureOp, p)
			return writeJSON(cmd.OutOrStdout(), newReport(p))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `Fixture file, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
