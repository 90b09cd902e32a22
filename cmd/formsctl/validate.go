package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check catalog files for invalid or duplicate forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{opts.catalog}
			}
			var failed int
			for _, path := range args {
				_, forms, err := loadEngine(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s: %d forms\n", path, len(forms))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d catalog files invalid", failed, len(args))
			}
			return nil
		},
	}
}
