package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFacesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "faces",
		Short: "List every face with a sample in its effective style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			hl, err := cfg.Highlighter()
			if err != nil {
				return err
			}
			r, err := newRenderer(cmd, cfg, hl)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range hl.Faces().Names() {
				fmt.Fprintln(out, r.Swatch(name))
			}
			return nil
		},
	}
}
