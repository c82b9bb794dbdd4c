package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/unspool/unspool/internal/config"
)

func newOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "open <config|archive>",
		Short:     "Open the config file or archive directory",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"config", "archive"},
		RunE: func(_ *cobra.Command, args []string) error {
			var (
				path string
				err  error
			)
			switch args[0] {
			case "config":
				path, err = config.Path()
			case "archive":
				path, err = config.DefaultArchivePath()
			default:
				return fmt.Errorf("unknown target %q (want config or archive)", args[0])
			}
			if err != nil {
				return err
			}
			return browser.OpenFile(path)
		},
	}
}
