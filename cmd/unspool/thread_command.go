package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newThreadCommand() *cobra.Command {
	var (
		save     bool
		tags     []string
		category string
	)

	cmd := &cobra.Command{
		Use:   "thread <post-url>",
		Short: "Extract a post and reconstruct the thread containing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			td, err := a.CaptureThread(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.Log.Info("thread captured",
				"group", td.GroupID, "posts", len(td.Records), "complete", td.IsComplete)

			out, err := a.RenderThread(td, flagFormat)
			if err != nil {
				return err
			}
			fmt.Println(out)

			if save {
				store, err := a.OpenArchive()
				if err != nil {
					return err
				}
				defer store.Close()
				captureID, err := store.SaveThread(td, tags, category)
				if err != nil {
					return fmt.Errorf("failed to archive thread: %w", err)
				}
				a.Log.Info("thread archived", "capture", captureID, "tags", strings.Join(tags, ","))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "archive the thread")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag(s) to attach when archiving")
	cmd.Flags().StringVar(&category, "category", "", "category to attach when archiving")
	return cmd
}
