package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFeedCommand() *cobra.Command {
	var (
		count int
		save  bool
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Extract posts from the home feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			records, err := a.CaptureFeed(cmd.Context(), count)
			if err != nil {
				return err
			}
			a.Log.Info("feed captured", "posts", len(records))

			out, err := a.RenderRecords(records, flagFormat)
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
				if _, err := store.SaveRecords(records, tags, ""); err != nil {
					return fmt.Errorf("failed to archive posts: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of posts to collect (default from config)")
	cmd.Flags().BoolVar(&save, "save", false, "archive the captured posts")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag(s) to attach when archiving")
	return cmd
}
