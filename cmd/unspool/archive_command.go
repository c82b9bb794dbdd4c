package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect archived captures",
	}
	cmd.AddCommand(newArchiveListCommand(), newArchiveShowCommand())
	return cmd
}

func newArchiveListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived threads",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			store, err := a.OpenArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			threads, err := store.ListThreads(limit)
			if err != nil {
				return err
			}
			if len(threads) == 0 {
				fmt.Println("No archived threads.")
				return nil
			}
			for _, t := range threads {
				status := "complete"
				if !t.IsComplete {
					status = "incomplete"
				}
				fmt.Printf("%-30s @%-16s %2d post(s)  %s\n", t.GroupID, t.AuthorHandle, t.DeclaredCount, status)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum threads to list")
	return cmd
}

func newArchiveShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <group-id>",
		Short: "Render one archived thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			store, err := a.OpenArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ThreadRecords(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no archived thread %q", args[0])
			}
			out, err := a.RenderRecords(records, flagFormat)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}
