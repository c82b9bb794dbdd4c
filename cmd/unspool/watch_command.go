package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unspool/unspool/internal/scheduler"
	"github.com/unspool/unspool/internal/types"
)

func newWatchCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the home feed, reporting new thread candidates as they render",
		Long: `Watch keeps a browser open on the home feed and sweeps it for newly
rendered posts. Posts that look like part of a thread are reported (and
optionally archived). With watch.schedule set in the config, a cron job
additionally runs full feed captures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !a.Auth.IsAuthenticated() {
				return fmt.Errorf("not logged in: run `unspool login` first")
			}
			cookies, err := a.Auth.Cookies()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			onBatch := func(records []types.Record) {
				for _, rec := range records {
					if !rec.IsThreadCandidate {
						continue
					}
					a.Log.Info("thread candidate rendered",
						"author", rec.Author.Handle, "url", rec.SourceURL)
					fmt.Printf("%s  @%s: %s\n", rec.SourceURL, rec.Author.Handle, truncate(rec.Content, 80))
				}
				if save && len(records) > 0 {
					store, err := a.OpenArchive()
					if err != nil {
						a.Log.Warn("could not open archive", "error", err)
						return
					}
					defer store.Close()
					if _, err := store.SaveRecords(records, []string{"watch"}, ""); err != nil {
						a.Log.Warn("could not archive watched posts", "error", err)
					}
				}
			}

			interval := time.Duration(a.Config.Watch.PollSeconds) * time.Second
			if interval <= 0 {
				interval = 30 * time.Second
			}
			sub, err := a.Scraper.WatchFeed(ctx, cookies, interval, onBatch)
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()

			// Optional scheduled full captures alongside the live watch.
			if sched := a.Config.Watch.Schedule; sched != "" {
				sc, err := scheduler.New(a.Config.Watch.Timezone, a.Log)
				if err != nil {
					return err
				}
				err = sc.AddJob("feed-capture", sched, func(jobCtx context.Context) error {
					records, err := a.CaptureFeed(jobCtx, 0)
					if err != nil {
						return err
					}
					candidates := 0
					for _, rec := range records {
						if rec.IsThreadCandidate {
							candidates++
						}
					}
					a.Log.Info("scheduled capture finished",
						"posts", len(records), "thread_candidates", candidates)
					return nil
				})
				if err != nil {
					return err
				}
				sc.Start()
				defer sc.Stop()
			}

			a.Log.Info("watching feed", "interval", interval)
			select {
			case <-ctx.Done():
			case <-sub.Done():
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "archive every newly rendered post")
	return cmd
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
