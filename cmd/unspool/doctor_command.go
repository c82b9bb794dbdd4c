package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"

	"github.com/unspool/unspool/internal/browser"
)

// newDoctorCommand opens bot.sannysoft.com with the same stealth options
// the capture sessions use, so the browser fingerprint can be audited
// when X.com starts blocking captures.
func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Audit the browser fingerprint used for captures",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := newLogger()
			log.Info("opening bot.sannysoft.com with stealth browser options")
			log.Info("close the browser window or press Ctrl+C when done inspecting")

			opts := browser.Options(false) // non-headless so you can see it

			allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
			defer cancelAlloc()

			ctx, cancel := chromedp.NewContext(allocCtx)
			defer cancel()

			err := chromedp.Run(ctx,
				chromedp.Navigate("https://bot.sannysoft.com"),
				chromedp.WaitVisible("body", chromedp.ByQuery),
			)
			if err != nil {
				return fmt.Errorf("failed to open fingerprint audit page: %w", err)
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
			case <-ctx.Done():
			}
			return nil
		},
	}
}
