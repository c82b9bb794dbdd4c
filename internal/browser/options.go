// Package browser centralizes chromedp allocator configuration. Every
// session uses the same anti-automation-detection profile so X.com treats
// captures and the interactive login flow alike.
package browser

import "github.com/chromedp/chromedp"

// userAgent is a realistic desktop Chrome identity.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Options returns allocator options for a capture or login session.
func Options(headless bool) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),

		// X.com checks navigator.webdriver; this flag keeps it false.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1080),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	if headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	return opts
}
