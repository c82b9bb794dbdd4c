// Package app wires the capture pipeline together for the CLI: auth,
// browser scraping, reconstruction, rendering, and the archive.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/unspool/unspool/internal/archive"
	"github.com/unspool/unspool/internal/auth"
	"github.com/unspool/unspool/internal/config"
	"github.com/unspool/unspool/internal/format"
	"github.com/unspool/unspool/internal/scraper"
	"github.com/unspool/unspool/internal/types"
)

// App holds the application state shared by CLI commands.
type App struct {
	Config  *config.Config
	Auth    *auth.Manager
	Scraper *scraper.Scraper
	Log     *slog.Logger
}

// New assembles an App from loaded configuration.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	cookiePath, err := auth.DefaultCookieStorePath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate cookie store: %w", err)
	}

	window := time.Duration(cfg.Thread.WindowHours) * time.Hour
	return &App{
		Config:  cfg,
		Auth:    auth.NewManager(auth.NewCookieStore(cookiePath), log),
		Scraper: scraper.New(log, cfg.Capture.Headless, window),
		Log:     log,
	}, nil
}

// Login runs the interactive login flow.
func (a *App) Login(ctx context.Context) error {
	return a.Auth.Login(ctx)
}

// Logout discards stored credentials.
func (a *App) Logout() error {
	return a.Auth.Logout()
}

// CaptureThread extracts and reconstructs the thread at statusURL.
func (a *App) CaptureThread(ctx context.Context, statusURL string) (*types.ThreadData, error) {
	cookies, err := a.cookies()
	if err != nil {
		return nil, err
	}
	return a.Scraper.CaptureThread(ctx, cookies, statusURL)
}

// CaptureFeed extracts up to count posts from the home feed.
func (a *App) CaptureFeed(ctx context.Context, count int) ([]types.Record, error) {
	cookies, err := a.cookies()
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = a.Config.Capture.FeedPosts
	}
	return a.Scraper.CaptureFeed(ctx, cookies, count)
}

// RenderThread formats a thread in the named format, falling back to the
// configured default when name is empty.
func (a *App) RenderThread(td *types.ThreadData, name string) (string, error) {
	return format.RenderThread(td, a.outputFormat(name))
}

// RenderRecords formats records in the named format.
func (a *App) RenderRecords(records []types.Record, name string) (string, error) {
	return format.RenderRecords(records, a.outputFormat(name))
}

// OpenArchive opens the configured archive database.
func (a *App) OpenArchive() (*archive.Store, error) {
	path := a.Config.Archive.Path
	if path == "" {
		var err error
		path, err = config.DefaultArchivePath()
		if err != nil {
			return nil, err
		}
	}
	return archive.Open(path)
}

func (a *App) cookies() ([]*network.Cookie, error) {
	if !a.Auth.IsAuthenticated() {
		return nil, fmt.Errorf("not logged in: run `unspool login` first")
	}
	return a.Auth.Cookies()
}

func (a *App) outputFormat(name string) format.Format {
	if name == "" {
		name = a.Config.Output.Format
	}
	if name == "" {
		name = string(format.Markdown)
	}
	return format.Format(name)
}
