package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/unspool/unspool/internal/browser"
)

// loginTimeout is how long the user gets to complete the interactive
// login before we give up.
const loginTimeout = 5 * time.Minute

// Manager owns the login/logout lifecycle.
type Manager struct {
	cookieStore *CookieStore
	log         *slog.Logger
}

// NewManager creates an auth manager over the given cookie store.
func NewManager(cookieStore *CookieStore, log *slog.Logger) *Manager {
	return &Manager{cookieStore: cookieStore, log: log}
}

// IsAuthenticated reports whether valid credentials are stored.
func (m *Manager) IsAuthenticated() bool {
	return m.cookieStore.IsValid()
}

// Login opens a visible browser on the X.com login page, waits for the
// user to finish signing in, then captures and stores the session cookies.
func (m *Manager) Login(ctx context.Context) error {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browser.Options(false)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("https://x.com/login"),
	); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	if err := m.waitForLogin(browserCtx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cookies, err := extractCookies(browserCtx)
	if err != nil {
		return fmt.Errorf("failed to read session cookies: %w", err)
	}
	if err := m.cookieStore.Save(cookies); err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}
	m.log.Info("login complete, cookies stored")
	return nil
}

// waitForLogin polls until the browser lands on the home feed with an
// auth_token cookie present.
func (m *Manager) waitForLogin(ctx context.Context) error {
	timeout := time.After(loginTimeout)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return fmt.Errorf("no login within %s", loginTimeout)
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var loc string
			if err := chromedp.Run(ctx, chromedp.Location(&loc)); err != nil {
				continue
			}
			if loc != "https://x.com/home" && loc != "https://twitter.com/home" {
				continue
			}
			cookies, err := extractCookies(ctx)
			if err != nil {
				continue
			}
			for _, c := range cookies {
				if c.Name == "auth_token" && c.Value != "" {
					return nil
				}
			}
		}
	}
}

func extractCookies(ctx context.Context) ([]*network.Cookie, error) {
	var cookies []*network.Cookie
	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)
	return cookies, err
}

// Logout discards stored credentials.
func (m *Manager) Logout() error {
	return m.cookieStore.Clear()
}

// Cookies returns the stored x.com cookies for capture sessions.
func (m *Manager) Cookies() ([]*network.Cookie, error) {
	return m.cookieStore.SiteCookies()
}
