// Package auth manages X.com session credentials: an interactive login
// flow that captures cookies from a visible browser, and their storage on
// disk between runs.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/unspool/unspool/internal/config"
)

// CookieStore persists X.com session cookies.
type CookieStore struct {
	path string
}

// StoredCookies is the on-disk cookie format.
type StoredCookies struct {
	Cookies    []*network.Cookie `json:"cookies"`
	CapturedAt time.Time         `json:"captured_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// NewCookieStore creates a cookie store backed by path.
func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// DefaultCookieStorePath returns the standard cookie file location.
func DefaultCookieStorePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cookies.json"), nil
}

// Save writes cookies to disk, recording the earliest expiry among the
// session-critical ones.
// TODO: encrypt cookies at rest
func (cs *CookieStore) Save(cookies []*network.Cookie) error {
	if err := os.MkdirAll(filepath.Dir(cs.path), 0700); err != nil {
		return err
	}

	var earliest time.Time
	for _, c := range cookies {
		if c.Name == "auth_token" || c.Name == "ct0" {
			exp := time.Unix(int64(c.Expires), 0)
			if earliest.IsZero() || exp.Before(earliest) {
				earliest = exp
			}
		}
	}

	data, err := json.MarshalIndent(StoredCookies{
		Cookies:    cookies,
		CapturedAt: time.Now(),
		ExpiresAt:  earliest,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cs.path, data, 0600)
}

// Load reads cookies from disk.
func (cs *CookieStore) Load() (*StoredCookies, error) {
	data, err := os.ReadFile(cs.path)
	if err != nil {
		return nil, err
	}
	var stored StoredCookies
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// IsValid reports whether stored cookies exist, have not expired, and
// include the session-critical pair.
func (cs *CookieStore) IsValid() bool {
	stored, err := cs.Load()
	if err != nil {
		return false
	}
	if time.Now().After(stored.ExpiresAt) {
		return false
	}

	hasAuthToken, hasCT0 := false, false
	for _, c := range stored.Cookies {
		switch c.Name {
		case "auth_token":
			hasAuthToken = true
		case "ct0":
			hasCT0 = true
		}
	}
	return hasAuthToken && hasCT0
}

// Clear removes stored cookies.
func (cs *CookieStore) Clear() error {
	err := os.Remove(cs.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// SiteCookies returns only the x.com cookies for injection into capture
// sessions.
func (cs *CookieStore) SiteCookies() ([]*network.Cookie, error) {
	stored, err := cs.Load()
	if err != nil {
		return nil, err
	}
	var out []*network.Cookie
	for _, c := range stored.Cookies {
		if c.Domain == ".x.com" || c.Domain == "x.com" {
			out = append(out, c)
		}
	}
	return out, nil
}
