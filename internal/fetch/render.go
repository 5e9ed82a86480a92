package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Renderer produces settled markup for sites that assemble their pages
// in the browser.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
	Close() error
}

// BrowserRenderer drives headless Chromium through Playwright.
type BrowserRenderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout float64
}

// NewBrowserRenderer launches the browser. Callers own Close.
func NewBrowserRenderer(timeout time.Duration) (*BrowserRenderer, error) {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &BrowserRenderer{
		pw:      pw,
		browser: browser,
		timeout: float64(timeout.Milliseconds()),
	}, nil
}

// Render loads url, waits for the network to settle and returns the
// resulting markup.
func (r *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := r.browser.NewPage()
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(r.timeout),
	}); err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	markup, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}

	return markup, nil
}

// Close shuts down the browser and the Playwright driver.
func (r *BrowserRenderer) Close() error {
	if err := r.browser.Close(); err != nil {
		return err
	}
	return r.pw.Stop()
}
