package competitor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
	"github.com/namiksejdovic1-tech/price-master-bih/utils"
)

// Session is one isolated browsing session. Fetch renders a source's
// search results in its own exclusive tab, so concurrent calls never
// share a page.
type Session interface {
	Fetch(ctx context.Context, src models.SourceConfig, productName string) (string, error)
	Close()
}

// SessionFactory opens a fresh Session for exactly one scan.
type SessionFactory func(ctx context.Context) (Session, error)

// ChromeOptions configure the headless browser session.
type ChromeOptions struct {
	Headless bool
	// NavTimeout bounds navigation up to minimal DOM readiness.
	NavTimeout time.Duration
	// ReadyTimeout bounds the secondary wait for baseline content.
	ReadyTimeout time.Duration
	Jitter       *Jitter
}

type chromeSession struct {
	opts          ChromeOptions
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromeSessionFactory launches one stealth-configured headless
// Chrome per scan. The factory returns an error only when the browser
// itself cannot start; everything after that is the pipelines'
// problem.
func NewChromeSessionFactory(opts ChromeOptions) SessionFactory {
	return func(ctx context.Context) (Session, error) {
		allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, utils.StealthOpts(opts.Headless)...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)

		// Run an empty task so a launch failure surfaces here instead
		// of in the middle of a pipeline.
		if err := chromedp.Run(browserCtx); err != nil {
			browserCancel()
			allocCancel()
			return nil, fmt.Errorf("browser launch: %w", err)
		}

		return &chromeSession{
			opts:          opts,
			allocCancel:   allocCancel,
			browserCtx:    browserCtx,
			browserCancel: browserCancel,
		}, nil
	}
}

func (s *chromeSession) Close() {
	s.browserCancel()
	s.allocCancel()
}

// SearchURL substitutes the URL-encoded product name into the source's
// search template.
func SearchURL(src models.SourceConfig, productName string) string {
	return strings.ReplaceAll(src.SearchURL, "{query}", url.QueryEscape(productName))
}

// Fetch navigates a fresh tab to the source's search results and
// returns the rendered HTML. Pacing, scrolling and both waits happen
// here; any timeout or navigation error is returned for the caller to
// convert into a fallback.
func (s *chromeSession) Fetch(ctx context.Context, src models.SourceConfig, productName string) (string, error) {
	target := SearchURL(src, productName)

	if err := s.opts.Jitter.Wait(ctx); err != nil {
		return "", err
	}

	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	defer tabCancel()

	navCtx, navCancel := context.WithTimeout(tabCtx, s.opts.NavTimeout)
	defer navCancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(target),
		utils.HideWebDriver(),
		chromedp.Evaluate(scrollScript, nil),
	)
	if err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}

	// The page may still be streaming content after navigation
	// settles; give it a short second budget.
	readyCtx, readyCancel := context.WithTimeout(tabCtx, s.opts.ReadyTimeout)
	defer readyCancel()

	var html string
	err = chromedp.Run(readyCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("content wait failed: %w", err)
	}
	return html, nil
}
