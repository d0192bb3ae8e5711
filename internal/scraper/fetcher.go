// Package scraper provides the rendered-page fetching session shared by
// all site adapters during one aggregation run.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"agendaveiro/internal/config"
	"agendaveiro/internal/utils/logger/sl"

	"github.com/chromedp/chromedp"
)

// Fetcher owns one headless Chrome session. Adapters hand it a URL and get
// back the fully rendered markup; they never talk to the browser directly.
type Fetcher struct {
	logger        *slog.Logger
	cfg           *config.Config
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// New starts a headless browser. Flag set mirrors what the listing sites
// tolerate: headless new mode, fixed window, automation hints disabled and
// a desktop user agent, some of the sites serve a stripped page to
// anything that looks like a bot.
func New(logger *slog.Logger, cfg *config.Config) (*Fetcher, error) {
	op := "scraper.New()"
	log := logger.With(
		slog.String("op", op),
	)

	log.Info("initializing headless browser")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.UserAgent(cfg.ScraperConfig.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Force the browser process up now so a broken environment fails the
	// run before any adapter starts.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%s: start browser: %w", op, err)
	}

	log.Info("headless browser ready")

	return &Fetcher{
		logger:        logger,
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// FetchRendered navigates to url in a fresh tab, waits the configured
// settle delay for client-side scripting to populate the listing, and
// returns the rendered markup. A navigation that exceeds the page timeout
// is logged and the tab's partial content is extracted anyway; the adapter
// decides what it can parse out of it.
func (f *Fetcher) FetchRendered(ctx context.Context, url string) (string, error) {
	op := "scraper.FetchRendered()"
	log := f.logger.With(
		slog.String("op", op),
		slog.String("url", url),
	)

	tabCtx, tabCancel := chromedp.NewContext(f.browserCtx)
	defer tabCancel()

	navCtx, navCancel := context.WithTimeout(tabCtx, f.cfg.ScraperConfig.PageTimeout)
	defer navCancel()

	log.Debug("navigating")

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: navigate %s: %w", op, url, err)
		}
		log.Warn("page load timed out, proceeding with partial content")
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	extractCtx, extractCancel := context.WithTimeout(tabCtx, f.cfg.ScraperConfig.PageTimeout)
	defer extractCancel()

	var html string
	err := chromedp.Run(extractCtx,
		chromedp.Sleep(f.cfg.ScraperConfig.SettleWait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("%s: extract %s: %w", op, url, err)
	}

	log.Debug("page fetched", slog.Int("bytes", len(html)))

	return html, nil
}

// Shutdown tears down the browser session.
func (f *Fetcher) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("force exit fetcher: %w", ctx.Err())
	default:
		if err := chromedp.Cancel(f.browserCtx); err != nil {
			f.logger.Warn("browser did not exit cleanly", sl.Err(err))
		}
		f.browserCancel()
		f.allocCancel()
		f.logger.Info("headless browser closed")
		return nil
	}
}
