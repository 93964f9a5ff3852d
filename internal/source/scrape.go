package source

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"resty.dev/v3"
)

// Selectors for the shares-outstanding value on the product page. These are
// coupled to the publisher's markup and will break if it changes; the scraper
// reports which step failed to make that diagnosable.
const (
	sharesContainerSelector = "div.col-sharesOutstanding"
	sharesValueSelector     = "div.data"
)

// PageScraper extracts shares outstanding from the fund's product page.
// In the scrape run mode this figure has no other origin, so any failure
// here is fatal to the run.
type PageScraper struct {
	pageURL string
	client  *resty.Client
}

// NewPageScraper creates a product page scraper.
func NewPageScraper(pageURL, userAgent string, timeout time.Duration) *PageScraper {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)

	return &PageScraper{
		pageURL: pageURL,
		client:  client,
	}
}

// SharesOutstanding fetches the product page and extracts the shares
// outstanding figure. The value text must be digits-only once thousands
// separators are removed.
func (p *PageScraper) SharesOutstanding(ctx context.Context) (float64, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		Get(p.pageURL)

	if err != nil {
		return 0, fmt.Errorf("fetch product page: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("product page returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Bytes()))
	if err != nil {
		return 0, fmt.Errorf("parse product page: %w", err)
	}

	container := doc.Find(sharesContainerSelector).First()
	if container.Length() == 0 {
		return 0, fmt.Errorf("shares outstanding container %q not found; page structure may have changed", sharesContainerSelector)
	}

	value := container.Find(sharesValueSelector).First()
	if value.Length() == 0 {
		return 0, fmt.Errorf("found %q but no %q element inside it", sharesContainerSelector, sharesValueSelector)
	}

	text := strings.ReplaceAll(strings.TrimSpace(value.Text()), ",", "")
	if !isDigits(text) {
		return 0, fmt.Errorf("shares outstanding text is not purely numeric: %q", text)
	}

	shares, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse shares outstanding %q: %w", text, err)
	}
	return shares, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
