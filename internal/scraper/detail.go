package scraper

import (
	"bytes"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dcworkshops/event-scraper/internal/classify"
	"github.com/dcworkshops/event-scraper/internal/event"
	"github.com/dcworkshops/event-scraper/internal/logger"
)

// resolvePrice runs the tiered price search for one event: the explicit
// cost grid in the raw markup, an explicit free indicator, the reseller's
// pricing page, then the event's own page. Third-party ticketing domains
// are excluded from the last fallback. The chain always resolves; "Check
// website" is the indeterminate sentinel.
func (w *Walker) resolvePrice(rawDescription, cleanDescription, link string) *string {
	if price, ok := w.classifier.CostLabel(rawDescription); ok {
		return event.PriceOf(price)
	}
	if w.classifier.IsFreeText(cleanDescription) {
		return event.PriceOf(classify.SentinelFree)
	}

	if pricingURL := w.classifier.PriceLink(rawDescription); pricingURL != "" {
		if price, ok := w.fetchPagePrice(pricingURL); ok {
			return event.PriceOf(price)
		}
		return event.PriceOf(classify.SentinelCheckSite)
	}

	if link != "" && !w.classifier.ExcludedDomain(link) {
		if price, ok := w.fetchPagePrice(link); ok {
			return event.PriceOf(price)
		}
	}
	return event.PriceOf(classify.SentinelCheckSite)
}

// fetchPagePrice fetches a detail page and searches it for a price. The
// politeness pause runs whether or not the fetch succeeds.
func (w *Walker) fetchPagePrice(url string) (string, bool) {
	defer func() {
		if w.delay > 0 {
			time.Sleep(w.delay)
		}
	}()

	body, err := w.get(w.detailClient, url, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		logger.Warn("Detail page fetch failed", logger.Fields{"url": url})
		logger.IncrCounter("scraper.detail.failed")
		return "", false
	}
	logger.IncrCounter("scraper.detail.fetched")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Warn("Detail page parse failed", logger.Fields{"url": url})
		return "", false
	}
	return w.classifier.SearchDocument(doc)
}
