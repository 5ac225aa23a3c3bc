package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dcworkshops/event-scraper/internal/classify"
	"github.com/dcworkshops/event-scraper/internal/event"
	"github.com/dcworkshops/event-scraper/internal/feed"
	"github.com/dcworkshops/event-scraper/internal/logger"
	"github.com/dcworkshops/event-scraper/internal/source"
)

// minFeedItems is the no-content threshold: a variant whose feed holds a
// single item is a template placeholder, not a listing.
const minFeedItems = 2

// Options tunes the walker. Zero values fall back to sane defaults.
type Options struct {
	FeedTimeout   time.Duration
	DetailTimeout time.Duration
	Delay         time.Duration // pause after each detail-page fetch
	UserAgent     string
	Now           func() time.Time
}

// Walker fetches feed variants and accumulates normalized events.
type Walker struct {
	feedClient   *http.Client
	detailClient *http.Client
	classifier   *classify.Classifier
	delay        time.Duration
	userAgent    string
	now          func() time.Time
}

// New creates a Walker using the given rule table.
func New(rules classify.Rules, opts Options) *Walker {
	if opts.FeedTimeout <= 0 {
		opts.FeedTimeout = 30 * time.Second
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = 20 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Walker{
		feedClient:   &http.Client{Timeout: opts.FeedTimeout},
		detailClient: &http.Client{Timeout: opts.DetailTimeout},
		classifier:   classify.New(rules),
		delay:        opts.Delay,
		userAgent:    opts.UserAgent,
		now:          opts.Now,
	}
}

// Run walks every variant of every source in order and returns the
// normalized, title-deduplicated events of this run. Fetch and parse
// failures cost only the affected variant.
func (w *Walker) Run(sources []*source.Source) []*event.Event {
	now := w.now()
	scrapedAt := now.Format(time.RFC3339)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	titles := make(map[string]bool)
	events := make([]*event.Event, 0)

	for _, src := range sources {
		for _, variant := range src.Variants {
			items, tier, err := w.fetchFeed(variant.URL)
			if err != nil {
				logger.Error("Feed variant failed", logger.Fields{
					"source":  src.Name,
					"variant": variant.Label,
				}, err)
				logger.IncrCounter("scraper.feeds.failed")
				continue
			}

			if len(items) < minFeedItems {
				logger.Info("Feed variant has no content", logger.Fields{
					"source":  src.Name,
					"variant": variant.Label,
					"items":   len(items),
				})
				logger.IncrCounter("scraper.feeds.empty")
				continue
			}

			logger.Debug("Feed variant parsed", logger.Fields{
				"source":  src.Name,
				"variant": variant.Label,
				"items":   len(items),
				"tier":    tier,
			})

			for _, item := range items {
				evt, reason := w.normalize(src, variant, item, scrapedAt, today, titles)
				if evt == nil {
					logger.IncrCounter("scraper.items.skipped." + reason)
					logger.Debug("Skipping item", logger.Fields{
						"title":  strings.TrimSpace(item.Title),
						"reason": reason,
					})
					continue
				}
				titles[evt.Title] = true
				events = append(events, evt)
				logger.IncrCounter("scraper.items.kept")
			}
		}
	}

	return events
}

// normalize turns one raw feed item into an event record, or returns a
// skip reason.
func (w *Walker) normalize(src *source.Source, variant source.Variant, item feed.Item, scrapedAt string, today time.Time, titles map[string]bool) (*event.Event, string) {
	title := strings.TrimSpace(item.Title)
	if len(title) < 3 {
		return nil, "short_title"
	}
	if titles[title] {
		return nil, "duplicate"
	}
	if src.CheckCancelled && w.classifier.IsCancelled(title) {
		return nil, "cancelled"
	}

	description := item.Description
	if src.UseContent && item.Content != "" {
		description = item.Content
	}

	date, ok := itemDate(item, title, description)
	if !ok {
		return nil, "no_date"
	}
	if date.Before(today) {
		return nil, "past"
	}

	var cleanDescription string
	if src.TimeRanges {
		cleanDescription = feed.CleanDescription(description)
	} else {
		cleanDescription = feed.Text(description)
	}
	if cleanDescription == "" {
		cleanDescription = title
	}
	fullText := title + " " + cleanDescription

	evt := &event.Event{
		URL:         variant.URL,
		ScrapedAt:   scrapedAt,
		Title:       title,
		Description: cleanDescription,
		Date:        date.Format(event.DateLayout),
		SubmittedBy: src.SubmittedBy,
		Business:    src.Business,
	}
	if link := strings.TrimSpace(item.Link); link != "" {
		evt.URL = link
	}

	if src.TimeRanges {
		if start, end, ok := event.ExtractTimeRange(feed.FirstLine(description)); ok {
			evt.Time = &event.TimeRange{Start: start, End: end}
		}
	} else if start, ok := event.ExtractTime(fullText); ok {
		evt.Time = &event.TimeRange{Start: start}
	}

	if src.ExtractPlace {
		place := w.classifier.Place(cleanDescription, title)
		evt.Venue = place.Venue
		evt.Location = place.Location
	} else {
		evt.Location = variant.Location
	}

	if src.PriceLookups {
		evt.Price = w.resolvePrice(description, cleanDescription, evt.URL)
	} else if src.DefaultPrice != "" {
		evt.Price = event.PriceOf(src.DefaultPrice)
	}

	if variant.Audience != event.AudienceUnknown {
		evt.KidFriendly = variant.Audience
	} else {
		evt.KidFriendly = w.classifier.Audience(fullText, title)
	}

	return evt, ""
}

// itemDate resolves the event date: the category element first (the museum
// feed embeds YYYY/MM/DD there), then the extraction tiers over the
// combined text.
func itemDate(item feed.Item, title, description string) (time.Time, bool) {
	for _, category := range item.Categories {
		if date, ok := event.DateFromCategory(category); ok {
			return date, true
		}
	}
	return event.ExtractDate(title + " " + description)
}

// fetchFeed issues one feed request and runs the tiered parser.
func (w *Walker) fetchFeed(url string) ([]feed.Item, string, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("scraper.fetch", time.Since(start))
	}()

	body, err := w.get(w.feedClient, url, "application/rss+xml, application/xml, text/xml, */*")
	if err != nil {
		return nil, "", err
	}
	return feed.Parse(body)
}

// get issues one GET with the fixed browser-like headers. Single attempt;
// callers treat any failure as "no data from this source".
func (w *Walker) get(client *http.Client, url, accept string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
