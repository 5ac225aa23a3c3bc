// Package source defines the configured feed endpoints. A source is data
// plus a format description: the walker runs one pipeline over every
// variant rather than source-specific code paths.
package source

import "github.com/dcworkshops/event-scraper/internal/event"

// Variant is one concrete feed request: a location/age-band combination
// for the library, or the single filtered museum feed.
type Variant struct {
	Label    string
	URL      string
	Location string         // fixed location when the feed itself is scoped to one
	Audience event.Audience // fixed audience when the feed filter implies it
}

// Source describes one institution's feeds and how their entries are
// normalized.
type Source struct {
	Name        string
	Business    string
	SubmittedBy string
	Variants    []Variant

	// UseContent prefers the content:encoded payload over <description>.
	UseContent bool
	// TimeRanges extracts a start-end window from the description's first
	// line instead of a single clock time from the full text.
	TimeRanges bool
	// PriceLookups enables the tiered price search, including detail-page
	// fetches. Sources without it carry DefaultPrice.
	PriceLookups bool
	// CheckCancelled drops entries whose title carries a cancel marker.
	CheckCancelled bool
	// DefaultPrice is the sentinel for sources with a known price policy.
	DefaultPrice string
	// ExtractPlace runs the venue/location classifier; otherwise the
	// variant's fixed location is used as-is.
	ExtractPlace bool
}

// All returns every configured source in scrape order.
func All() []*Source {
	return []*Source{Library(), Museum()}
}

// ByName returns the named source, or nil.
func ByName(name string) *Source {
	switch name {
	case "library":
		return Library()
	case "museum":
		return Museum()
	}
	return nil
}
