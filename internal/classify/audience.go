package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dcworkshops/event-scraper/internal/event"
)

var (
	categoriesPattern  = regexp.MustCompile(`(?i)Categories\s*:\s*([^\n\r]+?)\s*(?:Sponsor|Venue|Event Location|Cost|$)`)
	recommendedPattern = regexp.MustCompile(`(?i)Recommended Audience\s*:\s*([^\n\r]+?)\s*(?:Sponsor|Venue|Event Location|Cost|Categories|$)`)

	agePlusPattern = regexp.MustCompile(`(\d{1,2})\s*\+`)

	ageRangePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ages?\s*(\d{1,2})(?:\s*(?:-|–|to)\s*(\d{1,2}))?`),
		regexp.MustCompile(`(?i)(\d{1,2})\s*(?:(?:-|–)\s*(\d{1,2})\s*)?years?\s*old`),
		regexp.MustCompile(`(?i)for\s+(\d{1,2})(?:\s*(?:-|–)\s*(\d{1,2}))?\s*year\s*olds`),
	}
)

// IsCancelled reports whether the title carries a cancellation marker.
func (c *Classifier) IsCancelled(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range c.rules.CancelMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Audience classifies age appropriateness from event text.
//
// Signals in precedence order: an explicit "Categories:" label matched
// against the kid category keywords; a "Recommended Audience:" label with
// numeric age bands or a trailing "+"; age-range shapes anywhere in the
// text; and finally kid-vs-adult keyword hit counts. A tie or no signal
// stays unknown.
func (c *Classifier) Audience(text, title string) event.Audience {
	combined := strings.ToLower(title + " " + text)

	if categories := firstGroup(categoriesPattern, text); categories != "" {
		lower := strings.ToLower(categories)
		for _, keyword := range c.rules.KidCategories {
			if strings.Contains(lower, keyword) {
				return event.AudienceKids
			}
		}
	}

	if recommended := firstGroup(recommendedPattern, text); recommended != "" {
		if audience, ok := classifyAges(recommended, true); ok {
			return audience
		}
	}

	if audience, ok := classifyAges(combined, false); ok {
		return audience
	}

	kidHits := countHits(combined, c.rules.KidKeywords)
	adultHits := countHits(combined, c.rules.AdultKeywords)
	switch {
	case kidHits > adultHits:
		return event.AudienceKids
	case adultHits > kidHits:
		return event.AudienceAdults
	}
	return event.AudienceUnknown
}

// classifyAges resolves explicit age bands. Trailing "+" notation is only
// honored inside a recommended-audience label, where it is unambiguous.
func classifyAges(text string, allowPlus bool) (event.Audience, bool) {
	if allowPlus {
		if m := agePlusPattern.FindStringSubmatch(text); m != nil {
			age, _ := strconv.Atoi(m[1])
			if age <= 17 {
				return event.AudienceKids, true
			}
			return event.AudienceAdults, true
		}
	}

	for _, pattern := range ageRangePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		minAge, _ := strconv.Atoi(m[1])
		switch {
		case minAge <= 12:
			return event.AudienceKids, true
		case minAge >= 18:
			return event.AudienceAdults, true
		}
		if m[2] != "" {
			if maxAge, _ := strconv.Atoi(m[2]); maxAge <= 17 {
				return event.AudienceKids, true
			}
		}
	}
	return event.AudienceUnknown, false
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return hits
}
