package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Labeled fields stop at the next known label or end of text. RE2 has
	// no lookahead, so the terminator is consumed; only group 1 is used.
	sponsorPattern  = regexp.MustCompile(`(?i)Sponsor\s*:\s*([^\n\r]+?)\s*(?:Event Location|Venue|Cost|Categories|$)`)
	venuePattern    = regexp.MustCompile(`(?i)Venue\s*:\s*([^\n\r]+?)\s*(?:Event Location|Cost|Categories|$)`)
	eventLocPattern = regexp.MustCompile(`(?i)Event Location\s*:\s*([^\n\r]+?)\s*(?:Venue|Cost|Categories|$)`)

	generalLocationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(washington\s*dc|washington|dc)\b`),
		regexp.MustCompile(`(?i)\b(\d+\s+\w+\s+(?:street|st|avenue|ave|road|rd|drive|dr|place|pl|way|blvd|boulevard))\b`),
		regexp.MustCompile(`(?i)location:?\s*([^\n,.]+)`),
		regexp.MustCompile(`(?i)address:?\s*([^\n,.]+)`),
		regexp.MustCompile(`(?i)at\s+the\s+([^\n,.]+(?:museum|gallery|center|building))`),
		regexp.MustCompile(`(?i)held\s+at\s+([^\n,.]+)`),
		regexp.MustCompile(`(?i)venue:?\s*([^\n,.]+)`),
	}

	titleCaser = cases.Title(language.English)
)

// Place is the resolved venue/location pair for one event.
type Place struct {
	Venue    string
	Location string
}

// IsVirtual reports whether any virtual-event indicator appears in the text.
func (c *Classifier) IsVirtual(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range c.rules.VirtualIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// Place resolves venue and location from flattened description text.
//
// A virtual indicator anywhere short-circuits everything and assigns the
// Virtual sentinel to both fields. Otherwise the labeled fields take
// precedence: Sponsor (unless it names the ticketing reseller itself),
// then Venue plus Event Location combined, then either alone. When no
// label resolves, known venue names and general location patterns fill in
// the location field only.
func (c *Classifier) Place(text, title string) Place {
	combined := title + " " + text
	if c.IsVirtual(combined) {
		return Place{Venue: SentinelVirtual, Location: SentinelVirtual}
	}

	sponsor := firstGroup(sponsorPattern, text)
	venue := firstGroup(venuePattern, text)
	location := firstGroup(eventLocPattern, text)

	place := Place{Venue: venue}
	switch {
	case sponsor != "" && !strings.Contains(sponsor, c.rules.ResellerName):
		place.Location = sponsor
	case venue != "" && location != "":
		place.Location = venue + ", " + location
	case venue != "":
		place.Location = venue
	case location != "":
		place.Location = location
	default:
		place.Location = c.fallbackLocation(combined)
	}
	return place
}

// fallbackLocation scans unlabeled text for a known venue name or a
// general location shape.
func (c *Classifier) fallbackLocation(text string) string {
	lower := strings.ToLower(text)

	for _, name := range c.rules.VenueNames {
		if strings.Contains(lower, name) {
			return titleCaser.String(name)
		}
	}

	for _, pattern := range generalLocationPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			return strings.Join(strings.Fields(m[1]), " ")
		}
	}
	return ""
}

func firstGroup(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
