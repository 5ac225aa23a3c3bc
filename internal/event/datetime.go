package event

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)

	// Candidate date shapes, tried in order. First shape with a parseable
	// candidate wins; there is no scoring across substrings.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`[A-Za-z]+\s+\d{1,2},?\s+\d{4}`),   // Month D, YYYY
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),     // M/D/Y
		regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{2,4}\b`),     // M-D-Y
		regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),       // Y-M-D
		regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2,4}\b`),   // D.M.Y
	}

	dateLayouts = []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"January 2 2006",
		"Jan 2 2006",
		"1/2/2006",
		"1/2/06",
		"1-2-2006",
		"1-2-06",
		"2006-1-2",
		"2.1.2006",
		"2.1.06",
	}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:am|pm))`),
		regexp.MustCompile(`(?i)(\d{1,2}\s*(?:am|pm))`),
		regexp.MustCompile(`(\d{1,2}:\d{2})`),
	}

	clockLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM"}

	// "10 am – 3 pm", "1 – 2:15 pm", "10:30 am - 11:45 am"
	rangePattern = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?)\s*(am|pm)?\s*[–-]\s*(\d{1,2}(?::\d{2})?)\s*(am|pm)`)

	categoryDatePattern = regexp.MustCompile(`(\d{4})/(\d{2})/(\d{2})`)
)

// ClockLayout is the time-of-day format used in output records.
const ClockLayout = "15:04:05"

// Flatten strips markup tags and collapses runs of whitespace. It is a
// pattern-level cleanup for the extractors, not a full HTML-to-text pass.
func Flatten(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// ExtractDate finds the first recognizable calendar date in free text.
// Candidates are matched shape by shape and parsed against a fixed layout
// list, with dateparse as the last format tier for candidates the fixed
// layouts reject. Two-digit years that land before 1970 are rebased into
// the 2000s. ok is false when no substring resolves to a date, which is
// distinct from a record explicitly carrying no date.
func ExtractDate(text string) (time.Time, bool) {
	clean := Flatten(text)
	if clean == "" {
		return time.Time{}, false
	}

	for _, pattern := range datePatterns {
		for _, candidate := range pattern.FindAllString(clean, -1) {
			candidate = strings.TrimSpace(candidate)

			for _, layout := range dateLayouts {
				t, err := time.Parse(layout, candidate)
				if err != nil {
					continue
				}
				return rebaseYear(t), true
			}

			if t, err := dateparse.ParseAny(candidate); err == nil {
				return rebaseYear(t), true
			}
		}
	}

	return time.Time{}, false
}

// DateFromCategory resolves the museum feed's <category> element, which
// embeds the event date as YYYY/MM/DD.
func DateFromCategory(category string) (time.Time, bool) {
	m := categoryDatePattern.FindStringSubmatch(category)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006/01/02", m[0])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExtractTime finds the first clock-time substring and normalizes it to
// "HH:MM:SS". A bare "H:MM" with no meridiem matches the search patterns
// but none of the parse layouts, so it stays unresolved; records proceed
// without a time in that case.
func ExtractTime(text string) (string, bool) {
	var match string
	for _, pattern := range timePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			match = strings.TrimSpace(m[1])
			break
		}
	}
	if match == "" {
		return "", false
	}

	upper := strings.ToUpper(match)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return t.Format(ClockLayout), true
		}
	}
	return "", false
}

// ExtractTimeRange parses a start-end pair split at an en-dash or hyphen.
// A start time with no meridiem inherits the end time's ("10 - 3 pm" reads
// as 10 pm). Both times are unresolved if the range shape is absent.
func ExtractTimeRange(text string) (start, end string, ok bool) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	startRaw, startMeridiem, endRaw, endMeridiem := m[1], m[2], m[3], m[4]
	if startMeridiem == "" {
		startMeridiem = endMeridiem
	}

	start, ok = parseClock(startRaw, startMeridiem)
	if !ok {
		return "", "", false
	}
	end, ok = parseClock(endRaw, endMeridiem)
	if !ok {
		return "", "", false
	}
	return start, end, true
}

func parseClock(raw, meridiem string) (string, bool) {
	layout := "3 PM"
	if strings.Contains(raw, ":") {
		layout = "3:04 PM"
	}
	t, err := time.Parse(layout, strings.ToUpper(raw)+" "+strings.ToUpper(meridiem))
	if err != nil {
		return "", false
	}
	return t.Format(ClockLayout), true
}

// rebaseYear reinterprets two-digit years parsed into the 1900s as 20xx.
func rebaseYear(t time.Time) time.Time {
	if t.Year() < 1970 {
		return t.AddDate(100, 0, 0)
	}
	return t
}
