package event

import (
	"sort"
	"time"
)

// Audience is the tri-state kid-friendly classification. The empty string
// means the heuristics could not decide either way.
type Audience string

const (
	AudienceKids    Audience = "Yes"
	AudienceAdults  Audience = "No"
	AudienceUnknown Audience = ""
)

// TimeRange holds an event's clock time as "HH:MM:SS" strings. Sources that
// only publish a single start time leave End empty.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Event is one normalized workshop record as written to the output file.
// Records are assembled once by the walker and never mutated afterwards.
type Event struct {
	URL         string     `json:"url"`
	ScrapedAt   string     `json:"scraped_at"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Time        *TimeRange `json:"time"`
	Price       *string    `json:"price"`
	Location    string     `json:"location,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	KidFriendly Audience   `json:"kidfriendly"`
	SubmittedBy string     `json:"submittedBy"`
	Business    string     `json:"business"`
}

// DateLayout is the calendar date format used in output records.
const DateLayout = "2006-01-02"

// PriceOf returns a price pointer for the given sentinel or amount string.
func PriceOf(s string) *string {
	return &s
}

// IsFree reports whether the record carries the free sentinel.
func (e *Event) IsFree() bool {
	return e.Price != nil && *e.Price == "Free"
}

// EventDate parses the record's date field. Returns the zero time if the
// field is empty or malformed, which should not happen for emitted records.
func (e *Event) EventDate() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortByDate orders events by date ascending, then title, keeping the
// output file stable across runs that see the same feeds.
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Title < events[j].Title
	})
}
