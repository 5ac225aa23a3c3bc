// Package filter narrows a run's results before they are written.
//
// Criteria combine with AND: kid-friendly only, free only, location
// substrings (any match), and an inclusive date window. An empty filter
// matches every event.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dcworkshops/event-scraper/internal/event"
)

// Filter represents result filtering criteria.
type Filter struct {
	KidFriendly bool       `json:"kid_friendly,omitempty"`
	FreeOnly    bool       `json:"free_only,omitempty"`
	Locations   []string   `json:"locations,omitempty"`
	DateFrom    *time.Time `json:"date_from,omitempty"`
	DateTo      *time.Time `json:"date_to,omitempty"`
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return !f.KidFriendly &&
		!f.FreeOnly &&
		len(f.Locations) == 0 &&
		f.DateFrom == nil &&
		f.DateTo == nil
}

// Matches checks if an event passes all active criteria.
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	if f.KidFriendly && evt.KidFriendly != event.AudienceKids {
		return false
	}
	if f.FreeOnly && !evt.IsFree() {
		return false
	}

	if len(f.Locations) > 0 {
		haystack := strings.ToLower(evt.Location + " " + evt.Venue)
		matched := false
		for _, location := range f.Locations {
			if strings.Contains(haystack, strings.ToLower(location)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.DateFrom != nil || f.DateTo != nil {
		date := evt.EventDate()
		if f.DateFrom != nil && date.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && date.After(*f.DateTo) {
			return false
		}
	}

	return true
}

// Apply returns the events that match all criteria. An empty filter
// returns the input unchanged.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	filtered := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.KidFriendly {
		parts = append(parts, "Kid-friendly only")
	}
	if f.FreeOnly {
		parts = append(parts, "Free only")
	}
	if len(f.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("Locations: %s", strings.Join(f.Locations, ", ")))
	}
	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}
	return strings.Join(parts, " | ")
}
