package calendar

import (
	"strings"
	"testing"

	"github.com/dcworkshops/event-scraper/internal/event"
)

func TestGenerateICS(t *testing.T) {
	events := []*event.Event{
		{
			Title:       "Fossil Dig",
			Description: "Hands-on dig",
			Date:        "2026-03-14",
			Time:        &event.TimeRange{Start: "10:00:00", End: "15:00:00"},
			Location:    "Ripley Center",
			URL:         "https://example.org/events/fossil-dig",
		},
		{
			Title: "All Day Fair",
			Date:  "2026-03-20",
		},
		{
			Title: "Evening Talk; Part 1",
			Date:  "2026-03-21",
			Time:  &event.TimeRange{Start: "18:30:00"},
		},
	}

	ics := GenerateICS(events)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("missing calendar envelope")
	}
	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 events, got %d", got)
	}

	if !strings.Contains(ics, "DTSTART:20260314T100000\r\n") {
		t.Error("missing timed start")
	}
	if !strings.Contains(ics, "DTEND:20260314T150000\r\n") {
		t.Error("missing timed end")
	}
	if !strings.Contains(ics, "LOCATION:Ripley Center\r\n") {
		t.Error("missing location")
	}
	if !strings.Contains(ics, "URL:https://example.org/events/fossil-dig\r\n") {
		t.Error("missing URL")
	}

	// No time means an all-day entry.
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20260320\r\n") {
		t.Error("missing all-day start")
	}

	// Start-only events get a one-hour block, and semicolons are escaped.
	if !strings.Contains(ics, "DTSTART:20260321T183000\r\n") {
		t.Error("missing start-only start")
	}
	if !strings.Contains(ics, "DTEND:20260321T193000\r\n") {
		t.Error("missing derived end")
	}
	if !strings.Contains(ics, "SUMMARY:Evening Talk\\; Part 1\r\n") {
		t.Error("semicolon not escaped in summary")
	}
}

func TestGenerateICSSkipsUndatedEvents(t *testing.T) {
	ics := GenerateICS([]*event.Event{{Title: "No Date"}})
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("undated events should not produce calendar entries")
	}
}

func TestEscapeICS(t *testing.T) {
	got := escapeICS("a,b;c\nd\\e")
	if got != `a\,b\;c\nd\\e` {
		t.Errorf("unexpected escape %q", got)
	}
}
