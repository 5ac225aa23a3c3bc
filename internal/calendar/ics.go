package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/dcworkshops/event-scraper/internal/event"
)

// GenerateICS renders a run's events as one iCalendar document. Events
// without a resolved time become all-day entries; events with only a
// start time get a one-hour block.
func GenerateICS(events []*event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//DC Workshops//event-scraper//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(time.Now().UTC())
	for _, evt := range events {
		writeEvent(&ics, evt, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, stamp string) {
	date := evt.EventDate()
	if date.IsZero() {
		return
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s@dcworkshops\r\n", eventUID(evt))
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp)

	if evt.Time == nil || evt.Time.Start == "" {
		fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", date.Format("20060102"))
	} else {
		start := combine(date, evt.Time.Start)
		end := start.Add(time.Hour)
		if evt.Time.End != "" {
			end = combine(date, evt.Time.End)
		}
		fmt.Fprintf(ics, "DTSTART:%s\r\n", start.Format("20060102T150405"))
		fmt.Fprintf(ics, "DTEND:%s\r\n", end.Format("20060102T150405"))
	}

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(evt.Title))
	if evt.Description != "" && evt.Description != evt.Title {
		fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(evt.Description))
	}
	if evt.Location != "" {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(evt.Location))
	}
	if evt.URL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", evt.URL)
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// eventUID derives a stable identifier from title and date.
func eventUID(evt *event.Event) string {
	h := sha1.New()
	h.Write([]byte(evt.Title + "|" + evt.Date))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// combine attaches an "HH:MM:SS" clock time to a calendar date.
func combine(date time.Time, clock string) time.Time {
	t, err := time.Parse(event.ClockLayout, clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
