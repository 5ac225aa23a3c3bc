package event

import (
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"collapses whitespace", "a\n\n  b\t\tc", "a b c"},
		{"trims edges", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.input); got != tt.expected {
				t.Errorf("Flatten(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"month name with noise", "Join us on January 5, 2026 at the branch", "2026-01-05", true},
		{"month name no comma", "Storytime March 14 2026 in the garden", "2026-03-14", true},
		{"abbreviated month", "Deadline Feb 8, 2026", "2026-02-08", true},
		{"slash date", "Registration opens 3/14/2026.", "2026-03-14", true},
		{"slash date two digit year", "Happening 1/1/25", "2025-01-01", true},
		{"dash date", "Workshop 3-14-26", "2026-03-14", true},
		{"iso date", "Scheduled for 2026-02-03 downtown", "2026-02-03", true},
		{"dotted date", "Clinic 4.4.26", "2026-04-04", true},
		{"inside markup", "<b>Date</b>: June 2, 2026<br/>", "2026-06-02", true},
		{"no date", "A workshop about dates and times", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ExtractDate(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if formatted := got.Format(DateLayout); formatted != tt.expected {
				t.Errorf("ExtractDate(%q) = %s, expected %s", tt.input, formatted, tt.expected)
			}
		})
	}
}

func TestExtractDateRebasesOldYears(t *testing.T) {
	got, ok := ExtractDate("Event on 6/15/25")
	if !ok {
		t.Fatal("expected a date")
	}
	if got.Year() != 2025 {
		t.Errorf("expected year 2025, got %d", got.Year())
	}
}

func TestDateFromCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"embedded date", "2026/03/14 Natural History Museum", "2026-03-14", true},
		{"date only", "2026/12/01", "2026-12-01", true},
		{"plain category", "Crafts", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateFromCategory(tt.input)
			if ok != tt.ok {
				t.Fatalf("DateFromCategory(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if tt.ok && got.Format(DateLayout) != tt.expected {
				t.Errorf("DateFromCategory(%q) = %s, expected %s", tt.input, got.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"clock with meridiem", "Starts at 6:30 PM sharp", "18:30:00", true},
		{"lowercase meridiem", "doors open 6:30 pm", "18:30:00", true},
		{"hour only", "Concert at 7 pm", "19:00:00", true},
		{"at-prefixed clock", "Doors open at 10:15 am", "10:15:00", true},
		{"no space before meridiem", "Begins 10AM", "10:00:00", true},
		{"bare clock stays unresolved", "Meeting at 19:00 in room 4", "", false},
		{"no time", "An all-day affair", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTime(tt.input)
			if ok != tt.ok {
				t.Fatalf("ExtractTime(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("ExtractTime(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractTimeRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start string
		end   string
		ok    bool
	}{
		{"both meridiems", "Open 10 am – 3 pm daily", "10:00:00", "15:00:00", true},
		{"start inherits meridiem", "Tour runs 1 – 2:15 pm", "13:00:00", "14:15:00", true},
		{"hyphen separator", "Lab hours 10:30 am - 11:45 am", "10:30:00", "11:45:00", true},
		{"no range", "Starts at 2 pm", "", "", false},
		{"no meridiem at all", "From 10 - 3", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ExtractTimeRange(tt.input)
			if ok != tt.ok {
				t.Fatalf("ExtractTimeRange(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if start != tt.start || end != tt.end {
				t.Errorf("ExtractTimeRange(%q) = %q..%q, expected %q..%q", tt.input, start, end, tt.start, tt.end)
			}
		})
	}
}
