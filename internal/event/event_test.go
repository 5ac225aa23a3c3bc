package event

import (
	"testing"
)

func TestIsFree(t *testing.T) {
	tests := []struct {
		name     string
		price    *string
		expected bool
	}{
		{"free sentinel", PriceOf("Free"), true},
		{"amount", PriceOf("12.00"), false},
		{"check website", PriceOf("Check website"), false},
		{"nil price", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := &Event{Price: tt.price}
			if got := evt.IsFree(); got != tt.expected {
				t.Errorf("IsFree() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEventDate(t *testing.T) {
	evt := &Event{Date: "2026-03-14"}
	got := evt.EventDate()
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 14 {
		t.Errorf("EventDate() = %v, expected 2026-03-14", got)
	}

	malformed := &Event{Date: "March 14"}
	if !malformed.EventDate().IsZero() {
		t.Error("expected zero time for malformed date")
	}
}

func TestSortByDate(t *testing.T) {
	events := []*Event{
		{Title: "Zine Making", Date: "2026-05-01"},
		{Title: "Pottery", Date: "2026-04-01"},
		{Title: "Book Club", Date: "2026-05-01"},
	}

	SortByDate(events)

	expected := []string{"Pottery", "Book Club", "Zine Making"}
	for i, title := range expected {
		if events[i].Title != title {
			t.Errorf("position %d: got %q, expected %q", i, events[i].Title, title)
		}
	}
}
