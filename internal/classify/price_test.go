package classify

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestCostLabel(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name        string
		description string
		expected    string
		ok          bool
	}{
		{
			"delimited grid",
			`Join us for a tour.<br/><b>Cost</b>:&nbsp;Adults|Seniors|$12.00|Members free<br/>`,
			"12.00", true,
		},
		{
			"semicolon delimiters",
			`<b>Cost</b>:&nbsp;Adults;Seniors;$8.50;Kids $4`,
			"8.50", true,
		},
		{
			"too few columns",
			`<b>Cost</b>:&nbsp;Free`,
			"", false,
		},
		{
			"no cost label",
			`A workshop about pottery. $12 at the door.`,
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.CostLabel(tt.description)
			if ok != tt.ok {
				t.Fatalf("CostLabel ok = %v, expected %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("CostLabel = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestIsFreeText(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		input    string
		expected bool
	}{
		{"This event is free", true},
		{"Free admission all weekend", true},
		{"No charge for members of the public", true},
		{"Freedom exhibit opening", false},
		{"Tickets $15", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := c.IsFreeText(tt.input); got != tt.expected {
				t.Errorf("IsFreeText(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPriceLink(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{
			"explicit price link",
			`<a href="https://smithsonianassociates.org/ticketing/tickets/great-courses">Click here to view prices</a>`,
			"https://smithsonianassociates.org/ticketing/tickets/great-courses",
		},
		{
			"generic ticketing link",
			`Register: <a href="https://smithsonianassociates.org/ticketing/reg/12345">here</a>`,
			"https://smithsonianassociates.org/ticketing/reg/12345",
		},
		{
			"no link",
			`Free lecture, no registration needed.`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.PriceLink(tt.description); got != tt.expected {
				t.Errorf("PriceLink = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestExcludedDomain(t *testing.T) {
	c := New(DefaultRules())

	if !c.ExcludedDomain("https://www.eventbrite.com/e/craft-night-12345") {
		t.Error("expected eventbrite URL to be excluded")
	}
	if c.ExcludedDomain("https://naturalhistory.si.edu/events/craft-night") {
		t.Error("expected museum URL not to be excluded")
	}
}

func TestSearchPageText(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"general admission outranks member price", "Members $15, general admission $25.00", "$25.00", true},
		{"non-member over member", "Non-members: $30, members: $20", "$30", true},
		{"member price as last resort", "Members: $20", "$20", true},
		{"free indicator", "Free admission for all visitors", "Free", true},
		{"included sentinel", "Included with museum admission", "Included with museum admission", true},
		{"labeled cost", "Cost: $18 per participant", "$18", true},
		{"bare dollar fallback", "Tickets start at $45 per person", "$45", true},
		{"implausible bare amount skipped", "Souvenir mugs from $3", "", false},
		{"no price", "Donations welcome", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.SearchPageText(tt.input)
			if ok != tt.ok {
				t.Fatalf("SearchPageText(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("SearchPageText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSearchDocument(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name     string
		html     string
		expected string
		ok       bool
	}{
		{
			"price element",
			`<html><body><div class="price">$12.50</div><p>Members $5</p></body></html>`,
			"$12.50", true,
		},
		{
			"free in price element",
			`<html><body><span class="admission-info">Free for everyone</span></body></html>`,
			"Free", true,
		},
		{
			"falls back to page text",
			`<html><body><p>Admission: $22 at the door</p></body></html>`,
			"$22", true,
		},
		{
			"nothing found",
			`<html><body><p>See you there!</p></body></html>`,
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("parsing test document: %v", err)
			}
			got, ok := c.SearchDocument(doc)
			if ok != tt.ok {
				t.Fatalf("SearchDocument ok = %v, expected %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("SearchDocument = %q, expected %q", got, tt.expected)
			}
		})
	}
}
