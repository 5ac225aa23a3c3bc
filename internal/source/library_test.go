package source

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dcworkshops/event-scraper/internal/classify"
	"github.com/dcworkshops/event-scraper/internal/event"
)

func TestEncodeFilter(t *testing.T) {
	blob := EncodeFilter("2320", true)

	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("filter blob is not valid base64: %v", err)
	}

	var decoded feedFilter
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("filter blob is not valid JSON: %v", err)
	}

	if decoded.FeedType != "rss" {
		t.Errorf("expected feedType rss, got %q", decoded.FeedType)
	}
	if len(decoded.Filters.Location) != 1 || decoded.Filters.Location[0] != "2320" {
		t.Errorf("unexpected location %v", decoded.Filters.Location)
	}
	if len(decoded.Filters.Ages) != len(kidAgeBands) {
		t.Errorf("expected kid age bands, got %v", decoded.Filters.Ages)
	}
	if decoded.Filters.Days != 1 {
		t.Errorf("expected a one-day window, got %d", decoded.Filters.Days)
	}

	adultBlob := EncodeFilter("2320", false)
	adultData, _ := base64.StdEncoding.DecodeString(adultBlob)
	var adultDecoded feedFilter
	if err := json.Unmarshal(adultData, &adultDecoded); err != nil {
		t.Fatalf("adult filter blob is not valid JSON: %v", err)
	}
	if len(adultDecoded.Filters.Ages) != len(adultAgeBands) {
		t.Errorf("expected adult age bands, got %v", adultDecoded.Filters.Ages)
	}
}

func TestLibrarySource(t *testing.T) {
	src := Library()

	if src.Name != "library" {
		t.Errorf("unexpected name %q", src.Name)
	}
	if src.Business != "DC Libraries" {
		t.Errorf("unexpected business %q", src.Business)
	}
	if src.DefaultPrice != classify.SentinelFree {
		t.Errorf("expected free default price, got %q", src.DefaultPrice)
	}
	if !src.UseContent {
		t.Error("expected UseContent to be set")
	}

	expected := 2 * len(branchCodes)
	if len(src.Variants) != expected {
		t.Fatalf("expected %d variants, got %d", expected, len(src.Variants))
	}

	// Kid variants come first so the title dedup keeps kid labeling.
	if src.Variants[0].Audience != event.AudienceKids {
		t.Errorf("expected kid variants first, got %q", src.Variants[0].Audience)
	}
	if last := src.Variants[len(src.Variants)-1]; last.Audience != event.AudienceAdults {
		t.Errorf("expected adult variants last, got %q", last.Audience)
	}

	for _, variant := range src.Variants {
		if !strings.HasPrefix(variant.URL, libraryFeedBase) {
			t.Fatalf("variant %q has unexpected URL %q", variant.Label, variant.URL)
		}
		if strings.HasPrefix(variant.Label, "Virtual/") {
			if variant.Location != classify.SentinelVirtual {
				t.Errorf("virtual branch should carry the Virtual location, got %q", variant.Location)
			}
		} else if variant.Location == "" {
			t.Errorf("variant %q has no location", variant.Label)
		}
	}
}

func TestMuseumSource(t *testing.T) {
	src := Museum()

	if src.Name != "museum" {
		t.Errorf("unexpected name %q", src.Name)
	}
	if len(src.Variants) != 1 {
		t.Fatalf("expected a single museum variant, got %d", len(src.Variants))
	}
	if !src.TimeRanges || !src.PriceLookups || !src.CheckCancelled || !src.ExtractPlace {
		t.Error("museum source should extract time ranges, prices, cancellations and places")
	}
}

func TestByName(t *testing.T) {
	if src := ByName("library"); src == nil || src.Name != "library" {
		t.Error("expected the library source")
	}
	if src := ByName("museum"); src == nil || src.Name != "museum" {
		t.Error("expected the museum source")
	}
	if src := ByName("zoo"); src != nil {
		t.Errorf("expected nil for an unknown source, got %q", src.Name)
	}
	if len(All()) != 2 {
		t.Errorf("expected 2 configured sources, got %d", len(All()))
	}
}
