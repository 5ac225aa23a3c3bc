package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dcworkshops/event-scraper/internal/event"
	"github.com/samber/lo"
)

// OutputFormat represents the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Summary describes one run's results.
type Summary struct {
	ScrapedAt    string   `json:"scraped_at"`
	Sources      []string `json:"sources"`
	Total        int      `json:"total"`
	KidFriendly  int      `json:"kid_friendly"`
	AdultOnly    int      `json:"adult_only"`
	Free         int      `json:"free"`
	WithTime     int      `json:"with_time"`
	WithLocation int      `json:"with_location"`
	OutputFile   string   `json:"output_file,omitempty"`
	CalendarFile string   `json:"calendar_file,omitempty"`
}

// Summarize counts the run's events by audience, price and completeness.
func Summarize(events []*event.Event, sources []string, scrapedAt time.Time) *Summary {
	return &Summary{
		ScrapedAt: scrapedAt.UTC().Format(time.RFC3339),
		Sources:   sources,
		Total:     len(events),
		KidFriendly: lo.CountBy(events, func(evt *event.Event) bool {
			return evt.KidFriendly == event.AudienceKids
		}),
		AdultOnly: lo.CountBy(events, func(evt *event.Event) bool {
			return evt.KidFriendly == event.AudienceAdults
		}),
		Free: lo.CountBy(events, func(evt *event.Event) bool {
			return evt.IsFree()
		}),
		WithTime: lo.CountBy(events, func(evt *event.Event) bool {
			return evt.Time != nil && evt.Time.Start != ""
		}),
		WithLocation: lo.CountBy(events, func(evt *event.Event) bool {
			return evt.Location != ""
		}),
	}
}

// WriteOutput renders the run summary. In verbose text mode each event is
// listed after the totals.
func WriteOutput(w io.Writer, summary *Summary, events []*event.Event, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}
	return writeText(w, summary, events, verbose)
}

func writeText(w io.Writer, summary *Summary, events []*event.Event, verbose bool) error {
	if summary.Total == 0 {
		fmt.Fprintln(w, "No workshops found.")
		if summary.OutputFile != "" {
			fmt.Fprintf(w, "Empty result written to %s\n", summary.OutputFile)
		}
		return nil
	}

	fmt.Fprintf(w, "Found %d workshops from %s\n", summary.Total, strings.Join(summary.Sources, ", "))
	fmt.Fprintf(w, "  kid-friendly: %d  adults-only: %d  free: %d\n",
		summary.KidFriendly, summary.AdultOnly, summary.Free)
	fmt.Fprintf(w, "  with time: %d  with location: %d\n", summary.WithTime, summary.WithLocation)
	if summary.OutputFile != "" {
		fmt.Fprintf(w, "Saved to %s\n", summary.OutputFile)
	}
	if summary.CalendarFile != "" {
		fmt.Fprintf(w, "Calendar saved to %s\n", summary.CalendarFile)
	}

	if verbose {
		fmt.Fprintln(w)
		for _, evt := range events {
			fmt.Fprintln(w, formatEventLine(evt))
		}
	}
	return nil
}

// formatEventLine renders one event as a single summary line.
func formatEventLine(evt *event.Event) string {
	var sb strings.Builder
	sb.WriteString(evt.Date)
	if evt.Time != nil && evt.Time.Start != "" {
		sb.WriteString(" ")
		sb.WriteString(evt.Time.Start)
	}
	sb.WriteString("  ")
	sb.WriteString(evt.Title)
	if evt.Location != "" {
		sb.WriteString(" @ ")
		sb.WriteString(evt.Location)
	}
	if evt.Price != nil && *evt.Price != "" {
		sb.WriteString(" [")
		sb.WriteString(*evt.Price)
		sb.WriteString("]")
	}
	return sb.String()
}
