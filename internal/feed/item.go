package feed

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Item carries the as-fetched fields of one feed entry. It only lives for
// the duration of normalization; nothing downstream keeps a reference.
type Item struct {
	Title       string
	Description string // raw inner markup of <description>
	Content     string // <content:encoded> payload when present
	Link        string
	PubDate     string
	Categories  []string
}

var breakPattern = regexp.MustCompile(`<br\s*/?>\s*<br\s*/?>`)

// Text flattens an HTML fragment to plain text with entities decoded and
// whitespace collapsed.
func Text(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// CleanDescription extracts the prose block from a museum description.
// Those descriptions lead with a date/time header separated from the prose
// by a double <br/>; when the separator is missing the whole field is used.
func CleanDescription(description string) string {
	parts := breakPattern.Split(description, 2)
	part := parts[0]
	if len(parts) >= 2 {
		part = parts[1]
	}
	return Text(part)
}

// FirstLine returns the description text before the first <br, which is
// where the museum feed keeps the event's date and time window.
func FirstLine(description string) string {
	if i := strings.Index(description, "<br"); i >= 0 {
		description = description[:i]
	}
	return Text(description)
}
