package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	costLabelPattern = regexp.MustCompile(`<b>Cost</b>:&nbsp;([^<]+)`)
	costDelimiters   = regexp.MustCompile(`[|;,]`)

	priceLinkPattern = regexp.MustCompile(`(?i)<a\s+href="(https://smithsonianassociates\.org/ticketing/tickets/[^"]+)"[^>]*>Click here to view prices</a>`)
	ticketingPattern = regexp.MustCompile(`(?i)href="(https://smithsonianassociates\.org/ticketing/[^"]+)"`)

	freePattern = regexp.MustCompile(`(?i)\b(free admission|free entry|no admission fee|admission is free|entry is free|free of charge|free event|no charge|complimentary|free)\b`)

	dollarPattern = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`)

	// General-admission prices outrank every other signal; a listed member
	// price is usually lower than what a visitor would actually pay.
	genAdmissionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s+gen\.?\s*admission`),
		regexp.MustCompile(`(?i)gen\.?\s*admission\s*\$(\d+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s+general\s*admission`),
		regexp.MustCompile(`(?i)general\s*admission\s*\$(\d+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)gen\.?\s*admission[:\s]*\$(\d+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)general\s*admission[:\s]*\$(\d+(?:\.\d{2})?)`),
	}

	pagePricePatterns = []pricePattern{
		{re: freePattern, sentinel: SentinelFree},
		{re: regexp.MustCompile(`(?i)non[-\s]*members?[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)museum\s+admission[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)adults?[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)admission[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)cost[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)price[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)fee[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)tickets?[:\s]*\$(\d+(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)included\s+with\s+(?:museum\s+)?admission`), sentinel: SentinelIncluded},
		{re: regexp.MustCompile(`(?i)with\s+paid\s+museum\s+admission`), sentinel: SentinelIncluded},
		{re: regexp.MustCompile(`(?i)no\s+additional\s+cost`), sentinel: SentinelIncluded},
		{re: regexp.MustCompile(`(?i)members?[:\s]*\$(\d+(?:\.\d{2})?)`)},
	}

	priceSelectors = []string{
		".price", ".cost", ".admission", ".fee", ".ticket-price",
		`[class*="price"]`, `[class*="cost"]`, `[class*="admission"]`,
		`[data-price]`, `[data-cost]`,
	}
)

type pricePattern struct {
	re       *regexp.Regexp
	sentinel string // emitted verbatim when set; otherwise "$" + first group
}

// CostLabel parses an explicit "<b>Cost</b>:&nbsp;Adults|Seniors|$12.00|…"
// field out of raw description markup. The value is a delimited grid whose
// third column carries the standard adult price.
func (c *Classifier) CostLabel(description string) (string, bool) {
	m := costLabelPattern.FindStringSubmatch(description)
	if m == nil {
		return "", false
	}

	tokens := costDelimiters.Split(m[1], -1)
	if len(tokens) <= 2 {
		return "", false
	}
	price := strings.TrimPrefix(strings.TrimSpace(tokens[2]), "$")
	if price == "" {
		return "", false
	}
	return price, true
}

// IsFreeText reports whether the text carries an explicit free indicator.
func (c *Classifier) IsFreeText(text string) bool {
	return freePattern.MatchString(text)
}

// PriceLink extracts the reseller's "Click here to view prices" ticketing
// link from raw description markup, falling back to any ticketing href.
func (c *Classifier) PriceLink(description string) string {
	if m := priceLinkPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	if m := ticketingPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

// ExcludedDomain reports whether a URL belongs to a third-party ticketing
// host that the detail-page price fallback should not crawl.
func (c *Classifier) ExcludedDomain(url string) bool {
	lower := strings.ToLower(url)
	for _, domain := range c.rules.ExcludedDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// SearchDocument looks for a price in a fetched detail page: price-ish
// HTML elements first, then the tiered text patterns over the page text.
func (c *Classifier) SearchDocument(doc *goquery.Document) (string, bool) {
	for _, selector := range priceSelectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if m := dollarPattern.FindStringSubmatch(text); m != nil {
				found = "$" + m[1]
				return false
			}
			if strings.Contains(strings.ToLower(text), "free") {
				found = SentinelFree
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}

	return c.SearchPageText(doc.Text())
}

// SearchPageText runs the tiered price patterns over flattened page text.
// Tier order: general admission, free indicators, non-member, generic
// admission/cost/fee/ticket labels, included-with-admission sentinels,
// member pricing last, then the first plausible bare dollar amount.
func (c *Classifier) SearchPageText(text string) (string, bool) {
	for _, re := range genAdmissionPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return "$" + m[1], true
		}
	}

	for _, p := range pagePricePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if p.sentinel != "" {
			return p.sentinel, true
		}
		return "$" + m[1], true
	}

	for _, m := range dollarPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 5 || v > 200 {
			continue
		}
		return "$" + strconv.FormatFloat(v, 'f', -1, 64), true
	}

	return "", false
}
