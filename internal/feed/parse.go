package feed

import (
	"bytes"
	"errors"
	stdhtml "html"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"
	xhtml "golang.org/x/net/html"
)

// Parser tier names, reported back to the walker for logging.
const (
	TierRSS       = "rss"
	TierHTML      = "html"
	TierTokenizer = "tokenizer"
	TierRegex     = "regex"
)

var errNoItems = errors.New("no parser tier produced items")

// Parse decodes a feed payload into items, falling through the parser
// tiers until one yields at least one item.
func Parse(data []byte) ([]Item, string, error) {
	if items, err := parseRSS(data); err == nil && len(items) > 0 {
		return items, TierRSS, nil
	}
	if items, err := parseHTML(data); err == nil && len(items) > 0 {
		return items, TierHTML, nil
	}
	if items := parseTokens(data); len(items) > 0 {
		return items, TierTokenizer, nil
	}
	if items := parseRaw(string(data)); len(items) > 0 {
		return items, TierRegex, nil
	}
	return nil, "", errNoItems
}

// parseRSS is the structured tier.
func parseRSS(data []byte) ([]Item, error) {
	f, err := rss.Parse(data)
	if err != nil {
		return nil, err
	}

	return lo.Map(f.Items, func(it *rss.Item, _ int) Item {
		pubDate := ""
		if it.DateValid {
			pubDate = it.Date.Format(time.RFC1123Z)
		}
		return Item{
			Title:       strings.TrimSpace(it.Title),
			Description: it.Summary,
			Content:     it.Content,
			Link:        strings.TrimSpace(it.Link),
			PubDate:     pubDate,
			Categories:  it.Categories,
		}
	}), nil
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// parseHTML reparses the payload in HTML mode, which tolerates unclosed
// and misnested tags. HTML parsing treats <link> as a void element and
// drops its text into a sibling node, so the link is recovered by URL
// pattern instead of by tag.
func parseHTML(data []byte) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var items []Item
	doc.Find("item").Each(func(_ int, sel *goquery.Selection) {
		outer, _ := goquery.OuterHtml(sel)

		var categories []string
		sel.Find("category").Each(func(_ int, c *goquery.Selection) {
			if text := strings.TrimSpace(c.Text()); text != "" {
				categories = append(categories, text)
			}
		})

		items = append(items, Item{
			Title:       strings.TrimSpace(sel.Find("title").First().Text()),
			Description: strings.TrimSpace(sel.Find("description").First().Text()),
			Content:     strings.TrimSpace(sel.Find(`content\:encoded`).First().Text()),
			Link:        urlPattern.FindString(outer),
			PubDate:     strings.TrimSpace(sel.Find("pubdate").First().Text()),
			Categories:  categories,
		})
	})
	return items, nil
}

// parseTokens walks the raw token stream. The tokenizer applies no
// void-element rules, so <link> text is still attributed correctly here.
func parseTokens(data []byte) []Item {
	z := xhtml.NewTokenizer(bytes.NewReader(data))

	var items []Item
	var current *Item
	var field string

	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return items

		case xhtml.StartTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			if tag == "item" {
				current = &Item{}
				field = ""
				continue
			}
			if current != nil {
				field = tag
			}

		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if strings.ToLower(string(name)) == "item" && current != nil {
				items = append(items, *current)
				current = nil
			}
			field = ""

		case xhtml.TextToken:
			if current == nil || field == "" {
				continue
			}
			text := strings.TrimSpace(string(z.Text()))
			if text == "" {
				continue
			}
			switch field {
			case "title":
				current.Title += text
			case "description":
				current.Description += text
			case "content:encoded":
				current.Content += text
			case "link":
				current.Link += text
			case "pubdate":
				current.PubDate += text
			case "category":
				current.Categories = append(current.Categories, text)
			}
		}
	}
}

var (
	itemBlockPattern = regexp.MustCompile(`(?is)<item[^>]*>(.*?)</item>`)
	cdataPattern     = regexp.MustCompile(`(?s)^\s*<!\[CDATA\[(.*)\]\]>\s*$`)

	rawFieldPatterns = func() map[string]*regexp.Regexp {
		patterns := make(map[string]*regexp.Regexp)
		for _, tag := range []string{"title", "description", "content:encoded", "link", "pubDate", "category"} {
			patterns[tag] = regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(tag) + `[^>]*>(.*?)</` + regexp.QuoteMeta(tag) + `>`)
		}
		return patterns
	}()
)

// parseRaw is the last-resort tier: regex extraction of <item> blocks.
func parseRaw(data string) []Item {
	var items []Item
	for _, block := range itemBlockPattern.FindAllStringSubmatch(data, -1) {
		inner := block[1]

		var categories []string
		for _, m := range rawFieldPatterns["category"].FindAllStringSubmatch(inner, -1) {
			if text := rawText(m[1]); text != "" {
				categories = append(categories, text)
			}
		}

		items = append(items, Item{
			Title:       rawText(rawField(inner, "title")),
			Description: rawField(inner, "description"),
			Content:     rawField(inner, "content:encoded"),
			Link:        rawText(rawField(inner, "link")),
			PubDate:     rawText(rawField(inner, "pubDate")),
			Categories:  categories,
		})
	}
	return items
}

func rawField(block, tag string) string {
	m := rawFieldPatterns[tag].FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	value := m[1]
	if cd := cdataPattern.FindStringSubmatch(value); cd != nil {
		return cd[1]
	}
	return stdhtml.UnescapeString(value)
}

func rawText(value string) string {
	return strings.TrimSpace(value)
}
