package source

const museumFeedURL = "https://www.trumba.com/calendars/smithsonian-events.rss?filter1=_16658_&filterfield1=11153"

// Museum returns the Smithsonian events source: a single filtered feed
// whose entries carry date, time window, cost grid and venue labels inside
// the description markup.
func Museum() *Source {
	return &Source{
		Name:        "museum",
		Business:    "Smithsonian",
		SubmittedBy: "scraper",
		Variants: []Variant{
			{Label: "smithsonian-events", URL: museumFeedURL},
		},
		TimeRanges:     true,
		PriceLookups:   true,
		CheckCancelled: true,
		ExtractPlace:   true,
	}
}
