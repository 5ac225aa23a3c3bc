package source

import (
	"encoding/base64"
	"encoding/json"
	"sort"

	"github.com/dcworkshops/event-scraper/internal/classify"
	"github.com/dcworkshops/event-scraper/internal/event"
)

const libraryFeedBase = "https://dclibrary.libnet.info/feeds?data="

// branchCodes maps DC Public Library branch names to the location codes
// the feed filter expects.
var branchCodes = map[string]string{
	"Anacostia Neighborhood Library":                        "2305",
	"Arthur Capper TechExpress":                             "3915",
	"Bellevue (William O. Lockridge) Neighborhood Library":  "2306",
	"Benning (Dorothy I. Height) Neighborhood Library":      "2304",
	"Capitol View Neighborhood Library":                     "2307",
	"Chevy Chase Neighborhood Library":                      "2308",
	"Cleveland Park Neighborhood Library":                   "2309",
	"Deanwood Neighborhood Library":                         "2310",
	"Francis A. Gregory Neighborhood Library":               "2312",
	"Georgetown Neighborhood Library":                       "2313",
	"Lamond-Riggs Neighborhood Library":                     "2314",
	"Martin Luther King Jr. Memorial Library - Central Library": "2316",
	"Mt. Pleasant Neighborhood Library":                     "2317",
	"Northeast Neighborhood Library":                        "2318",
	"Northwest One Neighborhood Library":                    "2330",
	"Palisades Neighborhood Library":                        "2331",
	"Parklands-Turner Neighborhood Library":                 "2319",
	"Petworth Neighborhood Library":                         "2320",
	"Rosedale Neighborhood Library":                         "2321",
	"Shaw (Watha T. Daniel) Neighborhood Library":           "2322",
	"Shepherd Park (Juanita E. Thornton) Neighborhood Library": "2323",
	"Southwest Neighborhood Library":                        "2943",
	"Takoma Park Neighborhood Library":                      "2326",
	"Tenley-Friendship Neighborhood Library":                "2327",
	"Virtual":                                               "3098",
	"West End Neighborhood Library":                         "2328",
	"Woodridge Neighborhood Library":                        "2329",
}

var (
	kidAgeBands   = []string{"Birth - 5", "5 - 12 Years Old", "13 - 19 Years Old (Teens)"}
	adultAgeBands = []string{"Adults", "Seniors"}
	programTypes  = []string{"Arts & Crafts", "Makers & DIY Program", "Writing"}
)

type feedFilter struct {
	FeedType string     `json:"feedType"`
	Filters  filterBody `json:"filters"`
}

type filterBody struct {
	Location []string `json:"location"`
	Ages     []string `json:"ages"`
	Types    []string `json:"types"`
	Tags     []string `json:"tags"`
	Term     string   `json:"term"`
	Days     int      `json:"days"`
}

// EncodeFilter builds the base64 JSON filter blob the library feed
// expects: one location code, the age bands for the requested audience,
// the fixed program types, and a one-day window.
func EncodeFilter(locationCode string, kids bool) string {
	ages := adultAgeBands
	if kids {
		ages = kidAgeBands
	}

	blob := feedFilter{
		FeedType: "rss",
		Filters: filterBody{
			Location: []string{locationCode},
			Ages:     ages,
			Types:    programTypes,
			Tags:     []string{},
			Term:     "",
			Days:     1,
		},
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// Library returns the DC Public Library source: one feed variant per
// branch and age band, kids first so the run-scoped title dedup keeps the
// kid-friendly labeling for programs listed under both bands.
func Library() *Source {
	branches := make([]string, 0, len(branchCodes))
	for branch := range branchCodes {
		branches = append(branches, branch)
	}
	sort.Strings(branches)

	variants := make([]Variant, 0, 2*len(branches))
	for _, kids := range []bool{true, false} {
		audience := event.AudienceAdults
		label := "adults"
		if kids {
			audience = event.AudienceKids
			label = "kids"
		}
		for _, branch := range branches {
			location := branch
			if branch == "Virtual" {
				location = classify.SentinelVirtual
			}
			variants = append(variants, Variant{
				Label:    branch + "/" + label,
				URL:      libraryFeedBase + EncodeFilter(branchCodes[branch], kids),
				Location: location,
				Audience: audience,
			})
		}
	}

	return &Source{
		Name:         "library",
		Business:     "DC Libraries",
		SubmittedBy:  "scraper_dc_library",
		Variants:     variants,
		UseContent:   true,
		DefaultPrice: classify.SentinelFree,
	}
}
