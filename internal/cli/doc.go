// Package cli implements the command-line interface for event-scraper.
//
// The cli package provides the Cobra-based CLI: source selection, result
// filtering flags, output directory and rules-file overrides, and the
// end-of-run summary in text or JSON. It coordinates the scraper, filter,
// storage and calendar packages.
package cli
