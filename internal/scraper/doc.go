// Package scraper walks the configured feed variants, normalizes their
// entries into event records, and deduplicates titles within the run.
//
// The walk is fully sequential: one request at a time, a bounded timeout
// per request, and a politeness pause after each detail-page fetch. A
// failed or empty variant is logged and skipped; nothing aborts the run.
package scraper
