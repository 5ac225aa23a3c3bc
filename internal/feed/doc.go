// Package feed decodes institution RSS payloads into raw feed items.
//
// The upstream feeds are not reliably well-formed XML, so decoding runs
// through tiered fallback: a structured RSS parser first, then a permissive
// HTML-mode parse, then a generic token walk, and finally raw regex
// extraction of <item> blocks. The first tier that yields items wins.
package feed
