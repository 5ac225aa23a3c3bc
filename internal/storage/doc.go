// Package storage persists one run's events as a timestamped JSON file.
//
// The output is an indented JSON array with HTML escaping disabled so
// non-ASCII characters and markup fragments survive literally. An empty
// run still produces a valid [] file.
package storage
