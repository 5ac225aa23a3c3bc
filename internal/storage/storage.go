package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dcworkshops/event-scraper/internal/event"
)

// Storage writes run output files into a data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage instance, expanding ~ and creating the directory
// if needed.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// FileName returns the timestamped output name for a run.
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.json", prefix, now.Format("20060102_150405"))
}

// SaveEvents writes the run's events and returns the output path. A nil
// slice is written as an empty JSON array.
func (s *Storage) SaveEvents(events []*event.Event, prefix string, now time.Time) (string, error) {
	path := filepath.Join(s.dataDir, FileName(prefix, now))

	data, err := Encode(events)
	if err != nil {
		return "", fmt.Errorf("encoding events: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}
	return path, nil
}

// SaveICS writes an iCalendar rendering next to the JSON output.
func (s *Storage) SaveICS(ics, prefix string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s_%s.ics", prefix, now.Format("20060102_150405"))
	path := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(path, []byte(ics), 0644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}
	return path, nil
}

// Encode serializes events with two-space indentation and HTML escaping
// disabled.
func Encode(events []*event.Event) ([]byte, error) {
	if events == nil {
		events = []*event.Event{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
