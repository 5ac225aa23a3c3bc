package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dcworkshops/event-scraper/internal/calendar"
	"github.com/dcworkshops/event-scraper/internal/classify"
	"github.com/dcworkshops/event-scraper/internal/config"
	"github.com/dcworkshops/event-scraper/internal/event"
	"github.com/dcworkshops/event-scraper/internal/filter"
	"github.com/dcworkshops/event-scraper/internal/logger"
	"github.com/dcworkshops/event-scraper/internal/scraper"
	"github.com/dcworkshops/event-scraper/internal/source"
	"github.com/dcworkshops/event-scraper/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const outputPrefix = "workshops"

var (
	flagSource      string
	flagOutDir      string
	flagRules       string
	flagFormat      string
	flagICS         bool
	flagKidFriendly bool
	flagFreeOnly    bool
	flagLocations   []string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-scraper",
		Short: "Scrape DC institution event feeds into normalized JSON",
		Long: `Fetches event-listing RSS feeds from DC Public Library branches and the
Smithsonian museums, extracts normalized workshop records (date, time,
price, location, age band) from the description text, drops past and
duplicate events, and writes one timestamped JSON file per run.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagSource, "source", "all", "Source to scrape: library, museum or all")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Output directory (default: SCRAPER_OUTPUT_DIR or current dir)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "YAML file overriding the classifier rule table")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagICS, "ics", false, "Also write an iCalendar file")
	cmd.Flags().BoolVar(&flagKidFriendly, "kid-friendly", false, "Keep only kid-friendly events")
	cmd.Flags().BoolVar(&flagFreeOnly, "free-only", false, "Keep only free events")
	cmd.Flags().StringArrayVar(&flagLocations, "location", nil, "Keep only events matching a location substring (repeatable)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and per-event output")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	rules := classify.DefaultRules()
	if flagRules != "" {
		rules, err = classify.LoadRules(flagRules)
		if err != nil {
			return fmt.Errorf("loading rules: %w", err)
		}
	}

	sources, err := selectSources(flagSource)
	if err != nil {
		return err
	}

	outDir := cfg.OutputDir
	if flagOutDir != "" {
		outDir = flagOutDir
	}
	store, err := storage.New(outDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	logger.Info("Starting scrape", logger.Fields{
		"sources": sourceNames(sources),
	})

	walker := scraper.New(rules, scraper.Options{
		FeedTimeout:   cfg.FeedTimeout,
		DetailTimeout: cfg.DetailTimeout,
		Delay:         cfg.FetchDelay,
		UserAgent:     cfg.UserAgent,
	})

	startedAt := time.Now()
	events := walker.Run(sources)

	resultFilter := &filter.Filter{
		KidFriendly: flagKidFriendly,
		FreeOnly:    flagFreeOnly,
		Locations:   flagLocations,
	}
	if !resultFilter.IsEmpty() {
		logger.Info("Applying result filter", logger.Fields{
			"filter": resultFilter.String(),
		})
		events = resultFilter.Apply(events)
	}
	event.SortByDate(events)

	summary := Summarize(events, sourceNames(sources), startedAt)

	if len(events) == 0 {
		logger.Warn("No workshops found", nil)
	}

	// Persistence failure is logged, not fatal; the scrape itself ran.
	path, err := store.SaveEvents(events, outputPrefix, startedAt)
	if err != nil {
		logger.Error("Could not save output file", logger.Fields{
			"dir": outDir,
		}, err)
	} else {
		summary.OutputFile = path
		logger.Info("Saved output", logger.Fields{
			"path":   path,
			"events": len(events),
		})
	}

	if flagICS {
		icsPath, err := store.SaveICS(calendar.GenerateICS(events), outputPrefix, startedAt)
		if err != nil {
			logger.Error("Could not save calendar file", logger.Fields{
				"dir": outDir,
			}, err)
		} else {
			summary.CalendarFile = icsPath
		}
	}

	logger.Debug("Run metrics", logger.Fields{
		"metrics": logger.GetMetricsSnapshot(),
	})

	if err := WriteOutput(os.Stdout, summary, events, format, flagVerbose); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// selectSources resolves the --source flag.
func selectSources(name string) ([]*source.Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "all" {
		return source.All(), nil
	}
	src := source.ByName(name)
	if src == nil {
		return nil, fmt.Errorf("unknown source: %s (must be 'library', 'museum' or 'all')", name)
	}
	return []*source.Source{src}, nil
}

func sourceNames(sources []*source.Source) []string {
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	return names
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
