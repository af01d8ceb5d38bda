package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/WangYihang/sdscan-analytics/pkg/application"
	"github.com/WangYihang/sdscan-analytics/pkg/interface/presenter"
	"github.com/jessevdk/go-flags"
)

// Config holds all application configuration
type Config struct {
	// Input/Output
	ScanFile     string `short:"i" long:"scan-file" description:"Scan results file (one JSON record per line)" default:"-"`
	SanitizedOut string `long:"sanitized-out" description:"Write sanitized records as JSON lines to this file"`
	MetricsFile  string `long:"metrics-file" description:"Write run metrics in Prometheus textfile format to this file"`

	// Analysis
	Mode      string `short:"m" long:"mode" description:"Report to print" choice:"none" choice:"plot" choice:"scan" choice:"summary" choice:"services" choice:"domains" default:"none"`
	Threshold int    `short:"t" long:"threshold" description:"Starting domain count threshold for scan mode" default:"1"`
	Top       int    `long:"top" description:"Number of services listed by the summary" default:"10"`

	// Output formats
	NoTxt      bool   `long:"no-txt" description:"Do not list TXT records of the scanned services"`
	TxtFormat  string `long:"txt-format" description:"TXT record listing format" choice:"plain" choice:"zone" default:"plain"`
	PlotFormat string `long:"plot-format" description:"Plot output format" choice:"csv" choice:"bars" default:"csv"`

	// Dedup
	BloomFilterSize uint64  `long:"bloom-size" description:"Bloom filter size (number of expected records)" default:"1000000"`
	BloomFilterFP   float64 `long:"bloom-fp" description:"Bloom filter false positive rate" default:"0.01"`

	// UI
	Progress bool `long:"progress" description:"Show a progress bar while loading the scan file"`
	Verbose  bool `short:"v" long:"verbose" description:"Enable debug logging"`
	Version  bool `long:"version" description:"Print version and exit"`
}

// ParseFlags parses command line flags
func ParseFlags() (*Config, error) {
	cfg, err := ParseArgs(os.Args[1:])
	if err != nil {
		if flags.WroteHelp(err) {
			// Help has been printed by the library, exit cleanly
			os.Exit(0)
		}
		return nil, err
	}
	return cfg, nil
}

// ParseArgs parses and validates args
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	parser := flags.NewParser(cfg, flags.Default)
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if cfg.Version {
		return cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !slices.Contains(application.Modes, c.Mode) {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if c.TxtFormat != presenter.TxtFormatPlain && c.TxtFormat != presenter.TxtFormatZone {
		return fmt.Errorf("unknown txt format %q", c.TxtFormat)
	}

	if c.PlotFormat != presenter.PlotFormatCSV && c.PlotFormat != presenter.PlotFormatBars {
		return fmt.Errorf("unknown plot format %q", c.PlotFormat)
	}

	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be >= 0, got %d", c.Threshold)
	}

	if c.Top <= 0 {
		return fmt.Errorf("top must be > 0, got %d", c.Top)
	}

	if c.BloomFilterSize == 0 {
		return fmt.Errorf("bloom filter size must be > 0")
	}

	if c.BloomFilterFP <= 0 || c.BloomFilterFP >= 1 {
		return fmt.Errorf("bloom filter false positive rate must be between 0 and 1, got %f", c.BloomFilterFP)
	}

	return nil
}

// Logger returns the structured logger selected by the configuration
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
