package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/WangYihang/sdscan-analytics/pkg/application"
	"github.com/WangYihang/sdscan-analytics/pkg/common"
	"github.com/WangYihang/sdscan-analytics/pkg/dedup"
	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	"github.com/WangYihang/sdscan-analytics/pkg/input"
	"github.com/WangYihang/sdscan-analytics/pkg/interface/presenter"
	"github.com/WangYihang/sdscan-analytics/pkg/metrics"
	"github.com/WangYihang/sdscan-analytics/pkg/util"
)

// Assembler assembles all components for the application
type Assembler struct {
	config *Config
	stdout io.Writer
	stderr io.Writer
}

// NewAssembler creates a new assembler writing reports to stdout and
// diagnostics to stderr
func NewAssembler(config *Config) *Assembler {
	return &Assembler{config: config, stdout: os.Stdout, stderr: os.Stderr}
}

// WithOutput redirects report and diagnostic output
func (a *Assembler) WithOutput(stdout, stderr io.Writer) *Assembler {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Logger returns the logger shared by all assembled components
func (a *Assembler) Logger() *slog.Logger {
	return a.config.Logger(a.stderr)
}

// AssembleUseCase assembles the analyze use case with all dependencies
func (a *Assembler) AssembleUseCase() (*application.AnalyzeUseCase, error) {
	logger := a.Logger()
	width := common.TerminalWidth()

	// Create the record source
	filter := dedup.NewFilter(uint(a.config.BloomFilterSize), a.config.BloomFilterFP)
	options := []input.Option{
		input.WithDuplicateFilter(filter),
		input.WithLogger(logger),
	}
	if a.config.Progress && a.config.ScanFile != "-" {
		total, err := util.CountNumLines(a.config.ScanFile)
		if err != nil {
			return nil, &entity.LoadError{Path: a.config.ScanFile, Err: err}
		}
		progress := presenter.NewLoadProgress(a.stderr, filepath.Base(a.config.ScanFile), total, width)
		options = append(options, input.WithObserver(progress))
	}
	loader := input.NewLoader(options...)

	// Create presenter
	textPresenter := presenter.NewTextPresenter(a.stdout, presenter.Options{
		TxtFormat:  a.config.TxtFormat,
		PlotFormat: a.config.PlotFormat,
		Width:      width,
	})

	// Create use case
	useCase := application.NewAnalyzeUseCase(
		application.Config{
			ScanFile:     a.config.ScanFile,
			Mode:         a.config.Mode,
			Threshold:    a.config.Threshold,
			ShowTxt:      !a.config.NoTxt,
			Top:          a.config.Top,
			SanitizedOut: a.config.SanitizedOut,
			MetricsFile:  a.config.MetricsFile,
		},
		loader,
		textPresenter,
		metrics.New(),
		logger,
	)

	return useCase, nil
}
