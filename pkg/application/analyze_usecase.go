package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/WangYihang/sdscan-analytics/pkg/aggregate"
	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	"github.com/WangYihang/sdscan-analytics/pkg/domain/repository"
	"github.com/WangYihang/sdscan-analytics/pkg/infrastructure/storage"
	"github.com/WangYihang/sdscan-analytics/pkg/metrics"
	"github.com/WangYihang/sdscan-analytics/pkg/report"
	"github.com/WangYihang/sdscan-analytics/pkg/sanitize"
)

// Report modes
const (
	ModeNone     = "none"
	ModePlot     = "plot"
	ModeScan     = "scan"
	ModeSummary  = "summary"
	ModeServices = "services"
	ModeDomains  = "domains"
)

// Modes lists every supported report mode
var Modes = []string{ModeNone, ModePlot, ModeScan, ModeSummary, ModeServices, ModeDomains}

// Config holds the use case configuration
type Config struct {
	ScanFile     string
	Mode         string
	Threshold    int
	ShowTxt      bool
	Top          int
	SanitizedOut string
	MetricsFile  string
}

// Presenter renders analysis results
type Presenter interface {
	RenderTxt(entries []report.TxtEntry) error
	RenderPlot(points []report.PlotPoint) error
	RenderScan(services []string) error
	RenderServicesByDomain(entries []aggregate.DomainServices) error
	RenderDomainsByService(entries []aggregate.ServiceDomains) error
	RenderSummary(summary *report.Summary) error
}

// WriterFactory opens a record writer for path
type WriterFactory func(path string) (repository.RecordWriter, error)

// AnalyzeUseCase loads a scan file, sanitizes it and renders the selected report
type AnalyzeUseCase struct {
	config    Config
	source    repository.RecordSource
	sanitizer *sanitize.Sanitizer
	presenter Presenter
	metrics   *metrics.Metrics
	newWriter WriterFactory
	logger    *slog.Logger
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(
	config Config,
	source repository.RecordSource,
	presenter Presenter,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AnalyzeUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	return &AnalyzeUseCase{
		config:    config,
		source:    source,
		sanitizer: sanitize.NewSanitizer(),
		presenter: presenter,
		metrics:   m,
		newWriter: storage.NewRecordWriter,
		logger:    logger,
	}
}

// SetWriterFactory replaces how the sanitized output file is opened
func (uc *AnalyzeUseCase) SetWriterFactory(factory WriterFactory) {
	uc.newWriter = factory
}

// Execute runs the whole pipeline. Output rendered before a failure is not
// retracted.
func (uc *AnalyzeUseCase) Execute(ctx context.Context) error {
	if uc.config.MetricsFile != "" {
		defer func() {
			if werr := uc.metrics.WriteToTextfile(uc.config.MetricsFile); werr != nil {
				uc.logger.Warn("failed to write metrics", "path", uc.config.MetricsFile, "error", werr)
			}
		}()
	}

	records, err := uc.load()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	records = uc.sanitize(records)
	loaded := uc.sanitizer.Stats().RecordsIn

	if uc.config.SanitizedOut != "" {
		if err := uc.writeSanitized(records); err != nil {
			return fmt.Errorf("failed to write sanitized records: %w", err)
		}
	}

	if uc.config.ShowTxt {
		if err := uc.presenter.RenderTxt(report.TxtEntries(records)); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	defer uc.metrics.ObserveStage("report", start)

	switch uc.config.Mode {
	case ModeNone, "":
		return nil
	case ModePlot:
		byService, err := uc.domainsByService(records)
		if err != nil {
			return err
		}
		return uc.presenter.RenderPlot(report.Plot(byService))
	case ModeScan:
		byService, err := uc.domainsByService(records)
		if err != nil {
			return err
		}
		return uc.presenter.RenderScan(report.Scan(byService, uc.config.Threshold))
	case ModeServices:
		byDomain, err := aggregate.ServicesByDomain(records)
		if err != nil {
			return err
		}
		return uc.presenter.RenderServicesByDomain(byDomain)
	case ModeDomains:
		byService, err := uc.domainsByService(records)
		if err != nil {
			return err
		}
		return uc.presenter.RenderDomainsByService(byService)
	case ModeSummary:
		byDomain, err := aggregate.ServicesByDomain(records)
		if err != nil {
			return err
		}
		byService, err := uc.domainsByService(records)
		if err != nil {
			return err
		}
		return uc.presenter.RenderSummary(report.Summarize(loaded, byDomain, byService, uc.config.Top))
	default:
		return fmt.Errorf("unknown mode %q", uc.config.Mode)
	}
}

func (uc *AnalyzeUseCase) load() ([]*entity.ScanRecord, error) {
	start := time.Now()
	records, err := uc.source.Load(uc.config.ScanFile)
	uc.metrics.ObserveStage("load", start)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordsLoaded.Add(float64(len(records)))
	uc.metrics.DuplicateQNames.Add(float64(uc.source.Duplicates()))
	uc.logger.Info("loaded scan file", "path", uc.config.ScanFile, "records", len(records), "duplicates", uc.source.Duplicates())
	return records, nil
}

func (uc *AnalyzeUseCase) sanitize(records []*entity.ScanRecord) []*entity.ScanRecord {
	start := time.Now()
	records = uc.sanitizer.Sanitize(records)
	uc.metrics.ObserveStage("sanitize", start)

	stats := uc.sanitizer.Stats()
	uc.metrics.RecordsKept.Add(float64(stats.RecordsKept))
	uc.metrics.RecordsDropped.Add(float64(stats.RecordsDropped()))
	uc.metrics.NAPTRsDropped.Add(float64(stats.NAPTRsDropped))
	for probe, n := range stats.InstancesDropped {
		uc.metrics.InstancesDropped.WithLabelValues(probe).Add(float64(n))
	}
	uc.logger.Info("sanitized records",
		"kept", stats.RecordsKept,
		"dropped", stats.RecordsDropped(),
		"naptrs_dropped", stats.NAPTRsDropped,
	)
	uc.logger.Debug("sanitizer details", "instances_dropped", stats.InstancesDropped, "probes_cleared", stats.ProbesCleared)
	return records
}

func (uc *AnalyzeUseCase) writeSanitized(records []*entity.ScanRecord) error {
	w, err := uc.newWriter(uc.config.SanitizedOut)
	if err != nil {
		return err
	}
	if err := storage.WriteAll(w, records); err != nil {
		return err
	}
	uc.logger.Info("wrote sanitized records", "path", uc.config.SanitizedOut, "records", len(records))
	return nil
}

func (uc *AnalyzeUseCase) domainsByService(records []*entity.ScanRecord) ([]aggregate.ServiceDomains, error) {
	byService, err := aggregate.DomainsByService(records)
	if err != nil {
		return nil, err
	}
	uc.metrics.DistinctServices.Set(float64(len(byService)))
	uc.logger.Info("aggregated services", "distinct_services", len(byService))
	return byService, nil
}
