package input

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	"github.com/WangYihang/sdscan-analytics/pkg/domain/repository"
)

const maxLineSize = 64 * 1024 * 1024

// Loader loads scan records from newline-delimited JSON
type Loader struct {
	duplicates repository.DuplicateFilter
	observer   repository.LoadObserver
	logger     *slog.Logger
	duplicated int
}

// Option configures a Loader
type Option func(*Loader)

// WithDuplicateFilter reports repeated QNames through filter
func WithDuplicateFilter(filter repository.DuplicateFilter) Option {
	return func(l *Loader) { l.duplicates = filter }
}

// WithObserver notifies observer of load progress
func WithObserver(observer repository.LoadObserver) Option {
	return func(l *Loader) { l.observer = observer }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads records from file, "-" reads stdin
func (l *Loader) Load(path string) ([]*entity.ScanRecord, error) {
	if path == "-" {
		return l.Read("<stdin>", os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &entity.LoadError{Path: path, Err: err}
	}
	defer file.Close()

	return l.Read(path, file)
}

// Duplicates returns how many records of the last load probably repeated an
// earlier QName. It is always zero without a duplicate filter.
func (l *Loader) Duplicates() int {
	return l.duplicated
}

// Read decodes one record per non-empty line of r. Any malformed line aborts the
// whole read and no records are returned.
func (l *Loader) Read(name string, r io.Reader) ([]*entity.ScanRecord, error) {
	if l.observer != nil {
		defer l.observer.OnDone()
	}
	l.duplicated = 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []*entity.ScanRecord
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		record := &entity.ScanRecord{}
		if err := json.Unmarshal(line, record); err != nil {
			return nil, &entity.LoadError{Path: name, Line: lineNum, Err: err}
		}

		if l.duplicates != nil && l.duplicates.TestAndAdd(record.QName) {
			l.duplicated++
			l.logger.Debug("duplicate qname", "qname", record.QName, "line", lineNum)
		}

		records = append(records, record)
		if l.observer != nil {
			l.observer.OnRecord()
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &entity.LoadError{Path: name, Line: lineNum + 1, Err: err}
	}

	return records, nil
}
