package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	"github.com/WangYihang/sdscan-analytics/pkg/domain/repository"
)

// RecordWriter implements repository.RecordWriter as newline-delimited JSON
type RecordWriter struct {
	path    string
	file    *os.File
	buf     *bufio.Writer
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewRecordWriter creates a new record writer (use "-" for stdout)
func NewRecordWriter(path string) (repository.RecordWriter, error) {
	file := os.Stdout
	if path != "-" {
		var err error
		file, err = os.Create(path)
		if err != nil {
			return nil, err
		}
	}

	buf := bufio.NewWriter(file)
	return &RecordWriter{
		path:    path,
		file:    file,
		buf:     buf,
		encoder: json.NewEncoder(buf),
	}, nil
}

// Write writes a single record
func (w *RecordWriter) Write(record *entity.ScanRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.encoder.Encode(record)
}

// Flush ensures all buffered data is written
func (w *RecordWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.buf.Flush()
}

// Close flushes and closes the writer (does not close stdout)
func (w *RecordWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.path == "-" {
		return nil
	}
	return w.file.Close()
}

// WriteAll writes every record and closes the writer
func WriteAll(w repository.RecordWriter, records []*entity.ScanRecord) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
