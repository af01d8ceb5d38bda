package repository

import "github.com/WangYihang/sdscan-analytics/pkg/domain/entity"

// RecordSource loads scan records
type RecordSource interface {
	// Load reads every record from path ("-" for stdin)
	Load(path string) ([]*entity.ScanRecord, error)
	// Duplicates returns how many records of the last load repeated an earlier QName
	Duplicates() int
}

// RecordWriter writes scan records
type RecordWriter interface {
	// Write writes a single record
	Write(record *entity.ScanRecord) error
	// Flush ensures all buffered data is written
	Flush() error
	// Close closes the writer
	Close() error
}

// DuplicateFilter remembers names it has seen
type DuplicateFilter interface {
	// TestAndAdd reports whether name was probably seen before and records it
	TestAndAdd(name string) bool
}

// LoadObserver is notified as the loader makes progress
type LoadObserver interface {
	// OnRecord is called after each decoded record
	OnRecord()
	// OnDone is called once loading finishes, successfully or not
	OnDone()
}
