package entity

import "fmt"

// LoadError is returned when a scan file line cannot be read or decoded
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FormatError is returned when a service name cannot be parsed from a domain name
type FormatError struct {
	Name   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot parse service from %q", e.Name)
	}
	return fmt.Sprintf("cannot parse service from %q: %s", e.Name, e.Reason)
}
