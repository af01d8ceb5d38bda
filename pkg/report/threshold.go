package report

import (
	"github.com/WangYihang/sdscan-analytics/pkg/aggregate"
)

// PlotPoint is one line of plot output
type PlotPoint struct {
	Threshold int
	Count     int
}

// countAbove counts services advertised by more than threshold domains
func countAbove(entries []aggregate.ServiceDomains, threshold int) int {
	count := 0
	for _, entry := range entries {
		if entry.Domains.Cardinality() > threshold {
			count++
		}
	}
	return count
}

// Plot sweeps the threshold upward from 1. Each step counts the services with
// more than t domains, then labels the point with t+1. The sweep ends with the
// first point whose count is zero, so the result is never empty.
func Plot(entries []aggregate.ServiceDomains) []PlotPoint {
	var points []PlotPoint
	for threshold := 1; ; threshold++ {
		count := countAbove(entries, threshold)
		points = append(points, PlotPoint{Threshold: threshold + 1, Count: count})
		if count == 0 {
			return points
		}
	}
}

// Scan returns every service advertised by more than start domains, sweeping
// the threshold upward until no service clears it. Services are returned in
// the order of entries.
func Scan(entries []aggregate.ServiceDomains, start int) []string {
	seen := make(map[string]bool)
	var services []string
	for threshold := start; ; threshold++ {
		count := 0
		for _, entry := range entries {
			if entry.Domains.Cardinality() > threshold {
				count++
				if !seen[entry.Service] {
					seen[entry.Service] = true
					services = append(services, entry.Service)
				}
			}
		}
		if count == 0 {
			return services
		}
	}
}
