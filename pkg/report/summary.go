package report

import (
	"strings"

	"github.com/WangYihang/sdscan-analytics/pkg/aggregate"
	"golang.org/x/net/publicsuffix"
)

// ServiceCount is a service and the number of domains advertising it
type ServiceCount struct {
	Service string
	Domains int
}

// Summary describes one analysis run
type Summary struct {
	RecordsLoaded      int
	RecordsKept        int
	Domains            int
	RegistrableDomains int
	DistinctServices   int
	TopServices        []ServiceCount
}

// Summarize builds a summary from the aggregations. top limits TopServices.
func Summarize(loaded int, byDomain []aggregate.DomainServices, byService []aggregate.ServiceDomains, top int) *Summary {
	s := &Summary{
		RecordsLoaded:    loaded,
		RecordsKept:      len(byDomain),
		DistinctServices: len(byService),
	}

	domains := make(map[string]bool)
	roots := make(map[string]bool)
	for _, entry := range byDomain {
		domain := strings.ToLower(strings.TrimSuffix(entry.Domain, "."))
		if domains[domain] {
			continue
		}
		domains[domain] = true
		if root, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
			roots[root] = true
		} else {
			roots[domain] = true
		}
	}
	s.Domains = len(domains)
	s.RegistrableDomains = len(roots)

	for i, entry := range byService {
		if i >= top {
			break
		}
		s.TopServices = append(s.TopServices, ServiceCount{Service: entry.Service, Domains: entry.Domains.Cardinality()})
	}
	return s
}
