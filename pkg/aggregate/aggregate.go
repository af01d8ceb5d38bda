// Package aggregate builds the service and domain mappings over a set of
// sanitized records.
package aggregate

import (
	"sort"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	"github.com/WangYihang/sdscan-analytics/pkg/extract"
	mapset "github.com/deckarep/golang-set/v2"
)

// DomainServices is the set of services advertised by one domain
type DomainServices struct {
	Domain   string
	Services mapset.Set[string]
}

// ServiceDomains is the set of domains advertising one service
type ServiceDomains struct {
	Service string
	Domains mapset.Set[string]
}

// DistinctServices returns the union of the services of all records
func DistinctServices(records []*entity.ScanRecord) (mapset.Set[string], error) {
	names := mapset.NewSet[string]()
	for _, record := range records {
		services, err := extract.ServicesForRecord(record)
		if err != nil {
			return nil, err
		}
		names = names.Union(services)
	}
	return names, nil
}

// ServicesByDomain returns one entry per record, in input order
func ServicesByDomain(records []*entity.ScanRecord) ([]DomainServices, error) {
	result := make([]DomainServices, 0, len(records))
	for _, record := range records {
		services, err := extract.ServicesForRecord(record)
		if err != nil {
			return nil, err
		}
		result = append(result, DomainServices{Domain: record.QName, Services: services})
	}
	return result, nil
}

// DomainsByService inverts ServicesByDomain. The result is ordered by the
// number of domains, largest first. Equally sized entries keep the order in
// which their services first appear, visiting each domain's services in
// lexical order.
func DomainsByService(records []*entity.ScanRecord) ([]ServiceDomains, error) {
	byDomain, err := ServicesByDomain(records)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var result []ServiceDomains
	for _, entry := range byDomain {
		services := entry.Services.ToSlice()
		sort.Strings(services)
		for _, service := range services {
			i, ok := index[service]
			if !ok {
				i = len(result)
				index[service] = i
				result = append(result, ServiceDomains{Service: service, Domains: mapset.NewSet[string]()})
			}
			result[i].Domains.Add(entry.Domain)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Domains.Cardinality() > result[j].Domains.Cardinality()
	})
	return result, nil
}
