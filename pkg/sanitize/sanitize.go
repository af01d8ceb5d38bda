// Package sanitize removes probe data that does not describe a real service.
//
// Sanitizing never modifies its input. Output records point at new probe and NAPTR
// values; service instances are shared with the input since they are never changed.
package sanitize

import (
	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
)

// Stats counts what the last Sanitize call removed
type Stats struct {
	RecordsIn        int
	RecordsKept      int
	InstancesDropped map[string]int
	NAPTRsDropped    int
	ProbesCleared    map[string]int
}

// RecordsDropped returns the number of records removed entirely
func (s Stats) RecordsDropped() int {
	return s.RecordsIn - s.RecordsKept
}

// Sanitizer filters invalid entries out of scan records
type Sanitizer struct {
	stats Stats
}

// NewSanitizer creates sanitizer
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Stats returns the statistics of the last Sanitize call
func (s *Sanitizer) Stats() Stats {
	return s.stats
}

// Sanitize is a shortcut for NewSanitizer().Sanitize(records)
func Sanitize(records []*entity.ScanRecord) []*entity.ScanRecord {
	return NewSanitizer().Sanitize(records)
}

// Sanitize returns the records that still have probe data after invalid SRV
// instances, invalid NAPTRs, empty services and empty probes are removed.
// Input order is preserved.
func (s *Sanitizer) Sanitize(records []*entity.ScanRecord) []*entity.ScanRecord {
	s.stats = Stats{
		RecordsIn:        len(records),
		InstancesDropped: make(map[string]int),
		ProbesCleared:    make(map[string]int),
	}

	result := make([]*entity.ScanRecord, 0, len(records))
	for _, record := range records {
		if sanitized := s.sanitizeRecord(record); sanitized != nil {
			result = append(result, sanitized)
		}
	}
	s.stats.RecordsKept = len(result)
	return result
}

func (s *Sanitizer) sanitizeRecord(r *entity.ScanRecord) *entity.ScanRecord {
	out := &entity.ScanRecord{Rank: r.Rank, QName: r.QName}

	if r.DNSSDProbe != nil {
		if services := s.sanitizeServiceMap(entity.ProbeDNSSD, r.DNSSDProbe.Services); len(services) > 0 {
			probe := *r.DNSSDProbe
			probe.Services = services
			out.DNSSDProbe = &probe
		} else {
			s.stats.ProbesCleared[entity.ProbeDNSSD]++
		}
	}

	if r.PTRProbe != nil {
		if services := s.sanitizeServiceMap(entity.ProbePTR, r.PTRProbe.Services); len(services) > 0 {
			out.PTRProbe = &entity.ServiceProbe{Services: services}
		} else {
			s.stats.ProbesCleared[entity.ProbePTR]++
		}
	}

	if r.SRVProbe != nil {
		if services := s.sanitizeServiceMap(entity.ProbeSRV, r.SRVProbe.Services); len(services) > 0 {
			out.SRVProbe = &entity.ServiceProbe{Services: services}
		} else {
			s.stats.ProbesCleared[entity.ProbeSRV]++
		}
	}

	if r.NAPTRProbe != nil {
		if naptrs := s.sanitizeNAPTRs(r.NAPTRProbe.NAPTRs); len(naptrs) > 0 {
			out.NAPTRProbe = &entity.NAPTRProbe{NAPTRs: naptrs}
		} else {
			s.stats.ProbesCleared[entity.ProbeNAPTR]++
		}
	}

	if !out.HasResults() {
		return nil
	}
	return out
}

// sanitizeServiceMap keeps valid instances only. Services left without
// instances are omitted, so every key of the result maps to a non-empty list.
func (s *Sanitizer) sanitizeServiceMap(probe string, services entity.ServiceMap) entity.ServiceMap {
	result := make(entity.ServiceMap)
	for service, instances := range services {
		valid := s.filterInstances(probe, instances)
		if len(valid) > 0 {
			result[service] = valid
		}
	}
	return result
}

// sanitizeNAPTRs keeps valid NAPTRs that still have a valid nested instance
func (s *Sanitizer) sanitizeNAPTRs(naptrs []*entity.NAPTRInfo) []*entity.NAPTRInfo {
	var result []*entity.NAPTRInfo
	for _, naptr := range naptrs {
		if naptr == nil || !IsNAPTRValid(naptr) {
			s.stats.NAPTRsDropped++
			continue
		}

		services := s.filterInstances(entity.ProbeNAPTR, naptr.Services)
		if len(services) == 0 {
			s.stats.NAPTRsDropped++
			continue
		}

		kept := *naptr
		kept.Services = services
		result = append(result, &kept)
	}
	return result
}

func (s *Sanitizer) filterInstances(probe string, instances []*entity.ServiceInstance) []*entity.ServiceInstance {
	var valid []*entity.ServiceInstance
	for _, instance := range instances {
		if instance != nil && IsSRVValid(instance) {
			valid = append(valid, instance)
		} else {
			s.stats.InstancesDropped[probe]++
		}
	}
	return valid
}
