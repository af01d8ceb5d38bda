package report

import (
	"sort"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
)

// TxtEntry is a service instance that carries TXT metadata
type TxtEntry struct {
	QName    string
	Probe    string
	Service  string
	Instance *entity.ServiceInstance
}

// TxtEntries collects the DNSSD, PTR and SRV instances with TXT data, record by
// record. Within a probe, services are visited in name order.
func TxtEntries(records []*entity.ScanRecord) []TxtEntry {
	var entries []TxtEntry
	for _, record := range records {
		for _, m := range record.ServiceMaps() {
			services := make([]string, 0, len(m.Services))
			for service := range m.Services {
				services = append(services, service)
			}
			sort.Strings(services)

			for _, service := range services {
				for _, instance := range m.Services[service] {
					if instance.HasTxt() {
						entries = append(entries, TxtEntry{
							QName:    record.QName,
							Probe:    m.Probe,
							Service:  service,
							Instance: instance,
						})
					}
				}
			}
		}
	}
	return entries
}
