package extract

import (
	"strings"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	mapset "github.com/deckarep/golang-set/v2"
)

// ServiceFromDomainName returns the service part of a domain name, e.g.
// "_ipp._tcp" for "_ipp._tcp.example.com". Both leading labels must start with
// an underscore; anything else is a *entity.FormatError.
func ServiceFromDomainName(name string) (string, error) {
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return "", &entity.FormatError{Name: name}
	}
	if !strings.HasPrefix(labels[0], "_") {
		return "", &entity.FormatError{Name: name, Reason: "service name label does not start with an underscore"}
	}
	if !strings.HasPrefix(labels[1], "_") {
		return "", &entity.FormatError{Name: name, Reason: "protocol label does not start with an underscore"}
	}
	return labels[0] + "." + labels[1], nil
}

// ServicesForRecord returns every distinct service name advertised by a record
// across all of its probes. NAPTR services are parsed from the replacement name.
func ServicesForRecord(record *entity.ScanRecord) (mapset.Set[string], error) {
	names := mapset.NewSet[string]()
	for _, m := range record.ServiceMaps() {
		for service := range m.Services {
			names.Add(service)
		}
	}

	if record.NAPTRProbe != nil {
		for _, naptr := range record.NAPTRProbe.NAPTRs {
			if naptr == nil {
				continue
			}
			service, err := ServiceFromDomainName(naptr.Replacement)
			if err != nil {
				return nil, err
			}
			names.Add(service)
		}
	}

	return names, nil
}
