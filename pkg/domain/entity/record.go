package entity

import "encoding/json"

// ValidationResult is the scanner's DNSSEC validation outcome for an RRset.
// It is not interpreted here and is written back exactly as it was read.
type ValidationResult = json.RawMessage

// ServiceInstance is one SRV-like service endpoint reported by a probe
type ServiceInstance struct {
	Name     string
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
	Addrs    []string `json:",omitempty"`
	Txt      []string

	SRVValidated  ValidationResult `json:",omitempty"`
	AValidated    ValidationResult `json:",omitempty"`
	AAAAValidated ValidationResult `json:",omitempty"`
}

// HasTxt reports whether the instance carries TXT metadata
func (si *ServiceInstance) HasTxt() bool {
	return len(si.Txt) > 0
}

// ServiceMap maps a service name (e.g. _ipp._tcp) to its instances
type ServiceMap map[string][]*ServiceInstance

// DNSSDProbe holds the results of DNS-SD browsing
type DNSSDProbe struct {
	ServiceBrowsers       []string `json:",omitempty"`
	DefaultServiceBrowser string   `json:",omitempty"`
	LegacyServiceBrowsers []string `json:",omitempty"`
	Services              ServiceMap
}

// ServiceProbe holds the results of a PTR or SRV probe
type ServiceProbe struct {
	Services ServiceMap
}

// NAPTRInfo is one NAPTR record and the SRV instances found at its replacement
type NAPTRInfo struct {
	Order       uint16
	Preference  uint16
	Flags       string
	Service     string
	Regexp      string
	Replacement string

	NAPTRValidated ValidationResult `json:",omitempty"`

	Services []*ServiceInstance
}

// NAPTRProbe holds the results of a NAPTR probe
type NAPTRProbe struct {
	NAPTRs []*NAPTRInfo
}

// ScanRecord is one line of scanner output. A nil probe means the probe found nothing.
type ScanRecord struct {
	Rank       int `json:",omitempty"`
	QName      string
	DNSSDProbe *DNSSDProbe
	PTRProbe   *ServiceProbe
	SRVProbe   *ServiceProbe
	NAPTRProbe *NAPTRProbe
}

// HasResults returns true if at least one probe has result data
func (r *ScanRecord) HasResults() bool {
	return r.DNSSDProbe != nil || r.PTRProbe != nil || r.SRVProbe != nil || r.NAPTRProbe != nil
}

// Probe names used in logs, metrics and statistics
const (
	ProbeDNSSD = "dnssd"
	ProbePTR   = "ptr"
	ProbeSRV   = "srv"
	ProbeNAPTR = "naptr"
)

// ServiceMaps returns the non-nil service maps of the record keyed by probe name,
// in DNSSD, PTR, SRV order.
func (r *ScanRecord) ServiceMaps() []NamedServiceMap {
	var maps []NamedServiceMap
	if r.DNSSDProbe != nil {
		maps = append(maps, NamedServiceMap{Probe: ProbeDNSSD, Services: r.DNSSDProbe.Services})
	}
	if r.PTRProbe != nil {
		maps = append(maps, NamedServiceMap{Probe: ProbePTR, Services: r.PTRProbe.Services})
	}
	if r.SRVProbe != nil {
		maps = append(maps, NamedServiceMap{Probe: ProbeSRV, Services: r.SRVProbe.Services})
	}
	return maps
}

// NamedServiceMap pairs a service map with the probe that produced it
type NamedServiceMap struct {
	Probe    string
	Services ServiceMap
}
