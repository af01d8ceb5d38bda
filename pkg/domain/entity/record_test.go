package entity

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestScanRecord_HasResults(t *testing.T) {
	tests := []struct {
		name     string
		record   ScanRecord
		expected bool
	}{
		{"no probes", ScanRecord{QName: "example.com."}, false},
		{"dnssd", ScanRecord{DNSSDProbe: &DNSSDProbe{}}, true},
		{"ptr", ScanRecord{PTRProbe: &ServiceProbe{}}, true},
		{"srv", ScanRecord{SRVProbe: &ServiceProbe{}}, true},
		{"naptr", ScanRecord{NAPTRProbe: &NAPTRProbe{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.record.HasResults(); result != tt.expected {
				t.Errorf("HasResults() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestScanRecord_Decode(t *testing.T) {
	line := `{"Rank":7,"QName":"x.com.","DNSSDProbe":{"ServiceBrowsers":["x.com."],"Services":{"_ipp._tcp":[{"Name":"p._ipp._tcp.x.com.","Port":631,"Target":"a.local.","Txt":["rp=ipp"],"SRVValidated":1}]}},"PTRProbe":null,"SRVProbe":null,"NAPTRProbe":{"NAPTRs":[{"Order":10,"Flags":"S","Replacement":"_sip._udp.x.com.","Services":null}]}}`

	var record ScanRecord
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if record.Rank != 7 || record.QName != "x.com." {
		t.Errorf("Rank, QName = %d, %s, want 7, x.com.", record.Rank, record.QName)
	}
	if record.PTRProbe != nil || record.SRVProbe != nil {
		t.Errorf("null probes should decode as nil")
	}

	instances := record.DNSSDProbe.Services["_ipp._tcp"]
	if len(instances) != 1 {
		t.Fatalf("len(instances) = %d, want 1", len(instances))
	}
	if instances[0].Port != 631 || !instances[0].HasTxt() {
		t.Errorf("instance = %+v, want port 631 with txt", instances[0])
	}

	if n := record.NAPTRProbe.NAPTRs[0]; n.Flags != "S" || n.Services != nil {
		t.Errorf("naptr = %+v, want flags S and nil services", n)
	}
}

func TestScanRecord_ServiceMaps(t *testing.T) {
	record := ScanRecord{
		DNSSDProbe: &DNSSDProbe{Services: ServiceMap{"_a._tcp": nil}},
		SRVProbe:   &ServiceProbe{Services: ServiceMap{"_b._tcp": nil}},
	}

	maps := record.ServiceMaps()
	if len(maps) != 2 {
		t.Fatalf("len(ServiceMaps()) = %d, want 2", len(maps))
	}
	if maps[0].Probe != ProbeDNSSD || maps[1].Probe != ProbeSRV {
		t.Errorf("probe order = %s, %s, want %s, %s", maps[0].Probe, maps[1].Probe, ProbeDNSSD, ProbeSRV)
	}
}

func TestLoadError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := error(&LoadError{Path: "scan.json", Line: 3, Err: cause})

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(LoadError, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Error() = %q, want line number", err.Error())
	}
}

func TestFormatError(t *testing.T) {
	err := &FormatError{Name: "example.com", Reason: "service name label does not start with an underscore"}
	want := `cannot parse service from "example.com": service name label does not start with an underscore`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
