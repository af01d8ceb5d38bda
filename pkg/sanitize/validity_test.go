package sanitize

import (
	"testing"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
)

func TestIsSRVValid(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected bool
	}{
		{"hostname", "printer.example.com.", true},
		{"root", ".", false},
		{"empty", "", false},
		{"blank", "  \t", false},
		{"padded root", " . ", true},
		{"single label", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance := &entity.ServiceInstance{Target: tt.target}
			if result := IsSRVValid(instance); result != tt.expected {
				t.Errorf("IsSRVValid(%q) = %v, want %v", tt.target, result, tt.expected)
			}
		})
	}
}

func TestIsNAPTRValid(t *testing.T) {
	one := []*entity.ServiceInstance{{Target: "."}}

	tests := []struct {
		name     string
		naptr    entity.NAPTRInfo
		expected bool
	}{
		{"upper S", entity.NAPTRInfo{Flags: "S", Replacement: "_sip._udp.x.com.", Services: one}, true},
		{"lower s", entity.NAPTRInfo{Flags: "s", Replacement: "_sip._udp.x.com.", Services: one}, true},
		{"mixed flags", entity.NAPTRInfo{Flags: "As", Replacement: "_sip._udp.x.com.", Services: one}, true},
		{"no s flag", entity.NAPTRInfo{Flags: "U", Replacement: "_sip._udp.x.com.", Services: one}, false},
		{"empty flags", entity.NAPTRInfo{Flags: "", Replacement: "_sip._udp.x.com.", Services: one}, false},
		{"blank replacement", entity.NAPTRInfo{Flags: "S", Replacement: "  ", Services: one}, false},
		{"nil services", entity.NAPTRInfo{Flags: "S", Replacement: "_sip._udp.x.com."}, false},
		{"empty services", entity.NAPTRInfo{Flags: "S", Replacement: "_sip._udp.x.com.", Services: []*entity.ServiceInstance{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsNAPTRValid(&tt.naptr); result != tt.expected {
				t.Errorf("IsNAPTRValid(%+v) = %v, want %v", tt.naptr, result, tt.expected)
			}
		})
	}
}
