package sanitize

import (
	"strings"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
)

// IsSRVValid reports whether an instance represents a real service. A target of
// "." or blank means no service of that type exists.
func IsSRVValid(instance *entity.ServiceInstance) bool {
	return instance.Target != "." && strings.TrimSpace(instance.Target) != ""
}

// IsNAPTRValid reports whether a NAPTR entry is an S-flagged delegation with a
// non-empty replacement and at least one nested service. The nested services are
// counted before they are filtered.
func IsNAPTRValid(naptr *entity.NAPTRInfo) bool {
	return strings.Contains(strings.ToLower(naptr.Flags), "s") &&
		strings.TrimSpace(naptr.Replacement) != "" &&
		len(naptr.Services) > 0
}
