package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/WangYihang/sdscan-analytics/pkg/domain/entity"
	"github.com/WangYihang/sdscan-analytics/pkg/input"
	"github.com/WangYihang/sdscan-analytics/pkg/sanitize"
)

func TestRecordWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sanitized.json")

	records := []*entity.ScanRecord{
		{
			Rank:  1,
			QName: "x.com.",
			DNSSDProbe: &entity.DNSSDProbe{
				Services: entity.ServiceMap{"_ipp._tcp": {{
					Name:         "p",
					Port:         631,
					Target:       "a.local.",
					Txt:          []string{"rp=ipp"},
					SRVValidated: entity.ValidationResult(`{"Secure":true,"Bogus":false}`),
					AValidated:   entity.ValidationResult(`{"Secure":false,"Bogus":false}`),
				}}},
			},
		},
		{
			Rank:  2,
			QName: "y.com.",
			NAPTRProbe: &entity.NAPTRProbe{NAPTRs: []*entity.NAPTRInfo{
				{
					Order:          10,
					Flags:          "S",
					Replacement:    "_sip._udp.y.com.",
					NAPTRValidated: entity.ValidationResult(`{"Secure":true}`),
					Services:       []*entity.ServiceInstance{{Target: "sip.y.com.", AAAAValidated: entity.ValidationResult(`{"Secure":false}`)}},
				},
			}},
		},
	}

	w, err := NewRecordWriter(path)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if err := WriteAll(w, records); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	loaded, err := input.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(loaded, records) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, records)
	}
}

func TestRecordWriter_BadPath(t *testing.T) {
	if _, err := NewRecordWriter(filepath.Join(t.TempDir(), "missing", "out.json")); err == nil {
		t.Errorf("NewRecordWriter should fail for a missing directory")
	}
}

const scannerLine = `{"QName":"x.com.","DNSSDProbe":null,"PTRProbe":null,` +
	`"SRVProbe":{"Services":{"_sip._tcp":[` +
	`{"Name":"a","Target":"a.x.com.","SRVValidated":{"Secure":true},"AValidated":{"Secure":false},"AAAAValidated":{"Secure":false}},` +
	`{"Name":"b","Target":"."}]}},` +
	`"NAPTRProbe":{"NAPTRs":[{"Flags":"S","Replacement":"_sip._tcp.x.com.","NAPTRValidated":{"Secure":true},` +
	`"Services":[{"Name":"c","Target":"c.x.com.","SRVValidated":{"Secure":true}}]}]}}`

func TestWriteAll_KeepsValidationResults(t *testing.T) {
	records, err := input.NewLoader().Read("scan", strings.NewReader(scannerLine))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sanitized.json")
	w, err := NewRecordWriter(path)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if err := WriteAll(w, sanitize.Sanitize(records)); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	out := string(data)
	for _, field := range []string{
		`"SRVValidated":{"Secure":true}`,
		`"AValidated":{"Secure":false}`,
		`"AAAAValidated":{"Secure":false}`,
		`"NAPTRValidated":{"Secure":true}`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("sanitized output missing %s:\n%s", field, out)
		}
	}
	if strings.Contains(out, `"Name":"b"`) {
		t.Errorf("sanitized output kept invalid instance:\n%s", out)
	}
}
