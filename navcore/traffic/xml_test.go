package traffic

import (
	"bytes"
	"testing"
)

func TestWriteXML(t *testing.T) {
	info := Info{
		ID:           "t1",
		Severity:     SeverityHeavy,
		DelaySeconds: 120,
		Description:  "accident ahead",
		Location: LocationRef{
			Type: LocationRefPoint,
			Lat:  51.5,
			Lon:  -0.1,
			Side: SideRight,
		},
	}

	var buf bytes.Buffer
	if err := WriteXML(&buf, info); err != nil {
		t.Fatalf("WriteXML error: %v", err)
	}

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`id="t1"`)) {
		t.Errorf("expected output to contain id attribute, got %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`description="accident ahead"`)) {
		t.Errorf("expected output to contain description attribute, got %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`<trafficInfo`)) {
		t.Errorf("expected root element <trafficInfo>, got %s", out)
	}
}

func TestWriteXMLOmitsEmptyDescription(t *testing.T) {
	info := Info{ID: "t2", Location: LocationRef{Lat: 1, Lon: 2}}
	var buf bytes.Buffer
	if err := WriteXML(&buf, info); err != nil {
		t.Fatalf("WriteXML error: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte(`description=`)) {
		t.Errorf("expected no description attribute when empty, got %s", buf.String())
	}
}
