package rest

import (
	"bytes"
	"testing"

	"github.com/bwise1/waze_kibris/navcore/xmlio"
)

func TestSaveRoutingProfileSerializesOverrides(t *testing.T) {
	p := profileForRequest(RouteRequest{Profile: "cycling", Shortest: true, AvoidToll: true})

	var buf bytes.Buffer
	if err := xmlio.WriteProfile(&buf, p); err != nil {
		t.Fatalf("WriteProfile error: %v", err)
	}

	got, err := xmlio.ReadProfile(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadProfile error: %v", err)
	}
	if !got.Shortest {
		t.Error("expected Shortest to round-trip as true")
	}
	if got.TollPenalty != 0.999 {
		t.Errorf("TollPenalty = %v, want 0.999", got.TollPenalty)
	}
}
