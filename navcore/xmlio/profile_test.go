package xmlio

import (
	"bytes"
	"testing"

	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

func TestWriteReadProfileRoundTrip(t *testing.T) {
	p := profile.NewCarProfile()

	var buf bytes.Buffer
	if err := WriteProfile(&buf, p); err != nil {
		t.Fatalf("WriteProfile error: %v", err)
	}

	got, err := ReadProfile(&buf)
	if err != nil {
		t.Fatalf("ReadProfile error: %v", err)
	}

	if got.SpeedKPH[roadtype.Motorway] != p.SpeedKPH[roadtype.Motorway] {
		t.Errorf("SpeedKPH[Motorway] = %v, want %v", got.SpeedKPH[roadtype.Motorway], p.SpeedKPH[roadtype.Motorway])
	}
	if got.TollPenalty != p.TollPenalty {
		t.Errorf("TollPenalty = %v, want %v", got.TollPenalty, p.TollPenalty)
	}
	if got.Vehicle.AccessFlags != p.Vehicle.AccessFlags {
		t.Errorf("Vehicle.AccessFlags = %v, want %v", got.Vehicle.AccessFlags, p.Vehicle.AccessFlags)
	}
	if got.GradientSpeedFactor[roadtype.GradientUp2] != p.GradientSpeedFactor[roadtype.GradientUp2] {
		t.Errorf("GradientSpeedFactor[GradientUp2] = %v, want %v", got.GradientSpeedFactor[roadtype.GradientUp2], p.GradientSpeedFactor[roadtype.GradientUp2])
	}
}
