package roadtype

import "testing"

func TestNewHeavyGoodsVehicleSetsAccessOther(t *testing.T) {
	v := NewHeavyGoodsVehicle(12000, 8000, 4000, 2500, 16500)
	if v.AccessFlags&AccessOther == 0 {
		t.Error("expected AccessOther to be set once a dimension is specified")
	}
	if v.AccessFlags&AccessHeavyGoods == 0 {
		t.Error("expected AccessHeavyGoods to remain set")
	}
}

func TestVehicleTypeNormalizeClampsNegativeDimensions(t *testing.T) {
	v := VehicleType{AccessFlags: AccessCar, WeightKG: -5, HeightMM: -1}
	v.Normalize()
	if v.WeightKG != 0 || v.HeightMM != 0 {
		t.Errorf("expected negative dimensions clamped to zero, got WeightKG=%v HeightMM=%v", v.WeightKG, v.HeightMM)
	}
	if v.AccessFlags&AccessOther != 0 {
		t.Error("expected AccessOther unset once all dimensions clamp to zero")
	}
}

func TestVehicleTypeExceedsLimits(t *testing.T) {
	v := NewHeavyGoodsVehicle(12000, 8000, 4000, 2500, 16500)

	cases := []struct {
		name                                                     string
		maxWeight, maxAxle, maxHeight, maxWidth, maxLength float64
		want                                                     bool
	}{
		{"within all limits", 20000, 10000, 4500, 3000, 18000, false},
		{"exceeds weight", 10000, 10000, 4500, 3000, 18000, true},
		{"exceeds height", 20000, 10000, 3500, 3000, 18000, true},
		{"zero limit means unrestricted", 0, 0, 0, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := v.ExceedsLimits(c.maxWeight, c.maxAxle, c.maxHeight, c.maxWidth, c.maxLength); got != c.want {
				t.Errorf("ExceedsLimits() = %v, want %v", got, c.want)
			}
		})
	}
}
