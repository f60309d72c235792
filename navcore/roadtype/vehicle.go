package roadtype

// VehicleType describes the vehicle a route profile plans for: which access
// flags apply to it, plus physical dimensions used to evaluate weight/height/
// width/length-restricted arcs.
type VehicleType struct {
	AccessFlags ArcAttributes

	WeightKG      float64
	AxleLoadKG    float64
	HeightMM      float64
	WidthMM       float64
	LengthMM      float64
	HazardousGoods bool
}

// NewCarVehicle, NewBicycleVehicle, NewPedestrianVehicle and
// NewHeavyGoodsVehicle return the stock vehicle types the route profile
// presets are built from.
func NewCarVehicle() VehicleType {
	return VehicleType{AccessFlags: AccessCar}
}

func NewBicycleVehicle() VehicleType {
	return VehicleType{AccessFlags: AccessBicycle}
}

func NewPedestrianVehicle() VehicleType {
	return VehicleType{AccessFlags: AccessPedestrian}
}

func NewHeavyGoodsVehicle(weightKG, axleLoadKG, heightMM, widthMM, lengthMM float64) VehicleType {
	v := VehicleType{
		AccessFlags: AccessHeavyGoods,
		WeightKG:    weightKG,
		AxleLoadKG:  axleLoadKG,
		HeightMM:    heightMM,
		WidthMM:     widthMM,
		LengthMM:    lengthMM,
	}
	v.Normalize()
	return v
}

// Normalize clamps negative dimensions to zero and sets AccessOther whenever
// any dimension is specified, so that the cost model knows to consult
// dimension-restricted arcs even though the vehicle's base AccessFlags alone
// would otherwise pass them.
func (v *VehicleType) Normalize() {
	if v.WeightKG < 0 {
		v.WeightKG = 0
	}
	if v.AxleLoadKG < 0 {
		v.AxleLoadKG = 0
	}
	if v.HeightMM < 0 {
		v.HeightMM = 0
	}
	if v.WidthMM < 0 {
		v.WidthMM = 0
	}
	if v.LengthMM < 0 {
		v.LengthMM = 0
	}

	hasDimension := v.WeightKG > 0 || v.AxleLoadKG > 0 || v.HeightMM > 0 || v.WidthMM > 0 || v.LengthMM > 0
	if hasDimension || v.HazardousGoods {
		v.AccessFlags |= AccessOther
	} else {
		v.AccessFlags &^= AccessOther
	}
}

// ExceedsLimits reports whether the vehicle's dimensions exceed the given
// restriction limits; a zero limit means "unrestricted" for that dimension.
func (v VehicleType) ExceedsLimits(maxWeightKG, maxAxleLoadKG, maxHeightMM, maxWidthMM, maxLengthMM float64) bool {
	exceeds := func(value, limit float64) bool { return limit > 0 && value > limit }
	return exceeds(v.WeightKG, maxWeightKG) ||
		exceeds(v.AxleLoadKG, maxAxleLoadKG) ||
		exceeds(v.HeightMM, maxHeightMM) ||
		exceeds(v.WidthMM, maxWidthMM) ||
		exceeds(v.LengthMM, maxLengthMM)
}
