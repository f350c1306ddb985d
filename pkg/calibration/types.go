package calibration

// Measurement is the fixed `{value: N}` envelope the bridge service wraps
// around every calibration field.
type Measurement struct {
	Value float64 `json:"value"`
}

// Record holds the optical and geometric constants reported for a single
// lenticular display. Records are passed and stored by value; once a Record
// reaches the config store it is only ever replaced wholesale, never mutated
// in place.
type Record struct {
	ConfigVersion string      `json:"configVersion"`
	Pitch         Measurement `json:"pitch"`
	Slope         Measurement `json:"slope"`
	Center        Measurement `json:"center"`
	ViewCone      Measurement `json:"viewCone"`
	InvView       Measurement `json:"invView"`
	VerticalAngle Measurement `json:"verticalAngle"`
	DPI           Measurement `json:"DPI"`
	ScreenW       Measurement `json:"screenW"`
	ScreenH       Measurement `json:"screenH"`
	FlipImageX    Measurement `json:"flipImageX"`
	FlipImageY    Measurement `json:"flipImageY"`
	FlipSubp      Measurement `json:"flipSubp"`
}

// Placeholder returns the record used until the bridge service reports real
// device data. These values must not change: renderers are calibrated
// against them when no device is attached.
func Placeholder() Record {
	return Record{
		ConfigVersion: "1.0",
		Pitch:         Measurement{Value: 45},
		Slope:         Measurement{Value: -5},
		Center:        Measurement{Value: -0.5},
		ViewCone:      Measurement{Value: 40},
		InvView:       Measurement{Value: 1},
		VerticalAngle: Measurement{Value: 0},
		DPI:           Measurement{Value: 338},
		ScreenW:       Measurement{Value: 250},
		ScreenH:       Measurement{Value: 250},
		FlipImageX:    Measurement{Value: 0},
		FlipImageY:    Measurement{Value: 0},
		FlipSubp:      Measurement{Value: 0},
	}
}

// Device is one display as reported by the bridge service.
type Device struct {
	ID              string `json:"id,omitempty"`
	HardwareVersion string `json:"hardwareVersion,omitempty"`
	Calibration     Record `json:"calibration"`
}

// DevicesResponse is the payload of GET /v1/devices on the bridge service.
type DevicesResponse struct {
	Devices []Device `json:"devices"`
}
