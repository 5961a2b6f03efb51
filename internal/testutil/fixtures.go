package testutil

import "github.com/voltlab/powerbench/pkg/components"

// NewMOSFET returns a MOSFET with sensible defaults, suitable for test
// fixtures. Override individual fields with options.
func NewMOSFET(partNumber string, opts ...func(*components.MOSFET)) components.MOSFET {
	m := components.MOSFET{
		PartNumber:      partNumber,
		Manufacturer:    "TestCo",
		VDS:             60,
		IDCont:          80,
		RDSOn:           3.0,
		QG:              25,
		Package:         "TO-220",
		EfficiencyRange: "95-97%",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithRatings sets the MOSFET voltage and current ratings.
func WithRatings(vds, id float64) func(*components.MOSFET) {
	return func(m *components.MOSFET) {
		m.VDS = vds
		m.IDCont = id
	}
}

// WithRDSOn sets the MOSFET on-resistance in mΩ.
func WithRDSOn(r float64) func(*components.MOSFET) {
	return func(m *components.MOSFET) { m.RDSOn = r }
}

// WithQG sets the MOSFET total gate charge in nC.
func WithQG(qg float64) func(*components.MOSFET) {
	return func(m *components.MOSFET) { m.QG = qg }
}

// WithEfficiencyRange sets the MOSFET rated efficiency range string.
func WithEfficiencyRange(s string) func(*components.MOSFET) {
	return func(m *components.MOSFET) { m.EfficiencyRange = s }
}

// NewCapacitor returns a capacitor fixture.
func NewCapacitor(partNumber string, opts ...func(*components.Capacitor)) components.Capacitor {
	c := components.Capacitor{
		PartNumber:   partNumber,
		Manufacturer: "TestCo",
		Capacitance:  100,
		Voltage:      63,
		Type:         "Polymer Aluminum",
		ESR:          "~15",
		PrimaryUse:   "Bulk energy",
		TempRange:    "-55..105",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithCapRating sets the capacitance (µF) and voltage rating (V).
func WithCapRating(capacitance, voltage float64) func(*components.Capacitor) {
	return func(c *components.Capacitor) {
		c.Capacitance = capacitance
		c.Voltage = voltage
	}
}

// WithCapType sets the capacitor technology string.
func WithCapType(t string) func(*components.Capacitor) {
	return func(c *components.Capacitor) { c.Type = t }
}

// NewInductor returns an inductor fixture.
func NewInductor(partNumber string, opts ...func(*components.Inductor)) components.Inductor {
	i := components.Inductor{
		PartNumber:   partNumber,
		Manufacturer: "TestCo",
		Inductance:   220,
		Current:      3.2,
		DCR:          48,
		SatCurrent:   4.5,
		Package:      "WE-PD",
	}
	for _, opt := range opts {
		opt(&i)
	}
	return i
}

// WithIndRating sets the inductance (µH), rated current (A), and
// saturation current (A).
func WithIndRating(inductance, current, satCurrent float64) func(*components.Inductor) {
	return func(i *components.Inductor) {
		i.Inductance = inductance
		i.Current = current
		i.SatCurrent = satCurrent
	}
}

// WithDCR sets the inductor winding resistance in mΩ.
func WithDCR(dcr float64) func(*components.Inductor) {
	return func(i *components.Inductor) { i.DCR = dcr }
}
