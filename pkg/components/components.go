// Package components defines the catalog record types for the three
// component classes PowerBench selects between: MOSFETs, capacitors,
// and inductors. Records are immutable reference data loaded once at
// startup; identity is the part number, unique within a class.
package components

// Class identifies a component class.
type Class string

const (
	ClassMOSFET    Class = "mosfet"
	ClassCapacitor Class = "capacitor"
	ClassInductor  Class = "inductor"
)

// Valid reports whether c is one of the known component classes.
func (c Class) Valid() bool {
	switch c {
	case ClassMOSFET, ClassCapacitor, ClassInductor:
		return true
	}
	return false
}

// Part is the common surface shared by all catalog record types.
type Part interface {
	// ID returns the part number.
	ID() string

	// PartClass returns the component class of the record.
	PartClass() Class
}

// MOSFET is a power MOSFET catalog record.
type MOSFET struct {
	PartNumber      string  `yaml:"part_number" json:"partNumber"`
	Manufacturer    string  `yaml:"manufacturer" json:"manufacturer"`
	VDS             float64 `yaml:"vds" json:"vds"`     // Drain-source blocking voltage (V)
	IDCont          float64 `yaml:"id" json:"id"`       // Continuous drain current (A)
	RDSOn           float64 `yaml:"rdson" json:"rdson"` // On-resistance (mΩ)
	QG              float64 `yaml:"qg" json:"qg"`       // Total gate charge (nC), 0 = unspecified
	Package         string  `yaml:"package" json:"package"`
	TypicalUse      string  `yaml:"typical_use" json:"typicalUse"`
	EfficiencyRange string  `yaml:"efficiency_range" json:"efficiencyRange"` // e.g. "96-98%"
}

func (m MOSFET) ID() string       { return m.PartNumber }
func (m MOSFET) PartClass() Class { return ClassMOSFET }

// Capacitor is an output/bulk capacitor catalog record.
type Capacitor struct {
	PartNumber   string  `yaml:"part_number" json:"partNumber"`
	Manufacturer string  `yaml:"manufacturer" json:"manufacturer"`
	Capacitance  float64 `yaml:"capacitance" json:"capacitance"` // µF
	Voltage      float64 `yaml:"voltage" json:"voltage"`         // Rated voltage (V)
	Type         string  `yaml:"type" json:"type"`               // e.g. "MLCC X7R", "Polymer Aluminum"
	ESR          string  `yaml:"esr" json:"esr"`                 // mΩ, free-form (may be a range or class)
	PrimaryUse   string  `yaml:"primary_use" json:"primaryUse"`
	TempRange    string  `yaml:"temp_range" json:"tempRange"`
}

func (c Capacitor) ID() string       { return c.PartNumber }
func (c Capacitor) PartClass() Class { return ClassCapacitor }

// Inductor is a power inductor catalog record.
type Inductor struct {
	PartNumber   string  `yaml:"part_number" json:"partNumber"`
	Manufacturer string  `yaml:"manufacturer" json:"manufacturer"`
	Inductance   float64 `yaml:"inductance" json:"inductance"`   // µH
	Current      float64 `yaml:"current" json:"current"`         // Rated current (A)
	DCR          float64 `yaml:"dcr" json:"dcr"`                 // Winding DC resistance (mΩ)
	SatCurrent   float64 `yaml:"sat_current" json:"satCurrent"`  // Saturation current (A)
	Package      string  `yaml:"package" json:"package"`
}

func (i Inductor) ID() string       { return i.PartNumber }
func (i Inductor) PartClass() Class { return ClassInductor }

// Compile-time interface guards.
var (
	_ Part = MOSFET{}
	_ Part = Capacitor{}
	_ Part = Inductor{}
)
