// Package formula computes passive component values for the two
// supported converter topologies from closed-form design equations.
package formula

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks design inputs rejected before any calculation.
var ErrInvalidInput = errors.New("invalid input")

// Switching frequency limits accepted by the calculators.
const (
	MinSwitchingFreq = 1e3  // 1 kHz
	MaxSwitchingFreq = 10e6 // 10 MHz
)

// PFCInputs are the design parameters for a PFC boost stage.
type PFCInputs struct {
	VInMin        float64 `json:"vInMin"`
	VInMax        float64 `json:"vInMax"`
	VOutMin       float64 `json:"vOutMin"`
	VOutMax       float64 `json:"vOutMax"`
	POutMax       float64 `json:"pOutMax"`
	Efficiency    float64 `json:"efficiency"` // Fraction, 0..1
	SwitchingFreq float64 `json:"switchingFreq"`
	LineFreqMin   float64 `json:"lineFreqMin"`
	VRippleMax    float64 `json:"vRippleMax"`
}

// BuckInputs are the design parameters for a buck stage.
type BuckInputs struct {
	VInMin        float64 `json:"vInMin"`
	VInMax        float64 `json:"vInMax"`
	VOutMin       float64 `json:"vOutMin"`
	VOutMax       float64 `json:"vOutMax"`
	POutMax       float64 `json:"pOutMax"`
	Efficiency    float64 `json:"efficiency"`
	SwitchingFreq float64 `json:"switchingFreq"`
	VRippleMax    float64 `json:"vRippleMax"`
	VInRipple     float64 `json:"vInRipple"`
	IOutRipple    float64 `json:"iOutRipple"`
}

// PFCResults are the calculated component values for a PFC stage.
type PFCResults struct {
	Inductance    float64 `json:"inductance"`    // H
	Capacitance   float64 `json:"capacitance"`   // F
	RippleCurrent float64 `json:"rippleCurrent"` // A
	IInMax        float64 `json:"iInMax"`        // A, peak input current
}

// BuckResults are the calculated component values for a buck stage.
type BuckResults struct {
	Inductance        float64 `json:"inductance"`        // H
	OutputCapacitance float64 `json:"outputCapacitance"` // F
	InputCapacitance  float64 `json:"inputCapacitance"`  // F
	DutyCycleMax      float64 `json:"dutyCycleMax"`
	IOutMax           float64 `json:"iOutMax"` // A
}

// CalculatePFC derives PFC boost component values.
//
//	L = Vin·(Vout−Vin) / (Vout·fs·ΔI), with ΔI = 20% of peak input current
//	C = Pout / (2π·fline·Vout·ΔV)
func CalculatePFC(in PFCInputs) (PFCResults, error) {
	if err := requirePositive(map[string]float64{
		"vInMin": in.VInMin, "vInMax": in.VInMax,
		"vOutMin": in.VOutMin, "vOutMax": in.VOutMax,
		"pOutMax": in.POutMax, "efficiency": in.Efficiency,
		"switchingFreq": in.SwitchingFreq, "lineFreqMin": in.LineFreqMin,
		"vRippleMax": in.VRippleMax,
	}); err != nil {
		return PFCResults{}, err
	}
	if err := checkSwitchingFreq(in.SwitchingFreq); err != nil {
		return PFCResults{}, err
	}
	if in.VOutMin <= in.VInMax {
		return PFCResults{}, fmt.Errorf("%w: boost output voltage must exceed input voltage", ErrInvalidInput)
	}

	pInMax := in.POutMax / in.Efficiency
	iInMax := pInMax / in.VInMin
	deltaI := iInMax * 0.2

	inductance := (in.VInMin * (in.VOutMin - in.VInMin)) /
		(in.VOutMin * in.SwitchingFreq * deltaI)
	capacitance := in.POutMax /
		(2 * math.Pi * in.LineFreqMin * in.VOutMin * in.VRippleMax)

	return PFCResults{
		Inductance:    inductance,
		Capacitance:   capacitance,
		RippleCurrent: deltaI,
		IInMax:        iInMax,
	}, nil
}

// CalculateBuck derives buck converter component values.
//
//	D    = Vout/Vin
//	L    = Vout·(1−D) / (fs·ΔI)
//	Cout = ΔI / (8·fs·ΔV)
//	Cin  = Iout·D / (fs·ΔVin)
func CalculateBuck(in BuckInputs) (BuckResults, error) {
	if err := requirePositive(map[string]float64{
		"vInMin": in.VInMin, "vInMax": in.VInMax,
		"vOutMin": in.VOutMin, "vOutMax": in.VOutMax,
		"pOutMax": in.POutMax, "efficiency": in.Efficiency,
		"switchingFreq": in.SwitchingFreq, "vRippleMax": in.VRippleMax,
		"vInRipple": in.VInRipple, "iOutRipple": in.IOutRipple,
	}); err != nil {
		return BuckResults{}, err
	}
	if err := checkSwitchingFreq(in.SwitchingFreq); err != nil {
		return BuckResults{}, err
	}
	if in.VOutMax >= in.VInMin {
		return BuckResults{}, fmt.Errorf("%w: buck output voltage must be below input voltage", ErrInvalidInput)
	}

	dutyMax := in.VOutMax / in.VInMax
	iOutMax := in.POutMax / in.VOutMin

	inductance := (in.VOutMax * (1 - dutyMax)) / (in.SwitchingFreq * in.IOutRipple)
	outputCap := in.IOutRipple / (8 * in.SwitchingFreq * in.VRippleMax)
	inputCap := (iOutMax * dutyMax) / (in.SwitchingFreq * in.VInRipple)

	return BuckResults{
		Inductance:        inductance,
		OutputCapacitance: outputCap,
		InputCapacitance:  inputCap,
		DutyCycleMax:      dutyMax,
		IOutMax:           iOutMax,
	}, nil
}

// requirePositive rejects any non-positive or non-finite parameter.
func requirePositive(params map[string]float64) error {
	for name, v := range params {
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: %s must be a positive finite number, got %g", ErrInvalidInput, name, v)
		}
	}
	return nil
}

func checkSwitchingFreq(fs float64) error {
	if fs < MinSwitchingFreq || fs > MaxSwitchingFreq {
		return fmt.Errorf("%w: switching frequency %g Hz outside %g..%g Hz", ErrInvalidInput, fs, MinSwitchingFreq, MaxSwitchingFreq)
	}
	return nil
}
