package formula

import (
	"errors"
	"math"
	"testing"
)

func validPFCInputs() PFCInputs {
	return PFCInputs{
		VInMin: 100, VInMax: 240,
		VOutMin: 380, VOutMax: 400,
		POutMax: 3000, Efficiency: 0.98,
		SwitchingFreq: 65000, LineFreqMin: 50, VRippleMax: 20,
	}
}

func validBuckInputs() BuckInputs {
	return BuckInputs{
		VInMin: 12, VInMax: 24,
		VOutMin: 3.3, VOutMax: 5,
		POutMax: 50, Efficiency: 0.95,
		SwitchingFreq: 500000, VRippleMax: 0.05,
		VInRipple: 0.1, IOutRipple: 0.5,
	}
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol*math.Abs(want) {
		t.Errorf("%s = %.6g, want %.6g", name, got, want)
	}
}

func TestCalculatePFC(t *testing.T) {
	got, err := CalculatePFC(validPFCInputs())
	if err != nil {
		t.Fatalf("CalculatePFC() error = %v", err)
	}

	// Pin = 3000/0.98, IinMax = Pin/100, dI = 0.2*IinMax.
	approx(t, "IInMax", got.IInMax, 30.612, 1e-3)
	approx(t, "RippleCurrent", got.RippleCurrent, 6.1224, 1e-3)
	// L = 100*(380-100) / (380*65000*dI)
	approx(t, "Inductance", got.Inductance, 1.8516e-4, 1e-3)
	// C = 3000 / (2*pi*50*380*20)
	approx(t, "Capacitance", got.Capacitance, 1.2565e-3, 1e-3)
}

func TestCalculateBuck(t *testing.T) {
	got, err := CalculateBuck(validBuckInputs())
	if err != nil {
		t.Fatalf("CalculateBuck() error = %v", err)
	}

	approx(t, "DutyCycleMax", got.DutyCycleMax, 5.0/24.0, 1e-9)
	approx(t, "IOutMax", got.IOutMax, 50.0/3.3, 1e-9)
	// L = 5*(1-D) / (500k*0.5)
	approx(t, "Inductance", got.Inductance, 1.5833e-5, 1e-3)
	// Cout = 0.5 / (8*500k*0.05)
	approx(t, "OutputCapacitance", got.OutputCapacitance, 2.5e-6, 1e-9)
	// Cin = Iout*D / (500k*0.1)
	approx(t, "InputCapacitance", got.InputCapacitance, 6.3131e-5, 1e-3)
}

func TestCalculatePFC_RejectsNonBoostVoltages(t *testing.T) {
	in := validPFCInputs()
	in.VOutMin = 240 // equal to VInMax: no boost headroom

	if _, err := CalculatePFC(in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("CalculatePFC() error = %v, want ErrInvalidInput", err)
	}
}

func TestCalculateBuck_RejectsNonBuckVoltages(t *testing.T) {
	in := validBuckInputs()
	in.VOutMax = 12 // equal to VInMin: duty would hit 100%

	if _, err := CalculateBuck(in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("CalculateBuck() error = %v, want ErrInvalidInput", err)
	}
}

func TestCalculatePFC_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PFCInputs)
	}{
		{"zero power", func(in *PFCInputs) { in.POutMax = 0 }},
		{"negative voltage", func(in *PFCInputs) { in.VInMin = -100 }},
		{"zero efficiency", func(in *PFCInputs) { in.Efficiency = 0 }},
		{"NaN ripple", func(in *PFCInputs) { in.VRippleMax = math.NaN() }},
		{"infinite frequency", func(in *PFCInputs) { in.SwitchingFreq = math.Inf(1) }},
		{"frequency below floor", func(in *PFCInputs) { in.SwitchingFreq = 500 }},
		{"frequency above ceiling", func(in *PFCInputs) { in.SwitchingFreq = 20e6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPFCInputs()
			tt.mutate(&in)
			if _, err := CalculatePFC(in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CalculatePFC() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCalculateBuck_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BuckInputs)
	}{
		{"zero ripple current", func(in *BuckInputs) { in.IOutRipple = 0 }},
		{"negative input ripple", func(in *BuckInputs) { in.VInRipple = -0.1 }},
		{"NaN power", func(in *BuckInputs) { in.POutMax = math.NaN() }},
		{"frequency below floor", func(in *BuckInputs) { in.SwitchingFreq = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBuckInputs()
			tt.mutate(&in)
			if _, err := CalculateBuck(in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CalculateBuck() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
