package services

import (
	"testing"
)

func TestPredictRanges(t *testing.T) {
	p := NewPredictor(7)

	for i := 0; i < 500; i++ {
		r := p.Predict("mat-1", "Lithium Cobalt Oxide")

		if r.MaterialID != "mat-1" || r.MaterialName != "Lithium Cobalt Oxide" {
			t.Fatalf("unexpected identity: %q %q", r.MaterialID, r.MaterialName)
		}

		headline := []struct {
			name      string
			value     float64
			lo, hi    float64
			spread    float64
			maxSpread float64
		}{
			{"energyDensity", r.EnergyDensity, 150, 350, r.Uncertainty.EnergyDensity, 0.05},
			{"voltageWindow", r.VoltageWindow, 2.5, 4.5, r.Uncertainty.VoltageWindow, 0.03},
			{"ionicConductivity", r.IonicConductivity, 0, 0.01, r.Uncertainty.IonicConductivity, 0.10},
			{"thermalStability", r.ThermalStability, 400, 600, r.Uncertainty.ThermalStability, 0.04},
			{"cycleLife", float64(r.CycleLife), 500, 2500, r.Uncertainty.CycleLife, 0.08},
		}
		for _, h := range headline {
			if h.value < h.lo || h.value > h.hi {
				t.Errorf("%s = %v, want [%v, %v]", h.name, h.value, h.lo, h.hi)
			}
			if h.spread < 0 {
				t.Errorf("%s uncertainty = %v, want >= 0", h.name, h.spread)
			}
			if h.spread > h.value*h.maxSpread {
				t.Errorf("%s uncertainty = %v exceeds %v of %v", h.name, h.spread, h.maxSpread, h.value)
			}
			if h.spread > h.value*0.15 {
				t.Errorf("%s uncertainty = %v exceeds 15%% of %v", h.name, h.spread, h.value)
			}
		}

		d := r.Descriptors
		if d.BandGap < 1.5 || d.BandGap > 4.5 {
			t.Errorf("bandGap = %v", d.BandGap)
		}
		if d.FormationEnergy < -2 || d.FormationEnergy > -1 {
			t.Errorf("formationEnergy = %v", d.FormationEnergy)
		}
		if d.IonicRadius < 0.5 || d.IonicRadius > 1 {
			t.Errorf("ionicRadius = %v", d.IonicRadius)
		}
		if d.Electronegativity < 1.5 || d.Electronegativity > 3.5 {
			t.Errorf("electronegativity = %v", d.Electronegativity)
		}
		if d.Density < 3 || d.Density > 7 {
			t.Errorf("density = %v", d.Density)
		}
	}
}

func TestPredictFlagsMostlyTrue(t *testing.T) {
	p := NewPredictor(11)
	const runs = 2000

	counts := map[string]int{}
	for i := 0; i < runs; i++ {
		v := p.Predict("m", "n").PhysicsValidation
		if v.ChargeNeutrality {
			counts["chargeNeutrality"]++
		}
		if v.EnergyConservation {
			counts["energyConservation"]++
		}
		if v.ThermodynamicStability {
			counts["thermodynamicStability"]++
		}
		if v.StructuralIntegrity {
			counts["structuralIntegrity"]++
		}
	}

	want := map[string]float64{
		"chargeNeutrality":       0.9,
		"energyConservation":     0.9,
		"thermodynamicStability": 0.8,
		"structuralIntegrity":    0.85,
	}
	for name, p := range want {
		got := float64(counts[name]) / runs
		if got < p-0.05 || got > p+0.05 {
			t.Errorf("%s true rate = %.3f, want ~%.2f", name, got, p)
		}
	}
}

func TestPredictSeeded(t *testing.T) {
	a := NewPredictor(99).Predict("m", "n")
	b := NewPredictor(99).Predict("m", "n")
	if a != b {
		t.Errorf("same seed should give same result:\n%+v\n%+v", a, b)
	}
}

func TestPredictionRecord(t *testing.T) {
	r := NewPredictor(3).Predict("mat-9", "x")
	rec := r.Record()
	if rec.MaterialID != "mat-9" || rec.EnergyDensity != r.EnergyDensity || rec.CycleLife != r.CycleLife {
		t.Errorf("Record() = %+v", rec)
	}
	if rec.Uncertainty != r.Uncertainty || rec.PhysicsValidation != r.PhysicsValidation {
		t.Error("Record() should carry uncertainty and validation flags")
	}
	if rec.ID != "" {
		t.Error("Record() should leave the id to the store")
	}
}
