package services

import (
	"math"
	"math/rand/v2"
	"sync"

	"battery-lab-api/models"

	"gonum.org/v1/gonum/stat/distuv"
)

// Headline ranges of the mock property model.
const (
	minEnergyDensity = 150.0
	maxEnergyDensity = 350.0
	minVoltage       = 2.5
	maxVoltage       = 4.5
	maxConductivity  = 0.01
	minStability     = 400.0
	maxStability     = 600.0
	minCycleLife     = 500
	maxCycleLife     = 2500
)

// Fraction of each headline value its uncertainty can reach.
const (
	energyUncertainty       = 0.05
	voltageUncertainty      = 0.03
	conductivityUncertainty = 0.10
	stabilityUncertainty    = 0.04
	cycleLifeUncertainty    = 0.08
)

// newSource returns a PCG source; seed 0 picks a random seed.
func newSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// sampler draws from a shared source. It is safe for concurrent use.
type sampler struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *sampler) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}

func (s *sampler) bernoulli(p float64) bool {
	return distuv.Bernoulli{P: p, Src: s.src}.Rand() == 1
}

// Predictor produces random property reports shaped like a real model's
// output. The validation flags are sampled on their own and say nothing
// about the headline numbers.
type Predictor struct {
	sampler
}

func NewPredictor(seed uint64) *Predictor {
	return &Predictor{sampler{src: newSource(seed)}}
}

func (p *Predictor) Predict(materialID, materialName string) models.PredictionResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	energy := p.uniform(minEnergyDensity, maxEnergyDensity)
	voltage := p.uniform(minVoltage, maxVoltage)
	conductivity := p.uniform(0, maxConductivity)
	stability := p.uniform(minStability, maxStability)
	cycleLife := int(math.Floor(p.uniform(minCycleLife, maxCycleLife)))

	predictionsGenerated.Inc()

	return models.PredictionResult{
		MaterialID:        materialID,
		MaterialName:      materialName,
		EnergyDensity:     energy,
		VoltageWindow:     voltage,
		IonicConductivity: conductivity,
		ThermalStability:  stability,
		CycleLife:         cycleLife,
		Uncertainty: models.Uncertainty{
			EnergyDensity:     energy * energyUncertainty * p.uniform(0, 1),
			VoltageWindow:     voltage * voltageUncertainty * p.uniform(0, 1),
			IonicConductivity: conductivity * conductivityUncertainty * p.uniform(0, 1),
			ThermalStability:  stability * stabilityUncertainty * p.uniform(0, 1),
			CycleLife:         float64(cycleLife) * cycleLifeUncertainty * p.uniform(0, 1),
		},
		Descriptors: models.Descriptors{
			BandGap:           p.uniform(1.5, 4.5),
			FormationEnergy:   p.uniform(-2, -1),
			IonicRadius:       p.uniform(0.5, 1.0),
			Electronegativity: p.uniform(1.5, 3.5),
			Density:           p.uniform(3, 7),
		},
		PhysicsValidation: models.PhysicsValidation{
			ChargeNeutrality:       p.bernoulli(0.9),
			EnergyConservation:     p.bernoulli(0.9),
			ThermodynamicStability: p.bernoulli(0.8),
			StructuralIntegrity:    p.bernoulli(0.85),
		},
	}
}
