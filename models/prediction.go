package models

import "time"

// Uncertainty holds one spread per headline property.
type Uncertainty struct {
	EnergyDensity     float64 `json:"energyDensity"`
	VoltageWindow     float64 `json:"voltageWindow"`
	IonicConductivity float64 `json:"ionicConductivity"`
	ThermalStability  float64 `json:"thermalStability"`
	CycleLife         float64 `json:"cycleLife"`
}

type Descriptors struct {
	BandGap           float64 `json:"bandGap"`
	FormationEnergy   float64 `json:"formationEnergy"`
	IonicRadius       float64 `json:"ionicRadius"`
	Electronegativity float64 `json:"electronegativity"`
	Density           float64 `json:"density"`
}

// PhysicsValidation flags are sampled independently of the headline values.
type PhysicsValidation struct {
	ChargeNeutrality       bool `json:"chargeNeutrality"`
	EnergyConservation     bool `json:"energyConservation"`
	ThermodynamicStability bool `json:"thermodynamicStability"`
	StructuralIntegrity    bool `json:"structuralIntegrity"`
}

type Prediction struct {
	ID                string            `gorm:"column:id;primaryKey" json:"id"`
	MaterialID        string            `gorm:"column:material_id;index;not null" json:"materialId"`
	EnergyDensity     float64           `gorm:"column:energy_density" json:"energyDensity"`
	VoltageWindow     float64           `gorm:"column:voltage_window" json:"voltageWindow"`
	IonicConductivity float64           `gorm:"column:ionic_conductivity" json:"ionicConductivity"`
	ThermalStability  float64           `gorm:"column:thermal_stability" json:"thermalStability"`
	CycleLife         int               `gorm:"column:cycle_life" json:"cycleLife"`
	Uncertainty       Uncertainty       `gorm:"column:uncertainty;serializer:json" json:"uncertainty"`
	Descriptors       Descriptors       `gorm:"column:descriptors;serializer:json" json:"descriptors"`
	PhysicsValidation PhysicsValidation `gorm:"column:physics_validation;serializer:json" json:"physicsValidation"`
	CreatedAt         time.Time         `gorm:"column:created_at" json:"createdAt"`
}

func (Prediction) TableName() string { return "predictions" }

// PredictionResult is the response body of a prediction run.
type PredictionResult struct {
	MaterialID        string            `json:"materialId"`
	MaterialName      string            `json:"materialName"`
	EnergyDensity     float64           `json:"energyDensity"`
	VoltageWindow     float64           `json:"voltageWindow"`
	IonicConductivity float64           `json:"ionicConductivity"`
	ThermalStability  float64           `json:"thermalStability"`
	CycleLife         int               `json:"cycleLife"`
	Uncertainty       Uncertainty       `json:"uncertainty"`
	Descriptors       Descriptors       `json:"descriptors"`
	PhysicsValidation PhysicsValidation `json:"physicsValidation"`
}

// Record converts the result into the Prediction row that gets stored.
func (r PredictionResult) Record() Prediction {
	return Prediction{
		MaterialID:        r.MaterialID,
		EnergyDensity:     r.EnergyDensity,
		VoltageWindow:     r.VoltageWindow,
		IonicConductivity: r.IonicConductivity,
		ThermalStability:  r.ThermalStability,
		CycleLife:         r.CycleLife,
		Uncertainty:       r.Uncertainty,
		Descriptors:       r.Descriptors,
		PhysicsValidation: r.PhysicsValidation,
	}
}
