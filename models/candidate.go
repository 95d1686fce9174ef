package models

import "time"

type CandidateProperties struct {
	EnergyDensity float64 `json:"energyDensity"`
	Voltage       float64 `json:"voltage"`
	Conductivity  float64 `json:"conductivity"`
	Stability     float64 `json:"stability"`
}

type Candidate struct {
	ID                  string              `gorm:"column:id;primaryKey" json:"id"`
	ParentMaterialID    *string             `gorm:"column:parent_material_id" json:"parentMaterialId"`
	Formula             string              `gorm:"column:formula;not null" json:"formula"`
	Structure           *MolecularStructure `gorm:"column:structure;serializer:json" json:"structure"`
	PredictedProperties CandidateProperties `gorm:"column:predicted_properties;serializer:json" json:"predictedProperties"`
	Score               float64             `gorm:"column:score" json:"score"`
	CreatedAt           time.Time           `gorm:"column:created_at" json:"createdAt"`
}

func (Candidate) TableName() string { return "candidates" }
