package models

const (
	CategoryLithiumIon     = "Lithium-ion"
	CategorySodiumIon      = "Sodium-ion"
	CategorySolidState     = "Solid-state"
	CategorySupercapacitor = "Supercapacitor"
	CategoryFlowBattery    = "Flow Battery"
)

type DatasetEntry struct {
	ID                string   `gorm:"column:id;primaryKey" json:"id"`
	MaterialID        string   `gorm:"column:material_id;not null" json:"materialId"`
	Name              string   `gorm:"column:name;not null" json:"name"`
	Formula           string   `gorm:"column:formula;not null" json:"formula"`
	Category          *string  `gorm:"column:category;index" json:"category"`
	SpaceGroup        *string  `gorm:"column:space_group" json:"spaceGroup"`
	EnergyDensity     *float64 `gorm:"column:energy_density" json:"energyDensity"`
	VoltageWindow     *float64 `gorm:"column:voltage_window" json:"voltageWindow"`
	IonicConductivity *float64 `gorm:"column:ionic_conductivity" json:"ionicConductivity"`
	Source            *string  `gorm:"column:source" json:"source"`
}

func (DatasetEntry) TableName() string { return "dataset_entries" }
