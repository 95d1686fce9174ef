package models

import "time"

// StructureFormat is the file format a material's raw payload was uploaded in.
type StructureFormat string

const (
	FormatCIF    StructureFormat = "CIF"
	FormatPOSCAR StructureFormat = "POSCAR"
	FormatSMILES StructureFormat = "SMILES"
	FormatJSON   StructureFormat = "JSON"
)

type Atom struct {
	Element  string     `json:"element" binding:"required"`
	Position [3]float64 `json:"position"`
	Color    string     `json:"color,omitempty"`
}

type Lattice struct {
	A     float64 `json:"a" binding:"gt=0"`
	B     float64 `json:"b" binding:"gt=0"`
	C     float64 `json:"c" binding:"gt=0"`
	Alpha float64 `json:"alpha" binding:"gt=0,lt=180"`
	Beta  float64 `json:"beta" binding:"gt=0,lt=180"`
	Gamma float64 `json:"gamma" binding:"gt=0,lt=180"`
}

type Bond struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Order int `json:"order"`
}

// MolecularStructure is the renderable form of a structure: atoms, bonds and
// an optional unit cell.
type MolecularStructure struct {
	Atoms   []Atom   `json:"atoms"`
	Bonds   []Bond   `json:"bonds"`
	Lattice *Lattice `json:"lattice,omitempty"`
}

type Material struct {
	ID                string          `gorm:"column:id;primaryKey" json:"id"`
	Name              string          `gorm:"column:name;not null" json:"name"`
	Formula           *string         `gorm:"column:formula" json:"formula"`
	Format            StructureFormat `gorm:"column:format;not null" json:"format"`
	RawData           string          `gorm:"column:raw_data;not null" json:"rawData"`
	AtomicPositions   []Atom          `gorm:"column:atomic_positions;serializer:json" json:"atomicPositions"`
	LatticeParameters *Lattice        `gorm:"column:lattice_parameters;serializer:json" json:"latticeParameters"`
	SpaceGroup        *string         `gorm:"column:space_group" json:"spaceGroup"`
	CreatedAt         time.Time       `gorm:"column:created_at" json:"createdAt"`
}

func (Material) TableName() string { return "materials" }
