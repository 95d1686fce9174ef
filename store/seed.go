package store

import (
	"context"
	"fmt"

	"battery-lab-api/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func referenceEntry(materialID, name, formula, category, spaceGroup string, energy, voltage, conductivity float64, source string) models.DatasetEntry {
	return models.DatasetEntry{
		MaterialID:        materialID,
		Name:              name,
		Formula:           formula,
		Category:          strPtr(category),
		SpaceGroup:        strPtr(spaceGroup),
		EnergyDensity:     floatPtr(energy),
		VoltageWindow:     floatPtr(voltage),
		IonicConductivity: floatPtr(conductivity),
		Source:            strPtr(source),
	}
}

// ReferenceDataset is the fixed set of materials the dataset explorer starts with.
func ReferenceDataset() []models.DatasetEntry {
	return []models.DatasetEntry{
		referenceEntry("mp-22526", "Lithium Cobalt Oxide", "LiCoO2", models.CategoryLithiumIon, "R-3m", 274, 3.9, 1e-4, "Materials Project"),
		referenceEntry("mp-19017", "Lithium Iron Phosphate", "LiFePO4", models.CategoryLithiumIon, "Pnma", 170, 3.4, 1e-9, "Materials Project"),
		referenceEntry("mp-18748", "Lithium Manganese Oxide", "LiMn2O4", models.CategoryLithiumIon, "Fd-3m", 148, 4.1, 1e-5, "Materials Project"),
		referenceEntry("mp-35416", "Sodium Vanadium Phosphate", "Na3V2(PO4)3", models.CategorySodiumIon, "R-3c", 117, 3.4, 1e-6, "ICSD"),
		referenceEntry("mp-29283", "Sodium Iron Fluorophosphate", "Na2FePO4F", models.CategorySodiumIon, "Pbcn", 124, 3.0, 1e-7, "ICSD"),
		referenceEntry("mp-985583", "Lithium Lanthanum Zirconium Oxide", "Li7La3Zr2O12", models.CategorySolidState, "Ia-3d", 0, 5.0, 1e-3, "Materials Project"),
		referenceEntry("mp-696114", "Lithium Phosphorus Sulfide", "Li3PS4", models.CategorySolidState, "Pnma", 0, 4.5, 3e-4, "Materials Project"),
		referenceEntry("mp-1186600", "Lithium Thiophosphate", "Li6PS5Cl", models.CategorySolidState, "F-43m", 0, 4.8, 2e-3, "AFLOW"),
		referenceEntry("sc-001", "Activated Carbon", "C", models.CategorySupercapacitor, "P6/mmm", 8, 2.7, 0.1, "Experimental"),
		referenceEntry("sc-002", "Manganese Dioxide", "MnO2", models.CategorySupercapacitor, "I4/m", 15, 1.0, 1e-4, "Experimental"),
		referenceEntry("fb-001", "Vanadium Pentoxide", "V2O5", models.CategoryFlowBattery, "Pmmn", 25, 1.6, 1e-2, "Experimental"),
		referenceEntry("fb-002", "Zinc Bromide", "ZnBr2", models.CategoryFlowBattery, "P21/c", 65, 1.8, 0.5, "Experimental"),
	}
}

// Seed loads the reference dataset into s in a fixed order.
func Seed(ctx context.Context, s Store) error {
	for _, entry := range ReferenceDataset() {
		if _, err := s.CreateDatasetEntry(ctx, entry); err != nil {
			return fmt.Errorf("seed dataset entry %s: %w", entry.MaterialID, err)
		}
	}
	return nil
}
