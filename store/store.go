// Package store holds the entity collections behind the API: materials,
// predictions, candidates, dataset entries and users.
//
// Lookups of a missing id return a nil record and a nil error. Lists come back
// in insertion order.
package store

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"battery-lab-api/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var ErrUsernameTaken = errors.New("username already taken")

type Store interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error)
	GetMaterial(ctx context.Context, id string) (*models.Material, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	DeleteMaterial(ctx context.Context, id string) (bool, error)

	CreatePrediction(ctx context.Context, prediction models.Prediction) (*models.Prediction, error)
	GetPrediction(ctx context.Context, id string) (*models.Prediction, error)
	ListPredictionsByMaterial(ctx context.Context, materialID string) ([]models.Prediction, error)

	CreateCandidate(ctx context.Context, candidate models.Candidate) (*models.Candidate, error)
	CreateCandidates(ctx context.Context, candidates []models.Candidate) ([]models.Candidate, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)

	CreateDatasetEntry(ctx context.Context, entry models.DatasetEntry) (*models.DatasetEntry, error)
	GetDatasetEntry(ctx context.Context, id string) (*models.DatasetEntry, error)
	ListDatasetEntries(ctx context.Context, q DatasetQuery) ([]models.DatasetEntry, int, error)
}

// Sort keys accepted by DatasetQuery.SortBy.
const (
	SortByName              = "name"
	SortByFormula           = "formula"
	SortByEnergyDensity     = "energyDensity"
	SortByVoltageWindow     = "voltageWindow"
	SortByIonicConductivity = "ionicConductivity"
)

type DatasetQuery struct {
	Page             int
	Limit            int
	Category         string
	Search           string
	MinEnergyDensity *float64
	MaxEnergyDensity *float64
	SortBy           string
	SortDesc         bool
}

// Normalize fills in the default page and limit.
func (q DatasetQuery) Normalize() DatasetQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset is the index of the first entry on the page. It saturates at
// math.MaxInt instead of wrapping when page*limit does not fit in an int.
func (q DatasetQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

func (q DatasetQuery) matches(e models.DatasetEntry) bool {
	if q.Category != "" && (e.Category == nil || *e.Category != q.Category) {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.Formula), needle) {
			return false
		}
	}
	if q.MinEnergyDensity != nil && (e.EnergyDensity == nil || *e.EnergyDensity < *q.MinEnergyDensity) {
		return false
	}
	if q.MaxEnergyDensity != nil && (e.EnergyDensity == nil || *e.EnergyDensity > *q.MaxEnergyDensity) {
		return false
	}
	return true
}

// ApplyDatasetQuery filters, sorts and paginates entries that are already in
// insertion order. total is the filtered count before pagination.
func ApplyDatasetQuery(entries []models.DatasetEntry, q DatasetQuery) ([]models.DatasetEntry, int) {
	q = q.Normalize()

	filtered := make([]models.DatasetEntry, 0, len(entries))
	for _, e := range entries {
		if q.matches(e) {
			filtered = append(filtered, e)
		}
	}
	if q.SortBy != "" {
		sortDataset(filtered, q.SortBy, q.SortDesc)
	}

	total := len(filtered)
	start := q.Offset()
	if start >= total {
		return []models.DatasetEntry{}, total
	}
	end := total
	if q.Limit < total-start {
		end = start + q.Limit
	}
	return filtered[start:end], total
}

func sortDataset(entries []models.DatasetEntry, by string, desc bool) {
	switch by {
	case SortByName, SortByFormula:
		key := func(e models.DatasetEntry) string {
			if by == SortByName {
				return strings.ToLower(e.Name)
			}
			return strings.ToLower(e.Formula)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if desc {
				return key(entries[i]) > key(entries[j])
			}
			return key(entries[i]) < key(entries[j])
		})
	default:
		key := numericKey(by)
		if key == nil {
			return
		}
		// Entries without a value go last in either direction.
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := key(entries[i]), key(entries[j])
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			case desc:
				return *a > *b
			default:
				return *a < *b
			}
		})
	}
}

func numericKey(by string) func(models.DatasetEntry) *float64 {
	switch by {
	case SortByEnergyDensity:
		return func(e models.DatasetEntry) *float64 { return e.EnergyDensity }
	case SortByVoltageWindow:
		return func(e models.DatasetEntry) *float64 { return e.VoltageWindow }
	case SortByIonicConductivity:
		return func(e models.DatasetEntry) *float64 { return e.IonicConductivity }
	}
	return nil
}
