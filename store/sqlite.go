package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"battery-lab-api/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ Store = (*SQLStore)(nil)

// SQLStore keeps the collections in SQLite through GORM. Insertion order is
// SQLite's rowid.
type SQLStore struct {
	db    *gorm.DB
	nowFn func() time.Time
}

// OpenSQLite opens dsn and migrates every table. An in-memory DSN keeps the
// data for the lifetime of the process only.
func OpenSQLite(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// A memory database lives as long as its connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Material{},
		&models.Prediction{},
		&models.Candidate{},
		&models.DatasetEntry{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewSQLStore(db), nil
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{
		db:    db,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func first[T any](db *gorm.DB, cond string, args ...any) (*T, error) {
	var out T
	err := db.Where(cond, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	user.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx), "id = ?", id)
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx), "username = ?", username)
}

func (s *SQLStore) CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error) {
	material.ID = uuid.NewString()
	material.CreatedAt = s.nowFn()
	if err := s.db.WithContext(ctx).Create(&material).Error; err != nil {
		return nil, fmt.Errorf("insert material: %w", err)
	}
	return &material, nil
}

func (s *SQLStore) GetMaterial(ctx context.Context, id string) (*models.Material, error) {
	return first[models.Material](s.db.WithContext(ctx), "id = ?", id)
}

func (s *SQLStore) ListMaterials(ctx context.Context) ([]models.Material, error) {
	materials := []models.Material{}
	if err := s.db.WithContext(ctx).Order("rowid").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (s *SQLStore) DeleteMaterial(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Material{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *SQLStore) CreatePrediction(ctx context.Context, prediction models.Prediction) (*models.Prediction, error) {
	prediction.ID = uuid.NewString()
	prediction.CreatedAt = s.nowFn()
	if err := s.db.WithContext(ctx).Create(&prediction).Error; err != nil {
		return nil, fmt.Errorf("insert prediction: %w", err)
	}
	return &prediction, nil
}

func (s *SQLStore) GetPrediction(ctx context.Context, id string) (*models.Prediction, error) {
	return first[models.Prediction](s.db.WithContext(ctx), "id = ?", id)
}

func (s *SQLStore) ListPredictionsByMaterial(ctx context.Context, materialID string) ([]models.Prediction, error) {
	predictions := []models.Prediction{}
	err := s.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("rowid").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (s *SQLStore) CreateCandidate(ctx context.Context, candidate models.Candidate) (*models.Candidate, error) {
	candidate.ID = uuid.NewString()
	candidate.CreatedAt = s.nowFn()
	if err := s.db.WithContext(ctx).Create(&candidate).Error; err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}
	return &candidate, nil
}

func (s *SQLStore) CreateCandidates(ctx context.Context, candidates []models.Candidate) ([]models.Candidate, error) {
	if len(candidates) == 0 {
		return []models.Candidate{}, nil
	}
	batch := make([]models.Candidate, len(candidates))
	now := s.nowFn()
	for i, c := range candidates {
		c.ID = uuid.NewString()
		c.CreatedAt = now
		batch[i] = c
	}
	if err := s.db.WithContext(ctx).Create(&batch).Error; err != nil {
		return nil, fmt.Errorf("insert candidates: %w", err)
	}
	return batch, nil
}

func (s *SQLStore) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	if err := s.db.WithContext(ctx).Order("rowid").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *SQLStore) CreateDatasetEntry(ctx context.Context, entry models.DatasetEntry) (*models.DatasetEntry, error) {
	entry.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("insert dataset entry: %w", err)
	}
	return &entry, nil
}

func (s *SQLStore) GetDatasetEntry(ctx context.Context, id string) (*models.DatasetEntry, error) {
	return first[models.DatasetEntry](s.db.WithContext(ctx), "id = ?", id)
}

var datasetColumns = map[string]string{
	SortByName:              "lower(name)",
	SortByFormula:           "lower(formula)",
	SortByEnergyDensity:     "energy_density",
	SortByVoltageWindow:     "voltage_window",
	SortByIonicConductivity: "ionic_conductivity",
}

func (s *SQLStore) ListDatasetEntries(ctx context.Context, q DatasetQuery) ([]models.DatasetEntry, int, error) {
	q = q.Normalize()

	query := s.db.WithContext(ctx).Model(&models.DatasetEntry{})
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		query = query.Where("(instr(lower(name), ?) > 0 OR instr(lower(formula), ?) > 0)", needle, needle)
	}
	if q.MinEnergyDensity != nil {
		query = query.Where("energy_density >= ?", *q.MinEnergyDensity)
	}
	if q.MaxEnergyDensity != nil {
		query = query.Where("energy_density <= ?", *q.MaxEnergyDensity)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count dataset entries: %w", err)
	}

	offset := q.Offset()
	if int64(offset) >= total {
		return []models.DatasetEntry{}, int(total), nil
	}

	order := "rowid"
	if col, ok := datasetColumns[q.SortBy]; ok {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		order = fmt.Sprintf("%s IS NULL, %s %s, rowid", col, col, dir)
	}

	entries := []models.DatasetEntry{}
	err := query.Order(order).Offset(offset).Limit(q.Limit).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list dataset entries: %w", err)
	}
	return entries, int(total), nil
}
