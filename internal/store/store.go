// Package store persists the nutrition ledger with gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

const dailyTotalsColumns = "entry_date, " +
	"COALESCE(SUM(protein), 0) AS protein, " +
	"COALESCE(SUM(carbohydrate), 0) AS carbohydrate, " +
	"COALESCE(SUM(fat), 0) AS fat, " +
	"COALESCE(SUM(kcals), 0) AS kcals"

// Store implements nutrition.Store on top of a gorm connection.
type Store struct {
	db *gorm.DB
}

var _ nutrition.Store = (*Store)(nil)

// New wraps database.
func New(database *gorm.DB) (*Store, error) {
	if database == nil {
		return nil, errors.New("store: database handle is nil")
	}
	return &Store{db: database}, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) FindIngredientByName(ctx context.Context, name string) (models.Ingredient, bool, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Ingredient{}, false, nil
	}
	if err != nil {
		return models.Ingredient{}, false, err
	}
	return ingredient, true, nil
}

func (s *Store) FindRecipeByName(ctx context.Context, name string) (models.Recipe, bool, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("name = ?", name).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Recipe{}, false, nil
	}
	if err != nil {
		return models.Recipe{}, false, err
	}
	return recipe, true, nil
}

// RecipeNameTaken matches recipe names after trimming and lower-casing.
func (s *Store) RecipeNameTaken(ctx context.Context, normalized string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("LOWER(TRIM(name)) = ?", normalized).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) InsertIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	return translate(s.db.WithContext(ctx).Create(ingredient).Error)
}

// InsertRecipe creates the recipe and its component lines.
func (s *Store) InsertRecipe(ctx context.Context, recipe *models.Recipe) error {
	return translate(s.db.WithContext(ctx).Create(recipe).Error)
}

func (s *Store) AppendConsumption(ctx context.Context, entry *models.ConsumptionEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *Store) AppendWeighIn(ctx context.Context, entry *models.WeighIn) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *Store) QueryDailyTotals(ctx context.Context, day string) ([]models.DailyTotals, error) {
	return s.dailyTotals(s.db.WithContext(ctx).Where("entry_date = ?", day))
}

func (s *Store) QueryAllDailyTotals(ctx context.Context) ([]models.DailyTotals, error) {
	return s.dailyTotals(s.db.WithContext(ctx))
}

func (s *Store) QueryDailyTotalsBetween(ctx context.Context, from, to string) ([]models.DailyTotals, error) {
	return s.dailyTotals(s.db.WithContext(ctx).Where("entry_date BETWEEN ? AND ?", from, to))
}

func (s *Store) dailyTotals(query *gorm.DB) ([]models.DailyTotals, error) {
	var rows []models.DailyTotals
	err := query.Model(&models.ConsumptionEntry{}).
		Select(dailyTotalsColumns).
		Group("entry_date").
		Order("entry_date asc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate consumption: %w", err)
	}
	return rows, nil
}

func (s *Store) QueryWeighIns(ctx context.Context) ([]models.WeighIn, error) {
	var entries []models.WeighIn
	if err := s.db.WithContext(ctx).Order("entry_time asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) ListIngredientNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Order("name asc").Pluck("name", &names).Error
	return names, err
}

func (s *Store) ListRecipeNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Order("name asc").Pluck("name", &names).Error
	return names, err
}

// Transaction runs fn inside a database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(nutrition.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", nutrition.ErrDuplicateName, err)
	}
	return err
}
