package mock

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrilog/internal/db"
	applog "nutrilog/internal/log"
	"nutrilog/internal/nutrition"
	"nutrilog/internal/store"
	"nutrilog/models"
)

const defaultName = "nutrilog-mock"

// New returns an in-memory sqlite database seeded with a small pantry, one
// recipe and a few days of ledger rows.
func New(ctx context.Context) (*gorm.DB, error) {
	return NewNamed(ctx, defaultName)
}

// NewNamed is New with its own shared-cache database name, so independent
// callers do not see each other's rows.
func NewNamed(ctx context.Context, name string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "name", name)

	database, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), db.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	var count int64
	if err := database.WithContext(ctx).Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		if err := seed(ctx, database, time.Now); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready", "name", name)
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB, now func() time.Time) error {
	applog.Debug(ctx, "seeding mock database")

	st, err := store.New(database)
	if err != nil {
		return err
	}

	catalog := nutrition.NewCatalog(st)
	pantry := []models.Ingredient{
		{
			Name:      "rice",
			Nutrients: models.Nutrients{Protein: 2.7, Carbohydrate: 28, Fat: 0.3, Kcals: 130},
			Unit:      "grams",
		},
		{
			Name:      "egg",
			Nutrients: models.Nutrients{Protein: 13, Carbohydrate: 1.1, Fat: 11, Kcals: 155},
			Unit:      models.CountUnit,
		},
		{
			Name:          "cola",
			Nutrients:     models.Nutrients{Carbohydrate: 10.6, Kcals: 42},
			Unit:          "mL",
			ServingSize:   floatPtr(330),
			ContainerName: "can",
		},
		{
			Name:      "spinach",
			Nutrients: models.Nutrients{Protein: 2.9, Carbohydrate: 3.6, Fat: 0.4, Kcals: 23},
			Unit:      "grams",
		},
	}
	for _, ingredient := range pantry {
		if _, err := catalog.AddIngredient(ctx, ingredient); err != nil {
			return err
		}
	}

	if _, err := nutrition.NewComposer(st).Compose(ctx, "egg fried rice", []nutrition.Reference{
		{Name: "rice", Amount: "200", Unit: "grams"},
		{Name: "egg", Amount: "2", Unit: "each"},
		{Name: "spinach", Amount: "50", Unit: "grams"},
	}, "2"); err != nil {
		return err
	}

	today := now()
	yesterday := today.AddDate(0, 0, -1)
	ledger := []struct {
		at  time.Time
		ref nutrition.Reference
	}{
		{yesterday, nutrition.Reference{Name: "egg fried rice", Amount: "1", Unit: "portion"}},
		{yesterday, nutrition.Reference{Name: "cola", Amount: "1", Unit: "can"}},
		{today, nutrition.Reference{Name: "egg", Amount: "2", Unit: "each"}},
	}
	for _, row := range ledger {
		at := row.at
		recorder := nutrition.NewRecorder(st).WithClock(func() time.Time { return at })
		if _, err := recorder.Record(ctx, row.ref); err != nil {
			return err
		}
		if _, err := recorder.RecordWeighIn(ctx, "81.5"); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}

func floatPtr(v float64) *float64 { return &v }
