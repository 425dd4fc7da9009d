package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"nutrilog/internal/config"
	"nutrilog/internal/db"
	applog "nutrilog/internal/log"
	"nutrilog/internal/metrics"
	"nutrilog/internal/nutrition"
	"nutrilog/internal/store"
	"nutrilog/models"
)

var requiredColumns = []string{"name", "protein", "carbohydrate", "fat", "kcals", "unit"}

var openDatabase = func() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return database, nil
}

type summary struct {
	Imported int
	Skipped  []string
}

func main() {
	csvPath := "ingredients.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string, out io.Writer) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}
	defer file.Close()

	records, err := readCSV(file)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	st, err := store.New(database)
	if err != nil {
		return err
	}

	result, err := importIngredients(ctx, nutrition.NewCatalog(st), records, metrics.Nop{})
	if err != nil {
		return err
	}

	for _, name := range result.Skipped {
		applog.Warn(ctx, "skipped existing food", "name", name)
	}
	fmt.Fprintf(out, "Imported %d ingredients from %s (%d skipped)\n", result.Imported, filepath.Base(csvPath), len(result.Skipped))
	return nil
}

// importIngredients adds every record through catalog. Names that already
// exist are skipped; any other failure aborts the import at that row.
func importIngredients(ctx context.Context, catalog *nutrition.Catalog, records []map[string]string, recorder metrics.Recorder) (summary, error) {
	var result summary
	for idx, record := range records {
		row := idx + 2
		ingredient, err := buildIngredient(record)
		if err != nil {
			return result, fmt.Errorf("row %d: %w", row, err)
		}

		err = metrics.Track(ctx, recorder, metrics.OpImport, func() error {
			_, err := catalog.AddIngredient(ctx, ingredient)
			return err
		})
		switch {
		case errors.Is(err, nutrition.ErrDuplicateName):
			result.Skipped = append(result.Skipped, models.NormalizeName(ingredient.Name))
		case err != nil:
			return result, fmt.Errorf("row %d (%s): %w", row, record["name"], err)
		default:
			result.Imported++
		}
	}
	return result, nil
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool, len(rows[0]))
	for idx, key := range rows[0] {
		key = strings.ToLower(strings.TrimSpace(key))
		header[idx] = key
		present[key] = true
	}
	for _, column := range requiredColumns {
		if !present[column] {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildIngredient(record map[string]string) (models.Ingredient, error) {
	ingredient := models.Ingredient{
		Name:          record["name"],
		Unit:          record["unit"],
		ContainerName: record["container_name"],
	}

	fields := []struct {
		column string
		target *float64
	}{
		{"protein", &ingredient.Protein},
		{"carbohydrate", &ingredient.Carbohydrate},
		{"fat", &ingredient.Fat},
		{"kcals", &ingredient.Kcals},
	}
	for _, field := range fields {
		value, err := parseNumber(record[field.column])
		if err != nil {
			return models.Ingredient{}, fmt.Errorf("%s: %w", field.column, err)
		}
		*field.target = value
	}

	if raw := record["serving_size"]; raw != "" {
		size, err := parseNumber(raw)
		if err != nil {
			return models.Ingredient{}, fmt.Errorf("serving_size: %w", err)
		}
		ingredient.ServingSize = &size
	}

	return ingredient, nil
}

func parseNumber(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return parsed, nil
}
