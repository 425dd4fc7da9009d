package nutrition

import (
	"context"
	"errors"
	"sort"

	"nutrilog/models"
)

// memoryStore is an in-memory Store. Transactions work on a copy that is
// swapped in only when fn succeeds.
type memoryStore struct {
	ingredients map[string]models.Ingredient
	recipes     map[string]models.Recipe
	consumption []models.ConsumptionEntry
	weighIns    []models.WeighIn

	appendErr error
	queryErr  error
	nextID    uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		ingredients: map[string]models.Ingredient{},
		recipes:     map[string]models.Recipe{},
	}
}

func (s *memoryStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) FindIngredientByName(_ context.Context, name string) (models.Ingredient, bool, error) {
	ingredient, ok := s.ingredients[name]
	return ingredient, ok, nil
}

func (s *memoryStore) FindRecipeByName(_ context.Context, name string) (models.Recipe, bool, error) {
	recipe, ok := s.recipes[name]
	return recipe, ok, nil
}

func (s *memoryStore) RecipeNameTaken(_ context.Context, normalized string) (bool, error) {
	for name := range s.recipes {
		if models.NormalizeName(name) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) InsertIngredient(_ context.Context, ingredient *models.Ingredient) error {
	if _, ok := s.ingredients[ingredient.Name]; ok {
		return ErrDuplicateName
	}
	ingredient.ID = s.id()
	s.ingredients[ingredient.Name] = *ingredient
	return nil
}

func (s *memoryStore) InsertRecipe(_ context.Context, recipe *models.Recipe) error {
	if _, ok := s.recipes[recipe.Name]; ok {
		return ErrDuplicateName
	}
	recipe.ID = s.id()
	s.recipes[recipe.Name] = *recipe
	return nil
}

func (s *memoryStore) AppendConsumption(_ context.Context, entry *models.ConsumptionEntry) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	entry.ID = s.id()
	s.consumption = append(s.consumption, *entry)
	return nil
}

func (s *memoryStore) AppendWeighIn(_ context.Context, entry *models.WeighIn) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	entry.ID = s.id()
	s.weighIns = append(s.weighIns, *entry)
	return nil
}

func (s *memoryStore) group(keep func(day string) bool) []models.DailyTotals {
	byDay := map[string]models.Nutrients{}
	for _, entry := range s.consumption {
		if keep(entry.EntryDate) {
			byDay[entry.EntryDate] = byDay[entry.EntryDate].Add(entry.Nutrients)
		}
	}
	rows := make([]models.DailyTotals, 0, len(byDay))
	for day, n := range byDay {
		rows = append(rows, models.DailyTotals{EntryDate: day, Nutrients: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EntryDate < rows[j].EntryDate })
	return rows
}

func (s *memoryStore) QueryDailyTotals(_ context.Context, day string) ([]models.DailyTotals, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.group(func(d string) bool { return d == day }), nil
}

func (s *memoryStore) QueryAllDailyTotals(_ context.Context) ([]models.DailyTotals, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.group(func(string) bool { return true }), nil
}

func (s *memoryStore) QueryDailyTotalsBetween(_ context.Context, from, to string) ([]models.DailyTotals, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.group(func(d string) bool { return d >= from && d <= to }), nil
}

func (s *memoryStore) QueryWeighIns(_ context.Context) ([]models.WeighIn, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := append([]models.WeighIn(nil), s.weighIns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryTime.Before(out[j].EntryTime) })
	return out, nil
}

func (s *memoryStore) ListIngredientNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.ingredients))
	for name := range s.ingredients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memoryStore) ListRecipeNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.recipes))
	for name := range s.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memoryStore) Transaction(_ context.Context, fn func(Store) error) error {
	tx := s.clone()
	if err := fn(tx); err != nil {
		return err
	}
	*s = *tx
	return nil
}

func (s *memoryStore) clone() *memoryStore {
	c := &memoryStore{
		ingredients: make(map[string]models.Ingredient, len(s.ingredients)),
		recipes:     make(map[string]models.Recipe, len(s.recipes)),
		consumption: append([]models.ConsumptionEntry(nil), s.consumption...),
		weighIns:    append([]models.WeighIn(nil), s.weighIns...),
		appendErr:   s.appendErr,
		queryErr:    s.queryErr,
		nextID:      s.nextID,
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	return c
}

var errStoreDown = errors.New("store unavailable")

func floatPtr(v float64) *float64 { return &v }

// seededStore holds the reference foods used across the engine tests.
func seededStore() *memoryStore {
	s := newMemoryStore()
	s.ingredients["rice"] = models.Ingredient{
		Name:      "rice",
		Nutrients: models.Nutrients{Protein: 2.7, Carbohydrate: 28, Fat: 0.3, Kcals: 130},
		Unit:      "grams",
	}
	s.ingredients["egg"] = models.Ingredient{
		Name:      "egg",
		Nutrients: models.Nutrients{Protein: 13, Carbohydrate: 1.1, Fat: 11, Kcals: 155},
		Unit:      "each",
	}
	s.ingredients["cola"] = models.Ingredient{
		Name:          "cola",
		Nutrients:     models.Nutrients{Protein: 0, Carbohydrate: 10.6, Fat: 0, Kcals: 42},
		Unit:          "mL",
		ServingSize:   floatPtr(330),
		ContainerName: "can",
	}
	return s
}
