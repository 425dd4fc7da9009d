package handlers

import (
	"net/http"

	applog "nutrilog/internal/log"
	"nutrilog/internal/metrics"
	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

type ingredientRequest struct {
	Name          string   `json:"name"`
	Protein       float64  `json:"protein"`
	Carbohydrate  float64  `json:"carbohydrate"`
	Fat           float64  `json:"fat"`
	Kcals         float64  `json:"kcals"`
	Unit          string   `json:"unit"`
	ServingSize   *float64 `json:"serving_size"`
	ContainerName string   `json:"container_name"`
}

type recipeRequest struct {
	Name       string             `json:"name"`
	Portions   amountValue        `json:"portions"`
	Components []referenceRequest `json:"components"`
}

// Names lists every ingredient and recipe name for autocompletion.
func (h *Handlers) Names(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	names, err := h.catalog.Names(r.Context())
	if err != nil {
		writeEngineError(w, r, err, "unable to load food names")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// Ingredients lists ingredient names (GET) or creates an ingredient (POST).
func (h *Handlers) Ingredients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		names, err := h.catalog.Names(r.Context())
		if err != nil {
			writeEngineError(w, r, err, "unable to load ingredients")
			return
		}
		writeJSON(w, http.StatusOK, names.Ingredients)
	case http.MethodPost:
		h.createIngredient(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handlers) createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload ingredientRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var created models.Ingredient
	err := metrics.Track(ctx, h.metrics, metrics.OpAddIngredient, func() error {
		var err error
		created, err = h.catalog.AddIngredient(ctx, models.Ingredient{
			Name: payload.Name,
			Nutrients: models.Nutrients{
				Protein:      payload.Protein,
				Carbohydrate: payload.Carbohydrate,
				Fat:          payload.Fat,
				Kcals:        payload.Kcals,
			},
			Unit:          payload.Unit,
			ServingSize:   payload.ServingSize,
			ContainerName: payload.ContainerName,
		})
		return err
	})
	if err != nil {
		writeEngineError(w, r, err, "unable to create ingredient", "name", payload.Name)
		return
	}

	applog.Info(ctx, "ingredient created", "name", created.Name, "unit", created.Unit)
	writeJSON(w, http.StatusCreated, created)
}

// Recipes lists recipe names (GET) or composes a recipe (POST).
func (h *Handlers) Recipes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		names, err := h.catalog.Names(r.Context())
		if err != nil {
			writeEngineError(w, r, err, "unable to load recipes")
			return
		}
		writeJSON(w, http.StatusOK, names.Recipes)
	case http.MethodPost:
		ctx := r.Context()
		var payload recipeRequest
		if err := decodeJSON(r, &payload); err != nil {
			applog.Debug(ctx, "invalid recipe payload", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		components := make([]nutrition.Reference, 0, len(payload.Components))
		for _, component := range payload.Components {
			components = append(components, component.reference())
		}
		h.compose(w, r, payload.Name, components, string(payload.Portions))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handlers) compose(w http.ResponseWriter, r *http.Request, name string, components []nutrition.Reference, portions string) bool {
	ctx := r.Context()
	var recipe models.Recipe
	err := metrics.Track(ctx, h.metrics, metrics.OpCompose, func() error {
		var err error
		recipe, err = h.composer.Compose(ctx, name, components, portions)
		return err
	})
	if err != nil {
		writeEngineError(w, r, err, "unable to compose recipe", "name", name)
		return false
	}

	applog.Info(ctx, "recipe composed", "name", recipe.Name, "portions", recipe.Portions)
	writeJSON(w, http.StatusCreated, recipe)
	return true
}
