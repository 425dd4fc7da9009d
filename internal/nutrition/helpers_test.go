package nutrition

import (
	"math"
	"testing"

	"nutrilog/models"
)

const epsilon = 1e-9

func assertNutrients(t *testing.T, got, want models.Nutrients) {
	t.Helper()
	check := func(field string, g, w float64) {
		if math.Abs(g-w) > epsilon {
			t.Fatalf("%s = %v, want %v (got %+v)", field, g, w, got)
		}
	}
	check("protein", got.Protein, want.Protein)
	check("carbohydrate", got.Carbohydrate, want.Carbohydrate)
	check("fat", got.Fat, want.Fat)
	check("kcals", got.Kcals, want.Kcals)
}
