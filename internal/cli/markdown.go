package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nutrilog/internal/nutrition"
	"nutrilog/models"
)

const nutrientHeader = "| Protein | Carbohydrate | Fat | Kcals |\n|---:|---:|---:|---:|\n"

func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

func nutrientCells(n models.Nutrients) string {
	return fmt.Sprintf("%s | %s | %s | %s", formatValue(n.Protein), formatValue(n.Carbohydrate), formatValue(n.Fat), formatValue(n.Kcals))
}

func totalsMarkdown(title string, totals nutrition.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s: %s %s of %s\n\n", title, formatValue(totals.Amount), totals.Unit, totals.Name)
	b.WriteString(nutrientHeader)
	fmt.Fprintf(&b, "| %s |\n", nutrientCells(totals.Nutrients))
	return b.String()
}

func dayMarkdown(day models.DailyTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Totals for %s\n\n", day.EntryDate)
	b.WriteString(nutrientHeader)
	fmt.Fprintf(&b, "| %s |\n", nutrientCells(day.Nutrients))
	return b.String()
}

// historyMarkdown lists days newest first.
func historyMarkdown(days []models.DailyTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Last %d days\n\n", len(days))
	b.WriteString("| Date | Protein | Carbohydrate | Fat | Kcals |\n|---|---:|---:|---:|---:|\n")
	for i := len(days) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "| %s | %s |\n", days[i].EntryDate, nutrientCells(days[i].Nutrients))
	}
	return b.String()
}

func weightsMarkdown(points []nutrition.WeightPoint) string {
	var b strings.Builder
	b.WriteString("## Weigh-ins\n\n")
	if len(points) == 0 {
		b.WriteString("No weigh-ins yet.\n")
		return b.String()
	}
	b.WriteString("| Date | Weight |\n|---|---:|\n")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Date, formatValue(p.Weight))
	}
	return b.String()
}

func namesMarkdown(names nutrition.Names) string {
	var b strings.Builder
	section := func(title string, items []string) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		if len(items) == 0 {
			b.WriteString("_none_\n\n")
			return
		}
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
	section("Ingredients", names.Ingredients)
	section("Recipes", names.Recipes)
	return b.String()
}

func recipeMarkdown(recipe models.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Recipe %s\n\n", recipe.Name)
	fmt.Fprintf(&b, "%d components, %s portions. Per portion:\n\n", len(recipe.Components), formatValue(recipe.Portions))
	b.WriteString(nutrientHeader)
	fmt.Fprintf(&b, "| %s |\n", nutrientCells(recipe.Nutrients))
	return b.String()
}

func ingredientMarkdown(ingredient models.Ingredient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Ingredient %s\n\n", ingredient.Name)
	if ingredient.IsCountBased() {
		b.WriteString("Per item:\n\n")
	} else {
		fmt.Fprintf(&b, "Per 100 %s:\n\n", ingredient.Unit)
	}
	b.WriteString(nutrientHeader)
	fmt.Fprintf(&b, "| %s |\n", nutrientCells(ingredient.Nutrients))
	if ingredient.HasContainer() {
		fmt.Fprintf(&b, "\nOne %s holds %s %s.\n", ingredient.ContainerName, formatValue(*ingredient.ServingSize), ingredient.Unit)
	}
	return b.String()
}
