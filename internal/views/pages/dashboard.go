package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"nutrilog/internal/nutrition"
	"nutrilog/internal/views/theme"
	"nutrilog/models"
)

// DashboardData is everything the dashboard renders.
type DashboardData struct {
	Today       models.DailyTotals
	History     []models.DailyTotals
	Weights     []nutrition.WeightPoint
	Names       nutrition.Names
	HistoryDays int
	Theme       theme.Theme
}

// FormatNutrient renders a nutrient value with at most one decimal place.
func FormatNutrient(value float64) string {
	return strconv.FormatFloat(roundTo(value, 1), 'f', -1, 64)
}

// FormatKcals renders an energy value rounded to whole kilocalories.
func FormatKcals(value float64) string {
	return fmt.Sprintf("%.0f", value)
}

func roundTo(value float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	if value < 0 {
		return -float64(int64(-value*scale+0.5)) / scale
	}
	return float64(int64(value*scale+0.5)) / scale
}

// Dashboard renders the full page.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		active := data.Theme
		if active.Key == "" {
			active = theme.Resolve(theme.DefaultKey)
		}
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>nutrilog</title>`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script></head><body class="%s" data-theme="%s">`,
			templ.EscapeString(active.BodyClass), templ.EscapeString(active.Key)); err != nil {
			return err
		}
		if err := themePicker(active).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="dashboard" hx-get="/" hx-trigger="ledger-updated from:body" hx-swap="innerHTML">`); err != nil {
			return err
		}
		if err := DashboardPartial(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// DashboardPartial renders the dashboard body for HTMX swaps.
func DashboardPartial(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sections := []templ.Component{
			todaySection(data.Today),
			entryForm(data.Names),
			historySection(data.History, data.HistoryDays),
			weightSection(data.Weights),
		}
		for _, section := range sections {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func themePicker(active theme.Theme) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav data-section="theme">`); err != nil {
			return err
		}
		for _, option := range theme.Options() {
			current := ""
			if option.Value == active.Key {
				current = ` aria-current="true"`
			}
			if _, err := fmt.Fprintf(w, `<a href="/?theme=%s"%s>%s</a>`,
				templ.EscapeString(option.Value), current, templ.EscapeString(option.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}

func todaySection(today models.DailyTotals) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section data-section="today"><h2>Today <small>%s</small></h2>`+
			`<dl><dt>Protein</dt><dd>%s g</dd><dt>Carbohydrate</dt><dd>%s g</dd><dt>Fat</dt><dd>%s g</dd><dt>Energy</dt><dd>%s kcal</dd></dl></section>`,
			templ.EscapeString(today.EntryDate),
			FormatNutrient(today.Protein),
			FormatNutrient(today.Carbohydrate),
			FormatNutrient(today.Fat),
			FormatKcals(today.Kcals),
		)
		return err
	})
}

func entryForm(names nutrition.Names) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section data-section="log"><h2>Log food</h2>`+
			`<form hx-post="/api/consumption" hx-ext="json-enc" hx-swap="none">`+
			`<input name="name" list="foods" placeholder="food" required>`+
			`<input name="amount" inputmode="decimal" placeholder="amount" required>`+
			`<input name="unit" placeholder="unit">`+
			`<button type="submit">Log</button></form><datalist id="foods">`); err != nil {
			return err
		}
		for _, group := range [][]string{names.Ingredients, names.Recipes} {
			for _, name := range group {
				if _, err := fmt.Fprintf(w, `<option value="%s">`, templ.EscapeString(name)); err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, `</datalist></section>`)
		return err
	})
}

func historySection(history []models.DailyTotals, days int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section data-section="history"><h2>Last %d days</h2><table>`+
			`<thead><tr><th>Date</th><th>Protein</th><th>Carbohydrate</th><th>Fat</th><th>kcal</th></tr></thead><tbody>`, days); err != nil {
			return err
		}
		for i := len(history) - 1; i >= 0; i-- {
			day := history[i]
			if _, err := fmt.Fprintf(w, `<tr data-date="%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(day.EntryDate),
				templ.EscapeString(day.EntryDate),
				FormatNutrient(day.Protein),
				FormatNutrient(day.Carbohydrate),
				FormatNutrient(day.Fat),
				FormatKcals(day.Kcals),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

func weightSection(points []nutrition.WeightPoint) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section data-section="weight"><h2>Weight</h2>`); err != nil {
			return err
		}
		if len(points) == 0 {
			_, err := io.WriteString(w, `<p>No weigh-ins yet.</p></section>`)
			return err
		}
		if _, err := io.WriteString(w, `<ol>`); err != nil {
			return err
		}
		for _, point := range points {
			if _, err := fmt.Fprintf(w, `<li><time>%s</time> %s kg</li>`, templ.EscapeString(point.Date), FormatNutrient(point.Weight)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ol></section>`)
		return err
	})
}
