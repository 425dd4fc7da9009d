package theme

import "strings"

// Option is a selectable dashboard theme.
type Option struct {
	Value string
	Label string
}

// Theme holds the CSS classes the dashboard shell applies.
type Theme struct {
	Key        string
	BodyClass  string
	PanelClass string
	MutedClass string
}

// DefaultKey is used when no preference has been stored.
const DefaultKey = "pantry_dark"

var catalogue = map[string]Theme{
	"pantry_dark": {
		Key:        "pantry_dark",
		BodyClass:  "min-h-screen bg-slate-950 text-slate-100",
		PanelClass: "rounded-xl border border-slate-800 bg-slate-900 p-4",
		MutedClass: "text-slate-400",
	},
	"market_light": {
		Key:        "market_light",
		BodyClass:  "min-h-screen bg-stone-50 text-stone-900",
		PanelClass: "rounded-xl border border-stone-200 bg-white p-4",
		MutedClass: "text-stone-500",
	},
}

var options = []Option{
	{Value: "pantry_dark", Label: "Pantry (Dark)"},
	{Value: "market_light", Label: "Market (Light)"},
}

// Resolve returns the theme registered under key, or the default.
func Resolve(key string) Theme {
	if value, ok := Lookup(key); ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Lookup reports whether key names a registered theme.
func Lookup(key string) (Theme, bool) {
	value, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return value, ok
}

// Options lists the themes in display order.
func Options() []Option {
	return options
}
