package nutrition

import "errors"

var (
	ErrNotFound          = errors.New("nutrition: food not found")
	ErrUnrecognizedUnit  = errors.New("nutrition: unrecognised measurement unit")
	ErrInvalidAmount     = errors.New("nutrition: amount must be a non-negative number")
	ErrInvalidPortions   = errors.New("nutrition: portions must be a positive number")
	ErrDuplicateName     = errors.New("nutrition: name already exists")
	ErrEmptyName         = errors.New("nutrition: name is required")
	ErrEmptyRecipe       = errors.New("nutrition: recipe has no components")
	ErrInvalidWeight     = errors.New("nutrition: weight must be a positive number")
	ErrInvalidDate       = errors.New("nutrition: invalid date")
	ErrInvalidIngredient = errors.New("nutrition: invalid ingredient")
)

// IsInputError reports whether err was caused by caller input rather than by
// the store. Handlers use it to pick between a client and a server error.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrUnrecognizedUnit,
		ErrInvalidAmount,
		ErrInvalidPortions,
		ErrEmptyName,
		ErrEmptyRecipe,
		ErrInvalidWeight,
		ErrInvalidDate,
		ErrInvalidIngredient,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
