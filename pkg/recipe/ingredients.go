package recipe

import (
	"Foodia-Shopping/entities"
	"encoding/json"
	"strings"
)

// IngredientLines returns the raw ingredient lines of a recipe. The column may hold a
// JSON array of strings or plain text with one ingredient per line.
func IngredientLines(recipe *entities.Recipe) []string {
	raw := strings.TrimSpace(recipe.Ingredients)
	if raw == "" {
		return nil
	}

	var lines []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &lines); err == nil {
			return lines
		}
	}

	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}
