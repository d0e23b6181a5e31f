package domain

import (
	"errors"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNoIngredients  = errors.New("recipe has no ingredient lines")
)
