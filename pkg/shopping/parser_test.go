package shopping

import (
	"Foodia-Shopping/pkg/shopping/quantity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		quantity quantity.Quantity
	}{
		{"2 Eggs", "Eggs", quantity.Number(2)},
		{"Salt", "Salt", quantity.Default},
		{"1 cup Flour", "cup Flour", quantity.Number(1)},
		{"1.5 cups milk", "cups milk", quantity.Number(1.5)},
		{"  3   Large Tomatoes  ", "Large Tomatoes", quantity.Number(3)},
		{"a pinch of salt", "a pinch of salt", quantity.Default},
		{"42", "42", quantity.Default},
		{"2eggs", "2eggs", quantity.Default},
		{"1/2 cup sugar", "1/2 cup sugar", quantity.Default},
		{"Eggs 2", "Eggs 2", quantity.Default},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ParseLine(tt.line)
			assert.Equal(t, tt.name, got.Name)
			assert.True(t, tt.quantity.Equal(got.Quantity), "quantity %s, want %s", got.Quantity, tt.quantity)
		})
	}
}

func TestParseLine_EmptyMeansSkip(t *testing.T) {
	for _, line := range []string{"", "   ", "\t\n"} {
		got := ParseLine(line)
		assert.Empty(t, got.Name)
		assert.True(t, quantity.Default.Equal(got.Quantity))
	}
}
