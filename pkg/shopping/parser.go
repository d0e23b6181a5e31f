package shopping

import (
	"Foodia-Shopping/pkg/shopping/quantity"
	"regexp"
	"strconv"
	"strings"
)

// leadingAmount matches "2 Eggs" or "1.5 cups milk": a number, whitespace, then a name.
var leadingAmount = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(\S.*)$`)

type ParsedLine struct {
	Name     string
	Quantity quantity.Quantity
}

// ParseLine splits one ingredient line into a quantity and a name. An empty line
// yields an empty name, which callers must skip. Lines without a leading number
// (including purely numeric ones) become the name with the default quantity.
func ParseLine(line string) ParsedLine {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParsedLine{Name: "", Quantity: quantity.Default}
	}

	if m := leadingAmount.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return ParsedLine{Name: strings.TrimSpace(m[2]), Quantity: quantity.Number(v)}
		}
	}

	return ParsedLine{Name: line, Quantity: quantity.Default}
}
