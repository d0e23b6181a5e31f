package domain

import "strings"

// Category is the grocery-aisle section an item is listed under.
type Category string

const (
	CategoryProduce      Category = "Produce"
	CategoryDairy        Category = "Dairy"
	CategoryMeat         Category = "Meat"
	CategorySeafood      Category = "Seafood"
	CategoryBakery       Category = "Bakery"
	CategoryPantry       Category = "Pantry"
	CategoryFrozen       Category = "Frozen"
	CategoryBeverages    Category = "Beverages"
	CategorySnacks       Category = "Snacks"
	CategoryHousehold    Category = "Household"
	CategoryPersonalCare Category = "Personal Care"
	CategoryOther        Category = "Other"
)

// Categories lists every category in section order.
var Categories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategorySeafood,
	CategoryBakery,
	CategoryPantry,
	CategoryFrozen,
	CategoryBeverages,
	CategorySnacks,
	CategoryHousehold,
	CategoryPersonalCare,
	CategoryOther,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

func (c Category) IsValid() bool {
	return c.Rank() < len(Categories)
}

// Rank is the position of the category in section order; unknown values sort last.
func (c Category) Rank() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}
