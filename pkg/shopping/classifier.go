package shopping

import (
	"Foodia-Shopping/domain"
	"strings"
)

type categoryRule struct {
	category domain.Category
	keywords []string
}

// Rules are checked top to bottom and the first hit wins, so the order here is the
// section precedence. Keywords go through NormalizeName so they line up with item keys.
var categoryRules = compileRules([]categoryRule{
	{domain.CategoryProduce, []string{
		"apple", "banana", "berry", "berries", "avocado", "lettuce", "spinach", "kale",
		"tomato", "onion", "garlic", "pepper", "cucumber", "carrot", "broccoli", "lemon",
		"lime", "orange", "potato", "sweet potato", "celery", "mushroom", "zucchini",
		"eggplant", "cabbage", "cauliflower", "grape", "mango", "melon", "cilantro",
		"parsley", "basil", "ginger", "herb", "fruit", "vegetable", "salad", "squash",
	}},
	{domain.CategoryDairy, []string{
		"milk", "cheese", "yogurt", "butter", "cream", "cottage", "mozzarella", "parmesan",
		"egg", "cheddar", "feta", "sour cream", "ghee",
	}},
	{domain.CategoryMeat, []string{
		"chicken", "beef", "pork", "turkey", "bacon", "sausage", "ham", "steak",
		"lamb", "mince", "salami", "prosciutto",
	}},
	{domain.CategorySeafood, []string{
		"salmon", "tuna", "shrimp", "prawn", "cod", "tilapia", "fish",
		"crab", "lobster", "scallop", "sardine", "anchov", "mussel",
	}},
	{domain.CategoryBakery, []string{
		"bread", "bagel", "bun", "tortilla", "wrap", "pita", "croissant",
		"muffin", "baguette",
	}},
	{domain.CategoryPantry, []string{
		"rice", "pasta", "oat", "oats", "flour", "sugar", "salt", "peppercorn", "spice",
		"cumin", "paprika", "oil", "olive oil", "vinegar", "beans", "lentil", "chickpea",
		"sauce", "broth", "stock", "honey", "cereal", "noodle", "spaghetti", "cinnamon",
		"nutmeg", "oregano", "ketchup", "mustard", "mayonnaise", "baking soda",
		"baking powder", "yeast", "peanut butter", "syrup", "canned",
	}},
	{domain.CategoryFrozen, []string{
		"ice cream", "frozen", "pizza", "popsicle",
	}},
	{domain.CategoryBeverages, []string{
		"water", "sparkling", "soda", "juice", "coffee", "tea",
		"wine", "beer", "kombucha", "lemonade",
	}},
	{domain.CategorySnacks, []string{
		"chip", "chips", "cracker", "crackers", "snack", "nuts", "protein bar", "bar",
		"cookie", "pretzel", "popcorn", "candy", "chocolate",
	}},
	{domain.CategoryHousehold, []string{
		"detergent", "soap", "dish", "paper towel", "toilet paper", "cleaner", "trash bag",
		"sponge", "bleach", "foil", "plastic wrap", "napkin",
	}},
	{domain.CategoryPersonalCare, []string{
		"shampoo", "conditioner", "toothpaste", "deodorant", "lotion",
		"toothbrush", "floss", "sunscreen", "razor", "body wash", "tissue",
	}},
})

func compileRules(rules []categoryRule) []categoryRule {
	compiled := make([]categoryRule, 0, len(rules))
	for _, rule := range rules {
		seen := make(map[string]struct{}, len(rule.keywords))
		keywords := make([]string, 0, len(rule.keywords))
		for _, kw := range rule.keywords {
			kw = NormalizeName(kw)
			if _, dup := seen[kw]; dup || kw == "" {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
		compiled = append(compiled, categoryRule{category: rule.category, keywords: keywords})
	}
	return compiled
}

// Classify picks the category for a normalized name. A key that is exactly one of
// the keywords takes that keyword's category ("shampoo" stays Personal Care even
// though it contains "ham"); otherwise the first rule with a substring hit wins.
// Names matching nothing fall back to Other.
func Classify(normalized string) domain.Category {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return domain.CategoryOther
	}

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if normalized == kw {
				return rule.category
			}
		}
	}

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.category
			}
		}
	}

	return domain.CategoryOther
}
