package substitute

import (
	"strings"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// table is the offline fallback, in display order.
var table = []domain.Substitute{
	{
		Ingredient:  "Garam Masala",
		Substitutes: []string{"Curry powder + cinnamon", "Coriander + cumin + cardamom"},
		Ratio:       "1:1",
		Notes:       "Mix equal parts of the spices for best results",
	},
	{
		Ingredient:  "Ghee",
		Substitutes: []string{"Butter", "Coconut oil", "Vegetable oil"},
		Ratio:       "1:1",
		Notes:       "Butter gives closest flavor, coconut oil for dairy-free option",
	},
	{
		Ingredient:  "Paneer",
		Substitutes: []string{"Firm tofu", "Halloumi", "Ricotta (pressed)"},
		Ratio:       "1:1",
		Notes:       "Press tofu to remove water before cubing",
	},
	{
		Ingredient:  "Curry Leaves",
		Substitutes: []string{"Bay leaves", "Lime zest", "Basil"},
		Ratio:       "1:1",
		Notes:       "No exact match; lime zest brings the citrus note",
	},
	{
		Ingredient:  "Turmeric",
		Substitutes: []string{"Saffron", "Curry powder", "Paprika (for color)"},
		Ratio:       "1/2 the amount",
		Notes:       "Saffron is milder; use a pinch",
	},
	{
		Ingredient:  "Cumin",
		Substitutes: []string{"Ground coriander", "Caraway seeds", "Chili powder"},
		Ratio:       "1:1",
		Notes:       "Caraway is closest in flavor",
	},
	{
		Ingredient:  "Cardamom",
		Substitutes: []string{"Cinnamon + nutmeg", "Allspice", "Ginger"},
		Ratio:       "1/2 the amount",
		Notes:       "Blend cinnamon and nutmeg in equal parts",
	},
	{
		Ingredient:  "Tamarind",
		Substitutes: []string{"Lime juice + brown sugar", "Amchur powder", "Vinegar + sugar"},
		Ratio:       "1:1",
		Notes:       "Balance sour and sweet to taste",
	},
	{
		Ingredient:  "Yogurt",
		Substitutes: []string{"Sour cream", "Buttermilk", "Coconut yogurt"},
		Ratio:       "1:1",
		Notes:       "Coconut yogurt for a dairy-free curry",
	},
}

// Lookup returns table entries whose name contains query, case-insensitively.
func Lookup(query string) []domain.Substitute {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}
	var out []domain.Substitute
	for _, s := range table {
		name := strings.ToLower(s.Ingredient)
		if strings.Contains(name, term) {
			cp := s
			cp.Substitutes = append([]string(nil), s.Substitutes...)
			out = append(out, cp)
		}
	}
	return out
}
