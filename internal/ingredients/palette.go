package ingredients

import "strings"

// Category is one group of ingredient chips.
type Category struct {
	Name  string
	Items []string
}

// Palette is the chip layout of the recommender page.
var Palette = []Category{
	{"Vegetables", []string{
		"tomatoes", "onions", "potatoes", "spinach", "carrots", "bell peppers",
		"cauliflower", "broccoli", "cabbage", "ginger", "garlic", "green chilies",
		"cucumber", "eggplant", "okra", "peas", "corn", "mushrooms",
	}},
	{"Fruits", []string{
		"lemons", "limes", "oranges", "apples", "bananas", "mangoes",
		"strawberries", "grapes", "pomegranate", "coconut",
	}},
	{"Grains & Pulses", []string{
		"basmati rice", "rice", "wheat flour", "lentils", "chickpeas",
		"kidney beans", "pasta", "noodles", "oats", "semolina", "besan",
	}},
	{"Proteins", []string{"chicken", "fish", "paneer", "tofu", "eggs"}},
	{"Dairy", []string{"milk", "yogurt", "ghee", "butter", "cream", "cheese", "paneer", "buttermilk"}},
	{"Spices & Herbs", []string{
		"spices", "turmeric", "cumin", "coriander", "garam masala", "cardamom",
		"cinnamon", "cloves", "black pepper", "red chili powder", "mustard seeds",
		"fennel seeds", "bay leaves", "curry leaves", "asafoetida", "saffron",
		"amchur", "mint leaves",
	}},
}

// Pantry is the home-page search box's suggestion list.
var Pantry = []string{
	"Turmeric", "Cumin", "Coriander", "Garam Masala", "Cardamom", "Cinnamon",
	"Basmati Rice", "Lentils", "Chickpeas", "Paneer", "Yogurt", "Coconut",
	"Onions", "Tomatoes", "Ginger", "Garlic", "Green Chilies", "Curry Leaves",
	"Mustard Seeds", "Fenugreek", "Spinach", "Potatoes", "Cauliflower", "Okra",
}

const maxPantrySuggestions = 8

// Suggest returns up to eight pantry items containing query that are not
// already selected. An empty query suggests nothing.
func Suggest(query string, selected *Selection) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []string
	for _, item := range Pantry {
		if !strings.Contains(strings.ToLower(item), q) {
			continue
		}
		if selected != nil && selected.Contains(item) {
			continue
		}
		out = append(out, item)
		if len(out) == maxPantrySuggestions {
			break
		}
	}
	return out
}

// Lookup finds the palette category holding name, if any.
func Lookup(name string) (string, bool) {
	n := NormalizeName(name)
	for _, c := range Palette {
		for _, item := range c.Items {
			if NormalizeName(item) == n {
				return c.Name, true
			}
		}
	}
	return "", false
}
