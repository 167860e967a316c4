package recipe

import "strings"

const imageDefault = "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=800"

var imageRules = []struct {
	keywords []string
	url      string
}{
	{[]string{"chicken"}, "https://images.unsplash.com/photo-1626645738196-c2a7c87a8f58?w=800"},
	{[]string{"rice", "biryani"}, "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=800"},
	{[]string{"vegetable", "aloo", "palak"}, "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=800"},
	{[]string{"tea", "coffee", "drink"}, "https://images.unsplash.com/photo-1567337710282-00832b415979?w=800"},
}

// DefaultImage picks a stock photo by keywords in the recipe name.
func DefaultImage(name string) string {
	lower := strings.ToLower(name)
	for _, r := range imageRules {
		if containsAny(lower, r.keywords) {
			return r.url
		}
	}
	return imageDefault
}
