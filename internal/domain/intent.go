package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentHelp
	IntentQuit
	IntentNavigate   // payload: page name
	IntentViewRecipe // payload: recipe id
	IntentSelect     // payload: 1-based index into the last listing
	IntentBack       // back from detail
	IntentSearch     // payload: comma separated ingredients, seeds the recommender
	IntentToggle     // payload: ingredient
	IntentAddCustom  // payload: comma separated ingredients
	IntentRemove     // payload: ingredient
	IntentClear      // start a new search
	IntentRecommend  // payload: "subs" to ask for substitutions
	IntentFavorite   // payload: recipe id
	IntentUnfavorite // payload: recipe id
	IntentFilter     // payload: category
	IntentSort       // payload: popular|rating|time
	IntentFind       // payload: free text over the catalog
	IntentSubstitute // payload: ingredient
	IntentLogin      // payload: "email password"
	IntentSignup     // payload: "username email password [diet]"
	IntentLogout
	IntentProfile    // payload: optional "name email"
	IntentNewsletter // payload: email
	IntentNewRecipe  // payload: "title | cuisine | minutes | difficulty | ingredients | steps [| key=value]"
	IntentSlide      // payload: next|prev|<n>
	IntentSuggest    // payload: typeahead prefix
	IntentRefresh
	IntentPalette
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	if name, ok := intentLabels[i]; ok {
		return name
	}
	return "unknown"
}

var intentLabels = map[IntentType]string{
	IntentHelp:       "help",
	IntentQuit:       "quit",
	IntentNavigate:   "navigate",
	IntentViewRecipe: "view_recipe",
	IntentSelect:     "select",
	IntentBack:       "back",
	IntentSearch:     "search",
	IntentToggle:     "toggle",
	IntentAddCustom:  "add_custom",
	IntentRemove:     "remove",
	IntentClear:      "clear",
	IntentRecommend:  "recommend",
	IntentFavorite:   "favorite",
	IntentUnfavorite: "unfavorite",
	IntentFilter:     "filter",
	IntentSort:       "sort",
	IntentFind:       "find",
	IntentSubstitute: "substitute",
	IntentLogin:      "login",
	IntentSignup:     "signup",
	IntentLogout:     "logout",
	IntentProfile:    "profile",
	IntentNewsletter: "newsletter",
	IntentNewRecipe:  "new_recipe",
	IntentSlide:      "slide",
	IntentSuggest:    "suggest",
	IntentRefresh:    "refresh",
	IntentPalette:    "palette",
	IntentUnknown:    "unknown",
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	for t, label := range intentLabels {
		if label == name {
			return t
		}
	}
	return IntentUnknown
}
