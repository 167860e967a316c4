// Package conversation turns typed commands into intents and prints
// notifications.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

// patternRule maps a match to an intent. The payload is the last non-empty
// capture group unless payload is set.
type patternRule struct {
	regex   *regexp.Regexp
	intent  domain.IntentType
	payload func(m []string) string
}

// pageAliases maps typed page names to pages.
var pageAliases = map[string]domain.Page{
	"home":        domain.PageHome,
	"about":       domain.PageAbout,
	"recipes":     domain.PageRecipes,
	"browse":      domain.PageRecipes,
	"favorites":   domain.PageFavorites,
	"favourites":  domain.PageFavorites,
	"favs":        domain.PageFavorites,
	"substitute":  domain.PageSubstitute,
	"substitutes": domain.PageSubstitute,
	"add-recipe":  domain.PageAddRecipe,
	"add recipe":  domain.PageAddRecipe,
	"recommender": domain.PageRecommender,
	"ingredients": domain.PageRecommender,
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	page := func(m []string) string {
		return string(pageAliases[strings.ToLower(collapse(m[1]))])
	}
	p.patterns = []patternRule{
		{regex: regexp.MustCompile(`(?i)^(help|h|\?)$`), intent: domain.IntentHelp, payload: none},
		{regex: regexp.MustCompile(`(?i)^(quit|exit|q)$`), intent: domain.IntentQuit, payload: none},
		{regex: regexp.MustCompile(`(?i)^(?:go\s+(?:to\s+)?|open\s+)?(home|about|recipes|browse|favou?rites|favs|substitutes?|add-recipe|add\s+recipe|recommender|ingredients)$`), intent: domain.IntentNavigate, payload: page},
		{regex: regexp.MustCompile(`(?i)^(back|b)$`), intent: domain.IntentBack, payload: none},
		{regex: regexp.MustCompile(`(?i)^(?:view|open|show)\s+#?(\S+)$`), intent: domain.IntentViewRecipe},
		{regex: regexp.MustCompile(`^#?(\d{1,3})$`), intent: domain.IntentSelect},
		{regex: regexp.MustCompile(`(?i)^search\s+(.+)$`), intent: domain.IntentSearch},
		{regex: regexp.MustCompile(`(?i)^toggle\s+(.+)$`), intent: domain.IntentToggle},
		{regex: regexp.MustCompile(`(?i)^add\s+(.+)$`), intent: domain.IntentAddCustom},
		{regex: regexp.MustCompile(`(?i)^(?:remove|rm)\s+(.+)$`), intent: domain.IntentRemove},
		{regex: regexp.MustCompile(`(?i)^(clear|reset|new\s+search)$`), intent: domain.IntentClear, payload: none},
		{regex: regexp.MustCompile(`(?i)^recommend(?:\s+(with\s+subs|subs|substitutes))?$`), intent: domain.IntentRecommend, payload: func(m []string) string {
			if m[1] != "" {
				return "subs"
			}
			return ""
		}},
		{regex: regexp.MustCompile(`(?i)^(?:fav|favou?rite)\s+#?(\d+)$`), intent: domain.IntentFavorite},
		{regex: regexp.MustCompile(`(?i)^(?:unfav|unfavou?rite)\s+#?(\d+)$`), intent: domain.IntentUnfavorite},
		{regex: regexp.MustCompile(`(?i)^filter\s+(\S+)$`), intent: domain.IntentFilter},
		{regex: regexp.MustCompile(`(?i)^sort(?:\s+by)?\s+(\S+)$`), intent: domain.IntentSort},
		{regex: regexp.MustCompile(`(?i)^find(?:\s+(.*))?$`), intent: domain.IntentFind},
		{regex: regexp.MustCompile(`(?i)^(?:subs|substitutes?(?:\s+for)?)\s+(.+)$`), intent: domain.IntentSubstitute},
		{regex: regexp.MustCompile(`(?i)^login(?:\s+(.+))?$`), intent: domain.IntentLogin},
		{regex: regexp.MustCompile(`(?i)^(?:signup|sign\s+up|register)(?:\s+(.+))?$`), intent: domain.IntentSignup},
		{regex: regexp.MustCompile(`(?i)^(logout|log\s+out|sign\s+out)$`), intent: domain.IntentLogout, payload: none},
		{regex: regexp.MustCompile(`(?i)^profile(?:\s+(.+))?$`), intent: domain.IntentProfile},
		{regex: regexp.MustCompile(`(?i)^(?:newsletter|subscribe)(?:\s+(.+))?$`), intent: domain.IntentNewsletter},
		{regex: regexp.MustCompile(`(?i)^new(?:\s+(.+))?$`), intent: domain.IntentNewRecipe},
		{regex: regexp.MustCompile(`(?i)^(next|prev|previous)$`), intent: domain.IntentSlide, payload: func(m []string) string {
			if strings.EqualFold(m[1], "next") {
				return "next"
			}
			return "prev"
		}},
		{regex: regexp.MustCompile(`(?i)^slide\s+(\d+|next|prev)$`), intent: domain.IntentSlide},
		{regex: regexp.MustCompile(`(?i)^suggest(?:\s+(.*))?$`), intent: domain.IntentSuggest},
		{regex: regexp.MustCompile(`(?i)^(refresh|reload)$`), intent: domain.IntentRefresh, payload: none},
		{regex: regexp.MustCompile(`(?i)^(palette|pantry)$`), intent: domain.IntentPalette, payload: none},
	}
	return p
}

// Parse converts user input into an intent. The current page is accepted
// for parsers that need context; keyword rules do not.
func (p *KeywordParser) Parse(ctx context.Context, input string, page domain.Page) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q (page=%s)", trimmed, page)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		payload := lastGroup(m)
		if rule.payload != nil {
			payload = rule.payload(m)
		}
		p.log.Debug("matched intent: %s", rule.intent)
		return &domain.Intent{Type: rule.intent, Payload: payload}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func none([]string) string { return "" }

func lastGroup(m []string) string {
	for i := len(m) - 1; i >= 1; i-- {
		if s := strings.TrimSpace(m[i]); s != "" {
			return s
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
