// Package recommend asks the ML service which recipes fit the selected
// ingredients.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/ingredients"
	"github.com/hammamikhairi/cookmate/internal/logger"
	"github.com/hammamikhairi/cookmate/internal/recipe"
)

// Defaults applied to fields the service leaves out.
const (
	DefaultTopN        = 8
	DefaultRating      = 4.5
	DefaultDescription = "A delicious recipe perfect for any occasion."

	// canMakeThreshold is the match percentage above which a recipe counts
	// as makeable.
	canMakeThreshold = 45
)

// Service is the slice of the backend client the recommender needs.
type Service interface {
	Recommend(ctx context.Context, req api.RecommendRequest, withSubstitutes bool) (*api.RecommendResponse, error)
}

var _ Service = (*api.Client)(nil)

// Option configures the Recommender.
type Option func(*Recommender)

// WithTopN sets how many results are requested.
func WithTopN(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.topN = n
		}
	}
}

// Recommender issues recommendation requests. Only the most recently issued
// request may deliver results.
type Recommender struct {
	svc  Service
	log  *logger.Logger
	topN int
	seq  atomic.Uint64
}

// New creates a Recommender.
func New(svc Service, log *logger.Logger, opts ...Option) *Recommender {
	r := &Recommender{svc: svc, log: log, topN: DefaultTopN}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Result is a ranked recommendation list.
type Result struct {
	Recommendations []domain.Recommendation
	Message         string
	WithSubstitutes bool
}

// Recommend requests recipes for the given ingredients. A response that
// arrives after a newer request was issued is discarded with
// domain.ErrStaleResponse.
func (r *Recommender) Recommend(ctx context.Context, selected []string, withSubstitutes bool) (*Result, error) {
	names := make([]string, 0, len(selected))
	for _, s := range selected {
		if n := ingredients.NormalizeName(s); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, domain.ErrNoIngredients
	}

	token := r.seq.Add(1)
	r.log.Debug("recommend: request %d for %v (subs=%v)", token, names, withSubstitutes)

	resp, err := r.svc.Recommend(ctx, api.RecommendRequest{Ingredients: names, TopN: r.topN}, withSubstitutes)
	if r.seq.Load() != token {
		r.log.Debug("recommend: dropping stale response %d", token)
		return nil, domain.ErrStaleResponse
	}
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = "Failed to get recommendations from the server"
		}
		return nil, &api.Error{StatusCode: 200, Message: msg}
	}

	recs := make([]domain.Recommendation, 0, len(resp.Recommendations))
	for _, p := range resp.Recommendations {
		recs = append(recs, convert(p))
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchPercentage > recs[j].MatchPercentage
	})

	r.log.Info("recommend: %d results for %d ingredients", len(recs), len(names))
	return &Result{Recommendations: recs, Message: resp.Message, WithSubstitutes: withSubstitutes}, nil
}

func convert(p api.RecommendationPayload) domain.Recommendation {
	id := int(p.ID)
	if id == 0 {
		id = int(p.RecipeID)
	}
	name := firstNonEmpty(p.Name, p.Title, recipe.UntitledName)
	image := firstNonEmpty(p.Image, p.ImageURL, recipe.DefaultImage(name))

	rating := DefaultRating
	if p.Rating != nil && *p.Rating > 0 {
		rating = *p.Rating
	}
	usability := p.MatchPercentage
	if p.UsabilityScore != nil && *p.UsabilityScore > 0 {
		usability = *p.UsabilityScore
	}

	rec := domain.Recommendation{
		ID:                     id,
		Name:                   name,
		Image:                  image,
		Time:                   timeLabel(p.Time, int(p.CookingTime)),
		Rating:                 rating,
		Difficulty:             recipe.ClassifyDifficulty(p.Difficulty, recipe.DefaultCookTime),
		Cuisine:                firstNonEmpty(strings.TrimSpace(p.Cuisine), recipe.DefaultCuisine),
		Description:            firstNonEmpty(strings.TrimSpace(p.Description), DefaultDescription),
		Ingredients:            listOrNil(p.Ingredients, recipe.PlaceholderIngredients),
		Instructions:           recipe.NormalizeInstructions(p.Instructions),
		MatchPercentage:        p.MatchPercentage,
		CanMake:                p.MatchPercentage > canMakeThreshold,
		HasSubstitutions:       p.HasSubstitutions,
		MissingIngredients:     listOrNil(p.MissingIngredients, recipe.PlaceholderIngredients),
		IngredientsYouHave:     listOrNil(p.IngredientsYouHave, recipe.PlaceholderIngredients),
		Substitutes:            substitutes(p.Substitutes),
		CanMakeWithSubstitutes: p.CanMakeWithSubstitutes,
		UsabilityScore:         usability,
	}
	return rec
}

// listOrNil normalises a list field, reporting an absent one as nil rather
// than the placeholder.
func listOrNil(raw json.RawMessage, placeholder string) []string {
	list := recipe.NormalizeIngredients(raw)
	if len(list) == 1 && list[0] == placeholder {
		return nil
	}
	return list
}

// timeLabel renders the service's time field, which arrives as "30 mins",
// a bare number or nothing.
func timeLabel(raw json.RawMessage, cookingTime int) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			s = strings.TrimSpace(s)
			if _, err := strconv.Atoi(s); err == nil {
				return s + " mins"
			}
			if s != "" {
				return s
			}
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
			return strconv.Itoa(int(n)) + " mins"
		}
	}
	if cookingTime <= 0 {
		cookingTime = recipe.DefaultCookTime
	}
	return strconv.Itoa(cookingTime) + " mins"
}

// substitutes decodes {ingredient: [...]} where each entry is a name or an
// object carrying "substitute" or "substitute_name".
func substitutes(raw json.RawMessage) map[string][]string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for ing, v := range m {
		var entries []json.RawMessage
		if err := json.Unmarshal(v, &entries); err != nil {
			entries = []json.RawMessage{v}
		}
		var names []string
		for _, e := range entries {
			if n := substituteName(e); n != "" {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			out[ing] = names
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func substituteName(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Substitute     string `json:"substitute"`
		SubstituteName string `json:"substitute_name"`
		Name           string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return strings.TrimSpace(firstNonEmpty(obj.Substitute, obj.SubstituteName, obj.Name))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
