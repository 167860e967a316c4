package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

type fakeService struct {
	resp   *api.RecommendResponse
	err    error
	got    api.RecommendRequest
	subs   bool
	onCall func()
}

func (f *fakeService) Recommend(_ context.Context, req api.RecommendRequest, withSubs bool) (*api.RecommendResponse, error) {
	f.got = req
	f.subs = withSubs
	if f.onCall != nil {
		f.onCall()
	}
	return f.resp, f.err
}

func payload(t *testing.T, js string) api.RecommendationPayload {
	t.Helper()
	var p api.RecommendationPayload
	require.NoError(t, json.Unmarshal([]byte(js), &p))
	return p
}

func TestRecommendEmptySelection(t *testing.T) {
	r := New(&fakeService{}, logger.New(logger.LevelOff, nil))
	_, err := r.Recommend(context.Background(), []string{"  ", "!!"}, false)
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestRecommendSortsAndDefaults(t *testing.T) {
	svc := &fakeService{resp: &api.RecommendResponse{
		Success: true,
		Message: "Found 2 recipes",
		Recommendations: []api.RecommendationPayload{
			payload(t, `{"id": 1, "name": "Aloo Gobi", "match_percentage": 40, "time": 25}`),
			payload(t, `{"id": 2, "name": "Paneer Tikka", "match_percentage": 90, "rating": 4.8,
				"difficulty": "hard", "time": "35 mins", "usability_score": 70,
				"missing_ingredients": ["Cream"],
				"substitutes": {"Cream": [{"substitute": "Yogurt"}, "Milk"]}}`),
		},
	}}
	r := New(svc, logger.New(logger.LevelOff, nil), WithTopN(5))

	res, err := r.Recommend(context.Background(), []string{" tomato!! ", "ONION"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tomato", "Onion"}, svc.got.Ingredients)
	assert.Equal(t, 5, svc.got.TopN)
	assert.True(t, svc.subs)
	assert.Equal(t, "Found 2 recipes", res.Message)

	require.Len(t, res.Recommendations, 2)
	top, low := res.Recommendations[0], res.Recommendations[1]

	assert.Equal(t, "Paneer Tikka", top.Name)
	assert.True(t, top.CanMake)
	assert.Equal(t, 4.8, top.Rating)
	assert.Equal(t, domain.DifficultyHard, top.Difficulty)
	assert.Equal(t, "35 mins", top.Time)
	assert.Equal(t, 70.0, top.UsabilityScore)
	assert.Equal(t, []string{"Cream"}, top.MissingIngredients)
	assert.Equal(t, map[string][]string{"Cream": {"Yogurt", "Milk"}}, top.Substitutes)

	assert.False(t, low.CanMake)
	assert.Equal(t, DefaultRating, low.Rating)
	assert.Equal(t, domain.DifficultyMedium, low.Difficulty)
	assert.Equal(t, "Indian", low.Cuisine)
	assert.Equal(t, DefaultDescription, low.Description)
	assert.Equal(t, "25 mins", low.Time)
	assert.Equal(t, 40.0, low.UsabilityScore)
	assert.Nil(t, low.Ingredients)
	assert.NotEmpty(t, low.Instructions)
}

func TestRecommendThreshold(t *testing.T) {
	svc := &fakeService{resp: &api.RecommendResponse{
		Success:         true,
		Recommendations: []api.RecommendationPayload{payload(t, `{"id": 1, "match_percentage": 45}`)},
	}}
	r := New(svc, logger.New(logger.LevelOff, nil))

	res, err := r.Recommend(context.Background(), []string{"rice"}, false)
	require.NoError(t, err)
	assert.False(t, res.Recommendations[0].CanMake, "exactly 45 is not makeable")
}

func TestRecommendUnsuccessful(t *testing.T) {
	svc := &fakeService{resp: &api.RecommendResponse{Success: false, Error: "model offline"}}
	r := New(svc, logger.New(logger.LevelOff, nil))

	_, err := r.Recommend(context.Background(), []string{"rice"}, false)
	assert.Equal(t, "model offline", api.UserMessage(err))
}

func TestRecommendTransportError(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	r := New(svc, logger.New(logger.LevelOff, nil))

	_, err := r.Recommend(context.Background(), []string{"rice"}, false)
	assert.Error(t, err)
}

func TestRecommendDiscardsStaleResponse(t *testing.T) {
	svc := &fakeService{resp: &api.RecommendResponse{Success: true}}
	r := New(svc, logger.New(logger.LevelOff, nil))

	// A second search starts while the first is in flight.
	svc.onCall = func() {
		svc.onCall = nil
		_, err := r.Recommend(context.Background(), []string{"onion"}, false)
		assert.NoError(t, err)
	}

	_, err := r.Recommend(context.Background(), []string{"rice"}, false)
	assert.ErrorIs(t, err, domain.ErrStaleResponse)
}
