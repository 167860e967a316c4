package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFlexIntDecoding(t *testing.T) {
	tests := []struct {
		in   string
		want FlexInt
	}{
		{`12`, 12},
		{`"45"`, 45},
		{`" 7 "`, 7},
		{`29.6`, 30},
		{`null`, 0},
		{`"soon"`, 0},
		{`true`, 0},
		{`1e300`, math.MaxInt32},
		{`-1e300`, math.MinInt32},
		{`"9e99"`, math.MaxInt32},
	}

	for _, tt := range tests {
		var got FlexInt
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("FlexInt(%s): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("FlexInt(%s): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestFlexStringDecoding(t *testing.T) {
	tests := []struct {
		in   string
		want FlexString
	}{
		{`"Medium"`, "Medium"},
		{`2`, "2"},
		{`4.5`, "4.5"},
		{`false`, "false"},
		{`null`, ""},
		{`{"name":"x"}`, ""},
		{`["a","b"]`, ""},
	}

	for _, tt := range tests {
		var got FlexString
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("FlexString(%s): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("FlexString(%s): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRawRecipeSurvivesLooseRecord(t *testing.T) {
	data := `{"recipe_id": 3, "title": 42, "difficulty": 2, "cuisine": ["x"], "cooking_time": "25", "created_at": 1700000000}`
	var r RawRecipe
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Identifier() != 3 || r.Title != "42" || r.Difficulty != "2" || r.Cuisine != "" || r.CookingTime != 25 {
		t.Fatalf("unexpected decode: %+v", r)
	}
	if r.CreatedAt != "1700000000" {
		t.Fatalf("created_at: expected literal number text, got %q", r.CreatedAt)
	}
}
