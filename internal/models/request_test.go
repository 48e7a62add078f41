package models

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestMatchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *MatchRequest
		wantErr bool
	}{
		{"empty ingredients is valid", &MatchRequest{}, false},
		{"sets default top_n", &MatchRequest{UserIngredients: []string{"Eggs"}, TopN: 0}, false},
		{"caps top_n at 50", &MatchRequest{UserIngredients: []string{"Eggs"}, TopN: 500}, false},
		{"explicit zero max_missing allowed", &MatchRequest{MaxMissing: intPtr(0)}, false},
		{"negative max_missing rejected", &MatchRequest{MaxMissing: intPtr(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ie *InvalidInputError
				if !errors.As(err, &ie) {
					t.Errorf("expected InvalidInputError, got %T", err)
				}
				return
			}
			if tt.req.TopN <= 0 {
				t.Error("expected default top_n to be set")
			}
			if tt.req.TopN > 50 {
				t.Errorf("expected top_n capped at 50, got %d", tt.req.TopN)
			}
		})
	}
}

func TestMatchRequest_Validate_TrimsIngredients(t *testing.T) {
	req := &MatchRequest{UserIngredients: []string{"  Eggs ", "", "Flour", "   "}}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	want := []string{"Eggs", "Flour"}
	if len(req.UserIngredients) != len(want) {
		t.Fatalf("got %v, want %v", req.UserIngredients, want)
	}
	for i, ing := range want {
		if req.UserIngredients[i] != ing {
			t.Errorf("ingredient %d = %q, want %q", i, req.UserIngredients[i], ing)
		}
	}
}

func TestMatchRequest_MaxMissingOrDefault(t *testing.T) {
	req := &MatchRequest{}
	if got := req.MaxMissingOrDefault(); got != DefaultMaxMissing {
		t.Errorf("unset max_missing = %d, want %d", got, DefaultMaxMissing)
	}
	req.MaxMissing = intPtr(0)
	if got := req.MaxMissingOrDefault(); got != 0 {
		t.Errorf("explicit zero = %d, want 0", got)
	}
}

func TestSplitIngredients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "Eggs,Milk,Flour", []string{"Eggs", "Milk", "Flour"}},
		{"trims whitespace", " Eggs , Milk ,Flour ", []string{"Eggs", "Milk", "Flour"}},
		{"collapses duplicates", "Eggs,Eggs,Milk", []string{"Eggs", "Milk"}},
		{"drops empties", "Eggs,,Milk,", []string{"Eggs", "Milk"}},
		{"empty cell", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIngredients(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitIngredients(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("element %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
