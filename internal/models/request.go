package models

import "strings"

// DefaultMaxMissing is the number of missing ingredients allowed when a
// request does not specify one.
const DefaultMaxMissing = 2

// MatchRequest represents a recommendation request.
// MaxMissing is a pointer so that an explicit 0 (require every ingredient)
// can be told apart from an absent field, which defaults to 2.
type MatchRequest struct {
	UserIngredients []string `json:"user_ingredients"`
	MaxMissing      *int     `json:"max_missing,omitempty"`
	TopN            int      `json:"top_n,omitempty"`
}

// MaxMissingOrDefault returns the allowed missing-ingredient count,
// defaulting to DefaultMaxMissing when unset.
func (q *MatchRequest) MaxMissingOrDefault() int {
	if q.MaxMissing != nil {
		return *q.MaxMissing
	}
	return DefaultMaxMissing
}

// Validate normalizes the request and sets defaults.
// An empty ingredient list is valid: pantry staples still apply during matching.
// Returns an InvalidInputError for a negative max_missing.
func (q *MatchRequest) Validate() error {
	if q.MaxMissing != nil && *q.MaxMissing < 0 {
		return &InvalidInputError{Field: "max_missing", Reason: "must not be negative"}
	}
	if q.TopN <= 0 {
		q.TopN = 5
	}
	if q.TopN > 50 {
		q.TopN = 50
	}

	trimmed := make([]string, 0, len(q.UserIngredients))
	for _, ing := range q.UserIngredients {
		if s := strings.TrimSpace(ing); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	q.UserIngredients = trimmed
	return nil
}
