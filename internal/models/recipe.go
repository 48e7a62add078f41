// Package models defines core data structures for recipes, match requests, and results.
package models

import "strings"

// UnassignedCluster is the cluster id of a recipe before clustering has run.
const UnassignedCluster = -1

// Recipe represents a recipe loaded from the corpus.
// Name is the unique lookup key; uniqueness is an invariant of the dataset.
type Recipe struct {
	Name         string   `json:"recipe_name" db:"recipe_name"`
	Ingredients  []string `json:"ingredients" db:"ingredients"`
	CookingTime  int      `json:"cooking_time" db:"cooking_time"`
	Rating       float64  `json:"rating" db:"rating"`
	Difficulty   string   `json:"difficulty" db:"difficulty"`
	Instructions string   `json:"instructions" db:"instructions"`
	ClusterID    int      `json:"cluster_id" db:"cluster_id"`
}

// IngredientSet returns the recipe's ingredients as a set.
func (r *Recipe) IngredientSet() map[string]bool {
	set := make(map[string]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		set[ing] = true
	}
	return set
}

// SplitIngredients parses a comma-separated ingredient cell into a trimmed list.
// Duplicates collapse keeping the first occurrence; empty entries are dropped.
func SplitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		ing := strings.TrimSpace(p)
		if ing == "" || seen[ing] {
			continue
		}
		seen[ing] = true
		out = append(out, ing)
	}
	return out
}
