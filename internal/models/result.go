package models

// MatchCandidate is a single recommended recipe with its score breakdown.
// Candidates are built fresh per request and never persisted.
type MatchCandidate struct {
	RecipeName          string   `json:"recipe_name"`
	FinalScore          float64  `json:"final_score"`
	BaseScore           float64  `json:"base_score"`
	ClusterBoost        float64  `json:"cluster_boost"`
	ClusterID           int      `json:"cluster_id"`
	MatchingIngredients []string `json:"matching_ingredients"`
	MissingIngredients  []string `json:"missing_ingredients"`
	NumMatching         int      `json:"num_matching"`
	NumMissing          int      `json:"num_missing"`
	Rating              float64  `json:"rating"`
	CookingTime         int      `json:"cooking_time"`
	Difficulty          string   `json:"difficulty"`
	Instructions        string   `json:"instructions"`
	AllIngredients      []string `json:"all_ingredients"`
}

// MatchResponse is the response for a recommendation request.
type MatchResponse struct {
	Candidates    []*MatchCandidate `json:"candidates"`
	TotalFeasible int               `json:"total_feasible"`
	TookMS        int64             `json:"took_ms"`
}

// ClusterSummary describes one trained cluster.
type ClusterSummary struct {
	ClusterID      int      `json:"cluster_id"`
	NumRecipes     int      `json:"num_recipes"`
	AvgRating      float64  `json:"avg_rating"`
	Popularity     float64  `json:"popularity_score"`
	ExampleRecipes []string `json:"example_recipes"`
}

// RecipeHit is a keyword search hit for recipe browsing.
type RecipeHit struct {
	Recipe *Recipe `json:"recipe"`
	Score  float64 `json:"score"`
}
