package recommend

import (
	"sort"
	"time"

	"github.com/cookable/cookable/internal/models"
)

// Match filters the corpus to feasible recipes for the requested ingredients,
// scores them, and returns the top candidates ranked by final score.
//
// The user's ingredients are first augmented with the pantry staples, so
// staples never count as missing. A recipe is feasible when the number of
// missing ingredients does not exceed max_missing. Feasible recipes get a
// base score from four weighted factors (match ratio, missing penalty, time
// factor, rating factor) blended with a cluster boost derived from the
// recipe's own rating and its cluster's popularity.
//
// Ranking is stable: equal final scores keep corpus order. Match has no side
// effects; it reads only the immutable model snapshot.
func (m *Model) Match(req *models.MatchRequest) (*models.MatchResponse, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	maxMissing := req.MaxMissingOrDefault()

	available := make(map[string]bool, len(req.UserIngredients)+len(m.scoring.Pantry))
	for _, ing := range req.UserIngredients {
		available[ing] = true
	}
	for _, ing := range m.scoring.Pantry {
		available[ing] = true
	}

	var candidates []*models.MatchCandidate
	for _, recipe := range m.recipes {
		// Iterate the recipe's ingredient list rather than a set so the
		// reported matching/missing order is deterministic.
		var matching, missing []string
		for _, ing := range recipe.Ingredients {
			if available[ing] {
				matching = append(matching, ing)
			} else {
				missing = append(missing, ing)
			}
		}

		if len(missing) > maxMissing {
			continue
		}

		base := m.baseScore(len(matching), len(missing), len(recipe.Ingredients), recipe)
		boost := m.clusterBoost(recipe)
		final := m.scoring.BaseBlend*base + m.scoring.BoostBlend*boost

		candidates = append(candidates, &models.MatchCandidate{
			RecipeName:          recipe.Name,
			FinalScore:          final,
			BaseScore:           base,
			ClusterBoost:        boost,
			ClusterID:           recipe.ClusterID,
			MatchingIngredients: matching,
			MissingIngredients:  missing,
			NumMatching:         len(matching),
			NumMissing:          len(missing),
			Rating:              recipe.Rating,
			CookingTime:         recipe.CookingTime,
			Difficulty:          recipe.Difficulty,
			Instructions:        recipe.Instructions,
			AllIngredients:      recipe.Ingredients,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalScore > candidates[j].FinalScore
	})

	total := len(candidates)
	if len(candidates) > req.TopN {
		candidates = candidates[:req.TopN]
	}

	return &models.MatchResponse{
		Candidates:    candidates,
		TotalFeasible: total,
		TookMS:        time.Since(start).Milliseconds(),
	}, nil
}

// baseScore combines the four rule-based factors into [0,1].
func (m *Model) baseScore(numMatching, numMissing, numTotal int, recipe *models.Recipe) float64 {
	matchRatio := 0.0
	if numTotal > 0 {
		matchRatio = float64(numMatching) / float64(numTotal)
	}

	timeFactor := 1 - float64(recipe.CookingTime)/m.scoring.MaxTimeMinutes
	if timeFactor < 0 {
		timeFactor = 0
	}

	return m.scoring.MatchWeight*matchRatio +
		m.scoring.MissingWeight*missingPenalty(numMissing) +
		m.scoring.TimeWeight*timeFactor +
		m.scoring.RatingWeight*ratingFactor(recipe.Rating)
}

// clusterBoost blends the recipe's normalized rating with its cluster's
// popularity. Returns 0 when the model is unclustered.
func (m *Model) clusterBoost(recipe *models.Recipe) float64 {
	if !m.Clustered() {
		return 0
	}
	return m.scoring.BoostRatingWeight*ratingFactor(recipe.Rating) +
		m.scoring.BoostPopularityWeight*m.ClusterPopularity(recipe.ClusterID)
}
