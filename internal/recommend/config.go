package recommend

// ScoringConfig holds the weights for the two-stage scoring blend.
// The defaults are the tuned production weights; the base factors form a
// convex combination so the base score stays in [0,1].
type ScoringConfig struct {
	// Base score factor weights
	MatchWeight   float64 `yaml:"match_weight"`   // default: 0.4
	MissingWeight float64 `yaml:"missing_weight"` // default: 0.3
	TimeWeight    float64 `yaml:"time_weight"`    // default: 0.1
	RatingWeight  float64 `yaml:"rating_weight"`  // default: 0.2

	// Cluster boost component weights
	BoostRatingWeight     float64 `yaml:"boost_rating_weight"`     // default: 0.2
	BoostPopularityWeight float64 `yaml:"boost_popularity_weight"` // default: 0.2

	// Final blend: final = BaseBlend*base + BoostBlend*boost
	BaseBlend  float64 `yaml:"base_blend"`  // default: 0.6
	BoostBlend float64 `yaml:"boost_blend"` // default: 0.4

	// MaxTimeMinutes is the cooking time at which the time factor reaches 0.
	MaxTimeMinutes float64 `yaml:"max_time_minutes"` // default: 60

	// Pantry are staple ingredients always treated as available,
	// never counted as missing.
	Pantry []string `yaml:"pantry"`
}

// DefaultPantry returns the staple ingredients assumed always available.
func DefaultPantry() []string {
	return []string{"Salt", "Pepper", "Oil", "Butter", "Olive oil", "Vegetable oil", "Black pepper"}
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	cfg := &ScoringConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults sets default values for any zero fields.
func (c *ScoringConfig) ApplyDefaults() {
	if c.MatchWeight == 0 {
		c.MatchWeight = 0.4
	}
	if c.MissingWeight == 0 {
		c.MissingWeight = 0.3
	}
	if c.TimeWeight == 0 {
		c.TimeWeight = 0.1
	}
	if c.RatingWeight == 0 {
		c.RatingWeight = 0.2
	}
	if c.BoostRatingWeight == 0 {
		c.BoostRatingWeight = 0.2
	}
	if c.BoostPopularityWeight == 0 {
		c.BoostPopularityWeight = 0.2
	}
	if c.BaseBlend == 0 {
		c.BaseBlend = 0.6
	}
	if c.BoostBlend == 0 {
		c.BoostBlend = 0.4
	}
	if c.MaxTimeMinutes == 0 {
		c.MaxTimeMinutes = 60
	}
	if c.Pantry == nil {
		c.Pantry = DefaultPantry()
	}
}

// missingPenalty is the step penalty for missing ingredients: 1.0 for none,
// 0.8 for one, 0.6 for two, and flat 0 for anything above two. The flat zero
// is kept for callers that raise max_missing past two.
func missingPenalty(numMissing int) float64 {
	switch numMissing {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.6
	default:
		return 0.0
	}
}

// ratingFactor maps a [1,5] rating linearly to [0,1].
func ratingFactor(rating float64) float64 {
	return (rating - 1) / 4
}
