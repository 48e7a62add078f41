// Package recommend builds the immutable recommendation model and serves
// ranked recipe matches against it.
package recommend

import (
	"time"

	"github.com/cookable/cookable/internal/cluster"
	"github.com/cookable/cookable/internal/models"
	"github.com/cookable/cookable/internal/vectorizer"
)

// Model is an immutable snapshot of the trained recommendation state: the
// corpus with cluster assignments, the ingredient vocabulary, and the cluster
// popularity map. A Model is produced whole by Build and never mutated, so
// concurrent matching requests can share one snapshot without locking;
// rebuilding produces a new Model that replaces the old one atomically.
type Model struct {
	recipes    []*models.Recipe
	byName     map[string]*models.Recipe
	vocabulary []string
	popularity map[int]float64
	summaries  []*models.ClusterSummary
	clusterCfg cluster.Config
	scoring    *ScoringConfig
	builtAt    time.Time
}

// Build vectorizes the corpus, trains the cluster engine, and computes
// cluster popularity, returning a fully trained Model. The input slice is
// not modified; cluster assignments are written onto copies. Any error
// (invalid k, empty cluster) aborts the build with no partial state.
func Build(recipes []*models.Recipe, clusterCfg cluster.Config, scoring *ScoringConfig) (*Model, error) {
	clusterCfg.ApplyDefaults()
	if scoring == nil {
		scoring = DefaultScoringConfig()
	}

	vocabulary, matrix := vectorizer.Vectorize(recipes)

	result, err := cluster.Train(matrix, clusterCfg)
	if err != nil {
		return nil, err
	}

	clustered := make([]*models.Recipe, len(recipes))
	byName := make(map[string]*models.Recipe, len(recipes))
	for i, r := range recipes {
		cp := *r
		cp.ClusterID = result.Assignments[i]
		clustered[i] = &cp
		byName[cp.Name] = &cp
	}

	popularity, err := cluster.Popularity(clustered, clusterCfg.NClusters)
	if err != nil {
		return nil, err
	}

	return &Model{
		recipes:    clustered,
		byName:     byName,
		vocabulary: vocabulary,
		popularity: popularity,
		summaries:  cluster.Summaries(clustered, popularity, clusterCfg.NClusters),
		clusterCfg: clusterCfg,
		scoring:    scoring,
		builtAt:    time.Now(),
	}, nil
}

// BuildUnclustered returns a model without cluster training: matching works
// and the cluster boost is zero for every recipe. Used when the corpus is too
// small or uniform to cluster meaningfully.
func BuildUnclustered(recipes []*models.Recipe, scoring *ScoringConfig) *Model {
	if scoring == nil {
		scoring = DefaultScoringConfig()
	}
	copies := make([]*models.Recipe, len(recipes))
	byName := make(map[string]*models.Recipe, len(recipes))
	for i, r := range recipes {
		cp := *r
		cp.ClusterID = models.UnassignedCluster
		copies[i] = &cp
		byName[cp.Name] = &cp
	}
	return &Model{
		recipes:    copies,
		byName:     byName,
		vocabulary: vectorizer.BuildVocabulary(recipes),
		scoring:    scoring,
		builtAt:    time.Now(),
	}
}

// Recipes returns the corpus snapshot in source order.
func (m *Model) Recipes() []*models.Recipe { return m.recipes }

// Recipe returns the recipe with the given name, or nil if unknown.
func (m *Model) Recipe(name string) *models.Recipe { return m.byName[name] }

// Vocabulary returns the sorted corpus-wide ingredient vocabulary.
func (m *Model) Vocabulary() []string { return m.vocabulary }

// Clustered reports whether the model carries trained cluster assignments.
func (m *Model) Clustered() bool { return m.popularity != nil }

// ClusterPopularity returns the normalized popularity for clusterID,
// or the neutral default for unknown ids.
func (m *Model) ClusterPopularity(clusterID int) float64 {
	return cluster.Lookup(m.popularity, clusterID)
}

// ClusterSummaries returns per-cluster statistics, or nil for an
// unclustered model.
func (m *Model) ClusterSummaries() []*models.ClusterSummary { return m.summaries }

// NumClusters returns the trained k, or 0 for an unclustered model.
func (m *Model) NumClusters() int {
	if m.popularity == nil {
		return 0
	}
	return m.clusterCfg.NClusters
}

// BuiltAt returns when the model was built.
func (m *Model) BuiltAt() time.Time { return m.builtAt }
