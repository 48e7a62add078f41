package e2e

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cookable/cookable/internal/cluster"
	"github.com/cookable/cookable/internal/keyword"
	"github.com/cookable/cookable/internal/models"
	"github.com/cookable/cookable/internal/recommend"
	"github.com/cookable/cookable/internal/store"
)

func buildModel(t *testing.T) *recommend.Model {
	t.Helper()
	corpus := BuildCorpus()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "recipes.csv")
	if err := WriteCSVDataset(csvPath, corpus.Recipes); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	recipes, err := store.Load(csvPath)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	cfg := cluster.Config{NClusters: corpus.NFamilies}
	cfg.ApplyDefaults()
	model, err := recommend.Build(recipes, cfg, recommend.DefaultScoringConfig())
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return model
}

func TestE2E_RecommendationsAcrossCorpus(t *testing.T) {
	model := buildModel(t)
	corpus := BuildCorpus()

	for _, tc := range corpus.Cases {
		tc := tc
		t.Run(tc.Description, func(t *testing.T) {
			maxMissing := tc.MaxMissing
			resp, err := model.Match(&models.MatchRequest{
				UserIngredients: tc.Ingredients,
				MaxMissing:      &maxMissing,
				TopN:            10,
			})
			if err != nil {
				t.Fatalf("match: %v", err)
			}
			if len(resp.Candidates) == 0 {
				t.Fatal("no candidates")
			}

			within := tc.TopWithin
			if within > len(resp.Candidates) {
				within = len(resp.Candidates)
			}
			found := false
			for _, c := range resp.Candidates[:within] {
				for _, want := range tc.ExpectedRecipes {
					if c.RecipeName == want {
						found = true
					}
				}
			}
			if !found {
				var got []string
				for _, c := range resp.Candidates[:within] {
					got = append(got, c.RecipeName)
				}
				t.Errorf("expected one of %v in top %d, got %v", tc.ExpectedRecipes, within, got)
			}

			prev := 2.0
			for _, c := range resp.Candidates {
				if c.FinalScore < 0 || c.FinalScore > 1 {
					t.Errorf("%s score %v outside [0,1]", c.RecipeName, c.FinalScore)
				}
				if c.FinalScore > prev {
					t.Errorf("candidates not sorted descending at %s", c.RecipeName)
				}
				prev = c.FinalScore
				if c.NumMissing > tc.MaxMissing {
					t.Errorf("%s has %d missing, allowance %d", c.RecipeName, c.NumMissing, tc.MaxMissing)
				}
			}
		})
	}
}

func TestE2E_ClusteringStructure(t *testing.T) {
	model := buildModel(t)
	corpus := BuildCorpus()

	if !model.Clustered() {
		t.Fatal("model should be clustered")
	}
	if model.NumClusters() != corpus.NFamilies {
		t.Fatalf("NumClusters = %d, want %d", model.NumClusters(), corpus.NFamilies)
	}
	for _, r := range model.Recipes() {
		if r.ClusterID < 0 || r.ClusterID >= corpus.NFamilies {
			t.Errorf("recipe %q has cluster %d outside [0,%d)", r.Name, r.ClusterID, corpus.NFamilies)
		}
	}
	summaries := model.ClusterSummaries()
	if len(summaries) != corpus.NFamilies {
		t.Fatalf("got %d summaries, want %d", len(summaries), corpus.NFamilies)
	}
	total := 0
	for _, s := range summaries {
		total += s.NumRecipes
		if s.Popularity < 0 || s.Popularity > 1 {
			t.Errorf("cluster %d popularity %v outside [0,1]", s.ClusterID, s.Popularity)
		}
	}
	if total != len(corpus.Recipes) {
		t.Errorf("summaries cover %d recipes, want %d", total, len(corpus.Recipes))
	}
}

func TestE2E_DeterministicRebuild(t *testing.T) {
	first := buildModel(t)
	second := buildModel(t)

	a, b := first.Recipes(), second.Recipes()
	if len(a) != len(b) {
		t.Fatalf("rebuild changed recipe count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ClusterID != b[i].ClusterID {
			t.Errorf("recipe %q cluster changed across rebuilds: %d vs %d", a[i].Name, a[i].ClusterID, b[i].ClusterID)
		}
	}
	for id := 0; id < first.NumClusters(); id++ {
		if first.ClusterPopularity(id) != second.ClusterPopularity(id) {
			t.Errorf("cluster %d popularity changed across rebuilds", id)
		}
	}
}

func TestE2E_KeywordSearchOverCorpus(t *testing.T) {
	model := buildModel(t)

	index, err := keyword.NewIndex(model.Recipes())
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	defer index.Close()

	hits, err := index.Search("curry", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("no hits for curry")
	}
	for _, hit := range hits {
		recipe := model.Recipe(hit.Name)
		if recipe == nil {
			t.Fatalf("hit %q not in model", hit.Name)
		}
		joined := strings.ToLower(recipe.Name + " " + strings.Join(recipe.Ingredients, " "))
		if !strings.Contains(joined, "curry") {
			t.Errorf("hit %q does not mention curry", hit.Name)
		}
	}
}
