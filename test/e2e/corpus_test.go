package e2e

import "testing"

func TestBuildCorpus(t *testing.T) {
	corpus := BuildCorpus()
	if len(corpus.Recipes) != corpus.NFamilies*recipesPerFamily {
		t.Fatalf("corpus has %d recipes, want %d", len(corpus.Recipes), corpus.NFamilies*recipesPerFamily)
	}
	if len(corpus.Cases) == 0 {
		t.Fatal("corpus has no match cases")
	}

	seen := make(map[string]bool)
	for _, r := range corpus.Recipes {
		if seen[r.Name] {
			t.Errorf("duplicate recipe name %q", r.Name)
		}
		seen[r.Name] = true
		if len(r.Ingredients) == 0 {
			t.Errorf("recipe %q has no ingredients", r.Name)
		}
		if r.Rating < 1 || r.Rating > 5 {
			t.Errorf("recipe %q rating %v out of range", r.Name, r.Rating)
		}
		if r.CookingTime <= 0 {
			t.Errorf("recipe %q time %d out of range", r.Name, r.CookingTime)
		}
	}

	for _, tc := range corpus.Cases {
		for _, name := range tc.ExpectedRecipes {
			if !seen[name] {
				t.Errorf("case %q expects unknown recipe %q", tc.Description, name)
			}
		}
	}
}
