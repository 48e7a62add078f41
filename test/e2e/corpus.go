// Package e2e provides end-to-end tests with a generated recipe corpus and
// multiple recommendation cases.
package e2e

import (
	"fmt"

	"github.com/cookable/cookable/internal/models"
)

// MatchCase defines a pantry and the recipe name(s) expected near the top of
// the recommendations. At least one of ExpectedRecipes must appear within the
// first TopWithin candidates.
type MatchCase struct {
	Ingredients     []string
	MaxMissing      int
	ExpectedRecipes []string
	TopWithin       int
	Description     string
}

// Corpus holds recipes and recommendation cases for E2E tests.
type Corpus struct {
	Recipes   []*models.Recipe
	Cases     []MatchCase
	NFamilies int
}

// cuisine families with disjoint core ingredient sets, so clustering has real
// structure to find. Each family also gets per-recipe extras for variety.
var families = []struct {
	name string
	core []string
}{
	{"Pasta", []string{"Pasta", "Tomato", "Basil", "Parmesan", "Garlic"}},
	{"Donburi", []string{"Rice", "Soy sauce", "Mirin", "Nori", "Scallion"}},
	{"Taco", []string{"Tortilla", "Black beans", "Corn", "Lime", "Cilantro"}},
	{"Curry", []string{"Lentils", "Curry powder", "Ginger", "Coconut milk", "Onion"}},
	{"Bake", []string{"Flour", "Eggs", "Milk", "Sugar", "Baking powder"}},
}

const recipesPerFamily = 12

// BuildCorpus returns a deterministic corpus of recipes across several cuisine
// families. Recipe 0 of each family uses exactly the family core with the top
// rating and the shortest time, so pantries holding a full core have an
// unambiguous best answer.
func BuildCorpus() *Corpus {
	var recipes []*models.Recipe
	for f, fam := range families {
		for i := 0; i < recipesPerFamily; i++ {
			ingredients := append([]string{}, fam.core...)
			if i > 0 {
				ingredients = append(ingredients, fmt.Sprintf("%s special %d", fam.name, i))
			}
			rating := 5.0 - 0.5*float64(i%5)
			cookingTime := 15 + 5*(i%7)
			if i == 0 {
				rating = 5.0
				cookingTime = 10
			}
			recipes = append(recipes, &models.Recipe{
				Name:         fmt.Sprintf("%s No. %d", fam.name, i+1),
				Ingredients:  ingredients,
				CookingTime:  cookingTime,
				Rating:       rating,
				Difficulty:   []string{"easy", "medium", "hard"}[(f+i)%3],
				Instructions: fmt.Sprintf("Combine the %s base and cook.", fam.name),
				ClusterID:    models.UnassignedCluster,
			})
		}
	}

	cases := []MatchCase{}
	for _, fam := range families {
		cases = append(cases, MatchCase{
			Ingredients:     append([]string{}, fam.core...),
			MaxMissing:      0,
			ExpectedRecipes: []string{fam.name + " No. 1"},
			TopWithin:       1,
			Description:     fmt.Sprintf("full %s core with no missing allowed", fam.name),
		})
		cases = append(cases, MatchCase{
			Ingredients:     append([]string{}, fam.core...),
			MaxMissing:      2,
			ExpectedRecipes: []string{fam.name + " No. 1"},
			TopWithin:       3,
			Description:     fmt.Sprintf("full %s core against the whole family", fam.name),
		})
	}
	// Partial pantry: core minus one, default missing allowance.
	cases = append(cases, MatchCase{
		Ingredients:     []string{"Pasta", "Tomato", "Basil", "Parmesan"},
		MaxMissing:      2,
		ExpectedRecipes: []string{"Pasta No. 1"},
		TopWithin:       3,
		Description:     "pasta core minus garlic",
	})

	return &Corpus{
		Recipes:   recipes,
		Cases:     cases,
		NFamilies: len(families),
	}
}
