package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cookable/cookable/internal/models"
)

const sampleCSV = `recipe_name,ingredients,cooking_time,rating,difficulty,instructions
Pancakes,"Eggs,Flour,Milk",10,5,easy,Mix and fry.
Bacon and Eggs,"Eggs,Bacon",20,3,easy,Fry everything.
Chicken Rice,"Rice,Chicken,Soy sauce",30,4,medium,Cook rice then chicken.
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	recipes, err := LoadCSV(writeTempCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(recipes) != 3 {
		t.Fatalf("got %d recipes, want 3", len(recipes))
	}
	first := recipes[0]
	if first.Name != "Pancakes" {
		t.Errorf("first recipe = %q, want Pancakes", first.Name)
	}
	if len(first.Ingredients) != 3 || first.Ingredients[0] != "Eggs" {
		t.Errorf("unexpected ingredients: %v", first.Ingredients)
	}
	if first.CookingTime != 10 || first.Rating != 5 {
		t.Errorf("unexpected fields: time=%d rating=%g", first.CookingTime, first.Rating)
	}
	if first.ClusterID != models.UnassignedCluster {
		t.Errorf("cluster id = %d, want unassigned", first.ClusterID)
	}
}

func TestLoadCSV_PreservesOrder(t *testing.T) {
	recipes, err := LoadCSV(writeTempCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	want := []string{"Pancakes", "Bacon and Eggs", "Chicken Rice"}
	for i, name := range want {
		if recipes[i].Name != name {
			t.Errorf("recipe %d = %q, want %q", i, recipes[i].Name, name)
		}
	}
}

func TestLoadCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing column", "recipe_name,ingredients\nPancakes,\"Eggs\"\n"},
		{"empty name", "recipe_name,ingredients,cooking_time,rating,difficulty,instructions\n,\"Eggs\",10,5,easy,x\n"},
		{"empty ingredients", "recipe_name,ingredients,cooking_time,rating,difficulty,instructions\nPancakes,\"\",10,5,easy,x\n"},
		{"bad cooking time", "recipe_name,ingredients,cooking_time,rating,difficulty,instructions\nPancakes,\"Eggs\",soon,5,easy,x\n"},
		{"zero cooking time", "recipe_name,ingredients,cooking_time,rating,difficulty,instructions\nPancakes,\"Eggs\",0,5,easy,x\n"},
		{"rating out of range", "recipe_name,ingredients,cooking_time,rating,difficulty,instructions\nPancakes,\"Eggs\",10,6,easy,x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(writeTempCSV(t, tt.csv))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var dse *models.DataSourceError
			if !errors.As(err, &dse) {
				t.Errorf("expected DataSourceError, got %T: %v", err, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var dse *models.DataSourceError
	if !errors.As(err, &dse) {
		t.Errorf("expected DataSourceError, got %T", err)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load("recipes.toml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "recipes.db")
	s, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	recipes, err := LoadCSV(writeTempCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if err := s.PutAll(recipes); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	got, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 3 || got[0].Name != "Pancakes" || got[2].Name != "Chicken Rice" {
		t.Errorf("unexpected corpus order: %v", names(got))
	}

	one, err := s.Get("Bacon and Eggs")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if one.Rating != 3 || len(one.Ingredients) != 2 {
		t.Errorf("unexpected recipe: %+v", one)
	}
}

func TestSQLiteStore_PutAll_Upsert(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "recipes.db")
	s, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	original := &models.Recipe{Name: "Pancakes", Ingredients: []string{"Eggs", "Flour"}, CookingTime: 10, Rating: 4}
	if err := s.PutAll([]*models.Recipe{original}); err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	updated := &models.Recipe{Name: "Pancakes", Ingredients: []string{"Eggs", "Flour", "Milk"}, CookingTime: 12, Rating: 5}
	if err := s.PutAll([]*models.Recipe{updated}); err != nil {
		t.Fatalf("PutAll update: %v", err)
	}

	n, _ := s.Count()
	if n != 1 {
		t.Fatalf("Count = %d, want 1 after upsert", n)
	}
	got, err := s.Get("Pancakes")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Rating != 5 || len(got.Ingredients) != 3 {
		t.Errorf("upsert did not replace fields: %+v", got)
	}
}

func names(recipes []*models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}
