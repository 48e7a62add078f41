// Package store loads the recipe corpus from flat-file or database sources.
package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cookable/cookable/internal/models"
)

// requiredColumns are the dataset columns every backend must provide.
var requiredColumns = []string{
	"recipe_name", "ingredients", "cooking_time", "rating", "difficulty", "instructions",
}

// Load reads the full recipe corpus from path, choosing the backend by file
// extension: .csv, .xlsx, or .db/.sqlite/.sqlite3. The returned slice preserves
// source order. Any malformed row aborts the load with a DataSourceError; no
// partial corpus is returned.
func Load(path string) ([]*models.Recipe, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	case ".db", ".sqlite", ".sqlite3":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.All()
	default:
		return nil, &models.DataSourceError{
			Source: path,
			Reason: fmt.Sprintf("unsupported dataset format %q", filepath.Ext(path)),
		}
	}
}

// buildRecipe validates one raw record and converts it into a Recipe.
// row is 1-based and names the offending record in errors.
func buildRecipe(source string, row int, name, ingredients string, cookingTime int, rating float64, difficulty, instructions string) (*models.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("row %d: empty recipe_name", row)}
	}
	ings := models.SplitIngredients(ingredients)
	if len(ings) == 0 {
		return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("row %d (%s): empty ingredients", row, name)}
	}
	if cookingTime <= 0 {
		return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("row %d (%s): cooking_time must be positive, got %d", row, name, cookingTime)}
	}
	if rating < 1 || rating > 5 {
		return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("row %d (%s): rating must be in [1,5], got %g", row, name, rating)}
	}
	return &models.Recipe{
		Name:         name,
		Ingredients:  ings,
		CookingTime:  cookingTime,
		Rating:       rating,
		Difficulty:   strings.TrimSpace(difficulty),
		Instructions: instructions,
		ClusterID:    models.UnassignedCluster,
	}, nil
}

// columnIndex maps a header row to column positions, verifying all required
// columns are present.
func columnIndex(source string, header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("missing required column %q", col)}
		}
	}
	return idx, nil
}
