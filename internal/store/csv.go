package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cookable/cookable/internal/models"
)

// LoadCSV reads a recipe corpus from a CSV file with a header row.
func LoadCSV(path string) ([]*models.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DataSourceError{Source: path, Reason: "cannot open dataset", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, &models.DataSourceError{Source: path, Reason: "cannot read header", Err: err}
	}
	idx, err := columnIndex(path, header)
	if err != nil {
		return nil, err
	}

	var recipes []*models.Recipe
	row := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.DataSourceError{Source: path, Reason: fmt.Sprintf("row %d: malformed record", row+1), Err: err}
		}
		row++
		recipe, err := recordToRecipe(path, row, idx, record)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// recordToRecipe converts one positional record using the header index.
func recordToRecipe(source string, row int, idx map[string]int, record []string) (*models.Recipe, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	cookingTime, err := strconv.Atoi(strings.TrimSpace(field("cooking_time")))
	if err != nil {
		return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("row %d: invalid cooking_time %q", row, field("cooking_time"))}
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(field("rating")), 64)
	if err != nil {
		return nil, &models.DataSourceError{Source: source, Reason: fmt.Sprintf("row %d: invalid rating %q", row, field("rating"))}
	}

	return buildRecipe(source, row,
		field("recipe_name"), field("ingredients"),
		cookingTime, rating,
		field("difficulty"), field("instructions"),
	)
}
