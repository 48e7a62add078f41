package store

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cookable/cookable/internal/models"
)

// LoadXLSX reads a recipe corpus from the first sheet of an Excel workbook.
// The first row is the header and must carry the same columns as the CSV format.
func LoadXLSX(path string) ([]*models.Recipe, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &models.DataSourceError{Source: path, Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.DataSourceError{Source: path, Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &models.DataSourceError{Source: path, Reason: fmt.Sprintf("cannot read sheet %q", sheets[0]), Err: err}
	}
	if len(rows) == 0 {
		return nil, &models.DataSourceError{Source: path, Reason: "workbook has no header row"}
	}

	idx, err := columnIndex(path, rows[0])
	if err != nil {
		return nil, err
	}

	var recipes []*models.Recipe
	for i, record := range rows[1:] {
		row := i + 2 // 1-based, after header
		if len(record) == 0 {
			continue // excelize reports fully empty trailing rows
		}
		recipe, err := recordToRecipe(path, row, idx, record)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
