// Dataset fixture writers used by E2E tests, covering both supported
// spreadsheet formats.
package e2e

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cookable/cookable/internal/models"
)

var datasetHeader = []string{"recipe_name", "ingredients", "cooking_time", "rating", "difficulty", "instructions"}

// WriteCSVDataset writes recipes to path as a CSV dataset.
func WriteCSVDataset(path string, recipes []*models.Recipe) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(datasetHeader); err != nil {
		return err
	}
	for _, r := range recipes {
		if err := w.Write(recipeRecord(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSXDataset writes recipes to path as an XLSX dataset.
func WriteXLSXDataset(path string, recipes []*models.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range datasetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for row, r := range recipes {
		for col, value := range recipeRecord(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func recipeRecord(r *models.Recipe) []string {
	return []string{
		r.Name,
		strings.Join(r.Ingredients, ","),
		strconv.Itoa(r.CookingTime),
		fmt.Sprintf("%g", r.Rating),
		r.Difficulty,
		r.Instructions,
	}
}
