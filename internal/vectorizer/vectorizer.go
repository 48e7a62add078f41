// Package vectorizer converts recipe ingredient lists into standardized
// feature vectors over the corpus-wide ingredient vocabulary.
package vectorizer

import (
	"sort"
	"strings"

	"github.com/cookable/cookable/internal/models"
	"github.com/cookable/cookable/pkg/utils"
)

// Vectorize builds the ingredient vocabulary and the standardized feature
// matrix for the corpus. The vocabulary is the lexicographically sorted union
// of all trimmed ingredient names; it fixes the vector dimension and column
// order, so vectors are reproducible across runs on the same corpus.
//
// Each recipe row starts as binary presence encoding, then every column is
// standardized to zero mean and unit variance. Zero-variance columns
// (ingredient in all recipes or none) are left at zero rather than divided.
//
// This is the only producer of feature vectors in the process; the cluster
// engine consumes the matrix as-is.
func Vectorize(recipes []*models.Recipe) (vocabulary []string, matrix [][]float64) {
	vocabulary = BuildVocabulary(recipes)

	index := make(map[string]int, len(vocabulary))
	for i, ing := range vocabulary {
		index[ing] = i
	}

	matrix = make([][]float64, len(recipes))
	for i, r := range recipes {
		row := make([]float64, len(vocabulary))
		for _, ing := range r.Ingredients {
			if j, ok := index[strings.TrimSpace(ing)]; ok {
				row[j] = 1
			}
		}
		matrix[i] = row
	}

	standardize(matrix)
	return vocabulary, matrix
}

// BuildVocabulary returns the sorted, deduplicated union of all ingredient
// names across the corpus, trimmed, case-sensitive as given.
func BuildVocabulary(recipes []*models.Recipe) []string {
	seen := make(map[string]bool)
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			if s := strings.TrimSpace(ing); s != "" {
				seen[s] = true
			}
		}
	}
	vocab := make([]string, 0, len(seen))
	for ing := range seen {
		vocab = append(vocab, ing)
	}
	sort.Strings(vocab)
	return vocab
}

// standardize transforms each column in place to zero mean and unit variance.
// Columns with zero variance become all zeros.
func standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	cols := len(matrix[0])
	column := make([]float64, len(matrix))
	for j := 0; j < cols; j++ {
		for i := range matrix {
			column[i] = matrix[i][j]
		}
		mean := utils.Mean(column)
		std := utils.StdDev(column, mean)
		if std == 0 {
			std = 1 // constant column: subtracting the mean leaves zeros
		}
		for i := range matrix {
			matrix[i][j] = (matrix[i][j] - mean) / std
		}
	}
}
