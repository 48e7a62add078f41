// Package keyword provides an in-memory Bleve index for browsing recipes by
// name, ingredient, or instruction text.
package keyword

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/cookable/cookable/internal/models"
)

// Index is a keyword search index over one corpus snapshot. It is built
// whole from a model's recipes and replaced together with the model on
// reload; it is read-only afterwards.
type Index struct {
	index bleve.Index
}

// recipeDoc is the flattened document shape handed to Bleve.
type recipeDoc struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

// NewIndex builds an in-memory index over recipes.
func NewIndex(recipes []*models.Recipe) (*Index, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so "egg" does
	// not silently match stemmed variants the user never typed.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("ingredients", textFieldMapping)
	docMapping.AddFieldMappingsAt("instructions", textFieldMapping)
	docMapping.AddFieldMappingsAt("difficulty", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("recipe", docMapping)
	im.DefaultType = "recipe"
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe index: %w", err)
	}

	batch := index.NewBatch()
	for _, r := range recipes {
		doc := recipeDoc{
			Name:         r.Name,
			Ingredients:  strings.Join(r.Ingredients, " "),
			Difficulty:   r.Difficulty,
			Instructions: r.Instructions,
		}
		if err := batch.Index(r.Name, doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index recipe %s: %w", r.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to build recipe index: %w", err)
	}

	return &Index{index: index}, nil
}

// Hit is a single search hit: the recipe name and its relevance score.
type Hit struct {
	Name  string
	Score float64
}

// Search runs a match query over all fields and returns up to limit hits.
func (i *Index) Search(query string, limit int) ([]*Hit, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("recipe search failed: %w", err)
	}
	hits := make([]*Hit, len(results.Hits))
	for n, hit := range results.Hits {
		hits[n] = &Hit{Name: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// Count returns the number of indexed recipes.
func (i *Index) Count() (uint64, error) { return i.index.DocCount() }

// Close releases the index.
func (i *Index) Close() error { return i.index.Close() }
