// Package cli provides CLI output helpers for Cookable.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cookable/cookable/internal/models"
	"github.com/cookable/cookable/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteMatchResults writes recommendation results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteMatchResults(w io.Writer, response *models.MatchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeMatchResultsText(w, response)
		return nil
	}
}

func writeMatchResultsText(w io.Writer, response *models.MatchResponse) {
	fmt.Fprintf(w, "\n%d feasible recipes in %dms, showing top %d\n\n",
		response.TotalFeasible, response.TookMS, len(response.Candidates))
	for i, c := range response.Candidates {
		writeOneCandidate(w, i+1, c)
	}
}

func writeOneCandidate(w io.Writer, rank int, c *models.MatchCandidate) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "%d. %s | Score: %.4f (Base: %.4f, Boost: %.4f)\n",
		rank, c.RecipeName, c.FinalScore, c.BaseScore, c.ClusterBoost)
	fmt.Fprintf(w, "Rating: %.1f | Time: %d min | Difficulty: %s\n",
		c.Rating, c.CookingTime, c.Difficulty)
	fmt.Fprintf(w, "Have (%d): %s\n", c.NumMatching, strings.Join(c.MatchingIngredients, ", "))
	if c.NumMissing > 0 {
		fmt.Fprintf(w, "Missing (%d): %s\n", c.NumMissing, strings.Join(c.MissingIngredients, ", "))
	}
	if c.Instructions != "" {
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(c.Instructions, 200))
	}
	fmt.Fprintln(w)
}

// WriteClusterSummaries writes cluster summaries to w in the given format.
func WriteClusterSummaries(w io.Writer, summaries []*models.ClusterSummary, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	default:
		for _, s := range summaries {
			fmt.Fprintf(w, "Cluster %d: %d recipes | avg rating %.2f | popularity %.2f\n",
				s.ClusterID, s.NumRecipes, s.AvgRating, s.Popularity)
			if len(s.ExampleRecipes) > 0 {
				fmt.Fprintf(w, "  top rated: %s\n", strings.Join(s.ExampleRecipes, ", "))
			}
		}
		return nil
	}
}

// PrintMatchResults prints recommendation results to stdout in text format.
func PrintMatchResults(response *models.MatchResponse) {
	_ = WriteMatchResults(os.Stdout, response, OutputText)
}
