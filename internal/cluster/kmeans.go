// Package cluster groups recipes by ingredient similarity with k-means and
// derives normalized popularity scores per cluster.
package cluster

import (
	"fmt"
	"math/rand"

	"github.com/cookable/cookable/internal/models"
	"github.com/cookable/cookable/pkg/utils"
)

// Config holds the training configuration. The seed is explicit so runs are
// reproducible and tests can vary it intentionally.
type Config struct {
	NClusters  int   `yaml:"n_clusters"`
	RandomSeed int64 `yaml:"random_seed"`
	NInit      int   `yaml:"n_init"`
	MaxIter    int   `yaml:"max_iter"`
}

// ApplyDefaults sets default values for any zero fields.
// The defaults match the original training parameters: 5 clusters, seed 42,
// 10 restarts, 300 iterations.
func (c *Config) ApplyDefaults() {
	if c.NClusters == 0 {
		c.NClusters = 5
	}
	if c.RandomSeed == 0 {
		c.RandomSeed = 42
	}
	if c.NInit == 0 {
		c.NInit = 10
	}
	if c.MaxIter == 0 {
		c.MaxIter = 300
	}
}

// Validate checks the configuration against the corpus size.
func (c *Config) Validate(numPoints int) error {
	if c.NClusters < 1 || c.NClusters > numPoints {
		return &models.ConfigurationError{
			Field:  "n_clusters",
			Reason: fmt.Sprintf("must be in [1, %d], got %d", numPoints, c.NClusters),
		}
	}
	if c.NInit < 1 {
		return &models.ConfigurationError{Field: "n_init", Reason: fmt.Sprintf("must be at least 1, got %d", c.NInit)}
	}
	if c.MaxIter < 1 {
		return &models.ConfigurationError{Field: "max_iter", Reason: fmt.Sprintf("must be at least 1, got %d", c.MaxIter)}
	}
	return nil
}

// Result holds a trained clustering.
type Result struct {
	// Assignments maps each input row to a cluster id in [0, NClusters).
	Assignments []int
	// Centroids are the final cluster centers.
	Centroids [][]float64
	// Inertia is the sum of squared distances to assigned centroids.
	Inertia float64
}

// Train runs Lloyd's k-means on matrix with cfg.NInit seeded restarts and
// returns the run with the lowest inertia. Restart r is seeded with
// RandomSeed + r, so identical input and configuration always produce
// identical assignments.
func Train(matrix [][]float64, cfg Config) (*Result, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(len(matrix)); err != nil {
		return nil, err
	}

	var best *Result
	for r := 0; r < cfg.NInit; r++ {
		rng := rand.New(rand.NewSource(cfg.RandomSeed + int64(r)))
		res := runOnce(matrix, cfg.NClusters, cfg.MaxIter, rng)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// runOnce runs a single k-means pass: random distinct points as initial
// centroids, then alternate assignment and centroid recomputation until
// assignments stabilize or maxIter is reached.
func runOnce(matrix [][]float64, k, maxIter int, rng *rand.Rand) *Result {
	dim := len(matrix[0])

	centroids := make([][]float64, k)
	for i, p := range rng.Perm(len(matrix))[:k] {
		centroids[i] = append([]float64(nil), matrix[p]...)
	}

	assignments := make([]int, len(matrix))
	for i := range assignments {
		assignments[i] = -1
	}

	counts := make([]int, k)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, point := range matrix {
			c := nearest(point, centroids)
			if c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		// Recompute centroids as the mean of assigned points. A cluster
		// that lost all members keeps its previous centroid; restarts
		// handle persistently bad initializations.
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
			counts[c] = 0
		}
		for i, point := range matrix {
			c := assignments[i]
			counts[c]++
			for j, v := range point {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}

	var inertia float64
	for i, point := range matrix {
		inertia += utils.SquaredDistance(point, centroids[assignments[i]])
	}
	return &Result{Assignments: assignments, Centroids: centroids, Inertia: inertia}
}

func nearest(point []float64, centroids [][]float64) int {
	best := 0
	bestDist := utils.SquaredDistance(point, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := utils.SquaredDistance(point, centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
