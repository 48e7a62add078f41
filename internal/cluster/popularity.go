package cluster

import (
	"sort"

	"github.com/cookable/cookable/internal/models"
)

// NeutralPopularity is returned for unknown cluster ids, and assigned to
// every cluster when all cluster mean ratings are equal.
const NeutralPopularity = 0.5

// Popularity computes a normalized popularity score per cluster from member
// ratings. Each cluster's mean rating is min-max normalized across the k
// clusters to [0,1]; when all means are equal every cluster gets exactly 0.5.
// A cluster with zero members is an EmptyClusterError.
func Popularity(recipes []*models.Recipe, k int) (map[int]float64, error) {
	sums := make([]float64, k)
	counts := make([]int, k)
	for _, r := range recipes {
		if r.ClusterID < 0 || r.ClusterID >= k {
			continue
		}
		sums[r.ClusterID] += r.Rating
		counts[r.ClusterID]++
	}

	means := make(map[int]float64, k)
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			return nil, &models.EmptyClusterError{ClusterID: c}
		}
		means[c] = sums[c] / float64(counts[c])
	}

	minMean, maxMean := means[0], means[0]
	for _, m := range means {
		if m < minMean {
			minMean = m
		}
		if m > maxMean {
			maxMean = m
		}
	}

	popularity := make(map[int]float64, k)
	for c, m := range means {
		if maxMean > minMean {
			popularity[c] = (m - minMean) / (maxMean - minMean)
		} else {
			popularity[c] = NeutralPopularity
		}
	}
	return popularity, nil
}

// Lookup returns the popularity for clusterID, or NeutralPopularity when the
// id is unknown.
func Lookup(popularity map[int]float64, clusterID int) float64 {
	if p, ok := popularity[clusterID]; ok {
		return p
	}
	return NeutralPopularity
}

// Summaries describes each cluster: member count, mean rating, popularity,
// and the top three recipes by rating.
func Summaries(recipes []*models.Recipe, popularity map[int]float64, k int) []*models.ClusterSummary {
	members := make(map[int][]*models.Recipe, k)
	for _, r := range recipes {
		members[r.ClusterID] = append(members[r.ClusterID], r)
	}

	summaries := make([]*models.ClusterSummary, 0, k)
	for c := 0; c < k; c++ {
		group := members[c]
		var sum float64
		for _, r := range group {
			sum += r.Rating
		}
		avg := 0.0
		if len(group) > 0 {
			avg = sum / float64(len(group))
		}

		top := append([]*models.Recipe(nil), group...)
		sort.SliceStable(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })
		if len(top) > 3 {
			top = top[:3]
		}
		examples := make([]string, len(top))
		for i, r := range top {
			examples[i] = r.Name
		}

		summaries = append(summaries, &models.ClusterSummary{
			ClusterID:      c,
			NumRecipes:     len(group),
			AvgRating:      avg,
			Popularity:     Lookup(popularity, c),
			ExampleRecipes: examples,
		})
	}
	return summaries
}
