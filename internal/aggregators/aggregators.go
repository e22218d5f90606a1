package aggregators

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/Harshhrajj/Logfile-analyzer/pkg/models"
)

// Summarize computes distribution statistics over a per-address
// frequency table and builds a top-talker leaderboard of at most topN
// rows. Ordering is deterministic: by count descending, then address
// ascending.
func Summarize(freq map[string]int, topN int) *models.FrequencySummary {
	summary := &models.FrequencySummary{
		UniqueIPs:  len(freq),
		TopTalkers: make([]models.IPCount, 0, len(freq)),
	}

	if len(freq) == 0 {
		return summary
	}

	counts := make([]float64, 0, len(freq))
	for ip, count := range freq {
		summary.TotalHits += count
		if count > summary.Max {
			summary.Max = count
		}
		counts = append(counts, float64(count))
		summary.TopTalkers = append(summary.TopTalkers, models.IPCount{IP: ip, Count: count})
	}

	sort.Slice(summary.TopTalkers, func(i, j int) bool {
		if summary.TopTalkers[i].Count != summary.TopTalkers[j].Count {
			return summary.TopTalkers[i].Count > summary.TopTalkers[j].Count
		}
		return summary.TopTalkers[i].IP < summary.TopTalkers[j].IP
	})
	if topN > 0 && len(summary.TopTalkers) > topN {
		summary.TopTalkers = summary.TopTalkers[:topN]
	}

	if mean, err := stats.Mean(counts); err == nil {
		summary.Mean = mean
	}
	if median, err := stats.Median(counts); err == nil {
		summary.Median = median
	}
	if p95, err := stats.Percentile(counts, 95); err == nil {
		summary.P95 = p95
	}

	return summary
}
