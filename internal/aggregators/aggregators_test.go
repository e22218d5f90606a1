package aggregators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(map[string]int{}, 10)

	assert.Equal(t, 0, summary.UniqueIPs)
	assert.Equal(t, 0, summary.TotalHits)
	assert.Empty(t, summary.TopTalkers)
}

func TestSummarize(t *testing.T) {
	freq := map[string]int{
		"10.0.0.1": 4,
		"10.0.0.2": 2,
		"10.0.0.3": 2,
		"10.0.0.4": 8,
	}

	summary := Summarize(freq, 3)

	assert.Equal(t, 4, summary.UniqueIPs)
	assert.Equal(t, 16, summary.TotalHits)
	assert.Equal(t, 8, summary.Max)
	assert.Equal(t, 4.0, summary.Mean)
	assert.Equal(t, 3.0, summary.Median)

	require.Len(t, summary.TopTalkers, 3)
	assert.Equal(t, "10.0.0.4", summary.TopTalkers[0].IP)
	assert.Equal(t, "10.0.0.1", summary.TopTalkers[1].IP)
	assert.Equal(t, "10.0.0.2", summary.TopTalkers[2].IP, "tied counts break by address")
}

func TestSummarizeZeroTopN(t *testing.T) {
	summary := Summarize(map[string]int{"10.0.0.1": 1, "10.0.0.2": 5}, 0)
	assert.Len(t, summary.TopTalkers, 2, "topN of zero keeps every row")
	assert.Equal(t, "10.0.0.2", summary.TopTalkers[0].IP)
}
