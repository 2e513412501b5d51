// Package ranking derives the point leaderboard from a record collection.
// Nothing here is persisted; every call recomputes from scratch.
package ranking

import (
	"sort"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// Goal is the annual point target shown on the home teaser and ranking screen.
const Goal = 5000

// Aggregate groups records by exact author string and returns one entry per
// author, highest points first. Authors with equal points keep the order in
// which they first appear in records.
func Aggregate(records []core.Record) []core.RankingEntry {
	entries := []core.RankingEntry{}
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Author]
		if !ok {
			i = len(entries)
			index[r.Author] = i
			entries = append(entries, core.RankingEntry{Name: r.Author})
		}
		entries[i].Points += r.Points
		entries[i].Count++
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

// TotalPoints sums the points of every record.
func TotalPoints(records []core.Record) int {
	total := 0
	for _, r := range records {
		total += r.Points
	}
	return total
}

// ProgressPercent returns 100*total/goal capped at 100. A non-positive goal
// counts as reached.
func ProgressPercent(total, goal int) float64 {
	if goal <= 0 {
		return 100
	}
	p := float64(total) * 100 / float64(goal)
	if p > 100 {
		return 100
	}
	return p
}

// Board is everything the ranking screen shows.
type Board struct {
	Total   int                 `json:"total" yaml:"total"`
	Goal    int                 `json:"goal" yaml:"goal"`
	Percent float64             `json:"percent" yaml:"percent"`
	Entries []core.RankingEntry `json:"entries" yaml:"entries"`
}

// Summarize computes the board for records against Goal.
func Summarize(records []core.Record) Board {
	total := TotalPoints(records)
	return Board{
		Total:   total,
		Goal:    Goal,
		Percent: ProgressPercent(total, Goal),
		Entries: Aggregate(records),
	}
}
