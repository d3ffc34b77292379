package analytics

import (
	"sort"

	"github.com/obratrack/obratrack/internal/models"
)

const rankingSize = 10

// topBy returns the first rankingSize projects ordered descending by the given
// value. sort.SliceStable keeps ties in discovery order.
func topBy(metrics []models.ProjectMetrics, value func(*models.ProjectMetrics) float64) []models.RankEntry {
	entries := make([]models.RankEntry, 0, len(metrics))
	for i := range metrics {
		entries = append(entries, models.RankEntry{
			ProjectID: metrics[i].ProjectID,
			Name:      metrics[i].Name,
			Value:     value(&metrics[i]),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	if len(entries) > rankingSize {
		entries = entries[:rankingSize]
	}
	return entries
}

// delayedList returns every project past its planned end, worst first, capped
// at rankingSize.
func delayedList(metrics []models.ProjectMetrics) []models.DelayedEntry {
	var entries []models.DelayedEntry
	for i := range metrics {
		if metrics[i].DelayDays <= 0 {
			continue
		}
		entries = append(entries, models.DelayedEntry{
			ProjectID:  metrics[i].ProjectID,
			Name:       metrics[i].Name,
			DelayDays:  metrics[i].DelayDays,
			RiskStatus: metrics[i].RiskStatus,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].DelayDays > entries[j].DelayDays })
	if len(entries) > rankingSize {
		entries = entries[:rankingSize]
	}
	return entries
}
