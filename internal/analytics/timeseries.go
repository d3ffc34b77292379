package analytics

import (
	"sort"
	"time"

	"github.com/obratrack/obratrack/internal/models"
)

const monthKeyLayout = "2006-01"

// buildCurve produces the monthly S-curve for one expense ledger: partial and
// cumulative actual spend per calendar month against a linearly-programmed
// baseline of baseBudget spread over max(observed months, minMonths) months.
//
// A ledger with no expenses but a positive fallbackExecuted (a manually-set
// executed total) yields a single point at the current month carrying the whole
// figure, with the baseline treated as fully consumed. An empty ledger with no
// fallback yields no points.
func buildCurve(ledger []models.Expense, baseBudget, fallbackExecuted float64, now time.Time, minMonths int) []models.MonthlyPoint {
	if len(ledger) == 0 {
		if fallbackExecuted <= 0 {
			return nil
		}
		return []models.MonthlyPoint{{
			Month:         now.Format(monthKeyLayout),
			Partial:       round2(fallbackExecuted),
			PartialPct:    round2(pct(fallbackExecuted, baseBudget)),
			Cumulative:    round2(fallbackExecuted),
			CumulativePct: round2(pct(fallbackExecuted, baseBudget)),
			Programmed:    round2(baseBudget),
			ProgrammedPct: round2(pct(baseBudget, baseBudget)),
		}}
	}

	partials := make(map[string]float64)
	var keys []string
	for _, e := range ledger {
		key := e.Date.Format(monthKeyLayout)
		if _, seen := partials[key]; !seen {
			keys = append(keys, key)
		}
		partials[key] += e.Amount
	}
	// YYYY-MM keys sort chronologically as strings
	sort.Strings(keys)

	baselineMonths := len(keys)
	if baselineMonths < minMonths {
		baselineMonths = minMonths
	}
	var increment float64
	if baselineMonths > 0 {
		increment = baseBudget / float64(baselineMonths)
	}

	points := make([]models.MonthlyPoint, 0, len(keys))
	var cumulative float64
	for i, key := range keys {
		partial := partials[key]
		cumulative += partial
		programmed := increment * float64(i+1)
		points = append(points, models.MonthlyPoint{
			Month:         key,
			Partial:       round2(partial),
			PartialPct:    round2(pct(partial, baseBudget)),
			Cumulative:    round2(cumulative),
			CumulativePct: round2(pct(cumulative, baseBudget)),
			Programmed:    round2(programmed),
			ProgrammedPct: round2(pct(programmed, baseBudget)),
		})
	}
	return points
}
