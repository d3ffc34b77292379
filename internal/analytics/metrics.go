package analytics

import (
	"math"
	"time"

	"github.com/obratrack/obratrack/internal/models"
)

// aggregate is the result of one pass over a project's nested relations. The
// same pass produces the metrics record, the per-line drill-down rows and the
// flattened expense ledger consumed by the time-series builder, so the
// relations are walked exactly once.
type aggregate struct {
	Metrics    models.ProjectMetrics
	Ledger     []models.Expense
	BaseBudget float64
}

// aggregateProject reduces one project's budgets, lines and expenses into a
// single metrics record. now is injected so that elapsed-time figures are
// deterministic under test.
func aggregateProject(p *models.Project, now time.Time) aggregate {
	var (
		allocated float64
		executed  float64
		lines     []models.LineDetail
		ledger    []models.Expense
	)

	for _, b := range p.Budgets {
		for _, l := range b.Lines {
			allocated += l.AssignedAmount

			var lineExecuted float64
			if len(l.Expenses) > 0 {
				for _, e := range l.Expenses {
					lineExecuted += e.Amount
					ledger = append(ledger, e)
				}
			} else {
				// No vouchers recorded: fall back to the operator-entered
				// figure. Never both, to avoid double counting.
				lineExecuted = l.ManualExecuted
			}
			executed += lineExecuted

			lines = append(lines, models.LineDetail{
				Name:        l.Name,
				Assigned:    l.AssignedAmount,
				Executed:    lineExecuted,
				ProgressPct: round2(pct(lineExecuted, l.AssignedAmount)),
			})
		}
	}

	baseBudget := p.InitialBudget
	if baseBudget <= 0 {
		baseBudget = allocated
	}

	physical := pct(executed, baseBudget)
	financial := pct(executed, allocated)
	if allocated <= 0 {
		financial = physical
	}

	programmed := programmedProgress(p.PlannedStart, p.PlannedEnd, now)
	variance := physical - programmed
	delay := delayDays(p, now)

	m := models.ProjectMetrics{
		ProjectID:          p.ID,
		Name:               p.Name,
		Location:           p.Location,
		Responsible:        p.ResponsibleName,
		Status:             p.Status,
		InitialBudget:      p.InitialBudget,
		Allocated:          allocated,
		Executed:           executed,
		Balance:            p.InitialBudget - executed,
		PhysicalProgress:   round2(physical),
		FinancialProgress:  round2(financial),
		ProgrammedProgress: round2(programmed),
		Variance:           round2(variance),
		DelayDays:          delay,
		RiskStatus:         classifyRisk(variance, delay),
		Lines:              lines,
	}

	return aggregate{Metrics: m, Ledger: ledger, BaseBudget: baseBudget}
}

// programmedProgress is the elapsed share of the planned duration, capped at
// 100. Missing dates or a non-positive planned duration yield 0.
func programmedProgress(start, end *time.Time, now time.Time) float64 {
	if start == nil || end == nil {
		return 0
	}
	totalDays := daysBetween(*start, *end)
	if totalDays <= 0 {
		return 0
	}
	elapsed := daysBetween(*start, now)
	if elapsed < 0 {
		elapsed = 0
	}
	return math.Min(100, 100*float64(elapsed)/float64(totalDays))
}

// delayDays counts full days past the planned end for projects still open.
func delayDays(p *models.Project, now time.Time) int {
	if p.PlannedEnd == nil {
		return 0
	}
	if p.Status == models.StatusCompleted || p.Status == models.StatusSettled {
		return 0
	}
	d := daysBetween(*p.PlannedEnd, now)
	if d <= 0 {
		return 0
	}
	return d
}

// classifyRisk maps schedule variance and delay to the traffic light. The
// delay override always wins over the variance bands.
func classifyRisk(variance float64, delay int) string {
	status := models.RiskGreen
	switch {
	case variance >= 0:
		status = models.RiskGreen
	case variance >= -10:
		status = models.RiskYellow
	default:
		status = models.RiskRed
	}

	if delay > 30 {
		return models.RiskRed
	}
	if delay > 0 {
		return models.RiskYellow
	}
	return status
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// pct is a guarded percentage: 0 whenever the denominator is not positive.
func pct(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return 100 * num / den
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
