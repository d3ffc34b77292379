// Package analytics implements the portfolio financial and schedule analytics
// engine: per-project execution metrics, S-curves, risk classification,
// multidimensional rollups and rankings over a read-only project snapshot.
// Every computation is a side-effect-free pass over the snapshot it is given;
// nothing is cached or persisted.
package analytics

import (
	"sort"
	"time"

	"github.com/obratrack/obratrack/internal/models"
	"github.com/sirupsen/logrus"
)

// Engine computes dashboards. It is stateless between calls and safe for
// concurrent use.
type Engine struct {
	minMonths int
	now       func() time.Time
	log       *logrus.Logger
}

// NewEngine creates an engine with the given programmed-baseline month floor.
func NewEngine(minMonths int, log *logrus.Logger) *Engine {
	if minMonths < 1 {
		minMonths = 1
	}
	return &Engine{minMonths: minMonths, now: time.Now, log: log}
}

// BuildDashboard runs the full analytics pass: facet filtering, per-project
// aggregation, portfolio S-curve, rollups, rankings and summary, plus the
// facet values available across the unfiltered snapshot. The snapshot is never
// mutated.
func (e *Engine) BuildDashboard(snapshot []models.Project, f Facets) *models.Dashboard {
	now := e.now()
	selected := f.Apply(snapshot)

	items := make([]aggregate, 0, len(selected))
	for i := range selected {
		agg := aggregateProject(&selected[i], now)
		agg.Metrics.Curve = buildCurve(agg.Ledger, agg.BaseBudget, agg.Metrics.Executed, now, e.minMonths)
		items = append(items, agg)
	}

	metrics := make([]models.ProjectMetrics, len(items))
	for i := range items {
		metrics[i] = items[i].Metrics
	}

	d := &models.Dashboard{
		Summary:     e.summarize(metrics),
		Projects:    metrics,
		Filters:     filterOptions(snapshot),
		GeneratedAt: now,
	}
	d.Charts = models.Charts{
		StatusDistribution: statusDistribution(metrics),
		RiskDistribution:   riskDistribution(metrics),
		PortfolioCurve:     e.portfolioCurve(items, now),
		ByVoucherType:      voucherRollup(items),
		ByBudgetLine:       lineRollup(items),
		ByLocation:         locationRollup(items),
		ByResponsible:      responsibleRollup(items),
		ByYear:             yearRollup(items, selected),
		ProgressComparison: progressComparison(metrics),
		Delayed:            delayedList(metrics),
		TopByBudget:        topBy(metrics, func(m *models.ProjectMetrics) float64 { return m.InitialBudget }),
		TopByProgress:      topBy(metrics, func(m *models.ProjectMetrics) float64 { return m.PhysicalProgress }),
		TopByExecuted:      topBy(metrics, func(m *models.ProjectMetrics) float64 { return m.Executed }),
	}

	e.log.Debugf("dashboard built: %d of %d projects selected", len(selected), len(snapshot))
	return d
}

func (e *Engine) summarize(metrics []models.ProjectMetrics) models.Summary {
	s := models.Summary{
		TotalProjects: len(metrics),
		ByStatus:      make(map[string]int, len(models.ProjectStatuses)),
		ByRisk:        make(map[string]int, len(models.RiskStatuses)),
	}
	for _, st := range models.ProjectStatuses {
		s.ByStatus[st] = 0
	}
	for _, r := range models.RiskStatuses {
		s.ByRisk[r] = 0
	}

	var progressSum float64
	for i := range metrics {
		m := &metrics[i]
		s.ByStatus[m.Status]++
		s.ByRisk[m.RiskStatus]++
		s.TotalBudget += m.InitialBudget
		s.TotalExecuted += m.Executed
		s.TotalBalance += m.Balance
		progressSum += m.PhysicalProgress
	}
	if len(metrics) > 0 {
		s.AverageProgress = round2(progressSum / float64(len(metrics)))
	}
	s.TotalBudget = round2(s.TotalBudget)
	s.TotalExecuted = round2(s.TotalExecuted)
	s.TotalBalance = round2(s.TotalBalance)
	return s
}

// portfolioCurve builds one S-curve over the union of the selected projects'
// expense ledgers, against the sum of their base budgets. The per-project
// ledgers produced by the aggregation pass are reused; nothing is refetched.
func (e *Engine) portfolioCurve(items []aggregate, now time.Time) []models.MonthlyPoint {
	var (
		ledger     []models.Expense
		baseBudget float64
		executed   float64
	)
	for _, it := range items {
		ledger = append(ledger, it.Ledger...)
		baseBudget += it.BaseBudget
		executed += it.Metrics.Executed
	}
	return buildCurve(ledger, baseBudget, executed, now, e.minMonths)
}

func statusDistribution(metrics []models.ProjectMetrics) []models.RollupBucket {
	return countDistribution(models.ProjectStatuses, metrics, func(m *models.ProjectMetrics) string { return m.Status })
}

func riskDistribution(metrics []models.ProjectMetrics) []models.RollupBucket {
	return countDistribution(models.RiskStatuses, metrics, func(m *models.ProjectMetrics) string { return m.RiskStatus })
}

// countDistribution emits one bucket per canonical key, in canonical order,
// counting projects and summing their executed amounts.
func countDistribution(keys []string, metrics []models.ProjectMetrics, key func(*models.ProjectMetrics) string) []models.RollupBucket {
	idx := newBucketIndex()
	for _, k := range keys {
		idx.get(k)
	}
	for i := range metrics {
		b := idx.get(key(&metrics[i]))
		b.Count++
		b.Executed += metrics[i].Executed
	}
	return idx.list()
}

func progressComparison(metrics []models.ProjectMetrics) []models.ProgressEntry {
	entries := make([]models.ProgressEntry, 0, len(metrics))
	for i := range metrics {
		m := &metrics[i]
		entries = append(entries, models.ProgressEntry{
			ProjectID:  m.ProjectID,
			Name:       m.Name,
			Physical:   m.PhysicalProgress,
			Programmed: m.ProgrammedProgress,
			Variance:   m.Variance,
		})
	}
	return entries
}

// filterOptions collects the distinct facet values of the whole snapshot,
// independent of the current selection, for populating filter controls.
func filterOptions(snapshot []models.Project) models.FilterOptions {
	var opts models.FilterOptions
	seenLoc := make(map[string]bool)
	seenYear := make(map[int]bool)
	seenResp := make(map[string]bool)
	for i := range snapshot {
		p := &snapshot[i]
		if p.Location != "" && !seenLoc[p.Location] {
			seenLoc[p.Location] = true
			opts.Locations = append(opts.Locations, p.Location)
		}
		if year := p.StartYear(); year != 0 && !seenYear[year] {
			seenYear[year] = true
			opts.Years = append(opts.Years, year)
		}
		if p.ResponsibleName != "" && !seenResp[p.ResponsibleName] {
			seenResp[p.ResponsibleName] = true
			opts.Responsibles = append(opts.Responsibles, p.ResponsibleName)
		}
		opts.Projects = append(opts.Projects, models.ProjectRef{ID: p.ID, Name: p.Name})
	}
	sort.Strings(opts.Locations)
	sort.Ints(opts.Years)
	sort.Strings(opts.Responsibles)
	return opts
}
