package analytics

import (
	"reflect"
	"testing"

	"github.com/obratrack/obratrack/internal/models"
)

func engineFixture() []models.Project {
	return []models.Project{
		newProject(1, "School", "Lima", "Ana", models.StatusInProgress, 100000,
			dayPtr(2025, 1, 1), dayPtr(2025, 12, 31),
			line("Works", 100000, 0,
				expenseOn(20000, "FACTURA", 2025, 1, 10),
				expenseOn(20000, "FACTURA", 2025, 2, 10),
				expenseOn(20000, "BOLETA", 2025, 3, 10),
			),
		),
		newProject(2, "Bridge", "Cusco", "Luis", models.StatusInProgress, 200000,
			dayPtr(2024, 1, 1), dayPtr(2025, 5, 6),
			line("Foundations", 150000, 0, expenseOn(90000, "FACTURA", 2024, 6, 1)),
		),
		newProject(3, "Road", "Lima", "Eva", models.StatusCompleted, 50000,
			dayPtr(2024, 2, 1), dayPtr(2024, 11, 30),
			line("Asphalt", 50000, 50000),
		),
	}
}

func TestBuildDashboardSummary(t *testing.T) {
	d := testEngine().BuildDashboard(engineFixture(), Facets{})

	s := d.Summary
	if s.TotalProjects != 3 {
		t.Fatalf("TotalProjects = %d, want 3", s.TotalProjects)
	}
	if s.ByStatus[models.StatusInProgress] != 2 || s.ByStatus[models.StatusCompleted] != 1 {
		t.Errorf("ByStatus = %v", s.ByStatus)
	}
	if s.ByStatus[models.StatusPlanned] != 0 || s.ByStatus[models.StatusSettled] != 0 {
		t.Errorf("ByStatus missing zeroed entries: %v", s.ByStatus)
	}
	checkFloat(t, "TotalBudget", s.TotalBudget, 350000)
	checkFloat(t, "TotalExecuted", s.TotalExecuted, 200000)
	checkFloat(t, "TotalBalance", s.TotalBalance, 150000)

	// Bridge is 40 days past its planned end: one RED
	if s.ByRisk[models.RiskRed] != 1 {
		t.Errorf("ByRisk = %v, want one RED", s.ByRisk)
	}

	var riskTotal int
	for _, n := range s.ByRisk {
		riskTotal += n
	}
	if riskTotal != s.TotalProjects {
		t.Errorf("risk counts sum to %d, want %d", riskTotal, s.TotalProjects)
	}
}

func TestBuildDashboardEmptyFacetsEqualsUnfiltered(t *testing.T) {
	e := testEngine()
	snapshot := engineFixture()

	all := e.BuildDashboard(snapshot, Facets{})
	if len(all.Projects) != len(snapshot) {
		t.Fatalf("empty facets selected %d of %d projects", len(all.Projects), len(snapshot))
	}

	again := e.BuildDashboard(snapshot, Facets{})
	if !reflect.DeepEqual(all, again) {
		t.Error("dashboard is not deterministic for the same snapshot")
	}
}

func TestBuildDashboardFiltersIndependentOfSelection(t *testing.T) {
	e := testEngine()
	snapshot := engineFixture()

	all := e.BuildDashboard(snapshot, Facets{})
	narrow := e.BuildDashboard(snapshot, Facets{Locations: []string{"Cusco"}})

	if len(narrow.Projects) != 1 {
		t.Fatalf("narrow selection has %d projects, want 1", len(narrow.Projects))
	}
	if !reflect.DeepEqual(all.Filters, narrow.Filters) {
		t.Errorf("filter options changed with the selection:\nall: %+v\nnarrow: %+v", all.Filters, narrow.Filters)
	}
	if len(all.Filters.Projects) != 3 || len(all.Filters.Locations) != 2 {
		t.Errorf("unexpected filter options: %+v", all.Filters)
	}
	wantYears := []int{2024, 2025}
	if !reflect.DeepEqual(all.Filters.Years, wantYears) {
		t.Errorf("Years = %v, want %v", all.Filters.Years, wantYears)
	}
}

func TestBuildDashboardPortfolioCurve(t *testing.T) {
	d := testEngine().BuildDashboard(engineFixture(), Facets{})

	// Road has no vouchers, so only the expense-backed spend shows on the
	// portfolio curve: 90000 + 60000 across four months.
	var partials float64
	for _, p := range d.Charts.PortfolioCurve {
		partials += p.Partial
	}
	checkFloat(t, "curve partial sum", partials, 150000)

	if d.Charts.PortfolioCurve[0].Month != "2024-06" {
		t.Errorf("first month = %s, want 2024-06", d.Charts.PortfolioCurve[0].Month)
	}
}

func TestBuildDashboardProjectCurves(t *testing.T) {
	d := testEngine().BuildDashboard(engineFixture(), Facets{ProjectID: 3})

	if len(d.Projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(d.Projects))
	}
	m := d.Projects[0]
	checkFloat(t, "Executed", m.Executed, 50000)
	if len(m.Curve) != 1 {
		t.Fatalf("manual-only project has %d curve points, want 1 synthetic", len(m.Curve))
	}
	checkFloat(t, "synthetic cumulative", m.Curve[0].Cumulative, 50000)
	checkFloat(t, "synthetic programmed", m.Curve[0].Programmed, 50000)
}

func TestBuildDashboardCharts(t *testing.T) {
	d := testEngine().BuildDashboard(engineFixture(), Facets{})

	if got := len(d.Charts.StatusDistribution); got != len(models.ProjectStatuses) {
		t.Errorf("StatusDistribution has %d buckets, want %d", got, len(models.ProjectStatuses))
	}
	if got := len(d.Charts.RiskDistribution); got != len(models.RiskStatuses) {
		t.Errorf("RiskDistribution has %d buckets, want %d", got, len(models.RiskStatuses))
	}
	if got := len(d.Charts.ProgressComparison); got != 3 {
		t.Errorf("ProgressComparison has %d entries, want 3", got)
	}
	if got := len(d.Charts.Delayed); got != 1 {
		t.Fatalf("Delayed has %d entries, want 1", got)
	}
	if d.Charts.Delayed[0].Name != "Bridge" {
		t.Errorf("delayed project = %s, want Bridge", d.Charts.Delayed[0].Name)
	}
	if d.Charts.TopByBudget[0].Name != "Bridge" {
		t.Errorf("top budget = %s, want Bridge", d.Charts.TopByBudget[0].Name)
	}
	if d.Charts.TopByExecuted[0].Name != "Bridge" {
		t.Errorf("top executed = %s, want Bridge", d.Charts.TopByExecuted[0].Name)
	}
	if d.GeneratedAt != testNow {
		t.Errorf("GeneratedAt = %v, want %v", d.GeneratedAt, testNow)
	}
}

func TestBuildDashboardEmptySnapshot(t *testing.T) {
	d := testEngine().BuildDashboard(nil, Facets{})

	if d.Summary.TotalProjects != 0 {
		t.Errorf("TotalProjects = %d, want 0", d.Summary.TotalProjects)
	}
	checkFloat(t, "AverageProgress", d.Summary.AverageProgress, 0)
	if len(d.Charts.PortfolioCurve) != 0 {
		t.Errorf("empty snapshot produced %d curve points", len(d.Charts.PortfolioCurve))
	}
}
