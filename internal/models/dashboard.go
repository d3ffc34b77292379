package models

import "time"

// Risk statuses ("traffic light")
const (
	RiskGreen  = "GREEN"
	RiskYellow = "YELLOW"
	RiskRed    = "RED"
)

// RiskStatuses lists the risk levels in canonical order
var RiskStatuses = []string{RiskGreen, RiskYellow, RiskRed}

// ProjectMetrics is the per-project reduction computed for one dashboard request
type ProjectMetrics struct {
	ProjectID          int64          `json:"project_id"`
	Name               string         `json:"name"`
	Location           string         `json:"location"`
	Responsible        string         `json:"responsible"`
	Status             string         `json:"status"`
	InitialBudget      float64        `json:"initial_budget"`
	Allocated          float64        `json:"allocated"`
	Executed           float64        `json:"executed"`
	Balance            float64        `json:"balance"`
	PhysicalProgress   float64        `json:"physical_progress"`
	FinancialProgress  float64        `json:"financial_progress"`
	ProgrammedProgress float64        `json:"programmed_progress"`
	Variance           float64        `json:"variance"`
	DelayDays          int            `json:"delay_days"`
	RiskStatus         string         `json:"risk_status"`
	Lines              []LineDetail   `json:"lines"`
	Curve              []MonthlyPoint `json:"curve"`
}

// LineDetail is the drill-down row for one budget line
type LineDetail struct {
	Name        string  `json:"name"`
	Assigned    float64 `json:"assigned"`
	Executed    float64 `json:"executed"`
	ProgressPct float64 `json:"progress_pct"`
}

// MonthlyPoint is one month of an S-curve: partial and cumulative actual spend
// against the programmed baseline
type MonthlyPoint struct {
	Month         string  `json:"month"` // YYYY-MM
	Partial       float64 `json:"partial"`
	PartialPct    float64 `json:"partial_pct"`
	Cumulative    float64 `json:"cumulative"`
	CumulativePct float64 `json:"cumulative_pct"`
	Programmed    float64 `json:"programmed"`
	ProgrammedPct float64 `json:"programmed_pct"`
}

// RollupBucket is one group of a single-dimension rollup
type RollupBucket struct {
	Key         string  `json:"key"`
	Allocated   float64 `json:"allocated"`
	Executed    float64 `json:"executed"`
	Count       int     `json:"count"`
	ProgressPct float64 `json:"progress_pct"`
}

// RankEntry is one row of a top-N ranking
type RankEntry struct {
	ProjectID int64   `json:"project_id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
}

// DelayedEntry is one row of the delayed-projects list
type DelayedEntry struct {
	ProjectID  int64  `json:"project_id"`
	Name       string `json:"name"`
	DelayDays  int    `json:"delay_days"`
	RiskStatus string `json:"risk_status"`
}

// ProgressEntry compares actual against programmed progress for one project
type ProgressEntry struct {
	ProjectID  int64   `json:"project_id"`
	Name       string  `json:"name"`
	Physical   float64 `json:"physical"`
	Programmed float64 `json:"programmed"`
	Variance   float64 `json:"variance"`
}

// ProjectRef is an (id, name) pair used to populate selection controls
type ProjectRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Summary holds the portfolio-level headline figures
type Summary struct {
	TotalProjects   int            `json:"total_projects"`
	ByStatus        map[string]int `json:"by_status"`
	ByRisk          map[string]int `json:"by_risk"`
	TotalBudget     float64        `json:"total_budget"`
	TotalExecuted   float64        `json:"total_executed"`
	TotalBalance    float64        `json:"total_balance"`
	AverageProgress float64        `json:"average_progress"`
}

// Charts bundles every chart-ready series of the dashboard
type Charts struct {
	StatusDistribution []RollupBucket  `json:"status_distribution"`
	RiskDistribution   []RollupBucket  `json:"risk_distribution"`
	PortfolioCurve     []MonthlyPoint  `json:"portfolio_curve"`
	ByVoucherType      []RollupBucket  `json:"by_voucher_type"`
	ByBudgetLine       []RollupBucket  `json:"by_budget_line"`
	ByLocation         []RollupBucket  `json:"by_location"`
	ByResponsible      []RollupBucket  `json:"by_responsible"`
	ByYear             []RollupBucket  `json:"by_year"`
	ProgressComparison []ProgressEntry `json:"progress_comparison"`
	Delayed            []DelayedEntry  `json:"delayed"`
	TopByBudget        []RankEntry     `json:"top_by_budget"`
	TopByProgress      []RankEntry     `json:"top_by_progress"`
	TopByExecuted      []RankEntry     `json:"top_by_executed"`
}

// FilterOptions lists the distinct facet values available across the whole
// portfolio, independent of the current selection
type FilterOptions struct {
	Locations    []string     `json:"locations"`
	Years        []int        `json:"years"`
	Responsibles []string     `json:"responsibles"`
	Projects     []ProjectRef `json:"projects"`
}

// Dashboard is the full analytics payload for one request
type Dashboard struct {
	Summary     Summary          `json:"summary"`
	Charts      Charts           `json:"charts"`
	Projects    []ProjectMetrics `json:"projects"`
	Filters     FilterOptions    `json:"filters"`
	GeneratedAt time.Time        `json:"generated_at"`
}
