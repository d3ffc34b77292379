package analytics

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/obratrack/obratrack/internal/models"
	"github.com/sirupsen/logrus"
)

// testNow is the fixed clock used across the analytics tests.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func expenseOn(amount float64, voucher string, y int, m time.Month, d int) models.Expense {
	return models.Expense{Amount: amount, VoucherType: voucher, Date: day(y, m, d)}
}

// newProject builds a project with a single budget holding the given lines.
func newProject(id int64, name, location, responsible, status string, initialBudget float64, start, end *time.Time, lines ...models.BudgetLine) models.Project {
	return models.Project{
		ID:              id,
		Name:            name,
		Location:        location,
		ResponsibleName: responsible,
		Status:          status,
		InitialBudget:   initialBudget,
		PlannedStart:    start,
		PlannedEnd:      end,
		Budgets:         []models.Budget{{ID: id * 100, ProjectID: id, Status: "VALID", Lines: lines}},
	}
}

func line(name string, assigned, manual float64, expenses ...models.Expense) models.BudgetLine {
	return models.BudgetLine{Name: name, AssignedAmount: assigned, ManualExecuted: manual, Expenses: expenses}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func checkFloat(t *testing.T, field string, got, want float64) {
	t.Helper()
	if !almostEqual(got, want) {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testEngine() *Engine {
	e := NewEngine(6, testLogger())
	e.now = func() time.Time { return testNow }
	return e
}
