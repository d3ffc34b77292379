package analytics

import (
	"fmt"
	"testing"

	"github.com/obratrack/obratrack/internal/models"
)

func TestTopByCapsAtTen(t *testing.T) {
	var metrics []models.ProjectMetrics
	for i := 0; i < 13; i++ {
		metrics = append(metrics, models.ProjectMetrics{
			ProjectID:     int64(i + 1),
			Name:          fmt.Sprintf("P%02d", i+1),
			InitialBudget: float64(1000 * (i + 1)),
		})
	}

	top := topBy(metrics, func(m *models.ProjectMetrics) float64 { return m.InitialBudget })
	if len(top) != 10 {
		t.Fatalf("got %d entries, want 10", len(top))
	}
	checkFloat(t, "first value", top[0].Value, 13000)
	checkFloat(t, "last value", top[9].Value, 4000)
	for i := 1; i < len(top); i++ {
		if top[i].Value > top[i-1].Value {
			t.Fatalf("entries not descending at %d", i)
		}
	}
}

func TestTopByStableTies(t *testing.T) {
	metrics := []models.ProjectMetrics{
		{ProjectID: 1, Name: "First", Executed: 500},
		{ProjectID: 2, Name: "Second", Executed: 500},
		{ProjectID: 3, Name: "Third", Executed: 900},
	}

	top := topBy(metrics, func(m *models.ProjectMetrics) float64 { return m.Executed })
	want := []int64{3, 1, 2}
	for i, entry := range top {
		if entry.ProjectID != want[i] {
			t.Errorf("position %d = project %d, want %d", i, entry.ProjectID, want[i])
		}
	}
}

func TestTopByIdempotent(t *testing.T) {
	metrics := []models.ProjectMetrics{
		{ProjectID: 1, PhysicalProgress: 40},
		{ProjectID: 2, PhysicalProgress: 80},
		{ProjectID: 3, PhysicalProgress: 40},
	}
	value := func(m *models.ProjectMetrics) float64 { return m.PhysicalProgress }

	first := topBy(metrics, value)
	second := topBy(metrics, value)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rankings differ between runs at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDelayedList(t *testing.T) {
	metrics := []models.ProjectMetrics{
		{ProjectID: 1, Name: "OnTime", DelayDays: 0, RiskStatus: models.RiskGreen},
		{ProjectID: 2, Name: "VeryLate", DelayDays: 60, RiskStatus: models.RiskRed},
		{ProjectID: 3, Name: "Late", DelayDays: 10, RiskStatus: models.RiskYellow},
	}

	delayed := delayedList(metrics)
	if len(delayed) != 2 {
		t.Fatalf("got %d entries, want 2", len(delayed))
	}
	if delayed[0].ProjectID != 2 || delayed[1].ProjectID != 3 {
		t.Errorf("order = [%d %d], want [2 3]", delayed[0].ProjectID, delayed[1].ProjectID)
	}
	if delayed[0].RiskStatus != models.RiskRed {
		t.Errorf("RiskStatus = %s, want RED", delayed[0].RiskStatus)
	}
}

func TestDelayedListCapsAtTen(t *testing.T) {
	var metrics []models.ProjectMetrics
	for i := 0; i < 14; i++ {
		metrics = append(metrics, models.ProjectMetrics{ProjectID: int64(i + 1), DelayDays: i + 1})
	}

	delayed := delayedList(metrics)
	if len(delayed) != 10 {
		t.Fatalf("got %d entries, want 10", len(delayed))
	}
	if delayed[0].DelayDays != 14 {
		t.Errorf("worst delay = %d, want 14", delayed[0].DelayDays)
	}
}
