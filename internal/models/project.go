package models

import "time"

// Project statuses
const (
	StatusPlanned    = "PLANNED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusSettled    = "SETTLED"
)

// ProjectStatuses lists every valid status in canonical order
var ProjectStatuses = []string{StatusPlanned, StatusInProgress, StatusCompleted, StatusSettled}

// Project represents a construction project with its nested budgets
type Project struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	InitialBudget   float64    `json:"initial_budget"`
	PlannedStart    *time.Time `json:"planned_start"`
	PlannedEnd      *time.Time `json:"planned_end"`
	Status          string     `json:"status"`
	ResponsibleID   int64      `json:"responsible_id"`
	ResponsibleName string     `json:"responsible_name"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Budgets         []Budget   `json:"budgets,omitempty"`
}

// StartYear returns the planned-start year, or 0 when no start date is set
func (p *Project) StartYear() int {
	if p.PlannedStart == nil {
		return 0
	}
	return p.PlannedStart.Year()
}

// ValidStatus reports whether s is one of the known project statuses
func ValidStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}
