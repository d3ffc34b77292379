package models

import "time"

// Budget groups the budget lines of one project
type Budget struct {
	ID        int64        `json:"id"`
	ProjectID int64        `json:"project_id"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Lines     []BudgetLine `json:"lines,omitempty"`
}

// BudgetLine is the smallest unit of planned spend ("partida") within a budget.
// ManualExecuted is an operator-entered executed figure used only when the line
// has no expense records of its own.
type BudgetLine struct {
	ID             int64     `json:"id"`
	BudgetID       int64     `json:"budget_id"`
	Name           string    `json:"name"`
	AssignedAmount float64   `json:"assigned_amount"`
	ManualExecuted float64   `json:"manual_executed"`
	Expenses       []Expense `json:"expenses,omitempty"`
}
