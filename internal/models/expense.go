package models

import "time"

// Expense represents one voucher-backed spend ("gasto") against a budget line
type Expense struct {
	ID           int64     `json:"id"`
	BudgetLineID int64     `json:"budget_line_id"`
	Amount       float64   `json:"amount"`
	VoucherType  string    `json:"voucher_type"`
	Date         time.Time `json:"date"`
}
