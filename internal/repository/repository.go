package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/obratrack/obratrack/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO obratrack.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM obratrack.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateProject creates a new project in the database
func (r *Repository) CreateProject(p *models.Project) error {
	query := `
		INSERT INTO obratrack.projects (name, location, initial_budget, planned_start, planned_end, status, responsible_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, p.Name, p.Location, p.InitialBudget, p.PlannedStart, p.PlannedEnd, p.Status, p.ResponsibleID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// DeleteProject removes a project and, via cascade, its budgets, lines and expenses
func (r *Repository) DeleteProject(id int64) error {
	res, err := r.db.Exec(`DELETE FROM obratrack.projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("project not found")
	}
	return nil
}

// CreateBudget creates a new budget for a project
func (r *Repository) CreateBudget(b *models.Budget) error {
	query := `
		INSERT INTO obratrack.budgets (project_id, status, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, b.ProjectID, b.Status).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// CreateBudgetLine creates a new budget line
func (r *Repository) CreateBudgetLine(l *models.BudgetLine) error {
	query := `
		INSERT INTO obratrack.budget_lines (budget_id, name, assigned_amount, manual_executed)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRow(query, l.BudgetID, l.Name, l.AssignedAmount, l.ManualExecuted).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to create budget line: %w", err)
	}
	return nil
}

// CreateExpense creates a new expense against a budget line
func (r *Repository) CreateExpense(e *models.Expense) error {
	query := `
		INSERT INTO obratrack.expenses (budget_line_id, amount, voucher_type, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRow(query, e.BudgetLineID, e.Amount, e.VoucherType, e.Date).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ProjectSnapshot loads every project with its budgets, budget lines and
// expenses fully nested. The snapshot is read in four bulk queries and
// assembled in memory; the analytics engine consumes it read-only.
func (r *Repository) ProjectSnapshot(ctx context.Context) ([]models.Project, error) {
	projects, index, err := r.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	budgetOwner, err := r.loadBudgets(ctx, projects, index)
	if err != nil {
		return nil, err
	}
	lineOwner, err := r.loadBudgetLines(ctx, projects, index, budgetOwner)
	if err != nil {
		return nil, err
	}
	if err := r.loadExpenses(ctx, projects, index, budgetOwner, lineOwner); err != nil {
		return nil, err
	}
	return projects, nil
}

// loadProjects returns the project list plus an id -> slice-index map used to
// attach the nested relations.
func (r *Repository) loadProjects(ctx context.Context) ([]models.Project, map[int64]int, error) {
	query := `
		SELECT p.id, p.name, p.location, p.initial_budget, p.planned_start, p.planned_end,
		       p.status, p.responsible_id, COALESCE(u.username, ''), p.created_at, p.updated_at
		FROM obratrack.projects p
		LEFT JOIN obratrack.users u ON u.id = p.responsible_id
		ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	index := make(map[int64]int)
	for rows.Next() {
		var p models.Project
		err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.InitialBudget, &p.PlannedStart, &p.PlannedEnd,
			&p.Status, &p.ResponsibleID, &p.ResponsibleName, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan project: %w", err)
		}
		index[p.ID] = len(projects)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return projects, index, nil
}

// loadBudgets attaches budgets to their projects and returns a
// budget id -> project id map.
func (r *Repository) loadBudgets(ctx context.Context, projects []models.Project, index map[int64]int) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, status, created_at
		FROM obratrack.budgets
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	defer rows.Close()

	owner := make(map[int64]int64)
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		i, ok := index[b.ProjectID]
		if !ok {
			continue
		}
		owner[b.ID] = b.ProjectID
		projects[i].Budgets = append(projects[i].Budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	return owner, nil
}

// loadBudgetLines attaches lines to their budgets and returns a
// line id -> budget id map.
func (r *Repository) loadBudgetLines(ctx context.Context, projects []models.Project, index map[int64]int, budgetOwner map[int64]int64) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, budget_id, name, assigned_amount, COALESCE(manual_executed, 0)
		FROM obratrack.budget_lines
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget lines: %w", err)
	}
	defer rows.Close()

	owner := make(map[int64]int64)
	for rows.Next() {
		var l models.BudgetLine
		if err := rows.Scan(&l.ID, &l.BudgetID, &l.Name, &l.AssignedAmount, &l.ManualExecuted); err != nil {
			return nil, fmt.Errorf("failed to scan budget line: %w", err)
		}
		projectID, ok := budgetOwner[l.BudgetID]
		if !ok {
			continue
		}
		owner[l.ID] = l.BudgetID
		p := &projects[index[projectID]]
		for j := range p.Budgets {
			if p.Budgets[j].ID == l.BudgetID {
				p.Budgets[j].Lines = append(p.Budgets[j].Lines, l)
				break
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load budget lines: %w", err)
	}
	return owner, nil
}

func (r *Repository) loadExpenses(ctx context.Context, projects []models.Project, index map[int64]int, budgetOwner, lineOwner map[int64]int64) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, budget_line_id, amount, voucher_type, date
		FROM obratrack.expenses
		ORDER BY date, id`)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.BudgetLineID, &e.Amount, &e.VoucherType, &e.Date); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		budgetID, ok := lineOwner[e.BudgetLineID]
		if !ok {
			continue
		}
		projectID := budgetOwner[budgetID]
		p := &projects[index[projectID]]
		for j := range p.Budgets {
			if p.Budgets[j].ID != budgetID {
				continue
			}
			for k := range p.Budgets[j].Lines {
				if p.Budgets[j].Lines[k].ID == e.BudgetLineID {
					p.Budgets[j].Lines[k].Expenses = append(p.Budgets[j].Lines[k].Expenses, e)
					break
				}
			}
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}
	return nil
}
