package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/obratrack/obratrack/internal/analytics"
	"github.com/obratrack/obratrack/internal/config"
	"github.com/obratrack/obratrack/internal/models"
	"github.com/obratrack/obratrack/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	engine *analytics.Engine
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, engine *analytics.Engine, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, engine: engine, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CreateProject creates a new construction project
func (s *Service) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if p.Status == "" {
		p.Status = models.StatusPlanned
	}
	if !models.ValidStatus(p.Status) {
		return nil, fmt.Errorf("invalid project status: %s", p.Status)
	}
	if p.InitialBudget < 0 {
		return nil, fmt.Errorf("initial budget cannot be negative")
	}

	if err := s.repo.CreateProject(p); err != nil {
		return nil, err
	}
	s.log.Infof("Project created: %s (%d)", p.Name, p.ID)
	return p, nil
}

// DeleteProject removes a project with all its budgets, lines and expenses
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProject(id); err != nil {
		return err
	}
	s.log.Infof("Project deleted: %d", id)
	return nil
}

// CreateBudget creates a budget for a project
func (s *Service) CreateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	if b.ProjectID == 0 {
		return nil, fmt.Errorf("project id is required")
	}
	if b.Status == "" {
		b.Status = "VALID"
	}
	if err := s.repo.CreateBudget(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBudgetLine creates a budget line ("partida")
func (s *Service) CreateBudgetLine(ctx context.Context, l *models.BudgetLine) (*models.BudgetLine, error) {
	if l.BudgetID == 0 {
		return nil, fmt.Errorf("budget id is required")
	}
	if l.Name == "" {
		return nil, fmt.Errorf("budget line name is required")
	}
	if l.AssignedAmount < 0 || l.ManualExecuted < 0 {
		return nil, fmt.Errorf("amounts cannot be negative")
	}
	if err := s.repo.CreateBudgetLine(l); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateExpense records an expense ("gasto") against a budget line
func (s *Service) CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	if e.BudgetLineID == 0 {
		return nil, fmt.Errorf("budget line id is required")
	}
	if e.Amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	if err := s.repo.CreateExpense(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Projects returns the full project snapshot with nested relations
func (s *Service) Projects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.ProjectSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project snapshot: %w", err)
	}
	return projects, nil
}

// Dashboard reads the project snapshot once and runs the full analytics pass
// over it. A failed read surfaces immediately; no partial payload is returned.
func (s *Service) Dashboard(ctx context.Context, facets analytics.Facets) (*models.Dashboard, error) {
	snapshot, err := s.repo.ProjectSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project snapshot: %w", err)
	}
	return s.engine.BuildDashboard(snapshot, facets), nil
}
