package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"
	"shop_backoffice/pkg/validator"

	"github.com/shopspring/decimal"
)

// CreateSalaryRequest DTO. Bonuses and deductions default to zero.
type CreateSalaryRequest struct {
	EmployeeName string           `json:"employeeName" binding:"required,max=200"`
	Position     *string          `json:"position" binding:"omitempty,max=100"`
	BaseSalary   *decimal.Decimal `json:"baseSalary" binding:"required,gte=0,money"`
	Bonuses      *decimal.Decimal `json:"bonuses" binding:"omitempty,gte=0,money"`
	Deductions   *decimal.Decimal `json:"deductions" binding:"omitempty,gte=0,money"`
	Month        int              `json:"month" binding:"required,min=1,max=12"`
	Year         int              `json:"year" binding:"required,min=2000,max=2100"`
	PaymentDate  *string          `json:"paymentDate" binding:"omitempty,min=1"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateSalaryRequest DTO; only provided fields change.
type UpdateSalaryRequest struct {
	EmployeeName *string          `json:"employeeName" binding:"omitempty,min=1,max=200"`
	Position     *string          `json:"position" binding:"omitempty,max=100"`
	BaseSalary   *decimal.Decimal `json:"baseSalary" binding:"omitempty,gte=0,money"`
	Bonuses      *decimal.Decimal `json:"bonuses" binding:"omitempty,gte=0,money"`
	Deductions   *decimal.Decimal `json:"deductions" binding:"omitempty,gte=0,money"`
	Month        *int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year         *int             `json:"year" binding:"omitempty,min=2000,max=2100"`
	PaymentDate  *string          `json:"paymentDate" binding:"omitempty,min=1"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

// SalaryService manages monthly salary records.
type SalaryService interface {
	ListSalaries(ctx context.Context, filters models.SalaryFilters) ([]models.Salary, int, models.SalarySummary, error)
	GetSalary(ctx context.Context, id int64) (*models.Salary, error)
	CreateSalary(ctx context.Context, actorID int64, req CreateSalaryRequest) (*models.Salary, error)
	UpdateSalary(ctx context.Context, id int64, req UpdateSalaryRequest) (*models.Salary, error)
	DeleteSalary(ctx context.Context, id int64) (*models.Salary, error)
}

type salaryService struct {
	salaries repositories.SalaryRepository
}

// NewSalaryService creates a new instance of SalaryService.
func NewSalaryService(salaries repositories.SalaryRepository) SalaryService {
	return &salaryService{salaries: salaries}
}

// NetSalary is base plus bonuses minus deductions.
func NetSalary(base, bonuses, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(bonuses).Sub(deductions)
}

func (s *salaryService) ListSalaries(ctx context.Context, filters models.SalaryFilters) ([]models.Salary, int, models.SalarySummary, error) {
	salaries, total, err := s.salaries.List(ctx, filters)
	if err != nil {
		return nil, 0, models.SalarySummary{}, fmt.Errorf("failed to list salaries: %w", err)
	}
	summary, err := s.salaries.Summary(ctx, filters)
	if err != nil {
		return nil, 0, models.SalarySummary{}, fmt.Errorf("failed to summarise salaries: %w", err)
	}
	return salaries, total, summary, nil
}

func (s *salaryService) GetSalary(ctx context.Context, id int64) (*models.Salary, error) {
	salary, err := s.salaries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSalaryNotFound
		}
		return nil, fmt.Errorf("failed to load salary: %w", err)
	}
	return salary, nil
}

func (s *salaryService) CreateSalary(ctx context.Context, actorID int64, req CreateSalaryRequest) (*models.Salary, error) {
	salary := &models.Salary{
		EmployeeName: strings.TrimSpace(req.EmployeeName),
		Position:     utils.TrimPtr(req.Position),
		BaseSalary:   models.NewMoney(*req.BaseSalary),
		Bonuses:      models.NewMoney(valueOrZero(req.Bonuses)),
		Deductions:   models.NewMoney(valueOrZero(req.Deductions)),
		Month:        req.Month,
		Year:         req.Year,
		Notes:        utils.TrimPtr(req.Notes),
		CreatedBy:    &actorID,
	}
	if req.PaymentDate != nil {
		date, verr := parseDate("paymentDate", *req.PaymentDate)
		if verr != nil {
			return nil, verr
		}
		salary.PaymentDate = &date
	}
	if verr := applyNetSalary(salary); verr != nil {
		return nil, verr
	}
	if err := s.salaries.Create(ctx, salary); err != nil {
		return nil, mapSalaryWriteError(err)
	}
	return salary, nil
}

func (s *salaryService) UpdateSalary(ctx context.Context, id int64, req UpdateSalaryRequest) (*models.Salary, error) {
	salary, err := s.GetSalary(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.EmployeeName == nil && req.Position == nil && req.BaseSalary == nil && req.Bonuses == nil &&
		req.Deductions == nil && req.Month == nil && req.Year == nil && req.PaymentDate == nil && req.Notes == nil {
		return nil, errEmptyUpdate
	}

	if req.EmployeeName != nil {
		salary.EmployeeName = strings.TrimSpace(*req.EmployeeName)
	}
	if req.Position != nil {
		salary.Position = utils.TrimPtr(req.Position)
	}
	if req.BaseSalary != nil {
		salary.BaseSalary = models.NewMoney(*req.BaseSalary)
	}
	if req.Bonuses != nil {
		salary.Bonuses = models.NewMoney(*req.Bonuses)
	}
	if req.Deductions != nil {
		salary.Deductions = models.NewMoney(*req.Deductions)
	}
	if req.Month != nil {
		salary.Month = *req.Month
	}
	if req.Year != nil {
		salary.Year = *req.Year
	}
	if req.PaymentDate != nil {
		date, verr := parseDate("paymentDate", *req.PaymentDate)
		if verr != nil {
			return nil, verr
		}
		salary.PaymentDate = &date
	}
	if req.Notes != nil {
		salary.Notes = utils.TrimPtr(req.Notes)
	}
	if verr := applyNetSalary(salary); verr != nil {
		return nil, verr
	}

	if err := s.salaries.Update(ctx, salary); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSalaryNotFound
		}
		return nil, mapSalaryWriteError(err)
	}
	return salary, nil
}

func (s *salaryService) DeleteSalary(ctx context.Context, id int64) (*models.Salary, error) {
	salary, err := s.GetSalary(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.salaries.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSalaryNotFound
		}
		return nil, fmt.Errorf("failed to delete salary: %w", err)
	}
	return salary, nil
}

func applyNetSalary(salary *models.Salary) *ValidationError {
	net := NetSalary(salary.BaseSalary.Decimal, salary.Bonuses.Decimal, salary.Deductions.Decimal)
	if net.IsNegative() {
		return newValidationError("deductions", "cannot exceed base salary plus bonuses")
	}
	if !validator.MoneyInRange(net) {
		return newValidationError("bonuses", "net salary is too large")
	}
	salary.NetSalary = models.NewMoney(net)
	return nil
}

func mapSalaryWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return newValidationError("employeeName", "already has a salary record for this month")
	}
	return fmt.Errorf("failed to save salary: %w", err)
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

