package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// SalaryRepository defines payroll record operations.
type SalaryRepository interface {
	Create(ctx context.Context, salary *models.Salary) error
	FindByID(ctx context.Context, id int64) (*models.Salary, error)
	Update(ctx context.Context, salary *models.Salary) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters models.SalaryFilters) ([]models.Salary, int, error)
	Summary(ctx context.Context, filters models.SalaryFilters) (models.SalarySummary, error)
}

type salaryRepository struct {
	db *sql.DB
}

// NewSalaryRepository creates a new instance of SalaryRepository.
func NewSalaryRepository(db *sql.DB) SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, employee_name, position, base_salary, bonuses, deductions, net_salary, month, year,
	payment_date, notes, created_by, created_at, updated_at`

func scanSalary(row scanner) (*models.Salary, error) {
	s := &models.Salary{}
	if err := row.Scan(&s.ID, &s.EmployeeName, &s.Position, &s.BaseSalary, &s.Bonuses, &s.Deductions, &s.NetSalary,
		&s.Month, &s.Year, &s.PaymentDate, &s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func salaryWhere(filters models.SalaryFilters) *whereBuilder {
	where := &whereBuilder{}
	if filters.Month != 0 {
		where.add("month = $%d", filters.Month)
	}
	if filters.Year != 0 {
		where.add("year = $%d", filters.Year)
	}
	return where
}

func (r *salaryRepository) Create(ctx context.Context, salary *models.Salary) error {
	query := `INSERT INTO salaries
	            (employee_name, position, base_salary, bonuses, deductions, net_salary, month, year, payment_date, notes, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, salary.EmployeeName, salary.Position, salary.BaseSalary, salary.Bonuses,
		salary.Deductions, salary.NetSalary, salary.Month, salary.Year, salary.PaymentDate, salary.Notes, salary.CreatedBy).
		Scan(&salary.ID, &salary.CreatedAt, &salary.UpdatedAt)
	if err != nil {
		return wrapError("creating salary", err)
	}
	return nil
}

func (r *salaryRepository) FindByID(ctx context.Context, id int64) (*models.Salary, error) {
	s, err := scanSalary(r.db.QueryRowContext(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id = $1`, id))
	if err != nil {
		return nil, wrapError("finding salary", err)
	}
	return s, nil
}

func (r *salaryRepository) Update(ctx context.Context, salary *models.Salary) error {
	query := `UPDATE salaries
	          SET employee_name = $2, position = $3, base_salary = $4, bonuses = $5, deductions = $6,
	              net_salary = $7, month = $8, year = $9, payment_date = $10, notes = $11, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, salary.ID, salary.EmployeeName, salary.Position, salary.BaseSalary,
		salary.Bonuses, salary.Deductions, salary.NetSalary, salary.Month, salary.Year, salary.PaymentDate, salary.Notes).
		Scan(&salary.UpdatedAt)
	if err != nil {
		return wrapError("updating salary", err)
	}
	return nil
}

func (r *salaryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return wrapError("deleting salary", err)
	}
	return requireOneRow("deleting salary", res)
}

func (r *salaryRepository) List(ctx context.Context, filters models.SalaryFilters) ([]models.Salary, int, error) {
	where := salaryWhere(filters)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM salaries`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting salaries", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+salaryColumns+` FROM salaries`+where.clause()+
			` ORDER BY year DESC, month DESC, employee_name ASC`+suffix, args...)
	if err != nil {
		return nil, 0, wrapError("listing salaries", err)
	}
	defer rows.Close()

	salaries := []models.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, 0, wrapError("scanning salary", err)
		}
		salaries = append(salaries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating salaries", err)
	}
	return salaries, total, nil
}

func (r *salaryRepository) Summary(ctx context.Context, filters models.SalaryFilters) (models.SalarySummary, error) {
	where := salaryWhere(filters)
	var s models.SalarySummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(base_salary), 0), COALESCE(SUM(bonuses), 0), COALESCE(SUM(deductions), 0),
		        COALESCE(SUM(net_salary), 0), COUNT(*)
		   FROM salaries`+where.clause(), where.args...).
		Scan(&s.TotalBase, &s.TotalBonuses, &s.TotalDeductions, &s.TotalNet, &s.Count)
	if err != nil {
		return s, wrapError("summarising salaries", err)
	}
	return s, nil
}
