package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// ChargeRepository defines operating-cost operations.
type ChargeRepository interface {
	Create(ctx context.Context, charge *models.Charge) error
	FindByID(ctx context.Context, id int64) (*models.Charge, error)
	Update(ctx context.Context, charge *models.Charge) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters models.ChargeFilters) ([]models.Charge, int, error)
	Summary(ctx context.Context, filters models.ChargeFilters) (models.ChargeSummary, error)
}

type chargeRepository struct {
	db *sql.DB
}

// NewChargeRepository creates a new instance of ChargeRepository.
func NewChargeRepository(db *sql.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

const chargeColumns = `id, type, custom_type, amount, description, charge_date, created_by, created_at, updated_at`

func scanCharge(row scanner) (*models.Charge, error) {
	c := &models.Charge{}
	if err := row.Scan(&c.ID, &c.Type, &c.CustomType, &c.Amount, &c.Description, &c.ChargeDate,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func chargeWhere(filters models.ChargeFilters) *whereBuilder {
	where := &whereBuilder{}
	if filters.Type != "" {
		where.add("type = $%d", filters.Type)
	}
	return where
}

func (r *chargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	query := `INSERT INTO charges (type, custom_type, amount, description, charge_date, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, charge.Type, charge.CustomType, charge.Amount, charge.Description,
		charge.ChargeDate, charge.CreatedBy).Scan(&charge.ID, &charge.CreatedAt, &charge.UpdatedAt)
	if err != nil {
		return wrapError("creating charge", err)
	}
	return nil
}

func (r *chargeRepository) FindByID(ctx context.Context, id int64) (*models.Charge, error) {
	c, err := scanCharge(r.db.QueryRowContext(ctx, `SELECT `+chargeColumns+` FROM charges WHERE id = $1`, id))
	if err != nil {
		return nil, wrapError("finding charge", err)
	}
	return c, nil
}

func (r *chargeRepository) Update(ctx context.Context, charge *models.Charge) error {
	query := `UPDATE charges
	          SET type = $2, custom_type = $3, amount = $4, description = $5, charge_date = $6, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, charge.ID, charge.Type, charge.CustomType, charge.Amount,
		charge.Description, charge.ChargeDate).Scan(&charge.UpdatedAt)
	if err != nil {
		return wrapError("updating charge", err)
	}
	return nil
}

func (r *chargeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM charges WHERE id = $1`, id)
	if err != nil {
		return wrapError("deleting charge", err)
	}
	return requireOneRow("deleting charge", res)
}

func (r *chargeRepository) List(ctx context.Context, filters models.ChargeFilters) ([]models.Charge, int, error) {
	where := chargeWhere(filters)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM charges`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting charges", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+chargeColumns+` FROM charges`+where.clause()+` ORDER BY charge_date DESC, id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrapError("listing charges", err)
	}
	defer rows.Close()

	charges := []models.Charge{}
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, 0, wrapError("scanning charge", err)
		}
		charges = append(charges, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating charges", err)
	}
	return charges, total, nil
}

func (r *chargeRepository) Summary(ctx context.Context, filters models.ChargeFilters) (models.ChargeSummary, error) {
	where := chargeWhere(filters)
	summary := models.ChargeSummary{ByType: []models.ChargeTypeTotal{}}

	rows, err := r.db.QueryContext(ctx,
		`SELECT type, COALESCE(SUM(amount), 0), COUNT(*) FROM charges`+where.clause()+
			` GROUP BY type ORDER BY SUM(amount) DESC`, where.args...)
	if err != nil {
		return summary, wrapError("summarising charges", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.ChargeTypeTotal
		if err := rows.Scan(&t.Type, &t.Amount, &t.Count); err != nil {
			return summary, wrapError("scanning charge summary", err)
		}
		summary.TotalAmount = models.NewMoney(summary.TotalAmount.Add(t.Amount.Decimal))
		summary.Count += t.Count
		summary.ByType = append(summary.ByType, t)
	}
	if err := rows.Err(); err != nil {
		return summary, wrapError("iterating charge summary", err)
	}
	return summary, nil
}
