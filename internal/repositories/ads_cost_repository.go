package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// AdsCostRepository defines campaign spend operations.
type AdsCostRepository interface {
	Create(ctx context.Context, cost *models.AdsCost) error
	FindByID(ctx context.Context, id int64) (*models.AdsCost, error)
	Update(ctx context.Context, cost *models.AdsCost) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters models.AdsCostFilters) ([]models.AdsCost, int, error)
	SummaryByPlatform(ctx context.Context, filters models.AdsCostFilters) ([]models.PlatformTotal, error)
}

type adsCostRepository struct {
	db *sql.DB
}

// NewAdsCostRepository creates a new instance of AdsCostRepository.
func NewAdsCostRepository(db *sql.DB) AdsCostRepository {
	return &adsCostRepository{db: db}
}

const adsCostColumns = `id, campaign_name, platform, cost, results, cost_per_result, campaign_date, notes, created_by, created_at, updated_at`

func scanAdsCost(row scanner) (*models.AdsCost, error) {
	a := &models.AdsCost{}
	if err := row.Scan(&a.ID, &a.CampaignName, &a.Platform, &a.Cost, &a.Results, &a.CostPerResult,
		&a.CampaignDate, &a.Notes, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func adsCostWhere(filters models.AdsCostFilters) *whereBuilder {
	where := &whereBuilder{}
	if filters.Platform != "" {
		where.add("platform = $%d", filters.Platform)
	}
	return where
}

func (r *adsCostRepository) Create(ctx context.Context, cost *models.AdsCost) error {
	query := `INSERT INTO ads_costs (campaign_name, platform, cost, results, cost_per_result, campaign_date, notes, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, cost.CampaignName, cost.Platform, cost.Cost, cost.Results,
		cost.CostPerResult, cost.CampaignDate, cost.Notes, cost.CreatedBy).
		Scan(&cost.ID, &cost.CreatedAt, &cost.UpdatedAt)
	if err != nil {
		return wrapError("creating ads cost", err)
	}
	return nil
}

func (r *adsCostRepository) FindByID(ctx context.Context, id int64) (*models.AdsCost, error) {
	a, err := scanAdsCost(r.db.QueryRowContext(ctx, `SELECT `+adsCostColumns+` FROM ads_costs WHERE id = $1`, id))
	if err != nil {
		return nil, wrapError("finding ads cost", err)
	}
	return a, nil
}

func (r *adsCostRepository) Update(ctx context.Context, cost *models.AdsCost) error {
	query := `UPDATE ads_costs
	          SET campaign_name = $2, platform = $3, cost = $4, results = $5, cost_per_result = $6,
	              campaign_date = $7, notes = $8, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, cost.ID, cost.CampaignName, cost.Platform, cost.Cost, cost.Results,
		cost.CostPerResult, cost.CampaignDate, cost.Notes).Scan(&cost.UpdatedAt)
	if err != nil {
		return wrapError("updating ads cost", err)
	}
	return nil
}

func (r *adsCostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ads_costs WHERE id = $1`, id)
	if err != nil {
		return wrapError("deleting ads cost", err)
	}
	return requireOneRow("deleting ads cost", res)
}

func (r *adsCostRepository) List(ctx context.Context, filters models.AdsCostFilters) ([]models.AdsCost, int, error) {
	where := adsCostWhere(filters)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ads_costs`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting ads costs", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+adsCostColumns+` FROM ads_costs`+where.clause()+` ORDER BY campaign_date DESC, id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrapError("listing ads costs", err)
	}
	defer rows.Close()

	costs := []models.AdsCost{}
	for rows.Next() {
		a, err := scanAdsCost(rows)
		if err != nil {
			return nil, 0, wrapError("scanning ads cost", err)
		}
		costs = append(costs, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating ads costs", err)
	}
	return costs, total, nil
}

func (r *adsCostRepository) SummaryByPlatform(ctx context.Context, filters models.AdsCostFilters) ([]models.PlatformTotal, error) {
	where := adsCostWhere(filters)
	rows, err := r.db.QueryContext(ctx,
		`SELECT platform, COALESCE(SUM(cost), 0), COALESCE(SUM(results), 0), COUNT(*) FROM ads_costs`+
			where.clause()+` GROUP BY platform ORDER BY SUM(cost) DESC`, where.args...)
	if err != nil {
		return nil, wrapError("summarising ads costs", err)
	}
	defer rows.Close()

	totals := []models.PlatformTotal{}
	for rows.Next() {
		var t models.PlatformTotal
		if err := rows.Scan(&t.Platform, &t.Cost, &t.Results, &t.Count); err != nil {
			return nil, wrapError("scanning ads cost summary", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating ads cost summary", err)
	}
	return totals, nil
}
