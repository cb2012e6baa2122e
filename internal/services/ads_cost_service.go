package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"

	"github.com/shopspring/decimal"
)

// CreateAdsCostRequest DTO. Any costPerResult sent by the client is ignored.
type CreateAdsCostRequest struct {
	CampaignName string             `json:"campaignName" binding:"required,max=200"`
	Platform     models.AdsPlatform `json:"platform" binding:"required,oneof=Meta TikTok Google Snapchat Other"`
	Cost         *decimal.Decimal   `json:"cost" binding:"required,gte=0,money"`
	Results      *int64             `json:"results" binding:"required,gte=0,max=2147483647"`
	CampaignDate string             `json:"campaignDate" binding:"required"`
	Notes        *string            `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateAdsCostRequest DTO; only provided fields change.
type UpdateAdsCostRequest struct {
	CampaignName *string             `json:"campaignName" binding:"omitempty,min=1,max=200"`
	Platform     *models.AdsPlatform `json:"platform" binding:"omitempty,oneof=Meta TikTok Google Snapchat Other"`
	Cost         *decimal.Decimal    `json:"cost" binding:"omitempty,gte=0,money"`
	Results      *int64              `json:"results" binding:"omitempty,gte=0,max=2147483647"`
	CampaignDate *string             `json:"campaignDate" binding:"omitempty,min=1"`
	Notes        *string             `json:"notes" binding:"omitempty,max=1000"`
}

// CostPerResult is cost divided by results rounded to cents, zero when there are no results.
func CostPerResult(cost decimal.Decimal, results int64) decimal.Decimal {
	if results <= 0 {
		return decimal.Zero
	}
	return cost.DivRound(decimal.NewFromInt(results), 2)
}

// AdsCostService manages advertising spend.
type AdsCostService interface {
	ListAdsCosts(ctx context.Context, filters models.AdsCostFilters) ([]models.AdsCost, int, models.AdsCostSummary, error)
	GetAdsCost(ctx context.Context, id int64) (*models.AdsCost, error)
	CreateAdsCost(ctx context.Context, actorID int64, req CreateAdsCostRequest) (*models.AdsCost, error)
	UpdateAdsCost(ctx context.Context, id int64, req UpdateAdsCostRequest) (*models.AdsCost, error)
	DeleteAdsCost(ctx context.Context, id int64) (*models.AdsCost, error)
}

type adsCostService struct {
	costs repositories.AdsCostRepository
}

// NewAdsCostService creates a new instance of AdsCostService.
func NewAdsCostService(costs repositories.AdsCostRepository) AdsCostService {
	return &adsCostService{costs: costs}
}

func (s *adsCostService) ListAdsCosts(ctx context.Context, filters models.AdsCostFilters) ([]models.AdsCost, int, models.AdsCostSummary, error) {
	costs, total, err := s.costs.List(ctx, filters)
	if err != nil {
		return nil, 0, models.AdsCostSummary{}, fmt.Errorf("failed to list ads costs: %w", err)
	}
	platforms, err := s.costs.SummaryByPlatform(ctx, filters)
	if err != nil {
		return nil, 0, models.AdsCostSummary{}, fmt.Errorf("failed to summarise ads costs: %w", err)
	}
	return costs, total, SummariseAdsCosts(platforms), nil
}

// SummariseAdsCosts folds the per-platform rows into overall totals.
func SummariseAdsCosts(platforms []models.PlatformTotal) models.AdsCostSummary {
	if platforms == nil {
		platforms = []models.PlatformTotal{}
	}
	totalCost := decimal.Zero
	var totalResults int64
	count := 0
	for _, p := range platforms {
		totalCost = totalCost.Add(p.Cost.Decimal)
		totalResults += p.Results
		count += p.Count
	}
	return models.AdsCostSummary{
		TotalCost:            models.NewMoney(totalCost),
		TotalResults:         totalResults,
		AverageCostPerResult: models.NewMoney(CostPerResult(totalCost, totalResults)),
		Count:                count,
		ByPlatform:           platforms,
	}
}

func (s *adsCostService) GetAdsCost(ctx context.Context, id int64) (*models.AdsCost, error) {
	cost, err := s.costs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAdsCostNotFound
		}
		return nil, fmt.Errorf("failed to load ads cost: %w", err)
	}
	return cost, nil
}

func (s *adsCostService) CreateAdsCost(ctx context.Context, actorID int64, req CreateAdsCostRequest) (*models.AdsCost, error) {
	date, verr := parseDate("campaignDate", req.CampaignDate)
	if verr != nil {
		return nil, verr
	}
	cost := &models.AdsCost{
		CampaignName:  strings.TrimSpace(req.CampaignName),
		Platform:      req.Platform,
		Cost:          models.NewMoney(*req.Cost),
		Results:       *req.Results,
		CostPerResult: models.NewMoney(CostPerResult(*req.Cost, *req.Results)),
		CampaignDate:  date,
		Notes:         utils.TrimPtr(req.Notes),
		CreatedBy:     &actorID,
	}
	if err := s.costs.Create(ctx, cost); err != nil {
		return nil, fmt.Errorf("failed to create ads cost: %w", err)
	}
	return cost, nil
}

func (s *adsCostService) UpdateAdsCost(ctx context.Context, id int64, req UpdateAdsCostRequest) (*models.AdsCost, error) {
	cost, err := s.GetAdsCost(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CampaignName == nil && req.Platform == nil && req.Cost == nil && req.Results == nil &&
		req.CampaignDate == nil && req.Notes == nil {
		return nil, errEmptyUpdate
	}

	if req.CampaignName != nil {
		cost.CampaignName = strings.TrimSpace(*req.CampaignName)
	}
	if req.Platform != nil {
		cost.Platform = *req.Platform
	}
	if req.Cost != nil {
		cost.Cost = models.NewMoney(*req.Cost)
	}
	if req.Results != nil {
		cost.Results = *req.Results
	}
	if req.CampaignDate != nil {
		date, verr := parseDate("campaignDate", *req.CampaignDate)
		if verr != nil {
			return nil, verr
		}
		cost.CampaignDate = date
	}
	if req.Notes != nil {
		cost.Notes = utils.TrimPtr(req.Notes)
	}
	cost.CostPerResult = models.NewMoney(CostPerResult(cost.Cost.Decimal, cost.Results))

	if err := s.costs.Update(ctx, cost); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAdsCostNotFound
		}
		return nil, fmt.Errorf("failed to update ads cost: %w", err)
	}
	return cost, nil
}

func (s *adsCostService) DeleteAdsCost(ctx context.Context, id int64) (*models.AdsCost, error) {
	cost, err := s.GetAdsCost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.costs.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAdsCostNotFound
		}
		return nil, fmt.Errorf("failed to delete ads cost: %w", err)
	}
	return cost, nil
}
