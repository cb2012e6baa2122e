package services

import (
	"context"
	"errors"
	"fmt"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"

	"github.com/shopspring/decimal"
)

// CreateChargeRequest DTO
type CreateChargeRequest struct {
	Type        models.ChargeType `json:"type" binding:"required,oneof=Rent Utilities Salaries Shipping Packaging Marketing Equipment Other"`
	CustomType  *string           `json:"customType" binding:"omitempty,max=100"`
	Amount      *decimal.Decimal  `json:"amount" binding:"required,gt=0,money"`
	Description *string           `json:"description" binding:"omitempty,max=1000"`
	ChargeDate  string            `json:"chargeDate" binding:"required"`
}

// UpdateChargeRequest DTO; only provided fields change.
type UpdateChargeRequest struct {
	Type        *models.ChargeType `json:"type" binding:"omitempty,oneof=Rent Utilities Salaries Shipping Packaging Marketing Equipment Other"`
	CustomType  *string            `json:"customType" binding:"omitempty,max=100"`
	Amount      *decimal.Decimal   `json:"amount" binding:"omitempty,gt=0,money"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	ChargeDate  *string            `json:"chargeDate" binding:"omitempty,min=1"`
}

// ChargeService manages operating costs.
type ChargeService interface {
	ListCharges(ctx context.Context, filters models.ChargeFilters) ([]models.Charge, int, models.ChargeSummary, error)
	GetCharge(ctx context.Context, id int64) (*models.Charge, error)
	CreateCharge(ctx context.Context, actorID int64, req CreateChargeRequest) (*models.Charge, error)
	UpdateCharge(ctx context.Context, id int64, req UpdateChargeRequest) (*models.Charge, error)
	DeleteCharge(ctx context.Context, id int64) (*models.Charge, error)
}

type chargeService struct {
	charges repositories.ChargeRepository
}

// NewChargeService creates a new instance of ChargeService.
func NewChargeService(charges repositories.ChargeRepository) ChargeService {
	return &chargeService{charges: charges}
}

func (s *chargeService) ListCharges(ctx context.Context, filters models.ChargeFilters) ([]models.Charge, int, models.ChargeSummary, error) {
	charges, total, err := s.charges.List(ctx, filters)
	if err != nil {
		return nil, 0, models.ChargeSummary{}, fmt.Errorf("failed to list charges: %w", err)
	}
	summary, err := s.charges.Summary(ctx, filters)
	if err != nil {
		return nil, 0, models.ChargeSummary{}, fmt.Errorf("failed to summarise charges: %w", err)
	}
	return charges, total, summary, nil
}

func (s *chargeService) GetCharge(ctx context.Context, id int64) (*models.Charge, error) {
	charge, err := s.charges.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to load charge: %w", err)
	}
	return charge, nil
}

func (s *chargeService) CreateCharge(ctx context.Context, actorID int64, req CreateChargeRequest) (*models.Charge, error) {
	custom, verr := requireCustomLabel("customType", req.Type == models.ChargeOther, req.CustomType)
	if verr != nil {
		return nil, verr
	}
	date, verr := parseDate("chargeDate", req.ChargeDate)
	if verr != nil {
		return nil, verr
	}
	charge := &models.Charge{
		Type:        req.Type,
		CustomType:  custom,
		Amount:      models.NewMoney(*req.Amount),
		Description: utils.TrimPtr(req.Description),
		ChargeDate:  date,
		CreatedBy:   &actorID,
	}
	if err := s.charges.Create(ctx, charge); err != nil {
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}
	return charge, nil
}

// UpdateCharge loads the charge first so a missing id is a 404 before any
// field validation runs, then validates the merged record.
func (s *chargeService) UpdateCharge(ctx context.Context, id int64, req UpdateChargeRequest) (*models.Charge, error) {
	charge, err := s.GetCharge(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Type == nil && req.CustomType == nil && req.Amount == nil && req.Description == nil && req.ChargeDate == nil {
		return nil, errEmptyUpdate
	}

	if req.Type != nil {
		charge.Type = *req.Type
	}
	if req.CustomType != nil {
		charge.CustomType = req.CustomType
	}
	if req.Amount != nil {
		charge.Amount = models.NewMoney(*req.Amount)
	}
	if req.Description != nil {
		charge.Description = utils.TrimPtr(req.Description)
	}
	if req.ChargeDate != nil {
		date, verr := parseDate("chargeDate", *req.ChargeDate)
		if verr != nil {
			return nil, verr
		}
		charge.ChargeDate = date
	}
	custom, verr := requireCustomLabel("customType", charge.Type == models.ChargeOther, charge.CustomType)
	if verr != nil {
		return nil, verr
	}
	charge.CustomType = custom

	if err := s.charges.Update(ctx, charge); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to update charge: %w", err)
	}
	return charge, nil
}

func (s *chargeService) DeleteCharge(ctx context.Context, id int64) (*models.Charge, error) {
	charge, err := s.GetCharge(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.charges.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to delete charge: %w", err)
	}
	return charge, nil
}
