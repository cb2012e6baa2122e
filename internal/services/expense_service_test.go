package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"

	"github.com/shopspring/decimal"
)

type fakeChargeRepo struct {
	repositories.ChargeRepository
	rows    map[int64]*models.Charge
	updates int
}

func (r *fakeChargeRepo) FindByID(_ context.Context, id int64) (*models.Charge, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChargeRepo) Create(_ context.Context, c *models.Charge) error {
	c.ID = 1
	return nil
}

func (r *fakeChargeRepo) Update(_ context.Context, c *models.Charge) error {
	r.updates++
	r.rows[c.ID] = c
	return nil
}

type fakeAdsRepo struct {
	repositories.AdsCostRepository
	rows map[int64]*models.AdsCost
}

func (r *fakeAdsRepo) Create(_ context.Context, c *models.AdsCost) error {
	c.ID = 1
	return nil
}

func (r *fakeAdsRepo) FindByID(_ context.Context, id int64) (*models.AdsCost, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeAdsRepo) Update(context.Context, *models.AdsCost) error { return nil }

type fakeSalaryRepo struct {
	repositories.SalaryRepository
	err error
}

func (r *fakeSalaryRepo) Create(_ context.Context, s *models.Salary) error {
	if r.err != nil {
		return r.err
	}
	s.ID = 1
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCostPerResult(t *testing.T) {
	cases := []struct {
		cost    string
		results int64
		want    string
	}{
		{"100", 25, "4.00"},
		{"100", 0, "0.00"},
		{"10", 3, "3.33"},
		{"0", 5, "0.00"},
		{"2", 3, "0.67"},
	}
	for _, tc := range cases {
		got := CostPerResult(decimal.RequireFromString(tc.cost), tc.results).StringFixed(2)
		if got != tc.want {
			t.Errorf("CostPerResult(%s, %d) = %s, want %s", tc.cost, tc.results, got, tc.want)
		}
	}
}

func TestCreateAdsCostDerivesCostPerResult(t *testing.T) {
	svc := NewAdsCostService(&fakeAdsRepo{})
	results := int64(25)
	c, err := svc.CreateAdsCost(context.Background(), 1, CreateAdsCostRequest{
		CampaignName: "Spring", Platform: models.PlatformMeta, Cost: dec("100"), Results: &results, CampaignDate: "2026-04-01",
	})
	if err != nil {
		t.Fatalf("CreateAdsCost: %v", err)
	}
	if c.CostPerResult.StringFixed(2) != "4.00" {
		t.Fatalf("costPerResult = %s", c.CostPerResult.StringFixed(2))
	}
	if !c.CampaignDate.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("campaignDate = %v", c.CampaignDate)
	}
}

func TestUpdateAdsCostRecomputes(t *testing.T) {
	repo := &fakeAdsRepo{rows: map[int64]*models.AdsCost{
		3: {ID: 3, Cost: money("100"), Results: 25, CostPerResult: money("4")},
	}}
	svc := NewAdsCostService(repo)
	zero := int64(0)
	c, err := svc.UpdateAdsCost(context.Background(), 3, UpdateAdsCostRequest{Results: &zero})
	if err != nil {
		t.Fatalf("UpdateAdsCost: %v", err)
	}
	if c.CostPerResult.StringFixed(2) != "0.00" {
		t.Fatalf("costPerResult = %s", c.CostPerResult.StringFixed(2))
	}
}

func TestSummariseAdsCosts(t *testing.T) {
	s := SummariseAdsCosts([]models.PlatformTotal{
		{Platform: models.PlatformMeta, Cost: money("60"), Results: 20, Count: 2},
		{Platform: models.PlatformTikTok, Cost: money("40"), Results: 5, Count: 1},
	})
	if s.TotalCost.StringFixed(2) != "100.00" || s.TotalResults != 25 || s.Count != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.AverageCostPerResult.StringFixed(2) != "4.00" {
		t.Fatalf("average = %s", s.AverageCostPerResult.StringFixed(2))
	}
	if empty := SummariseAdsCosts(nil); empty.ByPlatform == nil || empty.AverageCostPerResult.StringFixed(2) != "0.00" {
		t.Fatalf("empty summary %+v", empty)
	}
}

func TestUpdateChargeMissingIsNotFoundWithoutWrite(t *testing.T) {
	repo := &fakeChargeRepo{rows: map[int64]*models.Charge{}}
	svc := NewChargeService(repo)
	_, err := svc.UpdateCharge(context.Background(), 999, UpdateChargeRequest{Amount: dec("5")})
	if !errors.Is(err, ErrChargeNotFound) || repo.updates != 0 {
		t.Fatalf("want ErrChargeNotFound and no update, got %v (updates=%d)", err, repo.updates)
	}
}

func TestUpdateChargeValidatesMergedRecord(t *testing.T) {
	repo := &fakeChargeRepo{rows: map[int64]*models.Charge{
		1: {ID: 1, Type: models.ChargeRent, Amount: money("500")},
	}}
	svc := NewChargeService(repo)

	other := models.ChargeOther
	if _, err := svc.UpdateCharge(context.Background(), 1, UpdateChargeRequest{Type: &other}); fieldOf(t, err) != "customType" {
		t.Fatalf("unexpected error %v", err)
	}

	label := "Insurance"
	c, err := svc.UpdateCharge(context.Background(), 1, UpdateChargeRequest{Type: &other, CustomType: &label})
	if err != nil || c.CustomType == nil || *c.CustomType != "Insurance" {
		t.Fatalf("got %v %+v", err, c)
	}

	shipping := models.ChargeShipping
	c, err = svc.UpdateCharge(context.Background(), 1, UpdateChargeRequest{Type: &shipping})
	if err != nil || c.CustomType != nil {
		t.Fatalf("custom type should be cleared for non-Other types, got %v %+v", err, c)
	}
}

func TestCreateChargeRejectsBadDate(t *testing.T) {
	svc := NewChargeService(&fakeChargeRepo{})
	_, err := svc.CreateCharge(context.Background(), 1, CreateChargeRequest{
		Type: models.ChargeRent, Amount: dec("10"), ChargeDate: "yesterday",
	})
	if fieldOf(t, err) != "chargeDate" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCreateSalaryNet(t *testing.T) {
	svc := NewSalaryService(&fakeSalaryRepo{})
	s, err := svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{
		EmployeeName: "Bo", BaseSalary: dec("1000"), Bonuses: dec("150.50"), Deductions: dec("50"), Month: 3, Year: 2026,
	})
	if err != nil {
		t.Fatalf("CreateSalary: %v", err)
	}
	if s.NetSalary.StringFixed(2) != "1100.50" {
		t.Fatalf("net = %s", s.NetSalary.StringFixed(2))
	}

	_, err = svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{
		EmployeeName: "Bo", BaseSalary: dec("100"), Deductions: dec("101"), Month: 3, Year: 2026,
	})
	if fieldOf(t, err) != "deductions" {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{
		EmployeeName: "Bo", BaseSalary: dec("9999999999.99"), Bonuses: dec("0.01"), Month: 3, Year: 2026,
	})
	if fieldOf(t, err) != "bonuses" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCreateSalaryDuplicatePeriod(t *testing.T) {
	svc := NewSalaryService(&fakeSalaryRepo{err: repositories.ErrDuplicateKey})
	_, err := svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{
		EmployeeName: "Bo", BaseSalary: dec("100"), Month: 3, Year: 2026,
	})
	if fieldOf(t, err) != "employeeName" {
		t.Fatalf("unexpected error %v", err)
	}
}
