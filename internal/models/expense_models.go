package models

import "time"

// ChargeType is the closed operating-cost category enum.
type ChargeType string

const (
	ChargeRent      ChargeType = "Rent"
	ChargeUtilities ChargeType = "Utilities"
	ChargeSalaries  ChargeType = "Salaries"
	ChargeShipping  ChargeType = "Shipping"
	ChargePackaging ChargeType = "Packaging"
	ChargeMarketing ChargeType = "Marketing"
	ChargeEquipment ChargeType = "Equipment"
	ChargeOther     ChargeType = "Other"
)

// Charge is an operating cost entry.
type Charge struct {
	ID          int64      `json:"id"`
	Type        ChargeType `json:"type"`
	CustomType  *string    `json:"customType"`
	Amount      Money      `json:"amount"`
	Description *string    `json:"description"`
	ChargeDate  time.Time  `json:"chargeDate"`
	CreatedBy   *int64     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ChargeFilters narrows charge listings.
type ChargeFilters struct {
	Type  ChargeType
	Page  int
	Limit int
}

// ChargeTypeTotal is one row of the per-type charge summary.
type ChargeTypeTotal struct {
	Type   ChargeType `json:"type"`
	Amount Money      `json:"amount"`
	Count  int        `json:"count"`
}

// ChargeSummary aggregates charges matching a filter.
type ChargeSummary struct {
	TotalAmount Money             `json:"totalAmount"`
	Count       int               `json:"count"`
	ByType      []ChargeTypeTotal `json:"byType"`
}

// AdsPlatform is the closed advertising platform enum.
type AdsPlatform string

const (
	PlatformMeta     AdsPlatform = "Meta"
	PlatformTikTok   AdsPlatform = "TikTok"
	PlatformGoogle   AdsPlatform = "Google"
	PlatformSnapchat AdsPlatform = "Snapchat"
	PlatformOther    AdsPlatform = "Other"
)

// AdsCost is campaign spend with a derived cost per result.
type AdsCost struct {
	ID            int64       `json:"id"`
	CampaignName  string      `json:"campaignName"`
	Platform      AdsPlatform `json:"platform"`
	Cost          Money       `json:"cost"`
	Results       int64       `json:"results"`
	CostPerResult Money       `json:"costPerResult"`
	CampaignDate  time.Time   `json:"campaignDate"`
	Notes         *string     `json:"notes"`
	CreatedBy     *int64      `json:"createdBy"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// AdsCostFilters narrows ads cost listings.
type AdsCostFilters struct {
	Platform AdsPlatform
	Page     int
	Limit    int
}

// PlatformTotal is one row of the per-platform summary.
type PlatformTotal struct {
	Platform AdsPlatform `json:"platform"`
	Cost     Money       `json:"cost"`
	Results  int64       `json:"results"`
	Count    int         `json:"count"`
}

// AdsCostSummary aggregates ads costs matching a filter.
type AdsCostSummary struct {
	TotalCost            Money           `json:"totalCost"`
	TotalResults         int64           `json:"totalResults"`
	AverageCostPerResult Money           `json:"averageCostPerResult"`
	Count                int             `json:"count"`
	ByPlatform           []PlatformTotal `json:"byPlatform"`
}

// Salary is a monthly compensation record.
type Salary struct {
	ID           int64      `json:"id"`
	EmployeeName string     `json:"employeeName"`
	Position     *string    `json:"position"`
	BaseSalary   Money      `json:"baseSalary"`
	Bonuses      Money      `json:"bonuses"`
	Deductions   Money      `json:"deductions"`
	NetSalary    Money      `json:"netSalary"`
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	PaymentDate  *time.Time `json:"paymentDate"`
	Notes        *string    `json:"notes"`
	CreatedBy    *int64     `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// SalaryFilters narrows salary listings.
type SalaryFilters struct {
	Month int
	Year  int
	Page  int
	Limit int
}

// SalarySummary aggregates salaries matching a filter.
type SalarySummary struct {
	TotalBase       Money `json:"totalBase"`
	TotalBonuses    Money `json:"totalBonuses"`
	TotalDeductions Money `json:"totalDeductions"`
	TotalNet        Money `json:"totalNet"`
	Count           int   `json:"count"`
}
