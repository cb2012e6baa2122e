package validator

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

type lineItem struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type sample struct {
	Name     string           `json:"name" binding:"required,max=5"`
	Platform string           `json:"platform" binding:"required,oneof=Meta TikTok"`
	Amount   *decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Cost     decimal.Decimal  `json:"cost" binding:"gte=0"`
	Items    []lineItem       `json:"items" binding:"required,min=1,dive"`
}

func TestValidateStructValid(t *testing.T) {
	amount := decimal.NewFromInt(10)
	s := sample{Name: "ok", Platform: "Meta", Amount: &amount, Items: []lineItem{{Quantity: 1}}}
	if errs := ValidateStruct(s); errs != nil {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestValidateStructFieldNames(t *testing.T) {
	zero := decimal.Zero
	s := sample{
		Name:     "too-long-name",
		Platform: "Myspace",
		Amount:   &zero,
		Cost:     decimal.NewFromInt(-1),
		Items:    []lineItem{{Quantity: 2}, {Quantity: 0}},
	}
	errs := ValidateStruct(s)

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Message
	}
	want := map[string]string{
		"name":              "must be at most 5 characters",
		"platform":          "must be one of: Meta, TikTok",
		"amount":            "must be greater than 0",
		"cost":              "must be greater than or equal to 0",
		"items[1].quantity": "is required",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidateStructMissingPointer(t *testing.T) {
	errs := ValidateStruct(sample{Name: "a", Platform: "Meta", Items: []lineItem{{Quantity: 1}}})
	if len(errs) != 1 || errs[0].Field != "amount" || errs[0].Message != "is required" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestFieldErrorsFromDecodeFailures(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"name": 5}`), &s)
	errs := FieldErrors(err)
	if len(errs) != 1 || errs[0].Field != "name" {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	err = json.Unmarshal([]byte(`{"name":`), &s)
	errs = FieldErrors(err)
	if len(errs) != 1 || errs[0].Field != "body" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

type amounts struct {
	Price *decimal.Decimal `json:"price" binding:"omitempty,gt=0,money"`
	Total decimal.Decimal  `json:"total" binding:"money"`
	Count *int64           `json:"count" binding:"omitempty,gte=0,max=2147483647"`
}

func TestMoneyRule(t *testing.T) {
	dec := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	count := func(n int64) *int64 { return &n }

	cases := []struct {
		name  string
		in    amounts
		field string
	}{
		{"cents", amounts{Price: dec("12.34"), Total: decimal.RequireFromString("-9999999999.99")}, ""},
		{"whole", amounts{Price: dec("100"), Count: count(2147483647)}, ""},
		{"sub-cent", amounts{Price: dec("0.001")}, "price"},
		{"trailing zeros", amounts{Price: dec("1.500")}, ""},
		{"too large", amounts{Price: dec("10000000000")}, "price"},
		{"too large negative", amounts{Total: decimal.RequireFromString("-10000000000.00")}, "total"},
		{"count overflow", amounts{Count: count(2147483648)}, "count"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateStruct(tc.in)
			if tc.field == "" {
				if errs != nil {
					t.Fatalf("expected no errors, got %+v", errs)
				}
				return
			}
			if len(errs) != 1 || errs[0].Field != tc.field {
				t.Fatalf("want one error on %s, got %+v", tc.field, errs)
			}
		})
	}
}
