package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/internal/revocation"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// roleAuth treats the bearer token as the caller's role.
type roleAuth struct{}

func (roleAuth) ResolveUser(_ context.Context, r *http.Request) *models.User {
	role := models.Role(services.TokenFromRequest(r))
	if !role.Valid() {
		return nil
	}
	return &models.User{ID: 1, Name: "Tester", Role: role, IsActive: true}
}

type okPinger struct{ err error }

func (p okPinger) PingContext(context.Context) error { return p.err }

type chargeRepo struct {
	repositories.ChargeRepository
	creates int
	updates int
}

func (r *chargeRepo) Create(_ context.Context, c *models.Charge) error {
	r.creates++
	c.ID = int64(r.creates)
	return nil
}

func (r *chargeRepo) FindByID(context.Context, int64) (*models.Charge, error) {
	return nil, repositories.ErrNotFound
}

func (r *chargeRepo) Update(context.Context, *models.Charge) error {
	r.updates++
	return nil
}

type adsRepo struct {
	repositories.AdsCostRepository
	rows map[int64]models.AdsCost
}

func (r *adsRepo) Create(_ context.Context, c *models.AdsCost) error {
	c.ID = int64(len(r.rows) + 100)
	r.rows[c.ID] = *c
	return nil
}

func (r *adsRepo) FindByID(_ context.Context, id int64) (*models.AdsCost, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (r *adsRepo) Update(_ context.Context, c *models.AdsCost) error {
	if _, ok := r.rows[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.rows[c.ID] = *c
	return nil
}

type stockRepo struct {
	repositories.StockRepository
}

func (stockRepo) List(_ context.Context, lowOnly bool) ([]models.Stock, error) {
	if lowOnly {
		return []models.Stock{}, nil
	}
	return []models.Stock{{ProductID: 1, Quantity: 50, MinStockLevel: 10}}, nil
}

func (stockRepo) Stats(context.Context) (models.StockStats, error) {
	return models.StockStats{TotalProducts: 1, TotalUnits: 50, TotalValue: models.MoneyFromInt(500)}, nil
}

type historyRepo struct {
	repositories.StockHistoryRepository
}

func (historyRepo) List(context.Context, models.StockHistoryFilters) ([]models.StockHistory, int, error) {
	return []models.StockHistory{}, 3, nil
}

type userRepo struct {
	repositories.UserRepository
	byID map[int64]models.User
}

func (r *userRepo) Create(context.Context, *models.User) error {
	return repositories.ErrDuplicateKey
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) FindActiveByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Phone == phone && u.IsActive {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u *models.User) error {
	r.byID[u.ID] = *u
	return nil
}

func (r *userRepo) TouchLastLogin(context.Context, int64) error { return nil }

type fixture struct {
	engine  *gin.Engine
	charges *chargeRepo
	ads     *adsRepo
	users   *userRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := utils.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &userRepo{byID: map[int64]models.User{
		1: {ID: 1, Phone: "+15550001", PasswordHash: hash, Name: "Root", Role: models.RoleSuperAdmin, IsActive: true},
		4: {ID: 4, Phone: "+15550100", PasswordHash: hash, Name: "Stocker", Role: models.RoleWarehouseAgent, IsActive: true},
	}}
	charges := &chargeRepo{}
	ads := &adsRepo{rows: map[int64]models.AdsCost{}}
	tokens := utils.NewTokenManager("router-test")

	s := Services{
		Auth:          services.NewAuthService(users, tokens, revocation.NewNoopStore()),
		Authenticator: roleAuth{},
		Users:         services.NewUserService(users),
		Stock:         services.NewStockService(stockRepo{}, historyRepo{}, nil, nil),
		Charges:       services.NewChargeService(charges),
		AdsCosts:      services.NewAdsCostService(ads),
	}
	engine := gin.New()
	Register(engine, s, okPinger{}, false)
	return &fixture{engine: engine, charges: charges, ads: ads, users: users}
}

func (f *fixture) do(method, path, role, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+role)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAuthorization(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name, method, path, role string
		want                     int
	}{
		{"anonymous dashboard", http.MethodGet, "/api/dashboard/stats", "", http.StatusUnauthorized},
		{"shop agent dashboard", http.MethodGet, "/api/dashboard/stats", "SHOP_AGENT", http.StatusForbidden},
		{"admin salaries", http.MethodGet, "/api/salaries", "ADMIN", http.StatusForbidden},
		{"confirmer stock", http.MethodGet, "/api/stock", "CONFIRMER", http.StatusForbidden},
		{"shop agent creates product", http.MethodPost, "/api/products", "SHOP_AGENT", http.StatusForbidden},
		{"admin users", http.MethodGet, "/api/users", "ADMIN", http.StatusForbidden},
		{"warehouse stock", http.MethodGet, "/api/stock", "WAREHOUSE_AGENT", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(tc.method, tc.path, tc.role, "")
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestUpdateMissingChargeIs404WithoutWrite(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPut, "/api/charges/999", "ADMIN", `{"amount": 12.5}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["error"] != "Charge not found" {
		t.Fatalf("unexpected body %v", body)
	}
	if f.charges.updates != 0 {
		t.Fatal("update must not run for a missing charge")
	}
}

func TestCreateChargeValidationEnvelope(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/charges", "ADMIN", `{"type":"Rent","amount":-1,"chargeDate":"2026-01-01"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	details, _ := body["details"].([]interface{})
	if body["error"] != utils.MsgValidationFailed || len(details) != 1 {
		t.Fatalf("unexpected body %v", body)
	}
	if field := details[0].(map[string]interface{})["field"]; field != "amount" {
		t.Fatalf("field = %v", field)
	}
}

func TestCreateAdsCostRendersCostPerResult(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/ads-costs", "ADMIN",
		`{"campaignName":"Spring","platform":"Meta","cost":100,"results":25,"campaignDate":"2026-04-01","costPerResult":"99.00"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"costPerResult":"4.00"`) {
		t.Fatalf("costPerResult not derived: %s", w.Body.String())
	}
}

func TestLowStockFilter(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/stock?lowStock=true", "ADMIN", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if list, ok := body["stock"].([]interface{}); !ok || len(list) != 0 {
		t.Fatalf("want empty stock list, got %v", body["stock"])
	}
	if stats := body["stats"].(map[string]interface{}); stats["totalProducts"] != float64(1) {
		t.Fatalf("stats must ignore the filter: %v", stats)
	}

	if w := f.do(http.MethodGet, "/api/stock?lowStock=maybe", "ADMIN", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for invalid lowStock", w.Code)
	}
}

func TestHistoryPageBeyondLast(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/api/stock/history?page=5&limit=20", "ADMIN", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if list, ok := body["history"].([]interface{}); !ok || len(list) != 0 {
		t.Fatalf("want empty history, got %v", body["history"])
	}
	if body["total"] != float64(3) || body["totalPages"] != float64(1) || body["page"] != float64(5) {
		t.Fatalf("unexpected paging %v", body)
	}

	if w := f.do(http.MethodGet, "/api/stock/history?limit=500", "ADMIN", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for limit above maximum", w.Code)
	}
}

func TestCreateUserDuplicatePhone(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/users", "SUPER_ADMIN",
		`{"phone":"+15550100","password":"secret1","name":"Dup","role":"ADMIN"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"field":"phone"`) {
		t.Fatalf("missing phone detail: %s", w.Body.String())
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/auth/login", "", `{"phone":"+15550100","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	cookie := w.Header().Get("Set-Cookie")
	for _, part := range []string{services.AuthCookieName + "=", "HttpOnly", "SameSite=Lax", "Path=/"} {
		if !strings.Contains(cookie, part) {
			t.Fatalf("cookie %q lacks %q", cookie, part)
		}
	}
	body := decode(t, w)
	if body["token"] == "" || body["user"] == nil {
		t.Fatalf("unexpected body %v", body)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatal("password hash leaked")
	}

	w = f.do(http.MethodPost, "/api/auth/login", "", `{"phone":"+15550100","password":"nope"}`)
	if w.Code != http.StatusUnauthorized || decode(t, w)["error"] != "Invalid phone or password" {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/auth/logout", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Fatalf("cookie not cleared: %q", w.Header().Get("Set-Cookie"))
	}
}

func TestMeIncludesNavigation(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/api/auth/me", "WAREHOUSE_AGENT", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["landing"] != "/stock" {
		t.Fatalf("unexpected landing %v", body["landing"])
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		err  error
		want int
	}{{nil, http.StatusOK}, {errors.New("down"), http.StatusServiceUnavailable}} {
		engine := gin.New()
		Register(engine, Services{Authenticator: roleAuth{}}, okPinger{err: tc.err}, false)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		if w.Code != tc.want {
			t.Fatalf("health = %d, want %d", w.Code, tc.want)
		}
	}
}

func TestUpdateOwnAccountCannotLockOut(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name, body, field string
	}{
		{"deactivate self", `{"isActive":false}`, "isActive"},
		{"change own role", `{"role":"CONFIRMER"}`, "role"},
		{"both", `{"isActive":false,"role":"CONFIRMER"}`, "isActive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(http.MethodPut, "/api/users/1", "SUPER_ADMIN", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"field":"`+tc.field+`"`) {
				t.Fatalf("missing %s detail: %s", tc.field, w.Body.String())
			}
			if stored := f.users.byID[1]; !stored.IsActive || stored.Role != models.RoleSuperAdmin {
				t.Fatalf("own account changed: %+v", stored)
			}
		})
	}

	if w := f.do(http.MethodPut, "/api/users/1", "SUPER_ADMIN", `{"name":"Root Admin","isActive":true,"role":"SUPER_ADMIN"}`); w.Code != http.StatusOK {
		t.Fatalf("harmless self update: status = %d: %s", w.Code, w.Body.String())
	}
	if w := f.do(http.MethodPut, "/api/users/4", "SUPER_ADMIN", `{"isActive":false}`); w.Code != http.StatusOK {
		t.Fatalf("deactivate other: status = %d: %s", w.Code, w.Body.String())
	}
	if f.users.byID[4].IsActive {
		t.Fatal("other account should be deactivated")
	}
}

func TestRepeatedUpdateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/ads-costs", "ADMIN",
		`{"campaignName":"Spring","platform":"Meta","cost":100,"results":25,"campaignDate":"2026-04-01"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", w.Code, w.Body.String())
	}
	id := int64(decode(t, w)["adsCost"].(map[string]interface{})["id"].(float64))
	path := "/api/ads-costs/" + utils.Int64ToStr(id)
	body := `{"cost":90,"results":30,"notes":"  resized  "}`

	var states, responses []string
	for i := 0; i < 2; i++ {
		w := f.do(http.MethodPut, path, "ADMIN", body)
		if w.Code != http.StatusOK {
			t.Fatalf("update %d: status = %d: %s", i+1, w.Code, w.Body.String())
		}
		stored, err := json.Marshal(f.ads.rows[id])
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		states = append(states, string(stored))
		responses = append(responses, w.Body.String())
	}
	if states[0] != states[1] {
		t.Fatalf("stored state drifted:\n%s\n%s", states[0], states[1])
	}
	if responses[0] != responses[1] {
		t.Fatalf("responses differ:\n%s\n%s", responses[0], responses[1])
	}
	if !strings.Contains(states[1], `"costPerResult":"3.00"`) || !strings.Contains(states[1], `"notes":"resized"`) {
		t.Fatalf("unexpected stored row %s", states[1])
	}
}

func TestErrorEnvelopeOutsideRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.Recovery())
	Register(engine, Services{Authenticator: roleAuth{}}, okPinger{}, false)
	engine.GET("/api/boom", func(*gin.Context) { panic("boom") })

	cases := []struct {
		name, method, path string
		want               int
		msg                string
	}{
		{"unknown path", http.MethodGet, "/api/nope", http.StatusNotFound, utils.MsgNotFound},
		{"wrong method", http.MethodDelete, "/api/health", http.StatusMethodNotAllowed, utils.MsgMethodNotAllowed},
		{"panic", http.MethodGet, "/api/boom", http.StatusInternalServerError, utils.MsgInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("content type = %q", ct)
			}
			if body := decode(t, w); body["error"] != tc.msg {
				t.Fatalf("unexpected body %v", body)
			}
		})
	}
}

func TestChargeAmountPrecisionAndRange(t *testing.T) {
	f := newFixture(t)
	for _, amount := range []string{"0.001", "99999999999999", "10000000000"} {
		w := f.do(http.MethodPost, "/api/charges", "ADMIN", `{"type":"Rent","amount":`+amount+`,"chargeDate":"2026-01-01"}`)
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"field":"amount"`) {
			t.Fatalf("amount %s: status = %d: %s", amount, w.Code, w.Body.String())
		}
	}
	if f.charges.creates != 0 {
		t.Fatalf("rejected amounts reached the repository %d times", f.charges.creates)
	}

	w := f.do(http.MethodPost, "/api/charges", "ADMIN", `{"type":"Rent","amount":9999999999.99,"chargeDate":"2026-01-01"}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"amount":"9999999999.99"`) {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}
