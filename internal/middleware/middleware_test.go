package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop_backoffice/internal/access"
	"shop_backoffice/internal/models"

	"github.com/gin-gonic/gin"
)

type staticAuth struct{ user *models.User }

func (a staticAuth) ResolveUser(context.Context, *http.Request) *models.User { return a.user }

func newEngine(auth staticAuth, allowed access.RoleSet) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", AuthMiddleware(auth), RoleAuthMiddleware(allowed), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	return r
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	cases := []struct {
		name string
		user *models.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"wrong role", &models.User{ID: 1, Role: models.RoleShopAgent}, http.StatusForbidden},
		{"allowed", &models.User{ID: 2, Role: models.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine(staticAuth{user: tc.user}, access.DashboardRoles)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
			if w.Code != http.StatusOK && !strings.Contains(w.Body.String(), `"error"`) {
				t.Fatalf("missing error envelope: %s", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(staticAuth{}, access.DashboardRoles)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("caller id not echoed: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "bad id!")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got == "" || got == "bad id!" || len(got) != 36 {
		t.Fatalf("unsafe id should be replaced with a uuid, got %q", got)
	}
}
