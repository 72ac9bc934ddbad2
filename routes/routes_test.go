package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vinayyy19/Furnista/common/auth"
	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/controllers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier map[string]*auth.Identity

func (s stubVerifier) Verify(token string) (*auth.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, errors.New("bad token")
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	RegisterRoutes(r, Handlers{
		Cart:    controllers.NewCartController(nil),
		Orders:  controllers.NewOrderController(nil, nil),
		Admin:   controllers.NewAdminController(nil, nil),
		Contact: controllers.NewContactController(nil),
		Media:   controllers.NewMediaController(nil, nil),
	}, stubVerifier{
		"user-token":  {Subject: "u1", Role: auth.RoleUser},
		"admin-token": {Subject: "a1", Role: auth.RoleAdmin},
	})
	return r
}

func TestRoutes_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_Guards(t *testing.T) {
	r := newTestEngine()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"cart without token", http.MethodGet, "/cart", "", http.StatusUnauthorized},
		{"cart with bad token", http.MethodGet, "/cart", "forged", http.StatusUnauthorized},
		{"orders without token", http.MethodPost, "/orders/verify", "", http.StatusUnauthorized},
		{"admin as user", http.MethodGet, "/admin/orders", "user-token", http.StatusForbidden},
		{"admin without token", http.MethodPatch, "/admin/orders/abc/status", "", http.StatusUnauthorized},
		// reaches the handler, which rejects the id before touching the service
		{"admin as admin", http.MethodDelete, "/admin/orders/not-an-id", "admin-token", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
