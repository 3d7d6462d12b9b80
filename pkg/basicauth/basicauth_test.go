package basicauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/installments-admin/pkg/basicauth"
	"github.com/dmitrymomot/installments-admin/pkg/environment"
)

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	cfg := basicauth.Config{Username: "admin", Password: "secret", Realm: "Test"}

	t.Run("valid credentials pass", func(t *testing.T) {
		t.Parallel()

		h := basicauth.Middleware(cfg, environment.Production)(protectedHandler())
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.SetBasicAuth("admin", "secret")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing credentials rejected with challenge", func(t *testing.T) {
		t.Parallel()

		h := basicauth.Middleware(cfg, environment.Production)(protectedHandler())
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `realm="Test"`)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		t.Parallel()

		h := basicauth.Middleware(cfg, environment.Production)(protectedHandler())
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.SetBasicAuth("admin", "wrong")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("skip prefixes bypass auth", func(t *testing.T) {
		t.Parallel()

		h := basicauth.Middleware(cfg, environment.Production, "/webhooks", "/health")(protectedHandler())

		for _, path := range []string{"/webhooks/billing", "/health"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, path)
		}
	})

	t.Run("bcrypt hashed password", func(t *testing.T) {
		t.Parallel()

		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
		require.NoError(t, err)

		hashedCfg := basicauth.Config{Username: "admin", Password: string(hash)}
		h := basicauth.Middleware(hashedCfg, environment.Production)(protectedHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "wrong")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unconfigured credentials", func(t *testing.T) {
		t.Parallel()

		empty := basicauth.Config{}

		h := basicauth.Middleware(empty, environment.Development)(protectedHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "development allows access")

		h = basicauth.Middleware(empty, environment.Production)(protectedHandler())
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code, "production fails closed")
	})
}
