package basicauth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/installments-admin/pkg/environment"
)

// Config holds operator credentials for the admin gate.
type Config struct {
	Username string `env:"ADMIN_USER"`
	Password string `env:"ADMIN_PASSWORD"` // plaintext or bcrypt hash
	Realm    string `env:"ADMIN_REALM" envDefault:"Installments Admin"`
}

// Configured reports whether both credentials are present.
func (c Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// Middleware returns a chi-compatible middleware enforcing basic auth on
// every route except those whose path starts with one of skipPrefixes.
//
// Unconfigured credentials are tolerated only in development; in any
// other environment the middleware fails closed with a 500 so the
// misconfiguration is impossible to miss.
func Middleware(cfg Config, env environment.Environment, skipPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if !cfg.Configured() {
				if env == environment.Development || env == "dev" {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "authentication not configured", http.StatusInternalServerError)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok || !cfg.match(username, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="`+cfg.Realm+`"`)
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (c Config) match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	return userOK && matchPassword(c.Password, password)
}

// matchPassword compares against either a bcrypt hash or a plaintext
// value, constant-time in both branches.
func matchPassword(stored, supplied string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") ||
		strings.HasPrefix(s, "$2b$") ||
		strings.HasPrefix(s, "$2y$")
}
