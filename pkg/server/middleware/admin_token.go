package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenIssuer is the iss claim of admin tokens
	TokenIssuer = "lecture-eval"
	// AdminRole is the role claim required on admin tokens
	AdminRole = "admin"
)

// AdminClaims are the claims of an admin token
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs an HS256 admin token for subject valid for ttl
func IssueAdminToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("admin token secret is not configured")
	}
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("invalid ttl %s", ttl)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseAdminToken verifies an admin token and returns its subject
func ParseAdminToken(secret, tokenString string) (string, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Role != AdminRole {
		return "", fmt.Errorf("role %q is not %s", claims.Role, AdminRole)
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// AdminTokenAuthenticator guards routes with admin bearer tokens.
// Secret is consulted per request so reloaded configuration takes effect;
// an empty secret lets every request through.
type AdminTokenAuthenticator struct {
	Secret func() string
}

// NewAdminTokenAuthenticator creates the authenticator
func NewAdminTokenAuthenticator(secret func() string) *AdminTokenAuthenticator {
	return &AdminTokenAuthenticator{Secret: secret}
}

// Middleware returns an HTTP middleware that validates admin tokens
func (a *AdminTokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := a.Secret()
		if secret == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization missing")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(w, "Malformed authorization header")
			return
		}

		subject, err := ParseAdminToken(secret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthorized(w, "Token expired")
				return
			}
			unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), adminSubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminSubject returns the authenticated admin subject, or ""
func AdminSubject(ctx context.Context) string {
	subject, _ := ctx.Value(adminSubjectKey).(string)
	return subject
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="lecture-eval"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
