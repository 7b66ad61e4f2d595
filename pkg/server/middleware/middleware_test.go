package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-admin-secret"

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Subject", AdminSubject(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestID(AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/register", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/register", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 5, fields["size"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestIssueAndParseAdminToken(t *testing.T) {
	token, err := IssueAdminToken(testSecret, "ops", time.Hour, time.Now())
	require.NoError(t, err)

	subject, err := ParseAdminToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)

	_, err = ParseAdminToken("other-secret", token)
	assert.Error(t, err)

	_, err = IssueAdminToken("", "ops", time.Hour, time.Now())
	assert.Error(t, err)
	_, err = IssueAdminToken(testSecret, "", time.Hour, time.Now())
	assert.Error(t, err)
	_, err = IssueAdminToken(testSecret, "ops", 0, time.Now())
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsNonAdminRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role: "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAdminToken(testSecret, signed)
	assert.ErrorContains(t, err, "role")
}

func TestParseAdminTokenRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAdminToken(testSecret, signed)
	assert.Error(t, err)
}

func TestAdminTokenMiddleware(t *testing.T) {
	valid, err := IssueAdminToken(testSecret, "ops", time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := IssueAdminToken(testSecret, "ops", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name        string
		secret      string
		header      string
		wantStatus  int
		wantDetail  string
		wantSubject string
	}{
		{name: "disabled without secret", secret: "", wantStatus: http.StatusOK},
		{name: "missing header", secret: testSecret, wantStatus: http.StatusUnauthorized, wantDetail: "Authorization missing"},
		{name: "wrong scheme", secret: testSecret, header: "Token " + valid, wantStatus: http.StatusUnauthorized, wantDetail: "Malformed authorization header"},
		{name: "garbage token", secret: testSecret, header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantDetail: "Invalid token"},
		{name: "expired token", secret: testSecret, header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantDetail: "Token expired"},
		{name: "valid token", secret: testSecret, header: "Bearer " + valid, wantStatus: http.StatusOK, wantSubject: "ops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAdminTokenAuthenticator(func() string { return tt.secret })
			req := httptest.NewRequest(http.MethodPost, "/lecturers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.Middleware(okHandler(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.JSONEq(t, `{"detail":"`+tt.wantDetail+`"}`, rec.Body.String())
			}
			assert.Equal(t, tt.wantSubject, rec.Header().Get("X-Subject"))
		})
	}
}
