package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	mocksdb "github.com/hmcts/et-multiples-api/databases/mocks"
	"github.com/hmcts/et-multiples-api/models"
)

func signServiceToken(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareAcceptsServiceToken(t *testing.T) {
	m := MiddlewareDB{DB: &mocksdb.CaseworkerDatabase{}, JWTSecret: "s3cret"}
	m.SetupGoGuardian()

	req := httptest.NewRequest("POST", "/api/v1/multiples", nil)
	req.Header.Set("ServiceAuthorization", signServiceToken(t, "s3cret", "et-sync"))

	rr := httptest.NewRecorder()
	Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMiddlewareRejectsBadServiceToken(t *testing.T) {
	m := MiddlewareDB{DB: &mocksdb.CaseworkerDatabase{}, JWTSecret: "s3cret"}
	m.SetupGoGuardian()

	req := httptest.NewRequest("POST", "/api/v1/multiples", nil)
	req.Header.Set("ServiceAuthorization", signServiceToken(t, "wrong-secret", "et-sync"))

	rr := httptest.NewRecorder()
	Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewareRejectsTokenWithoutSubject(t *testing.T) {
	m := MiddlewareDB{DB: &mocksdb.CaseworkerDatabase{}, JWTSecret: "s3cret"}
	m.SetupGoGuardian()

	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/multiples", nil)
	req.Header.Set("ServiceAuthorization", token)

	rr := httptest.NewRecorder()
	Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestValidateCaseworkerDeactivatedAccount(t *testing.T) {
	db := &mocksdb.CaseworkerDatabase{}
	db.On("Find", mock.Anything, bson.M{"caseworker.email": "old@justice.gov.uk"}).
		Return([]models.Caseworker{
			{
				ID: "cw1",
				Details: models.CaseworkerDetails{
					Email:  "old@justice.gov.uk",
					Active: false,
				},
			},
		}, nil)

	m := MiddlewareDB{DB: db, JWTSecret: "s3cret"}

	req := httptest.NewRequest("GET", "/", nil)
	_, err := m.ValidateCaseworker(req.Context(), req, "old@justice.gov.uk", "pw")

	assert.EqualError(t, err, "caseworker account is deactivated")
}

func TestRevokeTokenWithoutBearer(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	rr := httptest.NewRecorder()
	RevokeToken(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
