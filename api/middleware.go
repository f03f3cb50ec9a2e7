package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmcts/et-multiples-api/databases"
)

// MiddlewareDB holds the caseworker database and the shared signing secret
// for service-to-service tokens
type MiddlewareDB struct {
	DB        databases.CaseworkerDatabase
	JWTSecret string
}

var authenticator auth.Authenticator
var cache store.Cache
var serviceSecret []byte

// Middleware guards a route: callers present either a caseworker credential
// (basic auth or a previously issued bearer token) or a signed service token
// in the ServiceAuthorization header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if svc := r.Header.Get("ServiceAuthorization"); svc != "" {
			caller, err := verifyServiceToken(svc)
			if err != nil {
				zap.S().Errorw("service token rejected",
					"url", r.URL,
					"error", err)
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}
			zap.S().Debugf("service %s authenticated", caller)
			next.ServeHTTP(w, r)
			return
		}

		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("caseworker %s authenticated", user.UserName())
		next.ServeHTTP(w, r)
	})
}

// verifyServiceToken validates an HS256 service token and returns the
// calling service name from its subject claim
func verifyServiceToken(tokenString string) (string, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return serviceSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("missing subject claim")
	}
	return sub, nil
}

// CreateToken exchanges a caseworker's basic auth for a bearer token
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	email, _, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "basic auth failed", http.StatusUnauthorized)
		return
	}

	dbResp, err := m.DB.Find(context.Background(), bson.M{"caseworker.email": email})
	if err != nil || len(dbResp) == 0 {
		http.Error(w, "failed to get caseworker by email", http.StatusUnauthorized)
		return
	}

	caseworker := dbResp[0]
	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.JWTSecret))
	if err != nil {
		http.Error(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	authUser := auth.NewDefaultUser(email, caseworker.ID, nil, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, authUser, r)

	response := map[string]string{
		"token": token,
		"_id":   caseworker.ID,
	}
	responseBody, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Write(responseBody)
}

// SetupGoGuardian sets up the go-guardian strategies
func (m MiddlewareDB) SetupGoGuardian() {
	serviceSecret = []byte(m.JWTSecret)
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), 24*time.Hour)
	basicStrategy := basic.New(m.ValidateCaseworker, cache)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateCaseworker checks a basic-auth credential against the caseworker
// collection
func (m MiddlewareDB) ValidateCaseworker(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	usernameHash := sha256.Sum256([]byte(email))

	dbResp, err := m.DB.Find(ctx, bson.M{"caseworker.email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get caseworker by email")
	}
	if len(dbResp) == 0 {
		return nil, fmt.Errorf("no matching email found")
	}
	if !dbResp[0].Details.Active {
		return nil, fmt.Errorf("caseworker account is deactivated")
	}

	expectedUsernameHash := sha256.Sum256([]byte(dbResp[0].Details.Email))
	usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], expectedUsernameHash[:]) == 1

	err = bcrypt.CompareHashAndPassword([]byte(dbResp[0].Details.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}

	if usernameMatch {
		return auth.NewDefaultUser(email, dbResp[0].ID, nil, nil), nil
	}
	return nil, fmt.Errorf("invalid credentials")
}

// RevokeToken revokes a previously issued bearer token
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		http.Error(w, "missing bearer token", http.StatusBadRequest)
		return
	}
	reqToken = splitToken[1]

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, reqToken, r)
	body := fmt.Sprintf(`{"revoked token": "%s"}`, reqToken)
	w.Write([]byte(body))
}
