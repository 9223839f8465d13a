package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"discord-logger/internal/handler/http/respond"
	"discord-logger/internal/observability/logging"

	"github.com/golang-jwt/jwt/v5"
)

// Session is what /auth/token hands to the admin client.
type Session struct {
	Token     string    `json:"token"`
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expires_at"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Issue signs a session token for sub, expiring after the configured TTL.
func (a *Authenticator) Issue(sub string) (Session, error) {
	// NumericDate は秒単位
	exp := a.now().Add(a.ttl).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": RoleAdmin,
		"iat":  a.now().Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, Nonce: a.nonce(sub, exp), ExpiresAt: exp.UTC()}, nil
}

// TokenHandler exchanges the admin credentials for a Session.
func (a *Authenticator) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest(resultInvalidRequest, time.Since(start))
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		if !a.checkCredentials(req.Username, req.Password) {
			logger.Warn("authentication failed", "reason", "invalid_credentials")
			RecordAuthRequest(resultFailure, time.Since(start))
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		session, err := a.Issue(req.Username)
		if err != nil {
			RecordAuthRequest(resultFailure, time.Since(start))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		logger.Info("authentication successful", "user", req.Username)
		RecordAuthRequest(resultSuccess, time.Since(start))
		respond.JSON(w, http.StatusOK, session)
	}
}
