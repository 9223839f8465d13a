package auth

import (
	"context"
	"crypto/hmac"
	"errors"
	"net/http"
	"strings"
	"time"

	"discord-logger/internal/actor"
	"discord-logger/internal/handler/http/respond"
	"discord-logger/internal/observability/logging"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingBearer = errors.New("missing bearer token")
	errInvalidToken  = errors.New("invalid token")
	errNotAdmin      = errors.New("not an administrator")
)

type claims struct {
	sub  string
	role string
	exp  time.Time
}

// RequireAdmin lets a request through only with a valid admin token and the
// matching nonce. A bad token is 401 "Unauthorized"; a missing or stale
// nonce is 403 "Invalid nonce". Rejected requests never reach next.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := a.parse(r.Header.Get("Authorization"))
		if err != nil {
			reject(w, r, http.StatusUnauthorized, "Unauthorized", rejectToken)
			return
		}
		if c.role != RoleAdmin {
			reject(w, r, http.StatusForbidden, "Unauthorized", rejectRole)
			return
		}

		want := a.nonce(c.sub, c.exp)
		if got := r.Header.Get(NonceHeader); got == "" || !hmac.Equal([]byte(got), []byte(want)) {
			reject(w, r, http.StatusForbidden, "Invalid nonce", rejectNonce)
			return
		}

		ctx := context.WithValue(r.Context(), ctxSubject, c.sub)
		if a.actorID != 0 {
			ctx = actor.WithID(ctx, a.actorID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) parse(header string) (claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return claims{}, errMissingBearer
	}
	tok, err := jwt.Parse(strings.TrimPrefix(header, prefix),
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !tok.Valid {
		return claims{}, errInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return claims{}, errInvalidToken
	}
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return claims{}, errInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return claims{}, errInvalidToken
	}
	role, _ := mc["role"].(string)
	if role == "" {
		return claims{}, errNotAdmin
	}
	return claims{sub: sub, role: role, exp: exp.Time}, nil
}

func reject(w http.ResponseWriter, r *http.Request, code int, msg, reason string) {
	logging.FromContext(r.Context()).Warn("admin request rejected",
		"reason", reason, "path", r.URL.Path)
	RecordRejection(reason)
	respond.JSON(w, code, map[string]string{"error": msg})
}
