// Package auth guards the administrative surface: an HS256 session token
// issued by /auth/token plus an anti-forgery nonce bound to that session.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"time"
)

const (
	// RoleAdmin is the only role the relay issues.
	RoleAdmin = "admin"

	// NonceHeader carries the anti-forgery token on admin requests.
	NonceHeader = "X-WPDL-Nonce"

	// MinSecretLength is the shortest JWT_SECRET accepted.
	MinSecretLength = 32

	defaultTTL = time.Hour
)

var (
	ErrSecretTooShort     = errors.New("auth: secret must be at least 32 bytes")
	ErrNoAdminCredentials = errors.New("auth: admin user and password are required")
)

// Config holds the signing secret and the single administrator account.
type Config struct {
	Secret        []byte
	TTL           time.Duration
	AdminUser     string
	AdminPassword string
	// ActorID is the platform user id recorded on log entries written by
	// admin requests. Zero leaves them without an actor.
	ActorID int64
}

// Authenticator issues and checks admin sessions.
type Authenticator struct {
	secret   []byte
	ttl      time.Duration
	user     []byte
	password []byte
	actorID  int64
	now      func() time.Time
}

// Option customizes an Authenticator.
type Option func(*Authenticator)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// New validates cfg.
func New(cfg Config, opts ...Option) (*Authenticator, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return nil, ErrNoAdminCredentials
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	a := &Authenticator{
		secret:   cfg.Secret,
		ttl:      ttl,
		user:     []byte(cfg.AdminUser),
		password: []byte(cfg.AdminPassword),
		actorID:  cfg.ActorID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// checkCredentials compares both fields in constant time, always evaluating
// both so a wrong username costs as much as a wrong password.
func (a *Authenticator) checkCredentials(user, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(user), a.user)
	p := subtle.ConstantTimeCompare([]byte(password), a.password)
	return u&p == 1
}

// nonce binds the anti-forgery token to the session subject and expiry.
func (a *Authenticator) nonce(sub string, exp time.Time) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte("wpdl-nonce|" + sub + "|" + strconv.FormatInt(exp.Unix(), 10)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

type ctxKey string

const ctxSubject ctxKey = "auth_subject"

// SubjectFromContext returns the authenticated admin, or "" outside
// RequireAdmin.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(ctxSubject).(string)
	return sub
}
