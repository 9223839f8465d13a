package ingest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	SignatureHeader = "X-Relay-Signature"
	TimestampHeader = "X-Relay-Timestamp"

	signatureVersion = "v1"
	// MaxSkew is how far the bridge's timestamp may be from the relay clock.
	MaxSkew = 5 * time.Minute
)

var (
	ErrMissingSignature = errors.New("missing signature")
	ErrBadSignature     = errors.New("invalid signature")
	ErrStaleTimestamp   = errors.New("timestamp expired")
)

// Sign returns the header values a bridge sends with body at ts.
func Sign(secret []byte, ts time.Time, body []byte) (timestamp, signature string) {
	timestamp = strconv.FormatInt(ts.Unix(), 10)
	return timestamp, signatureVersion + "," + base64.StdEncoding.EncodeToString(mac(secret, timestamp, body))
}

// Verify checks the signature over "<timestamp>.<body>" and that the
// timestamp lies within MaxSkew of now.
func Verify(secret []byte, now time.Time, timestamp, signature string, body []byte) error {
	if timestamp == "" || signature == "" {
		return ErrMissingSignature
	}
	version, encoded, ok := strings.Cut(signature, ",")
	if !ok || version != signatureVersion {
		return ErrBadSignature
	}
	got, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ErrBadSignature
	}
	if !hmac.Equal(got, mac(secret, timestamp, body)) {
		return ErrBadSignature
	}

	secs, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	skew := now.Sub(time.Unix(secs, 0))
	if skew > MaxSkew || skew < -MaxSkew {
		return ErrStaleTimestamp
	}
	return nil
}

func mac(secret []byte, timestamp string, body []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(timestamp))
	h.Write([]byte{'.'})
	h.Write(body)
	return h.Sum(nil)
}
