package respond

import (
	"regexp"

	"discord-logger/internal/domain/entity"
)

var (
	// DSN内のパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// Authorization ヘッダーの値
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`)

	// 署名ヘッダーの値
	signaturePattern = regexp.MustCompile(`v1,[A-Za-z0-9+/=]{16,}`)
)

// SanitizeError returns err's message with webhook tokens, DSN passwords,
// bearer tokens and event signatures masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString applies the same masking to an arbitrary string.
func SanitizeString(msg string) string {
	msg = entity.MaskWebhookURL(msg)
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = signaturePattern.ReplaceAllString(msg, "v1,****")
	return msg
}
