// Package settings provides the webhook settings use cases: sanitizing and
// validating administrator input, and loading a fresh DeliveryConfig for
// every delivery.
package settings

import "errors"

// ErrInvalidSetting is returned when the key is not on the allow-list.
var ErrInvalidSetting = errors.New("invalid setting")
