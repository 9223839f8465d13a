// Package pathutil maps request paths to a bounded set of metric labels.
package pathutil

import "strings"

// Other is the label used for every path the relay does not route.
const Other = "other"

// knownRoutes are the paths mounted by cmd/relay.
var knownRoutes = map[string]struct{}{
	"/events":                  {},
	"/auth/token":              {},
	"/admin/test-connection":   {},
	"/admin/settings":          {},
	"/admin/settings/validate": {},
	"/admin/logs":              {},
	"/admin/logs/clear":        {},
	"/admin/logs/stats":        {},
	"/admin/dashboard":         {},
	"/health":                  {},
	"/ready":                   {},
	"/live":                    {},
	"/metrics":                 {},
}

// NormalizePath returns path itself for known routes (query string and a
// trailing slash stripped) and Other for anything else, so scanners probing
// random URLs cannot inflate label cardinality.
//
//	NormalizePath("/admin/logs?limit=5") // "/admin/logs"
//	NormalizePath("/wp-login.php")       // "other"
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i != -1 {
		path = path[:i]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return Other
}

// Cardinality returns the maximum number of distinct labels NormalizePath
// can produce.
func Cardinality() int {
	return len(knownRoutes) + 1
}
