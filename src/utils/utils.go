package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------

// MaskToken scrubs the value of the "token" query parameter from an endpoint
// URL so that credentials never reach the logs.
func MaskToken(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		// Can't parse it; hide everything after the first token= occurrence.
		if idx := strings.Index(endpoint, "token="); idx >= 0 {
			return endpoint[:idx] + "token=***"
		}
		return endpoint
	}

	q := u.Query()
	if q.Get("token") == "" {
		return endpoint
	}
	q.Set("token", "***")
	u.RawQuery = q.Encode()
	return u.String()
}

// -----------------------------------------------------------------------------

// FieldAsString normalizes a decoded JSON value to its string form for
// correlation-ID comparison. JSON numbers decode as float64; FormatFloat with
// -1 precision renders integral values without a fractional part.
func FieldAsString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
