package headers

import (
	"fmt"
	"net/textproto"
	"sort"
	"strings"
)

const allowedFieldNameChars = "abcdefghijklmnopqrstuvwxyz0123456789!#$%&'*+-.^_`|~"

// Headers holds response field lines keyed by canonical field name.
type Headers map[string]string

func NewHeaders() Headers {
	return make(Headers)
}

func (h Headers) Get(key string) (string, bool) {
	value, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return value, ok
}

// Set stores value under key, replacing any previous value.
func (h Headers) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("invalid field line, empty field-name")
	}
	for _, char := range strings.ToLower(key) {
		if !strings.ContainsRune(allowedFieldNameChars, char) {
			return fmt.Errorf("invalid field line, field-name contains illegal character: %q", key)
		}
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("invalid field line, field-value contains line break: %q", value)
	}

	h[textproto.CanonicalMIMEHeaderKey(key)] = strings.TrimSpace(value)
	return nil
}

// Keys returns the field names in sorted order so output is stable.
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
