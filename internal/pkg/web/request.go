package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid id")

// PathID parses the named path value as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidID, name, raw)
	}
	return id, nil
}

// QueryInt returns the named query parameter as an int, or def when absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query %s=%q: %w", name, raw, err)
	}
	return n, nil
}

// QueryInt64 returns the named query parameter as an int64, or def when absent.
func QueryInt64(r *http.Request, name string, def int64) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("query %s=%q: %w", name, raw, err)
	}
	return n, nil
}

func IsBrowser(r *http.Request) bool {
	userAgent := r.Header.Get("User-Agent")
	for _, keyword := range []string{"Mozilla", "Chrome", "Safari", "Firefox", "Edge", "Opera"} {
		if strings.Contains(userAgent, keyword) {
			return true
		}
	}
	return false
}
