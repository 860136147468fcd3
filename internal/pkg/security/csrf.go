package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ferdiebergado/devlink/internal/config"
)

var ErrInvalidCSRFToken = errors.New("invalid csrf token")

// CSRFCookieBaker issues and verifies HMAC-signed double-submit tokens.
type CSRFCookieBaker struct {
	name       string
	length     uint32
	expiration time.Duration
	pepper     string
}

func NewCSRFCookieBaker(cfg *config.CSRF, securityKey string) *CSRFCookieBaker {
	return &CSRFCookieBaker{
		name:       cfg.CookieName,
		length:     cfg.TokenLen,
		expiration: cfg.MaxAge.Duration,
		pepper:     securityKey,
	}
}

func (c *CSRFCookieBaker) Name() string {
	return c.name
}

func (c *CSRFCookieBaker) Bake() (*http.Cookie, error) {
	token, err := GenerateRandomBytesURLEncoded(c.length)
	if err != nil {
		return nil, err
	}

	signedToken := token + ":" + c.sign(token)

	// The client echoes the cookie into a header, so it must be readable by scripts.
	csrfCookie := NewSecureCookie(c.name, signedToken, c.expiration)
	csrfCookie.HttpOnly = false

	return csrfCookie, nil
}

// Check verifies the signature of the token carried by csrfCookie.
func (c *CSRFCookieBaker) Check(csrfCookie *http.Cookie) error {
	token, sig, found := strings.Cut(csrfCookie.Value, ":")
	if !found {
		return fmt.Errorf("split signed token: %w", ErrInvalidCSRFToken)
	}

	sigBytes, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("base64 decode signature: %w", err)
	}

	expectedSig, _ := base64.RawURLEncoding.DecodeString(c.sign(token))
	if !hmac.Equal(sigBytes, expectedSig) {
		return fmt.Errorf("hmac compare: %w", ErrInvalidCSRFToken)
	}
	return nil
}

func (c *CSRFCookieBaker) sign(token string) string {
	h := hmac.New(sha256.New, []byte(c.pepper))
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
