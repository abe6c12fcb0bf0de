package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"arbatai/internal/common"
)

const (
	// SessionCookieName is the backoffice session cookie.
	SessionCookieName = "arbatai_backoffice"

	sessionCookiePath = "/backoffice"
	sessionTTL        = 30 * 24 * time.Hour
)

// AuthConfig carries the shared admin secret and cookie settings. It is
// built from the environment in cmd and passed in at construction so tests
// can substitute their own.
type AuthConfig struct {
	// Password is the shared admin secret. Required.
	Password string
	// SessionSecret signs session tokens. Defaults to Password when empty.
	SessionSecret string
	// SecureCookies marks issued cookies Secure. Off only in local dev.
	SecureCookies bool
}

// AuthService gates the backoffice behind a shared secret and stateless
// signed session cookies; there is no server-side session table.
type AuthService interface {
	VerifyPassword(candidate string) bool
	IssueSession() *http.Cookie
	ClearSession() *http.Cookie
	IsAuthenticated(cookieValue string) bool
}

type authService struct {
	passwordHash [sha256.Size]byte
	signingKey   []byte
	secure       bool
}

type sessionPayload struct {
	Exp int64 `json:"exp"`
}

func NewAuthService(cfg AuthConfig) (AuthService, error) {
	if cfg.Password == "" {
		return nil, common.NewConfigurationError("backoffice password is not configured")
	}
	secret := cfg.SessionSecret
	if secret == "" {
		secret = cfg.Password
	}
	return &authService{
		passwordHash: sha256.Sum256([]byte(cfg.Password)),
		signingKey:   []byte(secret),
		secure:       cfg.SecureCookies,
	}, nil
}

// VerifyPassword hashes the candidate before comparing so the comparison runs
// over fixed-length digests in constant time.
func (s *authService) VerifyPassword(candidate string) bool {
	candidateHash := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(candidateHash[:], s.passwordHash[:]) == 1
}

// IssueSession emits a cookie holding base64url(payload).base64url(signature)
// where the payload is {"exp": unixSeconds} and the signature is HMAC-SHA256
// over the encoded payload.
func (s *authService) IssueSession() *http.Cookie {
	exp := time.Now().Add(sessionTTL)
	payload, _ := json.Marshal(sessionPayload{Exp: exp.Unix()})
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded + "." + s.sign(encoded),
		Path:     sessionCookiePath,
		Expires:  exp,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSession overwrites the cookie with an empty, already-expired value.
func (s *authService) ClearSession() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     sessionCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// IsAuthenticated validates a session cookie value. Any defect (missing
// value, wrong part count, bad signature, undecodable payload, expired
// timestamp) yields false; authentication never errors.
func (s *authService) IsAuthenticated(cookieValue string) bool {
	parts := strings.Split(cookieValue, ".")
	if len(parts) != 2 {
		return false
	}
	wantSig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(parts[0]))
	if !hmac.Equal(mac.Sum(nil), wantSig) {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return false
	}
	return payload.Exp > time.Now().Unix()
}

func (s *authService) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
