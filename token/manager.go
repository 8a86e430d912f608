package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid reports a token that failed signature or claim checks.
	ErrInvalid = errors.New("captcha token invalid")
	// ErrExpired reports a token presented after its validity window.
	ErrExpired = errors.New("captcha token expired")
)

// Config defines a public type used by goSecure APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Key signs tokens with HMAC-SHA256. At least 32 bytes.
	Key    []byte
	Issuer string
	TTL    time.Duration
}

// Manager issues and verifies self-contained captcha tokens. The token binds
// a digest of the challenge text and its validity window, so no server-side
// record is needed between issue and verify.
type Manager struct {
	config Config
	now    func() time.Time
}

type captchaClaims struct {
	TextHash string `json:"cth"`
	jwt.RegisteredClaims
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Key) < 32 {
		return nil, errors.New("signing key must be >= 32 bytes")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	return &Manager{config: cfg, now: time.Now}, nil
}

// Issue signs a token binding text for the configured TTL.
func (m *Manager) Issue(text string) (string, error) {
	now := m.now()
	claims := captchaClaims{
		TextHash: hashText(text),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.config.Key)
}

// Verify checks tokenStr against text. It returns [ErrExpired] for a token
// past its window and [ErrInvalid] for any other failure, including a text
// digest mismatch. Comparison is case-insensitive.
func (m *Manager) Verify(tokenStr, text string) error {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(tokenStr, &captchaClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.Key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalid
	}

	claims, ok := tok.Claims.(*captchaClaims)
	if !ok || !tok.Valid {
		return ErrInvalid
	}
	if claims.TextHash != hashText(text) {
		return ErrInvalid
	}
	return nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return hex.EncodeToString(sum[:])
}
