// Package auth issues and verifies the short-lived bearer tokens that guard
// the export endpoints.
//
// Tokens are stateless HS256 JWTs. There is no revocation store: a token
// stays valid until it expires, so keep JWT_EXPIRATION_SEC short in
// environments where a leaked token matters.
package auth

import (
	"errors"
	"time"

	"exportapi/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenType is the scheme returned to clients and expected in Authorization.
const TokenType = "Bearer"

// Claims are the registered claims carried by every access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a freshly signed credential.
type Token struct {
	Value     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Type      string `json:"token_type"`
}

// TokenService handles token creation and validation.
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	subject    string
	now        func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock overrides the time source used for iat/exp and for validation.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(cfg config.AuthConfig, opts ...Option) *TokenService {
	s := &TokenService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration(),
		issuer:     cfg.Issuer,
		subject:    cfg.Subject,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a new token valid for the configured expiration.
func (s *TokenService) Issue() (Token, error) {
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   s.subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{
		Value:     signed,
		ExpiresIn: int64(s.expiration / time.Second),
		Type:      TokenType,
	}, nil
}

// Verify checks signature, algorithm, issuer and expiry. It returns
// ErrTokenExpired only for tokens whose signature is otherwise valid.
func (s *TokenService) Verify(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	parsed, err := parser.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrInvalidToken
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
