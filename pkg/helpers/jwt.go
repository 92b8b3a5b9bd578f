package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed means the token could not be parsed into an identity assertion.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenSignatureInvalid means the signature, algorithm, issuer or audience check failed.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	// ErrTokenExpired means the current time is at or past the embedded expiry.
	ErrTokenExpired = errors.New("token expired")
)

// JWTManager issues and verifies the HS256 identity assertions handed out at login.
// Verification needs only the secret and the clock, so it is safe for concurrent use.
type JWTManager struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
	// Now is the clock used for issuing and verifying; defaults to time.Now.
	Now func() time.Time
}

var defaultManager *JWTManager

func NewJWTManager(secret, issuer, audience string, ttl time.Duration) *JWTManager {
	m := &JWTManager{
		Secret:   []byte(secret),
		Issuer:   issuer,
		Audience: audience,
		TTL:      ttl,
		Now:      time.Now,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// AssertionClaims is the signed payload of an identity assertion.
type AssertionClaims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

func (m *JWTManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// IssueAssertion signs a fresh assertion for subject in tenant, expiring TTL after issue.
func (m *JWTManager) IssueAssertion(subject, email, role, tenant string) (string, *AssertionClaims, error) {
	iat := m.now().UTC().Truncate(time.Second)
	claims := &AssertionClaims{
		Email:  email,
		Role:   role,
		Tenant: tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.Issuer,
			Audience:  jwt.ClaimStrings{m.Audience},
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(m.TTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(m.Secret)
	if err != nil {
		return "", nil, err
	}
	return s, claims, nil
}

// VerifyAssertion checks signature, issuer, audience and expiry and returns the
// embedded claims. Failures are reported as ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired.
func (m *JWTManager) VerifyAssertion(tokenStr string) (*AssertionClaims, error) {
	claims := &AssertionClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.Issuer))
	}
	if m.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.Audience))
	}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if !tkn.Valid {
		return nil, ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.Tenant == "" || claims.Role == "" || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		// bad signature, unexpected algorithm, wrong issuer or audience
		return ErrTokenSignatureInvalid
	}
}
